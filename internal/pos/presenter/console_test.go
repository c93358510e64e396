package presenter

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tahaaa22/Fawry--e-commerce-system/internal/pos/cart"
	"github.com/tahaaa22/Fawry--e-commerce-system/internal/pos/catalog"
	"github.com/tahaaa22/Fawry--e-commerce-system/internal/pos/checkout"
	"github.com/tahaaa22/Fawry--e-commerce-system/internal/pos/domain"
	"github.com/tahaaa22/Fawry--e-commerce-system/internal/pos/shipping"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func TestPresentShipment_Format(t *testing.T) {
	q := shipping.Calculate([]shipping.Unit{
		{Name: "Cheese", Weight: decimal.RequireFromString("0.4")},
		{Name: "Cheese", Weight: decimal.RequireFromString("0.4")},
		{Name: "Biscuits", Weight: decimal.RequireFromString("0.7")},
	})

	out := &strings.Builder{}
	NewConsole(out).PresentShipment(shipping.BuildManifest(q))

	want := "" +
		"** Shipment notice **\n" +
		"2x Cheese\n" +
		"1x Biscuits\n" +
		"400g\n" +
		"400g\n" +
		"700g\n" +
		"Total package weight 1.5kg\n"
	assert.Equal(t, want, out.String())
}

func TestPresentReceipt_Format(t *testing.T) {
	rcpt := checkout.Receipt{
		ID:       "r-1",
		Customer: "Ali",
		Lines: []checkout.ReceiptLine{
			{Name: "Cheese", Quantity: 2, Amount: 200},
			{Name: "Biscuits", Quantity: 1, Amount: 150},
			{Name: "ScratchCard", Quantity: 1, Amount: 50},
		},
		Subtotal: 400,
		Shipping: 45,
		Total:    445,
		Balance:  555,
	}

	out := &strings.Builder{}
	NewConsole(out).PresentReceipt(rcpt)

	want := "" +
		"** Checkout receipt **\n" +
		"2x Cheese      200\n" +
		"1x Biscuits    150\n" +
		"1x ScratchCard 50\n" +
		"----------------------\n" +
		"Subtotal         400\n" +
		"Shipping         45\n" +
		"Amount           445\n" +
		"Balance          555\n" +
		"END.\n" +
		"\n"
	assert.Equal(t, want, out.String())
}

// The full demo basket rendered through the orchestrator must match the
// classic register transcript end to end.
func TestConsole_FullCheckoutTranscript(t *testing.T) {
	clock := fixedClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	cat := catalog.New()
	catalog.Seed(cat, clock)
	customer := catalog.DemoCustomer()

	out := &strings.Builder{}
	console := NewConsole(out)
	orch := checkout.New(clock, console, console)

	c := cart.New(clock)
	for _, item := range []struct {
		name domain.ProductName
		qty  int
	}{
		{"Cheese", 2},
		{"Biscuits", 1},
		{"ScratchCard", 1},
	} {
		p, err := cat.Get(item.name)
		require.NoError(t, err)
		require.NoError(t, c.Add(p, item.qty))
	}

	_, err := orch.Checkout(customer, c)
	require.NoError(t, err)

	want := "" +
		"** Shipment notice **\n" +
		"2x Cheese\n" +
		"1x Biscuits\n" +
		"400g\n" +
		"400g\n" +
		"700g\n" +
		"Total package weight 1.5kg\n" +
		"** Checkout receipt **\n" +
		"2x Cheese      200\n" +
		"1x Biscuits    150\n" +
		"1x ScratchCard 50\n" +
		"----------------------\n" +
		"Subtotal         400\n" +
		"Shipping         45\n" +
		"Amount           445\n" +
		"Balance          555\n" +
		"END.\n" +
		"\n"
	assert.Equal(t, want, out.String())
}
