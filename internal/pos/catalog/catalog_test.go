package catalog

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tahaaa22/Fawry--e-commerce-system/internal/pos/domain"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func TestRegisterAndGet(t *testing.T) {
	c := New()
	tv := &domain.Product{Name: "TV", Price: decimal.NewFromInt(150), Quantity: 3}
	require.NoError(t, c.Register(tv))

	got, err := c.Get("TV")
	require.NoError(t, err)
	assert.Same(t, tv, got)

	_, err = c.Get("Fridge")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegister_DuplicateName(t *testing.T) {
	c := New()
	require.NoError(t, c.Register(&domain.Product{Name: "TV"}))

	err := c.Register(&domain.Product{Name: "TV"})
	assert.Error(t, err)
	assert.Len(t, c.List(), 1)
}

func TestList_RegistrationOrder(t *testing.T) {
	c := New()
	for _, name := range []domain.ProductName{"Cheese", "TV", "Mobile"} {
		require.NoError(t, c.Register(&domain.Product{Name: name}))
	}

	var names []domain.ProductName
	for _, p := range c.List() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []domain.ProductName{"Cheese", "TV", "Mobile"}, names)
}

func TestSeed(t *testing.T) {
	clock := fixedClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	c := New()
	Seed(c, clock)

	products := c.List()
	require.Len(t, products, 5)
	assert.Equal(t, domain.ProductName("Cheese"), products[0].Name)
	assert.Equal(t, domain.ProductName("ScratchCard"), products[4].Name)

	cheese, err := c.Get("Cheese")
	require.NoError(t, err)
	assert.True(t, cheese.Perishable())
	assert.True(t, cheese.Shippable())
	assert.False(t, cheese.Expired(clock.Now()))
	assert.True(t, cheese.Weight.Equal(decimal.RequireFromString("0.4")))

	card, err := c.Get("ScratchCard")
	require.NoError(t, err)
	assert.False(t, card.Perishable())
	assert.False(t, card.Shippable())
}

func TestDemoCustomer(t *testing.T) {
	c := DemoCustomer()
	assert.Equal(t, "Ali", c.Name)
	assert.True(t, c.Balance.Equal(decimal.NewFromInt(1000)))
}
