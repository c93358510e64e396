package cart

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

func (c *fixedClock) Now() time.Time { return c.now }

func testClock() *fixedClock {
	return &fixedClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func cheese(stock int) *domain.Product {
	return &domain.Product{
		Name:     "Cheese",
		Price:    decimal.NewFromInt(100),
		Quantity: stock,
		Weight:   decimal.RequireFromString("0.4"),
	}
}

func TestAdd_AccumulatesAndPreservesInsertionOrder(t *testing.T) {
	clock := testClock()
	c := New(clock)
	ch := cheese(5)
	tv := &domain.Product{Name: "TV", Price: decimal.NewFromInt(150), Quantity: 3, Weight: decimal.NewFromInt(7)}

	require.NoError(t, c.Add(ch, 2))
	require.NoError(t, c.Add(tv, 1))
	require.NoError(t, c.Add(ch, 1))

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, domain.ProductName("Cheese"), lines[0].Product.Name)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, domain.ProductName("TV"), lines[1].Product.Name)
	assert.Equal(t, 1, lines[1].Quantity)
}

func TestAdd_NonPositiveQuantity(t *testing.T) {
	c := New(testClock())
	ch := cheese(5)

	for _, qty := range []int{0, -1} {
		err := c.Add(ch, qty)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	}
	assert.True(t, c.Empty())
}

func TestAdd_ExpiredProduct(t *testing.T) {
	clock := testClock()
	c := New(clock)
	expiry := clock.now.Add(-time.Hour)
	milk := &domain.Product{Name: "Milk", Price: decimal.NewFromInt(30), Quantity: 4, Expiry: &expiry}

	err := c.Add(milk, 1)
	assert.ErrorIs(t, err, domain.ErrExpiredProduct)
	name, ok := domain.FailedProduct(err)
	assert.True(t, ok)
	assert.Equal(t, domain.ProductName("Milk"), name)
	assert.True(t, c.Empty())
}

func TestAdd_MoreThanStock(t *testing.T) {
	c := New(testClock())
	ch := cheese(5)

	err := c.Add(ch, 6)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, c.Empty())
}

func TestAdd_AccumulatedQuantityCountsAgainstStock(t *testing.T) {
	c := New(testClock())
	ch := cheese(5)

	require.NoError(t, c.Add(ch, 3))
	err := c.Add(ch, 3)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// The earlier line survives a rejected addition.
	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestAdd_DoesNotReserveStock(t *testing.T) {
	c := New(testClock())
	ch := cheese(5)

	require.NoError(t, c.Add(ch, 5))
	assert.Equal(t, 5, ch.Quantity)
}

func TestClear(t *testing.T) {
	c := New(testClock())
	ch := cheese(5)

	require.NoError(t, c.Add(ch, 2))
	require.False(t, c.Empty())

	c.Clear()
	assert.True(t, c.Empty())
	assert.Empty(t, c.Lines())

	// Cleared index means re-adding starts a fresh line.
	require.NoError(t, c.Add(ch, 1))
	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
}
