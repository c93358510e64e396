package cart

import (
	"github.com/tahaaa22/Fawry--e-commerce-system/internal/pos/domain"
)

// Line is one cart entry: a product and the quantity requested so far.
type Line struct {
	Product  *domain.Product
	Quantity int
}

// Cart accumulates purchase intents for one customer session. Insertion
// order is preserved because it is the receipt line order. Adding validates
// against current stock but reserves nothing; stock is authoritative only at
// checkout.
type Cart struct {
	lines []Line
	index map[domain.ProductName]int
	clock domain.Clock
}

func New(clock domain.Clock) *Cart {
	return &Cart{index: make(map[domain.ProductName]int), clock: clock}
}

// Add validates qty against the product's expiry and currently available
// stock (counting what this cart already holds) and accumulates it into the
// existing line or appends a new one. On failure the cart is left unchanged.
func (c *Cart) Add(p *domain.Product, qty int) error {
	if qty <= 0 {
		return &domain.ProductError{Product: p.Name, Err: domain.ErrInvalidQuantity}
	}
	if p.Expired(c.clock.Now()) {
		return &domain.ProductError{Product: p.Name, Err: domain.ErrExpiredProduct}
	}
	requested := qty
	i, exists := c.index[p.Name]
	if exists {
		requested += c.lines[i].Quantity
	}
	if requested > p.Quantity {
		return &domain.ProductError{Product: p.Name, Err: domain.ErrInsufficientStock}
	}
	if exists {
		c.lines[i].Quantity = requested
		return nil
	}
	c.index[p.Name] = len(c.lines)
	c.lines = append(c.lines, Line{Product: p, Quantity: qty})
	return nil
}

func (c *Cart) Empty() bool { return len(c.lines) == 0 }

// Lines returns the entries in insertion order. The slice is a copy; the
// products it points at are the live catalog entries.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Clear() {
	c.lines = c.lines[:0]
	for name := range c.index {
		delete(c.index, name)
	}
}
