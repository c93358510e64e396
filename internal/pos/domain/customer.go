package domain

import "github.com/shopspring/decimal"

// Customer holds the balance the checkout settles against.
type Customer struct {
	Name    string
	Balance decimal.Decimal
}

// Deduct subtracts amount from the balance, refusing to drive it negative.
func (c *Customer) Deduct(amount decimal.Decimal) error {
	if c.Balance.LessThan(amount) {
		return ErrInsufficientBalance
	}
	c.Balance = c.Balance.Sub(amount)
	return nil
}
