package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/tahaaa22/Fawry--e-commerce-system/internal/pos/domain"
)

// Seed loads the demo catalog used by the service and the CLI. Perishables
// get an expiry one month out so the fixture stays fresh relative to the
// injected clock.
func Seed(c *Catalog, clock domain.Clock) {
	fresh := clock.Now().AddDate(0, 1, 0)
	products := []*domain.Product{
		{Name: "Cheese", Price: decimal.NewFromInt(100), Quantity: 5, Expiry: &fresh, Weight: decimal.RequireFromString("0.4")},
		{Name: "Biscuits", Price: decimal.NewFromInt(150), Quantity: 2, Expiry: &fresh, Weight: decimal.RequireFromString("0.7")},
		{Name: "TV", Price: decimal.NewFromInt(150), Quantity: 3, Weight: decimal.NewFromInt(7)},
		{Name: "Mobile", Price: decimal.NewFromInt(200), Quantity: 10},
		{Name: "ScratchCard", Price: decimal.NewFromInt(50), Quantity: 20},
	}
	for _, p := range products {
		_ = c.Register(p)
	}
}

// DemoCustomer returns the walk-in customer the demo scenarios settle
// against.
func DemoCustomer() *domain.Customer {
	return &domain.Customer{Name: "Ali", Balance: decimal.NewFromInt(1000)}
}
