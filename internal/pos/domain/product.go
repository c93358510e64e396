package domain

import (
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

type ProductName string

// Product is a single catalog entry. Capabilities are optional fields on the
// one type: a perishable product carries an expiry instant, a shippable one a
// positive weight. All four combinations are representable.
type Product struct {
	Name     ProductName
	Price    decimal.Decimal
	Quantity int
	Expiry   *time.Time
	Weight   decimal.Decimal // kilograms, positive when shippable
}

func (p *Product) Perishable() bool { return p.Expiry != nil }

func (p *Product) Shippable() bool { return p.Weight.IsPositive() }

// Expired reports whether the expiry instant is strictly before now.
// Non-perishable products never expire.
func (p *Product) Expired(now time.Time) bool {
	return p.Expiry != nil && p.Expiry.Before(now)
}

// ReduceStock takes qty units off the shelf. Callers validate stock before
// committing; an underflow here means that validation was skipped.
func (p *Product) ReduceStock(qty int) error {
	if qty < 0 || qty > p.Quantity {
		return errors.Errorf("stock underflow for %s: have %d, take %d", p.Name, p.Quantity, qty)
	}
	p.Quantity -= qty
	return nil
}
