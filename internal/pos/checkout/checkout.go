package checkout

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tahaaa22/Fawry--e-commerce-system/internal/pos/cart"
	"github.com/tahaaa22/Fawry--e-commerce-system/internal/pos/domain"
	"github.com/tahaaa22/Fawry--e-commerce-system/internal/pos/shipping"
)

// ReceiptLine reports one cart line. Amount is price * quantity truncated to
// a whole currency unit.
type ReceiptLine struct {
	Name     domain.ProductName `json:"name"`
	Quantity int                `json:"quantity"`
	Amount   int64              `json:"amount"`
}

// Receipt is the settled outcome of a checkout. All amounts are truncated
// integers of the computed decimal values; Balance is the customer balance
// after settlement.
type Receipt struct {
	ID       string        `json:"receipt_id"`
	Customer string        `json:"customer"`
	Lines    []ReceiptLine `json:"lines"`
	Subtotal int64         `json:"subtotal"`
	Shipping int64         `json:"shipping"`
	Total    int64         `json:"total"`
	Balance  int64         `json:"balance"`
}

// ReceiptPresenter renders a settled receipt. It must only echo the amounts
// already computed by the orchestrator.
type ReceiptPresenter interface {
	PresentReceipt(r Receipt)
}

// ShipmentPresenter renders the shipment notice for the collected units.
type ShipmentPresenter interface {
	PresentShipment(m shipping.Manifest)
}

// Orchestrator runs the checkout transaction over a customer's cart: all
// lines and the balance are validated first, and only then do stock, balance
// and cart mutate together.
type Orchestrator struct {
	clock     domain.Clock
	receipts  ReceiptPresenter
	shipments ShipmentPresenter
}

func New(clock domain.Clock, receipts ReceiptPresenter, shipments ShipmentPresenter) *Orchestrator {
	return &Orchestrator{clock: clock, receipts: receipts, shipments: shipments}
}

// Checkout re-validates every cart line against live stock and expiry in
// insertion order, computes subtotal, shipping and total, and settles against
// the customer balance. Any failure aborts before the first mutation: stock,
// balance and cart are exactly as they were. On success the cart is cleared
// and the shipment notice (when shippable units exist) and receipt are
// emitted through the presenters.
func (o *Orchestrator) Checkout(customer *domain.Customer, c *cart.Cart) (Receipt, error) {
	if c.Empty() {
		return Receipt{}, domain.ErrEmptyCart
	}

	now := o.clock.Now()
	lines := c.Lines()

	subtotal := decimal.Zero
	var units []shipping.Unit
	for _, ln := range lines {
		p := ln.Product
		if p.Expired(now) {
			return Receipt{}, &domain.ProductError{Product: p.Name, Err: domain.ErrExpiredProduct}
		}
		// Live stock, not the snapshot Add validated against: another
		// checkout may have drained it since.
		if ln.Quantity > p.Quantity {
			return Receipt{}, &domain.ProductError{Product: p.Name, Err: domain.ErrInsufficientStock}
		}
		subtotal = subtotal.Add(p.Price.Mul(decimal.NewFromInt(int64(ln.Quantity))))
		if p.Shippable() {
			for i := 0; i < ln.Quantity; i++ {
				units = append(units, shipping.Unit{Name: p.Name, Weight: p.Weight})
			}
		}
	}

	quote := shipping.Calculate(units)
	total := subtotal.Add(decimal.NewFromInt(quote.Fee))
	if customer.Balance.LessThan(total) {
		return Receipt{}, domain.ErrInsufficientBalance
	}

	// Commit. Every check has passed, so none of these can fail.
	_ = customer.Deduct(total)
	for _, ln := range lines {
		_ = ln.Product.ReduceStock(ln.Quantity)
	}
	c.Clear()

	rcpt := Receipt{
		ID:       uuid.NewString(),
		Customer: customer.Name,
		Subtotal: subtotal.IntPart(),
		Shipping: quote.Fee,
		Total:    total.IntPart(),
		Balance:  customer.Balance.IntPart(),
	}
	for _, ln := range lines {
		amount := ln.Product.Price.Mul(decimal.NewFromInt(int64(ln.Quantity)))
		rcpt.Lines = append(rcpt.Lines, ReceiptLine{
			Name:     ln.Product.Name,
			Quantity: ln.Quantity,
			Amount:   amount.IntPart(),
		})
	}

	if len(quote.Units) > 0 && o.shipments != nil {
		o.shipments.PresentShipment(shipping.BuildManifest(quote))
	}
	if o.receipts != nil {
		o.receipts.PresentReceipt(rcpt)
	}
	return rcpt, nil
}
