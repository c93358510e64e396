package presenter

import (
	"fmt"
	"io"

	"github.com/tahaaa22/Fawry--e-commerce-system/internal/pos/checkout"
	"github.com/tahaaa22/Fawry--e-commerce-system/internal/pos/shipping"
)

// Console renders receipts and shipment notices in the classic register
// format. The layout is fixed; downstream tooling parses it.
type Console struct {
	Out io.Writer
}

func NewConsole(out io.Writer) *Console {
	return &Console{Out: out}
}

func (c *Console) PresentShipment(m shipping.Manifest) {
	fmt.Fprintln(c.Out, "** Shipment notice **")
	for _, s := range m.Summary {
		fmt.Fprintf(c.Out, "%dx %s\n", s.Count, s.Name)
	}
	for _, g := range m.UnitGrams {
		fmt.Fprintf(c.Out, "%dg\n", g)
	}
	fmt.Fprintf(c.Out, "Total package weight %skg\n", m.TotalWeight.StringFixed(1))
}

func (c *Console) PresentReceipt(r checkout.Receipt) {
	fmt.Fprintln(c.Out, "** Checkout receipt **")
	for _, ln := range r.Lines {
		fmt.Fprintf(c.Out, "%dx %-12s%d\n", ln.Quantity, ln.Name, ln.Amount)
	}
	fmt.Fprintln(c.Out, "----------------------")
	fmt.Fprintf(c.Out, "Subtotal         %d\n", r.Subtotal)
	fmt.Fprintf(c.Out, "Shipping         %d\n", r.Shipping)
	fmt.Fprintf(c.Out, "Amount           %d\n", r.Total)
	fmt.Fprintf(c.Out, "Balance          %d\n", r.Balance)
	fmt.Fprintln(c.Out, "END.")
	fmt.Fprintln(c.Out)
}
