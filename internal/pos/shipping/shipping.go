package shipping

import (
	"github.com/shopspring/decimal"

	"github.com/tahaaa22/Fawry--e-commerce-system/internal/pos/domain"
)

// Unit is one physical instance of a shippable product line. A cart line of
// three identical items expands into three units, each weighted on its own.
type Unit struct {
	Name   domain.ProductName
	Weight decimal.Decimal // kilograms
}

// Quote is the outcome of the fee calculation over an ordered set of units.
type Quote struct {
	Units       []Unit
	TotalWeight decimal.Decimal // kilograms
	Fee         int64
}

// Calculate totals the unit weights and charges 3 currency units per started
// 100g (fee = ceil(totalWeight * 10) * 3). An empty unit set costs nothing.
func Calculate(units []Unit) Quote {
	total := decimal.Zero
	for _, u := range units {
		total = total.Add(u.Weight)
	}
	fee := total.Mul(decimal.NewFromInt(10)).Ceil().IntPart() * 3
	return Quote{Units: units, TotalWeight: total, Fee: fee}
}

// SummaryLine is one "Nx name" entry of the shipment notice.
type SummaryLine struct {
	Name  domain.ProductName
	Count int
}

// Manifest is the shipment notice handed to the presenter: grouped counts in
// first-seen order, one gram weight per physical unit in collection order,
// and the package total in kilograms.
type Manifest struct {
	Summary     []SummaryLine
	UnitGrams   []int64
	TotalWeight decimal.Decimal
}

// BuildManifest groups a quote's units for presentation. Gram weights are
// truncated to whole grams.
func BuildManifest(q Quote) Manifest {
	grams := decimal.NewFromInt(1000)
	m := Manifest{TotalWeight: q.TotalWeight}
	seen := make(map[domain.ProductName]int)
	for _, u := range q.Units {
		if i, ok := seen[u.Name]; ok {
			m.Summary[i].Count++
		} else {
			seen[u.Name] = len(m.Summary)
			m.Summary = append(m.Summary, SummaryLine{Name: u.Name, Count: 1})
		}
		m.UnitGrams = append(m.UnitGrams, u.Weight.Mul(grams).IntPart())
	}
	return m
}
