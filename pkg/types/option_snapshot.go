package types

import "github.com/shopspring/decimal"

// OptionSnapshot is the denormalized copy of a chosen menu option frozen
// into an order line at checkout time. Later edits or deletions of the
// live option never reach it.
type OptionSnapshot struct {
	Name       string          `json:"name"`
	PriceDelta decimal.Decimal `json:"price_delta"`
}

// OptionSnapshots is stored as a JSON column on order lines.
type OptionSnapshots []OptionSnapshot

// TotalDelta sums the price deltas of every snapshotted option.
func (s OptionSnapshots) TotalDelta() decimal.Decimal {
	total := decimal.Zero
	for _, opt := range s {
		total = total.Add(opt.PriceDelta)
	}
	return total
}
