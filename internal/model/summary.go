package model

import "github.com/shopspring/decimal"

// TotalKey is the grouping key of the synthesized grand-total row.
const TotalKey = "TOTAL"

// SummaryRow is one aggregate row of a grouped report table. Percentages
// are derived from the row's own sums; the TOTAL row derives them from the
// grand totals rather than averaging per-group percentages.
type SummaryRow struct {
	Key          string
	Accounts     int
	Managed      int
	Debt         decimal.Decimal
	AdminFee     decimal.Decimal
	RecPlanillas decimal.Decimal
	RecGastos    decimal.Decimal
	PctManaged   float64
	PctPlanillas float64
	PctGastos    float64
}

// IsTotal reports whether this is the synthesized grand-total row.
func (r SummaryRow) IsTotal() bool {
	return r.Key == TotalKey
}
