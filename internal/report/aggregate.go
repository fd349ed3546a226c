// Package report computes the grouped KPI summary tables of the dashboard.
package report

import (
	"sort"

	"github.com/isaac24012000-oss/NOVIEMBRE-AFP-PRIMA/internal/model"
	"github.com/isaac24012000-oss/NOVIEMBRE-AFP-PRIMA/internal/normalize"
	"github.com/shopspring/decimal"
)

// GroupKeyFunc selects the grouping key of a record.
type GroupKeyFunc func(model.AccountRecord) string

// ByCampaign groups records by campaign.
func ByCampaign(r model.AccountRecord) string { return r.Campaign }

// ByAdvisor groups records by full advisor name.
func ByAdvisor(r model.AccountRecord) string { return r.Advisor }

// ByAdvisorFirstName groups records by the advisor's first name, the key
// used by the per-advisor charts.
func ByAdvisorFirstName(r model.AccountRecord) string { return normalize.FirstName(r.Advisor) }

// ByPriority groups records by priority code.
func ByPriority(r model.AccountRecord) string { return r.Priority }

// Summarize produces one SummaryRow per distinct key value, sorted by key
// ascending, with a synthesized grand-total row appended last. The total
// row's percentages come from the grand totals, not from averaging the
// per-group percentages. An empty record set yields no rows at all so
// callers can render an explicit no-data state.
func Summarize(records []model.AccountRecord, key GroupKeyFunc) []model.SummaryRow {
	rows := summarize(records, key)
	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	return appendTotal(rows, records)
}

// SummarizeByPriority is Summarize keyed on priority code, sorted by
// descending code as the priority table presents it.
func SummarizeByPriority(records []model.AccountRecord) []model.SummaryRow {
	rows := summarize(records, ByPriority)
	sort.Slice(rows, func(i, j int) bool { return rows[i].Key > rows[j].Key })
	return appendTotal(rows, records)
}

func summarize(records []model.AccountRecord, key GroupKeyFunc) []model.SummaryRow {
	groups := make(map[string]*model.SummaryRow)
	var order []string

	for _, r := range records {
		k := key(r)
		row, ok := groups[k]
		if !ok {
			row = &model.SummaryRow{Key: k}
			groups[k] = row
			order = append(order, k)
		}
		accumulate(row, r)
	}

	rows := make([]model.SummaryRow, 0, len(order))
	for _, k := range order {
		row := groups[k]
		derivePercentages(row)
		rows = append(rows, *row)
	}
	return rows
}

func appendTotal(rows []model.SummaryRow, records []model.AccountRecord) []model.SummaryRow {
	if len(rows) == 0 {
		return nil
	}

	total := model.SummaryRow{Key: model.TotalKey}
	for _, r := range records {
		accumulate(&total, r)
	}
	derivePercentages(&total)
	return append(rows, total)
}

func accumulate(row *model.SummaryRow, r model.AccountRecord) {
	row.Accounts++
	if r.Managed() {
		row.Managed++
	}
	row.Debt = row.Debt.Add(r.TotalDebt.Decimal())
	row.AdminFee = row.AdminFee.Add(r.AdminFee.Decimal())
	row.RecPlanillas = row.RecPlanillas.Add(r.RecPlanillas.Decimal())
	row.RecGastos = row.RecGastos.Add(r.RecGastos.Decimal())
}

// derivePercentages fills the ratio columns, guarding every denominator:
// a zero denominator yields 0, never a fault.
func derivePercentages(row *model.SummaryRow) {
	if row.Accounts > 0 {
		row.PctManaged = float64(row.Managed) / float64(row.Accounts) * 100
	}
	row.PctPlanillas = pct(row.RecPlanillas, row.Debt)
	row.PctGastos = pct(row.RecGastos, row.AdminFee)
}

func pct(num, den decimal.Decimal) float64 {
	if !den.IsPositive() {
		return 0
	}
	return num.Div(den).Mul(decimal.NewFromInt(100)).InexactFloat64()
}
