package report

import (
	"sort"

	"github.com/isaac24012000-oss/NOVIEMBRE-AFP-PRIMA/internal/model"
	"github.com/shopspring/decimal"
)

// Headline holds the dashboard's top-level KPI block.
type Headline struct {
	TotalAccounts int
	Managed       int
	Debt          decimal.Decimal
	AdminFee      decimal.Decimal
	RecPlanillas  decimal.Decimal
	RecGastos     decimal.Decimal
	PctSwept      float64
}

// ComputeHeadline sums the full record set into the KPI block. PctSwept is
// the share of accounts with at least one management action.
func ComputeHeadline(records []model.AccountRecord) Headline {
	h := Headline{TotalAccounts: len(records)}
	for _, r := range records {
		if r.Managed() {
			h.Managed++
		}
		h.Debt = h.Debt.Add(r.TotalDebt.Decimal())
		h.AdminFee = h.AdminFee.Add(r.AdminFee.Decimal())
		h.RecPlanillas = h.RecPlanillas.Add(r.RecPlanillas.Decimal())
		h.RecGastos = h.RecGastos.Add(r.RecGastos.Decimal())
	}
	if h.TotalAccounts > 0 {
		h.PctSwept = float64(h.Managed) / float64(h.TotalAccounts) * 100
	}
	return h
}

// ChartPoint is one labeled value of a chart feed.
type ChartPoint struct {
	Label  string
	Amount decimal.Decimal
}

// AmountSelector picks which recovered amount a chart plots.
type AmountSelector func(model.SummaryRow) decimal.Decimal

// PlanillasAmount selects recovered planillas.
func PlanillasAmount(row model.SummaryRow) decimal.Decimal { return row.RecPlanillas }

// GastosAmount selects recovered admin-fee amounts.
func GastosAmount(row model.SummaryRow) decimal.Decimal { return row.RecGastos }

// ChartFeed turns summary rows into a chart series: the total row and
// zero-amount groups are dropped, remaining points sorted by amount
// ascending as the horizontal bar charts render them.
func ChartFeed(rows []model.SummaryRow, sel AmountSelector) []ChartPoint {
	var points []ChartPoint
	for _, row := range rows {
		if row.IsTotal() {
			continue
		}
		amount := sel(row)
		if !amount.IsPositive() {
			continue
		}
		points = append(points, ChartPoint{Label: row.Key, Amount: amount})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Amount.LessThan(points[j].Amount) })
	return points
}

// FilterRecords narrows the record set by campaign and advisor. Empty
// selectors match everything, mirroring the TOTAL / TODOS filter options.
func FilterRecords(records []model.AccountRecord, campaign, advisor string) []model.AccountRecord {
	if campaign == "" && advisor == "" {
		return records
	}
	var out []model.AccountRecord
	for _, r := range records {
		if campaign != "" && r.Campaign != campaign {
			continue
		}
		if advisor != "" && r.Advisor != advisor {
			continue
		}
		out = append(out, r)
	}
	return out
}
