// Package ledger reshapes the per-record payment column pairs into a
// unified chronological ledger of payment events.
package ledger

import (
	"sort"
	"time"

	"github.com/isaac24012000-oss/NOVIEMBRE-AFP-PRIMA/internal/model"
	"github.com/isaac24012000-oss/NOVIEMBRE-AFP-PRIMA/internal/normalize"
	"github.com/shopspring/decimal"
)

// Fallback labels for events missing descriptive fields.
const (
	unknownCompany  = "Desconocido"
	unknownCampaign = "Sin campaña"
)

// Build extracts payment events from the record set, one per populated
// payment stream. Events with neither a recorded payment nor a payment
// date are dropped. Built once per load; callers re-filter, never rebuild.
func Build(records []model.AccountRecord) []model.PaymentEvent {
	var events []model.PaymentEvent
	for _, r := range records {
		campaign := normalize.CleanText(r.Campaign, unknownCampaign)
		company := normalize.CleanText(r.CompanyName, unknownCompany)

		pairs := []struct {
			date   time.Time
			amount model.Amount
			typ    model.PaymentType
		}{
			{r.PlanillasPaidAt, r.RecPlanillas, model.PaymentPlanillas},
			{r.GastosPaidAt, r.RecGastos, model.PaymentGastos},
		}

		for _, p := range pairs {
			if !p.amount.Positive() && p.date.IsZero() {
				continue
			}
			events = append(events, model.PaymentEvent{
				Date:        p.date,
				Amount:      p.amount,
				Type:        p.typ,
				Campaign:    campaign,
				CompanyName: company,
			})
		}
	}
	return events
}

// FilterOptions narrows a ledger. Zero values match everything.
type FilterOptions struct {
	From     time.Time
	To       time.Time
	Campaign string
	Type     model.PaymentType
}

// Filter returns a fresh subsequence of events matching the options,
// ordered by date descending with undated events last. The input is never
// mutated. The date range, when set, excludes undated events.
func Filter(events []model.PaymentEvent, opts FilterOptions) []model.PaymentEvent {
	var out []model.PaymentEvent
	for _, e := range events {
		if opts.Campaign != "" && e.Campaign != opts.Campaign {
			continue
		}
		if opts.Type != "" && e.Type != opts.Type {
			continue
		}
		if !opts.From.IsZero() || !opts.To.IsZero() {
			if e.Date.IsZero() {
				continue
			}
			day := e.Date.Truncate(24 * time.Hour)
			if !opts.From.IsZero() && day.Before(opts.From.Truncate(24*time.Hour)) {
				continue
			}
			if !opts.To.IsZero() && day.After(opts.To.Truncate(24*time.Hour)) {
				continue
			}
		}
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[j].Date.IsZero() {
			return !out[i].Date.IsZero()
		}
		if out[i].Date.IsZero() {
			return false
		}
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// DailyPoint is one day's summed payment amount.
type DailyPoint struct {
	Day    time.Time
	Amount decimal.Decimal
}

// RollupByDay sums event amounts per calendar day, ascending by day.
// Undated events are excluded.
func RollupByDay(events []model.PaymentEvent) []DailyPoint {
	sums := make(map[time.Time]decimal.Decimal)
	for _, e := range events {
		if e.Date.IsZero() {
			continue
		}
		day := time.Date(e.Date.Year(), e.Date.Month(), e.Date.Day(), 0, 0, 0, 0, time.UTC)
		sums[day] = sums[day].Add(e.Amount.Decimal())
	}

	out := make([]DailyPoint, 0, len(sums))
	for day, amount := range sums {
		out = append(out, DailyPoint{Day: day, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out
}

// Cumulative prefix-sums a daily rollup in date order, the "recaudo
// acumulado" chart mode.
func Cumulative(daily []DailyPoint) []DailyPoint {
	out := make([]DailyPoint, len(daily))
	var running decimal.Decimal
	for i, p := range daily {
		running = running.Add(p.Amount)
		out[i] = DailyPoint{Day: p.Day, Amount: running}
	}
	return out
}

// Metrics are the headline numbers over a filtered ledger.
type Metrics struct {
	Events         int
	PlanillasCount int
	GastosCount    int
	PlanillasTotal decimal.Decimal
	GastosTotal    decimal.Decimal
}

// Summarize computes the ledger headline metrics.
func Summarize(events []model.PaymentEvent) Metrics {
	m := Metrics{Events: len(events)}
	for _, e := range events {
		switch e.Type {
		case model.PaymentPlanillas:
			m.PlanillasCount++
			m.PlanillasTotal = m.PlanillasTotal.Add(e.Amount.Decimal())
		case model.PaymentGastos:
			m.GastosCount++
			m.GastosTotal = m.GastosTotal.Add(e.Amount.Decimal())
		}
	}
	return m
}

// DateBounds returns the earliest and latest event dates, ignoring undated
// events. ok is false when no event carries a date.
func DateBounds(events []model.PaymentEvent) (minDay, maxDay time.Time, ok bool) {
	for _, e := range events {
		if e.Date.IsZero() {
			continue
		}
		if !ok || e.Date.Before(minDay) {
			minDay = e.Date
		}
		if !ok || e.Date.After(maxDay) {
			maxDay = e.Date
		}
		ok = true
	}
	return minDay, maxDay, ok
}
