// Package model defines the core domain types for the collections report.
package model

import "time"

// AccountRecord is one row of the source workbook: a single delinquent
// account with its campaign assignment and recovery state.
type AccountRecord struct {
	PlanillasPaidAt time.Time
	GastosPaidAt    time.Time
	LastActionAt    time.Time
	Document        string
	CompanyName     string
	Campaign        string
	Advisor         string
	Priority        string // lexicographic code, e.g. "13", "07"
	Contactability  string
	Operator        string
	TotalDebt       Amount
	AdminFee        Amount
	RecPlanillas    Amount
	RecGastos       Amount
}

// Managed reports whether the account has been worked at least once.
func (r AccountRecord) Managed() bool {
	return !r.LastActionAt.IsZero()
}

// PaymentType distinguishes the two recovery streams of an account.
type PaymentType string

const (
	// PaymentPlanillas is a recovery against the payroll debt.
	PaymentPlanillas PaymentType = "PLANILLAS"
	// PaymentGastos is a recovery against administrative fees.
	PaymentGastos PaymentType = "GASTOS"
)

// PaymentEvent is one dated payment extracted from an account record.
// A record with both payment streams populated yields two events.
type PaymentEvent struct {
	Date        time.Time
	Campaign    string
	CompanyName string
	Type        PaymentType
	Amount      Amount
}
