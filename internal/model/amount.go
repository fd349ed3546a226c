package model

import "github.com/shopspring/decimal"

// Amount is an optional monetary value. The zero value means "no amount
// recorded", which is distinct from a recorded amount of zero: both sum
// as zero, but only a recorded positive amount counts as a payment.
type Amount struct {
	Value decimal.Decimal
	Valid bool
}

// NewAmount returns a recorded amount.
func NewAmount(v decimal.Decimal) Amount {
	return Amount{Value: v, Valid: true}
}

// AmountFromFloat returns a recorded amount from a float value.
func AmountFromFloat(f float64) Amount {
	return Amount{Value: decimal.NewFromFloat(f), Valid: true}
}

// Positive reports whether a payment was actually recorded.
func (a Amount) Positive() bool {
	return a.Valid && a.Value.IsPositive()
}

// Decimal returns the value, or zero when absent.
func (a Amount) Decimal() decimal.Decimal {
	if !a.Valid {
		return decimal.Zero
	}
	return a.Value
}

// Float64 returns the value as a float, or 0 when absent.
func (a Amount) Float64() float64 {
	return a.Decimal().InexactFloat64()
}
