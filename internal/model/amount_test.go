package model

import (
	"testing"
	"time"
)

func TestAmountPositive(t *testing.T) {
	tests := []struct {
		name   string
		amount Amount
		want   bool
	}{
		{name: "absent", amount: Amount{}, want: false},
		{name: "recorded zero", amount: AmountFromFloat(0), want: false},
		{name: "negative", amount: AmountFromFloat(-10), want: false},
		{name: "positive", amount: AmountFromFloat(150.75), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.amount.Positive(); got != tt.want {
				t.Errorf("Positive() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAmountDecimalWhenAbsent(t *testing.T) {
	var a Amount
	if !a.Decimal().IsZero() {
		t.Errorf("Decimal() for absent amount = %v, want zero", a.Decimal())
	}
	if a.Float64() != 0 {
		t.Errorf("Float64() for absent amount = %v, want 0", a.Float64())
	}
}

func TestManaged(t *testing.T) {
	tests := []struct {
		name   string
		record AccountRecord
		want   bool
	}{
		{name: "no action date", record: AccountRecord{}, want: false},
		{
			name:   "with action date",
			record: AccountRecord{LastActionAt: time.Date(2025, time.November, 3, 0, 0, 0, 0, time.UTC)},
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.Managed(); got != tt.want {
				t.Errorf("Managed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSummaryRowIsTotal(t *testing.T) {
	if (SummaryRow{Key: "FLUJO"}).IsTotal() {
		t.Error("IsTotal() = true for a campaign row")
	}
	if !(SummaryRow{Key: TotalKey}).IsTotal() {
		t.Error("IsTotal() = false for the TOTAL row")
	}
}
