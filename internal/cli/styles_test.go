package cli

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatSoles(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{name: "small amount", amount: 5, want: "S/. 5.00"},
		{name: "thousands separator", amount: 1234.5, want: "S/. 1,234.50"},
		{name: "millions", amount: 1234567.89, want: "S/. 1,234,567.89"},
		{name: "zero", amount: 0, want: "S/. 0.00"},
		{name: "negative", amount: -1234.5, want: "S/. -1,234.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatSoles(decimal.NewFromFloat(tt.amount))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "12.5%", FormatPercent(12.49))
	assert.Equal(t, "0.0%", FormatPercent(0))
	assert.Equal(t, "100.0%", FormatPercent(100))
}
