// Package normalize cleans raw workbook cells into typed values. Every
// function here is total: unparseable input yields an absent sentinel,
// never an error.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/isaac24012000-oss/NOVIEMBRE-AFP-PRIMA/internal/model"
	"github.com/shopspring/decimal"
)

var (
	currencyPrefix = regexp.MustCompile(`S/?\.?\s*`)
	nonAmountChars = regexp.MustCompile(`[^0-9,.\-]`)
)

// serialEpoch is day 0 of spreadsheet serial dates.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// dateLayouts are tried in order for textual dates. Day-first formats come
// first: the source workbook uses Peruvian date conventions.
var dateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02/01/06",
	"2/1/06",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"2006-01-02 15:04:05",
}

// CleanAmount parses a currency-like cell into an optional amount.
// It strips the "S/." prefix and any character outside digits, comma,
// period and minus. When both comma and period appear the comma is a
// thousands separator; a lone comma is a decimal separator.
func CleanAmount(raw string) model.Amount {
	s := strings.TrimSpace(raw)
	if s == "" {
		return model.Amount{}
	}

	s = currencyPrefix.ReplaceAllString(s, "")
	s = nonAmountChars.ReplaceAllString(s, "")
	if s == "" {
		return model.Amount{}
	}

	switch {
	case strings.Contains(s, ",") && strings.Contains(s, "."):
		s = strings.ReplaceAll(s, ",", "")
	case strings.Contains(s, ","):
		s = strings.ReplaceAll(s, ",", ".")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return model.Amount{}
	}
	return model.NewAmount(d)
}

// ParseDate parses a date-like cell. Purely numeric cells are spreadsheet
// serial dates counted from 1899-12-30; anything else is tried as a
// day-first textual date. The zero time means "no date".
func ParseDate(raw string) time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial < 0 {
			return time.Time{}
		}
		return serialEpoch.AddDate(0, 0, int(serial))
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// CleanText trims a text cell and substitutes a fallback when empty.
func CleanText(raw, fallback string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return fallback
	}
	return s
}

// FirstName extracts the leading word of an advisor's full name, the key
// the advisor charts group by.
func FirstName(full string) string {
	fields := strings.Fields(full)
	if len(fields) == 0 {
		return strings.TrimSpace(full)
	}
	return fields[0]
}
