package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// parseAmount parses a monetary value, tolerating thousands separators and
// surrounding whitespace. Malformed input yields an invalid NullDecimal, not
// an error; callers insert the row with a null amount.
func parseAmount(raw string) decimal.NullDecimal {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" {
		return decimal.NullDecimal{}
	}
	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: value, Valid: true}
}

// parseInt parses an integer field, returning nil when unparseable.
func parseInt(raw string) *int {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return nil
	}
	value, err := strconv.Atoi(cleaned)
	if err != nil {
		return nil
	}
	return &value
}

// parseFloat parses a float field, returning nil when unparseable.
func parseFloat(raw string) *float64 {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" {
		return nil
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &value
}

// dateLayouts are the formats seen across uploaded statements. DD/MM/YYYY
// comes first: the corpus is UAE-style paperwork.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"2 January 2006",
	"2006-01-02 15:04:05",
}

// parseDate parses a date best-effort across known layouts, nil when none
// matches.
func parseDate(raw string) *time.Time {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return &t
		}
	}
	return nil
}
