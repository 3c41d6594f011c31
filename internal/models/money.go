package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Tolerance is the maximum absolute difference two amounts may have and
// still be considered equal. Users enter amounts rounded to the cent, so
// split sums and dirty comparisons allow one cent of slack.
var Tolerance = decimal.New(1, -2)

// ParseAmount parses a user-entered amount string into a decimal.
// It accepts both "1234.56" and the regional "1.234,56" / "1234,56" styles
// and rejects anything that does not parse to a finite number.
func ParseAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(s)
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	cleaned = strings.ReplaceAll(cleaned, " ", "")

	if strings.Contains(cleaned, ",") {
		// Comma present: treat it as the decimal separator and any dots
		// as thousands separators.
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount '%s': %w", s, err)
	}
	return d, nil
}

// WithinTolerance reports whether two amounts differ by at most Tolerance.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().Cmp(Tolerance) <= 0
}

// FormatAmount renders an amount the way the form displays it, with two
// decimal places.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
