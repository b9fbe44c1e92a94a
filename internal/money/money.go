// Package money holds the numeric and formatting rules shared by every
// rendering of an invoice. Both the preview and the PDF export go through
// these functions, so the two can never disagree on a digit.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Zero is decimal zero
var Zero = decimal.Zero

// Round2 rounds to 2 decimal places, half away from zero.
// This is the single rounding rule of the system.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ParseOrZero parses a raw user input as a decimal number.
// Empty or unparsable input degrades to zero; it never returns an error.
func ParseOrZero(raw string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return Zero
	}
	return d
}

// LineAmount computes a line amount: round2(quantity * rate)
func LineAmount(quantity, rate decimal.Decimal) decimal.Decimal {
	return Round2(quantity.Mul(rate))
}

// Sum sums a slice of decimals
func Sum(values []decimal.Decimal) decimal.Decimal {
	result := Zero
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}

// Format renders a decimal with exactly two decimal places ("500.00").
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatWithCurrency renders "<amount> <currency>" ("500.00 RSD").
// The suffix placement is part of the render contract.
func FormatWithCurrency(d decimal.Decimal, currency string) string {
	return Format(d) + " " + currency
}

// FormatQuantity renders a quantity without trailing zeros ("10", "2.5").
func FormatQuantity(d decimal.Decimal) string {
	return d.String()
}
