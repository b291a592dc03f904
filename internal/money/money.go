// Package money formats prices the way the storefront and reports show them.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

const Currency = "Rs."

// Format renders d as "Rs. 1,234,567.50".
func Format(d decimal.Decimal) string {
	return Currency + " " + Plain(d)
}

// Plain renders d with thousands separators and two decimals, no currency.
func Plain(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if d.IsNegative() && !d.Round(2).IsZero() {
		b.WriteByte('-')
	}
	b.WriteString(group(intPart))
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Sum adds amounts.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
