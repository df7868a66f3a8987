package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatGrouped renders amount rounded to two places with thousands separators.
// Example: -1234567.5 returns "-1,234,567.50"
func FormatGrouped(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + "." + frac
}
