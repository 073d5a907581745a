package util

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatFCFA renders an amount the way the app displays money everywhere:
// integer part grouped by thousands with spaces, no decimals, "FCFA" suffix.
// 1234567.89 renders as "1 234 568 FCFA".
func FormatFCFA(amount decimal.Decimal) string {
	return groupThousands(amount.Round(0).String()) + " FCFA"
}

func groupThousands(digits string) string {
	neg := strings.HasPrefix(digits, "-")
	if neg {
		digits = digits[1:]
	}

	var b strings.Builder
	n := len(digits)
	for i, r := range digits {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
