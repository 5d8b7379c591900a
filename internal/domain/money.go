package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatRupees renders an amount with the rupee sign and Indian digit
// grouping, e.g. ₹14,50,000. Fractions are shown only when present.
func FormatRupees(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-₹" + GroupIndian(amount.Abs())
	}
	return "₹" + GroupIndian(amount)
}

// GroupIndian groups the integer digits as lakhs and crores (3, then 2s).
func GroupIndian(amount decimal.Decimal) string {
	neg := amount.IsNegative()
	amount = amount.Abs()

	s := amount.StringFixed(2)
	if amount.Equal(amount.Round(0)) {
		s = amount.StringFixed(0)
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	if len(intPart) <= 3 {
		b.WriteString(intPart)
	} else {
		head, tail := intPart[:len(intPart)-3], intPart[len(intPart)-3:]
		lead := len(head) % 2
		if lead > 0 {
			b.WriteString(head[:lead])
		}
		for i := lead; i < len(head); i += 2 {
			if b.Len() > 0 && !(neg && b.Len() == 1) {
				b.WriteByte(',')
			}
			b.WriteString(head[i : i+2])
		}
		b.WriteByte(',')
		b.WriteString(tail)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}
