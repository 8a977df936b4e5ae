package output

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatINR formats an amount as whole rupees with Indian digit grouping,
// e.g. 1234567.6 -> ₹12,34,568. Rounding happens only here, at display time.
func FormatINR(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}
	return sign + "₹" + GroupIndian(rounded.StringFixed(0))
}

// FormatPercent formats a percentage value such as 4 -> "4%"
func FormatPercent(p decimal.Decimal) string {
	return p.String() + "%"
}

// GroupIndian inserts lakh/crore separators into a string of digits:
// the last three digits form one group, the rest are grouped in pairs.
func GroupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(append(groups, tail), ",")
}
