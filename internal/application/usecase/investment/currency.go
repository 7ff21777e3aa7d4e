// Package investment contains investment category and allocation use cases.
package investment

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL renders an amount in Brazilian Real formatting ("R$ 1.234,56").
// Amounts are rounded half-up to whole cents, so sub-cent values can carry
// into the next cent ("999.999" renders as "R$ 1.000,00").
func FormatBRL(amount decimal.Decimal) string {
	negative := amount.IsNegative()
	fixed := amount.Abs().StringFixed(2)

	intPart := fixed[:len(fixed)-3]
	fracPart := fixed[len(fixed)-2:]

	var grouped strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(digit)
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return "R$ " + sign + grouped.String() + "," + fracPart
}
