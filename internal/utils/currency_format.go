package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MoneyPrecision is the number of decimals amounts are rounded to for display.
const MoneyPrecision = 2

// FormatWithPrecision formats an amount with the given precision.
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.StringFixed(int32(precision))
}

// FormatNOK renders an amount the way Norwegian invoices print it:
// space-grouped thousands, comma decimals and a "kr" prefix, e.g. "kr 1 250,00".
func FormatNOK(amount decimal.Decimal) string {
	fixed := amount.StringFixed(MoneyPrecision)
	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, fracPart, _ := strings.Cut(fixed, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}

	out := "kr " + b.String() + "," + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
