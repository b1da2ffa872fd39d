// Package format renders amounts the way the simulator UI shows them.
package format

import (
	"fmt"
	"math"
	"strings"
)

// Currency returns an amount in Brazilian reais with thousands separators
// (e.g., "-R$ 1.234,56").
func Currency(amount float64) string {
	formatted := formatPositiveDecimal(math.Abs(amount))
	if amount < 0 && formatted != "0,00" {
		return "-R$ " + formatted
	}
	return "R$ " + formatted
}

// NumericCurrency returns an amount without the currency symbol (e.g., "-1.234,56").
func NumericCurrency(amount float64) string {
	formatted := formatPositiveDecimal(math.Abs(amount))
	if amount < 0 && formatted != "0,00" {
		return "-" + formatted
	}
	return formatted
}

// Percent renders a percentage value with two decimals (e.g., "1,45%").
// NaN renders as an empty string.
func Percent(value float64) string {
	if math.IsNaN(value) {
		return ""
	}
	return NumericCurrency(value) + "%"
}

func formatPositiveDecimal(value float64) string {
	formatted := fmt.Sprintf("%.2f", value)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte('.')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + "," + decPart
}
