package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAmount formats a monetary amount with thousand separators and two
// decimals, e.g. 15000.5 -> "15.000,50". Used for receipts and log lines.
func FormatAmount(amount decimal.Decimal) string {
	formatted := amount.StringFixed(2)

	parts := strings.Split(formatted, ".")
	integerPart := parts[0]
	decimalPart := parts[1]

	negative := false
	if strings.HasPrefix(integerPart, "-") {
		negative = true
		integerPart = integerPart[1:]
	}

	var result []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		result = append([]string{integerPart[start:i]}, result...)
	}

	out := strings.Join(result, ".") + "," + decimalPart
	if negative {
		out = "-" + out
	}
	return out
}
