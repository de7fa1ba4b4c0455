package utils

import (
	"github.com/shopspring/decimal"
)

// FormatWithPrecision formats an amount with exactly precision fraction digits.
// Example: 12.3 with precision 2 returns "12.30"; with precision 0 returns "12".
func FormatWithPrecision(amount decimal.Decimal, precision int32) string {
	return amount.StringFixed(precision)
}
