package utils

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ConvertMinorUnits converts an amount in minor units by an exchange rate,
// rounding half-to-even so repeated conversions carry no directional bias.
func ConvertMinorUnits(amount int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(amount).Mul(rate).RoundBank(0).IntPart()
}

// FormatMinorUnits renders minor units as a major-unit string for display,
// e.g. 12345 EUR -> "123.45 EUR".
func FormatMinorUnits(amount int64, currency string) string {
	major := decimal.NewFromInt(amount).Div(decimal.NewFromInt(MinorUnitsPerMajor))
	return fmt.Sprintf("%s %s", major.StringFixed(2), currency)
}
