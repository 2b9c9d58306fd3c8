package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestConvertMinorUnits_HalfToEven(t *testing.T) {
	half := decimal.RequireFromString("0.5")

	// 2.5 rounds down to 2, 3.5 rounds up to 4
	assert.Equal(t, int64(2), ConvertMinorUnits(5, half))
	assert.Equal(t, int64(4), ConvertMinorUnits(7, half))
}

func TestConvertMinorUnits_NoBiasOverRepeatedHalves(t *testing.T) {
	half := decimal.RequireFromString("0.5")

	// Converting consecutive odd amounts alternates rounding direction, so
	// the accumulated error stays near zero instead of drifting
	var converted, exactTwice int64
	for amount := int64(1); amount <= 100; amount += 2 {
		converted += ConvertMinorUnits(amount, half)
		exactTwice += amount
	}
	assert.Equal(t, exactTwice, converted*2)
}

func TestConvertMinorUnits_IdentityRate(t *testing.T) {
	one := decimal.NewFromInt(1)

	assert.Equal(t, int64(12345), ConvertMinorUnits(12345, one))
	assert.Equal(t, int64(-500), ConvertMinorUnits(-500, one))
	assert.Equal(t, int64(0), ConvertMinorUnits(0, one))
}

func TestConvertMinorUnits_FractionalRate(t *testing.T) {
	rate := decimal.RequireFromString("1.1")

	assert.Equal(t, int64(1100), ConvertMinorUnits(1000, rate))
	// 999 * 1.1 = 1098.9 rounds to 1099
	assert.Equal(t, int64(1099), ConvertMinorUnits(999, rate))
}

func TestFormatMinorUnits(t *testing.T) {
	assert.Equal(t, "123.45 EUR", FormatMinorUnits(12345, "EUR"))
	assert.Equal(t, "-0.50 USD", FormatMinorUnits(-50, "USD"))
	assert.Equal(t, "0.00 JPY", FormatMinorUnits(0, "JPY"))
}
