package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_FormatPrice(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, "$100.00", s.FormatPrice(10000))
	assert.Equal(t, "$0.05", s.FormatPrice(5))
	assert.Equal(t, "$1234.50", s.FormatPrice(123450))

	s.CurrencySymbol = "€"
	assert.Equal(t, "€9.99", s.FormatPrice(999))
}

func TestSettings_FormatRange(t *testing.T) {
	s := DefaultSettings()
	assert.Nil(t, s.FormatRange(10000, 10000))

	r := s.FormatRange(9000, 12000)
	require.NotNil(t, r)
	assert.Equal(t, "$90.00-$120.00", *r)
}

func TestSettings_MinorUnitConversion(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, int64(9999), s.ToMinor(decimal.RequireFromString("99.99")))
	assert.Equal(t, int64(1001), s.ToMinor(decimal.RequireFromString("10.005")))
	assert.True(t, decimal.RequireFromString("99.99").Equal(s.ToDisplay(9999)))

	yen := Settings{MinorUnitDivisor: 1, CurrencySymbol: "¥"}
	assert.Equal(t, "¥1500", yen.FormatPrice(1500))
	assert.Equal(t, int64(1500), yen.ToMinor(decimal.NewFromInt(1500)))
}
