package catalog

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Settings carries the engine's tunables. Values come from config.Config.
type Settings struct {
	DefaultPageSize  int
	MaxPageSize      int
	MinorUnitDivisor int64
	CurrencySymbol   string
}

// DefaultSettings mirrors the config defaults.
func DefaultSettings() Settings {
	return Settings{
		DefaultPageSize:  10,
		MaxPageSize:      100,
		MinorUnitDivisor: 100,
		CurrencySymbol:   "$",
	}
}

func (s Settings) divisor() decimal.Decimal {
	if s.MinorUnitDivisor <= 0 {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromInt(s.MinorUnitDivisor)
}

// places is the number of fraction digits implied by the divisor (100 -> 2).
func (s Settings) places() int32 {
	if s.MinorUnitDivisor <= 1 {
		return 0
	}
	return int32(len(strconv.FormatInt(s.MinorUnitDivisor-1, 10)))
}

// ToDisplay converts minor units into a display amount.
func (s Settings) ToDisplay(minor int64) decimal.Decimal {
	return decimal.NewFromInt(minor).Div(s.divisor()).Round(s.places())
}

// ToMinor converts a display amount into minor units, rounding half away from zero.
func (s Settings) ToMinor(amount decimal.Decimal) int64 {
	return amount.Mul(s.divisor()).Round(0).IntPart()
}

// FormatPrice renders a single price, e.g. "$100.00".
func (s Settings) FormatPrice(minor int64) string {
	return s.CurrencySymbol + s.ToDisplay(minor).StringFixed(s.places())
}

// FormatRange renders "$min-$max", or nil when both bounds are equal.
func (s Settings) FormatRange(min, max int64) *string {
	if min == max {
		return nil
	}
	out := s.FormatPrice(min) + "-" + s.FormatPrice(max)
	return &out
}
