package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

// Finite returns v, or zero when v is NaN or infinite. Every calculation
// step sanitizes its numeric inputs through this so bad upstream data
// degrades to zero instead of poisoning financial output.
func Finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Round rounds v at the given number of decimal places, ties going away from
// zero: half-up for the non-negative amounts monetary math produces, and the
// mirror image for negatives such as a negative rounding adjustment. Rounding
// is applied on final division results only, never on intermediate sums.
func Round(v float64, places int32) float64 {
	v = Finite(v)
	out, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return out
}

// percentOf returns the rounded percentage share of a base amount.
func percentOf(base, percent float64, places int32) float64 {
	return Round(Finite(base)*Finite(percent)/100, places)
}

// lessPercent returns base reduced by the given percentage, rounded.
func lessPercent(base, percent float64, places int32) float64 {
	base = Finite(base)
	return Round(base-base*Finite(percent)/100, places)
}
