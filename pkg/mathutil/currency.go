// Package mathutil holds the numeric helpers shared by the calculators.
package mathutil

import (
	"math"

	"github.com/iwvelando/homecalc/pkg/constants"
	"github.com/shopspring/decimal"
)

// RoundCents rounds half away from zero to the cent in decimal, so amounts
// such as 1.005 that sit just below the midpoint in binary still round up.
// NaN and infinities pass through.
func RoundCents(val float64) float64 {
	if !IsFinite(val) {
		return val
	}
	rounded, _ := decimal.NewFromFloat(val).Round(constants.CurrencyDecimalPlaces).Float64()
	if rounded == 0 {
		// No negative zero.
		return 0
	}
	return rounded
}

// IsFinite reports whether val is neither NaN nor infinite.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// AllFinite reports whether every value is finite.
func AllFinite(vals ...float64) bool {
	for _, v := range vals {
		if !IsFinite(v) {
			return false
		}
	}
	return true
}

// CalculatePercentage returns value as a percentage of total, or 0 when
// total is 0.
func CalculatePercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * constants.PercentageMultiplier
}
