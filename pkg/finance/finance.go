// Package finance provides the supporting real-estate calculators: rental
// return on investment, commission splits and down payment savings plans.
package finance

import (
	"errors"
	"fmt"

	"github.com/iwvelando/homecalc/pkg/mathutil"
)

// ErrInvalidInput reports a negative amount, an out-of-range percentage or a
// non-finite number.
var ErrInvalidInput = errors.New("invalid input")

const percentDivisor = 100.0

func percentToDecimal(percent float64) float64 {
	return percent / percentDivisor
}

func checkNonNegative(name string, val float64) error {
	if !mathutil.IsFinite(val) {
		return fmt.Errorf("%w: %s must be finite", ErrInvalidInput, name)
	}
	if val < 0 {
		return fmt.Errorf("%w: %s cannot be negative, got %.2f", ErrInvalidInput, name, val)
	}
	return nil
}

func checkPercent(name string, val float64) error {
	if err := checkNonNegative(name, val); err != nil {
		return err
	}
	if val > percentDivisor {
		return fmt.Errorf("%w: %s must not exceed 100%%, got %.2f", ErrInvalidInput, name, val)
	}
	return nil
}
