// Package mortgage implements the closed-form mortgage and affordability
// rules used by the calculator: loan amortization, the stress-test
// qualifying payment, GDS/TDS debt ratios, mortgage insurance premium tiers,
// minimum down payment rules and back-solving the maximum affordable price.
//
// Every function is pure. Inputs are validated at the boundary so that NaN
// or infinite values never reach a result; failures wrap ErrInvalidInput or
// ErrDivisionByZero and can be inspected with errors.Is.
package mortgage

import (
	"errors"
	"fmt"

	"github.com/iwvelando/homecalc/pkg/mathutil"
)

var (
	// ErrInvalidInput reports a negative amount, a non-positive term or a
	// non-finite number.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDivisionByZero reports a calculation whose denominator would be
	// zero, such as a debt ratio against no income.
	ErrDivisionByZero = errors.New("division by zero")
)

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func requireFinite(name string, vals ...float64) error {
	if !mathutil.AllFinite(vals...) {
		return invalidf("%s must be finite", name)
	}
	return nil
}

func requireNonNegative(name string, val float64) error {
	if err := requireFinite(name, val); err != nil {
		return err
	}
	if val < 0 {
		return invalidf("%s cannot be negative, got %.2f", name, val)
	}
	return nil
}
