package mortgage

import "github.com/iwvelando/homecalc/pkg/constants"

// DownPaymentRules describes the mandated minimum down payment: LowerRate of
// the price up to LowerLimit, plus MiddleRate of the excess below
// UpperLimit, and UpperRate of the whole price at or above UpperLimit.
type DownPaymentRules struct {
	LowerLimit float64
	UpperLimit float64
	LowerRate  float64
	MiddleRate float64
	UpperRate  float64
}

// DefaultDownPaymentRules returns the 5% / 10% / 20% schedule.
func DefaultDownPaymentRules() DownPaymentRules {
	return DownPaymentRules{
		LowerLimit: constants.DefaultLowerPriceLimit,
		UpperLimit: constants.DefaultUpperPriceLimit,
		LowerRate:  constants.DefaultLowerDownRate,
		MiddleRate: constants.DefaultMiddleDownRate,
		UpperRate:  constants.DefaultUpperDownRate,
	}
}

// Validate checks the rules are ordered and the rates are fractions.
func (r DownPaymentRules) Validate() error {
	if err := requireNonNegative("lower price limit", r.LowerLimit); err != nil {
		return err
	}
	if err := requireNonNegative("upper price limit", r.UpperLimit); err != nil {
		return err
	}
	if r.UpperLimit < r.LowerLimit {
		return invalidf("upper price limit %.2f is below lower price limit %.2f", r.UpperLimit, r.LowerLimit)
	}
	if err := checkFraction("lower down payment rate", r.LowerRate); err != nil {
		return err
	}
	if err := checkFraction("middle down payment rate", r.MiddleRate); err != nil {
		return err
	}
	return checkFraction("upper down payment rate", r.UpperRate)
}

// Minimum returns the minimum down payment for price.
func (r DownPaymentRules) Minimum(price float64) (float64, error) {
	if err := requireNonNegative("price", price); err != nil {
		return 0, err
	}
	switch {
	case price <= r.LowerLimit:
		return price * r.LowerRate, nil
	case price < r.UpperLimit:
		return r.LowerLimit*r.LowerRate + (price-r.LowerLimit)*r.MiddleRate, nil
	default:
		return price * r.UpperRate, nil
	}
}

// MinimumDownPayment applies the default rules.
func MinimumDownPayment(price float64) (float64, error) {
	return DefaultDownPaymentRules().Minimum(price)
}

// ClosingCosts estimates closing costs as a fraction of the price.
func ClosingCosts(price, rate float64) (float64, error) {
	if err := requireNonNegative("price", price); err != nil {
		return 0, err
	}
	if err := checkFraction("closing cost rate", rate); err != nil {
		return 0, err
	}
	return price * rate, nil
}
