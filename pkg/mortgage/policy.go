package mortgage

import (
	"fmt"

	"github.com/iwvelando/homecalc/pkg/constants"
)

// Policy gathers the lending policy constants used when evaluating a
// scenario. None of them are hard-coded in the calculations.
type Policy struct {
	// StressFloorRate is the minimum qualifying rate in percent.
	StressFloorRate float64
	// ClosingCostRate is a fraction of the purchase price.
	ClosingCostRate float64
	Insurance       InsurancePolicy
	DownPayment     DownPaymentRules
	// AmortizePremium adds the insurance premium to the amortized principal.
	AmortizePremium bool
	// CompoundingPeriods per year; 12 is the plain nominal monthly rate.
	CompoundingPeriods int
	// GDSLimit and TDSLimit are the maximum qualifying ratios in percent.
	GDSLimit float64
	TDSLimit float64
}

// DefaultPolicy returns the default lending policy.
func DefaultPolicy() Policy {
	return Policy{
		StressFloorRate:    constants.DefaultStressFloorRate,
		ClosingCostRate:    constants.DefaultClosingCostRate,
		Insurance:          DefaultInsurancePolicy(),
		DownPayment:        DefaultDownPaymentRules(),
		CompoundingPeriods: constants.DefaultCompoundingPeriods,
		GDSLimit:           constants.DefaultGDSLimit,
		TDSLimit:           constants.DefaultTDSLimit,
	}
}

// Validate checks every policy constant.
func (p Policy) Validate() error {
	if err := requireNonNegative("stress floor rate", p.StressFloorRate); err != nil {
		return err
	}
	if err := checkFraction("closing cost rate", p.ClosingCostRate); err != nil {
		return err
	}
	if err := p.Insurance.Validate(); err != nil {
		return fmt.Errorf("insurance policy: %w", err)
	}
	if err := p.DownPayment.Validate(); err != nil {
		return fmt.Errorf("down payment rules: %w", err)
	}
	if p.CompoundingPeriods <= 0 {
		return invalidf("compounding periods must be positive, got %d", p.CompoundingPeriods)
	}
	if err := requireNonNegative("GDS limit", p.GDSLimit); err != nil {
		return err
	}
	return requireNonNegative("TDS limit", p.TDSLimit)
}

func (p Policy) periodicRate(annualRatePercent float64) (float64, error) {
	return EffectiveMonthlyRate(annualRatePercent, p.CompoundingPeriods)
}

func (p Policy) payment(principal, annualRatePercent float64, amortizationYears int) (float64, error) {
	return MonthlyPaymentCompounded(principal, annualRatePercent, amortizationYears, p.CompoundingPeriods)
}
