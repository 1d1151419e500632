package mortgage

import (
	"fmt"

	"github.com/iwvelando/homecalc/pkg/constants"
)

// Ratios holds debt service ratios in percent of monthly income.
type Ratios struct {
	GDS float64
	TDS float64
}

// DebtRatios computes GDS (housing payment plus fixed housing costs) and TDS
// (GDS numerator plus other monthly debts) against monthly income.
func DebtRatios(housingPayment, fixedHousingCosts, monthlyDebts, monthlyIncome float64) (Ratios, error) {
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"housing payment", housingPayment},
		{"fixed housing costs", fixedHousingCosts},
		{"monthly debts", monthlyDebts},
	} {
		if err := requireNonNegative(v.name, v.val); err != nil {
			return Ratios{}, err
		}
	}
	if err := requireFinite("monthly income", monthlyIncome); err != nil {
		return Ratios{}, err
	}
	if monthlyIncome <= 0 {
		return Ratios{}, fmt.Errorf("%w: debt ratios need positive monthly income, got %.2f", ErrDivisionByZero, monthlyIncome)
	}

	housing := housingPayment + fixedHousingCosts
	return Ratios{
		GDS: housing / monthlyIncome * constants.PercentageMultiplier,
		TDS: (housing + monthlyDebts) / monthlyIncome * constants.PercentageMultiplier,
	}, nil
}

// MonthlyIncome converts annual income to a monthly figure, net of
// taxRatePercent when it is non-zero.
func MonthlyIncome(annualIncome, taxRatePercent float64) (float64, error) {
	if err := requireNonNegative("annual income", annualIncome); err != nil {
		return 0, err
	}
	if err := checkTaxRate(taxRatePercent); err != nil {
		return 0, err
	}
	return annualIncome / constants.MonthsPerYear * (1 - taxRatePercent/constants.PercentageMultiplier), nil
}

func checkTaxRate(taxRatePercent float64) error {
	if err := requireNonNegative("tax rate", taxRatePercent); err != nil {
		return err
	}
	if taxRatePercent >= constants.PercentageMultiplier {
		return invalidf("tax rate must be below 100%%, got %.2f", taxRatePercent)
	}
	return nil
}
