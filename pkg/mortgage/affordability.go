package mortgage

import "github.com/iwvelando/homecalc/pkg/constants"

// Affordability is the result of back-solving the maximum price for a target
// TDS ratio. When Feasible is false no price is affordable at that ratio and
// Price must not be presented as a scenario.
type Affordability struct {
	TargetRatio float64 `json:"targetRatio"`
	MaxPayment  float64 `json:"maxPayment"`
	MaxLoan     float64 `json:"maxLoan"`
	Price       float64 `json:"price"`
	Feasible    bool    `json:"feasible"`
}

// MaxAffordablePrice back-solves the annuity formula for the largest loan
// whose payment at stressRatePercent keeps TDS at targetTDSPercent, then adds
// the down payment.
func MaxAffordablePrice(targetTDSPercent, monthlyIncome, fixedHousingCosts, monthlyDebts, downPayment, stressRatePercent float64, amortizationYears int) (Affordability, error) {
	if err := requireNonNegative("stress rate", stressRatePercent); err != nil {
		return Affordability{}, err
	}
	return maxAffordable(targetTDSPercent, monthlyIncome, fixedHousingCosts, monthlyDebts, downPayment,
		MonthlyRate(stressRatePercent), amortizationYears)
}

func maxAffordable(targetTDSPercent, monthlyIncome, fixedHousingCosts, monthlyDebts, downPayment, periodicRate float64, amortizationYears int) (Affordability, error) {
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"target ratio", targetTDSPercent},
		{"monthly income", monthlyIncome},
		{"fixed housing costs", fixedHousingCosts},
		{"monthly debts", monthlyDebts},
		{"down payment", downPayment},
	} {
		if err := requireNonNegative(v.name, v.val); err != nil {
			return Affordability{}, err
		}
	}
	if amortizationYears <= 0 {
		return Affordability{}, invalidf("amortization must be positive, got %d years", amortizationYears)
	}

	maxPayment := monthlyIncome*targetTDSPercent/constants.PercentageMultiplier - fixedHousingCosts - monthlyDebts
	maxLoan, err := presentValue(maxPayment, periodicRate, totalPayments(amortizationYears))
	if err != nil {
		return Affordability{}, err
	}
	price := maxLoan + downPayment

	return Affordability{
		TargetRatio: targetTDSPercent,
		MaxPayment:  maxPayment,
		MaxLoan:     maxLoan,
		Price:       price,
		Feasible:    maxPayment > 0 && price > 0,
	}, nil
}
