package mortgage

import "math"

// StressRate is the qualifying rate: the greater of the contract rate and the
// regulatory floor.
func StressRate(contractRatePercent, stressFloorPercent float64) float64 {
	return math.Max(contractRatePercent, stressFloorPercent)
}

// QualifyingPayment re-amortizes principal at the stress rate. Scaling the
// contract payment by stress/contract is not equivalent and is not used.
func QualifyingPayment(principal, contractRatePercent, stressFloorPercent float64, amortizationYears int) (float64, error) {
	if err := requireNonNegative("stress floor", stressFloorPercent); err != nil {
		return 0, err
	}
	if err := requireNonNegative("interest rate", contractRatePercent); err != nil {
		return 0, err
	}
	return MonthlyPayment(principal, StressRate(contractRatePercent, stressFloorPercent), amortizationYears)
}
