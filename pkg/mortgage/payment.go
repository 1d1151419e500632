package mortgage

import (
	"math"

	"github.com/iwvelando/homecalc/pkg/constants"
	"github.com/iwvelando/homecalc/pkg/mathutil"
)

// MonthlyRate converts a nominal annual rate in percent into the monthly
// periodic rate.
func MonthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// MonthlyPayment calculates the fixed monthly payment that repays principal
// over amortizationYears at a nominal annual rate compounded monthly.
// A principal of zero or less needs no payment. A zero rate is repaid in
// equal straight-line installments.
func MonthlyPayment(principal, annualRatePercent float64, amortizationYears int) (float64, error) {
	if err := checkLoanTerms(principal, annualRatePercent, amortizationYears); err != nil {
		return 0, err
	}
	return amortize(principal, MonthlyRate(annualRatePercent), totalPayments(amortizationYears))
}

// EffectiveMonthlyRate converts a nominal annual rate in percent that
// compounds compoundingPeriods times per year into the equivalent monthly
// rate, e.g. 2 for Canadian fixed-rate mortgages.
func EffectiveMonthlyRate(annualRatePercent float64, compoundingPeriods int) (float64, error) {
	if err := requireNonNegative("interest rate", annualRatePercent); err != nil {
		return 0, err
	}
	if compoundingPeriods <= 0 {
		return 0, invalidf("compounding periods must be positive, got %d", compoundingPeriods)
	}
	if compoundingPeriods == constants.MonthsPerYear {
		return MonthlyRate(annualRatePercent), nil
	}
	k := float64(compoundingPeriods)
	rate := math.Pow(1+annualRatePercent/constants.PercentageMultiplier/k, k/constants.MonthsPerYear) - 1
	if !mathutil.IsFinite(rate) {
		return 0, invalidf("effective rate for %.2f%% compounded %d times is not finite", annualRatePercent, compoundingPeriods)
	}
	return rate, nil
}

// MonthlyPaymentCompounded is MonthlyPayment with an explicit number of
// compounding periods per year.
func MonthlyPaymentCompounded(principal, annualRatePercent float64, amortizationYears, compoundingPeriods int) (float64, error) {
	if err := checkLoanTerms(principal, annualRatePercent, amortizationYears); err != nil {
		return 0, err
	}
	rate, err := EffectiveMonthlyRate(annualRatePercent, compoundingPeriods)
	if err != nil {
		return 0, err
	}
	return amortize(principal, rate, totalPayments(amortizationYears))
}

func checkLoanTerms(principal, annualRatePercent float64, amortizationYears int) error {
	if err := requireFinite("principal", principal); err != nil {
		return err
	}
	if err := requireNonNegative("interest rate", annualRatePercent); err != nil {
		return err
	}
	if amortizationYears <= 0 {
		return invalidf("amortization must be positive, got %d years", amortizationYears)
	}
	return nil
}

func totalPayments(amortizationYears int) int {
	return amortizationYears * constants.MonthsPerYear
}

// amortize applies the annuity formula for a periodic rate. The discount
// form keeps (1+rate)^n from overflowing on long terms. A rate too small to
// move the discount factor off 1 falls back to straight-line repayment.
func amortize(principal, rate float64, n int) (float64, error) {
	if principal <= 0 {
		return 0, nil
	}
	discount := math.Pow(1+rate, -float64(n))
	payment := principal / float64(n)
	if rate != 0 && discount != 1 {
		payment = principal * rate / (1 - discount)
	}
	if !mathutil.IsFinite(payment) {
		return 0, invalidf("payment on %.2f at periodic rate %g over %d periods is not finite", principal, rate, n)
	}
	return payment, nil
}

// presentValue is the inverse of amortize: the principal that payment
// repays over n periods.
func presentValue(payment, rate float64, n int) (float64, error) {
	discount := math.Pow(1+rate, -float64(n))
	value := payment * float64(n)
	if rate != 0 && discount != 1 {
		value = payment * (1 - discount) / rate
	}
	if !mathutil.IsFinite(value) {
		return 0, invalidf("present value of %.2f at periodic rate %g over %d periods is not finite", payment, rate, n)
	}
	return value, nil
}

// interestPaid is the interest in n level payments that repay principal.
func interestPaid(payment, principal float64, n int) float64 {
	if principal <= 0 {
		return 0
	}
	return payment*float64(n) - principal
}
