package mortgage

import (
	"fmt"

	"github.com/iwvelando/homecalc/pkg/mathutil"
)

// FinancingOption is one way of financing a purchase, such as an insured
// loan with the minimum down payment against a 20% down uninsured one.
type FinancingOption struct {
	Name                string
	DownPayment         float64
	InterestRate        float64 // annual percent
	AmortizationYears   int
	ExtraMonthlyPayment float64
	RentalIncome        float64 // monthly, offsets the housing cost
	LawyerFee           float64
	FirstTimeBuyerCosts float64
	LandTransferTax     float64
}

func (o FinancingOption) validate() error {
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"down payment", o.DownPayment},
		{"interest rate", o.InterestRate},
		{"extra monthly payment", o.ExtraMonthlyPayment},
		{"rental income", o.RentalIncome},
		{"lawyer fee", o.LawyerFee},
		{"first time buyer costs", o.FirstTimeBuyerCosts},
		{"land transfer tax", o.LandTransferTax},
	} {
		if err := requireNonNegative(v.name, v.val); err != nil {
			return err
		}
	}
	if o.AmortizationYears <= 0 {
		return invalidf("amortization must be positive, got %d years", o.AmortizationYears)
	}
	return nil
}

// FinancingResult is the cost of one FinancingOption.
type FinancingResult struct {
	Name              string  `json:"name"`
	DownPayment       float64 `json:"downPayment"`
	DownPaymentRatio  float64 `json:"downPaymentRatio"`
	MeetsMinimumDown  bool    `json:"meetsMinimumDown"`
	LoanAmount        float64 `json:"loanAmount"`
	InsurancePremium  float64 `json:"insurancePremium"`
	TotalLoan         float64 `json:"totalLoan"`
	MonthlyPayment    float64 `json:"monthlyPayment"`
	TotalMonthly      float64 `json:"totalMonthly"`   // payment, housing costs and extra payment
	NetHousingCost    float64 `json:"netHousingCost"` // after rental income
	TotalInterest     float64 `json:"totalInterest"`
	CostBeforeClosing float64 `json:"costBeforeClosing"` // down payment, lawyer and first time buyer costs
	CashToClose       float64 `json:"cashToClose"`
}

// Compare prices each option on the same purchase. Unlike Evaluate the
// premium is always added to the loan, the way insured mortgages are
// booked; the policy supplies the premium schedule, the minimum down
// payment and the compounding.
func (c *Calculator) Compare(price float64, housing HousingCosts, options []FinancingOption) ([]FinancingResult, error) {
	if err := requireNonNegative("price", price); err != nil {
		return nil, err
	}
	if err := housing.validate(); err != nil {
		return nil, err
	}
	minimum, err := c.policy.DownPayment.Minimum(price)
	if err != nil {
		return nil, err
	}

	results := make([]FinancingResult, 0, len(options))
	for _, o := range options {
		if err := o.validate(); err != nil {
			return nil, fmt.Errorf("option %s: %w", o.Name, err)
		}
		r := FinancingResult{
			Name:             o.Name,
			DownPayment:      o.DownPayment,
			DownPaymentRatio: mathutil.CalculatePercentage(o.DownPayment, price),
			MeetsMinimumDown: o.DownPayment >= minimum,
		}
		if price > o.DownPayment {
			r.LoanAmount = price - o.DownPayment
		}
		if r.InsurancePremium, err = c.policy.Insurance.Premium(r.LoanAmount, r.DownPaymentRatio); err != nil {
			return nil, fmt.Errorf("option %s: %w", o.Name, err)
		}
		r.TotalLoan = r.LoanAmount + r.InsurancePremium
		if r.MonthlyPayment, err = c.policy.payment(r.TotalLoan, o.InterestRate, o.AmortizationYears); err != nil {
			return nil, fmt.Errorf("option %s: %w", o.Name, err)
		}
		r.TotalMonthly = r.MonthlyPayment + housing.Total() + o.ExtraMonthlyPayment
		r.NetHousingCost = r.TotalMonthly - o.RentalIncome
		r.TotalInterest = interestPaid(r.MonthlyPayment, r.TotalLoan, totalPayments(o.AmortizationYears))
		r.CostBeforeClosing = o.DownPayment + o.LawyerFee + o.FirstTimeBuyerCosts
		r.CashToClose = r.CostBeforeClosing + o.LandTransferTax
		results = append(results, r)
	}
	return results, nil
}
