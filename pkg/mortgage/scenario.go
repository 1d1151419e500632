package mortgage

import (
	"fmt"

	"github.com/iwvelando/homecalc/pkg/constants"
	"github.com/iwvelando/homecalc/pkg/mathutil"
)

// ScenarioResult is the evaluation of one purchase price against a
// FinancialProfile.
type ScenarioResult struct {
	PurchasePrice      float64  `json:"purchasePrice"`
	DownPayment        float64  `json:"downPayment"`
	DownPaymentRatio   float64  `json:"downPaymentRatio"` // percent of price
	MinimumDownPayment float64  `json:"minimumDownPayment"`
	MeetsMinimumDown   bool     `json:"meetsMinimumDown"`
	LoanAmount         float64  `json:"loanAmount"`
	InsurancePremium   float64  `json:"insurancePremium"`
	TotalFinanced      float64  `json:"totalFinanced"`
	MonthlyPayment     float64  `json:"monthlyPayment"` // contract rate
	QualifyingRate     float64  `json:"qualifyingRate"`
	QualifyingPayment  float64  `json:"qualifyingPayment"` // stress rate
	GDS                float64  `json:"gds"`
	TDS                float64  `json:"tds"`
	QualifyingGDS      float64  `json:"qualifyingGds"`
	QualifyingTDS      float64  `json:"qualifyingTds"`
	Qualifies          bool     `json:"qualifies"`
	ClosingCosts       float64  `json:"closingCosts"`
	TotalInterest      float64  `json:"totalInterest"` // contract rate, life of the loan
	CashFlow           CashFlow `json:"cashFlow"`
}

// CashFlow is what is left of monthly income once the home, living
// expenses and debts are paid at the contract rate.
type CashFlow struct {
	MonthlyIncome  float64 `json:"monthlyIncome"`
	HousingCosts   float64 `json:"housingCosts"` // payment plus fixed housing costs
	LivingExpenses float64 `json:"livingExpenses"`
	MonthlyDebts   float64 `json:"monthlyDebts"`
	RemainingCash  float64 `json:"remainingCash"`
}

// Calculator evaluates scenarios under a fixed Policy.
type Calculator struct {
	policy Policy
}

// NewCalculator validates policy and returns a Calculator for it.
func NewCalculator(policy Policy) (*Calculator, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return &Calculator{policy: policy}, nil
}

// Policy returns the policy the calculator was built with.
func (c *Calculator) Policy() Policy {
	return c.policy
}

// Evaluate prices a purchase at price using the profile's down payment.
func (c *Calculator) Evaluate(profile FinancialProfile, price float64) (ScenarioResult, error) {
	return c.EvaluateWithDownPayment(profile, price, profile.DownPayment)
}

// EvaluateMinimumDown prices a purchase at price with the minimum down
// payment the policy allows.
func (c *Calculator) EvaluateMinimumDown(profile FinancialProfile, price float64) (ScenarioResult, error) {
	minimum, err := c.policy.DownPayment.Minimum(price)
	if err != nil {
		return ScenarioResult{}, err
	}
	return c.EvaluateWithDownPayment(profile, price, minimum)
}

// EvaluateWithDownPayment prices a purchase at price with an explicit down
// payment, overriding the profile's.
func (c *Calculator) EvaluateWithDownPayment(profile FinancialProfile, price, downPayment float64) (ScenarioResult, error) {
	if err := profile.Validate(); err != nil {
		return ScenarioResult{}, err
	}
	if err := requireNonNegative("price", price); err != nil {
		return ScenarioResult{}, err
	}
	if err := requireNonNegative("down payment", downPayment); err != nil {
		return ScenarioResult{}, err
	}

	income, err := profile.MonthlyIncome()
	if err != nil {
		return ScenarioResult{}, err
	}

	result := ScenarioResult{
		PurchasePrice:    price,
		DownPayment:      downPayment,
		DownPaymentRatio: mathutil.CalculatePercentage(downPayment, price),
	}
	if price > downPayment {
		result.LoanAmount = price - downPayment
	}

	if result.MinimumDownPayment, err = c.policy.DownPayment.Minimum(price); err != nil {
		return ScenarioResult{}, err
	}
	result.MeetsMinimumDown = downPayment >= result.MinimumDownPayment

	if result.InsurancePremium, err = c.policy.Insurance.Premium(result.LoanAmount, result.DownPaymentRatio); err != nil {
		return ScenarioResult{}, err
	}
	result.TotalFinanced = result.LoanAmount + result.InsurancePremium

	principal := result.LoanAmount
	if c.policy.AmortizePremium {
		principal = result.TotalFinanced
	}

	if result.MonthlyPayment, err = c.policy.payment(principal, profile.InterestRate, profile.AmortizationYears); err != nil {
		return ScenarioResult{}, err
	}
	result.QualifyingRate = StressRate(profile.InterestRate, c.policy.StressFloorRate)
	if result.QualifyingPayment, err = c.policy.payment(principal, result.QualifyingRate, profile.AmortizationYears); err != nil {
		return ScenarioResult{}, err
	}

	fixed := profile.Housing.Total()
	debts := profile.Debts.Total()
	contract, err := DebtRatios(result.MonthlyPayment, fixed, debts, income)
	if err != nil {
		return ScenarioResult{}, err
	}
	stressed, err := DebtRatios(result.QualifyingPayment, fixed, debts, income)
	if err != nil {
		return ScenarioResult{}, err
	}
	result.GDS, result.TDS = contract.GDS, contract.TDS
	result.QualifyingGDS, result.QualifyingTDS = stressed.GDS, stressed.TDS
	result.Qualifies = result.MeetsMinimumDown &&
		result.QualifyingGDS <= c.policy.GDSLimit+constants.RatioTolerance &&
		result.QualifyingTDS <= c.policy.TDSLimit+constants.RatioTolerance

	result.TotalInterest = interestPaid(result.MonthlyPayment, principal, totalPayments(profile.AmortizationYears))
	result.CashFlow = CashFlow{
		MonthlyIncome:  income,
		HousingCosts:   result.MonthlyPayment + fixed,
		LivingExpenses: profile.Living.Total(),
		MonthlyDebts:   debts,
	}
	result.CashFlow.RemainingCash = income - result.CashFlow.HousingCosts -
		result.CashFlow.LivingExpenses - result.CashFlow.MonthlyDebts

	if result.ClosingCosts, err = ClosingCosts(price, c.policy.ClosingCostRate); err != nil {
		return ScenarioResult{}, err
	}
	return result, nil
}

// Affordability back-solves the highest price whose stress-test payment
// keeps the profile's TDS at targetTDSPercent.
func (c *Calculator) Affordability(profile FinancialProfile, targetTDSPercent float64) (Affordability, error) {
	if err := profile.Validate(); err != nil {
		return Affordability{}, err
	}
	income, err := profile.MonthlyIncome()
	if err != nil {
		return Affordability{}, err
	}
	rate, err := c.policy.periodicRate(StressRate(profile.InterestRate, c.policy.StressFloorRate))
	if err != nil {
		return Affordability{}, err
	}
	result, err := maxAffordable(targetTDSPercent, income, profile.Housing.Total(), profile.Debts.Total(),
		profile.DownPayment, rate, profile.AmortizationYears)
	if err != nil {
		return Affordability{}, fmt.Errorf("affordability at %.2f%% TDS: %w", targetTDSPercent, err)
	}
	if c.policy.AmortizePremium && result.MaxPayment > 0 {
		// MaxLoan so far is the most that can be financed; the premium
		// comes out of it.
		loan, err := c.policy.Insurance.FinancedLoan(result.MaxLoan, profile.DownPayment)
		if err != nil {
			return Affordability{}, fmt.Errorf("affordability at %.2f%% TDS: %w", targetTDSPercent, err)
		}
		result.MaxLoan = loan
		result.Price = loan + profile.DownPayment
		result.Feasible = result.Price > 0
	}
	return result, nil
}
