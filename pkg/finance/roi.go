package finance

import (
	"fmt"
	"math"

	"github.com/iwvelando/homecalc/pkg/constants"
	"github.com/iwvelando/homecalc/pkg/mathutil"
)

// RentalInputs describes a rental property held for a number of years.
type RentalInputs struct {
	PurchasePrice    float64
	MonthlyRent      float64
	MonthlyExpenses  float64
	AppreciationRate float64 // annual, percent
	HoldingYears     int
}

// RentalResult holds the return on a rental property.
type RentalResult struct {
	AnnualRent        float64 `json:"annualRent"`
	AnnualExpenses    float64 `json:"annualExpenses"`
	NetIncome         float64 `json:"netIncome"`
	CashOnCash        float64 `json:"cashOnCash"` // percent of purchase price
	FutureValue       float64 `json:"futureValue"`
	TotalAppreciation float64 `json:"totalAppreciation"`
	TotalReturn       float64 `json:"totalReturn"` // net income over the holding period plus appreciation
}

// RentalROI computes yearly cash flow and the appreciated value at the end
// of the holding period.
func RentalROI(in RentalInputs) (RentalResult, error) {
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"monthly rent", in.MonthlyRent},
		{"monthly expenses", in.MonthlyExpenses},
		{"appreciation rate", in.AppreciationRate},
	} {
		if err := checkNonNegative(v.name, v.val); err != nil {
			return RentalResult{}, err
		}
	}
	if !mathutil.IsFinite(in.PurchasePrice) || in.PurchasePrice <= 0 {
		return RentalResult{}, fmt.Errorf("%w: purchase price must be positive, got %.2f", ErrInvalidInput, in.PurchasePrice)
	}
	if in.HoldingYears < 0 {
		return RentalResult{}, fmt.Errorf("%w: holding period cannot be negative, got %d", ErrInvalidInput, in.HoldingYears)
	}

	var result RentalResult
	result.AnnualRent = in.MonthlyRent * constants.MonthsPerYear
	result.AnnualExpenses = in.MonthlyExpenses * constants.MonthsPerYear
	result.NetIncome = result.AnnualRent - result.AnnualExpenses
	result.CashOnCash = mathutil.CalculatePercentage(result.NetIncome, in.PurchasePrice)
	result.FutureValue = in.PurchasePrice * math.Pow(1+percentToDecimal(in.AppreciationRate), float64(in.HoldingYears))
	result.TotalAppreciation = result.FutureValue - in.PurchasePrice
	result.TotalReturn = result.NetIncome*float64(in.HoldingYears) + result.TotalAppreciation
	return result, nil
}
