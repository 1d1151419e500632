// Package calculator assembles a full report for a configuration: every
// active purchase scenario, the affordability bands, the financing
// comparisons and the optional rental, commission and savings sections.
package calculator

import (
	"fmt"

	"github.com/iwvelando/homecalc/internal/config"
	"github.com/iwvelando/homecalc/pkg/finance"
	"github.com/iwvelando/homecalc/pkg/mortgage"
	"go.uber.org/zap"
)

// ScenarioReport is the evaluation of one named scenario.
type ScenarioReport struct {
	Name   string                  `json:"name"`
	Result mortgage.ScenarioResult `json:"result"`
}

// ComparisonReport holds the financing options priced for one property.
type ComparisonReport struct {
	Name    string                     `json:"name"`
	Price   float64                    `json:"price"`
	Options []mortgage.FinancingResult `json:"options"`
}

// Report holds everything computed for one configuration.
type Report struct {
	Scenarios   []ScenarioReport          `json:"scenarios"`
	Bands       []mortgage.BandResult     `json:"bands"`
	Rental      *finance.RentalResult     `json:"rental,omitempty"`
	Commission  *finance.CommissionResult `json:"commission,omitempty"`
	Savings     *finance.SavingsPlan      `json:"savings,omitempty"`
	Comparisons []ComparisonReport        `json:"comparisons,omitempty"`
	Warnings    []string                  `json:"warnings,omitempty"`
}

// GetReport evaluates all active scenarios and optional sections of conf.
func GetReport(logger *zap.Logger, conf config.Configuration) (Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var report Report
	report.Warnings = conf.ValidateConfiguration()
	for _, w := range report.Warnings {
		logger.Warn(w, zap.String("op", "calculator.GetReport"))
	}

	policy, err := conf.MortgagePolicy()
	if err != nil {
		return report, err
	}
	calc, err := mortgage.NewCalculator(policy)
	if err != nil {
		return report, err
	}
	profile := conf.FinancialProfile()

	for _, scenario := range conf.Scenarios {
		if !scenario.Active {
			logger.Debug(fmt.Sprintf("skipping scenario %s because it is inactive", scenario.Name),
				zap.String("op", "calculator.GetReport"),
			)
			continue
		}

		result, err := EvaluateScenario(calc, profile, scenario)
		if err != nil {
			return report, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}
		logger.Debug(fmt.Sprintf("evaluated scenario %s", scenario.Name),
			zap.String("op", "calculator.GetReport"),
			zap.Float64("price", result.PurchasePrice),
			zap.Float64("monthlyPayment", result.MonthlyPayment),
			zap.Bool("qualifies", result.Qualifies),
		)
		if result.CashFlow.RemainingCash < 0 {
			logger.Warn(fmt.Sprintf("scenario %s leaves a monthly shortfall of %.2f", scenario.Name, -result.CashFlow.RemainingCash),
				zap.String("op", "calculator.GetReport"),
			)
		}
		report.Scenarios = append(report.Scenarios, ScenarioReport{Name: scenario.Name, Result: result})
	}

	report.Bands, err = calc.Bands(profile, conf.Bands())
	if err != nil {
		return report, err
	}
	for _, band := range report.Bands {
		if !band.Affordability.Feasible {
			logger.Info(fmt.Sprintf("band %s is not affordable with the current debts", band.Band.Name),
				zap.String("op", "calculator.GetReport"),
			)
		}
	}

	if in, ok := conf.RentalInputs(); ok {
		rental, err := finance.RentalROI(in)
		if err != nil {
			return report, fmt.Errorf("rental: %w", err)
		}
		report.Rental = &rental
	}

	if in, ok := conf.CommissionInputs(); ok {
		commission, err := finance.CommissionSplit(in)
		if err != nil {
			return report, fmt.Errorf("commission: %w", err)
		}
		report.Commission = &commission
	}

	in, ok, err := conf.SavingsInputs(policy)
	if err != nil {
		return report, err
	}
	if ok {
		plan, err := finance.NewSavingsPlanner(logger).Plan(in)
		if err != nil {
			return report, fmt.Errorf("savings: %w", err)
		}
		report.Savings = &plan
	}

	for _, c := range conf.Comparisons {
		options, err := calc.Compare(c.Price, conf.ComparisonHousing(c), c.FinancingOptions())
		if err != nil {
			return report, fmt.Errorf("comparison %s: %w", c.Name, err)
		}
		report.Comparisons = append(report.Comparisons, ComparisonReport{Name: c.Name, Price: c.Price, Options: options})
	}

	return report, nil
}

// EvaluateScenario prices a single scenario, honouring its down payment
// override or minimum down payment flag.
func EvaluateScenario(calc *mortgage.Calculator, profile mortgage.FinancialProfile, scenario config.Scenario) (mortgage.ScenarioResult, error) {
	price, err := scenario.PurchasePrice(profile.AnnualIncome)
	if err != nil {
		return mortgage.ScenarioResult{}, err
	}
	switch {
	case scenario.MinimumDownPayment:
		return calc.EvaluateMinimumDown(profile, price)
	case scenario.DownPayment != nil:
		return calc.EvaluateWithDownPayment(profile, price, *scenario.DownPayment)
	default:
		return calc.Evaluate(profile, price)
	}
}
