package calculator

import (
	"errors"
	"strings"
	"testing"

	"github.com/iwvelando/homecalc/internal/config"
	"github.com/iwvelando/homecalc/pkg/mortgage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const reportConfig = `
profile:
  annualIncome: 105000
  downPayment: 80000
  interestRate: 4.99
  amortizationYears: 30
  housing:
    propertyTax: 350
    utilities: 400
  debts:
    carLoan: 500
scenarios:
  - name: condo
    active: true
    price: 525000
  - name: inactive
    active: false
    price: 900000
  - name: minimum down
    active: true
    price: 700000
    minimumDownPayment: true
  - name: big down
    active: true
    price: 525000
    downPayment: 125000
rental:
  purchasePrice: 400000
  monthlyRent: 2500
  monthlyExpenses: 900
  appreciationRate: 3
  holdingYears: 5
commission:
  salePrice: 750000
  commissionRate: 2.5
  agentSplit: 70
  brokerageFee: 500
savings:
  targetHomePrice: 600000
  cashBalance: 10000
  timelineYears: 3
  annualReturn: 4
  fhsaAnnualLimit: 8000
  fhsaLifetimeLimit: 40000
  startDate: "2026-01"
comparisons:
  - name: duplex
    price: 800000
    options:
      - name: insured
        downPayment: 55000
        interestRate: 4.1
        amortizationYears: 30
        rentalIncome: 1500
      - name: uninsured
        downPayment: 160000
        interestRate: 4.29
        amortizationYears: 30
        rentalIncome: 1500
`

func loadConfig(t *testing.T, body string) config.Configuration {
	t.Helper()
	conf, err := config.LoadConfigurationFromReader(strings.NewReader(body))
	require.NoError(t, err)
	return *conf
}

func TestGetReport(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	report, err := GetReport(logger, loadConfig(t, reportConfig))
	require.NoError(t, err)

	require.Len(t, report.Scenarios, 3)
	assert.Equal(t, "condo", report.Scenarios[0].Name)
	assert.Equal(t, "minimum down", report.Scenarios[1].Name)
	assert.Equal(t, "big down", report.Scenarios[2].Name)

	condo := report.Scenarios[0].Result
	assert.InDelta(t, 2386.14, condo.MonthlyPayment, 0.01)
	assert.InDelta(t, 12460, condo.InsurancePremium, 1e-6)
	assert.InDelta(t, 35.84, condo.GDS, 0.01)

	minimum := report.Scenarios[1].Result
	assert.InDelta(t, 45000, minimum.DownPayment, 1e-6)
	assert.True(t, minimum.MeetsMinimumDown)

	bigDown := report.Scenarios[2].Result
	assert.InDelta(t, 125000, bigDown.DownPayment, 1e-6)
	assert.Equal(t, 0.0, bigDown.InsurancePremium)

	require.Len(t, report.Bands, 3)
	for _, band := range report.Bands {
		assert.True(t, band.Affordability.Feasible, band.Band.Name)
		require.NotNil(t, band.Scenario, band.Band.Name)
		assert.InDelta(t, band.Band.TargetTDS, band.Scenario.QualifyingTDS, 1e-6, band.Band.Name)
	}

	require.NotNil(t, report.Rental)
	require.NotNil(t, report.Commission)
	assert.InDelta(t, 18750, report.Commission.Gross, 1e-9)
	require.NotNil(t, report.Savings)
	assert.InDelta(t, 25000, report.Savings.Shortfall, 1e-6)
	assert.Len(t, report.Savings.Projection, 36)
	assert.Equal(t, "2026-02", report.Savings.Projection[0].Date)

	require.Len(t, report.Comparisons, 1)
	duplex := report.Comparisons[0]
	assert.Equal(t, 800000.0, duplex.Price)
	require.Len(t, duplex.Options, 2)
	assert.InDelta(t, 29800, duplex.Options[0].InsurancePremium, 1e-6)
	// Housing costs come from the profile.
	assert.InDelta(t, duplex.Options[1].MonthlyPayment+750-1500, duplex.Options[1].NetHousingCost, 1e-6)

	skipped := logs.FilterMessage("skipping scenario inactive because it is inactive")
	assert.Equal(t, 1, skipped.Len())
}

func TestGetReportCashShortfall(t *testing.T) {
	conf := loadConfig(t, reportConfig)
	conf.Profile.Living.Groceries = 6000

	core, logs := observer.New(zapcore.WarnLevel)
	report, err := GetReport(zap.New(core), conf)
	require.NoError(t, err)

	condo := report.Scenarios[0].Result
	assert.InDelta(t, 6000, condo.CashFlow.LivingExpenses, 1e-9)
	assert.Less(t, condo.CashFlow.RemainingCash, 0.0)
	// TDS ignores living expenses.
	assert.InDelta(t, 41.56, condo.TDS, 0.01)

	shortfalls := logs.FilterMessageSnippet("leaves a monthly shortfall")
	assert.Equal(t, len(report.Scenarios), shortfalls.Len())
}

func TestGetReportComparisonError(t *testing.T) {
	conf := loadConfig(t, reportConfig)
	conf.Comparisons[0].Options[1].AmortizationYears = 0

	_, err := GetReport(nil, conf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "comparison duplex")
	assert.True(t, errors.Is(err, mortgage.ErrInvalidInput))
}

func TestGetReportScenarioError(t *testing.T) {
	conf := loadConfig(t, reportConfig)
	conf.Scenarios = append(conf.Scenarios, config.Scenario{Name: "unpriced", Active: true})

	_, err := GetReport(nil, conf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scenario unpriced")
	assert.True(t, errors.Is(err, mortgage.ErrInvalidInput))
}

func TestGetReportInvalidPolicy(t *testing.T) {
	conf := loadConfig(t, reportConfig)
	conf.Policy.ClosingCostRate = 2.2

	_, err := GetReport(nil, conf)
	require.Error(t, err)
	assert.True(t, errors.Is(err, mortgage.ErrInvalidInput))
}

func TestGetReportInfeasibleBands(t *testing.T) {
	conf := loadConfig(t, reportConfig)
	conf.Profile.Debts.CarLoan = 5000

	report, err := GetReport(nil, conf)
	require.NoError(t, err)
	require.Len(t, report.Bands, 3)
	for _, band := range report.Bands {
		assert.False(t, band.Affordability.Feasible, band.Band.Name)
		assert.Nil(t, band.Scenario, band.Band.Name)
	}
}

func TestGetReportWarnings(t *testing.T) {
	conf := loadConfig(t, reportConfig)
	conf.Profile.AmortizationYears = 35

	core, logs := observer.New(zapcore.WarnLevel)
	report, err := GetReport(zap.New(core), conf)
	require.NoError(t, err)
	assert.NotEmpty(t, report.Warnings)
	assert.Equal(t, len(report.Warnings), logs.Len())
}

func TestEvaluateScenarioIncomeMultiple(t *testing.T) {
	calc, err := mortgage.NewCalculator(mortgage.DefaultPolicy())
	require.NoError(t, err)
	conf := loadConfig(t, reportConfig)
	profile := conf.FinancialProfile()

	result, err := EvaluateScenario(calc, profile, config.Scenario{Name: "multiple", Active: true, IncomeMultiple: 5})
	require.NoError(t, err)
	assert.InDelta(t, 525000, result.PurchasePrice, 1e-6)
}
