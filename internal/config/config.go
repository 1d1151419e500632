// Package config defines the data structures related to configuration and
// includes functions for loading the config and converting it into the
// values the calculators operate on.
package config

import (
	"fmt"
	"io"

	"github.com/iwvelando/homecalc/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for homecalc.
type Configuration struct {
	Policy        PolicyConfig        `yaml:"policy"`
	Profile       ProfileConfig       `yaml:"profile"`
	Scenarios     []Scenario          `yaml:"scenarios"`
	Affordability AffordabilityConfig `yaml:"affordability"`
	Rental        *RentalConfig       `yaml:"rental,omitempty"`
	Commission    *CommissionConfig   `yaml:"commission,omitempty"`
	Savings       *SavingsConfig      `yaml:"savings,omitempty"`
	Comparisons   []ComparisonConfig  `yaml:"comparisons,omitempty"`
	Logging       LoggingConfig       `yaml:"logging,omitempty"`
	Output        OutputConfig        `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// PolicyConfig holds the lending policy. Unset values take the defaults
// registered in setDefaults.
type PolicyConfig struct {
	StressFloorRate    float64           `yaml:"stressFloorRate"`
	ClosingCostRate    float64           `yaml:"closingCostRate"`
	AmortizePremium    bool              `yaml:"amortizePremium"`
	CompoundingPeriods int               `yaml:"compoundingPeriods"`
	GDSLimit           float64           `yaml:"gdsLimit"`
	TDSLimit           float64           `yaml:"tdsLimit"`
	Insurance          InsuranceConfig   `yaml:"insurance"`
	DownPayment        DownPaymentConfig `yaml:"downPayment"`
}

// InsuranceConfig holds the mortgage insurance premium table.
type InsuranceConfig struct {
	Mode      string       `yaml:"mode"` // tiered, flat
	Threshold float64      `yaml:"threshold"`
	FlatRate  float64      `yaml:"flatRate"`
	Tiers     []TierConfig `yaml:"tiers"`
}

// TierConfig is one row of the tiered premium table.
type TierConfig struct {
	MinRatio float64 `yaml:"minRatio"`
	Rate     float64 `yaml:"rate"`
}

// DownPaymentConfig holds the minimum down payment schedule.
type DownPaymentConfig struct {
	LowerLimit float64 `yaml:"lowerLimit"`
	UpperLimit float64 `yaml:"upperLimit"`
	LowerRate  float64 `yaml:"lowerRate"`
	MiddleRate float64 `yaml:"middleRate"`
	UpperRate  float64 `yaml:"upperRate"`
}

// ProfileConfig is the buyer's financial profile.
type ProfileConfig struct {
	AnnualIncome      float64       `yaml:"annualIncome"`
	DownPayment       float64       `yaml:"downPayment"`
	InterestRate      float64       `yaml:"interestRate"`
	AmortizationYears int           `yaml:"amortizationYears"`
	TaxRate           float64       `yaml:"taxRate"`
	Housing           HousingConfig `yaml:"housing"`
	Debts             DebtsConfig   `yaml:"debts"`
	Living            LivingConfig  `yaml:"living"`
}

// HousingConfig holds fixed monthly housing costs.
type HousingConfig struct {
	PropertyTax   float64 `yaml:"propertyTax"`
	Utilities     float64 `yaml:"utilities"`
	CondoFee      float64 `yaml:"condoFee"`
	HomeInsurance float64 `yaml:"homeInsurance"`
	Heating       float64 `yaml:"heating"`
}

// DebtsConfig holds recurring monthly debt payments.
type DebtsConfig struct {
	CarLoan      float64 `yaml:"carLoan"`
	Lease        float64 `yaml:"lease"`
	LineOfCredit float64 `yaml:"lineOfCredit"`
	PersonalLoan float64 `yaml:"personalLoan"`
	CreditCards  float64 `yaml:"creditCards"`
	StudentLoan  float64 `yaml:"studentLoan"`
}

// LivingConfig holds monthly living expenses outside housing and debt.
type LivingConfig struct {
	Groceries            float64 `yaml:"groceries"`
	Transportation       float64 `yaml:"transportation"`
	CarInsurance         float64 `yaml:"carInsurance"`
	Phone                float64 `yaml:"phone"`
	Childcare            float64 `yaml:"childcare"`
	LifeHealthInsurance  float64 `yaml:"lifeHealthInsurance"`
	Shopping             float64 `yaml:"shopping"`
	Restaurants          float64 `yaml:"restaurants"`
	Subscriptions        float64 `yaml:"subscriptions"`
	SavingsContributions float64 `yaml:"savingsContributions"`
	Miscellaneous        float64 `yaml:"miscellaneous"`
}

// Scenario is a candidate purchase. Price may instead be given as a multiple
// of annual income. DownPayment overrides the profile's down payment and
// MinimumDownPayment uses the smallest down payment the policy allows.
type Scenario struct {
	Name               string   `yaml:"name"`
	Active             bool     `yaml:"active"`
	Price              float64  `yaml:"price"`
	IncomeMultiple     float64  `yaml:"incomeMultiple"`
	DownPayment        *float64 `yaml:"downPayment,omitempty"`
	MinimumDownPayment bool     `yaml:"minimumDownPayment"`
}

// AffordabilityConfig lists the TDS targets to back-solve prices for.
type AffordabilityConfig struct {
	Bands []BandConfig `yaml:"bands"`
}

// BandConfig is a named TDS target in percent.
type BandConfig struct {
	Name      string  `yaml:"name"`
	TargetTDS float64 `yaml:"targetTds"`
}

// ComparisonConfig compares ways of financing one property. Housing
// defaults to the profile's housing costs.
type ComparisonConfig struct {
	Name    string            `yaml:"name"`
	Price   float64           `yaml:"price"`
	Housing *HousingConfig    `yaml:"housing,omitempty"`
	Options []FinancingConfig `yaml:"options"`
}

// FinancingConfig is one financing option within a comparison.
type FinancingConfig struct {
	Name                string  `yaml:"name"`
	DownPayment         float64 `yaml:"downPayment"`
	InterestRate        float64 `yaml:"interestRate"`
	AmortizationYears   int     `yaml:"amortizationYears"`
	ExtraMonthlyPayment float64 `yaml:"extraMonthlyPayment"`
	RentalIncome        float64 `yaml:"rentalIncome"`
	LawyerFee           float64 `yaml:"lawyerFee"`
	FirstTimeBuyerCosts float64 `yaml:"firstTimeBuyerCosts"`
	LandTransferTax     float64 `yaml:"landTransferTax"`
}

// RentalConfig describes an investment property.
type RentalConfig struct {
	PurchasePrice    float64 `yaml:"purchasePrice"`
	MonthlyRent      float64 `yaml:"monthlyRent"`
	MonthlyExpenses  float64 `yaml:"monthlyExpenses"`
	AppreciationRate float64 `yaml:"appreciationRate"`
	HoldingYears     int     `yaml:"holdingYears"`
}

// CommissionConfig describes a sale commission.
type CommissionConfig struct {
	SalePrice      float64 `yaml:"salePrice"`
	CommissionRate float64 `yaml:"commissionRate"`
	AgentSplit     float64 `yaml:"agentSplit"`
	BrokerageFee   float64 `yaml:"brokerageFee"`
}

// SavingsConfig describes saving toward a down payment on TargetHomePrice.
type SavingsConfig struct {
	TargetHomePrice   float64 `yaml:"targetHomePrice"`
	TargetDownPayment float64 `yaml:"targetDownPayment"`
	CashBalance       float64 `yaml:"cashBalance"`
	FHSABalance       float64 `yaml:"fhsaBalance"`
	RRSPBalance       float64 `yaml:"rrspBalance"`
	TimelineYears     int     `yaml:"timelineYears"`
	AnnualReturn      float64 `yaml:"annualReturn"`
	FHSAAnnualLimit   float64 `yaml:"fhsaAnnualLimit"`
	FHSALifetimeLimit float64 `yaml:"fhsaLifetimeLimit"`
	MonthlyRRSPCap    float64 `yaml:"monthlyRrspCap"`
	StartDate         string  `yaml:"startDate"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	setDefaults(v)
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("policy.stressFloorRate", constants.DefaultStressFloorRate)
	v.SetDefault("policy.closingCostRate", constants.DefaultClosingCostRate)
	v.SetDefault("policy.compoundingPeriods", constants.DefaultCompoundingPeriods)
	v.SetDefault("policy.gdsLimit", constants.DefaultGDSLimit)
	v.SetDefault("policy.tdsLimit", constants.DefaultTDSLimit)
	v.SetDefault("policy.insurance.mode", "tiered")
	v.SetDefault("policy.insurance.threshold", constants.DefaultInsuranceThreshold)
	v.SetDefault("policy.insurance.tiers", []map[string]interface{}{
		{"minRatio": 15.0, "rate": 0.028},
		{"minRatio": 10.0, "rate": 0.031},
		{"minRatio": 0.0, "rate": 0.04},
	})
	v.SetDefault("policy.downPayment.lowerLimit", constants.DefaultLowerPriceLimit)
	v.SetDefault("policy.downPayment.upperLimit", constants.DefaultUpperPriceLimit)
	v.SetDefault("policy.downPayment.lowerRate", constants.DefaultLowerDownRate)
	v.SetDefault("policy.downPayment.middleRate", constants.DefaultMiddleDownRate)
	v.SetDefault("policy.downPayment.upperRate", constants.DefaultUpperDownRate)
	v.SetDefault("affordability.bands", []map[string]interface{}{
		{"name": "maximum stretch", "targetTds": constants.DefaultStretchTDS},
		{"name": "balanced budget", "targetTds": constants.DefaultBalancedTDS},
		{"name": "play it safe", "targetTds": constants.DefaultSafeTDS},
	})
}
