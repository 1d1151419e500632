// Package constants provides shared constants for the homecalc application.
package constants

// DateTimeLayout is the month format used for savings projections.
const DateTimeLayout = "2006-01"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// CurrencyDecimalPlaces is the number of decimals amounts are rounded to
	CurrencyDecimalPlaces = 2

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// RatioTolerance is the tolerance used when comparing debt ratios in percent
	RatioTolerance = 1e-6
)

// Mortgage policy defaults. These are configuration defaults only; every one
// of them can be overridden in the policy section of the config file.
const (
	// DefaultStressFloorRate is the minimum qualifying rate in percent
	DefaultStressFloorRate = 5.99

	// DefaultClosingCostRate is the fraction of the price estimated for closing
	DefaultClosingCostRate = 0.022

	// DefaultInsuranceThreshold is the down payment ratio (percent) at or above
	// which no mortgage insurance premium is charged
	DefaultInsuranceThreshold = 20.0

	// DefaultCompoundingPeriods is the number of compounding periods per year
	// used when amortizing with a monthly nominal rate
	DefaultCompoundingPeriods = 12

	// CanadianCompoundingPeriods is semi-annual compounding
	CanadianCompoundingPeriods = 2
)

// Minimum down payment defaults.
const (
	// DefaultLowerPriceLimit is the top of the 5% tier
	DefaultLowerPriceLimit = 500000.0

	// DefaultUpperPriceLimit is the price at which the flat 20% tier begins
	DefaultUpperPriceLimit = 1500000.0

	// DefaultLowerDownRate applies to the first DefaultLowerPriceLimit dollars
	DefaultLowerDownRate = 0.05

	// DefaultMiddleDownRate applies to the portion above DefaultLowerPriceLimit
	DefaultMiddleDownRate = 0.10

	// DefaultUpperDownRate applies to the full price at or above DefaultUpperPriceLimit
	DefaultUpperDownRate = 0.20
)

// Qualification limits in percent of monthly income.
const (
	DefaultGDSLimit = 39.0
	DefaultTDSLimit = 44.0
)

// Affordability band defaults expressed as target TDS ratios in percent.
const (
	DefaultStretchTDS  = 44.0
	DefaultBalancedTDS = 39.0
	DefaultSafeTDS     = 32.0
)

// Savings planner defaults.
const (
	// MaxSavingsProjectionMonths caps the month-by-month savings projection
	MaxSavingsProjectionMonths = 36

	// SavingsAllocationShare is the share of the monthly goal routed to each
	// of the FHSA and RRSP buckets before limits apply
	SavingsAllocationShare = 0.3

	// DefaultMonthlyRRSPCap caps the monthly RRSP allocation
	DefaultMonthlyRRSPCap = 500.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)
