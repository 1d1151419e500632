package mortgage

import (
	"fmt"
	"math"
	"sort"

	"github.com/iwvelando/homecalc/pkg/constants"
	"github.com/iwvelando/homecalc/pkg/mathutil"
)

// InsuranceMode selects how the mortgage insurance premium is priced.
type InsuranceMode string

const (
	// InsuranceTiered prices the premium by down payment ratio tier.
	InsuranceTiered InsuranceMode = "tiered"

	// InsuranceFlat applies one rate to every ratio below the threshold.
	InsuranceFlat InsuranceMode = "flat"
)

// InsuranceTier applies Rate (a fraction of the loan) to down payment ratios
// at or above MinRatio percent.
type InsuranceTier struct {
	MinRatio float64
	Rate     float64
}

// InsurancePolicy holds the premium table.
type InsurancePolicy struct {
	Mode      InsuranceMode
	Threshold float64 // percent; no premium at or above
	Tiers     []InsuranceTier
	FlatRate  float64
}

// DefaultInsurancePolicy returns the tiered premium table.
func DefaultInsurancePolicy() InsurancePolicy {
	return InsurancePolicy{
		Mode:      InsuranceTiered,
		Threshold: constants.DefaultInsuranceThreshold,
		Tiers: []InsuranceTier{
			{MinRatio: 15, Rate: 0.028},
			{MinRatio: 10, Rate: 0.031},
			{MinRatio: 0, Rate: 0.04},
		},
	}
}

// FlatInsurancePolicy returns the legacy single-rate policy.
func FlatInsurancePolicy(rate float64) InsurancePolicy {
	return InsurancePolicy{
		Mode:      InsuranceFlat,
		Threshold: constants.DefaultInsuranceThreshold,
		FlatRate:  rate,
	}
}

// Validate checks the premium table.
func (p InsurancePolicy) Validate() error {
	if err := requireFinite("insurance threshold", p.Threshold); err != nil {
		return err
	}
	if p.Threshold <= 0 || p.Threshold > constants.PercentageMultiplier {
		return invalidf("insurance threshold must be within (0, 100], got %.2f", p.Threshold)
	}
	switch p.Mode {
	case InsuranceFlat:
		return checkFraction("flat insurance rate", p.FlatRate)
	case InsuranceTiered:
		if len(p.Tiers) == 0 {
			return invalidf("tiered insurance requires at least one tier")
		}
		for i, tier := range p.Tiers {
			if err := requireNonNegative(fmt.Sprintf("tier %d minimum ratio", i), tier.MinRatio); err != nil {
				return err
			}
			if err := checkFraction(fmt.Sprintf("tier %d rate", i), tier.Rate); err != nil {
				return err
			}
		}
		return nil
	default:
		return invalidf("unknown insurance mode %q", p.Mode)
	}
}

// Premium returns the insurance premium for loanAmount given the down
// payment ratio in percent of the price.
func (p InsurancePolicy) Premium(loanAmount, downPaymentRatioPercent float64) (float64, error) {
	if err := requireFinite("loan amount", loanAmount); err != nil {
		return 0, err
	}
	if err := requireNonNegative("down payment ratio", downPaymentRatioPercent); err != nil {
		return 0, err
	}
	if loanAmount <= 0 || downPaymentRatioPercent >= p.Threshold {
		return 0, nil
	}
	rate, err := p.rateFor(downPaymentRatioPercent)
	if err != nil {
		return 0, err
	}
	return loanAmount * rate, nil
}

func (p InsurancePolicy) rateFor(ratio float64) (float64, error) {
	if p.Mode == InsuranceFlat {
		return p.FlatRate, nil
	}
	if len(p.Tiers) == 0 {
		return 0, invalidf("tiered insurance requires at least one tier")
	}
	tiers := append([]InsuranceTier(nil), p.Tiers...)
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].MinRatio > tiers[j].MinRatio })
	for _, tier := range tiers {
		if ratio >= tier.MinRatio {
			return tier.Rate, nil
		}
	}
	return tiers[len(tiers)-1].Rate, nil
}

// premiumBand prices down payment ratios from low up to the next band.
type premiumBand struct {
	low  float64
	rate float64
}

// bands lists the ratio ranges of the premium table from the uninsured band
// down to the lowest tier.
func (p InsurancePolicy) bands() []premiumBand {
	out := []premiumBand{{low: p.Threshold}}
	if p.Mode == InsuranceFlat {
		return append(out, premiumBand{low: 0, rate: p.FlatRate})
	}
	tiers := append([]InsuranceTier(nil), p.Tiers...)
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].MinRatio > tiers[j].MinRatio })
	high := p.Threshold
	for i, tier := range tiers {
		low := math.Min(tier.MinRatio, high)
		if i == len(tiers)-1 {
			low = 0
		}
		if low < high {
			out = append(out, premiumBand{low: low, rate: tier.Rate})
		}
		high = low
	}
	return out
}

// FinancedLoan returns the largest loan whose amount plus its own premium
// fits within maxFinanced, given the down payment. The premium rate depends
// on the loan through the down payment ratio, so every band of the table is
// solved and the largest consistent loan wins.
func (p InsurancePolicy) FinancedLoan(maxFinanced, downPayment float64) (float64, error) {
	if err := requireFinite("financed amount", maxFinanced); err != nil {
		return 0, err
	}
	if err := requireNonNegative("down payment", downPayment); err != nil {
		return 0, err
	}
	if maxFinanced <= 0 {
		return maxFinanced, nil
	}

	// loanAt converts a down payment ratio in percent to the loan that
	// produces it.
	loanAt := func(ratio float64) float64 {
		if ratio <= 0 {
			return math.Inf(1)
		}
		return downPayment * (constants.PercentageMultiplier/ratio - 1)
	}

	best := 0.0
	for _, band := range p.bands() {
		loan := math.Min(maxFinanced/(1+band.rate), loanAt(band.low))
		// Clamping to a band edge can land a hair outside it once the ratio
		// is recomputed from the loan; step back inside.
		for i := 0; i < 4 && loan > 0 && p.chargedRate(loan, downPayment) != band.rate; i++ {
			loan = math.Nextafter(loan, 0)
		}
		if loan <= 0 || p.chargedRate(loan, downPayment) != band.rate {
			continue
		}
		if loan > best {
			best = loan
		}
	}
	return best, nil
}

// chargedRate is the premium rate Premium applies to loan.
func (p InsurancePolicy) chargedRate(loan, downPayment float64) float64 {
	ratio := mathutil.CalculatePercentage(downPayment, loan+downPayment)
	if ratio >= p.Threshold {
		return 0
	}
	rate, err := p.rateFor(ratio)
	if err != nil {
		return math.NaN()
	}
	return rate
}

// InsurancePremium prices a premium with the default tiered table.
func InsurancePremium(loanAmount, downPaymentRatioPercent float64) (float64, error) {
	return DefaultInsurancePolicy().Premium(loanAmount, downPaymentRatioPercent)
}

func checkFraction(name string, val float64) error {
	if err := requireNonNegative(name, val); err != nil {
		return err
	}
	if val > 1 {
		return invalidf("%s must be a fraction no greater than 1, got %.4f", name, val)
	}
	return nil
}
