package mortgage

import (
	"fmt"

	"github.com/iwvelando/homecalc/pkg/constants"
)

// Band names an affordability target expressed as a TDS ratio.
type Band struct {
	Name      string  `json:"name"`
	TargetTDS float64 `json:"targetTds"`
}

// DefaultBands returns the stretch, balanced and safe targets.
func DefaultBands() []Band {
	return []Band{
		{Name: "maximum stretch", TargetTDS: constants.DefaultStretchTDS},
		{Name: "balanced budget", TargetTDS: constants.DefaultBalancedTDS},
		{Name: "play it safe", TargetTDS: constants.DefaultSafeTDS},
	}
}

// BandResult pairs a band with its back-solved price. Scenario is nil when
// the band is infeasible.
type BandResult struct {
	Band          Band            `json:"band"`
	Affordability Affordability   `json:"affordability"`
	Scenario      *ScenarioResult `json:"scenario,omitempty"`
}

// Bands back-solves every band and evaluates each feasible price.
func (c *Calculator) Bands(profile FinancialProfile, bands []Band) ([]BandResult, error) {
	results := make([]BandResult, 0, len(bands))
	for _, band := range bands {
		affordability, err := c.Affordability(profile, band.TargetTDS)
		if err != nil {
			return nil, fmt.Errorf("band %s: %w", band.Name, err)
		}
		result := BandResult{Band: band, Affordability: affordability}
		if affordability.Feasible {
			scenario, err := c.Evaluate(profile, affordability.Price)
			if err != nil {
				return nil, fmt.Errorf("band %s: %w", band.Name, err)
			}
			result.Scenario = &scenario
		}
		results = append(results, result)
	}
	return results, nil
}
