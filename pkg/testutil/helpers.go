// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/homecalc/internal/calculator"
	"github.com/iwvelando/homecalc/pkg/mortgage"
)

// FindScenario finds a scenario by name in the report.
// Returns a pointer to the scenario if found, nil otherwise.
func FindScenario(report calculator.Report, name string) *calculator.ScenarioReport {
	for i := range report.Scenarios {
		if report.Scenarios[i].Name == name {
			return &report.Scenarios[i]
		}
	}
	return nil
}

// FindBand finds an affordability band by name in the report.
func FindBand(report calculator.Report, name string) *mortgage.BandResult {
	for i := range report.Bands {
		if report.Bands[i].Band.Name == name {
			return &report.Bands[i]
		}
	}
	return nil
}
