package config

import (
	"fmt"
	"time"

	"github.com/iwvelando/homecalc/pkg/datetime"
	"github.com/iwvelando/homecalc/pkg/mortgage"
)

const (
	maxStandardAmortizationYears = 30
	staleStartDateMonths         = 12
)

// ValidateConfiguration returns warnings about settings that are legal but
// probably not intended. Hard errors are reported when the configuration is
// converted.
func (conf *Configuration) ValidateConfiguration() []string {
	return conf.validateAt(time.Now())
}

func (conf *Configuration) validateAt(now time.Time) []string {
	var warnings []string

	active := 0
	seen := make(map[string]bool, len(conf.Scenarios))
	for _, s := range conf.Scenarios {
		if s.Active {
			active++
		}
		if seen[s.Name] {
			warnings = append(warnings, fmt.Sprintf("duplicate scenario name %q", s.Name))
		}
		seen[s.Name] = true
	}
	if len(conf.Scenarios) > 0 && active == 0 {
		warnings = append(warnings, "no active scenarios; only affordability bands will be reported")
	}

	if mortgage.InsuranceMode(conf.Policy.Insurance.Mode) == mortgage.InsuranceFlat {
		warnings = append(warnings, "flat insurance premiums are a legacy mode; tiered pricing is the current schedule")
	}

	if conf.Profile.AmortizationYears > maxStandardAmortizationYears {
		warnings = append(warnings, fmt.Sprintf("amortization of %d years exceeds the usual %d year maximum",
			conf.Profile.AmortizationYears, maxStandardAmortizationYears))
	}

	if policy, err := conf.MortgagePolicy(); err == nil {
		for _, s := range conf.Scenarios {
			if !s.Active || s.MinimumDownPayment {
				continue
			}
			price, err := s.PurchasePrice(conf.Profile.AnnualIncome)
			if err != nil {
				continue
			}
			down := conf.Profile.DownPayment
			if s.DownPayment != nil {
				down = *s.DownPayment
			}
			minimum, err := policy.DownPayment.Minimum(price)
			if err == nil && down < minimum {
				warnings = append(warnings, fmt.Sprintf("scenario %s: down payment %.2f is below the minimum %.2f",
					s.Name, down, minimum))
			}
		}
	}

	for _, c := range conf.Comparisons {
		if len(c.Options) < 2 {
			warnings = append(warnings, fmt.Sprintf("comparison %s has %d financing options; nothing to compare", c.Name, len(c.Options)))
		}
	}

	if conf.Savings != nil && conf.Savings.StartDate != "" {
		months, err := datetime.MonthsBetween(conf.Savings.StartDate, datetime.CurrentMonth(now))
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("savings start date %q is not in YYYY-MM format", conf.Savings.StartDate))
		} else if months > staleStartDateMonths {
			warnings = append(warnings, fmt.Sprintf("savings start date %s is %d months in the past", conf.Savings.StartDate, months))
		}
	}

	return warnings
}
