package config

import (
	"fmt"

	"github.com/iwvelando/homecalc/pkg/finance"
	"github.com/iwvelando/homecalc/pkg/mathutil"
	"github.com/iwvelando/homecalc/pkg/mortgage"
)

// MortgagePolicy converts the policy section into a validated lending policy.
func (conf *Configuration) MortgagePolicy() (mortgage.Policy, error) {
	p := conf.Policy
	policy := mortgage.Policy{
		StressFloorRate:    p.StressFloorRate,
		ClosingCostRate:    p.ClosingCostRate,
		AmortizePremium:    p.AmortizePremium,
		CompoundingPeriods: p.CompoundingPeriods,
		GDSLimit:           p.GDSLimit,
		TDSLimit:           p.TDSLimit,
		Insurance: mortgage.InsurancePolicy{
			Mode:      mortgage.InsuranceMode(p.Insurance.Mode),
			Threshold: p.Insurance.Threshold,
			FlatRate:  p.Insurance.FlatRate,
		},
		DownPayment: mortgage.DownPaymentRules{
			LowerLimit: p.DownPayment.LowerLimit,
			UpperLimit: p.DownPayment.UpperLimit,
			LowerRate:  p.DownPayment.LowerRate,
			MiddleRate: p.DownPayment.MiddleRate,
			UpperRate:  p.DownPayment.UpperRate,
		},
	}
	for _, tier := range p.Insurance.Tiers {
		policy.Insurance.Tiers = append(policy.Insurance.Tiers, mortgage.InsuranceTier{
			MinRatio: tier.MinRatio,
			Rate:     tier.Rate,
		})
	}
	if err := policy.Validate(); err != nil {
		return mortgage.Policy{}, fmt.Errorf("policy: %w", err)
	}
	return policy, nil
}

// FinancialProfile converts the profile section.
func (conf *Configuration) FinancialProfile() mortgage.FinancialProfile {
	p := conf.Profile
	return mortgage.FinancialProfile{
		AnnualIncome:      p.AnnualIncome,
		DownPayment:       p.DownPayment,
		InterestRate:      p.InterestRate,
		AmortizationYears: p.AmortizationYears,
		TaxRate:           p.TaxRate,
		Housing:           p.Housing.housingCosts(),
		Debts: mortgage.MonthlyDebts{
			CarLoan:      p.Debts.CarLoan,
			Lease:        p.Debts.Lease,
			LineOfCredit: p.Debts.LineOfCredit,
			PersonalLoan: p.Debts.PersonalLoan,
			CreditCards:  p.Debts.CreditCards,
			StudentLoan:  p.Debts.StudentLoan,
		},
		Living: mortgage.LivingExpenses{
			Groceries:            p.Living.Groceries,
			Transportation:       p.Living.Transportation,
			CarInsurance:         p.Living.CarInsurance,
			Phone:                p.Living.Phone,
			Childcare:            p.Living.Childcare,
			LifeHealthInsurance:  p.Living.LifeHealthInsurance,
			Shopping:             p.Living.Shopping,
			Restaurants:          p.Living.Restaurants,
			Subscriptions:        p.Living.Subscriptions,
			SavingsContributions: p.Living.SavingsContributions,
			Miscellaneous:        p.Living.Miscellaneous,
		},
	}
}

func (h HousingConfig) housingCosts() mortgage.HousingCosts {
	return mortgage.HousingCosts{
		PropertyTax:   h.PropertyTax,
		Utilities:     h.Utilities,
		CondoFee:      h.CondoFee,
		HomeInsurance: h.HomeInsurance,
		Heating:       h.Heating,
	}
}

// ComparisonHousing returns the monthly housing costs for a comparison,
// falling back to the profile's.
func (conf *Configuration) ComparisonHousing(c ComparisonConfig) mortgage.HousingCosts {
	if c.Housing != nil {
		return c.Housing.housingCosts()
	}
	return conf.Profile.Housing.housingCosts()
}

// FinancingOptions converts the comparison's options.
func (c ComparisonConfig) FinancingOptions() []mortgage.FinancingOption {
	options := make([]mortgage.FinancingOption, 0, len(c.Options))
	for _, o := range c.Options {
		options = append(options, mortgage.FinancingOption{
			Name:                o.Name,
			DownPayment:         o.DownPayment,
			InterestRate:        o.InterestRate,
			AmortizationYears:   o.AmortizationYears,
			ExtraMonthlyPayment: o.ExtraMonthlyPayment,
			RentalIncome:        o.RentalIncome,
			LawyerFee:           o.LawyerFee,
			FirstTimeBuyerCosts: o.FirstTimeBuyerCosts,
			LandTransferTax:     o.LandTransferTax,
		})
	}
	return options
}

// Bands converts the affordability bands. An empty list yields the defaults.
func (conf *Configuration) Bands() []mortgage.Band {
	if len(conf.Affordability.Bands) == 0 {
		return mortgage.DefaultBands()
	}
	bands := make([]mortgage.Band, 0, len(conf.Affordability.Bands))
	for _, b := range conf.Affordability.Bands {
		bands = append(bands, mortgage.Band{Name: b.Name, TargetTDS: b.TargetTDS})
	}
	return bands
}

// PurchasePrice resolves the scenario price, falling back to a multiple of
// annual income when no price is set.
func (s Scenario) PurchasePrice(annualIncome float64) (float64, error) {
	switch {
	case s.Price > 0:
		return s.Price, nil
	case s.IncomeMultiple > 0:
		return s.IncomeMultiple * annualIncome, nil
	default:
		return 0, fmt.Errorf("%w: scenario %s needs a price or an income multiple", mortgage.ErrInvalidInput, s.Name)
	}
}

// RentalInputs converts the rental section; ok is false when it is absent.
func (conf *Configuration) RentalInputs() (finance.RentalInputs, bool) {
	if conf.Rental == nil {
		return finance.RentalInputs{}, false
	}
	r := conf.Rental
	return finance.RentalInputs{
		PurchasePrice:    r.PurchasePrice,
		MonthlyRent:      r.MonthlyRent,
		MonthlyExpenses:  r.MonthlyExpenses,
		AppreciationRate: r.AppreciationRate,
		HoldingYears:     r.HoldingYears,
	}, true
}

// CommissionInputs converts the commission section; ok is false when it is
// absent.
func (conf *Configuration) CommissionInputs() (finance.CommissionInputs, bool) {
	if conf.Commission == nil {
		return finance.CommissionInputs{}, false
	}
	c := conf.Commission
	return finance.CommissionInputs{
		SalePrice:      c.SalePrice,
		CommissionRate: c.CommissionRate,
		AgentSplit:     c.AgentSplit,
		BrokerageFee:   c.BrokerageFee,
	}, true
}

// SavingsInputs converts the savings section; ok is false when it is absent.
// Without an explicit target down payment the minimum down payment on
// TargetHomePrice under policy is used. The premium and closing costs are
// priced on TargetHomePrice.
func (conf *Configuration) SavingsInputs(policy mortgage.Policy) (finance.SavingsInputs, bool, error) {
	if conf.Savings == nil {
		return finance.SavingsInputs{}, false, nil
	}
	s := conf.Savings
	target := s.TargetDownPayment
	if target == 0 && s.TargetHomePrice > 0 {
		minimum, err := policy.DownPayment.Minimum(s.TargetHomePrice)
		if err != nil {
			return finance.SavingsInputs{}, true, fmt.Errorf("savings target: %w", err)
		}
		target = minimum
	}

	var premium, closing float64
	if s.TargetHomePrice > 0 {
		var err error
		premium, err = policy.Insurance.Premium(s.TargetHomePrice-target, mathutil.CalculatePercentage(target, s.TargetHomePrice))
		if err != nil {
			return finance.SavingsInputs{}, true, fmt.Errorf("savings premium: %w", err)
		}
		closing, err = mortgage.ClosingCosts(s.TargetHomePrice, policy.ClosingCostRate)
		if err != nil {
			return finance.SavingsInputs{}, true, fmt.Errorf("savings closing costs: %w", err)
		}
	}
	return finance.SavingsInputs{
		TargetHomePrice:   s.TargetHomePrice,
		TargetDownPayment: target,
		InsurancePremium:  premium,
		ClosingCosts:      closing,
		CashBalance:       s.CashBalance,
		FHSABalance:       s.FHSABalance,
		RRSPBalance:       s.RRSPBalance,
		TimelineYears:     s.TimelineYears,
		AnnualReturn:      s.AnnualReturn,
		FHSAAnnualLimit:   s.FHSAAnnualLimit,
		FHSALifetimeLimit: s.FHSALifetimeLimit,
		MonthlyRRSPCap:    s.MonthlyRRSPCap,
		StartDate:         s.StartDate,
	}, true, nil
}
