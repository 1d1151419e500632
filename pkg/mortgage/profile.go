package mortgage

import "fmt"

// HousingCosts are the fixed monthly costs of carrying a home.
type HousingCosts struct {
	PropertyTax   float64
	Utilities     float64
	CondoFee      float64
	HomeInsurance float64
	Heating       float64
}

// Total sums the monthly housing costs.
func (h HousingCosts) Total() float64 {
	return h.PropertyTax + h.Utilities + h.CondoFee + h.HomeInsurance + h.Heating
}

func (h HousingCosts) validate() error {
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"property tax", h.PropertyTax},
		{"utilities", h.Utilities},
		{"condo fee", h.CondoFee},
		{"home insurance", h.HomeInsurance},
		{"heating", h.Heating},
	} {
		if err := requireNonNegative(v.name, v.val); err != nil {
			return err
		}
	}
	return nil
}

// MonthlyDebts are recurring monthly debt obligations counted toward TDS.
type MonthlyDebts struct {
	CarLoan      float64
	Lease        float64
	LineOfCredit float64
	PersonalLoan float64
	CreditCards  float64
	StudentLoan  float64
}

// Total sums the monthly debt payments.
func (d MonthlyDebts) Total() float64 {
	return d.CarLoan + d.Lease + d.LineOfCredit + d.PersonalLoan + d.CreditCards + d.StudentLoan
}

func (d MonthlyDebts) validate() error {
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"car loan", d.CarLoan},
		{"lease", d.Lease},
		{"line of credit", d.LineOfCredit},
		{"personal loan", d.PersonalLoan},
		{"credit cards", d.CreditCards},
		{"student loan", d.StudentLoan},
	} {
		if err := requireNonNegative(v.name, v.val); err != nil {
			return err
		}
	}
	return nil
}

// LivingExpenses are the monthly costs of living outside housing and debt.
// They do not enter GDS or TDS but reduce the cash left each month.
type LivingExpenses struct {
	Groceries            float64
	Transportation       float64
	CarInsurance         float64
	Phone                float64
	Childcare            float64
	LifeHealthInsurance  float64
	Shopping             float64
	Restaurants          float64
	Subscriptions        float64
	SavingsContributions float64
	Miscellaneous        float64
}

// Total sums the monthly living expenses.
func (l LivingExpenses) Total() float64 {
	return l.Groceries + l.Transportation + l.CarInsurance + l.Phone + l.Childcare +
		l.LifeHealthInsurance + l.Shopping + l.Restaurants + l.Subscriptions +
		l.SavingsContributions + l.Miscellaneous
}

func (l LivingExpenses) validate() error {
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"groceries", l.Groceries},
		{"transportation", l.Transportation},
		{"car insurance", l.CarInsurance},
		{"phone", l.Phone},
		{"childcare", l.Childcare},
		{"life and health insurance", l.LifeHealthInsurance},
		{"shopping", l.Shopping},
		{"restaurants", l.Restaurants},
		{"subscriptions", l.Subscriptions},
		{"savings contributions", l.SavingsContributions},
		{"miscellaneous", l.Miscellaneous},
	} {
		if err := requireNonNegative(v.name, v.val); err != nil {
			return err
		}
	}
	return nil
}

// FinancialProfile is an immutable snapshot of a buyer's finances.
type FinancialProfile struct {
	AnnualIncome      float64
	DownPayment       float64
	InterestRate      float64 // nominal annual, percent
	AmortizationYears int
	Housing           HousingCosts
	Debts             MonthlyDebts
	Living            LivingExpenses
	TaxRate           float64 // percent; zero means ratios use gross income
}

// Validate rejects negative amounts, a non-positive amortization, a tax rate
// outside [0, 100) and non-finite values.
func (p FinancialProfile) Validate() error {
	if err := requireNonNegative("annual income", p.AnnualIncome); err != nil {
		return err
	}
	if err := requireNonNegative("down payment", p.DownPayment); err != nil {
		return err
	}
	if err := requireNonNegative("interest rate", p.InterestRate); err != nil {
		return err
	}
	if p.AmortizationYears <= 0 {
		return invalidf("amortization must be positive, got %d years", p.AmortizationYears)
	}
	if err := checkTaxRate(p.TaxRate); err != nil {
		return err
	}
	if err := p.Housing.validate(); err != nil {
		return fmt.Errorf("housing costs: %w", err)
	}
	if err := p.Debts.validate(); err != nil {
		return fmt.Errorf("monthly debts: %w", err)
	}
	if err := p.Living.validate(); err != nil {
		return fmt.Errorf("living expenses: %w", err)
	}
	return nil
}

// MonthlyIncome is the income used as the debt ratio denominator.
func (p FinancialProfile) MonthlyIncome() (float64, error) {
	return MonthlyIncome(p.AnnualIncome, p.TaxRate)
}
