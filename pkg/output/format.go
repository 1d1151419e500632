// Package output provides utilities for formatting and displaying reports.
package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/homecalc/internal/calculator"
	"github.com/iwvelando/homecalc/pkg/finance"
	"github.com/iwvelando/homecalc/pkg/format"
	"github.com/iwvelando/homecalc/pkg/mortgage"
)

type row struct {
	label string
	value string
}

func scenarioRows(r mortgage.ScenarioResult) []row {
	return []row{
		{"Purchase price", format.Currency(r.PurchasePrice)},
		{"Down payment", fmt.Sprintf("%s (%s)", format.Currency(r.DownPayment), format.Percent(r.DownPaymentRatio))},
		{"Minimum down payment", format.Currency(r.MinimumDownPayment)},
		{"Loan amount", format.Currency(r.LoanAmount)},
		{"Insurance premium", format.Currency(r.InsurancePremium)},
		{"Total financed", format.Currency(r.TotalFinanced)},
		{"Monthly payment", format.Currency(r.MonthlyPayment)},
		{"GDS / TDS", fmt.Sprintf("%s / %s", format.Percent(r.GDS), format.Percent(r.TDS))},
		{"Qualifying rate", format.Percent(r.QualifyingRate)},
		{"Qualifying payment", format.Currency(r.QualifyingPayment)},
		{"Qualifying GDS / TDS", fmt.Sprintf("%s / %s", format.Percent(r.QualifyingGDS), format.Percent(r.QualifyingTDS))},
		{"Qualifies", yesNo(r.Qualifies)},
		{"Closing costs", format.Currency(r.ClosingCosts)},
		{"Total interest", format.Currency(r.TotalInterest)},
		{"Living expenses", format.Currency(r.CashFlow.LivingExpenses)},
		{"Remaining cash", format.Currency(r.CashFlow.RemainingCash)},
	}
}

func savingsRows(s *finance.SavingsPlan) []row {
	rows := []row{
		{"Current savings", format.Currency(s.CurrentSavings)},
		{"Shortfall", format.Currency(s.Shortfall)},
		{"Monthly goal", format.Currency(s.MonthlySavingsGoal)},
		{"FHSA / RRSP / other", fmt.Sprintf("%s / %s / %s",
			format.Currency(s.MonthlyFHSA), format.Currency(s.MonthlyRRSP), format.Currency(s.MonthlyOther))},
		{"Current savings at deadline", format.Currency(s.FutureValueOfSavings)},
	}
	if s.TargetHomePrice > 0 {
		rows = append(rows,
			row{"Target home price", format.Currency(s.TargetHomePrice)},
			row{"Insurance premium", format.Currency(s.InsurancePremium)},
			row{"Closing costs", format.Currency(s.ClosingCosts)},
			row{"Cash to close", format.Currency(s.CashToClose)},
		)
	}
	return rows
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func writeRows(w io.Writer, rows []row) {
	width := 0
	for _, r := range rows {
		if len(r.label) > width {
			width = len(r.label)
		}
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%-*s | %s\n", width, r.label, r.value)
	}
}

// PrettyFormat writes a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, report calculator.Report) {
	for _, scenario := range report.Scenarios {
		fmt.Fprintf(w, "--- Results for scenario %s ---\n", scenario.Name)
		writeRows(w, scenarioRows(scenario.Result))
		fmt.Fprintf(w, "\n")
	}

	if len(report.Bands) > 0 {
		fmt.Fprintf(w, "--- Affordability ---\n")
		fmt.Fprintf(w, "Band | Target TDS | Max payment | Max loan | Price\n")
		fmt.Fprintf(w, "____ | __________ | ___________ | ________ | _____\n")
		for _, band := range report.Bands {
			if !band.Affordability.Feasible {
				fmt.Fprintf(w, "%s | %s | not affordable\n", band.Band.Name, format.Percent(band.Band.TargetTDS))
				continue
			}
			fmt.Fprintf(w, "%s | %s | %s | %s | %s\n",
				band.Band.Name,
				format.Percent(band.Band.TargetTDS),
				format.Currency(band.Affordability.MaxPayment),
				format.Currency(band.Affordability.MaxLoan),
				format.Currency(band.Affordability.Price),
			)
		}
		fmt.Fprintf(w, "\n")
	}

	if r := report.Rental; r != nil {
		fmt.Fprintf(w, "--- Rental ---\n")
		writeRows(w, []row{
			{"Annual rent", format.Currency(r.AnnualRent)},
			{"Annual expenses", format.Currency(r.AnnualExpenses)},
			{"Net income", format.Currency(r.NetIncome)},
			{"Cash on cash", format.Percent(r.CashOnCash)},
			{"Future value", format.Currency(r.FutureValue)},
			{"Appreciation", format.Currency(r.TotalAppreciation)},
			{"Total return", format.Currency(r.TotalReturn)},
		})
		fmt.Fprintf(w, "\n")
	}

	if c := report.Commission; c != nil {
		fmt.Fprintf(w, "--- Commission ---\n")
		writeRows(w, []row{
			{"Gross", format.Currency(c.Gross)},
			{"Agent share", format.Currency(c.AgentShare)},
			{"Brokerage share", format.Currency(c.BrokerageShare)},
			{"Net to agent", format.Currency(c.Net)},
		})
		fmt.Fprintf(w, "\n")
	}

	for _, c := range report.Comparisons {
		fmt.Fprintf(w, "--- Financing comparison %s at %s ---\n", c.Name, format.Currency(c.Price))
		fmt.Fprintf(w, "Option | Down payment | Premium | Total loan | Payment | Net housing cost | Cash to close\n")
		fmt.Fprintf(w, "______ | ____________ | _______ | __________ | _______ | ________________ | _____________\n")
		for _, o := range c.Options {
			name := o.Name
			if !o.MeetsMinimumDown {
				name += " (below minimum down)"
			}
			fmt.Fprintf(w, "%s | %s | %s | %s | %s | %s | %s\n",
				name,
				format.Currency(o.DownPayment),
				format.Currency(o.InsurancePremium),
				format.Currency(o.TotalLoan),
				format.Currency(o.MonthlyPayment),
				format.Currency(o.NetHousingCost),
				format.Currency(o.CashToClose),
			)
		}
		fmt.Fprintf(w, "\n")
	}

	if s := report.Savings; s != nil {
		fmt.Fprintf(w, "--- Savings plan ---\n")
		writeRows(w, savingsRows(s))
		fmt.Fprintf(w, "Date    | FHSA | RRSP | Other | Balance\n")
		fmt.Fprintf(w, "____    | ____ | ____ | _____ | _______\n")
		for _, m := range s.Projection {
			fmt.Fprintf(w, "%s | %s | %s | %s | %s\n",
				m.Date, format.Currency(m.FHSA), format.Currency(m.RRSP), format.Currency(m.Other), format.Currency(m.Balance))
		}
	}
}

var scenarioColumns = []string{
	"scenario", "price", "down payment", "down payment ratio", "minimum down payment", "loan amount",
	"insurance premium", "total financed", "monthly payment", "gds", "tds", "qualifying rate",
	"qualifying payment", "qualifying gds", "qualifying tds", "qualifies", "closing costs",
	"total interest", "remaining cash",
}

var comparisonColumns = []string{
	"comparison", "option", "down payment", "meets minimum down", "loan amount", "insurance premium",
	"total loan", "monthly payment", "total monthly", "net housing cost", "total interest",
	"cost before closing", "cash to close",
}

func quoted(fields []string) string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(out, ",")
}

// CsvFormat writes the scenarios, affordability bands and financing
// comparisons in comma-separated value format, one table after the other.
func CsvFormat(w io.Writer, report calculator.Report) {
	fmt.Fprintln(w, quoted(scenarioColumns))
	for _, scenario := range report.Scenarios {
		r := scenario.Result
		fmt.Fprintln(w, quoted([]string{
			scenario.Name,
			format.Plain(r.PurchasePrice),
			format.Plain(r.DownPayment),
			format.Plain(r.DownPaymentRatio),
			format.Plain(r.MinimumDownPayment),
			format.Plain(r.LoanAmount),
			format.Plain(r.InsurancePremium),
			format.Plain(r.TotalFinanced),
			format.Plain(r.MonthlyPayment),
			format.Plain(r.GDS),
			format.Plain(r.TDS),
			format.Plain(r.QualifyingRate),
			format.Plain(r.QualifyingPayment),
			format.Plain(r.QualifyingGDS),
			format.Plain(r.QualifyingTDS),
			fmt.Sprintf("%t", r.Qualifies),
			format.Plain(r.ClosingCosts),
			format.Plain(r.TotalInterest),
			format.Plain(r.CashFlow.RemainingCash),
		}))
	}

	if len(report.Bands) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, quoted([]string{"band", "target tds", "feasible", "max payment", "max loan", "price"}))
		for _, band := range report.Bands {
			a := band.Affordability
			fmt.Fprintln(w, quoted([]string{
				band.Band.Name,
				format.Plain(band.Band.TargetTDS),
				fmt.Sprintf("%t", a.Feasible),
				format.Plain(a.MaxPayment),
				format.Plain(a.MaxLoan),
				format.Plain(a.Price),
			}))
		}
	}

	if len(report.Comparisons) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, quoted(comparisonColumns))
	for _, c := range report.Comparisons {
		for _, o := range c.Options {
			fmt.Fprintln(w, quoted([]string{
				c.Name,
				o.Name,
				format.Plain(o.DownPayment),
				fmt.Sprintf("%t", o.MeetsMinimumDown),
				format.Plain(o.LoanAmount),
				format.Plain(o.InsurancePremium),
				format.Plain(o.TotalLoan),
				format.Plain(o.MonthlyPayment),
				format.Plain(o.TotalMonthly),
				format.Plain(o.NetHousingCost),
				format.Plain(o.TotalInterest),
				format.Plain(o.CostBeforeClosing),
				format.Plain(o.CashToClose),
			}))
		}
	}
}

// CsvString returns the CSV rendition of report.
func CsvString(report calculator.Report) string {
	var buf bytes.Buffer
	CsvFormat(&buf, report)
	return buf.String()
}
