// Package format renders amounts and ratios for reports.
package format

import (
	"strconv"

	"github.com/iwvelando/homecalc/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Currency returns a dollar amount rounded to the cent with thousands
// separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	amount = mathutil.RoundCents(amount)
	if amount < 0 {
		return "-$" + NumericCurrency(-amount)
	}
	return "$" + NumericCurrency(amount)
}

// NumericCurrency returns an amount rounded to the cent with separators and
// no symbol (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	return printer.Sprintf("%.2f", mathutil.RoundCents(amount))
}

// Percent renders a value already expressed in percent (e.g., "41.56%").
func Percent(value float64) string {
	return printer.Sprintf("%.2f%%", value)
}

// Plain renders an amount rounded to the cent with no separators, for CSV.
func Plain(amount float64) string {
	return strconv.FormatFloat(mathutil.RoundCents(amount), 'f', 2, 64)
}
