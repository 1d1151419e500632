// Package datetime provides month arithmetic on YYYY-MM strings.
package datetime

import (
	"time"

	"github.com/iwvelando/homecalc/pkg/constants"
)

// DateTimeLayout is the month format used for savings projections.
const DateTimeLayout = constants.DateTimeLayout

// OffsetDate returns the string-formatted date offset by the given number of
// months relative to the given date.
func OffsetDate(date, layout string, months int) (string, error) {
	t, err := time.Parse(layout, date)
	if err != nil {
		return date, err
	}
	return t.AddDate(0, months, 0).Format(layout), nil
}

// CurrentMonth formats now as a YYYY-MM month.
func CurrentMonth(now time.Time) string {
	return now.Format(DateTimeLayout)
}

// MonthsBetween counts whole months from start to end; negative when end is
// before start.
func MonthsBetween(start, end string) (int, error) {
	startT, err := time.Parse(DateTimeLayout, start)
	if err != nil {
		return 0, err
	}
	endT, err := time.Parse(DateTimeLayout, end)
	if err != nil {
		return 0, err
	}
	return (endT.Year()-startT.Year())*12 + int(endT.Month()-startT.Month()), nil
}
