package features

import (
	"context"
	"fmt"
	"time"

	"salespipe/internal/dataset"
	"salespipe/internal/errors"
)

// Calendar feature column names
const (
	YearColumn        = "Year"
	MonthColumn       = "Month"
	QuarterColumn     = "Quarter"
	DaysInMonthColumn = "Days_in_Month"
)

// quarterOf returns the calendar quarter (1..4) of a month
func quarterOf(m time.Month) int {
	return (int(m)-1)/3 + 1
}

// daysInMonth returns the day count of the month containing t.
// Day 0 of the next month is the last day of this one.
func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddCalendarFeatures appends Year, Month, Quarter and Days_in_Month to the
// table, each a pure function of the date key. Rows with a null date get
// null calendar features. The input table is not modified.
func AddCalendarFeatures(ctx context.Context, table *dataset.Table, dateColumn string) (*dataset.Table, error) {
	dates, ok := table.Column(dateColumn)
	if !ok || dates.Kind != dataset.KindDate {
		return nil, errors.NewValidationError(
			fmt.Sprintf("date index column %q missing or not a date column", dateColumn))
	}

	n := table.NumRows()
	year := dataset.NewNumericColumn(YearColumn, n)
	month := dataset.NewNumericColumn(MonthColumn, n)
	quarter := dataset.NewNumericColumn(QuarterColumn, n)
	days := dataset.NewNumericColumn(DaysInMonthColumn, n)

	for i := 0; i < n; i++ {
		d, ok := dates.Date(i)
		if !ok {
			continue
		}
		year.SetFloat(i, float64(d.Year()))
		month.SetFloat(i, float64(d.Month()))
		quarter.SetFloat(i, float64(quarterOf(d.Month())))
		days.SetFloat(i, float64(daysInMonth(d)))
	}

	out := table.Clone()
	for _, col := range []*dataset.Column{year, month, quarter, days} {
		if out.HasColumn(col.Name) {
			if err := out.ReplaceColumn(col); err != nil {
				return nil, err
			}
			continue
		}
		if err := out.AddColumn(col); err != nil {
			return nil, err
		}
	}
	return out, nil
}
