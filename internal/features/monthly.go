package features

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"salespipe/internal/dataset"
	"salespipe/internal/errors"
	"salespipe/internal/infrastructure"
)

// Derived column names added to the daily table during backfill.
const (
	MonthKeyColumn      = "Month_Key"
	YOYMonthlyColumn    = "YOY_Change_Monthly"
	YOYDailyColumn      = "YOY_Change_Daily"
	VolatilityColumn    = "Sales_Volatility_Monthly"
	RevenueRollupColumn = "Revenue_Per_Product_Region"
)

// RollingColumn returns the daily-table column name for a trailing monthly
// mean of the given window size.
func RollingColumn(window int) string {
	return fmt.Sprintf("Rolling_%dM_Sales", window)
}

// MonthlySeries is the month-start-keyed aggregate of the daily table.
// Months are strictly increasing with no duplicates; Sales holds the month
// sums. Derived slices are populated by ComputeRolling and ComputeYOY and
// are aligned index-for-index with Months.
type MonthlySeries struct {
	Months []time.Time
	Sales  []float64

	// Rolling holds trailing means keyed by window size
	Rolling map[int][]float64

	// LastYear / YOY carry their own validity: a month without a value
	// exactly twelve calendar months prior has no defined comparison.
	LastYear   []float64
	LastYearOK []bool
	YOY        []float64
	YOYOK      []bool
}

// Len returns the number of monthly points
func (s *MonthlySeries) Len() int {
	return len(s.Months)
}

// monthStart truncates a date to the first day of its month in UTC
func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Resample groups the daily table by calendar month of the date key and
// sums Sales. Rows with a null date are excluded; null sales contribute
// nothing to their month's sum. The result is ordered by month ascending.
func Resample(ctx context.Context, table *dataset.Table, dateColumn string) (*MonthlySeries, error) {
	dates, ok := table.Column(dateColumn)
	if !ok || dates.Kind != dataset.KindDate {
		return nil, errors.NewValidationError(
			fmt.Sprintf("date index column %q missing or not a date column", dateColumn))
	}
	sales, ok := table.Column("Sales")
	if !ok || sales.Kind != dataset.KindNumeric {
		return nil, errors.NewValidationError("numeric Sales column required for monthly resample")
	}

	sums := make(map[time.Time]float64)
	skipped := 0
	for i := 0; i < table.NumRows(); i++ {
		d, ok := dates.Date(i)
		if !ok {
			skipped++
			continue
		}
		v, ok := sales.Float(i)
		if !ok {
			continue
		}
		sums[monthStart(d)] += v
	}

	series := &MonthlySeries{
		Months:  make([]time.Time, 0, len(sums)),
		Rolling: make(map[int][]float64),
	}
	for m := range sums {
		series.Months = append(series.Months, m)
	}
	sort.Slice(series.Months, func(i, j int) bool {
		return series.Months[i].Before(series.Months[j])
	})

	series.Sales = make([]float64, len(series.Months))
	for i, m := range series.Months {
		series.Sales[i] = sums[m]
	}

	infrastructure.LoggerWithContext(ctx).InfoContext(ctx, "monthly resample complete",
		slog.Int("months", series.Len()),
		slog.Int("rows_without_date", skipped))

	return series, nil
}

// ComputeRolling fills the trailing mean for each requested window. The
// window shrinks at the start of the series down to a single point, so
// every month has a value.
func (s *MonthlySeries) ComputeRolling(windows []int) {
	for _, w := range windows {
		if w < 1 {
			continue
		}
		out := make([]float64, s.Len())
		for i := range s.Sales {
			start := i - w + 1
			if start < 0 {
				start = 0
			}
			var sum float64
			for j := start; j <= i; j++ {
				sum += s.Sales[j]
			}
			out[i] = sum / float64(i-start+1)
		}
		s.Rolling[w] = out
	}
}

// ComputeYOY fills Sales_Last_Year and the monthly year-over-year change.
// The prior value is looked up by calendar month, twelve months back, not
// by position: a gap in the series must not shift the comparison onto the
// wrong month. YOY is undefined when the prior value is absent or zero.
func (s *MonthlySeries) ComputeYOY() {
	byMonth := make(map[time.Time]float64, s.Len())
	for i, m := range s.Months {
		byMonth[m] = s.Sales[i]
	}

	s.LastYear = make([]float64, s.Len())
	s.LastYearOK = make([]bool, s.Len())
	s.YOY = make([]float64, s.Len())
	s.YOYOK = make([]bool, s.Len())

	for i, m := range s.Months {
		prev, ok := byMonth[m.AddDate(-1, 0, 0)]
		if !ok {
			continue
		}
		s.LastYear[i] = prev
		s.LastYearOK[i] = true
		if prev == 0 {
			continue
		}
		s.YOY[i] = (s.Sales[i] - prev) / prev * 100
		s.YOYOK[i] = true
	}
}

// indexByMonth returns a month-start → position lookup for backfill joins
func (s *MonthlySeries) indexByMonth() map[time.Time]int {
	idx := make(map[time.Time]int, s.Len())
	for i, m := range s.Months {
		idx[m] = i
	}
	return idx
}
