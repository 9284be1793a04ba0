package features

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"salespipe/internal/dataset"
	"salespipe/internal/errors"
	"salespipe/internal/infrastructure"
)

// Backfill joins the monthly aggregates back onto the daily table. Each
// daily row gets a Month_Key (the month start of its date key), the
// trailing rolling means and the monthly year-over-year change of its
// month. Rows whose month is absent from the series, or whose date is
// null, get nulls rather than a fault.
func Backfill(ctx context.Context, table *dataset.Table, dateColumn string, series *MonthlySeries) (*dataset.Table, error) {
	dates, ok := table.Column(dateColumn)
	if !ok || dates.Kind != dataset.KindDate {
		return nil, errors.NewValidationError(
			fmt.Sprintf("date index column %q missing or not a date column", dateColumn))
	}

	n := table.NumRows()
	monthKey := dataset.NewDateColumn(MonthKeyColumn, n)

	windows := make([]int, 0, len(series.Rolling))
	for w := range series.Rolling {
		windows = append(windows, w)
	}
	// Deterministic column order across runs
	sort.Ints(windows)

	rollingCols := make(map[int]*dataset.Column, len(windows))
	for _, w := range windows {
		rollingCols[w] = dataset.NewNumericColumn(RollingColumn(w), n)
	}
	yoyMonthly := dataset.NewNumericColumn(YOYMonthlyColumn, n)

	idx := series.indexByMonth()
	unmatched := 0
	for i := 0; i < n; i++ {
		d, ok := dates.Date(i)
		if !ok {
			continue
		}
		key := monthStart(d)
		monthKey.SetDate(i, key)

		pos, ok := idx[key]
		if !ok {
			unmatched++
			continue
		}
		for _, w := range windows {
			rollingCols[w].SetFloat(i, series.Rolling[w][pos])
		}
		if series.YOYOK != nil && series.YOYOK[pos] {
			yoyMonthly.SetFloat(i, series.YOY[pos])
		}
	}
	if unmatched > 0 {
		infrastructure.LoggerWithContext(ctx).WarnContext(ctx, "daily rows without a matching month in the series",
			slog.Int("rows", unmatched))
	}

	out := table.Clone()
	added := []*dataset.Column{monthKey}
	for _, w := range windows {
		added = append(added, rollingCols[w])
	}
	added = append(added, yoyMonthly)
	for _, col := range added {
		if err := addOrReplace(out, col); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// AddDailyYOY appends the daily-grain year-over-year change: each row's
// Sales against the Sales twelve rows earlier in the table's row order.
// This mirrors a positional shift over the daily sequence and is only an
// approximation of a calendar comparison; the monthly-grain column is the
// authoritative one. Undefined comparisons (first twelve rows, missing
// values, zero base) are filled with 0 so downstream charts stay dense.
func AddDailyYOY(ctx context.Context, table *dataset.Table) (*dataset.Table, error) {
	sales, ok := table.Column("Sales")
	if !ok || sales.Kind != dataset.KindNumeric {
		return nil, errors.NewValidationError("numeric Sales column required for daily year-over-year")
	}

	n := table.NumRows()
	yoy := dataset.NewNumericColumn(YOYDailyColumn, n)
	for i := 0; i < n; i++ {
		yoy.SetFloat(i, 0)
		if i < 12 {
			continue
		}
		cur, okCur := sales.Float(i)
		base, okBase := sales.Float(i - 12)
		if !okCur || !okBase || base == 0 {
			continue
		}
		yoy.SetFloat(i, (cur-base)/base*100)
	}

	out := table.Clone()
	if err := addOrReplace(out, yoy); err != nil {
		return nil, err
	}
	return out, nil
}

// addOrReplace installs a derived column, overwriting a previous run's copy
func addOrReplace(table *dataset.Table, col *dataset.Column) error {
	if table.HasColumn(col.Name) {
		return table.ReplaceColumn(col)
	}
	return table.AddColumn(col)
}
