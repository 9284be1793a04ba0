package cleaning

import (
	"context"
	"log/slog"
	"time"

	"salespipe/internal/dataset"
	"salespipe/internal/infrastructure"
)

// dateLayouts are tried in order when normalizing a date column. The raw
// export writes month-first dates; ISO dates appear once the intermediate
// artifact has been through the pipeline.
// Month-first layouts come before the day-first fallback, so the fallback
// only catches values month-first parsing rejects (day > 12).
var dateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"01/02/2006",
	"2006/01/02",
	"1-2-2006",
	"2006-01-02 15:04:05",
	"1/2/2006 15:04",
	"2/1/2006",
}

// NormalizeDates converts the named text columns to calendar-date columns.
// Entries that fail to parse under every known layout become explicit
// nulls rather than failing the row, so downstream aggregation simply
// excludes them. A named column that is absent or already a date column is
// reported and skipped. Returns a new table.
func NormalizeDates(ctx context.Context, table *dataset.Table, columns []string) *dataset.Table {
	logger := infrastructure.LoggerWithContext(ctx)
	out := table.Clone()

	for _, name := range columns {
		col, ok := out.Column(name)
		if !ok {
			logger.WarnContext(ctx, "date column not present, skipping",
				slog.String("column", name))
			continue
		}
		if col.Kind == dataset.KindDate {
			continue
		}
		if col.Kind != dataset.KindText {
			logger.WarnContext(ctx, "date column has non-text kind, skipping",
				slog.String("column", name),
				slog.String("kind", col.Kind.String()))
			continue
		}

		dates := dataset.NewDateColumn(name, col.Len())
		unparseable := 0
		for i := 0; i < col.Len(); i++ {
			raw, ok := col.Text(i)
			if !ok {
				continue
			}
			if parsed, ok := ParseDate(raw); ok {
				dates.SetDate(i, parsed)
			} else {
				unparseable++
			}
		}

		// Same name, same length: replacement cannot fail
		_ = out.ReplaceColumn(dates)

		logger.InfoContext(ctx, "normalized date column",
			slog.String("column", name),
			slog.Int("unparseable", unparseable))
	}

	return out
}

// ParseDate parses a single raw date value against the known layouts
func ParseDate(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
