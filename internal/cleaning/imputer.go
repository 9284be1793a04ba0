package cleaning

import (
	"context"
	"log/slog"

	"salespipe/internal/dataset"
	"salespipe/internal/infrastructure"
)

// Impute fills missing values per column: numeric columns take the median
// of their present values, text columns take the most frequent value with
// ties broken by first encounter. An all-null numeric column has no
// defined median and is left as-is with a warning; an all-null text
// column is likewise a logged no-op. Returns a new table.
func Impute(ctx context.Context, table *dataset.Table) *dataset.Table {
	logger := infrastructure.LoggerWithContext(ctx)
	out := table.Clone()

	for _, col := range out.Columns() {
		nulls := col.NullCount()
		if nulls == 0 {
			continue
		}

		switch col.Kind {
		case dataset.KindNumeric:
			median, ok := col.Median()
			if !ok {
				logger.WarnContext(ctx, "cannot impute all-null numeric column",
					slog.String("column", col.Name))
				continue
			}
			fillNumeric(col, median)
			logger.InfoContext(ctx, "imputed numeric column with median",
				slog.String("column", col.Name),
				slog.Int("filled", nulls),
				slog.Float64("median", median))

		case dataset.KindText:
			mode, ok := col.Mode()
			if !ok {
				logger.WarnContext(ctx, "cannot impute all-null column",
					slog.String("column", col.Name))
				continue
			}
			fillText(col, mode)
			logger.InfoContext(ctx, "imputed column with mode",
				slog.String("column", col.Name),
				slog.Int("filled", nulls),
				slog.String("mode", mode))

		default:
			// Date columns are normalized after imputation; their nulls are
			// the explicit unparseable-date markers and stay null.
		}
	}

	return out
}

func fillNumeric(col *dataset.Column, value float64) {
	for i := 0; i < col.Len(); i++ {
		if col.IsNull(i) {
			col.SetFloat(i, value)
		}
	}
}

func fillText(col *dataset.Column, value string) {
	for i := 0; i < col.Len(); i++ {
		if col.IsNull(i) {
			col.SetText(i, value)
		}
	}
}
