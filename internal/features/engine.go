package features

import (
	"context"
	"log/slog"
	"strconv"

	"salespipe/internal/cleaning"
	"salespipe/internal/config"
	"salespipe/internal/dataset"
	"salespipe/internal/exporter"
)

// Engine is the stage-2 feature pipeline. It runs a single ordered pass
// over the cleaned table; only the decomposition and the segment rollups
// may fail without aborting the run.
type Engine struct {
	cfg    config.PipelineConfig
	paths  *config.Paths
	writer *exporter.CSVWriter
	logger *slog.Logger
}

// Result carries the stage-2 outputs needed by downstream reporting
type Result struct {
	Table         *dataset.Table
	Series        *MonthlySeries
	Decomposition *Decomposition
}

// NewEngine creates a stage-2 feature engine
func NewEngine(cfg config.PipelineConfig, paths *config.Paths, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		cfg:    cfg,
		paths:  paths,
		writer: exporter.NewCSVWriter(logger),
		logger: logger,
	}
}

// Run executes the feature stage on the cleaned table and persists the
// prepared CSV. Fatal errors only come from missing prerequisites of the
// time-indexed core or from persisting outputs; the decomposition and the
// segment features degrade with a logged reason instead.
func (e *Engine) Run(ctx context.Context, table *dataset.Table) (*Result, error) {
	dateCol := e.cfg.DateIndexColumn
	e.logger.InfoContext(ctx, "starting feature engineering",
		slog.String("date_index", dateCol),
		slog.Int("rows", table.NumRows()))

	// The cleaned CSV carries dates as text; reparse the index column.
	// Already-typed date columns pass through untouched.
	table = cleaning.NormalizeDates(ctx, table, []string{dateCol})

	series, err := Resample(ctx, table, dateCol)
	if err != nil {
		return nil, err
	}
	series.ComputeRolling(e.cfg.RollingWindows)
	series.ComputeYOY()

	table, err = AddCalendarFeatures(ctx, table, dateCol)
	if err != nil {
		return nil, err
	}

	table, err = Backfill(ctx, table, dateCol, series)
	if err != nil {
		return nil, err
	}

	table, err = AddDailyYOY(ctx, table)
	if err != nil {
		return nil, err
	}

	result := &Result{Series: series}

	decomp, err := Decompose(series, e.cfg.SeasonalPeriod)
	if err != nil {
		e.logger.WarnContext(ctx, "seasonal decomposition skipped",
			slog.String("reason", err.Error()))
	} else {
		result.Decomposition = decomp
		if err := e.writeDecomposition(decomp); err != nil {
			e.logger.WarnContext(ctx, "decomposition report not written",
				slog.String("path", e.paths.DecompositionCSV),
				slog.String("reason", err.Error()))
		}
	}

	if next, err := AddSegmentVolatility(ctx, table, dateCol); err != nil {
		e.logger.WarnContext(ctx, "segment volatility skipped",
			slog.String("reason", err.Error()))
	} else {
		table = next
	}

	if next, err := AddRevenueRollup(ctx, table); err != nil {
		e.logger.WarnContext(ctx, "revenue rollup skipped",
			slog.String("reason", err.Error()))
	} else {
		table = next
	}

	// Final artifact leads with the date index
	opts := exporter.WriteOptions{IndexColumn: dateCol}
	if err := e.writer.WriteTable(e.paths.PreparedSalesCSV, table, opts); err != nil {
		return nil, err
	}
	e.logger.InfoContext(ctx, "prepared data written",
		slog.String("path", e.paths.PreparedSalesCSV),
		slog.Int("rows", table.NumRows()),
		slog.Int("columns", table.NumCols()))

	result.Table = table
	return result, nil
}

// writeDecomposition persists the component breakdown as an informational
// report next to the other stage artifacts
func (e *Engine) writeDecomposition(d *Decomposition) error {
	headers := []string{"Month", "Observed", "Trend", "Seasonal", "Residual"}
	stream, err := e.writer.CreateStreamWriter(e.paths.DecompositionCSV, headers)
	if err != nil {
		return err
	}

	fmtFloat := func(v float64) string {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	for i, m := range d.Series.Months {
		record := []string{
			m.Format("2006-01-02"),
			fmtFloat(d.Observed[i]),
			fmtFloat(d.Trend[i]),
			fmtFloat(d.Seasonal[i]),
			fmtFloat(d.Residual[i]),
		}
		if err := stream.WriteRecord(record); err != nil {
			stream.Close()
			return err
		}
	}
	return stream.Close()
}
