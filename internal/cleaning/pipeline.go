package cleaning

import (
	"context"
	"log/slog"
	"os"

	"salespipe/internal/config"
	"salespipe/internal/dataset"
	"salespipe/internal/exporter"
)

// Pipeline is the stage-1 data preparation pipeline: load, impute,
// normalize dates, derive the profit margin, persist the cleaned CSV.
type Pipeline struct {
	cfg    config.PipelineConfig
	paths  *config.Paths
	writer *exporter.CSVWriter
	logger *slog.Logger
}

// NewPipeline creates a stage-1 pipeline
func NewPipeline(cfg config.PipelineConfig, paths *config.Paths, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		cfg:    cfg,
		paths:  paths,
		writer: exporter.NewCSVWriter(logger),
		logger: logger,
	}
}

// Run executes the cleaning stage against the given input file and writes
// the cleaned table to the configured intermediate artifact. The returned
// table is the persisted snapshot.
func (p *Pipeline) Run(ctx context.Context, inputPath string) (*dataset.Table, error) {
	p.logger.InfoContext(ctx, "starting data preparation",
		slog.String("input", inputPath),
		slog.String("output", p.paths.CleanedSalesCSV))

	table, err := Load(ctx, inputPath)
	if err != nil {
		return nil, err
	}

	table = Impute(ctx, table)
	table = NormalizeDates(ctx, table, p.cfg.DateColumns)

	table, err = DeriveProfitMargin(ctx, table)
	if err != nil {
		return nil, err
	}

	// Intermediate artifact: UTF-8, no index column
	if err := p.writer.WriteTable(p.paths.CleanedSalesCSV, table, exporter.WriteOptions{}); err != nil {
		return nil, err
	}

	p.logger.InfoContext(ctx, "cleaned data written",
		slog.String("path", p.paths.CleanedSalesCSV),
		slog.Int("rows", table.NumRows()),
		slog.Int("columns", table.NumCols()))

	WriteSummary(os.Stdout, table)

	return table, nil
}
