package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"salespipe/internal/cleaning"
	"salespipe/internal/config"
	"salespipe/internal/infrastructure"
)

func main() {
	input := flag.String("in", "", "raw sales file, .csv or .xlsx (defaults to data/sales.csv relative to executable)")
	flag.Parse()

	// Initialize paths first to get default locations
	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}

	if *input == "" {
		*input = paths.RawSalesCSV
		// Fall back to the workbook when only the Excel export is present
		if !config.FileExists(*input) && config.FileExists(paths.RawSalesXLSX) {
			*input = paths.RawSalesXLSX
		}
	}

	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}
	cfg.Logging.FilePath = paths.GetLogPath("prepare.log")

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.ContextWithTraceID(context.Background())

	logger.InfoContext(ctx, "Starting sales data preparation",
		slog.String("input", *input),
		slog.String("output", paths.CleanedSalesCSV),
		slog.String("executable_dir", paths.ExecutableDir))

	pipeline := cleaning.NewPipeline(cfg.Pipeline, paths, logger)
	table, err := pipeline.Run(ctx, *input)
	if err != nil {
		logger.ErrorContext(ctx, "Data preparation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Data preparation complete",
		slog.Int("rows", table.NumRows()),
		slog.Int("columns", table.NumCols()))
}
