package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"salespipe/internal/cleaning"
	"salespipe/internal/config"
	"salespipe/internal/features"
	"salespipe/internal/infrastructure"
	"salespipe/internal/reporting"
)

func main() {
	input := flag.String("in", "", "cleaned sales CSV (defaults to data/cleaned_sales_data.csv relative to executable)")
	noCharts := flag.Bool("no-charts", false, "skip the chart workbook")
	flag.Parse()

	// Initialize paths first to get default locations
	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}

	if *input == "" {
		*input = paths.CleanedSalesCSV
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
	cfg.Logging.FilePath = paths.GetLogPath("features.log")

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.ContextWithTraceID(context.Background())

	logger.InfoContext(ctx, "Starting feature engineering",
		slog.String("input", *input),
		slog.String("output", paths.PreparedSalesCSV),
		slog.String("executable_dir", paths.ExecutableDir))

	table, err := cleaning.LoadCleaned(ctx, *input)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load cleaned data", slog.String("error", err.Error()))
		os.Exit(1)
	}

	engine := features.NewEngine(cfg.Pipeline, paths, logger)
	result, err := engine.Run(ctx, table)
	if err != nil {
		logger.ErrorContext(ctx, "Feature engineering failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Side channels: charts and console insights never fail the run
	if !*noCharts {
		builder := reporting.NewChartBuilder(logger)
		if err := builder.Write(ctx, paths.ChartsWorkbook, result.Table, result.Series); err != nil {
			logger.WarnContext(ctx, "Chart workbook not written", slog.String("error", err.Error()))
		}
	}

	reporter := reporting.NewReporter(os.Stdout, logger)
	reporter.Render(ctx, result.Table)

	logger.InfoContext(ctx, "Feature engineering complete",
		slog.Int("rows", result.Table.NumRows()),
		slog.Int("columns", result.Table.NumCols()),
		slog.Int("months", result.Series.Len()))
}
