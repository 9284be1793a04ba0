package cleaning

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"salespipe/internal/dataset"
	"salespipe/internal/errors"
	"salespipe/internal/infrastructure"
)

// Load reads the raw sales file into a table. CSV input is decoded from
// Latin-1 (the legacy export encoding); an .xlsx workbook is read from its
// first sheet. A missing file is fatal for the run and reported as a
// NotFound error; malformed rows are skipped and counted.
func Load(ctx context.Context, path string) (*dataset.Table, error) {
	logger := infrastructure.LoggerWithContext(ctx)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.NewNotFoundError("input file").WithContext("path", path)
	}

	var (
		table *dataset.Table
		stats dataset.ReadStats
		err   error
	)

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		table, stats, err = loadXLSX(path)
	} else {
		table, stats, err = loadLatin1CSV(path)
	}
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "data loaded",
		slog.String("path", path),
		slog.Int("rows", stats.Rows),
		slog.Int("columns", stats.Columns),
		slog.Int("skipped_rows", stats.SkippedRows))

	return table, nil
}

// LoadCleaned reads the UTF-8 intermediate artifact written by stage 1.
// Unlike the raw export, it carries no legacy encoding.
func LoadCleaned(ctx context.Context, path string) (*dataset.Table, error) {
	logger := infrastructure.LoggerWithContext(ctx)

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("cleaned data file").WithContext("path", path)
		}
		return nil, errors.NewStorageError("failed to open cleaned data file", err).
			WithContext("path", path)
	}
	defer file.Close()

	table, stats, err := dataset.ReadCSV(file)
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "cleaned data loaded",
		slog.String("path", path),
		slog.Int("rows", stats.Rows),
		slog.Int("columns", stats.Columns),
		slog.Int("skipped_rows", stats.SkippedRows))

	return table, nil
}

// loadLatin1CSV reads a Latin-1 encoded delimited file
func loadLatin1CSV(path string) (*dataset.Table, dataset.ReadStats, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, dataset.ReadStats{}, errors.NewStorageError("failed to open input file", err).
			WithContext("path", path)
	}
	defer file.Close()

	decoded := charmap.ISO8859_1.NewDecoder().Reader(file)
	return dataset.ReadCSV(decoded)
}

// loadXLSX reads the first sheet of a workbook
func loadXLSX(path string) (*dataset.Table, dataset.ReadStats, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, dataset.ReadStats{}, errors.NewParsingError("failed to open workbook", err).
			WithContext("path", path)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, dataset.ReadStats{}, errors.NewParsingError("workbook has no sheets", nil).
			WithContext("path", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, dataset.ReadStats{}, errors.NewParsingError("failed to read sheet", err).
			WithContext("sheet", sheets[0])
	}
	if len(rows) == 0 {
		return nil, dataset.ReadStats{}, errors.NewParsingError("sheet has no header row", nil).
			WithContext("sheet", sheets[0])
	}

	table, err := dataset.FromRecords(rows[0], rows[1:])
	if err != nil {
		return nil, dataset.ReadStats{}, err
	}
	return table, dataset.ReadStats{Rows: table.NumRows(), Columns: table.NumCols()}, nil
}
