package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"salespipe/internal/dataset"
	"salespipe/internal/errors"
)

// CSVWriter provides CSV export functionality for pipeline tables
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteOptions configures table writing behavior
type WriteOptions struct {
	// IndexColumn, when set, is written as the leading column regardless of
	// its position in the table (the prepared artifact leads with the date
	// index; the cleaned artifact has no index).
	IndexColumn string
	// BOMPrefix adds a UTF-8 BOM for spreadsheet compatibility
	BOMPrefix bool
}

// WriteTable writes a table to a CSV file with the given options
func (w *CSVWriter) WriteTable(path string, table *dataset.Table, options WriteOptions) error {
	cols, err := orderColumns(table, options.IndexColumn)
	if err != nil {
		return err
	}

	w.logger.Info("Writing CSV file",
		slog.String("path", path),
		slog.Int("rows", table.NumRows()),
		slog.Int("columns", table.NumCols()))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create output directory", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError("failed to create output file", err)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return errors.NewStorageError("failed to write BOM", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := make([]string, len(cols))
	for i, col := range cols {
		header[i] = col.Name
	}
	if err := writer.Write(header); err != nil {
		return errors.NewStorageError("failed to write CSV header", err)
	}

	row := make([]string, len(cols))
	for i := 0; i < table.NumRows(); i++ {
		for j, col := range cols {
			row[j] = formatCell(col, i)
		}
		if err := writer.Write(row); err != nil {
			return errors.NewStorageError(fmt.Sprintf("failed to write CSV row %d", i), err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.NewStorageError("failed to flush CSV output", err)
	}
	return nil
}

// orderColumns returns the table's columns with the index column, if any,
// moved to the front
func orderColumns(table *dataset.Table, indexColumn string) ([]*dataset.Column, error) {
	cols := table.Columns()
	if indexColumn == "" {
		return cols, nil
	}

	index, ok := table.Column(indexColumn)
	if !ok {
		return nil, errors.NewValidationError(
			fmt.Sprintf("index column %q not present in table", indexColumn))
	}

	ordered := make([]*dataset.Column, 0, len(cols))
	ordered = append(ordered, index)
	for _, col := range cols {
		if col.Name != indexColumn {
			ordered = append(ordered, col)
		}
	}
	return ordered, nil
}

// StreamWriter provides streaming CSV writing for row-at-a-time artifacts
type StreamWriter struct {
	file   *os.File
	writer *csv.Writer
}

// CreateStreamWriter creates a new streaming CSV writer with a header row
func (w *CSVWriter) CreateStreamWriter(path string, headers []string) (*StreamWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.NewStorageError("failed to create output directory", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, errors.NewStorageError("failed to create output file", err)
	}

	writer := csv.NewWriter(file)
	if len(headers) > 0 {
		if err := writer.Write(headers); err != nil {
			file.Close()
			return nil, errors.NewStorageError("failed to write headers", err)
		}
	}

	return &StreamWriter{file: file, writer: writer}, nil
}

// WriteRecord writes a single record to the stream
func (s *StreamWriter) WriteRecord(record []string) error {
	return s.writer.Write(record)
}

// Close flushes and closes the stream writer
func (s *StreamWriter) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}
