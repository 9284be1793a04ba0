package dataset

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"salespipe/internal/errors"
)

// ReadStats describes what happened while reading a delimited file
type ReadStats struct {
	Rows        int
	Columns     int
	SkippedRows int
}

// ReadCSV parses delimited text into a Table. The first record is the
// header. Rows whose field count does not match the header are skipped and
// counted, never fatal. After reading, each column is assigned its Kind:
// numeric when every non-empty entry parses as a float and at least one
// entry is non-empty, text otherwise. Empty cells become nulls.
func ReadCSV(r io.Reader) (*Table, ReadStats, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var stats ReadStats

	header, err := reader.Read()
	if err != nil {
		return nil, stats, errors.NewParsingError("failed to read CSV header", err)
	}
	for i := range header {
		header[i] = cleanHeaderCell(header[i])
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed row: skip it, keep reading
			stats.SkippedRows++
			continue
		}
		if len(record) != len(header) {
			stats.SkippedRows++
			continue
		}
		rows = append(rows, record)
	}

	table, err := FromRecords(header, rows)
	if err != nil {
		return nil, stats, err
	}

	stats.Rows = table.NumRows()
	stats.Columns = table.NumCols()
	return table, stats, nil
}

// FromRecords builds a typed table from a header and raw string rows,
// applying the same kind inference as ReadCSV. Rows shorter than the
// header are padded with nulls; longer rows are truncated. Used by the
// XLSX loader, which yields ragged rows.
func FromRecords(header []string, rows [][]string) (*Table, error) {
	normalized := make([][]string, len(rows))
	for i, row := range rows {
		if len(row) == len(header) {
			normalized[i] = row
			continue
		}
		padded := make([]string, len(header))
		copy(padded, row)
		normalized[i] = padded
	}

	table := New()
	for pos, name := range header {
		col := buildColumn(cleanHeaderCell(name), pos, normalized)
		if err := table.AddColumn(col); err != nil {
			return nil, errors.NewParsingError("failed to build table from records", err)
		}
	}
	return table, nil
}

// buildColumn infers the column kind from its raw cells and converts
func buildColumn(name string, pos int, rows [][]string) *Column {
	numeric := false
	nonEmpty := 0
	allParse := true
	for _, row := range rows {
		cell := strings.TrimSpace(row[pos])
		if cell == "" {
			continue
		}
		nonEmpty++
		if _, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64); err != nil {
			allParse = false
			break
		}
	}
	numeric = nonEmpty > 0 && allParse

	if numeric {
		col := NewNumericColumn(name, len(rows))
		for i, row := range rows {
			cell := strings.TrimSpace(row[pos])
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64)
			if err != nil {
				continue
			}
			col.SetFloat(i, v)
		}
		return col
	}

	col := NewTextColumn(name, len(rows))
	for i, row := range rows {
		cell := strings.TrimSpace(row[pos])
		if cell == "" {
			continue
		}
		col.SetText(i, cell)
	}
	return col
}

// cleanHeaderCell strips the UTF-8 BOM and surrounding whitespace
func cleanHeaderCell(s string) string {
	s = strings.TrimPrefix(strings.TrimSpace(s), "\ufeff")
	return strings.TrimSpace(s)
}
