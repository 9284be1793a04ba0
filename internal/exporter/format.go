package exporter

import (
	"strconv"
	"time"

	"salespipe/internal/dataset"
)

// dateFormat is the wire format for calendar dates in CSV artifacts
const dateFormat = "2006-01-02"

// formatFloat formats a float64 for CSV output with minimal round-trip
// precision, so values survive a write/read cycle unchanged.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatDate formats a calendar date for CSV output
func formatDate(t time.Time) string {
	return t.Format(dateFormat)
}

// formatCell renders one table cell; nulls become the empty string
func formatCell(col *dataset.Column, row int) string {
	switch col.Kind {
	case dataset.KindNumeric:
		if v, ok := col.Float(row); ok {
			return formatFloat(v)
		}
	case dataset.KindDate:
		if v, ok := col.Date(row); ok {
			return formatDate(v)
		}
	default:
		if v, ok := col.Text(row); ok {
			return v
		}
	}
	return ""
}
