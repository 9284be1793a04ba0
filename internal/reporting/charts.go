package reporting

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/xuri/excelize/v2"

	"salespipe/internal/dataset"
	"salespipe/internal/errors"
	"salespipe/internal/features"
)

const (
	trendSheet = "Monthly Trend"
	pivotSheet = "Region x Category"
)

// ChartBuilder writes the chart workbook: the monthly sales trend with its
// rolling overlays as a line chart, and the Region x Category revenue
// breakdown as a stacked column chart.
type ChartBuilder struct {
	logger *slog.Logger
}

// NewChartBuilder creates a chart workbook builder
func NewChartBuilder(logger *slog.Logger) *ChartBuilder {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChartBuilder{logger: logger}
}

// Write builds the workbook at the given path. The trend sheet requires a
// populated monthly series; the pivot sheet degrades with a logged reason
// when its source columns are missing.
func (b *ChartBuilder) Write(ctx context.Context, path string, table *dataset.Table, series *features.MonthlySeries) error {
	if series == nil || series.Len() == 0 {
		return errors.NewFeatureError("charts", "empty monthly series, nothing to chart", nil)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := b.trendSheet(f, series); err != nil {
		return err
	}

	if pivot, err := RevenuePivot(table); err != nil {
		b.logger.WarnContext(ctx, "pivot chart skipped",
			slog.String("reason", err.Error()))
	} else if err := b.pivotSheet(f, pivot); err != nil {
		return err
	}

	// Drop the implicit default sheet and land on the trend
	f.DeleteSheet("Sheet1")
	index, err := f.GetSheetIndex(trendSheet)
	if err != nil {
		return errors.NewStorageError("failed to locate trend sheet", err)
	}
	f.SetActiveSheet(index)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create plots directory", err)
	}
	if err := f.SaveAs(path); err != nil {
		return errors.NewStorageError("failed to save chart workbook", err)
	}

	b.logger.InfoContext(ctx, "chart workbook written",
		slog.String("path", path),
		slog.Int("months", series.Len()))
	return nil
}

// trendSheet writes the monthly series grid and its line chart
func (b *ChartBuilder) trendSheet(f *excelize.File, series *features.MonthlySeries) error {
	if _, err := f.NewSheet(trendSheet); err != nil {
		return errors.NewStorageError("failed to create trend sheet", err)
	}

	windows := make([]int, 0, len(series.Rolling))
	for w := range series.Rolling {
		windows = append(windows, w)
	}
	sort.Ints(windows)

	header := []interface{}{"Month", "Sales"}
	for _, w := range windows {
		header = append(header, features.RollingColumn(w))
	}
	if err := f.SetSheetRow(trendSheet, "A1", &header); err != nil {
		return errors.NewStorageError("failed to write trend header", err)
	}

	for i := 0; i < series.Len(); i++ {
		row := []interface{}{series.Months[i].Format("2006-01"), series.Sales[i]}
		for _, w := range windows {
			row = append(row, series.Rolling[w][i])
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(trendSheet, cell, &row); err != nil {
			return errors.NewStorageError("failed to write trend row", err)
		}
	}

	lastRow := series.Len() + 1
	chartSeries := make([]excelize.ChartSeries, 0, len(windows)+1)
	for col := 2; col <= len(windows)+2; col++ {
		nameCell, _ := excelize.CoordinatesToCellName(col, 1, true)
		chartSeries = append(chartSeries, excelize.ChartSeries{
			Name:       fmt.Sprintf("'%s'!%s", trendSheet, nameCell),
			Categories: sheetRange(trendSheet, 1, 2, 1, lastRow),
			Values:     sheetRange(trendSheet, col, 2, col, lastRow),
		})
	}

	anchor, _ := excelize.CoordinatesToCellName(len(windows)+4, 2)
	err := f.AddChart(trendSheet, anchor, &excelize.Chart{
		Type:   excelize.Line,
		Series: chartSeries,
		Title:  []excelize.RichTextRun{{Text: "Monthly Sales Trend"}},
		Legend: excelize.ChartLegend{Position: "bottom"},
	})
	if err != nil {
		return errors.NewStorageError("failed to add trend chart", err)
	}
	return nil
}

// pivotSheet writes the Region x Category grid and its stacked column chart
func (b *ChartBuilder) pivotSheet(f *excelize.File, pivot *Pivot) error {
	if _, err := f.NewSheet(pivotSheet); err != nil {
		return errors.NewStorageError("failed to create pivot sheet", err)
	}

	header := []interface{}{pivot.RowName}
	for _, c := range pivot.Cols {
		header = append(header, c)
	}
	if err := f.SetSheetRow(pivotSheet, "A1", &header); err != nil {
		return errors.NewStorageError("failed to write pivot header", err)
	}

	for i, region := range pivot.Rows {
		row := []interface{}{region}
		for _, c := range pivot.Cols {
			row = append(row, pivot.Cell(region, c))
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(pivotSheet, cell, &row); err != nil {
			return errors.NewStorageError("failed to write pivot row", err)
		}
	}

	lastRow := len(pivot.Rows) + 1
	chartSeries := make([]excelize.ChartSeries, 0, len(pivot.Cols))
	for i := range pivot.Cols {
		col := i + 2
		nameCell, _ := excelize.CoordinatesToCellName(col, 1, true)
		chartSeries = append(chartSeries, excelize.ChartSeries{
			Name:       fmt.Sprintf("'%s'!%s", pivotSheet, nameCell),
			Categories: sheetRange(pivotSheet, 1, 2, 1, lastRow),
			Values:     sheetRange(pivotSheet, col, 2, col, lastRow),
		})
	}

	anchor, _ := excelize.CoordinatesToCellName(len(pivot.Cols)+3, 2)
	err := f.AddChart(pivotSheet, anchor, &excelize.Chart{
		Type:   excelize.ColStacked,
		Series: chartSeries,
		Title:  []excelize.RichTextRun{{Text: "Revenue by Region and Category"}},
		Legend: excelize.ChartLegend{Position: "bottom"},
	})
	if err != nil {
		return errors.NewStorageError("failed to add pivot chart", err)
	}
	return nil
}

// sheetRange builds an absolute A1-style range reference on a sheet
func sheetRange(sheet string, fromCol, fromRow, toCol, toRow int) string {
	from, _ := excelize.CoordinatesToCellName(fromCol, fromRow, true)
	to, _ := excelize.CoordinatesToCellName(toCol, toRow, true)
	return fmt.Sprintf("'%s'!%s:%s", sheet, from, to)
}
