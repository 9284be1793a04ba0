package reporting

import (
	"fmt"
	"math"
	"sort"

	"salespipe/internal/cleaning"
	"salespipe/internal/dataset"
	"salespipe/internal/errors"
)

// RankedEntry is one row of a ranked insight
type RankedEntry struct {
	Label string
	Value float64
}

// requireColumns checks insight prerequisites; a missing or mistyped column
// is a recoverable feature failure that degrades only that insight.
func requireColumns(table *dataset.Table, insight string, specs map[string]dataset.Kind) error {
	for name, kind := range specs {
		col, ok := table.Column(name)
		if !ok || col.Kind != kind {
			return errors.NewFeatureError(insight,
				fmt.Sprintf("%s column %q missing or not %s", insight, name, kind), nil)
		}
	}
	return nil
}

// groupSum aggregates a numeric column by a text key column
func groupSum(keys, values *dataset.Column) (map[string]float64, []string) {
	sums := make(map[string]float64)
	var order []string
	for i := 0; i < keys.Len(); i++ {
		k, ok := keys.Text(i)
		if !ok {
			continue
		}
		v, ok := values.Float(i)
		if !ok {
			continue
		}
		if _, seen := sums[k]; !seen {
			order = append(order, k)
		}
		sums[k] += v
	}
	return sums, order
}

// TopProductsByProfit ranks products by total profit, highest first,
// truncated to n entries.
func TopProductsByProfit(table *dataset.Table, n int) ([]RankedEntry, error) {
	if err := requireColumns(table, "top_products", map[string]dataset.Kind{
		"Product Name": dataset.KindText,
		"Profit":       dataset.KindNumeric,
	}); err != nil {
		return nil, err
	}
	product, _ := table.Column("Product Name")
	profit, _ := table.Column("Profit")

	sums, order := groupSum(product, profit)
	entries := make([]RankedEntry, 0, len(order))
	for _, name := range order {
		entries = append(entries, RankedEntry{Label: name, Value: sums[name]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Value > entries[j].Value
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}

// BottomProductsByMargin ranks products by average profit margin, lowest
// first, truncated to n entries.
func BottomProductsByMargin(table *dataset.Table, n int) ([]RankedEntry, error) {
	if err := requireColumns(table, "bottom_margin", map[string]dataset.Kind{
		"Product Name":        dataset.KindText,
		cleaning.MarginColumn: dataset.KindNumeric,
	}); err != nil {
		return nil, err
	}
	product, _ := table.Column("Product Name")
	margin, _ := table.Column(cleaning.MarginColumn)

	sums := make(map[string]float64)
	counts := make(map[string]int)
	var order []string
	for i := 0; i < product.Len(); i++ {
		k, ok := product.Text(i)
		if !ok {
			continue
		}
		v, ok := margin.Float(i)
		if !ok {
			continue
		}
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		sums[k] += v
		counts[k]++
	}

	entries := make([]RankedEntry, 0, len(order))
	for _, name := range order {
		entries = append(entries, RankedEntry{Label: name, Value: sums[name] / float64(counts[name])})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Value < entries[j].Value
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}

// AverageMarginByCategory averages the profit margin per category, ordered
// by category name.
func AverageMarginByCategory(table *dataset.Table) ([]RankedEntry, error) {
	if err := requireColumns(table, "category_margin", map[string]dataset.Kind{
		"Category":            dataset.KindText,
		cleaning.MarginColumn: dataset.KindNumeric,
	}); err != nil {
		return nil, err
	}
	category, _ := table.Column("Category")
	margin, _ := table.Column(cleaning.MarginColumn)

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for i := 0; i < category.Len(); i++ {
		k, ok := category.Text(i)
		if !ok {
			continue
		}
		v, ok := margin.Float(i)
		if !ok {
			continue
		}
		sums[k] += v
		counts[k]++
	}

	labels := make([]string, 0, len(sums))
	for k := range sums {
		labels = append(labels, k)
	}
	sort.Strings(labels)

	entries := make([]RankedEntry, 0, len(labels))
	for _, k := range labels {
		entries = append(entries, RankedEntry{Label: k, Value: sums[k] / float64(counts[k])})
	}
	return entries, nil
}

// Pivot is a two-dimensional sum aggregate with sorted axes
type Pivot struct {
	RowName string
	ColName string
	Rows    []string
	Cols    []string
	Cells   map[string]map[string]float64
}

// Cell returns the aggregate for a (row, col) pair, zero when the
// combination never occurred.
func (p *Pivot) Cell(row, col string) float64 {
	if inner, ok := p.Cells[row]; ok {
		return inner[col]
	}
	return 0
}

// RevenuePivot sums Sales over Region × Category
func RevenuePivot(table *dataset.Table) (*Pivot, error) {
	if err := requireColumns(table, "revenue_pivot", map[string]dataset.Kind{
		"Region":   dataset.KindText,
		"Category": dataset.KindText,
		"Sales":    dataset.KindNumeric,
	}); err != nil {
		return nil, err
	}
	region, _ := table.Column("Region")
	category, _ := table.Column("Category")
	sales, _ := table.Column("Sales")

	pivot := &Pivot{
		RowName: "Region",
		ColName: "Category",
		Cells:   make(map[string]map[string]float64),
	}
	colSeen := make(map[string]bool)
	for i := 0; i < region.Len(); i++ {
		r, okR := region.Text(i)
		c, okC := category.Text(i)
		v, okV := sales.Float(i)
		if !okR || !okC || !okV {
			continue
		}
		if pivot.Cells[r] == nil {
			pivot.Cells[r] = make(map[string]float64)
			pivot.Rows = append(pivot.Rows, r)
		}
		if !colSeen[c] {
			colSeen[c] = true
			pivot.Cols = append(pivot.Cols, c)
		}
		pivot.Cells[r][c] += v
	}
	sort.Strings(pivot.Rows)
	sort.Strings(pivot.Cols)
	return pivot, nil
}

// CorrelationMatrix computes pairwise Pearson correlations over the named
// numeric columns, pairwise-complete over nulls. Undefined pairs (fewer
// than two complete observations) are NaN. Columns absent from the table
// are dropped from the matrix; the insight fails only when fewer than two
// usable columns remain.
type CorrelationMatrix struct {
	Labels []string
	Values [][]float64
}

// Correlations builds the correlation matrix for the given columns
func Correlations(table *dataset.Table, columns []string) (*CorrelationMatrix, error) {
	var cols []*dataset.Column
	var labels []string
	for _, name := range columns {
		if col, ok := table.Column(name); ok && col.Kind == dataset.KindNumeric {
			cols = append(cols, col)
			labels = append(labels, name)
		}
	}
	if len(cols) < 2 {
		return nil, errors.NewFeatureError("correlations",
			"need at least two numeric columns for a correlation matrix", nil)
	}

	m := &CorrelationMatrix{
		Labels: labels,
		Values: make([][]float64, len(cols)),
	}
	for i := range cols {
		m.Values[i] = make([]float64, len(cols))
		for j := range cols {
			if i == j {
				m.Values[i][j] = 1
				continue
			}
			if r, ok := dataset.Correlation(cols[i], cols[j]); ok {
				m.Values[i][j] = r
			} else {
				m.Values[i][j] = math.NaN()
			}
		}
	}
	return m, nil
}
