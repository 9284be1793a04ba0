package dataset

import (
	"fmt"
	"time"
)

// Kind is the declared type of a column, assigned at table construction.
// All per-column dispatch (imputation, formatting, aggregation) keys off
// this tag rather than inspecting cell values at runtime.
type Kind int

const (
	// KindText holds free-form categorical values
	KindText Kind = iota
	// KindNumeric holds float64 values
	KindNumeric
	// KindDate holds calendar dates
	KindDate
)

// String returns the human-readable kind name
func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindDate:
		return "date"
	default:
		return "text"
	}
}

// Column is a single named, typed column with an explicit validity mask.
// A false validity entry is the null marker; there is no sentinel value
// hidden inside the data slices.
type Column struct {
	Name string
	Kind Kind

	floats []float64
	texts  []string
	dates  []time.Time
	valid  []bool
}

// NewNumericColumn creates an all-null numeric column with n rows
func NewNumericColumn(name string, n int) *Column {
	return &Column{Name: name, Kind: KindNumeric, floats: make([]float64, n), valid: make([]bool, n)}
}

// NewTextColumn creates an all-null text column with n rows
func NewTextColumn(name string, n int) *Column {
	return &Column{Name: name, Kind: KindText, texts: make([]string, n), valid: make([]bool, n)}
}

// NewDateColumn creates an all-null date column with n rows
func NewDateColumn(name string, n int) *Column {
	return &Column{Name: name, Kind: KindDate, dates: make([]time.Time, n), valid: make([]bool, n)}
}

// Len returns the number of rows in the column
func (c *Column) Len() int {
	return len(c.valid)
}

// IsNull reports whether the entry at row i is null
func (c *Column) IsNull(i int) bool {
	return !c.valid[i]
}

// NullCount returns the number of null entries
func (c *Column) NullCount() int {
	count := 0
	for _, v := range c.valid {
		if !v {
			count++
		}
	}
	return count
}

// Float returns the numeric value at row i and whether it is present
func (c *Column) Float(i int) (float64, bool) {
	if c.Kind != KindNumeric || !c.valid[i] {
		return 0, false
	}
	return c.floats[i], true
}

// Text returns the text value at row i and whether it is present
func (c *Column) Text(i int) (string, bool) {
	if c.Kind != KindText || !c.valid[i] {
		return "", false
	}
	return c.texts[i], true
}

// Date returns the date value at row i and whether it is present
func (c *Column) Date(i int) (time.Time, bool) {
	if c.Kind != KindDate || !c.valid[i] {
		return time.Time{}, false
	}
	return c.dates[i], true
}

// SetFloat stores a numeric value at row i
func (c *Column) SetFloat(i int, v float64) {
	c.floats[i] = v
	c.valid[i] = true
}

// SetText stores a text value at row i
func (c *Column) SetText(i int, v string) {
	c.texts[i] = v
	c.valid[i] = true
}

// SetDate stores a date value at row i
func (c *Column) SetDate(i int, v time.Time) {
	c.dates[i] = v
	c.valid[i] = true
}

// SetNull marks the entry at row i as null
func (c *Column) SetNull(i int) {
	c.valid[i] = false
}

// PresentFloats returns the non-null numeric values in row order
func (c *Column) PresentFloats() []float64 {
	out := make([]float64, 0, len(c.valid))
	for i, ok := range c.valid {
		if ok {
			out = append(out, c.floats[i])
		}
	}
	return out
}

// Clone returns a deep copy of the column
func (c *Column) Clone() *Column {
	out := &Column{Name: c.Name, Kind: c.Kind}
	out.valid = append([]bool(nil), c.valid...)
	switch c.Kind {
	case KindNumeric:
		out.floats = append([]float64(nil), c.floats...)
	case KindDate:
		out.dates = append([]time.Time(nil), c.dates...)
	default:
		out.texts = append([]string(nil), c.texts...)
	}
	return out
}

// Table is an ordered sequence of equal-length typed columns. Stages treat
// tables as immutable snapshots: each stage clones its input and returns a
// new table, which keeps the cleaning/feature boundary testable in
// isolation.
type Table struct {
	cols  []*Column
	index map[string]int
	nrows int
}

// New creates an empty table
func New() *Table {
	return &Table{index: make(map[string]int)}
}

// AddColumn appends a column to the table. The first column fixes the row
// count; later columns must match it.
func (t *Table) AddColumn(c *Column) error {
	if _, exists := t.index[c.Name]; exists {
		return fmt.Errorf("duplicate column %q", c.Name)
	}
	if len(t.cols) > 0 && c.Len() != t.nrows {
		return fmt.Errorf("column %q has %d rows, table has %d", c.Name, c.Len(), t.nrows)
	}
	if len(t.cols) == 0 {
		t.nrows = c.Len()
	}
	t.index[c.Name] = len(t.cols)
	t.cols = append(t.cols, c)
	return nil
}

// ReplaceColumn swaps an existing column for a same-named replacement,
// preserving column order. Used for in-kind conversions such as text→date.
func (t *Table) ReplaceColumn(c *Column) error {
	pos, exists := t.index[c.Name]
	if !exists {
		return fmt.Errorf("no column %q to replace", c.Name)
	}
	if c.Len() != t.nrows {
		return fmt.Errorf("column %q has %d rows, table has %d", c.Name, c.Len(), t.nrows)
	}
	t.cols[pos] = c
	return nil
}

// Column returns the named column and whether it exists
func (t *Table) Column(name string) (*Column, bool) {
	pos, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.cols[pos], true
}

// HasColumn reports whether the named column exists
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Columns returns the columns in order
func (t *Table) Columns() []*Column {
	return t.cols
}

// ColumnNames returns the column names in order
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// NumRows returns the number of rows
func (t *Table) NumRows() int {
	return t.nrows
}

// NumCols returns the number of columns
func (t *Table) NumCols() int {
	return len(t.cols)
}

// Clone returns a deep copy of the table
func (t *Table) Clone() *Table {
	out := New()
	for _, c := range t.cols {
		// AddColumn cannot fail here: names and lengths come from a valid table
		_ = out.AddColumn(c.Clone())
	}
	return out
}
