package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSVInfersKinds(t *testing.T) {
	input := strings.Join([]string{
		"Order Date,Region,Sales,Profit",
		"1/3/2023,West,100.5,20",
		"1/4/2023,East,200,-5.25",
		"1/5/2023,West,,10",
	}, "\n")

	table, stats, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Rows)
	assert.Equal(t, 4, stats.Columns)
	assert.Equal(t, 0, stats.SkippedRows)

	region, ok := table.Column("Region")
	require.True(t, ok)
	assert.Equal(t, KindText, region.Kind)

	sales, ok := table.Column("Sales")
	require.True(t, ok)
	assert.Equal(t, KindNumeric, sales.Kind)
	assert.True(t, sales.IsNull(2), "empty cell becomes null")

	// Dates stay text until the temporal normalizer converts them
	orderDate, _ := table.Column("Order Date")
	assert.Equal(t, KindText, orderDate.Kind)
}

func TestReadCSVSkipsMalformedRows(t *testing.T) {
	input := strings.Join([]string{
		"Region,Sales",
		"West,100",
		"East",
		"South,200,extra",
		"North,300",
	}, "\n")

	table, stats, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Rows)
	assert.Equal(t, 2, stats.SkippedRows)
	assert.Equal(t, 2, table.NumRows())
}

func TestReadCSVStripsHeaderBOM(t *testing.T) {
	input := "\ufeffRegion,Sales\nWest,1\n"

	table, _, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.True(t, table.HasColumn("Region"))
}

func TestReadCSVNumericWithThousandsSeparators(t *testing.T) {
	input := "Sales\n\"1,234.5\"\n200\n"

	table, _, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)

	sales, _ := table.Column("Sales")
	require.Equal(t, KindNumeric, sales.Kind)
	v, ok := sales.Float(0)
	require.True(t, ok)
	assert.Equal(t, 1234.5, v)
}

func TestReadCSVEmptyBody(t *testing.T) {
	table, stats, err := ReadCSV(strings.NewReader("Region,Sales\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Rows)
	assert.Equal(t, 0, table.NumRows())
	assert.Equal(t, 2, table.NumCols())
}

func TestReadCSVMissingHeader(t *testing.T) {
	_, _, err := ReadCSV(strings.NewReader(""))
	assert.Error(t, err)
}
