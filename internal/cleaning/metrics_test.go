package cleaning

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespipe/internal/dataset"
)

func marginTable(t *testing.T, sales, profit []float64, salesNull, profitNull []int) *dataset.Table {
	t.Helper()
	table := dataset.New()

	s := dataset.NewNumericColumn("Sales", len(sales))
	for i, v := range sales {
		s.SetFloat(i, v)
	}
	for _, i := range salesNull {
		s.SetNull(i)
	}

	p := dataset.NewNumericColumn("Profit", len(profit))
	for i, v := range profit {
		p.SetFloat(i, v)
	}
	for _, i := range profitNull {
		p.SetNull(i)
	}

	require.NoError(t, table.AddColumn(s))
	require.NoError(t, table.AddColumn(p))
	return table
}

func TestDeriveProfitMargin(t *testing.T) {
	table := marginTable(t,
		[]float64{200, 0, 50, 100},
		[]float64{50, 10, -25, 30},
		nil, nil)

	out, err := DeriveProfitMargin(context.Background(), table)
	require.NoError(t, err)

	margin, ok := out.Column(MarginColumn)
	require.True(t, ok)
	assert.Equal(t, dataset.KindNumeric, margin.Kind)

	v0, _ := margin.Float(0)
	assert.Equal(t, 25.0, v0)

	v1, _ := margin.Float(1)
	assert.Equal(t, 0.0, v1, "zero sales yields exactly 0, no division")

	v2, _ := margin.Float(2)
	assert.Equal(t, -50.0, v2)
}

func TestDeriveProfitMarginNullInputs(t *testing.T) {
	table := marginTable(t,
		[]float64{100, 100},
		[]float64{20, 20},
		[]int{0}, []int{1})

	out, err := DeriveProfitMargin(context.Background(), table)
	require.NoError(t, err)

	margin, _ := out.Column(MarginColumn)
	v0, ok := margin.Float(0)
	require.True(t, ok)
	assert.Equal(t, 0.0, v0, "null sales treated as the zero case")

	v1, ok := margin.Float(1)
	require.True(t, ok)
	assert.Equal(t, 0.0, v1, "null profit yields 0, never an arithmetic fault")
}

func TestDeriveProfitMarginMissingColumns(t *testing.T) {
	table := dataset.New()
	require.NoError(t, table.AddColumn(dataset.NewNumericColumn("Sales", 1)))

	_, err := DeriveProfitMargin(context.Background(), table)
	assert.Error(t, err, "missing Profit column is fatal for the stage")
}
