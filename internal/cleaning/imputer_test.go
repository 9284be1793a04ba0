package cleaning

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespipe/internal/dataset"
)

func TestImputeNumericMedian(t *testing.T) {
	table := dataset.New()
	sales := dataset.NewNumericColumn("Sales", 5)
	sales.SetFloat(0, 10)
	sales.SetFloat(1, 20)
	// row 2 missing
	sales.SetFloat(3, 30)
	// row 4 missing
	require.NoError(t, table.AddColumn(sales))

	out := Impute(context.Background(), table)

	col, _ := out.Column("Sales")
	assert.Equal(t, 0, col.NullCount(), "no missing values remain")

	v, ok := col.Float(2)
	require.True(t, ok)
	assert.Equal(t, 20.0, v, "imputed value is the median of present values")

	// Source table untouched
	orig, _ := table.Column("Sales")
	assert.Equal(t, 2, orig.NullCount())
}

func TestImputeTextMode(t *testing.T) {
	table := dataset.New()
	region := dataset.NewTextColumn("Region", 5)
	region.SetText(0, "West")
	region.SetText(1, "East")
	region.SetText(3, "East")
	region.SetText(4, "West")
	require.NoError(t, table.AddColumn(region))

	out := Impute(context.Background(), table)

	col, _ := out.Column("Region")
	v, ok := col.Text(2)
	require.True(t, ok)
	assert.Equal(t, "West", v, "tie broken by first-encountered value")
}

func TestImputeAllNullColumns(t *testing.T) {
	table := dataset.New()
	require.NoError(t, table.AddColumn(dataset.NewNumericColumn("Discount", 3)))
	require.NoError(t, table.AddColumn(dataset.NewTextColumn("Category", 3)))

	// Must not panic; all-null columns stay null
	out := Impute(context.Background(), table)

	discount, _ := out.Column("Discount")
	assert.Equal(t, 3, discount.NullCount())
	category, _ := out.Column("Category")
	assert.Equal(t, 3, category.NullCount())
}

func TestImputeLeavesCompleteColumnsAlone(t *testing.T) {
	table := dataset.New()
	qty := dataset.NewNumericColumn("Quantity", 2)
	qty.SetFloat(0, 1)
	qty.SetFloat(1, 2)
	require.NoError(t, table.AddColumn(qty))

	out := Impute(context.Background(), table)

	col, _ := out.Column("Quantity")
	a, _ := col.Float(0)
	b, _ := col.Float(1)
	assert.Equal(t, []float64{1, 2}, []float64{a, b})
}
