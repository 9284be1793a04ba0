package features

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespipe/internal/dataset"
)

func TestAddRevenueRollup(t *testing.T) {
	table := segmentTable(t,
		[]string{"West", "West", "East"},
		[]time.Time{day(2023, 1, 1), day(2023, 2, 1), day(2023, 1, 1)},
		[]float64{100, 40, 25})

	product := dataset.NewTextColumn("Product Name", 3)
	product.SetText(0, "Widget")
	product.SetText(1, "Widget")
	product.SetText(2, "Widget")
	require.NoError(t, table.AddColumn(product))

	out, err := AddRevenueRollup(context.Background(), table)
	require.NoError(t, err)

	revenue, ok := out.Column(RevenueRollupColumn)
	require.True(t, ok)

	v0, _ := revenue.Float(0)
	assert.Equal(t, 140.0, v0, "West Widget total across months")
	v1, _ := revenue.Float(1)
	assert.Equal(t, 140.0, v1)
	v2, _ := revenue.Float(2)
	assert.Equal(t, 25.0, v2, "East Widget is its own segment")
}

func TestAddRevenueRollupMissingProduct(t *testing.T) {
	table := segmentTable(t,
		[]string{"West"},
		[]time.Time{day(2023, 1, 1)},
		[]float64{1})

	_, err := AddRevenueRollup(context.Background(), table)
	assert.Error(t, err)
}
