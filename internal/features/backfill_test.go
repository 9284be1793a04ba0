package features

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespipe/internal/dataset"
)

func TestBackfill(t *testing.T) {
	table := dailyTable(t,
		[]time.Time{day(2023, 1, 5), day(2023, 1, 20), day(2023, 2, 10), {}},
		[]float64{100, 50, 25, 7})

	series, err := Resample(context.Background(), table, "Order Date")
	require.NoError(t, err)
	series.ComputeRolling([]int{3})
	series.ComputeYOY()

	out, err := Backfill(context.Background(), table, "Order Date", series)
	require.NoError(t, err)

	monthKey, ok := out.Column(MonthKeyColumn)
	require.True(t, ok)
	k0, _ := monthKey.Date(0)
	assert.Equal(t, day(2023, 1, 1), k0)
	k2, _ := monthKey.Date(2)
	assert.Equal(t, day(2023, 2, 1), k2)
	assert.True(t, monthKey.IsNull(3), "null date has no month key")

	rolling, ok := out.Column(RollingColumn(3))
	require.True(t, ok)
	// Every dated row carries its month's value
	v0, _ := rolling.Float(0)
	v1, _ := rolling.Float(1)
	assert.Equal(t, v0, v1, "rows of the same month share the monthly value")
	assert.Equal(t, 150.0, v0)
	v2, _ := rolling.Float(2)
	assert.Equal(t, (150.0+25.0)/2, v2)
	assert.True(t, rolling.IsNull(3))

	// No prior year in the series: the monthly change stays null
	yoy, ok := out.Column(YOYMonthlyColumn)
	require.True(t, ok)
	assert.Equal(t, 4, yoy.NullCount())
}

func TestBackfillAbsentMonth(t *testing.T) {
	table := dailyTable(t, []time.Time{day(2023, 5, 1)}, []float64{10})

	// Series deliberately does not contain May
	series := &MonthlySeries{
		Months:  []time.Time{day(2023, 1, 1)},
		Sales:   []float64{100},
		Rolling: map[int][]float64{3: {100}},
	}
	series.ComputeYOY()

	out, err := Backfill(context.Background(), table, "Order Date", series)
	require.NoError(t, err)

	monthKey, _ := out.Column(MonthKeyColumn)
	k, ok := monthKey.Date(0)
	require.True(t, ok, "month key derives from the row itself")
	assert.Equal(t, day(2023, 5, 1), k)

	rolling, _ := out.Column(RollingColumn(3))
	assert.True(t, rolling.IsNull(0), "unmatched month joins as null, not a fault")
}

func TestAddDailyYOY(t *testing.T) {
	dates := make([]time.Time, 15)
	sales := make([]float64, 15)
	for i := range dates {
		dates[i] = day(2023, 1, 1+i)
		sales[i] = float64(100 + i)
	}
	sales[1] = 0 // base of row 13
	table := dailyTable(t, dates, sales)

	out, err := AddDailyYOY(context.Background(), table)
	require.NoError(t, err)

	yoy, ok := out.Column(YOYDailyColumn)
	require.True(t, ok)
	assert.Equal(t, 0, yoy.NullCount(), "every row has a value, defaulting to 0")

	v, _ := yoy.Float(5)
	assert.Equal(t, 0.0, v, "no row twelve positions back")

	v, _ = yoy.Float(12)
	assert.InDelta(t, 12.0, v, 1e-9, "(112-100)/100 as a percentage")

	v, _ = yoy.Float(13)
	assert.Equal(t, 0.0, v, "zero base fills with 0 instead of blowing up")
}

func TestAddDailyYOYMissingSales(t *testing.T) {
	table := dataset.New()
	require.NoError(t, table.AddColumn(dataset.NewTextColumn("Region", 1)))

	_, err := AddDailyYOY(context.Background(), table)
	assert.Error(t, err)
}
