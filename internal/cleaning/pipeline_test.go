package cleaning

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespipe/internal/config"
	"salespipe/internal/dataset"
)

func TestPipelineRun(t *testing.T) {
	base := t.TempDir()
	paths := config.PathsIn(base)
	require.NoError(t, paths.EnsureDirectories())

	raw := strings.Join([]string{
		"Order Date,Ship Date,Region,Sales,Profit",
		"1/5/2023,1/8/2023,West,200,50",
		"1/6/2023,bad-date,East,0,10",
		"1/7/2023,1/9/2023,West,,40",
	}, "\n")
	require.NoError(t, os.WriteFile(paths.RawSalesCSV, []byte(raw), 0644))

	pipe := NewPipeline(config.Default().Pipeline, paths, nil)
	table, err := pipe.Run(context.Background(), paths.RawSalesCSV)
	require.NoError(t, err)

	// Sales null imputed with the median of {200, 0}
	sales, _ := table.Column("Sales")
	assert.Equal(t, 0, sales.NullCount())

	// Margin present; zero-sales row is exactly 0
	margin, ok := table.Column(MarginColumn)
	require.True(t, ok)
	v1, _ := margin.Float(1)
	assert.Equal(t, 0.0, v1)

	// Ship Date normalized with the bad entry nulled
	shipDate, _ := table.Column("Ship Date")
	assert.Equal(t, dataset.KindDate, shipDate.Kind)
	assert.True(t, shipDate.IsNull(1))

	// Intermediate artifact written and re-readable
	f, err := os.Open(paths.CleanedSalesCSV)
	require.NoError(t, err)
	defer f.Close()
	reread, stats, err := dataset.ReadCSV(f)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Rows)
	assert.True(t, reread.HasColumn(MarginColumn))
}

func TestPipelineRunMissingInput(t *testing.T) {
	base := t.TempDir()
	paths := config.PathsIn(base)

	pipe := NewPipeline(config.Default().Pipeline, paths, nil)
	_, err := pipe.Run(context.Background(), filepath.Join(base, "data", "nope.csv"))
	require.Error(t, err)

	assert.NoFileExists(t, paths.CleanedSalesCSV, "no partial output on fatal load failure")
}

func TestWriteSummary(t *testing.T) {
	table := dataset.New()
	sales := dataset.NewNumericColumn("Sales", 4)
	for i, v := range []float64{10, 20, 30, 40} {
		sales.SetFloat(i, v)
	}
	require.NoError(t, table.AddColumn(sales))

	var buf bytes.Buffer
	WriteSummary(&buf, table)

	out := buf.String()
	assert.Contains(t, out, "Sales")
	assert.Contains(t, out, "25.0000", "mean of 10..40")
}
