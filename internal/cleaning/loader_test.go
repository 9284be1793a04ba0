package cleaning

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"salespipe/internal/dataset"
	apperrors "salespipe/internal/errors"
)

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrTypeNotFound, appErr.Type)
}

func TestLoadLatin1CSV(t *testing.T) {
	// "Café" in Latin-1: 0x43 0x61 0x66 0xE9
	raw := []byte("Region,Sales\nCaf\xe9,100\n")
	path := filepath.Join(t.TempDir(), "sales.csv")
	require.NoError(t, os.WriteFile(path, raw, 0644))

	table, err := Load(context.Background(), path)
	require.NoError(t, err)

	region, ok := table.Column("Region")
	require.True(t, ok)
	v, ok := region.Text(0)
	require.True(t, ok)
	assert.Equal(t, "Café", v, "Latin-1 bytes decode to UTF-8")

	sales, _ := table.Column("Sales")
	assert.Equal(t, dataset.KindNumeric, sales.Kind)
}

func TestLoadCleanedUTF8(t *testing.T) {
	// The intermediate artifact is UTF-8; it must not be re-decoded as Latin-1
	raw := []byte("Region,Sales\nCafé,100\n")
	path := filepath.Join(t.TempDir(), "cleaned_sales_data.csv")
	require.NoError(t, os.WriteFile(path, raw, 0644))

	table, err := LoadCleaned(context.Background(), path)
	require.NoError(t, err)

	region, _ := table.Column("Region")
	v, ok := region.Text(0)
	require.True(t, ok)
	assert.Equal(t, "Café", v)
}

func TestLoadCleanedMissing(t *testing.T) {
	_, err := LoadCleaned(context.Background(), filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrTypeNotFound, appErr.Type)
}

func TestLoadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Region", "Sales"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"West", 150.5}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"East", 99}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 2, table.NumRows())
	sales, ok := table.Column("Sales")
	require.True(t, ok)
	assert.Equal(t, dataset.KindNumeric, sales.Kind)
	v, ok := sales.Float(0)
	require.True(t, ok)
	assert.Equal(t, 150.5, v)
}
