package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"github.com/yourusername/inventory-tracker/internal/domain/entity"
)

func testProducts() []entity.Product {
	return []entity.Product{
		{ID: 1, Name: "Steel", Quantity: 50, Price: 12.5, Category: entity.RawMaterial},
		{ID: 2, Name: "Widget, large", Quantity: 5, Price: 3, Category: entity.FinishedGood},
	}
}

func Test_WriteCSV(t *testing.T) {
	testCases := []struct {
		name     string
		products []entity.Product
		expected string
	}{
		{
			name:     "empty catalog writes header only",
			products: nil,
			expected: "ID,Name,Quantity,Price,Type\n",
		},
		{
			name:     "rows in catalog order",
			products: testProducts(),
			expected: "ID,Name,Quantity,Price,Type\n" +
				"1,Steel,50,12.50,Raw Material\n" +
				"2,\"Widget, large\",5,3.00,Finished Good\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			var buf bytes.Buffer
			// when
			err := WriteCSV(&buf, tc.products)
			// then
			require.NoError(t, err)
			assert.Equal(t, tc.expected, buf.String())
		})
	}
}

func Test_CSVExporter_OverwritesFile(t *testing.T) {
	// given
	path := filepath.Join(t.TempDir(), "inventory_export.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale content that is longer than the export\n"), 0o644))
	exporter := NewCSVExporter(path)
	// when
	err := exporter.Export(context.Background(), testProducts()[:1])
	// then
	require.NoError(t, err)
	assert.Equal(t, path, exporter.Path())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ID,Name,Quantity,Price,Type\n1,Steel,50,12.50,Raw Material\n", string(data))
}

func Test_CSVExporter_UnwritableDirectory(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	err := NewCSVExporter(filepath.Join(blocker, "out.csv")).Export(context.Background(), testProducts())

	assert.Error(t, err)
}

func Test_XLSXExporter(t *testing.T) {
	// given
	path := filepath.Join(t.TempDir(), "inventory_export.xlsx")
	exporter := NewXLSXExporter(path)
	// when
	err := exporter.Export(context.Background(), testProducts())
	// then
	require.NoError(t, err)
	assert.Equal(t, path, exporter.Path())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		Header,
		{"1", "Steel", "50", "12.5", "Raw Material"},
		{"2", "Widget, large", "5", "3", "Finished Good"},
	}, rows)

	styleID, err := f.GetCellStyle(SheetName, "C1")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)
}

func Test_XLSXExporter_EmptyCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")

	require.NoError(t, NewXLSXExporter(path).Export(context.Background(), nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Equal(t, [][]string{Header}, rows)
}
