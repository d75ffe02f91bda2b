package importer_test

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"inventory/internal/importer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func workbook(t *testing.T, rows [][]interface{}) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellName, &row))
	}
	return f
}

func TestParseProducts(t *testing.T) {
	f := workbook(t, [][]interface{}{
		{"Category", " ID ", "Name", "Price", "Stock"},
		{"Electrónica", "1", "TV", 500, 2},
		{"Electrónica", "2", "Mouse", "1,250.50", nil},
		{},
		{"Hogar", "3", "Plancha", "cheap", "many"},
	})
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	products, err := importer.ParseProducts(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, products, 3)

	tv := products[0]
	assert.Equal(t, "1", tv.ID)
	assert.Equal(t, "TV", tv.Name)
	assert.Equal(t, "Electrónica", tv.Category)
	require.NotNil(t, tv.Price)
	assert.Equal(t, 500.0, *tv.Price)
	require.NotNil(t, tv.Stock)
	assert.Equal(t, 2, *tv.Stock)

	mouse := products[1]
	require.NotNil(t, mouse.Price)
	assert.Equal(t, 1250.5, *mouse.Price)
	assert.Nil(t, mouse.Stock)

	iron := products[2]
	assert.Equal(t, "Plancha", iron.Name)
	assert.Nil(t, iron.Price)
	assert.Nil(t, iron.Stock)
}

func TestParseFile(t *testing.T) {
	f := workbook(t, [][]interface{}{
		{"id", "name", "price", "category"},
		{"7", "Laptop", 800, "Electrónica"},
	})
	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	require.NoError(t, f.SaveAs(path))

	products, err := importer.ParseFile(path)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Laptop", products[0].Name)
}

func TestParseProducts_MissingIDColumn(t *testing.T) {
	f := workbook(t, [][]interface{}{
		{"name", "price"},
		{"TV", 500},
	})
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	_, err = importer.ParseProducts(bytes.NewReader(buf.Bytes()))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), `"id"`)
}
