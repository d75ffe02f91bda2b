package main

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"inventory/internal/config"
	"inventory/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

func seedConfig(backend string) *config.Config {
	return &config.Config{
		Backend: backend,
		SeedProducts: []models.AddProductRequest{
			{ID: "1", Name: "TV", Price: floatPtr(500), Stock: intPtr(2), Category: "Electrónica"},
			{ID: "2", Name: "Mouse", Price: floatPtr(50), Stock: intPtr(4), Category: "Electrónica"},
			{ID: "2", Name: "Duplicate", Price: floatPtr(1), Category: "Hogar"},
			{ID: "3", Name: "Free", Price: floatPtr(0), Category: "Hogar"},
		},
	}
}

func TestSeedInventory(t *testing.T) {
	for _, backend := range []string{config.BackendMemory, config.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			inventory, err := newInventory(seedConfig(backend))
			require.NoError(t, err)

			added := seedInventory(inventory, seedConfig(backend))
			assert.Equal(t, 2, added)

			total, err := inventory.CalculateTotalValue()
			require.NoError(t, err)
			assert.Equal(t, 1200.0, total)
		})
	}
}

func TestSeedInventory_Spreadsheet(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"id", "name", "price", "category", "stock"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"9", "Laptop", 800, "Electrónica", 1}))
	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	require.NoError(t, f.SaveAs(path))

	cfg := seedConfig(config.BackendMemory)
	cfg.SeedSheet = path
	inventory, err := newInventory(cfg)
	require.NoError(t, err)

	assert.Equal(t, 3, seedInventory(inventory, cfg))

	laptop, err := inventory.GetProduct("9")
	require.NoError(t, err)
	assert.Equal(t, 1, laptop.Stock)
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(io.Discard)

	cfg := seedConfig(config.BackendMemory)
	inventory, err := newInventory(cfg)
	require.NoError(t, err)
	seedInventory(inventory, cfg)
	buf.Reset()

	require.NoError(t, report(inventory))

	out := buf.String()
	assert.True(t, strings.Contains(out, "Electrónica"))
	assert.Contains(t, out, "products=2 units=6 value=1200.00")
	assert.Contains(t, out, "Total inventory value: 1200.00")
}
