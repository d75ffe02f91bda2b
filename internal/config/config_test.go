package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"inventory/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inventory.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, config.BackendMemory, cfg.Backend)
	assert.True(t, cfg.ReportEnabled)
	assert.Empty(t, cfg.SeedSheet)
	assert.Empty(t, cfg.SeedProducts)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
store:
  backend: sqlite
report:
  enabled: false
seed:
  spreadsheet: catalog.xlsx
  products:
    - id: "1"
      name: TV
      price: 500
      stock: 2
      category: Electrónica
    - id: "2"
      name: Mouse
      price: 49.5
      category: Electrónica
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, config.BackendSQLite, cfg.Backend)
	assert.False(t, cfg.ReportEnabled)
	assert.Equal(t, "catalog.xlsx", cfg.SeedSheet)
	require.Len(t, cfg.SeedProducts, 2)

	tv := cfg.SeedProducts[0]
	assert.Equal(t, "1", tv.ID)
	assert.Equal(t, "TV", tv.Name)
	require.NotNil(t, tv.Price)
	assert.Equal(t, 500.0, *tv.Price)
	require.NotNil(t, tv.Stock)
	assert.Equal(t, 2, *tv.Stock)

	mouse := cfg.SeedProducts[1]
	require.NotNil(t, mouse.Price)
	assert.Equal(t, 49.5, *mouse.Price)
	assert.Nil(t, mouse.Stock)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "store:\n  backend: sqlite\n")
	t.Setenv("INVENTORY_STORE_BACKEND", "memory")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.BackendMemory, cfg.Backend)
}

func TestLoad_UnknownBackend(t *testing.T) {
	path := writeConfig(t, "store:\n  backend: postgres\n")

	_, err := config.Load(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown store.backend")
}
