package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"inventory/internal/models"

	"github.com/spf13/viper"
)

// Supported store backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Config holds the settings of the inventory host program.
type Config struct {
	Backend       string
	SeedProducts  []models.AddProductRequest
	SeedSheet     string
	ReportEnabled bool
}

// Load reads configuration from the optional file at path and from INVENTORY_* environment
// variables, which take precedence. A missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("store.backend", BackendMemory)
	v.SetDefault("seed.spreadsheet", "")
	v.SetDefault("report.enabled", true)

	v.SetEnvPrefix("INVENTORY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		}
	}

	cfg := &Config{
		Backend:       strings.ToLower(v.GetString("store.backend")),
		SeedSheet:     v.GetString("seed.spreadsheet"),
		ReportEnabled: v.GetBool("report.enabled"),
	}
	if err := v.UnmarshalKey("seed.products", &cfg.SeedProducts); err != nil {
		return nil, fmt.Errorf("failed to decode seed.products: %w", err)
	}

	switch cfg.Backend {
	case BackendMemory, BackendSQLite:
	default:
		return nil, fmt.Errorf("unknown store.backend %q (want %q or %q)", cfg.Backend, BackendMemory, BackendSQLite)
	}
	return cfg, nil
}
