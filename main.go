package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"inventory/internal/config"
	"inventory/internal/importer"
	"inventory/internal/models"
	"inventory/internal/repositories"
	"inventory/internal/services"
)

func main() {
	// --- Configuration ---
	configPath := os.Getenv("INVENTORY_CONFIG")
	if configPath == "" {
		configPath = "inventory.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Initialize Store ---
	inventory, err := newInventory(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize inventory: %v", err)
	}
	log.Printf("Inventory ready (backend: %s)", cfg.Backend)

	// --- Seed ---
	added := seedInventory(inventory, cfg)
	log.Printf("Seeded %d products", added)

	// --- Report ---
	if cfg.ReportEnabled {
		if err := report(inventory); err != nil {
			log.Fatalf("Failed to build inventory report: %v", err)
		}
	}
}

// newInventory builds the store on the configured backend.
func newInventory(cfg *config.Config) (*services.InventoryService, error) {
	var repo repositories.ProductRepository
	switch cfg.Backend {
	case config.BackendSQLite:
		db, err := repositories.OpenInMemorySQLite()
		if err != nil {
			return nil, err
		}
		repo = repositories.NewGORMProductRepository(db)
	default:
		repo = repositories.NewMemoryProductRepository()
	}
	return services.NewInventoryService(repo, time.Now), nil
}

// seedInventory adds the configured products, then the spreadsheet ones.
// A rejected product is logged and skipped.
func seedInventory(inventory *services.InventoryService, cfg *config.Config) int {
	requests := append([]models.AddProductRequest(nil), cfg.SeedProducts...)

	if cfg.SeedSheet != "" {
		sheetProducts, err := importer.ParseFile(cfg.SeedSheet)
		if err != nil {
			log.Printf("Error importing %s: %v", cfg.SeedSheet, err)
		} else {
			requests = append(requests, sheetProducts...)
		}
	}

	added := 0
	for _, req := range requests {
		product, err := inventory.AddProduct(req)
		if err != nil {
			log.Printf("Error seeding product %q: %v", req.ID, err)
			continue
		}
		added++
		log.Printf("Seeded product: %s (ID: %s)", product.Name, product.ID)
	}
	return added
}

// report logs the per-category summary and the total inventory value.
func report(inventory *services.InventoryService) error {
	summaries, err := inventory.SummarizeByCategory()
	if err != nil {
		return err
	}
	for _, s := range summaries {
		log.Printf("%-20s products=%d units=%d value=%s", s.Category, s.Products, s.Units, formatValue(s.Value))
	}

	total, err := inventory.CalculateTotalValue()
	if err != nil {
		return err
	}
	log.Printf("Total inventory value: %s", formatValue(total))
	return nil
}

func formatValue(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
