package repositories

import (
	"errors"

	"inventory/internal/models"
)

// ErrProductNotFound is returned when no product has the requested ID.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access.
// Implementations keep products in insertion order.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	GetByCategory(category string) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error

	// ApplyStockChange writes the product and records its movement atomically.
	ApplyStockChange(product *models.Product, movement *models.StockMovement) error
	RecordMovement(movement *models.StockMovement) error
	GetMovements(productID string) ([]models.StockMovement, error)
}
