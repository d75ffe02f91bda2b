package repositories

import (
	"fmt"
	"sync"

	"inventory/internal/models"
)

// MemoryProductRepository is an in-memory implementation of ProductRepository.
type MemoryProductRepository struct {
	products  []models.Product
	index     map[string]int // product ID -> position in products
	movements map[string][]models.StockMovement
	mu        sync.RWMutex
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		index:     make(map[string]int),
		movements: make(map[string][]models.StockMovement),
	}
}

// GetAll returns all products in insertion order.
func (r *MemoryProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, copyProduct(p))
	}
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MemoryProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	product := copyProduct(r.products[i])
	return &product, nil
}

// GetByCategory returns the products whose category matches exactly.
func (r *MemoryProductRepository) GetByCategory(category string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var productList []models.Product
	for _, p := range r.products {
		if p.Category == category {
			productList = append(productList, copyProduct(p))
		}
	}
	return productList, nil
}

// Create appends a new product.
func (r *MemoryProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[product.ID]; ok {
		return fmt.Errorf("product with ID %s already stored", product.ID)
	}
	r.index[product.ID] = len(r.products)
	r.products = append(r.products, copyProduct(*product))
	return nil
}

// Update replaces an existing product in place, keeping its position.
func (r *MemoryProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[product.ID]
	if !ok {
		return fmt.Errorf("update %s: %w", product.ID, ErrProductNotFound)
	}
	r.products[i] = copyProduct(*product)
	return nil
}

// ApplyStockChange replaces the product and appends its movement under one lock.
func (r *MemoryProductRepository) ApplyStockChange(product *models.Product, movement *models.StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[product.ID]
	if !ok {
		return fmt.Errorf("apply stock change to %s: %w", product.ID, ErrProductNotFound)
	}
	if movement.ProductID != product.ID {
		return fmt.Errorf("movement for %s cannot be applied to %s", movement.ProductID, product.ID)
	}
	r.products[i] = copyProduct(*product)
	r.movements[product.ID] = append(r.movements[product.ID], *movement)
	return nil
}

// RecordMovement appends a stock movement for its product.
func (r *MemoryProductRepository) RecordMovement(movement *models.StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[movement.ProductID]; !ok {
		return fmt.Errorf("record movement for %s: %w", movement.ProductID, ErrProductNotFound)
	}
	r.movements[movement.ProductID] = append(r.movements[movement.ProductID], *movement)
	return nil
}

// GetMovements returns the movements of a product, oldest first.
func (r *MemoryProductRepository) GetMovements(productID string) ([]models.StockMovement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.index[productID]; !ok {
		return nil, ErrProductNotFound
	}
	stored := r.movements[productID]
	out := make([]models.StockMovement, len(stored))
	copy(out, stored)
	return out, nil
}

// copyProduct detaches UpdatedAt so callers cannot reach stored state through the pointer.
func copyProduct(p models.Product) models.Product {
	if p.UpdatedAt != nil {
		t := *p.UpdatedAt
		p.UpdatedAt = &t
	}
	return p
}
