package services

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"inventory/internal/models"
	"inventory/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Clock returns the current instant. Production code passes time.Now.
type Clock func() time.Time

// InventoryService holds the product inventory and its bookkeeping rules.
type InventoryService struct {
	repo     repositories.ProductRepository
	clock    Clock
	validate *validator.Validate
	mu       sync.Mutex
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(repo repositories.ProductRepository, clock Clock) *InventoryService {
	if clock == nil {
		clock = time.Now
	}
	return &InventoryService{
		repo:     repo,
		clock:    clock,
		validate: validator.New(),
	}
}

// AddProduct validates the payload and stores a new product stamped with the current time.
// Checks run in a fixed order and nothing is written unless all of them pass.
func (s *InventoryService) AddProduct(req models.AddProductRequest) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.validate.Struct(req); err != nil {
		return nil, &ValidationError{Message: msgMissingFields, Fields: failedFields(err)}
	}

	_, err := s.repo.GetByID(req.ID)
	switch {
	case err == nil:
		return nil, &ConflictError{Message: msgDuplicateID, ID: req.ID}
	case !errors.Is(err, repositories.ErrProductNotFound):
		return nil, fmt.Errorf("failed to check product %s: %w", req.ID, err)
	}

	if math.IsInf(*req.Price, 0) || math.IsNaN(*req.Price) {
		return nil, &ValidationError{Message: msgNonPositivePrice, Fields: []string{"Price"}}
	}
	if err := s.validate.Var(*req.Price, "gt=0"); err != nil {
		return nil, &ValidationError{Message: msgNonPositivePrice, Fields: []string{"Price"}}
	}

	stock := 0
	if req.Stock != nil {
		if err := s.validate.Var(*req.Stock, "gte=0"); err != nil {
			return nil, &ValidationError{Message: msgNegativeStock, Fields: []string{"Stock"}}
		}
		stock = *req.Stock
	}

	product := &models.Product{
		ID:        req.ID,
		Name:      req.Name,
		Price:     *req.Price,
		Category:  req.Category,
		Stock:     stock,
		CreatedAt: s.clock(),
	}
	if err := s.repo.Create(product); err != nil {
		return nil, fmt.Errorf("failed to add product %s: %w", req.ID, err)
	}
	return product, nil
}

// UpdateStock adds delta to the stock of a product. A change that would leave the
// stock negative is rejected and the product is left untouched.
func (s *InventoryService) UpdateStock(id string, delta int) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, err := s.getProduct(id)
	if err != nil {
		return nil, err
	}

	if delta > 0 && product.Stock > math.MaxInt-delta {
		return nil, &ValidationError{Message: msgStockOverflow, Fields: []string{"Stock"}}
	}
	newStock := product.Stock + delta
	if newStock < 0 {
		return nil, &ValidationError{Message: msgNegativeStock, Fields: []string{"Stock"}}
	}

	now := s.clock()
	updated := *product
	updated.Stock = newStock
	updated.UpdatedAt = &now
	movement := &models.StockMovement{
		ID:         uuid.New(),
		ProductID:  id,
		Delta:      delta,
		StockAfter: newStock,
		At:         now,
	}
	// The product and its movement are written together or not at all.
	if err := s.repo.ApplyStockChange(&updated, movement); err != nil {
		return nil, fmt.Errorf("failed to update stock of product %s: %w", id, err)
	}
	return &updated, nil
}

// GetProductsByCategory returns the products of a category in insertion order.
func (s *InventoryService) GetProductsByCategory(category string) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.repo.GetByCategory(category)
	if err != nil {
		return nil, fmt.Errorf("failed to query category %s: %w", category, err)
	}
	if len(products) == 0 {
		return nil, &NotFoundError{Message: msgCategoryNotFound}
	}
	return products, nil
}

// CalculateTotalValue returns the sum of price * stock over every product.
func (s *InventoryService) CalculateTotalValue() (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.repo.GetAll()
	if err != nil {
		return 0, fmt.Errorf("failed to load products: %w", err)
	}

	total := decimal.Zero
	for _, p := range products {
		total = total.Add(value(p))
	}
	return total.InexactFloat64(), nil
}

// GetProduct returns a single product by its ID.
func (s *InventoryService) GetProduct(id string) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.getProduct(id)
}

// ListProducts returns every product in insertion order.
func (s *InventoryService) ListProducts() ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	return products, nil
}

// StockMovements returns the applied stock adjustments of a product, oldest first.
func (s *InventoryService) StockMovements(id string) ([]models.StockMovement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	movements, err := s.repo.GetMovements(id)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return nil, &NotFoundError{Message: msgProductNotFound}
		}
		return nil, fmt.Errorf("failed to load movements of product %s: %w", id, err)
	}
	return movements, nil
}

// SummarizeByCategory aggregates count, units and value per category,
// in the order categories were first seen.
func (s *InventoryService) SummarizeByCategory() ([]models.CategorySummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	var order []string
	values := make(map[string]decimal.Decimal)
	summaries := make(map[string]*models.CategorySummary)
	for _, p := range products {
		sum, ok := summaries[p.Category]
		if !ok {
			sum = &models.CategorySummary{Category: p.Category}
			summaries[p.Category] = sum
			values[p.Category] = decimal.Zero
			order = append(order, p.Category)
		}
		sum.Products++
		sum.Units += p.Stock
		values[p.Category] = values[p.Category].Add(value(p))
	}

	out := make([]models.CategorySummary, 0, len(order))
	for _, category := range order {
		sum := summaries[category]
		sum.Value = values[category].InexactFloat64()
		out = append(out, *sum)
	}
	return out, nil
}

func (s *InventoryService) getProduct(id string) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return nil, &NotFoundError{Message: msgProductNotFound}
		}
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}
	return product, nil
}

func value(p models.Product) decimal.Decimal {
	return decimal.NewFromFloat(p.Price).Mul(decimal.NewFromInt(int64(p.Stock)))
}

func failedFields(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}
	fields := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		fields = append(fields, e.Field())
	}
	return fields
}
