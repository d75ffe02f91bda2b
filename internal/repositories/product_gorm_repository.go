package repositories

import (
	"errors"
	"fmt"
	"time"

	"inventory/internal/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// productRow is the table layout of a product. Seq keeps insertion order.
type productRow struct {
	Seq       uint       `gorm:"primaryKey;autoIncrement"`
	ProductID string     `gorm:"uniqueIndex;type:varchar(64);not null"`
	Name      string     `gorm:"not null"`
	Price     float64    `gorm:"not null"`
	Category  string     `gorm:"index;not null"`
	Stock     int        `gorm:"not null"`
	CreatedAt time.Time  `gorm:"autoCreateTime:false"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false"`
}

func (productRow) TableName() string { return "products" }

func (r productRow) toModel() models.Product {
	return models.Product{
		ID:        r.ProductID,
		Name:      r.Name,
		Price:     r.Price,
		Category:  r.Category,
		Stock:     r.Stock,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type movementRow struct {
	Seq        uint   `gorm:"primaryKey;autoIncrement"`
	MovementID string `gorm:"uniqueIndex;type:varchar(36);not null"`
	ProductID  string `gorm:"index;not null"`
	Delta      int
	StockAfter int
	At         time.Time
}

func (movementRow) TableName() string { return "stock_movements" }

// OpenInMemorySQLite opens a private in-memory sqlite database and migrates the inventory tables.
// Nothing is written to disk; the data lives as long as the returned handle.
func OpenInMemorySQLite() (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:inventory-%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access database handle: %w", err)
	}
	// A single long-lived connection keeps the in-memory database alive.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := db.AutoMigrate(&productRow{}, &movementRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products in insertion order.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var rows []productRow
	if err := r.db.Order("seq").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return toModels(rows), nil
}

// GetByID retrieves a single product by its ID.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var row productRow
	if err := r.db.First(&row, "product_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	product := row.toModel()
	return &product, nil
}

// GetByCategory retrieves the products of a category in insertion order.
func (r *GORMProductRepository) GetByCategory(category string) ([]models.Product, error) {
	var rows []productRow
	if err := r.db.Where("category = ?", category).Order("seq").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get products in category %s: %w", category, err)
	}
	return toModels(rows), nil
}

// Create inserts a new product.
func (r *GORMProductRepository) Create(product *models.Product) error {
	row := productRow{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Category:  product.Category,
		Stock:     product.Stock,
		CreatedAt: product.CreatedAt,
		UpdatedAt: product.UpdatedAt,
	}
	if err := r.db.Create(&row).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update writes every mutable column of an existing product.
func (r *GORMProductRepository) Update(product *models.Product) error {
	return updateProduct(r.db, product)
}

// ApplyStockChange updates the product and inserts its movement in one transaction.
func (r *GORMProductRepository) ApplyStockChange(product *models.Product, movement *models.StockMovement) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := updateProduct(tx, product); err != nil {
			return err
		}
		return insertMovement(tx, movement)
	})
}

func updateProduct(db *gorm.DB, product *models.Product) error {
	// A map keeps zero values such as an emptied stock.
	res := db.Model(&productRow{}).
		Where("product_id = ?", product.ID).
		Updates(map[string]interface{}{
			"name":       product.Name,
			"price":      product.Price,
			"category":   product.Category,
			"stock":      product.Stock,
			"updated_at": product.UpdatedAt,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update %s: %w", product.ID, ErrProductNotFound)
	}
	return nil
}

// RecordMovement inserts a stock movement.
func (r *GORMProductRepository) RecordMovement(movement *models.StockMovement) error {
	return insertMovement(r.db, movement)
}

func insertMovement(db *gorm.DB, movement *models.StockMovement) error {
	row := movementRow{
		MovementID: movement.ID.String(),
		ProductID:  movement.ProductID,
		Delta:      movement.Delta,
		StockAfter: movement.StockAfter,
		At:         movement.At,
	}
	if err := db.Create(&row).Error; err != nil {
		return fmt.Errorf("failed to record stock movement: %w", err)
	}
	return nil
}

// GetMovements retrieves the movements of a product, oldest first.
func (r *GORMProductRepository) GetMovements(productID string) ([]models.StockMovement, error) {
	if _, err := r.GetByID(productID); err != nil {
		return nil, err
	}

	var rows []movementRow
	if err := r.db.Where("product_id = ?", productID).Order("seq").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get movements for product %s: %w", productID, err)
	}

	movements := make([]models.StockMovement, 0, len(rows))
	for _, row := range rows {
		id, err := uuid.Parse(row.MovementID)
		if err != nil {
			return nil, fmt.Errorf("stored movement %d has a malformed id: %w", row.Seq, err)
		}
		movements = append(movements, models.StockMovement{
			ID:         id,
			ProductID:  row.ProductID,
			Delta:      row.Delta,
			StockAfter: row.StockAfter,
			At:         row.At,
		})
	}
	return movements, nil
}

func toModels(rows []productRow) []models.Product {
	products := make([]models.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.toModel())
	}
	return products
}
