package models

import (
	"time"

	"github.com/google/uuid"
)

// StockMovement records one applied stock adjustment.
type StockMovement struct {
	ID         uuid.UUID `json:"id"`
	ProductID  string    `json:"productId"`
	Delta      int       `json:"delta"`
	StockAfter int       `json:"stockAfter"`
	At         time.Time `json:"at"`
}

// CategorySummary aggregates the products of one category.
type CategorySummary struct {
	Category string  `json:"category"`
	Products int     `json:"products"`
	Units    int     `json:"units"`
	Value    float64 `json:"value"`
}
