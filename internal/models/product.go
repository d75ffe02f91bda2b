package models

import "time"

// Product represents a product held in the inventory.
type Product struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Price     float64    `json:"price"`
	Category  string     `json:"category"`
	Stock     int        `json:"stock"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"` // nil until the first stock change
}

// AddProductRequest is the payload accepted when adding a product.
// Price and Stock are pointers so an omitted field can be told apart from a zero one.
type AddProductRequest struct {
	ID       string   `json:"id" mapstructure:"id" validate:"required"`
	Name     string   `json:"name" mapstructure:"name" validate:"required"`
	Price    *float64 `json:"price" mapstructure:"price" validate:"required"`
	Category string   `json:"category" mapstructure:"category" validate:"required"`
	Stock    *int     `json:"stock,omitempty" mapstructure:"stock"`
}
