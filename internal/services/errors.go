package services

// ValidationError reports caller data that violates a required constraint.
type ValidationError struct {
	Message string
	Fields  []string // offending fields, when known
}

func (e *ValidationError) Error() string { return e.Message }

// ConflictError reports an operation that would break product ID uniqueness.
type ConflictError struct {
	Message string
	ID      string
}

func (e *ConflictError) Error() string { return e.Message }

// NotFoundError reports a lookup by ID or category that matched nothing.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

const (
	msgMissingFields    = "product must have id, name, price, and category"
	msgDuplicateID      = "a product with this id already exists"
	msgNonPositivePrice = "price must be greater than zero"
	msgNegativeStock    = "stock cannot be negative"
	msgStockOverflow    = "stock change exceeds the largest storable stock"
	msgProductNotFound  = "product not found"
	msgCategoryNotFound = "no products exist in the requested category"
)
