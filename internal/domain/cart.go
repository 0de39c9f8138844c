package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for CartItem
var (
	ErrEmptyCartProductID  = errors.New("cart item product ID cannot be empty")
	ErrNonPositiveQuantity = errors.New("cart item quantity must be at least 1")
)

// CartItem represents a single product entry in a user's cart. At most one
// row exists per (user, product) pair; adding an already-present product
// merges into the existing row instead of inserting a duplicate.
type CartItem struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

// Validate checks if the CartItem has valid data.
func (c *CartItem) Validate() error {
	if c.ProductID == uuid.Nil {
		return ErrEmptyCartProductID
	}
	if c.Quantity < 1 {
		return ErrNonPositiveQuantity
	}
	return nil
}

// CartProduct carries the public product fields joined onto a cart entry.
type CartProduct struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	ImageURL      *string   `json:"image_url"`
	Category      *string   `json:"category"`
	StockQuantity int       `json:"stock_quantity"`
	IsActive      bool      `json:"is_active"`
}

// CartEntry is a cart item joined with its product's public fields, as
// returned by cart listings and ownership-filtered lookups.
type CartEntry struct {
	CartItem
	Product *CartProduct `json:"product"`
}
