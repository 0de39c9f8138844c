package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Product
var (
	ErrEmptyProductTitle       = errors.New("product title cannot be empty")
	ErrEmptyProductDescription = errors.New("product description cannot be empty")
	ErrNegativePrice           = errors.New("product price cannot be negative")
	ErrNegativeStock           = errors.New("product stock quantity cannot be negative")
)

// Product represents an item listed for sale by a seller. The record is
// owned by the platform's record store; the SellerID is always taken from
// the authenticated caller at creation time and never changes afterwards.
type Product struct {
	ID            uuid.UUID `json:"id"`
	SellerID      uuid.UUID `json:"seller_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	ImageURL      *string   `json:"image_url"`
	Category      *string   `json:"category"`
	StockQuantity int       `json:"stock_quantity"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Validate checks if the Product has valid data.
// Returns an error if any field fails validation.
func (p *Product) Validate() error {
	if p.Title == "" {
		return ErrEmptyProductTitle
	}
	if p.Description == "" {
		return ErrEmptyProductDescription
	}
	if p.Price < 0 {
		return ErrNegativePrice
	}
	if p.StockQuantity < 0 {
		return ErrNegativeStock
	}
	return nil
}

// ProductPatch describes a partial update to a product. Nil fields are
// left untouched in the store; only fields the caller supplied are sent
// with the write.
type ProductPatch struct {
	Title         *string
	Description   *string
	Price         *float64
	ImageURL      *string
	Category      *string
	StockQuantity *int
	IsActive      *bool
}

// IsEmpty reports whether the patch contains no fields to update.
func (p ProductPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Price == nil &&
		p.ImageURL == nil && p.Category == nil && p.StockQuantity == nil &&
		p.IsActive == nil
}

// Fields returns the patch as a column-to-value map containing only the
// fields that are present, suitable for a partial write.
func (p ProductPatch) Fields() map[string]any {
	fields := make(map[string]any)
	if p.Title != nil {
		fields["title"] = *p.Title
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	if p.Price != nil {
		fields["price"] = *p.Price
	}
	if p.ImageURL != nil {
		fields["image_url"] = *p.ImageURL
	}
	if p.Category != nil {
		fields["category"] = *p.Category
	}
	if p.StockQuantity != nil {
		fields["stock_quantity"] = *p.StockQuantity
	}
	if p.IsActive != nil {
		fields["is_active"] = *p.IsActive
	}
	return fields
}

// Validate checks the patch fields that are present.
func (p ProductPatch) Validate() error {
	if p.Title != nil && *p.Title == "" {
		return ErrEmptyProductTitle
	}
	if p.Description != nil && *p.Description == "" {
		return ErrEmptyProductDescription
	}
	if p.Price != nil && *p.Price < 0 {
		return ErrNegativePrice
	}
	if p.StockQuantity != nil && *p.StockQuantity < 0 {
		return ErrNegativeStock
	}
	return nil
}
