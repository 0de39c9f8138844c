package api

import (
	"github.com/google/uuid"
	"github.com/stallhq/storefront-api/internal/domain"
	"github.com/stallhq/storefront-api/internal/identity"
)

// Common request/response structures. Optional fields are pointers so
// that an omitted field is distinguishable from its zero value; omitted
// fields are never written to the store.

// CreateProductRequest defines the payload for product creation. Any
// seller_id in the body is ignored; the stored seller is always the
// authenticated caller.
type CreateProductRequest struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Price         *float64 `json:"price"`
	ImageURL      *string  `json:"image_url"`
	Category      *string  `json:"category"`
	StockQuantity *int     `json:"stock_quantity"`
	IsActive      *bool    `json:"is_active"`
}

// UpdateProductRequest defines the payload for a partial product update.
type UpdateProductRequest struct {
	Title         *string  `json:"title"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price"`
	ImageURL      *string  `json:"image_url"`
	Category      *string  `json:"category"`
	StockQuantity *int     `json:"stock_quantity"`
	IsActive      *bool    `json:"is_active"`
}

// Patch converts the request into a domain patch.
func (r UpdateProductRequest) Patch() domain.ProductPatch {
	return domain.ProductPatch{
		Title:         r.Title,
		Description:   r.Description,
		Price:         r.Price,
		ImageURL:      r.ImageURL,
		Category:      r.Category,
		StockQuantity: r.StockQuantity,
		IsActive:      r.IsActive,
	}
}

// AddCartItemRequest defines the payload for adding a product to the cart.
type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  *int      `json:"quantity" validate:"omitempty,min=1"`
}

// UpdateCartItemRequest defines the payload for setting a cart item's
// quantity.
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity"`
}

// RegisterRequest defines the payload for the registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest defines the payload for the password login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// MagicLinkRequest defines the payload for the passwordless link endpoint.
type MagicLinkRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// UpdateProfileRequest defines the payload for the profile upsert
// endpoint. Username falls back to name, then to the caller's email.
type UpdateProfileRequest struct {
	Username  *string `json:"username"`
	Name      *string `json:"name"`
	Website   *string `json:"website"`
	AvatarURL *string `json:"avatar_url"`
	GoogleID  *string `json:"google_id"`
}

// MessageResponse is the generic confirmation envelope.
type MessageResponse struct {
	Message string `json:"message"`
}

// ProductListResponse wraps a product listing.
type ProductListResponse struct {
	Products []domain.Product `json:"products"`
	Count    int              `json:"count"`
}

// SellerProductListResponse wraps the caller's product listing together
// with a summary of their identity.
type SellerProductListResponse struct {
	Products []domain.Product   `json:"products"`
	Count    int                `json:"count"`
	Seller   domain.UserSummary `json:"seller"`
}

// ProductResponse wraps a single product mutation result.
type ProductResponse struct {
	Message string          `json:"message"`
	Product *domain.Product `json:"product"`
}

// SellerStatsResponse wraps the seller aggregates.
type SellerStatsResponse struct {
	Stats domain.SellerStats `json:"stats"`
}

// CartListResponse wraps the caller's cart.
type CartListResponse struct {
	Items []domain.CartEntry `json:"items"`
	Count int                `json:"count"`
}

// CartItemResponse wraps a single cart mutation result.
type CartItemResponse struct {
	Message string           `json:"message"`
	Item    *domain.CartItem `json:"item"`
}

// InsufficientStockResponse reports an add or update that would exceed
// the product's available stock.
type InsufficientStockResponse struct {
	Error         string `json:"error"`
	Available     int    `json:"available"`
	Requested     int    `json:"requested"`
	CurrentInCart *int   `json:"current_in_cart,omitempty"`
	TraceID       string `json:"trace_id,omitempty"`
}

// LoginResponse carries the normalized user summary plus the provider's
// raw session object.
type LoginResponse struct {
	Message string             `json:"message"`
	User    domain.UserSummary `json:"user"`
	Session *identity.Session  `json:"session"`
}

// OAuthResponse carries the provider-hosted redirect URL that starts an
// OAuth flow.
type OAuthResponse struct {
	Provider string `json:"provider"`
	URL      string `json:"url"`
}

// SessionResponse is the introspection ("whoami") envelope.
type SessionResponse struct {
	Token    string             `json:"token"`
	Identity *domain.Identity   `json:"identity"`
	User     domain.UserSummary `json:"user"`
}

// ProfileView is the merged profile shape returned by profile reads:
// profile fields where a row exists, identity-metadata fallbacks where
// it does not, plus immutable identity timestamps.
type ProfileView struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	Website      string    `json:"website"`
	AvatarURL    string    `json:"avatar_url"`
	GoogleID     string    `json:"google_id"`
	CreatedAt    string    `json:"created_at"`
	LastSignInAt string    `json:"last_sign_in_at,omitempty"`
}

// ProfileResponse wraps a profile read or upsert result.
type ProfileResponse struct {
	Message string      `json:"message,omitempty"`
	Profile ProfileView `json:"profile"`
}

// HealthResponse is the liveness envelope with the endpoint directory.
type HealthResponse struct {
	Status    string            `json:"status"`
	Endpoints map[string]string `json:"endpoints"`
}
