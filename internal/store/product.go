package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/stallhq/storefront-api/internal/domain"
)

// ProductStore defines the interface for product persistence via the
// external record store.
//
// Reads run under the administrative credential. Create runs under the
// caller's own credential so the platform's row-level access control
// applies in addition to the handler's ownership enforcement. Update and
// Delete re-assert ownership as a filter predicate on the write itself:
// a record whose seller changed between the handler's read and the write
// is rejected by the store rather than mutated incorrectly.
type ProductStore interface {
	// ListAll retrieves every product ordered by creation time descending.
	ListAll(ctx context.Context) ([]domain.Product, error)

	// ListBySeller retrieves the seller's products, newest first.
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]domain.Product, error)

	// GetByID retrieves a product by its unique ID.
	// Returns ErrProductNotFound if the product does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)

	// CreateAsCaller inserts a new product using a store client scoped to
	// the caller's access token rather than the administrative credential.
	// Returns ErrEmptyResult if the insert succeeded but returned no
	// representation.
	CreateAsCaller(ctx context.Context, accessToken string, p *domain.Product) (*domain.Product, error)

	// Update applies a partial update to the product identified by id,
	// filtered by both id and sellerID. Returns ErrProductNotFound when
	// the filtered write matched nothing.
	Update(ctx context.Context, id, sellerID uuid.UUID, patch domain.ProductPatch) (*domain.Product, error)

	// Delete removes the product, filtered by both id and sellerID.
	Delete(ctx context.Context, id, sellerID uuid.UUID) error

	// SellerSnapshots retrieves the minimal projection of the seller's
	// products used for statistics aggregation.
	SellerSnapshots(ctx context.Context, sellerID uuid.UUID) ([]domain.ProductSnapshot, error)
}
