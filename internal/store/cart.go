package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/stallhq/storefront-api/internal/domain"
)

// CartStore defines the interface for cart item persistence via the
// external record store.
//
// The at-most-one-row-per-(user, product) invariant is maintained by
// application logic (FindByUserAndProduct before Insert), not by a store
// constraint, so it is best effort under concurrent adds.
type CartStore interface {
	// ListByUser retrieves the user's cart entries joined with their
	// product's public fields, ordered by added_at descending.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.CartEntry, error)

	// GetEntry retrieves a single cart entry by id, filtered by owner and
	// joined with its product. Returns ErrCartItemNotFound when the row is
	// absent or owned by someone else.
	GetEntry(ctx context.Context, id, userID uuid.UUID) (*domain.CartEntry, error)

	// FindByUserAndProduct looks up the user's existing cart row for a
	// product. Returns ErrCartItemNotFound when no row exists.
	FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*domain.CartItem, error)

	// Insert creates a new cart row for the given user and product.
	Insert(ctx context.Context, item *domain.CartItem) (*domain.CartItem, error)

	// SetQuantity writes a new quantity on an existing row. When refresh
	// is true the row's added_at is reset to now, which the add-to-cart
	// merge uses to float merged items back to the top of the cart.
	SetQuantity(ctx context.Context, id uuid.UUID, quantity int, refresh bool) (*domain.CartItem, error)

	// Delete removes a single cart row, filtered by owner.
	Delete(ctx context.Context, id, userID uuid.UUID) error

	// Clear removes every cart row belonging to the user.
	Clear(ctx context.Context, userID uuid.UUID) error

	// CountByProduct reports how many cart rows across all users reference
	// the product. Used to refuse deleting a product that is still in
	// somebody's cart.
	CountByProduct(ctx context.Context, productID uuid.UUID) (int, error)
}
