package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/stallhq/storefront-api/internal/domain"
)

// ProfileStore defines the interface for profile persistence via the
// external record store. Profiles are created implicitly on first upsert;
// there is no separate create operation.
type ProfileStore interface {
	// Get retrieves the profile for the given identity ID.
	// Returns ErrProfileNotFound when no row exists, which callers must
	// tolerate by substituting identity metadata.
	Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)

	// Upsert writes the profile keyed by identity ID, inserting the row if
	// it does not exist yet.
	Upsert(ctx context.Context, profile *domain.Profile) (*domain.Profile, error)
}
