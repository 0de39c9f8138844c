package supabase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stallhq/storefront-api/internal/domain"
	"github.com/stallhq/storefront-api/internal/store"
)

// profilesTable is the record store collection for profiles.
const profilesTable = "profiles"

// ProfileStore implements store.ProfileStore against the record store.
type ProfileStore struct {
	client *Client
}

// NewProfileStore creates a ProfileStore on top of the given client.
func NewProfileStore(client *Client) *ProfileStore {
	return &ProfileStore{client: client}
}

// Get implements store.ProfileStore. A missing row is a normal state for
// new users and surfaces as ErrProfileNotFound.
func (s *ProfileStore) Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	var profile domain.Profile
	err := s.client.From(profilesTable).
		Select("*").
		Eq("id", userID).
		Single().
		Get(ctx, &profile)
	if err != nil {
		if isNoRows(err) {
			return nil, store.ErrProfileNotFound
		}
		return nil, storeErr(err)
	}
	return &profile, nil
}

// Upsert implements store.ProfileStore. The row is keyed by identity id;
// first write creates it, later writes merge into it.
func (s *ProfileStore) Upsert(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	record := map[string]any{
		"id":         profile.ID,
		"username":   profile.Username,
		"website":    profile.Website,
		"avatar_url": profile.AvatarURL,
		"google_id":  profile.GoogleID,
		"updated_at": time.Now().UTC(),
	}

	var upserted []domain.Profile
	err := s.client.From(profilesTable).Upsert(ctx, record, &upserted, "id")
	if err != nil {
		return nil, storeErr(err)
	}
	if len(upserted) == 0 {
		return nil, store.ErrEmptyResult
	}
	return &upserted[0], nil
}
