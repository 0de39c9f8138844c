package supabase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stallhq/storefront-api/internal/domain"
	"github.com/stallhq/storefront-api/internal/store"
)

// cartTable is the record store collection for cart items.
const cartTable = "cart_items"

// cartEntryColumns joins each cart row with its product's public fields.
const cartEntryColumns = "*,product:products(id,title,description,price,image_url,category,stock_quantity,is_active)"

// CartStore implements store.CartStore against the record store. All
// operations run under the administrative credential with explicit owner
// filters; the lookup-before-insert merge discipline lives in the cart
// handler, not here.
type CartStore struct {
	client *Client
}

// NewCartStore creates a CartStore on top of the given client.
func NewCartStore(client *Client) *CartStore {
	return &CartStore{client: client}
}

// ListByUser implements store.CartStore.
func (s *CartStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.CartEntry, error) {
	var entries []domain.CartEntry
	err := s.client.From(cartTable).
		Select(cartEntryColumns).
		Eq("user_id", userID).
		Order("added_at", false).
		Get(ctx, &entries)
	if err != nil {
		return nil, storeErr(err)
	}
	return entries, nil
}

// GetEntry implements store.CartStore. The owner filter makes a foreign
// cart item indistinguishable from an absent one.
func (s *CartStore) GetEntry(ctx context.Context, id, userID uuid.UUID) (*domain.CartEntry, error) {
	var entry domain.CartEntry
	err := s.client.From(cartTable).
		Select(cartEntryColumns).
		Eq("id", id).
		Eq("user_id", userID).
		Single().
		Get(ctx, &entry)
	if err != nil {
		if isNoRows(err) {
			return nil, store.ErrCartItemNotFound
		}
		return nil, storeErr(err)
	}
	return &entry, nil
}

// FindByUserAndProduct implements store.CartStore.
func (s *CartStore) FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*domain.CartItem, error) {
	var item domain.CartItem
	err := s.client.From(cartTable).
		Select("*").
		Eq("user_id", userID).
		Eq("product_id", productID).
		Single().
		Get(ctx, &item)
	if err != nil {
		if isNoRows(err) {
			return nil, store.ErrCartItemNotFound
		}
		return nil, storeErr(err)
	}
	return &item, nil
}

// Insert implements store.CartStore.
func (s *CartStore) Insert(ctx context.Context, item *domain.CartItem) (*domain.CartItem, error) {
	record := map[string]any{
		"user_id":    item.UserID,
		"product_id": item.ProductID,
		"quantity":   item.Quantity,
	}

	var inserted []domain.CartItem
	err := s.client.From(cartTable).Insert(ctx, record, &inserted)
	if err != nil {
		return nil, storeErr(err)
	}
	if len(inserted) == 0 {
		return nil, store.ErrEmptyResult
	}
	return &inserted[0], nil
}

// SetQuantity implements store.CartStore.
func (s *CartStore) SetQuantity(ctx context.Context, id uuid.UUID, quantity int, refresh bool) (*domain.CartItem, error) {
	patch := map[string]any{"quantity": quantity}
	if refresh {
		patch["added_at"] = time.Now().UTC()
	}

	var updated []domain.CartItem
	err := s.client.From(cartTable).
		Eq("id", id).
		Update(ctx, patch, &updated)
	if err != nil {
		return nil, storeErr(err)
	}
	if len(updated) == 0 {
		return nil, store.ErrCartItemNotFound
	}
	return &updated[0], nil
}

// Delete implements store.CartStore.
func (s *CartStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	var deleted []domain.CartItem
	err := s.client.From(cartTable).
		Eq("id", id).
		Eq("user_id", userID).
		Delete(ctx, &deleted)
	if err != nil {
		return storeErr(err)
	}
	if len(deleted) == 0 {
		return store.ErrCartItemNotFound
	}
	return nil
}

// Clear implements store.CartStore. Unconditional; clearing an already
// empty cart succeeds.
func (s *CartStore) Clear(ctx context.Context, userID uuid.UUID) error {
	err := s.client.From(cartTable).
		Eq("user_id", userID).
		Delete(ctx, nil)
	if err != nil {
		return storeErr(err)
	}
	return nil
}

// CountByProduct implements store.CartStore.
func (s *CartStore) CountByProduct(ctx context.Context, productID uuid.UUID) (int, error) {
	count, err := s.client.From(cartTable).
		Eq("product_id", productID).
		Count(ctx)
	if err != nil {
		return 0, storeErr(err)
	}
	return count, nil
}
