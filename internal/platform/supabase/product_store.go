package supabase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stallhq/storefront-api/internal/domain"
	"github.com/stallhq/storefront-api/internal/store"
)

// productsTable is the record store collection for products.
const productsTable = "products"

// snapshotColumns is the minimal projection fetched for seller stats.
const snapshotColumns = "id,is_active,stock_quantity,price,created_at"

// ProductStore implements store.ProductStore against the record store.
// Reads and ownership-filtered writes run under the administrative
// credential; CreateAsCaller switches to the caller's token so the
// platform's row-level security applies to the insert as well.
type ProductStore struct {
	client *Client
}

// NewProductStore creates a ProductStore on top of the given client.
func NewProductStore(client *Client) *ProductStore {
	return &ProductStore{client: client}
}

// ListAll implements store.ProductStore.
func (s *ProductStore) ListAll(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := s.client.From(productsTable).
		Select("*").
		Order("created_at", false).
		Get(ctx, &products)
	if err != nil {
		return nil, storeErr(err)
	}
	return products, nil
}

// ListBySeller implements store.ProductStore.
func (s *ProductStore) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]domain.Product, error) {
	var products []domain.Product
	err := s.client.From(productsTable).
		Select("*").
		Eq("seller_id", sellerID).
		Order("created_at", false).
		Get(ctx, &products)
	if err != nil {
		return nil, storeErr(err)
	}
	return products, nil
}

// GetByID implements store.ProductStore.
func (s *ProductStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var product domain.Product
	err := s.client.From(productsTable).
		Select("*").
		Eq("id", id).
		Single().
		Get(ctx, &product)
	if err != nil {
		if isNoRows(err) {
			return nil, store.ErrProductNotFound
		}
		return nil, storeErr(err)
	}
	return &product, nil
}

// CreateAsCaller implements store.ProductStore. The insert runs on a
// client scoped to the caller's token, not the administrative key.
func (s *ProductStore) CreateAsCaller(ctx context.Context, accessToken string, p *domain.Product) (*domain.Product, error) {
	record := map[string]any{
		"seller_id":      p.SellerID,
		"title":          p.Title,
		"description":    p.Description,
		"price":          p.Price,
		"image_url":      p.ImageURL,
		"category":       p.Category,
		"stock_quantity": p.StockQuantity,
		"is_active":      p.IsActive,
	}

	var inserted []domain.Product
	err := s.client.WithToken(accessToken).
		From(productsTable).
		Insert(ctx, record, &inserted)
	if err != nil {
		return nil, storeErr(err)
	}
	if len(inserted) == 0 {
		return nil, fmt.Errorf("%w: product insert", store.ErrEmptyResult)
	}
	return &inserted[0], nil
}

// Update implements store.ProductStore. The write carries both id and
// seller filters; an empty result means the row vanished or changed
// owners between the handler's read and this write.
func (s *ProductStore) Update(ctx context.Context, id, sellerID uuid.UUID, patch domain.ProductPatch) (*domain.Product, error) {
	var updated []domain.Product
	err := s.client.From(productsTable).
		Eq("id", id).
		Eq("seller_id", sellerID).
		Update(ctx, patch.Fields(), &updated)
	if err != nil {
		return nil, storeErr(err)
	}
	if len(updated) == 0 {
		return nil, store.ErrProductNotFound
	}
	return &updated[0], nil
}

// Delete implements store.ProductStore.
func (s *ProductStore) Delete(ctx context.Context, id, sellerID uuid.UUID) error {
	var deleted []domain.Product
	err := s.client.From(productsTable).
		Eq("id", id).
		Eq("seller_id", sellerID).
		Delete(ctx, &deleted)
	if err != nil {
		return storeErr(err)
	}
	if len(deleted) == 0 {
		return store.ErrProductNotFound
	}
	return nil
}

// SellerSnapshots implements store.ProductStore.
func (s *ProductStore) SellerSnapshots(ctx context.Context, sellerID uuid.UUID) ([]domain.ProductSnapshot, error) {
	var snapshots []domain.ProductSnapshot
	err := s.client.From(productsTable).
		Select(snapshotColumns).
		Eq("seller_id", sellerID).
		Get(ctx, &snapshots)
	if err != nil {
		return nil, storeErr(err)
	}
	return snapshots, nil
}

// storeErr wraps an unclassified platform failure in the store's
// upstream sentinel, preserving the platform message for error details.
func storeErr(err error) error {
	return fmt.Errorf("%w: %w", store.ErrUpstream, err)
}
