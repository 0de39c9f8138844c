// Package mocks provides test doubles for the store and identity
// interfaces. Each mock is a struct of function fields: set the field to
// script a behavior, leave it nil to get the zero-value default (not
// found for lookups, no-op success for writes).
package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/stallhq/storefront-api/internal/domain"
	"github.com/stallhq/storefront-api/internal/store"
)

// ProductStore is a function-field mock of store.ProductStore.
type ProductStore struct {
	ListAllFn         func(ctx context.Context) ([]domain.Product, error)
	ListBySellerFn    func(ctx context.Context, sellerID uuid.UUID) ([]domain.Product, error)
	GetByIDFn         func(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	CreateAsCallerFn  func(ctx context.Context, accessToken string, p *domain.Product) (*domain.Product, error)
	UpdateFn          func(ctx context.Context, id, sellerID uuid.UUID, patch domain.ProductPatch) (*domain.Product, error)
	DeleteFn          func(ctx context.Context, id, sellerID uuid.UUID) error
	SellerSnapshotsFn func(ctx context.Context, sellerID uuid.UUID) ([]domain.ProductSnapshot, error)
}

var _ store.ProductStore = (*ProductStore)(nil)

func (m *ProductStore) ListAll(ctx context.Context) ([]domain.Product, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	return nil, nil
}

func (m *ProductStore) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]domain.Product, error) {
	if m.ListBySellerFn != nil {
		return m.ListBySellerFn(ctx, sellerID)
	}
	return nil, nil
}

func (m *ProductStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, store.ErrProductNotFound
}

func (m *ProductStore) CreateAsCaller(ctx context.Context, accessToken string, p *domain.Product) (*domain.Product, error) {
	if m.CreateAsCallerFn != nil {
		return m.CreateAsCallerFn(ctx, accessToken, p)
	}
	created := *p
	if created.ID == uuid.Nil {
		created.ID = uuid.New()
	}
	return &created, nil
}

func (m *ProductStore) Update(ctx context.Context, id, sellerID uuid.UUID, patch domain.ProductPatch) (*domain.Product, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, sellerID, patch)
	}
	return nil, store.ErrProductNotFound
}

func (m *ProductStore) Delete(ctx context.Context, id, sellerID uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id, sellerID)
	}
	return nil
}

func (m *ProductStore) SellerSnapshots(ctx context.Context, sellerID uuid.UUID) ([]domain.ProductSnapshot, error) {
	if m.SellerSnapshotsFn != nil {
		return m.SellerSnapshotsFn(ctx, sellerID)
	}
	return nil, nil
}

// CartStore is a function-field mock of store.CartStore.
type CartStore struct {
	ListByUserFn           func(ctx context.Context, userID uuid.UUID) ([]domain.CartEntry, error)
	GetEntryFn             func(ctx context.Context, id, userID uuid.UUID) (*domain.CartEntry, error)
	FindByUserAndProductFn func(ctx context.Context, userID, productID uuid.UUID) (*domain.CartItem, error)
	InsertFn               func(ctx context.Context, item *domain.CartItem) (*domain.CartItem, error)
	SetQuantityFn          func(ctx context.Context, id uuid.UUID, quantity int, refresh bool) (*domain.CartItem, error)
	DeleteFn               func(ctx context.Context, id, userID uuid.UUID) error
	ClearFn                func(ctx context.Context, userID uuid.UUID) error
	CountByProductFn       func(ctx context.Context, productID uuid.UUID) (int, error)
}

var _ store.CartStore = (*CartStore)(nil)

func (m *CartStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.CartEntry, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *CartStore) GetEntry(ctx context.Context, id, userID uuid.UUID) (*domain.CartEntry, error) {
	if m.GetEntryFn != nil {
		return m.GetEntryFn(ctx, id, userID)
	}
	return nil, store.ErrCartItemNotFound
}

func (m *CartStore) FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*domain.CartItem, error) {
	if m.FindByUserAndProductFn != nil {
		return m.FindByUserAndProductFn(ctx, userID, productID)
	}
	return nil, store.ErrCartItemNotFound
}

func (m *CartStore) Insert(ctx context.Context, item *domain.CartItem) (*domain.CartItem, error) {
	if m.InsertFn != nil {
		return m.InsertFn(ctx, item)
	}
	created := *item
	if created.ID == uuid.Nil {
		created.ID = uuid.New()
	}
	return &created, nil
}

func (m *CartStore) SetQuantity(ctx context.Context, id uuid.UUID, quantity int, refresh bool) (*domain.CartItem, error) {
	if m.SetQuantityFn != nil {
		return m.SetQuantityFn(ctx, id, quantity, refresh)
	}
	return &domain.CartItem{ID: id, Quantity: quantity}, nil
}

func (m *CartStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id, userID)
	}
	return nil
}

func (m *CartStore) Clear(ctx context.Context, userID uuid.UUID) error {
	if m.ClearFn != nil {
		return m.ClearFn(ctx, userID)
	}
	return nil
}

func (m *CartStore) CountByProduct(ctx context.Context, productID uuid.UUID) (int, error) {
	if m.CountByProductFn != nil {
		return m.CountByProductFn(ctx, productID)
	}
	return 0, nil
}

// ProfileStore is a function-field mock of store.ProfileStore.
type ProfileStore struct {
	GetFn    func(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	UpsertFn func(ctx context.Context, profile *domain.Profile) (*domain.Profile, error)
}

var _ store.ProfileStore = (*ProfileStore)(nil)

func (m *ProfileStore) Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, userID)
	}
	return nil, store.ErrProfileNotFound
}

func (m *ProfileStore) Upsert(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, profile)
	}
	saved := *profile
	return &saved, nil
}
