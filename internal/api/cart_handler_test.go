package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stallhq/storefront-api/internal/domain"
	"github.com/stallhq/storefront-api/internal/mocks"
	"github.com/stallhq/storefront-api/internal/store"
)

func newCartHandler(carts *mocks.CartStore, products *mocks.ProductStore) *CartHandler {
	if carts == nil {
		carts = &mocks.CartStore{}
	}
	if products == nil {
		products = &mocks.ProductStore{}
	}
	return NewCartHandler(carts, products, nil)
}

func activeProduct(id uuid.UUID, stock int) *domain.Product {
	return &domain.Product{
		ID:            id,
		Title:         "Mug",
		StockQuantity: stock,
		IsActive:      true,
	}
}

func TestCartList(t *testing.T) {
	t.Parallel()

	ident := testIdentity()

	t.Run("returns entries with count", func(t *testing.T) {
		t.Parallel()

		carts := &mocks.CartStore{
			ListByUserFn: func(ctx context.Context, userID uuid.UUID) ([]domain.CartEntry, error) {
				assert.Equal(t, ident.ID, userID)
				return []domain.CartEntry{
					{CartItem: domain.CartItem{Quantity: 2}, Product: &domain.CartProduct{Title: "Mug"}},
				}, nil
			},
		}
		h := newCartHandler(carts, nil)

		w := httptest.NewRecorder()
		h.List(w, authed(newRequest(t, http.MethodGet, "/api/cart", nil), ident))

		require.Equal(t, http.StatusOK, w.Code)
		var resp CartListResponse
		decodeBody(t, w, &resp)
		assert.Equal(t, 1, resp.Count)
		require.Len(t, resp.Items, 1)
		require.NotNil(t, resp.Items[0].Product)
		assert.Equal(t, "Mug", resp.Items[0].Product.Title)
	})

	t.Run("empty cart yields empty array", func(t *testing.T) {
		t.Parallel()

		h := newCartHandler(nil, nil)
		w := httptest.NewRecorder()
		h.List(w, authed(newRequest(t, http.MethodGet, "/api/cart", nil), ident))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"items":[]`)
	})
}

func TestCartAdd(t *testing.T) {
	t.Parallel()

	ident := testIdentity()
	productID := uuid.New()

	productStore := func(stock int) *mocks.ProductStore {
		return &mocks.ProductStore{
			GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
				return activeProduct(productID, stock), nil
			},
		}
	}

	t.Run("inserts new item with default quantity", func(t *testing.T) {
		t.Parallel()

		var inserted *domain.CartItem
		carts := &mocks.CartStore{
			InsertFn: func(ctx context.Context, item *domain.CartItem) (*domain.CartItem, error) {
				inserted = item
				created := *item
				created.ID = uuid.New()
				return &created, nil
			},
		}
		h := newCartHandler(carts, productStore(10))

		w := httptest.NewRecorder()
		h.Add(w, authed(newRequest(t, http.MethodPost, "/api/cart",
			AddCartItemRequest{ProductID: productID}), ident))

		require.Equal(t, http.StatusCreated, w.Code)
		require.NotNil(t, inserted)
		assert.Equal(t, ident.ID, inserted.UserID)
		assert.Equal(t, productID, inserted.ProductID)
		assert.Equal(t, 1, inserted.Quantity)

		var resp CartItemResponse
		decodeBody(t, w, &resp)
		assert.Equal(t, "Added to cart", resp.Message)
	})

	t.Run("merges into existing row", func(t *testing.T) {
		t.Parallel()

		existingID := uuid.New()
		var setQuantity int
		var refreshed bool
		carts := &mocks.CartStore{
			FindByUserAndProductFn: func(ctx context.Context, userID, pID uuid.UUID) (*domain.CartItem, error) {
				return &domain.CartItem{ID: existingID, Quantity: 2}, nil
			},
			SetQuantityFn: func(ctx context.Context, id uuid.UUID, quantity int, refresh bool) (*domain.CartItem, error) {
				assert.Equal(t, existingID, id)
				setQuantity = quantity
				refreshed = refresh
				return &domain.CartItem{ID: id, Quantity: quantity}, nil
			},
		}
		h := newCartHandler(carts, productStore(10))

		w := httptest.NewRecorder()
		h.Add(w, authed(newRequest(t, http.MethodPost, "/api/cart",
			AddCartItemRequest{ProductID: productID, Quantity: ptr(3)}), ident))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 5, setQuantity)
		assert.True(t, refreshed)

		var resp CartItemResponse
		decodeBody(t, w, &resp)
		assert.Equal(t, "Cart updated", resp.Message)
	})

	t.Run("missing product id is 400", func(t *testing.T) {
		t.Parallel()

		h := newCartHandler(nil, nil)
		w := httptest.NewRecorder()
		h.Add(w, authed(newRequest(t, http.MethodPost, "/api/cart", AddCartItemRequest{}), ident))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Product ID is required", errorBody(t, w).Error)
	})

	t.Run("unknown product is 404", func(t *testing.T) {
		t.Parallel()

		h := newCartHandler(nil, &mocks.ProductStore{})
		w := httptest.NewRecorder()
		h.Add(w, authed(newRequest(t, http.MethodPost, "/api/cart",
			AddCartItemRequest{ProductID: productID}), ident))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Product not found", errorBody(t, w).Error)
	})

	t.Run("inactive product is 400", func(t *testing.T) {
		t.Parallel()

		products := &mocks.ProductStore{
			GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
				p := activeProduct(productID, 10)
				p.IsActive = false
				return p, nil
			},
		}
		h := newCartHandler(nil, products)

		w := httptest.NewRecorder()
		h.Add(w, authed(newRequest(t, http.MethodPost, "/api/cart",
			AddCartItemRequest{ProductID: productID}), ident))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Product is not available", errorBody(t, w).Error)
	})

	t.Run("requested over stock is rejected with detail", func(t *testing.T) {
		t.Parallel()

		h := newCartHandler(nil, productStore(2))
		w := httptest.NewRecorder()
		h.Add(w, authed(newRequest(t, http.MethodPost, "/api/cart",
			AddCartItemRequest{ProductID: productID, Quantity: ptr(5)}), ident))

		require.Equal(t, http.StatusBadRequest, w.Code)
		var resp InsufficientStockResponse
		decodeBody(t, w, &resp)
		assert.Equal(t, "Insufficient stock", resp.Error)
		assert.Equal(t, 2, resp.Available)
		assert.Equal(t, 5, resp.Requested)
		assert.Nil(t, resp.CurrentInCart)
	})

	t.Run("merge exceeding stock reports current quantity", func(t *testing.T) {
		t.Parallel()

		carts := &mocks.CartStore{
			FindByUserAndProductFn: func(ctx context.Context, userID, pID uuid.UUID) (*domain.CartItem, error) {
				return &domain.CartItem{ID: uuid.New(), Quantity: 4}, nil
			},
		}
		h := newCartHandler(carts, productStore(5))

		w := httptest.NewRecorder()
		h.Add(w, authed(newRequest(t, http.MethodPost, "/api/cart",
			AddCartItemRequest{ProductID: productID, Quantity: ptr(2)}), ident))

		require.Equal(t, http.StatusBadRequest, w.Code)
		var resp InsufficientStockResponse
		decodeBody(t, w, &resp)
		assert.Equal(t, 5, resp.Available)
		assert.Equal(t, 2, resp.Requested)
		require.NotNil(t, resp.CurrentInCart)
		assert.Equal(t, 4, *resp.CurrentInCart)
	})

	t.Run("zero quantity is 400", func(t *testing.T) {
		t.Parallel()

		h := newCartHandler(nil, productStore(10))
		w := httptest.NewRecorder()
		h.Add(w, authed(newRequest(t, http.MethodPost, "/api/cart",
			AddCartItemRequest{ProductID: productID, Quantity: ptr(0)}), ident))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Quantity must be at least 1", errorBody(t, w).Error)
	})
}

func TestCartUpdateQuantity(t *testing.T) {
	t.Parallel()

	ident := testIdentity()
	itemID := uuid.New()

	request := func(t *testing.T, body any) *http.Request {
		r := newRequest(t, http.MethodPut, "/api/cart/"+itemID.String(), body)
		return withPathID(authed(r, ident), itemID.String())
	}

	entryStore := func(stock int) *mocks.CartStore {
		return &mocks.CartStore{
			GetEntryFn: func(ctx context.Context, id, userID uuid.UUID) (*domain.CartEntry, error) {
				return &domain.CartEntry{
					CartItem: domain.CartItem{ID: itemID, UserID: ident.ID, Quantity: 1},
					Product:  &domain.CartProduct{StockQuantity: stock, IsActive: true},
				}, nil
			},
		}
	}

	t.Run("sets quantity without refreshing added_at", func(t *testing.T) {
		t.Parallel()

		carts := entryStore(10)
		var refreshed *bool
		carts.SetQuantityFn = func(ctx context.Context, id uuid.UUID, quantity int, refresh bool) (*domain.CartItem, error) {
			refreshed = &refresh
			return &domain.CartItem{ID: id, Quantity: quantity}, nil
		}
		h := newCartHandler(carts, nil)

		w := httptest.NewRecorder()
		h.UpdateQuantity(w, request(t, UpdateCartItemRequest{Quantity: ptr(4)}))

		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, refreshed)
		assert.False(t, *refreshed)

		var resp CartItemResponse
		decodeBody(t, w, &resp)
		assert.Equal(t, "Quantity updated", resp.Message)
		assert.Equal(t, 4, resp.Item.Quantity)
	})

	t.Run("quantity over stock is rejected", func(t *testing.T) {
		t.Parallel()

		h := newCartHandler(entryStore(3), nil)
		w := httptest.NewRecorder()
		h.UpdateQuantity(w, request(t, UpdateCartItemRequest{Quantity: ptr(4)}))

		require.Equal(t, http.StatusBadRequest, w.Code)
		var resp InsufficientStockResponse
		decodeBody(t, w, &resp)
		assert.Equal(t, 3, resp.Available)
		assert.Equal(t, 4, resp.Requested)
	})

	t.Run("missing or invalid quantity is 400", func(t *testing.T) {
		t.Parallel()

		for _, body := range []UpdateCartItemRequest{{}, {Quantity: ptr(0)}, {Quantity: ptr(-1)}} {
			h := newCartHandler(entryStore(10), nil)
			w := httptest.NewRecorder()
			h.UpdateQuantity(w, request(t, body))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "Quantity must be at least 1", errorBody(t, w).Error)
		}
	})

	t.Run("foreign or missing item is 404", func(t *testing.T) {
		t.Parallel()

		h := newCartHandler(&mocks.CartStore{}, nil)
		w := httptest.NewRecorder()
		h.UpdateQuantity(w, request(t, UpdateCartItemRequest{Quantity: ptr(2)}))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Cart item not found", errorBody(t, w).Error)
	})
}

func TestCartRemove(t *testing.T) {
	t.Parallel()

	ident := testIdentity()
	itemID := uuid.New()

	request := func(t *testing.T) *http.Request {
		r := newRequest(t, http.MethodDelete, "/api/cart/"+itemID.String(), nil)
		return withPathID(authed(r, ident), itemID.String())
	}

	t.Run("removes and names the product", func(t *testing.T) {
		t.Parallel()

		carts := &mocks.CartStore{
			GetEntryFn: func(ctx context.Context, id, userID uuid.UUID) (*domain.CartEntry, error) {
				return &domain.CartEntry{
					CartItem: domain.CartItem{ID: itemID},
					Product:  &domain.CartProduct{Title: "Mug"},
				}, nil
			},
		}
		h := newCartHandler(carts, nil)

		w := httptest.NewRecorder()
		h.Remove(w, request(t))

		require.Equal(t, http.StatusOK, w.Code)
		var resp MessageResponse
		decodeBody(t, w, &resp)
		assert.Equal(t, `Removed "Mug" from cart`, resp.Message)
	})

	t.Run("missing join falls back to generic message", func(t *testing.T) {
		t.Parallel()

		carts := &mocks.CartStore{
			GetEntryFn: func(ctx context.Context, id, userID uuid.UUID) (*domain.CartEntry, error) {
				return &domain.CartEntry{CartItem: domain.CartItem{ID: itemID}}, nil
			},
		}
		h := newCartHandler(carts, nil)

		w := httptest.NewRecorder()
		h.Remove(w, request(t))

		require.Equal(t, http.StatusOK, w.Code)
		var resp MessageResponse
		decodeBody(t, w, &resp)
		assert.Equal(t, "Item removed from cart", resp.Message)
	})

	t.Run("missing item is 404", func(t *testing.T) {
		t.Parallel()

		h := newCartHandler(&mocks.CartStore{}, nil)
		w := httptest.NewRecorder()
		h.Remove(w, request(t))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCartClear(t *testing.T) {
	t.Parallel()

	ident := testIdentity()

	t.Run("clears the cart", func(t *testing.T) {
		t.Parallel()

		var clearedFor uuid.UUID
		carts := &mocks.CartStore{
			ClearFn: func(ctx context.Context, userID uuid.UUID) error {
				clearedFor = userID
				return nil
			},
		}
		h := newCartHandler(carts, nil)

		w := httptest.NewRecorder()
		h.Clear(w, authed(newRequest(t, http.MethodDelete, "/api/cart", nil), ident))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, ident.ID, clearedFor)

		var resp MessageResponse
		decodeBody(t, w, &resp)
		assert.Equal(t, "Cart cleared", resp.Message)
	})

	t.Run("store failure surfaces", func(t *testing.T) {
		t.Parallel()

		carts := &mocks.CartStore{
			ClearFn: func(ctx context.Context, userID uuid.UUID) error {
				return store.ErrUpstream
			},
		}
		h := newCartHandler(carts, nil)

		w := httptest.NewRecorder()
		h.Clear(w, authed(newRequest(t, http.MethodDelete, "/api/cart", nil), ident))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
