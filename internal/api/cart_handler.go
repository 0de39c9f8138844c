package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/stallhq/storefront-api/internal/api/shared"
	"github.com/stallhq/storefront-api/internal/domain"
	"github.com/stallhq/storefront-api/internal/store"
)

// CartHandler handles cart-related HTTP requests. Every operation is
// scoped to the authenticated caller's own cart.
type CartHandler struct {
	carts    store.CartStore
	products store.ProductStore
	logger   *slog.Logger
}

// NewCartHandler creates a new CartHandler with the given dependencies.
func NewCartHandler(carts store.CartStore, products store.ProductStore, logger *slog.Logger) *CartHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CartHandler{
		carts:    carts,
		products: products,
		logger:   logger.With(slog.String("component", "cart_handler")),
	}
}

// List handles GET /api/cart requests. Each entry carries an embedded
// snapshot of its product so clients can render the cart in one call.
func (h *CartHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, _, ok := callerFromContext(w, r)
	if !ok {
		return
	}

	entries, err := h.carts.ListByUser(r.Context(), caller.ID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to fetch cart")
		return
	}
	if entries == nil {
		entries = []domain.CartEntry{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CartListResponse{
		Items: entries,
		Count: len(entries),
	})
}

// Add handles POST /api/cart requests. Adding a product already in the
// cart merges quantities into the existing line instead of creating a
// second one. Stock is checked against the merged total, but not
// reserved; a concurrent purchase can still win the race.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	caller, _, ok := callerFromContext(w, r)
	if !ok {
		return
	}

	var req AddCartItemRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req.ProductID == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Product ID is required")
		return
	}

	quantity := 1
	if req.Quantity != nil {
		if *req.Quantity < 1 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Quantity must be at least 1")
			return
		}
		quantity = *req.Quantity
	}

	product, err := h.products.GetByID(r.Context(), req.ProductID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to fetch product")
		return
	}
	if !product.IsActive {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Product is not available")
		return
	}
	if quantity > product.StockQuantity {
		h.respondInsufficientStock(w, r, product.StockQuantity, quantity, nil)
		return
	}

	existing, err := h.carts.FindByUserAndProduct(r.Context(), caller.ID, req.ProductID)
	switch {
	case err == nil:
		merged := existing.Quantity + quantity
		if merged > product.StockQuantity {
			h.respondInsufficientStock(w, r, product.StockQuantity, quantity, &existing.Quantity)
			return
		}

		item, err := h.carts.SetQuantity(r.Context(), existing.ID, merged, true)
		if err != nil {
			HandleAPIError(w, r, err, "Failed to update cart")
			return
		}
		shared.RespondWithJSON(w, r, http.StatusOK, CartItemResponse{
			Message: "Cart updated",
			Item:    item,
		})

	case errors.Is(err, store.ErrCartItemNotFound):
		item, err := h.carts.Insert(r.Context(), &domain.CartItem{
			UserID:    caller.ID,
			ProductID: req.ProductID,
			Quantity:  quantity,
		})
		if err != nil {
			HandleAPIError(w, r, err, "Failed to add to cart")
			return
		}
		shared.RespondWithJSON(w, r, http.StatusCreated, CartItemResponse{
			Message: "Added to cart",
			Item:    item,
		})

	default:
		HandleAPIError(w, r, err, "Failed to check cart")
	}
}

// UpdateQuantity handles PUT /api/cart/{id} requests. The quantity
// replaces the current one outright; there is no delta form.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	caller, _, ok := callerFromContext(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req UpdateCartItemRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req.Quantity == nil || *req.Quantity < 1 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Quantity must be at least 1")
		return
	}

	entry, err := h.carts.GetEntry(r.Context(), id, caller.ID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to fetch cart item")
		return
	}
	if entry.Product != nil && *req.Quantity > entry.Product.StockQuantity {
		h.respondInsufficientStock(w, r, entry.Product.StockQuantity, *req.Quantity, nil)
		return
	}

	item, err := h.carts.SetQuantity(r.Context(), id, *req.Quantity, false)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update cart item")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CartItemResponse{
		Message: "Quantity updated",
		Item:    item,
	})
}

// Remove handles DELETE /api/cart/{id} requests. The confirmation names
// the removed product when the joined snapshot is available.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	caller, _, ok := callerFromContext(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	entry, err := h.carts.GetEntry(r.Context(), id, caller.ID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to fetch cart item")
		return
	}

	if err := h.carts.Delete(r.Context(), id, caller.ID); err != nil {
		HandleAPIError(w, r, err, "Failed to remove cart item")
		return
	}

	message := "Item removed from cart"
	if entry.Product != nil && trimTitle(entry.Product.Title) != "" {
		message = fmt.Sprintf("Removed %q from cart", trimTitle(entry.Product.Title))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: message})
}

// Clear handles DELETE /api/cart requests. Clearing an already empty
// cart succeeds.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	caller, _, ok := callerFromContext(w, r)
	if !ok {
		return
	}

	if err := h.carts.Clear(r.Context(), caller.ID); err != nil {
		HandleAPIError(w, r, err, "Failed to clear cart")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Cart cleared"})
}

// respondInsufficientStock writes the structured 400 payload for stock
// rejections. currentInCart is set only when merging into an existing line.
func (h *CartHandler) respondInsufficientStock(
	w http.ResponseWriter,
	r *http.Request,
	available, requested int,
	currentInCart *int,
) {
	shared.RespondWithJSON(w, r, http.StatusBadRequest, InsufficientStockResponse{
		Error:         "Insufficient stock",
		Available:     available,
		Requested:     requested,
		CurrentInCart: currentInCart,
		TraceID:       shared.GetTraceID(r.Context()),
	})
}
