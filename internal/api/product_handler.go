// Package api provides HTTP handlers for the API.
package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/stallhq/storefront-api/internal/api/shared"
	"github.com/stallhq/storefront-api/internal/domain"
	"github.com/stallhq/storefront-api/internal/security"
	"github.com/stallhq/storefront-api/internal/store"
)

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	products  store.ProductStore
	carts     store.CartStore
	sanitizer *security.Sanitizer
	logger    *slog.Logger
}

// NewProductHandler creates a new ProductHandler with the given dependencies.
func NewProductHandler(
	products store.ProductStore,
	carts store.CartStore,
	sanitizer *security.Sanitizer,
	logger *slog.Logger,
) *ProductHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductHandler{
		products:  products,
		carts:     carts,
		sanitizer: sanitizer,
		logger:    logger.With(slog.String("component", "product_handler")),
	}
}

// List handles GET /api/posts requests. Public: returns the full product
// collection, newest first, with no pagination or filtering.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListAll(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to fetch products")
		return
	}
	if products == nil {
		products = []domain.Product{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ProductListResponse{
		Products: products,
		Count:    len(products),
	})
}

// Create handles POST /api/posts requests. The stored seller is always
// the authenticated caller, and the insert runs under the caller's own
// store credential so the platform's access control applies on top of
// the handler's enforcement.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, token, ok := callerFromContext(w, r)
	if !ok {
		return
	}

	var req CreateProductRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	title := h.sanitizer.Text(req.Title)
	description := h.sanitizer.Text(req.Description)

	// Zero is a valid price; an absent one is not.
	if title == "" || description == "" || req.Price == nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Title, description, and price are required")
		return
	}
	if *req.Price < 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Price cannot be negative")
		return
	}

	stockQuantity := 0
	if req.StockQuantity != nil {
		stockQuantity = *req.StockQuantity
	}
	if stockQuantity < 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Stock quantity cannot be negative")
		return
	}

	// Active unless the caller explicitly said otherwise.
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	product := &domain.Product{
		SellerID:      caller.ID,
		Title:         title,
		Description:   description,
		Price:         *req.Price,
		ImageURL:      req.ImageURL,
		Category:      req.Category,
		StockQuantity: stockQuantity,
		IsActive:      isActive,
	}

	created, err := h.products.CreateAsCaller(r.Context(), token, product)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create product")
		return
	}

	h.logger.Debug("product created",
		slog.String("product_id", created.ID.String()),
		slog.String("seller_id", caller.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, ProductResponse{
		Message: "Product created successfully",
		Product: created,
	})
}

// ListMine handles GET /api/my-products requests.
func (h *ProductHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	caller, _, ok := callerFromContext(w, r)
	if !ok {
		return
	}

	products, err := h.products.ListBySeller(r.Context(), caller.ID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to fetch products")
		return
	}
	if products == nil {
		products = []domain.Product{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SellerProductListResponse{
		Products: products,
		Count:    len(products),
		Seller:   caller.Summary(),
	})
}

// UpdateMine handles PUT /api/my-products/{id} requests. Ownership is
// checked twice: once on the read, and again as a filter on the write so
// a row whose seller changed in between is rejected by the store.
func (h *ProductHandler) UpdateMine(w http.ResponseWriter, r *http.Request) {
	caller, _, ok := callerFromContext(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	existing, err := h.products.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to fetch product")
		return
	}
	if existing.SellerID != caller.ID {
		shared.RespondWithError(w, r, http.StatusForbidden, "You can only update your own products")
		return
	}

	patch := req.Patch()
	if patch.Title != nil {
		clean := h.sanitizer.Text(*patch.Title)
		patch.Title = &clean
	}
	if patch.Description != nil {
		clean := h.sanitizer.Text(*patch.Description)
		patch.Description = &clean
	}

	if patch.IsEmpty() {
		shared.RespondWithError(w, r, http.StatusBadRequest, "No fields to update")
		return
	}
	if err := patch.Validate(); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.products.Update(r.Context(), id, caller.ID, patch)
	if err != nil {
		// A row that vanished between the ownership read and the write
		// collapses to the same outcome as not-found.
		if errors.Is(err, store.ErrProductNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Product not found or update failed")
			return
		}
		HandleAPIError(w, r, err, "Failed to update product")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ProductResponse{
		Message: "Product updated successfully",
		Product: updated,
	})
}

// DeleteMine handles DELETE /api/my-products/{id} requests. A product
// still referenced by any cart cannot be deleted; sellers deactivate it
// instead. This is a business rule, not a store constraint.
func (h *ProductHandler) DeleteMine(w http.ResponseWriter, r *http.Request) {
	caller, _, ok := callerFromContext(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	existing, err := h.products.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to fetch product")
		return
	}
	if existing.SellerID != caller.ID {
		shared.RespondWithError(w, r, http.StatusForbidden, "You can only delete your own products")
		return
	}

	references, err := h.carts.CountByProduct(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to check cart references")
		return
	}
	if references > 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"Cannot delete a product that is in carts. Deactivate it instead.")
		return
	}

	if err := h.products.Delete(r.Context(), id, caller.ID); err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Product not found or delete failed")
			return
		}
		HandleAPIError(w, r, err, "Failed to delete product")
		return
	}

	h.logger.Debug("product deleted",
		slog.String("product_id", id.String()),
		slog.String("seller_id", caller.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{
		Message: "Product deleted successfully",
	})
}

// SellerStats handles GET /api/seller-stats requests. Aggregation is a
// single in-memory pass over the caller's full product set.
func (h *ProductHandler) SellerStats(w http.ResponseWriter, r *http.Request) {
	caller, _, ok := callerFromContext(w, r)
	if !ok {
		return
	}

	snapshots, err := h.products.SellerSnapshots(r.Context(), caller.ID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to fetch seller statistics")
		return
	}

	stats := domain.ComputeSellerStats(snapshots, time.Now().UTC())
	shared.RespondWithJSON(w, r, http.StatusOK, SellerStatsResponse{Stats: stats})
}

// trimTitle is a display helper for confirmation messages.
func trimTitle(title string) string {
	return strings.TrimSpace(title)
}
