package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stallhq/storefront-api/internal/api/shared"
	"github.com/stallhq/storefront-api/internal/domain"
)

// callerFromContext extracts the authenticated identity and its bearer
// token from the request context. The auth guard has already run for
// every route that calls this; a miss means the route is miswired, and
// the request is rejected with 401.
func callerFromContext(w http.ResponseWriter, r *http.Request) (*domain.Identity, string, bool) {
	ident, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return nil, "", false
	}

	token, ok := shared.AccessTokenFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return nil, "", false
	}
	return ident, token, true
}

// pathID extracts and parses the "id" path parameter. On failure it
// writes a 400 response and returns false.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "ID is required")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}
