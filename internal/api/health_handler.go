package api

import (
	"net/http"

	"github.com/stallhq/storefront-api/internal/api/shared"
)

// endpointDirectory is the static route listing served by the health
// endpoint, kept as live documentation of the public surface.
var endpointDirectory = map[string]string{
	"GET /api/posts":               "List all products (public)",
	"POST /api/posts":              "Create a product (auth)",
	"GET /api/my-products":         "List the caller's products (auth)",
	"PUT /api/my-products/{id}":    "Update an owned product (auth)",
	"DELETE /api/my-products/{id}": "Delete an owned product (auth)",
	"GET /api/seller-stats":        "Aggregate stats for the caller's products (auth)",
	"GET /api/cart":                "List the caller's cart (auth)",
	"POST /api/cart":               "Add a product to the cart (auth)",
	"PUT /api/cart/{id}":           "Set a cart item's quantity (auth)",
	"DELETE /api/cart/{id}":        "Remove a cart item (auth)",
	"DELETE /api/cart":             "Clear the cart (auth)",
	"POST /api/auth/register":      "Register with email and password",
	"POST /api/auth/login":         "Sign in with email and password",
	"POST /api/auth/magic-link":    "Email a one-time sign-in link",
	"POST /api/auth/google":        "Start the Google OAuth flow",
	"GET /api/auth/session":        "Introspect the current session (auth)",
	"POST /api/auth/logout":        "Sign out (best-effort)",
	"GET /api/auth/profile":        "Read the caller's profile (auth)",
	"PUT /api/auth/profile":        "Create or update the caller's profile (auth)",
	"GET /api/health":              "This endpoint",
}

// Health handles GET /api/health requests. It reports liveness of the
// gateway process only; upstream platform health is not probed.
func Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:    "ok",
		Endpoints: endpointDirectory,
	})
}
