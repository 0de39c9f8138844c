package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stallhq/storefront-api/internal/api"
	"github.com/stallhq/storefront-api/internal/api/middleware"
	"github.com/stallhq/storefront-api/internal/config"
)

// routerDeps bundles everything the router wires together.
type routerDeps struct {
	cfg         *config.Config
	auth        *middleware.Authenticator
	metrics     *middleware.Metrics
	rateLimiter *middleware.RateLimiter
	registry    *prometheus.Registry

	products *api.ProductHandler
	carts    *api.CartHandler
	authH    *api.AuthHandler
	profiles *api.ProfileHandler
}

// newRouter builds the HTTP routing table. Route shape note: the product
// collection lives under /api/posts for compatibility with existing
// clients, while owner-scoped routes use /api/my-products.
func newRouter(d routerDeps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.TraceMiddleware)
	r.Use(d.metrics.Middleware)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/api/health", api.Health)
	r.Method(http.MethodGet, "/metrics",
		promhttp.HandlerFor(d.registry, promhttp.HandlerOpts{}))

	// Public product listing.
	r.Get("/api/posts", d.products.List)

	// Auth endpoints. The credential-accepting ones are rate limited;
	// logout stays outside the guard because it works with or without a
	// valid token.
	r.Route("/api/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(d.rateLimiter.Limit)
			r.Post("/register", d.authH.Register)
			r.Post("/login", d.authH.Login)
			r.Post("/magic-link", d.authH.MagicLink)
			r.Post("/google", d.authH.GoogleOAuth)
		})
		r.Post("/logout", d.authH.Logout)

		r.Group(func(r chi.Router) {
			r.Use(d.auth.RequireUser)
			r.Get("/session", d.authH.Session)
			r.Get("/profile", d.profiles.Get)
			r.Put("/profile", d.profiles.Update)
		})
	})

	// Everything below requires an authenticated caller.
	r.Group(func(r chi.Router) {
		r.Use(d.auth.RequireUser)

		r.Post("/api/posts", d.products.Create)
		r.Get("/api/my-products", d.products.ListMine)
		r.Put("/api/my-products/{id}", d.products.UpdateMine)
		r.Delete("/api/my-products/{id}", d.products.DeleteMine)
		r.Get("/api/seller-stats", d.products.SellerStats)

		r.Get("/api/cart", d.carts.List)
		r.Post("/api/cart", d.carts.Add)
		r.Put("/api/cart/{id}", d.carts.UpdateQuantity)
		r.Delete("/api/cart/{id}", d.carts.Remove)
		r.Delete("/api/cart", d.carts.Clear)
	})

	return r
}
