// Command server runs the storefront API gateway: a thin HTTP layer in
// front of a hosted backend platform that owns the data and the user
// accounts. The process holds no state of its own and can be restarted
// or scaled horizontally at will.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/stallhq/storefront-api/internal/api"
	"github.com/stallhq/storefront-api/internal/api/middleware"
	"github.com/stallhq/storefront-api/internal/config"
	"github.com/stallhq/storefront-api/internal/platform/logger"
	"github.com/stallhq/storefront-api/internal/platform/supabase"
	"github.com/stallhq/storefront-api/internal/security"
)

// Timeouts for the HTTP server and its drain on shutdown.
const (
	readHeaderTimeout = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 120 * time.Second
	shutdownTimeout   = 15 * time.Second
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err.Error())
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.Setup(cfg.Server.LogLevel)
	log.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel))

	httpc := &http.Client{Timeout: 15 * time.Second}

	// Two platform clients with different standing: the admin client
	// carries the service-role key for store access, the anon client
	// carries the public key for identity operations made on behalf of
	// not-yet-authenticated callers.
	adminClient := supabase.NewClient(cfg.Platform.URL, cfg.Platform.ServiceRoleKey, httpc, log)
	anonClient := supabase.NewClient(cfg.Platform.URL, cfg.Platform.AnonKey, httpc, log)

	provider := supabase.NewAuthProvider(anonClient)
	productStore := supabase.NewProductStore(adminClient)
	cartStore := supabase.NewCartStore(adminClient)
	profileStore := supabase.NewProfileStore(adminClient)

	sanitizer := security.NewSanitizer()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	authGuard := middleware.NewAuthenticator(provider, cfg.Platform.JWTSecret)
	metrics := middleware.NewMetrics(registry)
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.AuthPerMinute, cfg.RateLimit.AuthBurst)
	defer rateLimiter.Stop()

	router := newRouter(routerDeps{
		cfg:         cfg,
		auth:        authGuard,
		metrics:     metrics,
		rateLimiter: rateLimiter,
		registry:    registry,
		products:    api.NewProductHandler(productStore, cartStore, sanitizer, log),
		carts:       api.NewCartHandler(cartStore, productStore, log),
		authH:       api.NewAuthHandler(provider, cfg.Server.SiteURL, log),
		profiles:    api.NewProfileHandler(profileStore, provider, sanitizer, log),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	log.Info("server stopped")
	return nil
}
