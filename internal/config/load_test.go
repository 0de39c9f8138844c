package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setRequiredEnv sets the credentials that have no defaults.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("STOREFRONT_PLATFORM_URL", "https://project.supabase.co")
	t.Setenv("STOREFRONT_PLATFORM_SERVICE_ROLE_KEY", "service-role-key")
	t.Setenv("STOREFRONT_PLATFORM_ANON_KEY", "anon-key")
}

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 3001, cfg.Server.Port)
		assert.Equal(t, "info", cfg.Server.LogLevel)
		assert.Equal(t, "http://localhost:3000", cfg.Server.SiteURL)
		assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
		assert.Equal(t, 30, cfg.RateLimit.AuthPerMinute)
		assert.Equal(t, 10, cfg.RateLimit.AuthBurst)
		assert.Empty(t, cfg.Platform.JWTSecret)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("STOREFRONT_SERVER_PORT", "8080")
		t.Setenv("STOREFRONT_SERVER_LOG_LEVEL", "debug")
		t.Setenv("STOREFRONT_PLATFORM_JWT_SECRET", "super-secret")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, "debug", cfg.Server.LogLevel)
		assert.Equal(t, "super-secret", cfg.Platform.JWTSecret)
	})

	t.Run("missing credentials fail validation", func(t *testing.T) {
		t.Setenv("STOREFRONT_PLATFORM_URL", "https://project.supabase.co")
		// service role and anon keys left unset

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})

	t.Run("rejects bad log level", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("STOREFRONT_SERVER_LOG_LEVEL", "verbose")

		_, err := Load()
		require.Error(t, err)
	})

	t.Run("rejects non-url platform address", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("STOREFRONT_PLATFORM_URL", "not a url")

		_, err := Load()
		require.Error(t, err)
	})
}
