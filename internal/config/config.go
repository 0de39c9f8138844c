// Package config loads and validates application configuration.
//
// Configuration is read once at process start and passed into every
// component at construction time; nothing in the handler path reads
// ambient global state.
package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"     validate:"required"`
	Platform  PlatformConfig  `mapstructure:"platform"   validate:"required"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// SiteURL is the externally-reachable frontend address used to build
	// redirect targets for magic links and OAuth callbacks.
	SiteURL string `mapstructure:"site_url" validate:"required,url"`

	// AllowedOrigins configures CORS. "*" permits any origin.
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"required,min=1"`
}

// PlatformConfig contains the credentials for the hosted backend
// platform: the record store and the bundled identity provider share the
// same project URL.
type PlatformConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`

	// ServiceRoleKey is the administrative credential. Store reads and
	// ownership-filtered writes run under it.
	ServiceRoleKey string `mapstructure:"service_role_key" validate:"required"`

	// AnonKey is the public credential used for identity operations that
	// act on behalf of unauthenticated callers (sign-up, sign-in).
	AnonKey string `mapstructure:"anon_key" validate:"required"`

	// JWTSecret optionally enables local verification of access tokens in
	// the auth guard before the provider introspection call. Empty
	// disables the pre-check; the provider call always happens either way.
	JWTSecret string `mapstructure:"jwt_secret"`
}

// RateLimitConfig bounds request rates on the auth endpoints.
type RateLimitConfig struct {
	// AuthPerMinute is the sustained per-client budget for auth endpoints.
	AuthPerMinute int `mapstructure:"auth_per_minute" validate:"required,gt=0"`

	// AuthBurst is the instantaneous burst allowance.
	AuthBurst int `mapstructure:"auth_burst" validate:"required,gt=0"`
}
