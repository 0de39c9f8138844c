package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envPrefix namespaces the environment variables this process reads,
// e.g. STOREFRONT_PLATFORM_URL for platform.url.
const envPrefix = "STOREFRONT"

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory. Environment variables take
// precedence over file values. Returns a validated Config or an error
// describing what is missing or malformed.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults for everything that has a sane one. Credentials do not.
	v.SetDefault("server.port", 3001)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.site_url", "http://localhost:3000")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("rate_limit.auth_per_minute", 30)
	v.SetDefault("rate_limit.auth_burst", 10)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine; a malformed one is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv alone does not surface env-only keys through Unmarshal,
	// so bind each key explicitly.
	for _, key := range []string{
		"server.port",
		"server.log_level",
		"server.site_url",
		"server.allowed_origins",
		"platform.url",
		"platform.service_role_key",
		"platform.anon_key",
		"platform.jwt_secret",
		"rate_limit.auth_per_minute",
		"rate_limit.auth_burst",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
