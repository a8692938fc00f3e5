// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// HTTPAddr is the address the HTTP server listens on (e.g. :10000).
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// DatabaseURL is the Postgres DSN; empty disables persistence-backed startup checks.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// JWTSecret is the HS256 signing secret for identity tokens. Required.
	JWTSecret string `mapstructure:"JWT_SECRET"`
	// JWTTTL is the identity token lifetime (e.g. "168h" for 7 days).
	JWTTTL string `mapstructure:"JWT_TTL"`
	// BcryptCost is the bcrypt cost factor (4–31); default 12.
	BcryptCost int `mapstructure:"BCRYPT_COST"`
	// IPInfoBaseURL is the base URL of the IP geolocation service.
	IPInfoBaseURL string `mapstructure:"IPINFO_BASE_URL"`
	// IPInfoToken is the API token for the IP geolocation service. Empty disables lookups.
	IPInfoToken string `mapstructure:"IPINFO_TOKEN"`
	// GeoIPTimeout bounds a single geolocation lookup during login (e.g. "3s").
	// On timeout the login proceeds without a location.
	GeoIPTimeout string `mapstructure:"GEOIP_TIMEOUT"`
	// GeminiAPIKey is the API key for the AI copy generator. Empty disables it;
	// recommendation copy falls back to static text.
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
	// GeminiBaseURL is the base URL of the AI text generation API.
	GeminiBaseURL string `mapstructure:"GEMINI_BASE_URL"`
	// AllowedOrigins is a comma-separated list of CORS origins for the API and websocket.
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`
	// OTLPEndpoint is the OTLP collector endpoint for traces/metrics. Empty disables export.
	OTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	// OTLPInsecure forces plaintext OTLP export (standard OTEL_EXPORTER_OTLP_INSECURE behavior).
	OTLPInsecure bool `mapstructure:"OTEL_EXPORTER_OTLP_INSECURE"`
	// Env is the application environment (e.g. "development", "production").
	Env string `mapstructure:"APP_ENV"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env. Returns an error if required fields are invalid.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":10000")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TTL", "168h") // 7d
	v.SetDefault("BCRYPT_COST", 12)
	v.SetDefault("IPINFO_BASE_URL", "https://ipinfo.io")
	v.SetDefault("IPINFO_TOKEN", "")
	v.SetDefault("GEOIP_TIMEOUT", "3s")
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", false)
	v.SetDefault("APP_ENV", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("config: HTTP_ADDR must be set")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("config: JWT_SECRET must be set")
	}

	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = 12
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return nil, errors.New("config: BCRYPT_COST must be between 4 and 31")
	}

	return &cfg, nil
}

// TokenTTL parses JWTTTL as a time.Duration. Returns 168h if unset or invalid.
func (c *Config) TokenTTL() time.Duration {
	d, err := time.ParseDuration(c.JWTTTL)
	if err != nil || d <= 0 {
		return 168 * time.Hour
	}
	return d
}

// GeoTimeout parses GeoIPTimeout as a time.Duration. Returns 3s if unset or invalid.
func (c *Config) GeoTimeout() time.Duration {
	d, err := time.ParseDuration(c.GeoIPTimeout)
	if err != nil || d <= 0 {
		return 3 * time.Second
	}
	return d
}

// AllowedOriginsList returns the CORS origins from the comma-separated config.
func (c *Config) AllowedOriginsList() []string {
	if c == nil || c.AllowedOrigins == "" {
		return nil
	}
	parts := strings.Split(c.AllowedOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
