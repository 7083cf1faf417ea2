// Package backend loads the hirelogd server configuration from the
// process environment (optionally seeded from a .env file).
package backend

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	xe "github.com/bandq-jp/hirelog/pkg/errors"
)

const (
	DefaultPort               = 8080
	DefaultAllowedEmailDomain = "bandq.jp"
	DefaultJWKSCacheTTL       = time.Hour
)

type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port int

	// DatabaseURL is the postgres connection string. Required.
	DatabaseURL string

	// ClerkJWKSURL is the JWKS endpoint of the Clerk instance. Required.
	ClerkJWKSURL string

	// ClerkIssuer, when set, is matched against the "iss" claim of
	// incoming tokens.
	ClerkIssuer string

	// ClerkSecretKey authorizes calls to the Clerk backend API
	// (client invitations). Optional; without it the invite endpoint
	// is disabled.
	ClerkSecretKey string

	// FrontendBaseURL is where invitation sign-up links point at.
	FrontendBaseURL string

	// AllowedEmailDomain restricts which addresses may self-provision
	// as staff users. Empty allows any domain.
	AllowedEmailDomain string

	// JWKSCacheTTL bounds how long fetched signing keys are reused.
	JWKSCacheTTL time.Duration

	// SchemaRepository is the directory holding the versioned DDL.
	// Optional; without it the server assumes the schema is managed
	// elsewhere and skips the version check.
	SchemaRepository string
}

// Load reads the configuration from environment variables.
// A .env file in the working directory is honored when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", DefaultPort)
	v.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	v.SetDefault("ALLOWED_EMAIL_DOMAIN", DefaultAllowedEmailDomain)
	v.SetDefault("JWKS_CACHE_TTL", DefaultJWKSCacheTTL)
	for _, key := range []string{
		"PORT", "DATABASE_URL", "CLERK_JWKS_URL", "CLERK_ISSUER",
		"CLERK_SECRET_KEY", "FRONTEND_BASE_URL", "ALLOWED_EMAIL_DOMAIN",
		"JWKS_CACHE_TTL", "SCHEMA_REPOSITORY",
	} {
		if err := v.BindEnv(key); err != nil {
			return Config{}, xe.Wrap(err)
		}
	}

	conf := Config{
		Port:               v.GetInt("PORT"),
		DatabaseURL:        v.GetString("DATABASE_URL"),
		ClerkJWKSURL:       v.GetString("CLERK_JWKS_URL"),
		ClerkIssuer:        v.GetString("CLERK_ISSUER"),
		ClerkSecretKey:     v.GetString("CLERK_SECRET_KEY"),
		FrontendBaseURL:    v.GetString("FRONTEND_BASE_URL"),
		AllowedEmailDomain: v.GetString("ALLOWED_EMAIL_DOMAIN"),
		JWKSCacheTTL:       v.GetDuration("JWKS_CACHE_TTL"),
		SchemaRepository:   v.GetString("SCHEMA_REPOSITORY"),
	}

	if conf.DatabaseURL == "" {
		return Config{}, xe.New("DATABASE_URL is required")
	}
	if conf.ClerkJWKSURL == "" {
		return Config{}, xe.New("CLERK_JWKS_URL is required")
	}
	if conf.Port <= 0 || 65535 < conf.Port {
		return Config{}, xe.New("PORT is out of range")
	}
	if conf.JWKSCacheTTL <= 0 {
		conf.JWKSCacheTTL = DefaultJWKSCacheTTL
	}

	return conf, nil
}
