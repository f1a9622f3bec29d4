// Package config loads the immutable process configuration once at startup.
// Misconfiguration here is fatal by design: a missing signing key or an
// unparsable token lifetime must abort initialization, never fail per-request.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/difurigo/avant-api/auth"
	"github.com/goliatone/go-errors"
)

var _ auth.Config = (*Config)(nil)

// DefaultTokenLifetimeMinutes applies when AVANT_TOKEN_LIFETIME_MINUTES is
// unset. A set-but-unparsable value is an error, not a fallback.
const DefaultTokenLifetimeMinutes = 60

const (
	defaultIssuer   = "AvantApi"
	defaultAudience = "AvantClientes"
	defaultAddr     = ":8572"
	defaultDSN      = "file:avant.db?cache=shared"
)

// Config is the immutable configuration value handed by reference to the
// token service and the server. It satisfies auth.Config.
type Config struct {
	signingKey      string
	tokenExpiration int
	issuer          string
	audience        []string
	contextKey      string
	dsn             string
	addr            string
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	key := os.Getenv("AVANT_SIGNING_KEY")
	if key == "" {
		return nil, errors.New("AVANT_SIGNING_KEY is required", errors.CategoryInternal)
	}

	lifetime := DefaultTokenLifetimeMinutes
	if raw := os.Getenv("AVANT_TOKEN_LIFETIME_MINUTES"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return nil, errors.New("AVANT_TOKEN_LIFETIME_MINUTES must be a positive integer", errors.CategoryInternal).
				WithMetadata(map[string]any{"value": raw})
		}
		lifetime = parsed
	}

	return &Config{
		signingKey:      key,
		tokenExpiration: lifetime,
		issuer:          envOr("AVANT_JWT_ISSUER", defaultIssuer),
		audience:        splitAudience(envOr("AVANT_JWT_AUDIENCE", defaultAudience)),
		contextKey:      "claims",
		dsn:             envOr("AVANT_DB_DSN", defaultDSN),
		addr:            envOr("AVANT_HTTP_ADDR", defaultAddr),
	}, nil
}

func (c *Config) GetSigningKey() string   { return c.signingKey }
func (c *Config) GetTokenExpiration() int { return c.tokenExpiration }
func (c *Config) GetIssuer() string       { return c.issuer }
func (c *Config) GetAudience() []string   { return c.audience }
func (c *Config) GetContextKey() string   { return c.contextKey }
func (c *Config) GetDSN() string          { return c.dsn }
func (c *Config) GetHTTPAddr() string     { return c.addr }

func envOr(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func splitAudience(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
