// Package api provides the morada REST API server.
package api

import (
	"os"
	"time"

	"github.com/morada-labs/morada/internal/api/middleware"
	"github.com/morada-labs/morada/internal/logger"
)

// EnvAuthSecret is the name of the environment variable for the JWT signing secret.
const EnvAuthSecret = "MORADA_AUTH_SECRET"

// APIConfig configures the REST API HTTP server.
type APIConfig struct {
	// Port is the HTTP port for the API endpoints.
	// Default: 8080
	Port int `mapstructure:"port" validate:"omitempty,min=1,max=65535" yaml:"port"`

	// ReadTimeout is the maximum duration for reading the entire request,
	// including the body. Default: 10s
	ReadTimeout time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of
	// the response. Default: 10s
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next
	// request when keep-alives are enabled. Default: 60s
	IdleTimeout time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout"`

	// AllowedOrigins are the CORS origins permitted to call the API.
	// Default: ["*"] (development).
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`

	// Auth configures token signing and the access policy.
	Auth AuthConfig `mapstructure:"auth" yaml:"auth"`
}

// AuthConfig configures JWT signing and the authorization policy.
type AuthConfig struct {
	// Secret is the HMAC signing key for JWT tokens.
	// Must be at least 32 characters long.
	// Can also be set via the MORADA_AUTH_SECRET environment variable,
	// which takes precedence over the config file.
	Secret string `mapstructure:"secret" yaml:"secret"`

	// TokenDuration is the lifetime of issued tokens.
	// Default: 24h
	TokenDuration time.Duration `mapstructure:"token_duration" yaml:"token_duration"`

	// ExemptPaths are path prefixes that bypass token verification
	// entirely. Default: /auth/, /users/register
	ExemptPaths []string `mapstructure:"exempt_paths" yaml:"exempt_paths"`

	// Rules is the ordered authorization policy. First match wins;
	// empty means the built-in default rule set.
	Rules []RuleConfig `mapstructure:"rules" validate:"omitempty,dive" yaml:"rules"`
}

// RuleConfig is one configured policy rule.
type RuleConfig struct {
	// Method is an HTTP method or "*".
	Method string `mapstructure:"method" yaml:"method"`

	// Pattern is an exact path or a "/**" prefix wildcard.
	Pattern string `mapstructure:"pattern" yaml:"pattern"`

	// Access is "public" or "authenticated".
	Access string `mapstructure:"access" validate:"omitempty,oneof=public authenticated" yaml:"access"`
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *APIConfig) ApplyDefaults() {
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 10 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 10 * time.Second
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 60 * time.Second
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	if c.Auth.TokenDuration == 0 {
		c.Auth.TokenDuration = 24 * time.Hour
	}
	if len(c.Auth.ExemptPaths) == 0 {
		c.Auth.ExemptPaths = []string{"/auth/", "/users/register"}
	}
}

// GetAuthSecret returns the JWT secret, preferring the environment variable.
// Returns empty string if neither env var nor config secret is set.
// Logs a warning if the environment variable overrides a config file value.
func (c *APIConfig) GetAuthSecret() string {
	envSecret := os.Getenv(EnvAuthSecret)
	if envSecret != "" {
		if c.Auth.Secret != "" && c.Auth.Secret != envSecret {
			logger.Warn("JWT secret from environment variable overrides config file value",
				"env_var", EnvAuthSecret)
		}
		return envSecret
	}
	return c.Auth.Secret
}

// HasAuthSecret returns whether a JWT secret is configured.
func (c *APIConfig) HasAuthSecret() bool {
	return c.GetAuthSecret() != ""
}

// PolicyRules converts the configured rules into the middleware policy
// representation, falling back to the default rule set when none are
// configured.
func (c *AuthConfig) PolicyRules() []middleware.Rule {
	if len(c.Rules) == 0 {
		return middleware.DefaultRules()
	}
	rules := make([]middleware.Rule, len(c.Rules))
	for i, r := range c.Rules {
		access := middleware.Access(r.Access)
		if access == "" {
			access = middleware.AccessAuthenticated
		}
		rules[i] = middleware.Rule{
			Method:  r.Method,
			Pattern: r.Pattern,
			Access:  access,
		}
	}
	return rules
}
