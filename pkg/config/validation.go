package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/morada-labs/morada/internal/api/auth"
)

// validate is the shared validator instance. validator.Validate caches
// struct metadata, so a single instance is reused for all validations.
var validate = validator.New()

// Validate checks the configuration for invalid or inconsistent values.
//
// Struct-level constraints are declared via `validate` tags on the config
// types; cross-field rules that tags cannot express are checked here.
//
// A configured JWT secret that is too short is rejected at this point so a
// misconfigured server fails at startup instead of issuing guessable tokens.
// A missing secret is not an error here: it may still arrive via the
// MORADA_AUTH_SECRET environment variable, and the API server performs the
// final check when it is constructed.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Database.Validate(); err != nil {
		return fmt.Errorf("invalid database configuration: %w", err)
	}

	if s := cfg.API.Auth.Secret; s != "" && len(s) < auth.MinSecretLength {
		return fmt.Errorf("api.auth.secret must be at least %d characters, got %d",
			auth.MinSecretLength, len(s))
	}

	return nil
}
