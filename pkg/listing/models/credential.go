package models

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the default cost parameter for bcrypt hashing.
// Cost 10 provides a good balance between security and performance.
const DefaultBcryptCost = 10

// Password validation errors.
var (
	// ErrInvalidCredentials is returned when credentials are invalid.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrPasswordTooShort is returned when a password is too short.
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")

	// ErrPasswordTooLong is returned when a password is too long.
	// bcrypt has a maximum input length of 72 bytes.
	ErrPasswordTooLong = errors.New("password must be at most 72 characters")
)

// Password length constraints.
const (
	// MinPasswordLength is the minimum required password length.
	MinPasswordLength = 8

	// MaxPasswordLength is the maximum allowed password length.
	// bcrypt silently truncates at 72 bytes, so we enforce this limit.
	MaxPasswordLength = 72
)

// SecretScheme identifies how a stored secret is encoded.
type SecretScheme int

const (
	// SchemePlaintext is a legacy stored secret kept verbatim.
	// Rows predating hashed storage still carry these; they remain
	// verifiable until the owning account changes its password.
	SchemePlaintext SecretScheme = iota

	// SchemeBcrypt is a bcrypt hash produced by HashPassword.
	SchemeBcrypt
)

// ClassifySecret reports the scheme of a stored secret by inspecting
// its bcrypt version prefix. Anything without a recognized prefix,
// including the empty string, is treated as legacy plaintext.
func ClassifySecret(stored string) SecretScheme {
	if strings.HasPrefix(stored, "$2a$") ||
		strings.HasPrefix(stored, "$2b$") ||
		strings.HasPrefix(stored, "$2y$") {
		return SchemeBcrypt
	}
	return SchemePlaintext
}

// HashPassword creates a bcrypt hash of the given password.
func HashPassword(password string) (string, error) {
	if err := ValidatePassword(password); err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), DefaultBcryptCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// VerifyPassword checks if a supplied password matches a stored secret.
// Bcrypt-hashed secrets use a constant-time bcrypt compare. Legacy
// plaintext secrets fall back to direct equality so pre-migration
// accounts can still log in.
func VerifyPassword(supplied, stored string) bool {
	switch ClassifySecret(stored) {
	case SchemeBcrypt:
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
	default:
		return stored != "" && supplied == stored
	}
}

// ValidatePassword checks if a password meets the requirements.
// Requirements: at least 8 characters, at most 72 characters (bcrypt limit).
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}

// NeedsRehash checks if a stored secret needs to be regenerated.
// Legacy plaintext secrets always do; bcrypt hashes do when the cost
// parameter has been increased since they were produced.
func NeedsRehash(stored string) bool {
	if ClassifySecret(stored) != SchemeBcrypt {
		return true
	}
	cost, err := bcrypt.Cost([]byte(stored))
	if err != nil {
		return true
	}
	return cost < DefaultBcryptCost
}
