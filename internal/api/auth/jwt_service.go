package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/morada-labs/morada/pkg/listing/models"
)

// Common errors for JWT operations.
var (
	// ErrTokenMalformed is returned for tokens that cannot be decoded
	// or that lack a subject.
	ErrTokenMalformed = errors.New("token is malformed")

	// ErrTokenSignatureInvalid is returned when the signature does not
	// verify against the configured secret.
	ErrTokenSignatureInvalid = errors.New("token signature is invalid")

	// ErrTokenExpired is returned for structurally valid, correctly
	// signed tokens whose expiry has passed.
	ErrTokenExpired = errors.New("token has expired")

	// ErrTokenSigningFailed is returned when signing a new token fails.
	ErrTokenSigningFailed = errors.New("failed to sign token")

	// ErrWeakSecret is returned at construction when the signing secret
	// is too short. The server refuses to start in that case.
	ErrWeakSecret = errors.New("JWT secret must be at least 32 characters")
)

// MinSecretLength is the minimum accepted HMAC secret length in bytes.
const MinSecretLength = 32

// DefaultTokenDuration is the token lifetime used when none is configured.
const DefaultTokenDuration = 24 * time.Hour

// JWTConfig holds configuration for JWT token generation.
type JWTConfig struct {
	// Secret is the HMAC signing key. Must be at least 32 characters.
	Secret string

	// Issuer is the token issuer claim. Default: "morada"
	Issuer string

	// TokenDuration is the lifetime of issued tokens. Default: 24 hours.
	TokenDuration time.Duration
}

// JWTService signs and verifies HS256 tokens. It is stateless and safe
// for concurrent use.
type JWTService struct {
	config JWTConfig
	now    func() time.Time
}

// IssuedToken is the result of signing a token for a user.
type IssuedToken struct {
	// Token is the signed compact JWT.
	Token string `json:"token"`

	// TokenType is always "Bearer".
	TokenType string `json:"token_type"`

	// ExpiresIn is the token lifetime in seconds.
	ExpiresIn int64 `json:"expires_in"`

	// ExpiresAt is the token expiration time.
	ExpiresAt time.Time `json:"expires_at"`
}

// NewJWTService creates a new JWT service with the given configuration.
// Returns ErrWeakSecret if the secret is shorter than MinSecretLength.
func NewJWTService(config JWTConfig) (*JWTService, error) {
	if len(config.Secret) < MinSecretLength {
		return nil, ErrWeakSecret
	}

	if config.Issuer == "" {
		config.Issuer = "morada"
	}
	if config.TokenDuration == 0 {
		config.TokenDuration = DefaultTokenDuration
	}

	return &JWTService{config: config, now: time.Now}, nil
}

// Issue creates a signed token for the given user. The subject is the
// user's email address.
func (s *JWTService) Issue(user *models.User) (*IssuedToken, error) {
	now := s.now()
	expiry := now.Add(s.config.TokenDuration)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
		Role: user.Role,
		Name: user.Name,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return nil, ErrTokenSigningFailed
	}

	return &IssuedToken{
		Token:     signed,
		TokenType: "Bearer",
		ExpiresIn: int64(s.config.TokenDuration.Seconds()),
		ExpiresAt: expiry,
	}, nil
}

// Verify validates a compact JWT and returns its claims.
//
// Failures map onto a small taxonomy: ErrTokenMalformed for anything
// that does not decode into a usable token (including a missing
// subject), ErrTokenSignatureInvalid for signature mismatches, and
// ErrTokenExpired for correctly signed tokens past their expiry. A
// token is already expired at exactly its expiration instant.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignatureInvalid
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		default:
			return nil, ErrTokenMalformed
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}
	if claims.Subject == "" {
		return nil, ErrTokenMalformed
	}

	// Expiry is strict: a token presented at exactly its expiration
	// instant is rejected, independent of any leeway the parser allows.
	if claims.ExpiresAt == nil || !s.now().Before(claims.ExpiresAt.Time) {
		return nil, ErrTokenExpired
	}

	return claims, nil
}

// GetTokenDuration returns the configured token duration.
func (s *JWTService) GetTokenDuration() time.Duration {
	return s.config.TokenDuration
}
