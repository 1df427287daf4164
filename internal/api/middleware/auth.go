package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/morada-labs/morada/internal/api/auth"
	"github.com/morada-labs/morada/internal/logger"
	"github.com/morada-labs/morada/pkg/listing/models"
)

// UserResolver looks up the principal behind a verified token subject.
// Satisfied by the listing store.
type UserResolver interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Authenticate verifies bearer tokens and attaches an Identity to the
// request context.
//
// Requests under an exempt prefix skip the middleware entirely. With no
// Authorization header the request continues anonymously and the policy
// decides whether that is enough. A presented credential is always
// verified; on success the principal is resolved through the store (a
// subject whose account has since vanished counts as a verification
// failure) and a fresh identity is attached. On failure the request is
// rejected with a uniform 401 body when the policy requires
// authentication, and continues anonymously otherwise. The specific
// failure cause only reaches the server log, never the client.
//
// The middleware is idempotent: a request that already carries an
// identity passes through untouched.
func Authenticate(jwtService *auth.JWTService, users UserResolver, policy *Policy, exemptPrefixes []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if IdentityFromContext(r.Context()) != nil {
				next.ServeHTTP(w, r)
				return
			}

			for _, prefix := range exemptPrefixes {
				if strings.HasPrefix(r.URL.Path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}

			tokenString, ok := extractBearerToken(r)
			if !ok {
				// No credential presented. Anonymous is fine on public
				// paths; otherwise the policy gate below rejects.
				if policy.Allows(r.Method, r.URL.Path) {
					next.ServeHTTP(w, r)
					return
				}
				writeUnauthenticated(w)
				return
			}

			identity, err := verifyAndResolve(r.Context(), jwtService, users, tokenString)
			if err != nil {
				logger.WarnCtx(r.Context(), "token verification failed",
					"path", r.URL.Path,
					"reason", err.Error())
				if policy.Allows(r.Method, r.URL.Path) {
					next.ServeHTTP(w, r)
					return
				}
				writeUnauthenticated(w)
				return
			}

			ctx := WithIdentity(r.Context(), identity)
			ctx = logger.WithContext(ctx, logger.LogContext{Subject: identity.Subject})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// verifyAndResolve validates the token and looks up its principal,
// building the request identity from the stored account.
func verifyAndResolve(ctx context.Context, jwtService *auth.JWTService, users UserResolver, tokenString string) (*Identity, error) {
	claims, err := jwtService.Verify(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := users.GetUserByEmail(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}

	return &Identity{
		Subject: user.Email,
		Role:    user.Role,
		Name:    user.Name,
	}, nil
}

// extractBearerToken extracts the token from a Bearer Authorization header.
// Returns the token string and true if successful, or empty string and false if not.
func extractBearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	return parts[1], true
}

// writeUnauthenticated writes the uniform 401 body. All rejection
// causes look identical to the client.
func writeUnauthenticated(w http.ResponseWriter) {
	writeJSONError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
}

func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   code,
		"message": message,
	})
}
