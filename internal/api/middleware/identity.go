// Package middleware provides HTTP middleware for the morada API.
package middleware

import (
	"context"
	"net/http"
)

// Identity is the authenticated caller attached to a request context.
// It is built fresh for every request from the verified token and the
// user store; nothing here is ever persisted.
type Identity struct {
	// Subject is the account email (the token subject).
	Subject string

	// Role is the account role ("admin" or "agent").
	Role string

	// Name is the account display name.
	Name string
}

// IsAdmin returns true if the identity has admin role.
func (i *Identity) IsAdmin() bool {
	return i.Role == "admin"
}

// Context key type for storing the identity
type contextKey string

const identityContextKey contextKey = "identity"

// WithIdentity returns a context carrying the given identity.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

// IdentityFromContext retrieves the request identity from the context.
// Returns nil if the request is anonymous.
//
// This should only be called in handler code that runs after the
// Authenticate middleware.
func IdentityFromContext(ctx context.Context) *Identity {
	identity, ok := ctx.Value(identityContextKey).(*Identity)
	if !ok {
		return nil
	}
	return identity
}

// RequireIdentity is a middleware that blocks anonymous requests.
// Must be used after Authenticate.
func RequireIdentity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if IdentityFromContext(r.Context()) == nil {
				writeUnauthenticated(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is a middleware that blocks non-admin users.
// Must be used after Authenticate.
func RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := IdentityFromContext(r.Context())
			if identity == nil {
				writeUnauthenticated(w)
				return
			}

			if !identity.IsAdmin() {
				writeJSONError(w, http.StatusForbidden, "forbidden", "admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
