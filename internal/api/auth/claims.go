// Package auth provides JWT authentication for the morada API.
package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims represents JWT claims for morada authentication.
//
// The subject is the account's email address. Role and display name
// ride along so the middleware can build a request identity without an
// extra lookup when needed.
type Claims struct {
	jwt.RegisteredClaims

	// Role is the user's role ("admin" or "agent").
	Role string `json:"role"`

	// Name is the user's display name.
	Name string `json:"name"`
}

// IsAdmin returns true if the user has admin role.
func (c *Claims) IsAdmin() bool {
	return c.Role == "admin"
}
