package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/morada-labs/morada/internal/api/auth"
	"github.com/morada-labs/morada/internal/api/middleware"
	"github.com/morada-labs/morada/internal/logger"
	"github.com/morada-labs/morada/pkg/listing/models"
	"github.com/morada-labs/morada/pkg/listing/store"
)

// AuthHandler handles authentication-related API endpoints.
type AuthHandler struct {
	store      store.Store
	jwtService *auth.JWTService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(s store.Store, jwtService *auth.JWTService) *AuthHandler {
	return &AuthHandler{
		store:      s,
		jwtService: jwtService,
	}
}

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the response body for POST /auth/login.
type LoginResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresIn int64        `json:"expires_in"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// UserResponse is a sanitized user representation for API responses.
// The stored secret never appears here in any form.
type UserResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	Phone     string     `json:"phone,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// Login handles POST /auth/login.
// Authenticates credentials and returns a signed JWT.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if req.Email == "" || req.Password == "" {
		BadRequest(w, "email and password are required")
		return
	}

	user, err := h.store.ValidateCredentials(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			// Unknown account and wrong password are indistinguishable
			// in both status and body.
			InvalidCredentials(w)
			return
		}
		logger.ErrorCtx(r.Context(), "credential validation failed", "error", err)
		InternalServerError(w, "authentication failed")
		return
	}

	issued, err := h.jwtService.Issue(user)
	if err != nil {
		logger.ErrorCtx(r.Context(), "token issuance failed", "error", err)
		InternalServerError(w, "failed to generate token")
		return
	}

	// Update last login time (non-critical, log error for debugging)
	if err := h.store.UpdateLastLogin(r.Context(), user.Email, time.Now()); err != nil {
		logger.WarnCtx(r.Context(), "failed to update last login time", "email", user.Email, "error", err)
	}

	WriteJSONOK(w, LoginResponse{
		Token:     issued.Token,
		TokenType: issued.TokenType,
		ExpiresIn: issued.ExpiresIn,
		ExpiresAt: issued.ExpiresAt,
		User:      userToResponse(user),
	})
}

// Me handles GET /auth/me.
// Returns the current authenticated user's information.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		Unauthenticated(w)
		return
	}

	user, err := h.store.GetUserByEmail(r.Context(), identity.Subject)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			Unauthenticated(w)
			return
		}
		InternalServerError(w, "failed to fetch user")
		return
	}

	WriteJSONOK(w, userToResponse(user))
}

// userToResponse converts a User to a UserResponse for API output.
func userToResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Phone:     user.Phone,
		CreatedAt: user.CreatedAt,
		LastLogin: user.LastLogin,
	}
}
