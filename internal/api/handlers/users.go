package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/morada-labs/morada/internal/api/middleware"
	"github.com/morada-labs/morada/pkg/listing/models"
	"github.com/morada-labs/morada/pkg/listing/store"
)

// UsersHandler handles user management API endpoints.
type UsersHandler struct {
	store store.Store
}

// NewUsersHandler creates a new UsersHandler.
func NewUsersHandler(s store.Store) *UsersHandler {
	return &UsersHandler{store: s}
}

// RegisterRequest is the request body for POST /users/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

// UpdateUserRequest is the request body for PUT /users/{id}.
type UpdateUserRequest struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// ChangePasswordRequest is the request body for PUT /users/{id}/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Register handles POST /users/register.
// Creates a new agent account. The password is always stored hashed.
func (h *UsersHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if req.Name == "" || req.Email == "" {
		BadRequest(w, "name and email are required")
		return
	}

	hash, err := models.HashPassword(req.Password)
	if err != nil {
		BadRequest(w, err.Error())
		return
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         string(models.RoleAgent),
		Phone:        req.Phone,
	}
	if err := user.Validate(); err != nil {
		BadRequest(w, err.Error())
		return
	}

	if _, err := h.store.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, models.ErrDuplicateUser) {
			Conflict(w, "email is already registered")
			return
		}
		InternalServerError(w, "failed to create user")
		return
	}

	WriteJSONCreated(w, userToResponse(user))
}

// List handles GET /users. Admin only.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		InternalServerError(w, "failed to list users")
		return
	}

	responses := make([]UserResponse, len(users))
	for i, u := range users {
		responses[i] = userToResponse(u)
	}
	WriteJSONOK(w, responses)
}

// Get handles GET /users/{id}. Admin only.
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.store.GetUserByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			NotFound(w, "user not found")
			return
		}
		InternalServerError(w, "failed to fetch user")
		return
	}
	WriteJSONOK(w, userToResponse(user))
}

// Update handles PUT /users/{id}. Admin only.
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	user, err := h.store.GetUserByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			NotFound(w, "user not found")
			return
		}
		InternalServerError(w, "failed to fetch user")
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if err := user.Validate(); err != nil {
		BadRequest(w, err.Error())
		return
	}

	if err := h.store.UpdateUser(r.Context(), user); err != nil {
		if errors.Is(err, models.ErrDuplicateUser) {
			Conflict(w, "email is already registered")
			return
		}
		InternalServerError(w, "failed to update user")
		return
	}

	WriteJSONOK(w, userToResponse(user))
}

// Delete handles DELETE /users/{id}. Admin only.
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, err := h.store.GetUserByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			NotFound(w, "user not found")
			return
		}
		InternalServerError(w, "failed to fetch user")
		return
	}

	if err := h.store.DeleteUser(r.Context(), user.Email); err != nil {
		InternalServerError(w, "failed to delete user")
		return
	}
	WriteNoContent(w)
}

// ChangePassword handles PUT /users/password.
// Lets the authenticated user rotate their own password. The current
// password must verify first; the new one is stored hashed, which also
// migrates legacy plaintext rows.
func (h *UsersHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		Unauthenticated(w)
		return
	}

	var req ChangePasswordRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if _, err := h.store.ValidateCredentials(r.Context(), identity.Subject, req.CurrentPassword); err != nil {
		InvalidCredentials(w)
		return
	}

	hash, err := models.HashPassword(req.NewPassword)
	if err != nil {
		BadRequest(w, err.Error())
		return
	}

	if err := h.store.UpdatePassword(r.Context(), identity.Subject, hash); err != nil {
		InternalServerError(w, "failed to update password")
		return
	}
	WriteNoContent(w)
}
