package models

import (
	"fmt"
	"time"
)

// UserRole represents the role of a user in the system.
type UserRole string

const (
	// RoleAgent is a regular agent with limited permissions.
	RoleAgent UserRole = "agent"
	// RoleAdmin is an administrator with full permissions.
	RoleAdmin UserRole = "admin"
)

// IsValid checks if the role is a valid UserRole.
func (r UserRole) IsValid() bool {
	return r == RoleAgent || r == RoleAdmin
}

// User represents an account that can authenticate against the API.
//
// The email address is the login identifier and the JWT subject. The
// stored secret is never serialized: password changes go through the
// credential helpers so new secrets are always bcrypt hashes.
type User struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	Name         string     `gorm:"not null;size:255" json:"name"`
	Email        string     `gorm:"uniqueIndex;not null;size:255" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Role         string     `gorm:"default:agent;size:50" json:"role"` // agent, admin
	Phone        string     `gorm:"size:50" json:"phone,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

// TableName returns the table name for User.
func (User) TableName() string {
	return "users"
}

// Validate checks if the user has valid configuration.
func (u *User) Validate() error {
	if u.Email == "" {
		return fmt.Errorf("email is required")
	}
	if u.Name == "" {
		return fmt.Errorf("name is required")
	}
	if u.Role != "" && !UserRole(u.Role).IsValid() {
		return fmt.Errorf("invalid role %q", u.Role)
	}
	return nil
}

// IsAdmin checks if the user has admin role.
func (u *User) IsAdmin() bool {
	return u.Role == string(RoleAdmin)
}

// GetRole returns the user's role as a UserRole type.
func (u *User) GetRole() UserRole {
	return UserRole(u.Role)
}
