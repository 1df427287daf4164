// Package store provides the listing persistence layer.
//
// Two backends are supported:
//   - SQLite (single-node, default)
//   - PostgreSQL
package store

import (
	"context"
	"time"

	"github.com/morada-labs/morada/pkg/listing/models"
)

// Store provides the persistence interface for users, listings and the
// catalog resources.
//
// Thread Safety: Implementations must be safe for concurrent use from
// multiple goroutines.
type Store interface {
	// ============================================
	// USER OPERATIONS
	// ============================================

	// GetUserByEmail returns a user by email address.
	// Returns models.ErrUserNotFound if the user doesn't exist.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID returns a user by their unique ID (UUID).
	// Returns models.ErrUserNotFound if no user has this ID.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// ListUsers returns all users.
	ListUsers(ctx context.Context) ([]*models.User, error)

	// CreateUser creates a new user. The ID is generated if empty.
	// Returns models.ErrDuplicateUser if the email is already taken.
	CreateUser(ctx context.Context, user *models.User) (string, error)

	// UpdateUser updates an existing user's profile fields.
	// Returns models.ErrUserNotFound if the user doesn't exist.
	UpdateUser(ctx context.Context, user *models.User) error

	// DeleteUser deletes a user by email.
	// Returns models.ErrUserNotFound if the user doesn't exist.
	DeleteUser(ctx context.Context, email string) error

	// UpdatePassword replaces the stored password hash.
	// Returns models.ErrUserNotFound if the user doesn't exist.
	UpdatePassword(ctx context.Context, email, passwordHash string) error

	// UpdateLastLogin updates the user's last login timestamp.
	// Returns models.ErrUserNotFound if the user doesn't exist.
	UpdateLastLogin(ctx context.Context, email string, timestamp time.Time) error

	// ValidateCredentials verifies email/password credentials.
	// Returns the user if credentials are valid.
	// Returns models.ErrInvalidCredentials for unknown accounts and
	// wrong passwords alike.
	ValidateCredentials(ctx context.Context, email, password string) (*models.User, error)

	// ============================================
	// LISTING OPERATIONS
	// ============================================

	// GetListing returns a listing with its catalog references and photos.
	// Returns models.ErrListingNotFound if the listing doesn't exist.
	GetListing(ctx context.Context, id string) (*models.Listing, error)

	// ListListings returns listings matching the filter, newest first.
	ListListings(ctx context.Context, filter models.ListingFilter) ([]*models.Listing, error)

	// CreateListing creates a new listing. The ID is generated if empty.
	CreateListing(ctx context.Context, listing *models.Listing) (string, error)

	// UpdateListing updates an existing listing.
	// Returns models.ErrListingNotFound if the listing doesn't exist.
	UpdateListing(ctx context.Context, listing *models.Listing) error

	// DeleteListing deletes a listing and its photo metadata.
	// Returns models.ErrListingNotFound if the listing doesn't exist.
	DeleteListing(ctx context.Context, id string) error

	// ============================================
	// CATALOG OPERATIONS
	// ============================================

	GetNeighborhood(ctx context.Context, id string) (*models.Neighborhood, error)
	ListNeighborhoods(ctx context.Context) ([]*models.Neighborhood, error)
	CreateNeighborhood(ctx context.Context, n *models.Neighborhood) (string, error)
	UpdateNeighborhood(ctx context.Context, n *models.Neighborhood) error
	DeleteNeighborhood(ctx context.Context, id string) error

	GetPropertyType(ctx context.Context, id string) (*models.PropertyType, error)
	ListPropertyTypes(ctx context.Context) ([]*models.PropertyType, error)
	CreatePropertyType(ctx context.Context, t *models.PropertyType) (string, error)
	UpdatePropertyType(ctx context.Context, t *models.PropertyType) error
	DeletePropertyType(ctx context.Context, id string) error

	// ============================================
	// PHOTO OPERATIONS
	// ============================================

	// GetPhoto returns a photo metadata record.
	// Returns models.ErrPhotoNotFound if the photo doesn't exist.
	GetPhoto(ctx context.Context, id string) (*models.Photo, error)

	// ListPhotos returns a listing's photos ordered by position.
	ListPhotos(ctx context.Context, listingID string) ([]*models.Photo, error)

	// CreatePhoto attaches a photo record to a listing.
	// Returns models.ErrListingNotFound if the listing doesn't exist.
	CreatePhoto(ctx context.Context, photo *models.Photo) (string, error)

	// DeletePhoto deletes a photo record.
	// Returns models.ErrPhotoNotFound if the photo doesn't exist.
	DeletePhoto(ctx context.Context, id string) error

	// SetCoverPhoto marks one photo as the listing's cover.
	// Returns models.ErrPhotoNotFound if the photo doesn't belong to
	// the listing.
	SetCoverPhoto(ctx context.Context, listingID, photoID string) error

	// ============================================
	// LIFECYCLE
	// ============================================

	// Ping verifies the database connection is alive.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
