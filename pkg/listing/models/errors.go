package models

import "errors"

// Common errors for listing and identity operations.
var (
	// User errors
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("user already exists")

	// Listing errors
	ErrListingNotFound  = errors.New("listing not found")
	ErrDuplicateListing = errors.New("listing already exists")

	// Neighborhood errors
	ErrNeighborhoodNotFound  = errors.New("neighborhood not found")
	ErrDuplicateNeighborhood = errors.New("neighborhood already exists")

	// Property type errors
	ErrPropertyTypeNotFound  = errors.New("property type not found")
	ErrDuplicatePropertyType = errors.New("property type already exists")

	// Photo errors
	ErrPhotoNotFound = errors.New("photo not found")
)
