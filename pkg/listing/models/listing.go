package models

import (
	"fmt"
	"time"
)

// ListingPurpose distinguishes sale and rental listings.
type ListingPurpose string

const (
	// PurposeSale marks a listing offered for sale.
	PurposeSale ListingPurpose = "sale"
	// PurposeRent marks a listing offered for rent.
	PurposeRent ListingPurpose = "rent"
)

// IsValid checks if the purpose is a valid ListingPurpose.
func (p ListingPurpose) IsValid() bool {
	return p == PurposeSale || p == PurposeRent
}

// Listing represents a property advertised through the platform.
//
// A listing belongs to the user who created it and references a
// neighborhood and a property type from the catalogs. Photos are
// attached as separate rows so cover selection and ordering do not
// touch the listing itself.
type Listing struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	Title          string    `gorm:"not null;size:255" json:"title"`
	Description    string    `gorm:"type:text" json:"description,omitempty"`
	Purpose        string    `gorm:"not null;size:20" json:"purpose"` // sale, rent
	Price          float64   `gorm:"not null" json:"price"`
	Address        string    `gorm:"size:255" json:"address,omitempty"`
	Bedrooms       int       `json:"bedrooms"`
	Bathrooms      int       `json:"bathrooms"`
	ParkingSpots   int       `json:"parking_spots"`
	AreaM2         float64   `json:"area_m2"`
	Featured       bool      `gorm:"default:false" json:"featured"`
	NeighborhoodID string    `gorm:"size:36;index" json:"neighborhood_id"`
	PropertyTypeID string    `gorm:"size:36;index" json:"property_type_id"`
	OwnerID        string    `gorm:"size:36;index" json:"owner_id"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Neighborhood *Neighborhood `gorm:"foreignKey:NeighborhoodID" json:"neighborhood,omitempty"`
	PropertyType *PropertyType `gorm:"foreignKey:PropertyTypeID" json:"property_type,omitempty"`
	Photos       []Photo       `gorm:"foreignKey:ListingID" json:"photos,omitempty"`
}

// TableName returns the table name for Listing.
func (Listing) TableName() string {
	return "listings"
}

// Validate checks if the listing has valid configuration.
func (l *Listing) Validate() error {
	if l.Title == "" {
		return fmt.Errorf("title is required")
	}
	if !ListingPurpose(l.Purpose).IsValid() {
		return fmt.Errorf("invalid purpose %q", l.Purpose)
	}
	if l.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	return nil
}

// ListingFilter narrows List results. Zero values are ignored.
type ListingFilter struct {
	NeighborhoodID string
	PropertyTypeID string
	Purpose        string
	Featured       *bool
	Limit          int
	Offset         int
}
