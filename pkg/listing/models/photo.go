package models

import (
	"fmt"
	"time"
)

// Photo is the metadata record for an image attached to a listing.
// The binary payload lives outside this service; only the file name,
// its storage path, ordering and cover selection are tracked here.
type Photo struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	ListingID string    `gorm:"size:36;index;not null" json:"listing_id"`
	FileName  string    `gorm:"not null;size:255" json:"file_name"`
	Path      string    `gorm:"not null;size:512" json:"path"`
	Cover     bool      `gorm:"default:false" json:"cover"`
	Position  int       `gorm:"default:0" json:"position"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName returns the table name for Photo.
func (Photo) TableName() string {
	return "listing_photos"
}

// Validate checks if the photo has valid configuration.
func (p *Photo) Validate() error {
	if p.ListingID == "" {
		return fmt.Errorf("listing_id is required")
	}
	if p.FileName == "" {
		return fmt.Errorf("file_name is required")
	}
	return nil
}
