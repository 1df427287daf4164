package models

import (
	"fmt"
	"time"
)

// Neighborhood is a catalog entry listings point at.
type Neighborhood struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null;size:255" json:"name"`
	City      string    `gorm:"size:255" json:"city,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName returns the table name for Neighborhood.
func (Neighborhood) TableName() string {
	return "neighborhoods"
}

// Validate checks if the neighborhood has valid configuration.
func (n *Neighborhood) Validate() error {
	if n.Name == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}
