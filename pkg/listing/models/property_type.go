package models

import (
	"fmt"
	"time"
)

// PropertyType is a catalog entry (house, apartment, lot, ...).
type PropertyType struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null;size:255" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName returns the table name for PropertyType.
func (PropertyType) TableName() string {
	return "property_types"
}

// Validate checks if the property type has valid configuration.
func (t *PropertyType) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}
