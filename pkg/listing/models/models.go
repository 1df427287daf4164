// Package models defines the persisted domain types and the credential
// helpers shared by the store and the API layer.
package models

// AllModels returns all GORM models for auto-migration.
func AllModels() []any {
	return []any{
		&User{},
		&Neighborhood{},
		&PropertyType{},
		&Listing{},
		&Photo{},
	}
}
