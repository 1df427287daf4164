package store

import (
	"context"

	"github.com/morada-labs/morada/pkg/listing/models"
)

// ============================================
// PROPERTY TYPE OPERATIONS
// ============================================

func (s *GORMStore) GetPropertyType(ctx context.Context, id string) (*models.PropertyType, error) {
	return getByField[models.PropertyType](s.db, ctx, "id", id, models.ErrPropertyTypeNotFound)
}

func (s *GORMStore) ListPropertyTypes(ctx context.Context) ([]*models.PropertyType, error) {
	return listAll[models.PropertyType](s.db, ctx)
}

func (s *GORMStore) CreatePropertyType(ctx context.Context, t *models.PropertyType) (string, error) {
	return createWithID(s.db, ctx, t, func(t *models.PropertyType, id string) { t.ID = id }, t.ID, models.ErrDuplicatePropertyType)
}

func (s *GORMStore) UpdatePropertyType(ctx context.Context, t *models.PropertyType) error {
	var existing models.PropertyType
	if err := s.db.WithContext(ctx).Where("id = ?", t.ID).First(&existing).Error; err != nil {
		return convertNotFoundError(err, models.ErrPropertyTypeNotFound)
	}

	err := s.db.WithContext(ctx).
		Model(&existing).
		Select("Name").
		Updates(t).Error
	if isUniqueConstraintError(err) {
		return models.ErrDuplicatePropertyType
	}
	return err
}

func (s *GORMStore) DeletePropertyType(ctx context.Context, id string) error {
	return deleteByField[models.PropertyType](s.db, ctx, "id", id, models.ErrPropertyTypeNotFound)
}
