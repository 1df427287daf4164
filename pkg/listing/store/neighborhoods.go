package store

import (
	"context"

	"github.com/morada-labs/morada/pkg/listing/models"
)

// ============================================
// NEIGHBORHOOD OPERATIONS
// ============================================

func (s *GORMStore) GetNeighborhood(ctx context.Context, id string) (*models.Neighborhood, error) {
	return getByField[models.Neighborhood](s.db, ctx, "id", id, models.ErrNeighborhoodNotFound)
}

func (s *GORMStore) ListNeighborhoods(ctx context.Context) ([]*models.Neighborhood, error) {
	return listAll[models.Neighborhood](s.db, ctx)
}

func (s *GORMStore) CreateNeighborhood(ctx context.Context, n *models.Neighborhood) (string, error) {
	return createWithID(s.db, ctx, n, func(n *models.Neighborhood, id string) { n.ID = id }, n.ID, models.ErrDuplicateNeighborhood)
}

func (s *GORMStore) UpdateNeighborhood(ctx context.Context, n *models.Neighborhood) error {
	var existing models.Neighborhood
	if err := s.db.WithContext(ctx).Where("id = ?", n.ID).First(&existing).Error; err != nil {
		return convertNotFoundError(err, models.ErrNeighborhoodNotFound)
	}

	err := s.db.WithContext(ctx).
		Model(&existing).
		Select("Name", "City").
		Updates(n).Error
	if isUniqueConstraintError(err) {
		return models.ErrDuplicateNeighborhood
	}
	return err
}

func (s *GORMStore) DeleteNeighborhood(ctx context.Context, id string) error {
	return deleteByField[models.Neighborhood](s.db, ctx, "id", id, models.ErrNeighborhoodNotFound)
}
