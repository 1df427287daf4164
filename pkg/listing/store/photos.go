package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/morada-labs/morada/pkg/listing/models"
)

// ============================================
// PHOTO OPERATIONS
// ============================================

func (s *GORMStore) GetPhoto(ctx context.Context, id string) (*models.Photo, error) {
	return getByField[models.Photo](s.db, ctx, "id", id, models.ErrPhotoNotFound)
}

func (s *GORMStore) ListPhotos(ctx context.Context, listingID string) ([]*models.Photo, error) {
	var results []*models.Photo
	err := s.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Order("position ASC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []*models.Photo{}
	}
	return results, nil
}

func (s *GORMStore) CreatePhoto(ctx context.Context, photo *models.Photo) (string, error) {
	// The photo must attach to an existing listing.
	var listing models.Listing
	if err := s.db.WithContext(ctx).Where("id = ?", photo.ListingID).First(&listing).Error; err != nil {
		return "", convertNotFoundError(err, models.ErrListingNotFound)
	}
	return createWithID(s.db, ctx, photo, func(p *models.Photo, id string) { p.ID = id }, photo.ID, models.ErrPhotoNotFound)
}

func (s *GORMStore) DeletePhoto(ctx context.Context, id string) error {
	return deleteByField[models.Photo](s.db, ctx, "id", id, models.ErrPhotoNotFound)
}

// SetCoverPhoto marks one photo as the listing's cover and clears the
// flag on its siblings in the same transaction.
func (s *GORMStore) SetCoverPhoto(ctx context.Context, listingID, photoID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var photo models.Photo
		if err := tx.Where("id = ? AND listing_id = ?", photoID, listingID).First(&photo).Error; err != nil {
			return convertNotFoundError(err, models.ErrPhotoNotFound)
		}

		if err := tx.Model(&models.Photo{}).
			Where("listing_id = ?", listingID).
			Update("cover", false).Error; err != nil {
			return err
		}

		return tx.Model(&models.Photo{}).
			Where("id = ?", photoID).
			Update("cover", true).Error
	})
}
