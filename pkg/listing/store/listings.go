package store

import (
	"context"
	"time"

	"github.com/morada-labs/morada/pkg/listing/models"
)

// ============================================
// LISTING OPERATIONS
// ============================================

func (s *GORMStore) GetListing(ctx context.Context, id string) (*models.Listing, error) {
	return getByField[models.Listing](s.db, ctx, "id", id, models.ErrListingNotFound, "Neighborhood", "PropertyType", "Photos")
}

// ListListings returns listings matching the filter, newest first.
// Zero-valued filter fields are ignored.
func (s *GORMStore) ListListings(ctx context.Context, filter models.ListingFilter) ([]*models.Listing, error) {
	q := s.db.WithContext(ctx).
		Preload("Neighborhood").
		Preload("PropertyType").
		Preload("Photos").
		Order("created_at DESC")

	if filter.NeighborhoodID != "" {
		q = q.Where("neighborhood_id = ?", filter.NeighborhoodID)
	}
	if filter.PropertyTypeID != "" {
		q = q.Where("property_type_id = ?", filter.PropertyTypeID)
	}
	if filter.Purpose != "" {
		q = q.Where("purpose = ?", filter.Purpose)
	}
	if filter.Featured != nil {
		q = q.Where("featured = ?", *filter.Featured)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var results []*models.Listing
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	if results == nil {
		results = []*models.Listing{}
	}
	return results, nil
}

func (s *GORMStore) CreateListing(ctx context.Context, listing *models.Listing) (string, error) {
	listing.CreatedAt = time.Now()
	return createWithID(s.db, ctx, listing, func(l *models.Listing, id string) { l.ID = id }, listing.ID, models.ErrDuplicateListing)
}

func (s *GORMStore) UpdateListing(ctx context.Context, listing *models.Listing) error {
	var existing models.Listing
	if err := s.db.WithContext(ctx).Where("id = ?", listing.ID).First(&existing).Error; err != nil {
		return convertNotFoundError(err, models.ErrListingNotFound)
	}

	return s.db.WithContext(ctx).
		Model(&existing).
		Select("Title", "Description", "Purpose", "Price", "Address",
			"Bedrooms", "Bathrooms", "ParkingSpots", "AreaM2", "Featured",
			"NeighborhoodID", "PropertyTypeID").
		Updates(listing).Error
}

func (s *GORMStore) DeleteListing(ctx context.Context, id string) error {
	// Photos go first so no orphan metadata rows survive the listing.
	if err := s.db.WithContext(ctx).Where("listing_id = ?", id).Delete(&models.Photo{}).Error; err != nil {
		return err
	}
	return deleteByField[models.Listing](s.db, ctx, "id", id, models.ErrListingNotFound)
}
