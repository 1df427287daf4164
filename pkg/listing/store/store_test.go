package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/morada-labs/morada/pkg/listing/models"
)

// createTestStore creates an in-memory SQLite store for testing.
func createTestStore(t *testing.T) *GORMStore {
	t.Helper()
	store, err := New(&Config{
		Type: DatabaseTypeSQLite,
		SQLite: SQLiteConfig{
			Path: ":memory:",
		},
	})
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	return store
}

func TestNew(t *testing.T) {
	t.Run("default config uses sqlite", func(t *testing.T) {
		config := &Config{}
		config.ApplyDefaults()

		if config.Type != DatabaseTypeSQLite {
			t.Errorf("expected SQLite, got %s", config.Type)
		}
	})

	t.Run("invalid config returns error", func(t *testing.T) {
		config := &Config{
			Type: "invalid",
		}
		_, err := New(config)
		if err == nil {
			t.Error("expected error for invalid config")
		}
	})

	t.Run("creates in-memory store", func(t *testing.T) {
		store := createTestStore(t)
		defer store.Close()

		if err := store.Ping(context.Background()); err != nil {
			t.Errorf("ping failed: %v", err)
		}
	})
}

func TestUserOperations(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()
	ctx := context.Background()

	t.Run("create user", func(t *testing.T) {
		user := &models.User{
			Name:         "Test User",
			Email:        "test@example.com",
			PasswordHash: "$2a$10$fakehashfakehashfakehash",
			Role:         "agent",
		}

		id, err := store.CreateUser(ctx, user)
		if err != nil {
			t.Fatalf("failed to create user: %v", err)
		}
		if id == "" {
			t.Error("expected non-empty user ID")
		}
	})

	t.Run("duplicate email fails", func(t *testing.T) {
		user := &models.User{
			Name:         "Other User",
			Email:        "test@example.com",
			PasswordHash: "x",
		}

		_, err := store.CreateUser(ctx, user)
		if !errors.Is(err, models.ErrDuplicateUser) {
			t.Errorf("expected ErrDuplicateUser, got %v", err)
		}
	})

	t.Run("get user by email", func(t *testing.T) {
		user, err := store.GetUserByEmail(ctx, "test@example.com")
		if err != nil {
			t.Fatalf("failed to get user: %v", err)
		}
		if user.Name != "Test User" {
			t.Errorf("expected name 'Test User', got %q", user.Name)
		}
	})

	t.Run("get user not found", func(t *testing.T) {
		_, err := store.GetUserByEmail(ctx, "nobody@example.com")
		if !errors.Is(err, models.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("update user", func(t *testing.T) {
		user, _ := store.GetUserByEmail(ctx, "test@example.com")
		user.Phone = "+55 11 99999-0000"

		if err := store.UpdateUser(ctx, user); err != nil {
			t.Fatalf("failed to update user: %v", err)
		}

		updated, _ := store.GetUserByEmail(ctx, "test@example.com")
		if updated.Phone != "+55 11 99999-0000" {
			t.Errorf("expected updated phone, got %q", updated.Phone)
		}
	})

	t.Run("update last login", func(t *testing.T) {
		now := time.Now()
		if err := store.UpdateLastLogin(ctx, "test@example.com", now); err != nil {
			t.Fatalf("failed to update last login: %v", err)
		}

		user, _ := store.GetUserByEmail(ctx, "test@example.com")
		if user.LastLogin == nil {
			t.Fatal("expected last login to be set")
		}
	})

	t.Run("delete user", func(t *testing.T) {
		if err := store.DeleteUser(ctx, "test@example.com"); err != nil {
			t.Fatalf("failed to delete user: %v", err)
		}
		_, err := store.GetUserByEmail(ctx, "test@example.com")
		if !errors.Is(err, models.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound after delete, got %v", err)
		}
	})
}

func TestValidateCredentials(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()
	ctx := context.Background()

	hash, err := models.HashPassword("secret-password")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	if _, err := store.CreateUser(ctx, &models.User{
		Name:         "Hashed",
		Email:        "hashed@example.com",
		PasswordHash: hash,
	}); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	if _, err := store.CreateUser(ctx, &models.User{
		Name:         "Legacy",
		Email:        "legacy@example.com",
		PasswordHash: "legacy-plaintext",
	}); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	t.Run("valid bcrypt credentials", func(t *testing.T) {
		user, err := store.ValidateCredentials(ctx, "hashed@example.com", "secret-password")
		if err != nil {
			t.Fatalf("expected valid credentials, got %v", err)
		}
		if user.Email != "hashed@example.com" {
			t.Errorf("unexpected user %q", user.Email)
		}
	})

	t.Run("valid legacy plaintext credentials", func(t *testing.T) {
		if _, err := store.ValidateCredentials(ctx, "legacy@example.com", "legacy-plaintext"); err != nil {
			t.Fatalf("expected legacy credentials to validate, got %v", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := store.ValidateCredentials(ctx, "hashed@example.com", "wrong")
		if !errors.Is(err, models.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown user collapses to invalid credentials", func(t *testing.T) {
		_, err := store.ValidateCredentials(ctx, "ghost@example.com", "whatever")
		if !errors.Is(err, models.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestListingOperations(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()
	ctx := context.Background()

	nID, err := store.CreateNeighborhood(ctx, &models.Neighborhood{Name: "Centro", City: "Campinas"})
	if err != nil {
		t.Fatalf("failed to create neighborhood: %v", err)
	}
	tID, err := store.CreatePropertyType(ctx, &models.PropertyType{Name: "Apartment"})
	if err != nil {
		t.Fatalf("failed to create property type: %v", err)
	}

	listing := &models.Listing{
		Title:          "Two bedroom apartment",
		Purpose:        "sale",
		Price:          350000,
		Bedrooms:       2,
		NeighborhoodID: nID,
		PropertyTypeID: tID,
		OwnerID:        "owner-1",
	}

	t.Run("create and get listing", func(t *testing.T) {
		id, err := store.CreateListing(ctx, listing)
		if err != nil {
			t.Fatalf("failed to create listing: %v", err)
		}

		got, err := store.GetListing(ctx, id)
		if err != nil {
			t.Fatalf("failed to get listing: %v", err)
		}
		if got.Neighborhood == nil || got.Neighborhood.Name != "Centro" {
			t.Error("expected neighborhood to be preloaded")
		}
		if got.PropertyType == nil || got.PropertyType.Name != "Apartment" {
			t.Error("expected property type to be preloaded")
		}
	})

	t.Run("filter by purpose", func(t *testing.T) {
		if _, err := store.CreateListing(ctx, &models.Listing{
			Title:          "Rental house",
			Purpose:        "rent",
			Price:          2500,
			NeighborhoodID: nID,
			PropertyTypeID: tID,
		}); err != nil {
			t.Fatalf("failed to create listing: %v", err)
		}

		results, err := store.ListListings(ctx, models.ListingFilter{Purpose: "rent"})
		if err != nil {
			t.Fatalf("failed to list listings: %v", err)
		}
		if len(results) != 1 {
			t.Fatalf("expected 1 rental listing, got %d", len(results))
		}
		if results[0].Purpose != "rent" {
			t.Errorf("expected rent purpose, got %q", results[0].Purpose)
		}
	})

	t.Run("pagination", func(t *testing.T) {
		results, err := store.ListListings(ctx, models.ListingFilter{Limit: 1, Offset: 1})
		if err != nil {
			t.Fatalf("failed to list listings: %v", err)
		}
		if len(results) != 1 {
			t.Errorf("expected 1 listing with limit=1 offset=1, got %d", len(results))
		}
	})

	t.Run("update listing", func(t *testing.T) {
		listing.Price = 340000
		listing.Featured = true
		if err := store.UpdateListing(ctx, listing); err != nil {
			t.Fatalf("failed to update listing: %v", err)
		}

		got, _ := store.GetListing(ctx, listing.ID)
		if got.Price != 340000 {
			t.Errorf("expected price 340000, got %v", got.Price)
		}

		featured := true
		results, _ := store.ListListings(ctx, models.ListingFilter{Featured: &featured})
		if len(results) != 1 {
			t.Errorf("expected 1 featured listing, got %d", len(results))
		}
	})

	t.Run("delete listing removes photos", func(t *testing.T) {
		photoID, err := store.CreatePhoto(ctx, &models.Photo{
			ListingID: listing.ID,
			FileName:  "front.jpg",
			Path:      "/photos/front.jpg",
		})
		if err != nil {
			t.Fatalf("failed to create photo: %v", err)
		}

		if err := store.DeleteListing(ctx, listing.ID); err != nil {
			t.Fatalf("failed to delete listing: %v", err)
		}

		if _, err := store.GetPhoto(ctx, photoID); !errors.Is(err, models.ErrPhotoNotFound) {
			t.Errorf("expected photo to be deleted with listing, got %v", err)
		}
	})

	t.Run("get listing not found", func(t *testing.T) {
		_, err := store.GetListing(ctx, "nonexistent")
		if !errors.Is(err, models.ErrListingNotFound) {
			t.Errorf("expected ErrListingNotFound, got %v", err)
		}
	})
}

func TestPhotoOperations(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()
	ctx := context.Background()

	listingID, err := store.CreateListing(ctx, &models.Listing{
		Title:   "Photo host",
		Purpose: "sale",
		Price:   1,
	})
	if err != nil {
		t.Fatalf("failed to create listing: %v", err)
	}

	t.Run("photo requires existing listing", func(t *testing.T) {
		_, err := store.CreatePhoto(ctx, &models.Photo{
			ListingID: "nonexistent",
			FileName:  "x.jpg",
			Path:      "/x.jpg",
		})
		if !errors.Is(err, models.ErrListingNotFound) {
			t.Errorf("expected ErrListingNotFound, got %v", err)
		}
	})

	t.Run("set cover clears siblings", func(t *testing.T) {
		first, err := store.CreatePhoto(ctx, &models.Photo{
			ListingID: listingID, FileName: "a.jpg", Path: "/a.jpg", Cover: true, Position: 0,
		})
		if err != nil {
			t.Fatalf("failed to create photo: %v", err)
		}
		second, err := store.CreatePhoto(ctx, &models.Photo{
			ListingID: listingID, FileName: "b.jpg", Path: "/b.jpg", Position: 1,
		})
		if err != nil {
			t.Fatalf("failed to create photo: %v", err)
		}

		if err := store.SetCoverPhoto(ctx, listingID, second); err != nil {
			t.Fatalf("failed to set cover: %v", err)
		}

		photos, err := store.ListPhotos(ctx, listingID)
		if err != nil {
			t.Fatalf("failed to list photos: %v", err)
		}
		for _, p := range photos {
			switch p.ID {
			case first:
				if p.Cover {
					t.Error("expected first photo cover flag cleared")
				}
			case second:
				if !p.Cover {
					t.Error("expected second photo to be cover")
				}
			}
		}
	})

	t.Run("set cover on foreign photo fails", func(t *testing.T) {
		err := store.SetCoverPhoto(ctx, "other-listing", "nope")
		if !errors.Is(err, models.ErrPhotoNotFound) {
			t.Errorf("expected ErrPhotoNotFound, got %v", err)
		}
	})
}

func TestCatalogOperations(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()
	ctx := context.Background()

	t.Run("duplicate neighborhood name fails", func(t *testing.T) {
		if _, err := store.CreateNeighborhood(ctx, &models.Neighborhood{Name: "Cambuí"}); err != nil {
			t.Fatalf("failed to create neighborhood: %v", err)
		}
		_, err := store.CreateNeighborhood(ctx, &models.Neighborhood{Name: "Cambuí"})
		if !errors.Is(err, models.ErrDuplicateNeighborhood) {
			t.Errorf("expected ErrDuplicateNeighborhood, got %v", err)
		}
	})

	t.Run("property type crud", func(t *testing.T) {
		id, err := store.CreatePropertyType(ctx, &models.PropertyType{Name: "House"})
		if err != nil {
			t.Fatalf("failed to create property type: %v", err)
		}

		got, err := store.GetPropertyType(ctx, id)
		if err != nil {
			t.Fatalf("failed to get property type: %v", err)
		}

		got.Name = "Townhouse"
		if err := store.UpdatePropertyType(ctx, got); err != nil {
			t.Fatalf("failed to update property type: %v", err)
		}

		if err := store.DeletePropertyType(ctx, id); err != nil {
			t.Fatalf("failed to delete property type: %v", err)
		}
		if _, err := store.GetPropertyType(ctx, id); !errors.Is(err, models.ErrPropertyTypeNotFound) {
			t.Errorf("expected ErrPropertyTypeNotFound, got %v", err)
		}
	})
}
