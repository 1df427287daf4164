package store

import (
	"context"
	"errors"
	"time"

	"github.com/morada-labs/morada/pkg/listing/models"
)

// ============================================
// USER OPERATIONS
// ============================================

func (s *GORMStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return getByField[models.User](s.db, ctx, "email", email, models.ErrUserNotFound)
}

func (s *GORMStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return getByField[models.User](s.db, ctx, "id", id, models.ErrUserNotFound)
}

func (s *GORMStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	return listAll[models.User](s.db, ctx)
}

func (s *GORMStore) CreateUser(ctx context.Context, user *models.User) (string, error) {
	user.CreatedAt = time.Now()
	return createWithID(s.db, ctx, user, func(u *models.User, id string) { u.ID = id }, user.ID, models.ErrDuplicateUser)
}

func (s *GORMStore) UpdateUser(ctx context.Context, user *models.User) error {
	var existing models.User
	if err := s.db.WithContext(ctx).Where("id = ?", user.ID).First(&existing).Error; err != nil {
		return convertNotFoundError(err, models.ErrUserNotFound)
	}

	err := s.db.WithContext(ctx).
		Model(&existing).
		Select("Name", "Email", "Role", "Phone").
		Updates(user).Error
	if isUniqueConstraintError(err) {
		return models.ErrDuplicateUser
	}
	return err
}

func (s *GORMStore) DeleteUser(ctx context.Context, email string) error {
	return deleteByField[models.User](s.db, ctx, "email", email, models.ErrUserNotFound)
}

// UpdatePassword replaces the stored secret for the given account.
// Callers hash the new password first; this never stores plaintext.
func (s *GORMStore) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	result := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email).
		Update("password_hash", passwordHash)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

func (s *GORMStore) UpdateLastLogin(ctx context.Context, email string, timestamp time.Time) error {
	result := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email).
		Update("last_login", timestamp)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

// ValidateCredentials checks a login attempt. Unknown accounts and
// wrong passwords both come back as ErrInvalidCredentials so callers
// cannot tell the two apart.
func (s *GORMStore) ValidateCredentials(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}

	if !models.VerifyPassword(password, user.PasswordHash) {
		return nil, models.ErrInvalidCredentials
	}

	return user, nil
}
