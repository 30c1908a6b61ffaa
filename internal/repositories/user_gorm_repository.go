package repositories

import (
	"context"

	"lifeshare/internal/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create inserts a new user. The unique index on username is the only
// duplicate check, so concurrent registrations cannot both succeed.
func (r *GORMUserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.Wrapf(models.ErrConflict, "username '%s' already taken", user.Username)
		}
		return errors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByUsername retrieves a user by their username from the database.
func (r *GORMUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Errorf("user with username %s not found", username)
		}
		return nil, errors.Wrapf(err, "failed to get user by username %s", username)
	}
	return &user, nil
}

// DeleteCascade deletes in dependency order: comments, likes, stories, user.
// Likes and comments other users left on the deleted stories are kept.
func (r *GORMUserRepository) DeleteCascade(ctx context.Context, username string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("username = ?", username).Delete(&models.Comment{}).Error; err != nil {
			return errors.Wrap(err, "failed to delete comments")
		}
		if err := tx.Where("username = ?", username).Delete(&models.Like{}).Error; err != nil {
			return errors.Wrap(err, "failed to delete likes")
		}
		if err := tx.Where("username = ?", username).Delete(&models.Story{}).Error; err != nil {
			return errors.Wrap(err, "failed to delete stories")
		}
		if err := tx.Where("username = ?", username).Delete(&models.User{}).Error; err != nil {
			return errors.Wrap(err, "failed to delete user")
		}
		return nil
	})
}
