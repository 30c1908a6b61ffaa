package repositories

import (
	"context"

	"lifeshare/internal/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GORMCommentRepository is a GORM implementation of CommentRepository.
type GORMCommentRepository struct {
	db *gorm.DB
}

// NewGORMCommentRepository creates a new instance of GORMCommentRepository.
func NewGORMCommentRepository(db *gorm.DB) *GORMCommentRepository {
	return &GORMCommentRepository{
		db: db,
	}
}

// Create inserts a comment and fills in its generated ID.
func (r *GORMCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return errors.Wrap(err, "failed to create comment")
	}
	return nil
}

// DeleteOwned deletes a comment written by username.
func (r *GORMCommentRepository) DeleteOwned(ctx context.Context, id uint, username string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND username = ?", id, username).Delete(&models.Comment{})
	if res.Error != nil {
		return 0, errors.Wrapf(res.Error, "failed to delete comment %d", id)
	}
	return res.RowsAffected, nil
}
