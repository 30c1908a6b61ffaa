package repositories

import (
	"context"

	"lifeshare/internal/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMLikeRepository is a GORM implementation of LikeRepository.
type GORMLikeRepository struct {
	db *gorm.DB
}

// NewGORMLikeRepository creates a new instance of GORMLikeRepository.
func NewGORMLikeRepository(db *gorm.DB) *GORMLikeRepository {
	return &GORMLikeRepository{
		db: db,
	}
}

// Toggle flips whether username likes storyID and returns the new state
// with the story's like count, all in one transaction.
//
// The delete runs first: removing a row means the story was liked. When
// nothing was removed the insert ignores a unique conflict, because a
// conflicting row means the same user already likes the story.
func (r *GORMLikeRepository) Toggle(ctx context.Context, storyID uint, username string) (*models.LikeResult, error) {
	result := &models.LikeResult{}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("story_id = ? AND username = ?", storyID, username).Delete(&models.Like{})
		if res.Error != nil {
			return errors.Wrap(res.Error, "failed to remove like")
		}

		if res.RowsAffected == 0 {
			like := models.Like{StoryID: storyID, Username: username}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
				return errors.Wrap(err, "failed to add like")
			}
			result.Liked = true
		}

		if err := tx.Model(&models.Like{}).Where("story_id = ?", storyID).Count(&result.Likes).Error; err != nil {
			return errors.Wrap(err, "failed to count likes")
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to toggle like on story %d", storyID)
	}
	return result, nil
}
