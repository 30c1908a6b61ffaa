package repositories

import (
	"context"

	"lifeshare/internal/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GORMStoryRepository is a GORM implementation of StoryRepository.
type GORMStoryRepository struct {
	db *gorm.DB
}

// NewGORMStoryRepository creates a new instance of GORMStoryRepository.
func NewGORMStoryRepository(db *gorm.DB) *GORMStoryRepository {
	return &GORMStoryRepository{
		db: db,
	}
}

// Create inserts a new story.
func (r *GORMStoryRepository) Create(ctx context.Context, story *models.Story) error {
	if err := r.db.WithContext(ctx).Create(story).Error; err != nil {
		return errors.Wrap(err, "failed to create story")
	}
	return nil
}

type storyLikeCount struct {
	StoryID uint
	Total   int64
}

// ListByCategory returns the stories of an exact category in id order with
// their like counts and comments. It issues three queries regardless of the
// number of stories.
func (r *GORMStoryRepository) ListByCategory(ctx context.Context, category string) ([]models.CategoryStory, error) {
	db := r.db.WithContext(ctx)

	var stories []models.Story
	if err := db.Where("category = ?", category).Order("id ASC").Find(&stories).Error; err != nil {
		return nil, errors.Wrapf(err, "failed to list stories in category %s", category)
	}
	if len(stories) == 0 {
		return []models.CategoryStory{}, nil
	}

	ids := make([]uint, len(stories))
	for i, s := range stories {
		ids[i] = s.ID
	}

	var counts []storyLikeCount
	if err := db.Model(&models.Like{}).
		Select("story_id, COUNT(*) AS total").
		Where("story_id IN ?", ids).
		Group("story_id").
		Scan(&counts).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count likes")
	}
	likesByStory := make(map[uint]int64, len(counts))
	for _, c := range counts {
		likesByStory[c.StoryID] = c.Total
	}

	var comments []models.Comment
	if err := db.Where("story_id IN ?", ids).Order("id ASC").Find(&comments).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list comments")
	}
	commentsByStory := make(map[uint][]models.Comment, len(stories))
	for _, c := range comments {
		commentsByStory[c.StoryID] = append(commentsByStory[c.StoryID], c)
	}

	details := make([]models.CategoryStory, len(stories))
	for i, s := range stories {
		storyComments := commentsByStory[s.ID]
		if storyComments == nil {
			storyComments = []models.Comment{}
		}
		details[i] = models.CategoryStory{
			StoryDetail: models.StoryDetail{Story: s, Likes: likesByStory[s.ID]},
			Comments:    storyComments,
		}
	}
	return details, nil
}

// UpdateContent changes the content of a story owned by username.
func (r *GORMStoryRepository) UpdateContent(ctx context.Context, id uint, username, content string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Story{}).
		Where("id = ? AND username = ?", id, username).
		Update("content", content)
	if res.Error != nil {
		return 0, errors.Wrapf(res.Error, "failed to update story %d", id)
	}
	return res.RowsAffected, nil
}

// DeleteOwned deletes a story owned by username. Its likes and comments
// are left in place.
func (r *GORMStoryRepository) DeleteOwned(ctx context.Context, id uint, username string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND username = ?", id, username).Delete(&models.Story{})
	if res.Error != nil {
		return 0, errors.Wrapf(res.Error, "failed to delete story %d", id)
	}
	return res.RowsAffected, nil
}

// Trending returns up to limit stories ordered by like count, most liked
// first. Ties are broken by story id.
func (r *GORMStoryRepository) Trending(ctx context.Context, limit int) ([]models.StoryDetail, error) {
	var stories []models.StoryDetail
	err := r.db.WithContext(ctx).
		Table("stories").
		Select("stories.id, stories.username, stories.category, stories.content, COUNT(likes.id) AS like_count").
		Joins("LEFT JOIN likes ON likes.story_id = stories.id").
		Group("stories.id, stories.username, stories.category, stories.content").
		Order("like_count DESC, stories.id ASC").
		Limit(limit).
		Scan(&stories).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to query trending stories")
	}
	return stories, nil
}
