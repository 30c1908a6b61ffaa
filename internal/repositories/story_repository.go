package repositories

import (
	"context"

	"lifeshare/internal/models"
)

// StoryRepository defines the interface for story data access.
//
// UpdateContent and DeleteOwned only touch rows owned by username and
// report how many rows changed; zero is not an error.
type StoryRepository interface {
	Create(ctx context.Context, story *models.Story) error
	ListByCategory(ctx context.Context, category string) ([]models.CategoryStory, error)
	UpdateContent(ctx context.Context, id uint, username, content string) (int64, error)
	DeleteOwned(ctx context.Context, id uint, username string) (int64, error)
	Trending(ctx context.Context, limit int) ([]models.StoryDetail, error)
}
