package repositories

import (
	"context"

	"lifeshare/internal/models"
)

// LikeRepository defines the interface for like data access.
type LikeRepository interface {
	Toggle(ctx context.Context, storyID uint, username string) (*models.LikeResult, error)
}
