package repositories

import (
	"context"

	"lifeshare/internal/models"
)

// CommentRepository defines the interface for comment data access.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	DeleteOwned(ctx context.Context, id uint, username string) (int64, error)
}
