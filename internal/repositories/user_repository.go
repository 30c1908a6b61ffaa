package repositories

import (
	"context"

	"lifeshare/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// DeleteCascade removes the user's comments, likes and stories, then the
	// user row, as a single transaction.
	DeleteCascade(ctx context.Context, username string) error
}
