package services

import (
	"context"

	"lifeshare/internal/models"
	"lifeshare/internal/repositories"
)

// LikeService toggles likes on stories.
type LikeService struct {
	repo   repositories.LikeRepository
	events EventPublisher
}

// NewLikeService creates a new LikeService. events may be nil.
func NewLikeService(repo repositories.LikeRepository, events EventPublisher) *LikeService {
	return &LikeService{
		repo:   repo,
		events: events,
	}
}

// ToggleLike likes the story if username does not like it yet and unlikes
// it otherwise, returning the new state and like count. Calling it twice
// restores the original state.
func (s *LikeService) ToggleLike(ctx context.Context, username string, storyID uint) (*models.LikeResult, error) {
	if username == "" {
		return nil, models.ErrAuthRequired
	}

	result, err := s.repo.Toggle(ctx, storyID, username)
	if err != nil {
		return nil, err
	}

	eventType := models.EventStoryUnliked
	if result.Liked {
		eventType = models.EventStoryLiked
	}
	publishEvent(s.events, models.StoryEvent{
		Type:     eventType,
		Username: username,
		StoryID:  storyID,
		Likes:    result.Likes,
	})
	return result, nil
}
