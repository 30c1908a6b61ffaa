package services

import (
	"context"

	"lifeshare/internal/models"
	"lifeshare/internal/repositories"
	"lifeshare/pkg/logger"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// TrendingLimit is the number of stories on the trending list.
const TrendingLimit = 5

// StoryService handles business logic related to stories.
type StoryService struct {
	repo   repositories.StoryRepository
	events EventPublisher
}

// NewStoryService creates a new StoryService. events may be nil.
func NewStoryService(repo repositories.StoryRepository, events EventPublisher) *StoryService {
	return &StoryService{
		repo:   repo,
		events: events,
	}
}

// ListByCategory returns every story of the category with like counts and
// comments. Unknown categories give an empty list.
func (s *StoryService) ListByCategory(ctx context.Context, category string) ([]models.CategoryStory, error) {
	return s.repo.ListByCategory(ctx, category)
}

// AddStory stores a new story owned by username. Content is not validated.
func (s *StoryService) AddStory(ctx context.Context, username, category, content string) (*models.Story, error) {
	if username == "" {
		return nil, models.ErrAuthRequired
	}

	story := &models.Story{Username: username, Category: category, Content: content}
	if err := s.repo.Create(ctx, story); err != nil {
		return nil, err
	}

	publishEvent(s.events, models.StoryEvent{
		Type:     models.EventStoryCreated,
		Username: username,
		StoryID:  story.ID,
		Category: category,
	})
	return story, nil
}

// EditStory replaces the content of a story owned by username. Editing a
// missing story or someone else's story succeeds without effect.
func (s *StoryService) EditStory(ctx context.Context, username string, storyID uint, content string) error {
	if username == "" {
		return models.ErrAuthRequired
	}

	n, err := s.repo.UpdateContent(ctx, storyID, username, content)
	if err != nil {
		return err
	}
	if n == 0 {
		logger.Log.WithFields(logrus.Fields{"story_id": storyID, "username": username}).
			Debug("Story edit matched no owned story")
	}
	return nil
}

// DeleteStory deletes a story owned by username, with the same silent
// no-op on mismatch as EditStory. Likes and comments on the story are kept.
func (s *StoryService) DeleteStory(ctx context.Context, username string, storyID uint) error {
	if username == "" {
		return models.ErrAuthRequired
	}

	n, err := s.repo.DeleteOwned(ctx, storyID, username)
	if err != nil {
		return err
	}
	if n == 0 {
		logger.Log.WithFields(logrus.Fields{"story_id": storyID, "username": username}).
			Debug("Story delete matched no owned story")
	}
	return nil
}

// Trending returns the most liked stories, at most TrendingLimit of them.
func (s *StoryService) Trending(ctx context.Context) ([]models.StoryDetail, error) {
	stories, err := s.repo.Trending(ctx, TrendingLimit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load trending stories")
	}
	return stories, nil
}
