package services

import (
	"context"

	"lifeshare/internal/models"
	"lifeshare/internal/repositories"
	"lifeshare/pkg/logger"

	"github.com/sirupsen/logrus"
)

// CommentService handles business logic related to comments.
type CommentService struct {
	repo   repositories.CommentRepository
	events EventPublisher
}

// NewCommentService creates a new CommentService. events may be nil.
func NewCommentService(repo repositories.CommentRepository, events EventPublisher) *CommentService {
	return &CommentService{
		repo:   repo,
		events: events,
	}
}

// AddComment stores a comment by username on storyID and returns it.
// The story is not required to exist.
func (s *CommentService) AddComment(ctx context.Context, username string, storyID uint, text string) (*models.Comment, error) {
	if username == "" {
		return nil, models.ErrAuthRequired
	}

	comment := &models.Comment{StoryID: storyID, Username: username, Comment: text}
	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, err
	}

	publishEvent(s.events, models.StoryEvent{
		Type:      models.EventCommentAdded,
		Username:  username,
		StoryID:   storyID,
		CommentID: comment.ID,
	})
	return comment, nil
}

// DeleteComment deletes a comment written by username. Other users'
// comments are left untouched without an error.
func (s *CommentService) DeleteComment(ctx context.Context, username string, commentID uint) error {
	if username == "" {
		return models.ErrAuthRequired
	}

	n, err := s.repo.DeleteOwned(ctx, commentID, username)
	if err != nil {
		return err
	}
	if n == 0 {
		logger.Log.WithFields(logrus.Fields{"comment_id": commentID, "username": username}).
			Debug("Comment delete matched no owned comment")
	}
	return nil
}
