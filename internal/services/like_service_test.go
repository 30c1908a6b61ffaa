package services_test

import (
	"context"
	"fmt"
	"testing"

	"lifeshare/internal/models"
	"lifeshare/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestLikeService_ToggleLike(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLikeRepository)
	events := new(MockEventPublisher)
	service := services.NewLikeService(mockRepo, events)

	// Test like
	mockRepo.On("Toggle", ctx, uint(5), "alice").Return(&models.LikeResult{Likes: 1, Liked: true}, nil).Once()
	events.On("PublishStoryEvent", mock.MatchedBy(func(e models.StoryEvent) bool {
		return e.Type == models.EventStoryLiked && e.StoryID == 5 && e.Likes == 1
	})).Return(nil).Once()

	result, err := service.ToggleLike(ctx, "alice", 5)
	assert.NoError(t, err)
	assert.Equal(t, &models.LikeResult{Likes: 1, Liked: true}, result)

	// Test unlike
	mockRepo.On("Toggle", ctx, uint(5), "alice").Return(&models.LikeResult{Likes: 0, Liked: false}, nil).Once()
	events.On("PublishStoryEvent", eventOfType(models.EventStoryUnliked)).Return(nil).Once()

	result, err = service.ToggleLike(ctx, "alice", 5)
	assert.NoError(t, err)
	assert.Equal(t, &models.LikeResult{Likes: 0, Liked: false}, result)
	mockRepo.AssertExpectations(t)
	events.AssertExpectations(t)

	// Test repository failure publishes nothing
	mockRepo.On("Toggle", ctx, uint(6), "alice").Return(nil, fmt.Errorf("database error")).Once()
	_, err = service.ToggleLike(ctx, "alice", 6)
	assert.Error(t, err)
	events.AssertNumberOfCalls(t, "PublishStoryEvent", 2)

	// Test missing identity
	_, err = service.ToggleLike(ctx, "", 5)
	assert.Equal(t, models.ErrAuthRequired, err)
	mockRepo.AssertNumberOfCalls(t, "Toggle", 3)
}
