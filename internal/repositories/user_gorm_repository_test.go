package repositories_test

import (
	"context"
	"testing"

	"lifeshare/internal/models"
	"lifeshare/internal/repositories"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGORMUserRepository_CreateDuplicate(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMUserRepository(db)
	ctx := context.Background()

	first := &models.User{Username: "alice", PasswordHash: "hash-1"}
	require.NoError(t, repo.Create(ctx, first))
	assert.NotZero(t, first.ID)

	err := repo.Create(ctx, &models.User{Username: "alice", PasswordHash: "hash-2"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrConflict))
	assert.Contains(t, err.Error(), "username 'alice' already taken")

	stored, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "hash-1", stored.PasswordHash)
}

func TestGORMUserRepository_GetByUsernameNotFound(t *testing.T) {
	repo := repositories.NewGORMUserRepository(newTestDB(t))

	user, err := repo.GetByUsername(context.Background(), "nobody")
	assert.Nil(t, user)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestGORMUserRepository_DeleteCascade(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	users := repositories.NewGORMUserRepository(db)
	stories := repositories.NewGORMStoryRepository(db)
	likes := repositories.NewGORMLikeRepository(db)
	comments := repositories.NewGORMCommentRepository(db)

	require.NoError(t, users.Create(ctx, &models.User{Username: "alice", PasswordHash: "x"}))
	require.NoError(t, users.Create(ctx, &models.User{Username: "bob", PasswordHash: "y"}))

	aliceStory := &models.Story{Username: "alice", Category: "life", Content: "hello"}
	bobStory := &models.Story{Username: "bob", Category: "life", Content: "hi"}
	require.NoError(t, stories.Create(ctx, aliceStory))
	require.NoError(t, stories.Create(ctx, bobStory))

	_, err := likes.Toggle(ctx, bobStory.ID, "alice")
	require.NoError(t, err)
	_, err = likes.Toggle(ctx, aliceStory.ID, "bob")
	require.NoError(t, err)
	require.NoError(t, comments.Create(ctx, &models.Comment{StoryID: bobStory.ID, Username: "alice", Comment: "nice"}))
	require.NoError(t, comments.Create(ctx, &models.Comment{StoryID: aliceStory.ID, Username: "bob", Comment: "cool"}))

	require.NoError(t, users.DeleteCascade(ctx, "alice"))

	_, err = users.GetByUsername(ctx, "alice")
	assert.Error(t, err)

	listed, err := stories.ListByCategory(ctx, "life")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, bobStory.ID, listed[0].ID)
	assert.Equal(t, int64(0), listed[0].Likes, "alice's like on bob's story is gone")
	assert.Empty(t, listed[0].Comments, "alice's comment on bob's story is gone")

	// Bob's like and comment on alice's deleted story stay behind as orphans.
	var orphanLikes, orphanComments int64
	require.NoError(t, db.Model(&models.Like{}).Where("story_id = ?", aliceStory.ID).Count(&orphanLikes).Error)
	require.NoError(t, db.Model(&models.Comment{}).Where("story_id = ?", aliceStory.ID).Count(&orphanComments).Error)
	assert.Equal(t, int64(1), orphanLikes)
	assert.Equal(t, int64(1), orphanComments)

	_, err = users.GetByUsername(ctx, "bob")
	assert.NoError(t, err)
}

func TestGORMUserRepository_DeleteCascadeRollsBack(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	users := repositories.NewGORMUserRepository(db)
	stories := repositories.NewGORMStoryRepository(db)
	likes := repositories.NewGORMLikeRepository(db)
	comments := repositories.NewGORMCommentRepository(db)

	require.NoError(t, users.Create(ctx, &models.User{Username: "alice", PasswordHash: "x"}))
	story := &models.Story{Username: "alice", Category: "life", Content: "hello"}
	require.NoError(t, stories.Create(ctx, story))
	_, err := likes.Toggle(ctx, story.ID, "alice")
	require.NoError(t, err)
	require.NoError(t, comments.Create(ctx, &models.Comment{StoryID: story.ID, Username: "alice", Comment: "mine"}))

	// The user delete runs last; without its table it fails after the
	// comment, like and story deletes have already run.
	require.NoError(t, db.Migrator().DropTable(&models.User{}))

	err = users.DeleteCascade(ctx, "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to delete user")

	var storyCount, likeCount, commentCount int64
	require.NoError(t, db.Model(&models.Story{}).Count(&storyCount).Error)
	require.NoError(t, db.Model(&models.Like{}).Count(&likeCount).Error)
	require.NoError(t, db.Model(&models.Comment{}).Count(&commentCount).Error)
	assert.Equal(t, int64(1), storyCount)
	assert.Equal(t, int64(1), likeCount)
	assert.Equal(t, int64(1), commentCount)
}
