package repositories_test

import (
	"context"
	"sync"
	"testing"

	"lifeshare/internal/models"
	"lifeshare/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGORMLikeRepository_ToggleIsInvolution(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	likes := repositories.NewGORMLikeRepository(db)

	res, err := likes.Toggle(ctx, 1, "alice")
	require.NoError(t, err)
	assert.Equal(t, &models.LikeResult{Likes: 1, Liked: true}, res)

	res, err = likes.Toggle(ctx, 1, "bob")
	require.NoError(t, err)
	assert.Equal(t, &models.LikeResult{Likes: 2, Liked: true}, res)

	res, err = likes.Toggle(ctx, 1, "alice")
	require.NoError(t, err)
	assert.Equal(t, &models.LikeResult{Likes: 1, Liked: false}, res)

	res, err = likes.Toggle(ctx, 1, "alice")
	require.NoError(t, err)
	assert.Equal(t, &models.LikeResult{Likes: 2, Liked: true}, res)
}

func TestGORMLikeRepository_ConcurrentToggleSameUser(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	likes := repositories.NewGORMLikeRepository(db)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := likes.Toggle(ctx, 42, "alice")
			if err != nil {
				errs <- err
				return
			}
			if res.Likes > 1 {
				errs <- assert.AnError
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	var rows int64
	require.NoError(t, db.Model(&models.Like{}).Where("story_id = ? AND username = ?", 42, "alice").Count(&rows).Error)
	assert.LessOrEqual(t, rows, int64(1))
	// An even number of toggles leaves the story unliked.
	assert.Equal(t, int64(0), rows)
}

func TestGORMLikeRepository_UniqueIndexRejectsDuplicates(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Create(&models.Like{StoryID: 3, Username: "alice"}).Error)
	err := db.Create(&models.Like{StoryID: 3, Username: "alice"}).Error
	assert.Error(t, err)
}
