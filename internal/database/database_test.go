package database

import (
	"path/filepath"
	"testing"

	"lifeshare/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAndMigrate_SQLite(t *testing.T) {
	db, err := Open("sqlite", filepath.Join(t.TempDir(), "lifeshare.db"))
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	for _, table := range []string{"users", "stories", "likes", "comments"} {
		assert.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}
	assert.True(t, db.Migrator().HasIndex(&models.Like{}, "idx_likes_story_user"))

	// Migrating twice is a no-op.
	assert.NoError(t, Migrate(db))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open("oracle", "whatever")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "app.db?_busy_timeout=5000", sqliteDSN("app.db"))
	assert.Equal(t, "file:app.db?cache=shared&_busy_timeout=5000", sqliteDSN("file:app.db?cache=shared"))
	assert.Equal(t, "app.db?_busy_timeout=100", sqliteDSN("app.db?_busy_timeout=100"))
}
