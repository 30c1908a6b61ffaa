package repositories_test

import (
	"path/filepath"
	"testing"

	"lifeshare/internal/database"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens a migrated SQLite database private to the test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}
