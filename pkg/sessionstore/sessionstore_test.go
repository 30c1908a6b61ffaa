package sessionstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_RevokeAndExpire(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }

	revoked, err := store.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "abc", time.Minute))
	revoked, err = store.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, revoked)

	now = now.Add(2 * time.Minute)
	revoked, err = store.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)

	// The next revoke sweeps the expired entry.
	require.NoError(t, store.Revoke(ctx, "def", time.Minute))
	assert.Len(t, store.revoked, 1)
}

func TestMemoryStore_IgnoresNonPositiveTTL(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Revoke(ctx, "abc", 0))
	revoked, err := store.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestMemoryStore_RevokeUser(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Track(ctx, "alice", "a-1", time.Hour))
	require.NoError(t, store.Track(ctx, "alice", "a-2", time.Hour))
	require.NoError(t, store.Track(ctx, "bob", "b-1", time.Hour))

	require.NoError(t, store.RevokeUser(ctx, "alice"))
	for _, id := range []string{"a-1", "a-2"} {
		revoked, err := store.IsRevoked(ctx, id)
		require.NoError(t, err)
		assert.True(t, revoked, id)
	}
	revoked, err := store.IsRevoked(ctx, "b-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	// Sessions started after the revocation are unaffected.
	require.NoError(t, store.Track(ctx, "alice", "a-3", time.Hour))
	revoked, err = store.IsRevoked(ctx, "a-3")
	require.NoError(t, err)
	assert.False(t, revoked)

	now = now.Add(2 * time.Hour)
	revoked, err = store.IsRevoked(ctx, "a-1")
	require.NoError(t, err)
	assert.False(t, revoked)
	require.NoError(t, store.Track(ctx, "carol", "c-1", time.Hour))
	assert.Len(t, store.sessions, 1)
	assert.Empty(t, store.revoked)
}

func TestRedisStore_RevokeUser(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	ctx := context.Background()
	store, err := NewRedisStore(ctx, mr.Addr())
	require.NoError(t, err)
	defer store.Close()

	// Nothing tracked is a no-op.
	require.NoError(t, store.RevokeUser(ctx, "alice"))

	require.NoError(t, store.Track(ctx, "alice", "a-1", time.Hour))
	require.NoError(t, store.Track(ctx, "alice", "a-2", time.Hour))
	require.NoError(t, store.Track(ctx, "bob", "b-1", time.Hour))

	require.NoError(t, store.RevokeUser(ctx, "alice"))
	for _, id := range []string{"a-1", "a-2"} {
		revoked, err := store.IsRevoked(ctx, id)
		require.NoError(t, err)
		assert.True(t, revoked, id)
	}
	revoked, err := store.IsRevoked(ctx, "b-1")
	require.NoError(t, err)
	assert.False(t, revoked)
	assert.False(t, mr.Exists(userKeyPrefix+"alice"))

	mr.FastForward(2 * time.Hour)
	revoked, err = store.IsRevoked(ctx, "a-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRedisStore_RevokeAndExpire(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	ctx := context.Background()
	store, err := NewRedisStore(ctx, mr.Addr())
	require.NoError(t, err)
	defer store.Close()

	revoked, err := store.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "abc", time.Hour))
	revoked, err = store.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.True(t, mr.Exists(keyPrefix+"abc"))

	mr.FastForward(2 * time.Hour)
	revoked, err = store.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestNewRedisStore_URLAndFailure(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	ctx := context.Background()
	store, err := NewRedisStore(ctx, "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	store.Close()

	_, err = NewRedisStore(ctx, "redis://%zz")
	assert.Error(t, err)

	// Addr must be read while the server is still running.
	addr := mr.Addr()
	mr.Close()
	_, err = NewRedisStore(ctx, addr)
	assert.Error(t, err)
}
