package sessionstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix     = "lifeshare:revoked:"
	userKeyPrefix = "lifeshare:sessions:"
)

// RedisStore keeps revocations in Redis with the session's remaining
// lifetime as the key TTL, so every server instance sees them.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to addr, which is either a redis:// URL or a
// host:port pair, and verifies the connection.
func NewRedisStore(ctx context.Context, addr string) (*RedisStore, error) {
	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return NewRedisStoreFromClient(client), nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Revoke marks sessionID as revoked for ttl.
func (s *RedisStore) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, keyPrefix+sessionID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// Track adds sessionID to the set of username's sessions. The set lives
// as long as the newest session in it.
func (s *RedisStore) Track(ctx context.Context, username, sessionID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	key := userKeyPrefix + username
	pipe := s.client.TxPipeline()
	pipe.SAdd(ctx, key, sessionID)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to track session: %w", err)
	}
	return nil
}

// RevokeUser revokes every session tracked for username. The revocations
// last as long as the tracking set would have, which covers every member.
func (s *RedisStore) RevokeUser(ctx context.Context, username string) error {
	key := userKeyPrefix + username
	ids, err := s.client.SMembers(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}
	ttl, err := s.client.TTL(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to read session ttl: %w", err)
	}
	if ttl <= 0 {
		return nil
	}

	pipe := s.client.TxPipeline()
	for _, id := range ids {
		pipe.Set(ctx, keyPrefix+id, 1, ttl)
	}
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}
	return nil
}

// IsRevoked reports whether sessionID is currently revoked.
func (s *RedisStore) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, keyPrefix+sessionID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check session revocation: %w", err)
	}
	return n > 0, nil
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
