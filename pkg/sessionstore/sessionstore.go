// Package sessionstore records revoked session ids until the sessions
// they belong to would have expired anyway.
package sessionstore

import (
	"context"
	"sync"
	"time"
)

// Store is a revocation list of session ids. Sessions registered with
// Track can also be revoked all at once per user.
type Store interface {
	Track(ctx context.Context, username, sessionID string, ttl time.Duration) error
	Revoke(ctx context.Context, sessionID string, ttl time.Duration) error
	RevokeUser(ctx context.Context, username string) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

// MemoryStore keeps revocations in process. It is only correct when a
// single server instance runs; use RedisStore otherwise.
type MemoryStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	// username -> session id -> expiry
	sessions map[string]map[string]time.Time
	now      func() time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		revoked:  make(map[string]time.Time),
		sessions: make(map[string]map[string]time.Time),
		now:      time.Now,
	}
}

// Track records that sessionID belongs to username for ttl.
func (s *MemoryStore) Track(_ context.Context, username, sessionID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)
	owned, ok := s.sessions[username]
	if !ok {
		owned = make(map[string]time.Time)
		s.sessions[username] = owned
	}
	owned[sessionID] = now.Add(ttl)
	return nil
}

// Revoke marks sessionID as revoked for ttl. Expired entries are swept on
// each call.
func (s *MemoryStore) Revoke(_ context.Context, sessionID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)
	s.revoked[sessionID] = now.Add(ttl)
	return nil
}

// RevokeUser revokes every live session tracked for username.
func (s *MemoryStore) RevokeUser(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, exp := range s.sessions[username] {
		if now.Before(exp) {
			s.revoked[id] = exp
		}
	}
	delete(s.sessions, username)
	return nil
}

// IsRevoked reports whether sessionID is currently revoked.
func (s *MemoryStore) IsRevoked(_ context.Context, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exp, ok := s.revoked[sessionID]
	return ok && s.now().Before(exp), nil
}

// sweep drops expired entries. Callers hold mu.
func (s *MemoryStore) sweep(now time.Time) {
	for id, exp := range s.revoked {
		if !now.Before(exp) {
			delete(s.revoked, id)
		}
	}
	for username, owned := range s.sessions {
		for id, exp := range owned {
			if !now.Before(exp) {
				delete(owned, id)
			}
		}
		if len(owned) == 0 {
			delete(s.sessions, username)
		}
	}
}
