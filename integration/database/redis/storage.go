package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shelterops/authkit/core/session"
)

// defaultSessionKey is where the session blob lives when no key is given.
const defaultSessionKey = "authkit:session"

// SessionStorage persists the session blob under a single Redis key,
// implementing session.Storage. Useful when several processes share one
// identity, e.g. a CLI fleet or a kiosk deployment.
type SessionStorage struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// SessionStorageOption configures a SessionStorage.
type SessionStorageOption func(*SessionStorage)

// WithKey overrides the Redis key the session blob is stored under.
func WithKey(key string) SessionStorageOption {
	return func(s *SessionStorage) {
		if key != "" {
			s.key = key
		}
	}
}

// WithTTL sets an expiry on the stored blob, typically aligned with the
// refresh token lifetime. Zero means no expiry.
func WithTTL(ttl time.Duration) SessionStorageOption {
	return func(s *SessionStorage) {
		s.ttl = ttl
	}
}

// NewSessionStorage creates Redis-backed session storage over an existing
// client.
func NewSessionStorage(client *redis.Client, opts ...SessionStorageOption) *SessionStorage {
	s := &SessionStorage{
		client: client,
		key:    defaultSessionKey,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the stored blob or session.ErrNotFound when the key is absent
// or has expired.
func (s *SessionStorage) Get(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, session.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Set stores the blob, refreshing the TTL when one is configured.
func (s *SessionStorage) Set(ctx context.Context, data []byte) error {
	return s.client.Set(ctx, s.key, data, s.ttl).Err()
}

// Delete removes the blob. Deleting an absent key is not an error.
func (s *SessionStorage) Delete(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}
