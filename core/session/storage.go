package session

import (
	"context"
	"sync"
)

// Storage persists the session as a single opaque blob under a fixed key.
// Implementations must be safe for concurrent use. Get returns ErrNotFound
// when no blob is present.
type Storage interface {
	Get(ctx context.Context) ([]byte, error)
	Set(ctx context.Context, data []byte) error
	Delete(ctx context.Context) error
}

// MemoryStorage is an in-process Storage implementation. It does not survive
// restarts; use FileStorage or the redis integration for persistent login.
type MemoryStorage struct {
	mu   sync.RWMutex
	blob []byte
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (s *MemoryStorage) Get(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.blob == nil {
		return nil, ErrNotFound
	}

	out := make([]byte, len(s.blob))
	copy(out, s.blob)
	return out, nil
}

func (s *MemoryStorage) Set(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blob = make([]byte, len(data))
	copy(s.blob, data)
	return nil
}

func (s *MemoryStorage) Delete(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blob = nil
	return nil
}
