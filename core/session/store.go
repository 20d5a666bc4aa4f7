package session

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/shelterops/authkit/core/logger"
)

// Store owns the current session. It is the only component that reads or
// writes session data; everything else observes it through Current or Watch.
// A single long-lived Store instance is created at startup and injected into
// its consumers.
type Store struct {
	storage Storage
	logger  *slog.Logger

	mu       sync.RWMutex
	current  *Session
	watchers []func(*Session)
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger configures structured logging for the store.
// Logging is disabled by default.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates a session store backed by the given storage.
func NewStore(storage Storage, opts ...StoreOption) *Store {
	s := &Store{
		storage: storage,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Watch registers a callback invoked after every session mutation (save or
// clear). The callback receives the new session, or nil after a clear.
// Watchers must be registered before the store is shared across goroutines.
func (s *Store) Watch(fn func(*Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchers = append(s.watchers, fn)
}

// Save persists the full session atomically and notifies watchers.
// Incomplete sessions are rejected before anything touches storage.
func (s *Store) Save(ctx context.Context, sess Session) error {
	if err := sess.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return errors.Join(ErrSaveSession, err)
	}

	s.mu.Lock()
	if err := s.storage.Set(ctx, data); err != nil {
		s.mu.Unlock()
		return errors.Join(ErrSaveSession, err)
	}
	s.current = &sess
	watchers := s.watchers
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "session saved", logger.Username(sess.User.Username))

	for _, fn := range watchers {
		fn(s.Current())
	}
	return nil
}

// Load reads the persisted session from storage into the store. An absent
// blob yields (nil, nil). An unparsable blob is self-healing: the corrupt
// entry is deleted and Load returns (nil, nil) instead of failing.
// Load does not notify watchers; it is the startup initialization path.
func (s *Store) Load(ctx context.Context) (*Session, error) {
	data, err := s.storage.Get(ctx)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil || sess.Validate() != nil {
		s.logger.WarnContext(ctx, "clearing unparsable session blob")
		if derr := s.storage.Delete(ctx); derr != nil {
			return nil, errors.Join(ErrClearSession, derr)
		}
		return nil, nil
	}

	s.mu.Lock()
	s.current = &sess
	s.mu.Unlock()

	return s.Current(), nil
}

// Clear removes the persisted session and notifies watchers with nil.
// Clearing an already absent session is not an error.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	if err := s.storage.Delete(ctx); err != nil && !errors.Is(err, ErrNotFound) {
		s.mu.Unlock()
		return errors.Join(ErrClearSession, err)
	}
	s.current = nil
	watchers := s.watchers
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "session cleared")

	for _, fn := range watchers {
		fn(nil)
	}
	return nil
}

// Current returns a copy of the in-memory session, or nil when absent.
func (s *Store) Current() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil
	}
	sess := *s.current
	return &sess
}

// AccessToken returns the current access token, or "" when no session exists.
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return ""
	}
	return s.current.AccessToken
}

// RefreshToken returns the current refresh token, or "" when no session exists.
func (s *Store) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return ""
	}
	return s.current.RefreshToken
}
