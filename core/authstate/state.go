package authstate

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/shelterops/authkit/core/logger"
	"github.com/shelterops/authkit/core/session"
	"github.com/shelterops/authkit/core/token"
)

// Reason explains why an auth-state change was published.
type Reason string

const (
	// ReasonLogin: a session appeared where there was none.
	ReasonLogin Reason = "login"

	// ReasonRefresh: an existing session was replaced with a fresh token pair.
	ReasonRefresh Reason = "refresh"

	// ReasonLogout: the user signed out.
	ReasonLogout Reason = "logout"

	// ReasonSessionExpired: a persisted session was already expired at startup.
	ReasonSessionExpired Reason = "session_expired"

	// ReasonRefreshFailed: forced logout after an unrecoverable refresh
	// failure. Subscribers should navigate to an unauthenticated entry point.
	ReasonRefreshFailed Reason = "refresh_failed"
)

// Change is a published auth-state transition.
type Change struct {
	Authenticated bool
	User          *session.User
	Reason        Reason
}

// subscriberBuffer is the per-subscriber channel depth. Slow subscribers drop
// changes rather than block session mutations.
const subscriberBuffer = 8

// State derives the canonical "am I logged in" signal from the session store.
// It recomputes on every read, so a token aging past its expiry flips the
// state without any store mutation.
type State struct {
	store  *session.Store
	logger *slog.Logger
	now    func() time.Time

	mu            sync.Mutex
	prevAuth      bool
	pendingReason Reason
	subs          map[chan Change]struct{}
}

// Option configures a State.
type Option func(*State)

// WithLogger configures structured logging. Logging is disabled by default.
func WithLogger(logger *slog.Logger) Option {
	return func(s *State) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source used for expiry checks.
// Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *State) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates the auth state over the given store and registers it as a
// watcher, so every save and clear republishes the derived state.
func New(store *session.Store, opts ...Option) *State {
	s := &State{
		store:  store,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
		subs:   make(map[chan Change]struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	store.Watch(s.onSessionChange)
	return s
}

// Init performs the one-time startup load: a still-valid persisted session
// survives the restart, an expired or malformed one is cleared so no stale
// session outlives its expiry.
func (s *State) Init(ctx context.Context) error {
	sess, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	if sess == nil {
		return nil
	}

	claims, err := token.Decode(sess.AccessToken)
	if err != nil || claims.IsExpired(s.now()) {
		s.logger.InfoContext(ctx, "persisted session expired, clearing",
			logger.Username(sess.User.Username))
		s.mu.Lock()
		s.pendingReason = ReasonSessionExpired
		s.mu.Unlock()
		return s.store.Clear(ctx)
	}

	s.mu.Lock()
	s.prevAuth = true
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "session restored",
		logger.Username(sess.User.Username))
	return nil
}

// IsAuthenticated reports whether a session exists and its access-token
// claims are not expired. Computed from the store on every call.
func (s *State) IsAuthenticated() bool {
	return s.authenticated(s.store.Current())
}

// CurrentUser returns the authenticated user projection, or nil when
// unauthenticated.
func (s *State) CurrentUser() *session.User {
	sess := s.store.Current()
	if !s.authenticated(sess) {
		return nil
	}
	user := sess.User
	return &user
}

// ForceLogout clears the session in response to an unrecoverable refresh
// failure and publishes ReasonRefreshFailed as the navigation signal.
func (s *State) ForceLogout(ctx context.Context) error {
	s.mu.Lock()
	s.pendingReason = ReasonRefreshFailed
	s.mu.Unlock()

	s.logger.WarnContext(ctx, "forced logout")
	return s.store.Clear(ctx)
}

// Subscribe returns a channel that receives every subsequent state change.
// Subscribers that fall behind drop changes instead of blocking the store.
func (s *State) Subscribe() <-chan Change {
	ch := make(chan Change, subscriberBuffer)

	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	return ch
}

// Unsubscribe removes and closes a channel returned by Subscribe.
func (s *State) Unsubscribe(ch <-chan Change) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for sub := range s.subs {
		if sub == ch {
			delete(s.subs, sub)
			close(sub)
			return
		}
	}
}

func (s *State) authenticated(sess *session.Session) bool {
	if sess == nil {
		return false
	}
	claims, err := token.Decode(sess.AccessToken)
	if err != nil {
		return false
	}
	return !claims.IsExpired(s.now())
}

// onSessionChange is the store watcher: it derives the change reason and
// fans the new state out to subscribers.
func (s *State) onSessionChange(sess *session.Session) {
	authenticated := s.authenticated(sess)

	s.mu.Lock()
	reason := s.pendingReason
	s.pendingReason = ""
	if reason == "" {
		switch {
		case sess == nil:
			reason = ReasonLogout
		case s.prevAuth:
			reason = ReasonRefresh
		default:
			reason = ReasonLogin
		}
	}
	s.prevAuth = authenticated

	change := Change{Authenticated: authenticated, Reason: reason}
	if authenticated {
		user := sess.User
		change.User = &user
	}

	subs := make([]chan Change, 0, len(s.subs))
	for sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		select {
		case sub <- change:
		default:
			s.logger.Debug("dropping auth state change for slow subscriber",
				logger.Reason(string(reason)))
		}
	}
}
