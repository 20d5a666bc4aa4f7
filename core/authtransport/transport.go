package authtransport

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/shelterops/authkit/core/logger"
	"github.com/shelterops/authkit/core/session"
)

// DefaultRefreshTimeout bounds a single refresh episode. A hung refresh call
// would otherwise stall every queued waiter indefinitely.
const DefaultRefreshTimeout = 30 * time.Second

// defaultSkipSuffixes are the credential-exchange endpoints that must never
// carry an Authorization header: attaching one is meaningless for login and
// register, and the refresh call carries only the refresh token in its body.
var defaultSkipSuffixes = []string{
	"/auth/login",
	"/auth/register",
	"/auth/refresh",
	"/auth/validate",
}

// Transport is an http.RoundTripper that decorates outgoing requests with the
// current bearer token and transparently retries a request once after a
// successful single-flight token refresh.
//
// Attachment is optimistic: a locally expired token is still attached, since
// expiry is advisory until the server actually rejects it. A 401 response
// triggers the refresh coordinator; a 403 is surfaced unchanged, because
// refreshing cannot fix an authorization problem.
type Transport struct {
	base   http.RoundTripper
	store  *session.Store
	coord  *coordinator
	skip   func(*http.Request) bool
	logger *slog.Logger
}

// Option configures a Transport.
type Option func(*Transport)

// WithBaseTransport sets the underlying round tripper.
// Defaults to http.DefaultTransport.
func WithBaseTransport(base http.RoundTripper) Option {
	return func(t *Transport) {
		if base != nil {
			t.base = base
		}
	}
}

// WithLogger configures structured logging. Logging is disabled by default.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Transport) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithSkipFunc replaces the unauthenticated-endpoint matcher entirely.
func WithSkipFunc(skip func(*http.Request) bool) Option {
	return func(t *Transport) {
		if skip != nil {
			t.skip = skip
		}
	}
}

// WithSkipPaths adds path suffixes to the default unauthenticated allow-list.
func WithSkipPaths(suffixes ...string) Option {
	return func(t *Transport) {
		t.skip = suffixMatcher(append(append([]string{}, defaultSkipSuffixes...), suffixes...))
	}
}

// WithRefreshTimeout bounds a refresh episode. A timed-out refresh is treated
// as a refresh failure. Defaults to DefaultRefreshTimeout.
func WithRefreshTimeout(timeout time.Duration) Option {
	return func(t *Transport) {
		if timeout > 0 {
			t.coord.timeout = timeout
		}
	}
}

// WithForcedLogout sets the escalation hook invoked exactly once per failed
// refresh episode. Defaults to clearing the session store; wire
// authstate.State.ForceLogout here to also publish the navigation signal.
func WithForcedLogout(fn func(context.Context) error) Option {
	return func(t *Transport) {
		if fn != nil {
			t.coord.forcedLogout = fn
		}
	}
}

// New creates an authenticating transport over the given session store.
// The refresher is the collaborator that actually calls the refresh endpoint.
func New(store *session.Store, refresher Refresher, opts ...Option) *Transport {
	t := &Transport{
		base:   http.DefaultTransport,
		store:  store,
		skip:   suffixMatcher(defaultSkipSuffixes),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		coord: &coordinator{
			store:     store,
			refresher: refresher,
			timeout:   DefaultRefreshTimeout,
		},
	}
	t.coord.forcedLogout = store.Clear

	for _, opt := range opts {
		opt(t)
	}

	t.coord.logger = t.logger
	return t
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.skip(req) {
		return t.base.RoundTrip(req)
	}

	resp, err := t.base.RoundTrip(t.decorate(req))
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}

	if t.store.Current() == nil {
		// Nothing to refresh; the rejection is the caller's to handle.
		return resp, nil
	}

	if req.Body != nil && req.GetBody == nil {
		// The body was consumed and cannot be replayed.
		return resp, nil
	}

	if _, err := t.coord.awaitToken(req.Context()); err != nil {
		drain(resp)
		return nil, err
	}

	drain(resp)

	retry, err := replayableCopy(req)
	if err != nil {
		return nil, err
	}

	t.logger.DebugContext(req.Context(), "replaying request after refresh",
		logger.Method(req.Method), logger.Path(req.URL.Path))

	// The replay goes through normal decoration, so it picks up the token
	// pair the coordinator just persisted.
	return t.base.RoundTrip(t.decorate(retry))
}

// decorate returns a clone carrying the current bearer header, or the request
// unmodified when no session exists. It never fails: an absent session is the
// server's rejection to make.
func (t *Transport) decorate(req *http.Request) *http.Request {
	sess := t.store.Current()
	if sess == nil {
		return req
	}

	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", sess.TokenType+" "+sess.AccessToken)
	return clone
}

// replayableCopy clones a request with a fresh body for the post-refresh retry.
func replayableCopy(req *http.Request) (*http.Request, error) {
	clone := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		clone.Body = body
	}
	return clone, nil
}

// drain discards and closes a response body so the connection can be reused.
func drain(resp *http.Response) {
	if resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

func suffixMatcher(suffixes []string) func(*http.Request) bool {
	return func(req *http.Request) bool {
		path := strings.TrimSuffix(req.URL.Path, "/")
		for _, suffix := range suffixes {
			if strings.HasSuffix(path, suffix) {
				return true
			}
		}
		return false
	}
}
