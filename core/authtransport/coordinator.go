package authtransport

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/shelterops/authkit/core/logger"
	"github.com/shelterops/authkit/core/session"
)

// Refresher exchanges a refresh token for a new session at the credential
// endpoint. Implemented by authclient.Client.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (session.Session, error)
}

// refreshResult is delivered to every waiter of a refresh episode.
type refreshResult struct {
	accessToken string
	err         error
}

// coordinator serializes concurrent refresh attempts into exactly one
// in-flight call against the refresh endpoint.
//
// It is an explicit two-state machine: idle, or refresh-in-flight. The
// "is a refresh running" check and the "mark one running" transition happen
// under a single mutex acquisition, so two requests can never both observe
// the idle state and both launch a refresh. Waiters accumulate in arrival
// order and are all resolved or all rejected when the episode settles.
type coordinator struct {
	store        *session.Store
	refresher    Refresher
	forcedLogout func(context.Context) error
	timeout      time.Duration
	logger       *slog.Logger

	mu       sync.Mutex
	inFlight bool
	waiters  []chan refreshResult
}

// awaitToken registers the caller as a waiter on the current refresh episode,
// starting one if none is in flight, and blocks until the episode settles or
// the caller's context is done. On success it returns the new access token.
func (c *coordinator) awaitToken(ctx context.Context) (string, error) {
	ch := make(chan refreshResult, 1)

	c.mu.Lock()
	c.waiters = append(c.waiters, ch)
	if !c.inFlight {
		c.inFlight = true
		refreshToken := c.store.RefreshToken()
		go c.runRefresh(refreshToken)
	}
	c.mu.Unlock()

	select {
	case res := <-ch:
		return res.accessToken, res.err
	case <-ctx.Done():
		// The shared refresh keeps running for the remaining waiters; this
		// caller's buffered channel absorbs the late result.
		return "", ctx.Err()
	}
}

// runRefresh executes one refresh episode to completion. It never runs
// concurrently with itself; the inFlight flag guarantees a single instance.
func (c *coordinator) runRefresh(refreshToken string) {
	// The episode outlives any individual waiter, so it gets its own
	// context bounded by the configured timeout rather than a caller's.
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	res := c.doRefresh(ctx, refreshToken)

	if res.err != nil {
		c.logger.WarnContext(ctx, "refresh failed, forcing logout", logger.Error(res.err))
		if err := c.forcedLogout(ctx); err != nil {
			c.logger.ErrorContext(ctx, "forced logout failed", logger.Error(err))
		}
	} else {
		c.logger.DebugContext(ctx, "token refreshed")
	}

	c.mu.Lock()
	waiters := c.waiters
	c.waiters = nil
	c.inFlight = false
	c.mu.Unlock()

	// Arrival order; every waiter settles exactly once.
	for _, ch := range waiters {
		ch <- res
	}
}

func (c *coordinator) doRefresh(ctx context.Context, refreshToken string) refreshResult {
	if refreshToken == "" {
		return refreshResult{err: ErrNoRefreshToken}
	}

	sess, err := c.refresher.Refresh(ctx, refreshToken)
	if err != nil {
		return refreshResult{err: errors.Join(ErrRefreshFailed, err)}
	}

	// The rotated refresh token overwrites the stored one here; holding on
	// to the old token would invalidate the next refresh.
	if err := c.store.Save(ctx, sess); err != nil {
		return refreshResult{err: errors.Join(ErrRefreshFailed, err)}
	}

	return refreshResult{accessToken: sess.AccessToken}
}
