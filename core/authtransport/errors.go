package authtransport

import "errors"

var (
	// ErrRefreshFailed is returned to every queued waiter when the refresh
	// endpoint rejects the refresh token, is unreachable, or times out.
	// It always escalates to a forced logout.
	ErrRefreshFailed = errors.New("authtransport: token refresh failed")

	// ErrNoRefreshToken is returned when a 401 is observed but no refresh
	// token exists to exchange. No network call is made; the session is
	// cleared immediately.
	ErrNoRefreshToken = errors.New("authtransport: no refresh token")
)
