// Package authtransport routes every outbound API call through the
// authenticated-session layer: it attaches the current bearer token, detects
// server-side rejection, and coordinates token refresh so that any number of
// concurrent 401s produce exactly one call to the refresh endpoint.
//
// # Single-Flight Refresh
//
// When a request comes back 401, the transport joins the refresh coordinator
// as a waiter. The first waiter of an episode launches the refresh; everyone
// who observes a 401 while that refresh is in flight queues on the same
// episode instead of launching another. When the refresh settles, all waiters
// are released together: on success each replays its original request with
// the fresh token (in arrival order), on failure all receive the same error
// and the session is cleared exactly once.
//
// This is the invariant the package exists for: N concurrent requests hitting
// an expired token produce one refresh call, not N. Naive per-request refresh
// stampedes the auth backend and, with rotating refresh tokens, each extra
// refresh invalidates its siblings' tokens and logs the user out spuriously.
//
// # Usage
//
//	tr := authtransport.New(store, client,
//		authtransport.WithForcedLogout(state.ForceLogout),
//	)
//	httpClient := &http.Client{Transport: tr}
//
// Requests to the credential endpoints (login, register, refresh, validate)
// bypass decoration entirely. A 403 never triggers a refresh: the caller is
// authenticated but not allowed, and a new token cannot change that.
//
// A refresh episode is bounded by WithRefreshTimeout (default 30s); a timeout
// is treated as a refresh failure rather than stalling waiters forever.
package authtransport
