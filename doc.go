// Package authkit is the authenticated-session layer for shelter API
// clients: persistent sessions, derived auth state, bearer-decorated HTTP
// transport with single-flight token refresh, and the login/logout
// lifecycle.
//
// The module is organized as independent packages under core/, composed at
// application startup:
//
//   - core/token: unverified JWT claims decoding and expiry checks
//   - core/session: the session store over pluggable storage backends
//   - core/authstate: observable authentication state derived from the store
//   - core/authtransport: http.RoundTripper with refresh coordination
//   - core/authclient: the lifecycle client (login, register, refresh, logout)
//   - core/config: environment-driven configuration loading
//   - core/logger: shared slog attribute helpers
//
// integration/database/redis provides a Redis client and a Redis-backed
// session storage for deployments where the session must survive across
// hosts.
//
// Typical wiring:
//
//	storage, _ := session.NewFileStorage(".shelter_session.json")
//	store := session.NewStore(storage)
//	state := authstate.New(store)
//	_ = state.Init(ctx)
//
//	client := authclient.New(apiURL, store,
//		authclient.WithTransportOptions(
//			authtransport.WithForcedLogout(state.ForceLogout),
//		),
//	)
package authkit
