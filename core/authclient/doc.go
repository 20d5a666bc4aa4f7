// Package authclient provides the session lifecycle client for the shelter
// API: login, registration, token refresh, and logout, built on top of the
// session store and the refreshing transport.
//
// The client owns its own *http.Client wired with authtransport, so every
// request it makes is bearer-decorated and protected by single-flight
// refresh. The client itself implements authtransport.Refresher, closing
// the loop: when any request hits a 401, the coordinator calls back into
// Refresh on this client.
//
// Usage:
//
//	store := session.NewStore(session.NewMemoryStorage())
//	state := authstate.New(store)
//
//	client := authclient.New("https://api.shelter.example", store,
//		authclient.WithLogger(logger),
//		authclient.WithTransportOptions(
//			authtransport.WithForcedLogout(state.ForceLogout),
//		),
//	)
//
//	user, err := client.Login(ctx, authclient.Credentials{
//		Username: "caretaker1",
//		Password: "secret",
//	})
//	if err != nil {
//		// errors.Is(err, authclient.ErrInvalidCredentials) on a 401
//	}
//
//	me, err := client.Me(ctx) // authenticated call, auto-refreshed on expiry
//
//	err = client.Logout(ctx) // best-effort notify, unconditional local clear
//
// Error handling:
//
// Non-success responses carry the server's error envelope as *APIError and
// are joined with a sentinel where the status has a fixed meaning:
// ErrInvalidCredentials for login 401s, ErrUnauthorized and ErrForbidden
// for 401/403 on other endpoints. A 403 is a permission decision about a
// valid identity and never triggers a token refresh.
package authclient
