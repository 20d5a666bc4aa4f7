// Package authstate derives the observable authentication state from the
// session store: an authenticated flag and the current user projection.
//
// The state is never cached divergently from the store. IsAuthenticated and
// CurrentUser recompute from the current session and its decoded token expiry
// on every call, and every store mutation (login, refresh, logout) publishes a
// Change to subscribers. Route guards and UI layers consume this package; they
// never touch the session store directly.
//
//	state := authstate.New(store)
//	if err := state.Init(ctx); err != nil { // pick up a persisted session
//		log.Fatal(err)
//	}
//
//	changes := state.Subscribe()
//	go func() {
//		for change := range changes {
//			if change.Reason == authstate.ReasonRefreshFailed {
//				navigateToLogin()
//			}
//		}
//	}()
package authstate
