// Package session owns the client's durable authentication session: the
// access/refresh token pair, the token type, the advisory lifetime hint, and
// the authenticated user projection.
//
// The session is stored as one opaque JSON blob behind the Storage interface
// and is either fully present or fully absent. The Store is the single writer;
// login, refresh, and logout all go through it, and every mutation republishes
// the new state to registered watchers.
//
// # Basic Usage
//
//	storage, err := session.NewFileStorage(".shelter_session.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	store := session.NewStore(storage)
//
//	// Startup: pick up a session persisted by a previous run.
//	sess, err := store.Load(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if sess != nil {
//		fmt.Println("resuming session for", sess.User.Username)
//	}
//
//	// React to session changes (login, refresh, logout).
//	store.Watch(func(sess *session.Session) {
//		if sess == nil {
//			fmt.Println("signed out")
//		}
//	})
//
// # Storage Backends
//
// MemoryStorage suits tests and short-lived tools. FileStorage keeps a
// still-valid login across restarts. The integration/storage/redis package
// provides a redis-backed Storage for shared or containerized environments.
//
// # Self-Healing
//
// A corrupt or unparsable stored blob never crashes the application: Load
// deletes the bad entry and reports no session, so the user simply has to
// log in again.
package session
