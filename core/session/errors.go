package session

import "errors"

var (
	// ErrNotFound is returned by Storage implementations when no session
	// blob is present under the storage key.
	ErrNotFound = errors.New("session: not found")

	// ErrIncompleteSession is returned when saving a session that is missing
	// one of its required fields. A session is stored fully populated or not
	// at all; partial sessions are not representable.
	ErrIncompleteSession = errors.New("session: incomplete session")

	// ErrSaveSession is returned when persisting a session to storage fails.
	ErrSaveSession = errors.New("session: failed to save session")

	// ErrClearSession is returned when removing a session from storage fails.
	ErrClearSession = errors.New("session: failed to clear session")
)
