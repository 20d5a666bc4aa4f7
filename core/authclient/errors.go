package authclient

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials is returned when the login endpoint rejects the
	// supplied username/password pair.
	ErrInvalidCredentials = errors.New("authclient: invalid credentials")

	// ErrUnauthorized is returned when an authenticated endpoint rejects the
	// request even after the transport's refresh-and-replay cycle.
	ErrUnauthorized = errors.New("authclient: unauthorized")

	// ErrForbidden is returned when the server refuses an authenticated
	// request on authorization grounds. Never retried: a fresh token cannot
	// grant a missing privilege.
	ErrForbidden = errors.New("authclient: forbidden")
)

// APIError carries the server's error envelope ({"success":false,"error":...})
// together with the HTTP status it arrived with.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("authclient: server returned status %d", e.Status)
	}
	return fmt.Sprintf("authclient: %s (status %d)", e.Message, e.Status)
}
