package token

import "errors"

var (
	// ErrMalformedToken is returned when a token cannot be split into its
	// segments or its payload is not valid encoded JSON. A malformed token
	// is treated as invalid, never as "unknown".
	ErrMalformedToken = errors.New("token: malformed token")
)
