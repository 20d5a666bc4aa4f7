package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims holds the decoded payload of an access token issued by the shelter
// backend. Values are taken verbatim from the token; nothing here implies the
// token's signature has been checked.
type Claims struct {
	// Subject is the authenticated user's ID (the "sub" claim).
	Subject string

	// Username is the human-readable login name ("username" claim).
	Username string

	// Role is the user's role at issuance time ("role" claim).
	Role string

	// ExpiresAt is the token expiry instant ("exp" claim).
	// Zero if the claim is absent.
	ExpiresAt time.Time

	// IssuedAt is the token issuance instant ("iat" claim).
	// Zero if the claim is absent.
	IssuedAt time.Time
}

// wireClaims matches the backend's JWT payload shape.
type wireClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Decode extracts the claims from a bearer token without verifying its
// signature. Signature verification is the server's responsibility; the
// client only needs the claims to reason about expiry and the current user.
//
// Returns ErrMalformedToken if the token does not have the expected segment
// structure or its payload is not valid encoded JSON. On error the returned
// Claims value is always the zero value, never partially populated.
func Decode(tokenString string) (Claims, error) {
	var wire wireClaims
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, &wire); err != nil {
		return Claims{}, errors.Join(ErrMalformedToken, err)
	}

	claims := Claims{
		Subject:  wire.Subject,
		Username: wire.Username,
		Role:     wire.Role,
	}
	if wire.ExpiresAt != nil {
		claims.ExpiresAt = wire.ExpiresAt.Time
	}
	if wire.IssuedAt != nil {
		claims.IssuedAt = wire.IssuedAt.Time
	}

	return claims, nil
}

// IsExpired reports whether the claims are expired at the given instant.
// The check is inclusive: a token expiring exactly now is already expired,
// which avoids authenticating a request with a token that dies mid-flight.
// Claims without an expiry are treated as expired (fail closed).
func (c Claims) IsExpired(now time.Time) bool {
	if c.ExpiresAt.IsZero() {
		return true
	}
	return !c.ExpiresAt.After(now)
}
