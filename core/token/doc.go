// Package token decodes access-token claims issued by the shelter backend.
//
// Decoding is intentionally unverified: the client never holds the signing
// key, and acceptance is always the server's decision. The decoded claims are
// only used locally, to check expiry and to project the authenticated user.
//
//	claims, err := token.Decode(accessToken)
//	if err != nil {
//		// errors.Is(err, token.ErrMalformedToken) == true
//	}
//	if claims.IsExpired(time.Now()) {
//		// treat the session as unauthenticated
//	}
package token
