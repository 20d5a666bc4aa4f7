package authclient

import (
	"github.com/shelterops/authkit/core/session"
)

// Credentials is the login request payload.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterParams is the registration request payload. New accounts land in
// pending status until approved, so registration never yields a session.
type RegisterParams struct {
	Username string       `json:"username"`
	Email    string       `json:"email"`
	Password string       `json:"password"`
	Role     session.Role `json:"role"`
}

// tokenResponse is the token-pair envelope returned by the login and refresh
// endpoints.
type tokenResponse struct {
	Success      bool         `json:"success"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int64        `json:"expires_in"`
	User         session.User `json:"user"`
}

func (r tokenResponse) session() session.Session {
	return session.Session{
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		TokenType:    r.TokenType,
		ExpiresIn:    r.ExpiresIn,
		User:         r.User,
	}
}

// refreshRequest is the refresh endpoint payload.
type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// errorResponse is the server's error envelope.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
