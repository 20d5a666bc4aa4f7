package session

import (
	"time"

	"github.com/google/uuid"
)

// Role is a user's role in the shelter organization.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleCaretaker    Role = "caretaker"
	RoleVeterinarian Role = "veterinarian"
	RoleVolunteer    Role = "volunteer"
)

// Status is a user account's lifecycle state.
type Status string

const (
	StatusPending  Status = "pending"
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// User is a denormalized snapshot of the authenticated principal, captured
// from the server at login or refresh time. It may drift from the server's
// live record until the next login or refresh.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is the client's durable representation of an authenticated session.
// It is replaced wholesale on login and refresh, never mutated field by field.
type Session struct {
	// AccessToken is the short-lived bearer credential attached to requests.
	AccessToken string `json:"access_token"`

	// RefreshToken is the longer-lived credential used only against the
	// refresh endpoint.
	RefreshToken string `json:"refresh_token"`

	// TokenType is the authorization scheme echoed by the server,
	// normally "Bearer".
	TokenType string `json:"token_type"`

	// ExpiresIn is the advisory access-token lifetime in seconds at issuance
	// time. The decoded exp claim is authoritative; this is a hint only.
	ExpiresIn int64 `json:"expires_in"`

	// User is the authenticated user projection.
	User User `json:"user"`
}

// Validate reports whether the session satisfies the all-or-nothing
// invariant: every credential field populated.
func (s Session) Validate() error {
	if s.AccessToken == "" || s.RefreshToken == "" || s.TokenType == "" {
		return ErrIncompleteSession
	}
	return nil
}
