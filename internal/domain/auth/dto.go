// internal/domain/auth/dto.go
package auth

import "time"

// RegisterRequest is the public sign-up payload. Any role in the body is ignored.
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`

	// Set by the handler
	IPAddress     string `json:"-"`
	UserAgent     string `json:"-"`
	PreviousToken string `json:"-"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`

	// Set by the handler
	IPAddress     string `json:"-"`
	UserAgent     string `json:"-"`
	PreviousToken string `json:"-"`
}

// CreateUserRequest is used by operators to provision accounts with any role.
type CreateUserRequest struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string
}

// LoginResult carries the signed-in user and the cookie value to hand out.
type LoginResult struct {
	User      *PublicUser
	SessionID string
	Token     string
	ExpiresAt time.Time
}
