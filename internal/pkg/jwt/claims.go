// internal/pkg/jwt/claims.go
package jwt

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims identifies a server-side session. The session id travels as the
// token ID so the cookie never carries user data.
type Claims struct {
	jwt.RegisteredClaims
}

// SessionID returns the session the token points at.
func (c *Claims) SessionID() string {
	return c.ID
}
