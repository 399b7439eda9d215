// internal/pkg/jwt/generator.go
package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Generator struct {
	secret []byte
	issuer string
	Ttl    time.Duration
}

func NewGenerator(secret []byte, issuer string, ttl time.Duration) *Generator {
	return &Generator{
		secret: secret,
		issuer: issuer,
		Ttl:    ttl,
	}
}

// Generate signs a cookie value for sessionID that expires at expiresAt. A zero
// expiresAt falls back to the generator TTL.
func (g *Generator) Generate(sessionID string, expiresAt time.Time) (string, error) {
	if len(g.secret) == 0 {
		return "", fmt.Errorf("jwt generator has empty secret")
	}
	if sessionID == "" {
		return "", fmt.Errorf("session id is required")
	}

	now := time.Now()
	if expiresAt.IsZero() {
		expiresAt = now.Add(g.Ttl)
	}

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    g.issuer,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        sessionID,
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(g.secret)
}
