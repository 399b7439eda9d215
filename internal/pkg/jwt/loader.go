// internal/pkg/jwt/loader.go
package jwt

import (
	"fmt"
	"time"
)

type Config struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

type Manager struct {
	Generator *Generator
	Verifier  *Verifier
}

const minSecretLength = 16

// Build creates the signer pair sharing one secret.
func Build(cfg Config) (*Manager, error) {
	if len(cfg.Secret) < minSecretLength {
		return nil, fmt.Errorf("session secret must be at least %d characters", minSecretLength)
	}

	secret := []byte(cfg.Secret)
	return &Manager{
		Generator: NewGenerator(secret, cfg.Issuer, cfg.TTL),
		Verifier:  NewVerifier(secret, cfg.Issuer),
	}, nil
}

// Sign is a shortcut for Generator.Generate.
func (m *Manager) Sign(sessionID string, expiresAt time.Time) (string, error) {
	return m.Generator.Generate(sessionID, expiresAt)
}

// Verify is a shortcut for Verifier.Verify.
func (m *Manager) Verify(token string) (*Claims, error) {
	return m.Verifier.Verify(token)
}
