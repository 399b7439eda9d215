// internal/pkg/session/manager.go
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	xerrors "crm-service/internal/pkg/errors"

	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"
)

type Manager struct {
	client *redis.Client
	ttl    time.Duration
}

func NewManager(client *redis.Client, ttl time.Duration) *Manager {
	return &Manager{
		client: client,
		ttl:    ttl,
	}
}

// TTL is the lifetime given to new sessions.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// CreateSession assigns a fresh id to session and stores it in Redis.
func (m *Manager) CreateSession(ctx context.Context, session *SessionData) error {
	now := time.Now()
	session.ID = ulid.Make().String()
	session.LoginAt = now
	session.ExpiresAt = now.Add(m.ttl)

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}

	if err := m.client.Set(ctx, m.sessionKey(session.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session in redis: %w", err)
	}
	return nil
}

// Regenerate discards previousID, if any, and stores session under a new id.
// Sign-in always goes through here so a pre-login id is never reused.
func (m *Manager) Regenerate(ctx context.Context, previousID string, session *SessionData) error {
	if previousID != "" {
		if err := m.InvalidateSession(ctx, previousID); err != nil {
			return err
		}
	}
	return m.CreateSession(ctx, session)
}

// GetSession loads a live session. Missing or expired sessions yield
// xerrors.ErrSessionExpired.
func (m *Manager) GetSession(ctx context.Context, id string) (*SessionData, error) {
	data, err := m.client.Get(ctx, m.sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, xerrors.ErrSessionExpired
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var session SessionData
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	if session.Expired(time.Now()) {
		return nil, xerrors.ErrSessionExpired
	}
	return &session, nil
}

// InvalidateSession removes a session from Redis.
func (m *Manager) InvalidateSession(ctx context.Context, id string) error {
	if err := m.client.Del(ctx, m.sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (m *Manager) sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}
