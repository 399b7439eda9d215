// internal/events/bus.go
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Channel is the Redis pub/sub channel every API instance and the dispatcher share.
const Channel = "crm:events"

const (
	MessageCreated      = "message.created"
	MessageUpdated      = "message.updated"
	MessageRead         = "message.read"
	MessageDeleted      = "message.deleted"
	ConversationUpdated = "conversation.updated"
)

// Event is what travels over the bus and, unchanged, to websocket clients.
type Event struct {
	Type       string          `json:"type"`
	ClientID   string          `json:"clientId,omitempty"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	OccurredAt time.Time       `json:"occurredAt"`
}

func NewEvent(eventType, clientID string, payload interface{}) (Event, error) {
	evt := Event{
		Type:       eventType,
		ClientID:   clientID,
		OccurredAt: time.Now().UTC(),
	}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return Event{}, fmt.Errorf("failed to marshal event payload: %w", err)
		}
		evt.Payload = raw
	}
	return evt, nil
}

// Publisher is the write side used by services.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

type Bus struct {
	client *redis.Client
	logger *zap.Logger
}

func NewBus(client *redis.Client, logger *zap.Logger) *Bus {
	return &Bus{client: client, logger: logger}
}

func (b *Bus) Publish(ctx context.Context, evt Event) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := b.client.Publish(ctx, Channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// Subscribe delivers events until ctx is cancelled, then closes the returned
// channel. Undecodable messages are logged and skipped.
func (b *Bus) Subscribe(ctx context.Context) (<-chan Event, error) {
	sub := b.client.Subscribe(ctx, Channel)
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", Channel, err)
	}

	out := make(chan Event, 64)
	go func() {
		defer close(out)
		defer sub.Close()

		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var evt Event
				if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
					b.logger.Warn("dropping malformed event", zap.Error(err))
					continue
				}
				select {
				case out <- evt:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

// Emit builds and publishes an event, logging instead of failing. Realtime
// delivery never fails the write that triggered it.
func Emit(ctx context.Context, pub Publisher, logger *zap.Logger, eventType, clientID string, payload interface{}) {
	if pub == nil {
		return
	}
	evt, err := NewEvent(eventType, clientID, payload)
	if err == nil {
		err = pub.Publish(ctx, evt)
	}
	if err != nil {
		logger.Warn("failed to publish event",
			zap.String("type", eventType),
			zap.String("client_id", clientID),
			zap.Error(err),
		)
	}
}
