// internal/domain/websocket/types.go
package websocket

import (
	"encoding/json"
	"time"

	"github.com/oklog/ulid/v2"
)

// EventType represents different real-time event types
type EventType string

const (
	// Connection events
	EventTypePing         EventType = "ping"
	EventTypePong         EventType = "pong"
	EventTypeConnected    EventType = "connected"
	EventTypeDisconnected EventType = "disconnected"
	EventTypeError        EventType = "error"

	// Inbox requests (client -> server)
	EventTypeConversationMarkRead EventType = "conversation:mark_read"

	// Inbox replies (server -> client). Bus events are relayed under their
	// own type names, e.g. "message.created".
	EventTypeConversationMarkedRead EventType = "conversation:marked_read"

	// Subscription events
	EventTypeSubscribe   EventType = "subscribe"
	EventTypeUnsubscribe EventType = "unsubscribe"
)

// WSMessage is the universal message format
type WSMessage struct {
	Type      EventType              `json:"type"`
	Data      interface{}            `json:"data,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	ID        string                 `json:"id,omitempty"`
}

// ChannelType groups server pushes a client can opt out of.
type ChannelType string

const (
	ChannelInbox  ChannelType = "inbox"
	ChannelSystem ChannelType = "system"
)

// DefaultChannels are subscribed on connect.
var DefaultChannels = []ChannelType{ChannelInbox, ChannelSystem}

type SubscribeRequest struct {
	Channels []ChannelType `json:"channels"`
}

type UnsubscribeRequest struct {
	Channels []ChannelType `json:"channels"`
}

// MarkReadRequest asks to mark a client's unread inbound messages read.
type MarkReadRequest struct {
	ClientID string `json:"clientId"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type SessionEventData struct {
	SessionID string `json:"sessionId"`
	Reason    string `json:"reason"`
}

func NewMessage(eventType EventType, data interface{}) *WSMessage {
	return &WSMessage{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().UTC(),
		ID:        ulid.Make().String(),
	}
}

func (m *WSMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ParseMessage(data []byte) (*WSMessage, error) {
	var msg WSMessage
	err := json.Unmarshal(data, &msg)
	return &msg, err
}
