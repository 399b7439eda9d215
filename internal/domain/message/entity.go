package message

import "time"

const (
	TypeSMS   = "sms"
	TypeEmail = "email"

	DirectionInbound  = "inbound"
	DirectionOutbound = "outbound"

	StatusSent      = "sent"
	StatusDelivered = "delivered"
	StatusRead      = "read"
	StatusFailed    = "failed"
)

type Message struct {
	ID          string     `json:"id" db:"id"`
	ClientID    string     `json:"clientId" db:"client_id"`
	Type        string     `json:"type" db:"type"`
	Direction   string     `json:"direction" db:"direction"`
	Content     string     `json:"content" db:"content"`
	Status      string     `json:"status" db:"status"`
	SentAt      time.Time  `json:"sentAt" db:"sent_at"`
	DeliveredAt *time.Time `json:"deliveredAt" db:"delivered_at"`
	ReadAt      *time.Time `json:"readAt" db:"read_at"`
	SentBy      *string    `json:"sentBy" db:"sent_by"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// Conversation is one row of the inbox: a client's latest message and how
// many of their inbound messages are still unread.
type Conversation struct {
	ClientID    string   `json:"clientId"`
	LastMessage *Message `json:"lastMessage"`
	UnreadCount int64    `json:"unreadCount"`
}
