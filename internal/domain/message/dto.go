package message

import (
	"time"

	"crm-service/internal/pkg/types"
)

type CreateMessageRequest struct {
	ClientID    string      `json:"clientId" binding:"required,uuid"`
	Type        string      `json:"type" binding:"required,oneof=sms email"`
	Direction   string      `json:"direction" binding:"required,oneof=inbound outbound"`
	Content     string      `json:"content" binding:"required"`
	Status      string      `json:"status" binding:"omitempty,oneof=sent delivered read failed"`
	SentAt      *types.Date `json:"sentAt"`
	DeliveredAt *types.Date `json:"deliveredAt"`
	SentBy      *string     `json:"sentBy" binding:"omitnil,uuid"`
}

// ToMessage applies defaults. The read time is set exactly when status is read.
func (r *CreateMessageRequest) ToMessage(now time.Time) *Message {
	m := &Message{
		ClientID:    r.ClientID,
		Type:        r.Type,
		Direction:   r.Direction,
		Content:     r.Content,
		Status:      r.Status,
		SentAt:      now,
		DeliveredAt: types.TimePtr(r.DeliveredAt),
		SentBy:      r.SentBy,
	}
	if r.SentAt != nil {
		m.SentAt = r.SentAt.Time
	}
	if m.Status == "" {
		m.Status = StatusSent
	}
	if m.Status == StatusRead {
		read := now
		m.ReadAt = &read
	}
	return m
}

type UpdateMessageRequest struct {
	Content     *string     `json:"content" binding:"omitnil,min=1"`
	Status      *string     `json:"status" binding:"omitnil,oneof=sent delivered read failed"`
	DeliveredAt *types.Date `json:"deliveredAt"`
}

type MessageListFilters struct {
	ClientID string `form:"clientId" binding:"omitempty,uuid"`
}
