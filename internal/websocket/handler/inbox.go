// internal/websocket/handler/inbox.go
package handler

import (
	"context"
	"fmt"

	wstypes "crm-service/internal/domain/websocket"
	ws "crm-service/internal/websocket"

	"github.com/google/uuid"
)

// ConversationMarker marks a client's unread inbound messages read.
type ConversationMarker interface {
	MarkConversationRead(ctx context.Context, clientID string) (int64, error)
}

// InboxHandler answers inbox requests sent over the socket.
type InboxHandler struct {
	messages ConversationMarker
}

func NewInboxHandler(messages ConversationMarker) *InboxHandler {
	return &InboxHandler{messages: messages}
}

func (h *InboxHandler) SupportedEvents() []wstypes.EventType {
	return []wstypes.EventType{
		wstypes.EventTypeConversationMarkRead,
	}
}

func (h *InboxHandler) HandleMessage(ctx context.Context, client *ws.Client, msg *wstypes.WSMessage) error {
	switch msg.Type {
	case wstypes.EventTypeConversationMarkRead:
		return h.handleMarkRead(ctx, client, msg)
	default:
		return fmt.Errorf("%w: %s", ws.ErrUnsupportedEvent, msg.Type)
	}
}

func (h *InboxHandler) handleMarkRead(ctx context.Context, client *ws.Client, msg *wstypes.WSMessage) error {
	var req wstypes.MarkReadRequest
	if err := ws.DecodeData(msg.Data, &req); err != nil {
		return fmt.Errorf("%w: %v", ws.ErrInvalidPayload, err)
	}
	if _, err := uuid.Parse(req.ClientID); err != nil {
		return fmt.Errorf("%w: clientId must be a UUID", ws.ErrInvalidPayload)
	}

	n, err := h.messages.MarkConversationRead(ctx, req.ClientID)
	if err != nil {
		return fmt.Errorf("failed to mark conversation read")
	}

	reply := wstypes.NewMessage(wstypes.EventTypeConversationMarkedRead, map[string]interface{}{
		"clientId":   req.ClientID,
		"markedRead": n,
	})
	reply.Metadata = map[string]interface{}{"requestId": msg.ID}
	client.SendMessage(reply)
	return nil
}
