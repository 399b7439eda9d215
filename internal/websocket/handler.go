// internal/websocket/handler.go
package websocket

import (
	"context"
	"sync"

	wstypes "crm-service/internal/domain/websocket"
)

// MessageHandler answers inbound frames of the event types it claims.
type MessageHandler interface {
	HandleMessage(ctx context.Context, client *Client, msg *wstypes.WSMessage) error
	SupportedEvents() []wstypes.EventType
}

// HandlerRegistry routes inbound frames by event type. Handlers may be added
// while clients are already connected.
type HandlerRegistry struct {
	mu     sync.RWMutex
	routes map[wstypes.EventType]MessageHandler
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{routes: map[wstypes.EventType]MessageHandler{}}
}

// Register claims every event type the handler supports. A later handler
// replaces an earlier one for the same type.
func (r *HandlerRegistry) Register(h MessageHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, evt := range h.SupportedEvents() {
		r.routes[evt] = h
	}
}

func (r *HandlerRegistry) GetHandler(evt wstypes.EventType) (MessageHandler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.routes[evt]
	return h, ok
}
