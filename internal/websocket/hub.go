// internal/websocket/hub.go
package websocket

import (
	"context"
	"sync"

	wstypes "crm-service/internal/domain/websocket"
	"crm-service/internal/events"
	"crm-service/internal/metrics"

	"go.uber.org/zap"
)

type Hub struct {
	// Registered clients by user ID
	clients map[string]map[*Client]bool
	mu      sync.RWMutex

	Register   chan *Client
	unregister chan *Client
	broadcast  chan *BroadcastMessage
	done       chan struct{}

	handlerRegistry *HandlerRegistry
	logger          *zap.Logger
}

type BroadcastMessage struct {
	// UserIDs limits delivery; nil means every connected user.
	UserIDs []string
	Channel wstypes.ChannelType
	Message *wstypes.WSMessage
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:         make(map[string]map[*Client]bool),
		Register:        make(chan *Client),
		unregister:      make(chan *Client, 16),
		broadcast:       make(chan *BroadcastMessage, 256),
		done:            make(chan struct{}),
		handlerRegistry: NewHandlerRegistry(),
		logger:          logger,
	}
}

// RegisterHandler registers a message handler
func (h *Hub) RegisterHandler(handler MessageHandler) {
	h.handlerRegistry.Register(handler)
}

// HandleClientMessage dispatches to a registered handler. handled is false
// when no handler claims the event type.
func (h *Hub) HandleClientMessage(ctx context.Context, client *Client, msg *wstypes.WSMessage) (handled bool, err error) {
	handler, exists := h.handlerRegistry.GetHandler(msg.Type)
	if !exists {
		return false, nil
	}
	return true, handler.HandleMessage(ctx, client, msg)
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case msg := <-h.broadcast:
			h.BroadcastMessage(msg)
		}
	}
}

// Relay forwards bus events to every client subscribed to the inbox until
// the event channel closes.
func (h *Hub) Relay(ch <-chan events.Event) {
	for evt := range ch {
		msg := wstypes.NewMessage(wstypes.EventType(evt.Type), evt.Payload)
		if evt.ClientID != "" {
			msg.Metadata = map[string]interface{}{"clientId": evt.ClientID}
		}
		select {
		case h.broadcast <- &BroadcastMessage{Channel: wstypes.ChannelInbox, Message: msg}:
		case <-h.done:
			return
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[client.userID] == nil {
		h.clients[client.userID] = make(map[*Client]bool)
	}
	h.clients[client.userID][client] = true
	metrics.WebsocketConnections.Inc()

	h.logger.Info("websocket client connected",
		zap.String("user_id", client.userID),
		zap.String("session_id", client.sessionID),
		zap.Int("total", h.totalClients()),
	)

	client.SendMessage(wstypes.NewMessage(wstypes.EventTypeConnected, map[string]interface{}{
		"userId":   client.userID,
		"username": client.username,
		"channels": wstypes.DefaultChannels,
	}))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

func (h *Hub) removeLocked(client *Client) {
	clients, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, exists := clients[client]; !exists {
		return
	}

	delete(clients, client)
	client.Close()
	metrics.WebsocketConnections.Dec()

	if len(clients) == 0 {
		delete(h.clients, client.userID)
	}

	h.logger.Info("websocket client disconnected",
		zap.String("user_id", client.userID),
		zap.String("session_id", client.sessionID),
		zap.Int("total", h.totalClients()),
	)
}

func (h *Hub) BroadcastMessage(msg *BroadcastMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if msg.UserIDs == nil {
		for _, clients := range h.clients {
			for client := range clients {
				if client.IsSubscribed(msg.Channel) {
					client.SendMessage(msg.Message)
				}
			}
		}
		return
	}

	for _, userID := range msg.UserIDs {
		for client := range h.clients[userID] {
			if client.IsSubscribed(msg.Channel) {
				client.SendMessage(msg.Message)
			}
		}
	}
}

func (h *Hub) TotalClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.totalClients()
}

// IsUserConnected checks if a user has any active connections
func (h *Hub) IsUserConnected(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID]) > 0
}

// DisconnectSession closes every socket opened under sessionID.
func (h *Hub) DisconnectSession(sessionID, reason string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	msg := wstypes.NewMessage(wstypes.EventTypeDisconnected, wstypes.SessionEventData{
		SessionID: sessionID,
		Reason:    reason,
	})

	var closing []*Client
	for _, clients := range h.clients {
		for client := range clients {
			if client.sessionID == sessionID {
				closing = append(closing, client)
			}
		}
	}
	for _, client := range closing {
		client.SendMessage(msg)
		h.removeLocked(client)
	}

	if len(closing) > 0 {
		h.logger.Info("closed sockets for session",
			zap.String("session_id", sessionID),
			zap.String("reason", reason),
			zap.Int("count", len(closing)),
		)
	}
}

func (h *Hub) totalClients() int {
	total := 0
	for _, clients := range h.clients {
		total += len(clients)
	}
	return total
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	close(h.done)
	for _, clients := range h.clients {
		for client := range clients {
			client.Close()
			metrics.WebsocketConnections.Dec()
		}
	}
	h.clients = make(map[string]map[*Client]bool)
}

// leave hands client back to the hub once its read loop ends.
func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}
