// internal/websocket/client.go
package websocket

import (
	"context"
	"sync"
	"time"

	wstypes "crm-service/internal/domain/websocket"
	"crm-service/internal/pkg/session"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// Conn is the part of *websocket.Conn a client uses.
type Conn interface {
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetReadLimit(limit int64)
	SetPongHandler(h func(string) error)
	ReadMessage() (int, []byte, error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type Client struct {
	hub       *Hub
	conn      Conn
	send      chan []byte
	userID    string
	sessionID string
	username  string
	role      string

	subscriptions map[wstypes.ChannelType]bool
	subMutex      sync.RWMutex

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewClient binds a connection to the signed-in session that opened it.
func NewClient(hub *Hub, conn Conn, sess *session.SessionData) *Client {
	ctx, cancel := context.WithCancel(context.Background())

	c := &Client{
		hub:           hub,
		conn:          conn,
		send:          make(chan []byte, 256),
		userID:        sess.UserID,
		sessionID:     sess.ID,
		username:      sess.Username,
		role:          sess.Role,
		subscriptions: make(map[wstypes.ChannelType]bool),
		ctx:           ctx,
		cancel:        cancel,
	}
	for _, ch := range wstypes.DefaultChannels {
		c.subscriptions[ch] = true
	}
	return c
}

func (c *Client) Subscribe(channel wstypes.ChannelType) bool {
	switch channel {
	case wstypes.ChannelInbox, wstypes.ChannelSystem:
	default:
		return false
	}

	c.subMutex.Lock()
	defer c.subMutex.Unlock()
	c.subscriptions[channel] = true
	return true
}

func (c *Client) Unsubscribe(channel wstypes.ChannelType) {
	c.subMutex.Lock()
	defer c.subMutex.Unlock()
	delete(c.subscriptions, channel)
}

func (c *Client) IsSubscribed(channel wstypes.ChannelType) bool {
	c.subMutex.RLock()
	defer c.subMutex.RUnlock()
	return c.subscriptions[channel]
}

func (c *Client) GetUserID() string {
	return c.userID
}

func (c *Client) GetSessionID() string {
	return c.sessionID
}

// Context is cancelled when the client closes.
func (c *Client) Context() context.Context {
	return c.ctx
}

// ReadPump handles incoming messages from client
func (c *Client) ReadPump() {
	defer func() {
		c.hub.leave(c)
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Debug("websocket read error", zap.String("user_id", c.userID), zap.Error(err))
			}
			return
		}

		c.handleMessage(message)
	}
}

// WritePump handles outgoing messages to client
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.ctx.Done():
			c.drain()
			return
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// drain flushes queued messages and sends a close frame.
func (c *Client) drain() {
	for {
		select {
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		default:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

func (c *Client) handleMessage(data []byte) {
	msg, err := wstypes.ParseMessage(data)
	if err != nil {
		c.SendError("invalid_message", "Failed to parse message", err.Error())
		return
	}

	handled, err := c.hub.HandleClientMessage(c.ctx, c, msg)
	if err != nil {
		c.SendError("handler_error", "Failed to process message", err.Error())
		return
	}
	if handled {
		return
	}

	switch msg.Type {
	case wstypes.EventTypePing:
		c.SendMessage(wstypes.NewMessage(wstypes.EventTypePong, nil))

	case wstypes.EventTypeSubscribe:
		var req wstypes.SubscribeRequest
		if err := DecodeData(msg.Data, &req); err != nil {
			c.SendError("invalid_subscribe", "Invalid subscribe request", err.Error())
			return
		}
		var subscribed []wstypes.ChannelType
		for _, channel := range req.Channels {
			if c.Subscribe(channel) {
				subscribed = append(subscribed, channel)
			}
		}
		c.SendMessage(wstypes.NewMessage(wstypes.EventTypeSubscribe, map[string]interface{}{
			"channels": subscribed,
			"status":   "subscribed",
		}))

	case wstypes.EventTypeUnsubscribe:
		var req wstypes.UnsubscribeRequest
		if err := DecodeData(msg.Data, &req); err != nil {
			c.SendError("invalid_unsubscribe", "Invalid unsubscribe request", err.Error())
			return
		}
		for _, channel := range req.Channels {
			c.Unsubscribe(channel)
		}
		c.SendMessage(wstypes.NewMessage(wstypes.EventTypeUnsubscribe, map[string]interface{}{
			"channels": req.Channels,
			"status":   "unsubscribed",
		}))

	default:
		c.SendError("unsupported_event", "Unsupported event type", string(msg.Type))
	}
}

// SendMessage queues msg. A client that cannot keep up is closed.
func (c *Client) SendMessage(msg *wstypes.WSMessage) {
	data, err := msg.ToJSON()
	if err != nil {
		c.hub.logger.Error("failed to marshal websocket message", zap.Error(err))
		return
	}

	select {
	case <-c.ctx.Done():
		return
	default:
	}

	select {
	case c.send <- data:
	default:
		c.hub.logger.Warn("websocket send buffer full", zap.String("user_id", c.userID))
		c.Close()
	}
}

func (c *Client) SendError(code, message, details string) {
	c.SendMessage(wstypes.NewMessage(wstypes.EventTypeError, wstypes.ErrorData{
		Code:    code,
		Message: message,
		Details: details,
	}))
}

// Close stops the write loop. It is safe to call more than once.
func (c *Client) Close() {
	c.closeOnce.Do(c.cancel)
}
