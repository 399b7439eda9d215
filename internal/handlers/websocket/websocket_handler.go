// internal/handlers/websocket/websocket_handler.go
package websocket

import (
	"net/http"
	"net/url"
	"strings"

	"crm-service/internal/middleware"
	xerrors "crm-service/internal/pkg/errors"
	"crm-service/internal/pkg/response"
	ws "crm-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type WebSocketHandler struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewWebSocketHandler accepts upgrades from allowedOrigins, using the same
// list as the CORS middleware. An empty list accepts same-origin pages only.
func NewWebSocketHandler(hub *ws.Hub, allowedOrigins []string, logger *zap.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logger,
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[strings.TrimRight(o, "/")] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if _, ok := set[origin]; ok {
			return true
		}
		u, err := url.Parse(origin)
		return err == nil && strings.EqualFold(u.Host, r.Host)
	}
}

// HandleConnection upgrades a signed-in request to the inbox socket.
func (h *WebSocketHandler) HandleConnection(c *gin.Context) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		response.Error(c, xerrors.Unauthorized("Not authenticated"))
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed",
			zap.Error(err),
			zap.String("ip", c.ClientIP()),
		)
		return
	}

	client := ws.NewClient(h.hub, conn, sess)
	h.hub.Register <- client

	h.logger.Info("websocket client connected",
		zap.String("user_id", sess.UserID),
		zap.String("session_id", sess.ID),
	)

	go client.WritePump()
	go client.ReadPump()
}

// Stats reports how many sockets this instance holds.
func (h *WebSocketHandler) Stats(c *gin.Context) {
	response.OK(c, gin.H{"connections": h.hub.TotalClients()})
}
