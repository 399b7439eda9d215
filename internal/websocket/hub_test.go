package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	wstypes "crm-service/internal/domain/websocket"
	"crm-service/internal/events"
	"crm-service/internal/pkg/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeConn feeds reads from a channel and records writes.
type fakeConn struct {
	mu      sync.Mutex
	reads   chan []byte
	written [][]byte
	closed  chan struct{}
	once    sync.Once
}

func newFakeConn() *fakeConn {
	return &fakeConn{reads: make(chan []byte, 8), closed: make(chan struct{})}
}

func (f *fakeConn) SetReadDeadline(time.Time) error   { return nil }
func (f *fakeConn) SetWriteDeadline(time.Time) error  { return nil }
func (f *fakeConn) SetReadLimit(int64)                {}
func (f *fakeConn) SetPongHandler(func(string) error) {}

func (f *fakeConn) ReadMessage() (int, []byte, error) {
	select {
	case data := <-f.reads:
		return 1, data, nil
	case <-f.closed:
		return 0, nil, errors.New("closed")
	}
}

func (f *fakeConn) WriteMessage(_ int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if data != nil {
		f.written = append(f.written, data)
	}
	return nil
}

func (f *fakeConn) Close() error {
	f.once.Do(func() { close(f.closed) })
	return nil
}

// types returns the event types written so far.
func (f *fakeConn) types() []wstypes.EventType {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []wstypes.EventType
	for _, w := range f.written {
		var msg wstypes.WSMessage
		if json.Unmarshal(w, &msg) == nil {
			out = append(out, msg.Type)
		}
	}
	return out
}

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func connect(hub *Hub, sess *session.SessionData) (*Client, *fakeConn) {
	conn := newFakeConn()
	client := NewClient(hub, conn, sess)
	hub.Register <- client
	go client.WritePump()
	go client.ReadPump()
	return client, conn
}

func TestHub_RelaysBusEventsToInbox(t *testing.T) {
	hub := startHub(t)
	_, conn := connect(hub, &session.SessionData{ID: "s1", UserID: "u1"})

	ch := make(chan events.Event, 1)
	go hub.Relay(ch)

	evt, err := events.NewEvent(events.MessageCreated, "c-1", map[string]string{"id": "m-1"})
	require.NoError(t, err)
	ch <- evt

	assert.Eventually(t, func() bool {
		return assert.ObjectsAreEqual(
			[]wstypes.EventType{wstypes.EventTypeConnected, wstypes.EventType(events.MessageCreated)},
			conn.types())
	}, 2*time.Second, 10*time.Millisecond)
	close(ch)
}

func TestHub_UnsubscribedClientSkipsInbox(t *testing.T) {
	hub := startHub(t)
	client, conn := connect(hub, &session.SessionData{ID: "s1", UserID: "u1"})
	client.Unsubscribe(wstypes.ChannelInbox)

	hub.BroadcastMessage(&BroadcastMessage{
		Channel: wstypes.ChannelInbox,
		Message: wstypes.NewMessage(wstypes.EventType(events.MessageRead), nil),
	})

	time.Sleep(50 * time.Millisecond)
	assert.NotContains(t, conn.types(), wstypes.EventType(events.MessageRead))
}

func TestHub_DisconnectSession(t *testing.T) {
	hub := startHub(t)
	_, keep := connect(hub, &session.SessionData{ID: "s1", UserID: "u1"})
	_, drop := connect(hub, &session.SessionData{ID: "s2", UserID: "u1"})

	require.Eventually(t, func() bool { return hub.TotalClients() == 2 }, time.Second, 5*time.Millisecond)

	hub.DisconnectSession("s2", "logged out")

	assert.Equal(t, 1, hub.TotalClients())
	assert.True(t, hub.IsUserConnected("u1"))
	assert.Eventually(t, func() bool {
		select {
		case <-drop.closed:
			return true
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
	assert.Contains(t, drop.types(), wstypes.EventTypeDisconnected)
	assert.NotContains(t, keep.types(), wstypes.EventTypeDisconnected)
}

type stubHandler struct{ seen chan string }

func (s *stubHandler) SupportedEvents() []wstypes.EventType {
	return []wstypes.EventType{wstypes.EventTypeConversationMarkRead}
}

func (s *stubHandler) HandleMessage(_ context.Context, client *Client, _ *wstypes.WSMessage) error {
	s.seen <- client.GetUserID()
	return nil
}

func TestClient_RoutesToRegisteredHandlerAndAnswersPing(t *testing.T) {
	hub := startHub(t)
	h := &stubHandler{seen: make(chan string, 1)}
	hub.RegisterHandler(h)

	_, conn := connect(hub, &session.SessionData{ID: "s1", UserID: "u9"})
	conn.reads <- []byte(`{"type":"conversation:mark_read","data":{"clientId":"x"}}`)
	conn.reads <- []byte(`{"type":"ping"}`)

	select {
	case user := <-h.seen:
		assert.Equal(t, "u9", user)
	case <-time.After(time.Second):
		t.Fatal("handler not called")
	}
	assert.Eventually(t, func() bool {
		for _, typ := range conn.types() {
			if typ == wstypes.EventTypePong {
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)
}
