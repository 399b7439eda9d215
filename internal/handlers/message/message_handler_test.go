package message

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"crm-service/internal/domain/message"
	"crm-service/internal/events"
	xerrors "crm-service/internal/pkg/errors"
	"crm-service/internal/pkg/validate"
	service "crm-service/internal/service/message"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	messageID = "5e6f7a8b-9c0d-4e1f-8a2b-3c4d5e6f7a8b"
	clientID  = "1a2b3c4d-5e6f-4a7b-8c9d-0e1f2a3b4c5d"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) Create(ctx context.Context, msg *message.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *mockRepo) FindByID(ctx context.Context, id string) (*message.Message, error) {
	args := m.Called(ctx, id)
	msg, _ := args.Get(0).(*message.Message)
	return msg, args.Error(1)
}

func (m *mockRepo) List(ctx context.Context, f *message.MessageListFilters) ([]message.Message, error) {
	args := m.Called(ctx, f)
	l, _ := args.Get(0).([]message.Message)
	return l, args.Error(1)
}

func (m *mockRepo) Conversations(ctx context.Context) ([]message.Conversation, error) {
	args := m.Called(ctx)
	l, _ := args.Get(0).([]message.Conversation)
	return l, args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, id string, req *message.UpdateMessageRequest) (*message.Message, error) {
	args := m.Called(ctx, id, req)
	msg, _ := args.Get(0).(*message.Message)
	return msg, args.Error(1)
}

func (m *mockRepo) MarkRead(ctx context.Context, id string) (*message.Message, error) {
	args := m.Called(ctx, id)
	msg, _ := args.Get(0).(*message.Message)
	return msg, args.Error(1)
}

func (m *mockRepo) MarkClientRead(ctx context.Context, cid string) (int64, error) {
	args := m.Called(ctx, cid)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepo) UpdateDeliveryStatus(ctx context.Context, id, status string, deliveredAt *time.Time) (*message.Message, error) {
	args := m.Called(ctx, id, status, deliveredAt)
	msg, _ := args.Get(0).(*message.Message)
	return msg, args.Error(1)
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// recorder keeps the types of published events.
type recorder struct{ types []string }

func (r *recorder) Publish(_ context.Context, evt events.Event) error {
	r.types = append(r.types, evt.Type)
	return nil
}

func setup() (*gin.Engine, *mockRepo, *recorder) {
	gin.SetMode(gin.TestMode)
	validate.Setup()

	repo := &mockRepo{}
	pub := &recorder{}
	h := NewMessageHandler(service.NewMessageService(repo, pub, nil, zap.NewNop()))

	r := gin.New()
	r.GET("/api/messages/:id", h.GetMessage)
	r.PATCH("/api/messages/:id/read", h.MarkRead)
	r.DELETE("/api/messages/:id", h.DeleteMessage)
	r.GET("/api/conversations", h.Conversations)
	return r, repo, pub
}

func do(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(""))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMarkRead(t *testing.T) {
	r, repo, pub := setup()
	readAt := time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)
	repo.On("MarkRead", mock.Anything, messageID).Return(&message.Message{
		ID: messageID, ClientID: clientID, Direction: message.DirectionInbound,
		Status: message.StatusRead, ReadAt: &readAt,
	}, nil)

	w := do(r, http.MethodPatch, "/api/messages/"+messageID+"/read")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"status":"read"`)
	assert.Contains(t, w.Body.String(), `"readAt":"2024-06-01T08:30:00Z"`)
	assert.Equal(t, []string{events.MessageRead, events.ConversationUpdated}, pub.types)
}

func TestMarkRead_Missing(t *testing.T) {
	r, repo, pub := setup()
	repo.On("MarkRead", mock.Anything, messageID).Return(nil, xerrors.ErrNotFound)

	w := do(r, http.MethodPatch, "/api/messages/"+messageID+"/read")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Message not found"}`, w.Body.String())
	assert.Empty(t, pub.types)
}

func TestDeleteMessage_ThenGetIsNotFound(t *testing.T) {
	r, repo, pub := setup()
	repo.On("FindByID", mock.Anything, messageID).
		Return(&message.Message{ID: messageID, ClientID: clientID}, nil).Once()
	repo.On("Delete", mock.Anything, messageID).Return(nil).Once()
	repo.On("FindByID", mock.Anything, messageID).Return(nil, xerrors.ErrNotFound)

	w := do(r, http.MethodDelete, "/api/messages/"+messageID)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, []string{events.MessageDeleted, events.ConversationUpdated}, pub.types)

	w = do(r, http.MethodGet, "/api/messages/"+messageID)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Message not found"}`, w.Body.String())
}

func TestDeleteMessage_Missing(t *testing.T) {
	r, repo, _ := setup()
	repo.On("FindByID", mock.Anything, messageID).Return(nil, xerrors.ErrNotFound)

	w := do(r, http.MethodDelete, "/api/messages/"+messageID)

	assert.Equal(t, http.StatusNotFound, w.Code)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestConversations(t *testing.T) {
	r, repo, _ := setup()
	last := &message.Message{ID: messageID, ClientID: clientID, Content: "hi"}
	repo.On("Conversations", mock.Anything).Return([]message.Conversation{
		{ClientID: clientID, LastMessage: last, UnreadCount: 2},
	}, nil)

	w := do(r, http.MethodGet, "/api/conversations")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"unreadCount":2`)
	assert.Contains(t, w.Body.String(), `"clientId":"`+clientID+`"`)
}
