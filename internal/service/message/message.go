// internal/service/message/message.go
package message

import (
	"context"
	"time"

	"crm-service/internal/domain/message"
	"crm-service/internal/events"
	xerrors "crm-service/internal/pkg/errors"
	"crm-service/internal/queue"

	"go.uber.org/zap"
)

const msgNotFound = "Message not found"

type MessageRepository interface {
	Create(ctx context.Context, m *message.Message) error
	FindByID(ctx context.Context, id string) (*message.Message, error)
	List(ctx context.Context, filters *message.MessageListFilters) ([]message.Message, error)
	Conversations(ctx context.Context) ([]message.Conversation, error)
	Update(ctx context.Context, id string, req *message.UpdateMessageRequest) (*message.Message, error)
	MarkRead(ctx context.Context, id string) (*message.Message, error)
	MarkClientRead(ctx context.Context, clientID string) (int64, error)
	UpdateDeliveryStatus(ctx context.Context, id, status string, deliveredAt *time.Time) (*message.Message, error)
	Delete(ctx context.Context, id string) error
}

// OutboundQueue hands outbound messages to the dispatcher.
type OutboundQueue interface {
	PublishOutbound(ctx context.Context, payload queue.OutboundPayload) error
}

type MessageService struct {
	repo     MessageRepository
	events   events.Publisher
	outbound OutboundQueue
	now      func() time.Time
	logger   *zap.Logger
}

// NewMessageService wires the inbox. publisher and outbound may be nil, in
// which case no realtime events are sent and outbound messages are only stored.
func NewMessageService(repo MessageRepository, publisher events.Publisher, outbound OutboundQueue, logger *zap.Logger) *MessageService {
	return &MessageService{
		repo:     repo,
		events:   publisher,
		outbound: outbound,
		now:      time.Now,
		logger:   logger,
	}
}

// CreateMessage stores a message. The signed-in user is recorded as sender
// when none is given. Outbound messages are queued for delivery.
func (s *MessageService) CreateMessage(ctx context.Context, actorID string, req *message.CreateMessageRequest) (*message.Message, error) {
	if req.SentBy == nil && actorID != "" {
		req.SentBy = &actorID
	}

	m := req.ToMessage(s.now().UTC())
	if err := s.repo.Create(ctx, m); err != nil {
		s.logger.Error("failed to create message", zap.Error(err))
		return nil, err
	}

	s.logger.Info("message created",
		zap.String("message_id", m.ID),
		zap.String("client_id", m.ClientID),
		zap.String("type", m.Type),
		zap.String("direction", m.Direction),
	)

	if m.Direction == message.DirectionOutbound && m.Status == message.StatusSent && s.outbound != nil {
		if err := s.outbound.PublishOutbound(ctx, queue.OutboundPayload{MessageID: m.ID}); err != nil {
			s.logger.Error("failed to queue outbound message", zap.String("message_id", m.ID), zap.Error(err))
			if failed, ferr := s.repo.UpdateDeliveryStatus(ctx, m.ID, message.StatusFailed, nil); ferr == nil {
				m = failed
			}
		}
	}

	s.emit(ctx, events.MessageCreated, m)
	return m, nil
}

func (s *MessageService) GetMessage(ctx context.Context, id string) (*message.Message, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, xerrors.NotFoundAs(err, msgNotFound)
	}
	return m, nil
}

func (s *MessageService) ListMessages(ctx context.Context, filters *message.MessageListFilters) ([]message.Message, error) {
	return s.repo.List(ctx, filters)
}

// Conversations returns one entry per client with their latest message and
// unread inbound count.
func (s *MessageService) Conversations(ctx context.Context) ([]message.Conversation, error) {
	return s.repo.Conversations(ctx)
}

func (s *MessageService) UpdateMessage(ctx context.Context, id string, req *message.UpdateMessageRequest) (*message.Message, error) {
	m, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, xerrors.NotFoundAs(err, msgNotFound)
	}

	s.emit(ctx, events.MessageUpdated, m)
	return m, nil
}

// MarkRead sets status read and stamps readAt.
func (s *MessageService) MarkRead(ctx context.Context, id string) (*message.Message, error) {
	m, err := s.repo.MarkRead(ctx, id)
	if err != nil {
		return nil, xerrors.NotFoundAs(err, msgNotFound)
	}

	s.emit(ctx, events.MessageRead, m)
	return m, nil
}

// MarkConversationRead marks every unread inbound message of a client read
// and returns how many changed.
func (s *MessageService) MarkConversationRead(ctx context.Context, clientID string) (int64, error) {
	n, err := s.repo.MarkClientRead(ctx, clientID)
	if err != nil {
		return 0, err
	}

	if n > 0 {
		events.Emit(ctx, s.events, s.logger, events.ConversationUpdated, clientID,
			map[string]interface{}{"clientId": clientID, "markedRead": n})
	}
	return n, nil
}

func (s *MessageService) DeleteMessage(ctx context.Context, id string) error {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return xerrors.NotFoundAs(err, msgNotFound)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return xerrors.NotFoundAs(err, msgNotFound)
	}

	events.Emit(ctx, s.events, s.logger, events.MessageDeleted, m.ClientID, map[string]string{"id": id})
	events.Emit(ctx, s.events, s.logger, events.ConversationUpdated, m.ClientID, map[string]string{"clientId": m.ClientID})
	return nil
}

// emit publishes the message event followed by a conversation refresh.
func (s *MessageService) emit(ctx context.Context, eventType string, m *message.Message) {
	events.Emit(ctx, s.events, s.logger, eventType, m.ClientID, m)
	events.Emit(ctx, s.events, s.logger, events.ConversationUpdated, m.ClientID, map[string]string{"clientId": m.ClientID})
}
