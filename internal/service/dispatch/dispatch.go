// internal/service/dispatch/dispatch.go
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"crm-service/internal/domain/client"
	"crm-service/internal/domain/message"
	"crm-service/internal/events"
	"crm-service/internal/metrics"
	xerrors "crm-service/internal/pkg/errors"
	"crm-service/internal/queue"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type MessageStore interface {
	FindByID(ctx context.Context, id string) (*message.Message, error)
	UpdateDeliveryStatus(ctx context.Context, id, status string, deliveredAt *time.Time) (*message.Message, error)
}

type ClientLookup interface {
	FindByID(ctx context.Context, id string) (*client.Client, error)
}

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Dispatcher delivers queued outbound messages to clients.
type Dispatcher struct {
	messages MessageStore
	clients  ClientLookup
	mailer   Mailer
	limiter  *rate.Limiter
	events   events.Publisher
	subject  string
	now      func() time.Time
	logger   *zap.Logger
}

// NewDispatcher builds a dispatcher sending at most perSecond emails per
// second. A nil mailer fails every email.
func NewDispatcher(
	messages MessageStore,
	clients ClientLookup,
	mailer Mailer,
	perSecond float64,
	publisher events.Publisher,
	subject string,
	logger *zap.Logger,
) *Dispatcher {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	if subject == "" {
		subject = "A message from our team"
	}
	return &Dispatcher{
		messages: messages,
		clients:  clients,
		mailer:   mailer,
		limiter:  rate.NewLimiter(limit, 1),
		events:   publisher,
		subject:  subject,
		now:      time.Now,
		logger:   logger,
	}
}

// HandleOutbound delivers one message. Messages that were deleted or already
// settled are acknowledged without action. Delivery failures are recorded on
// the message and acknowledged; only store errors are returned for retry.
func (d *Dispatcher) HandleOutbound(ctx context.Context, payload queue.OutboundPayload) error {
	m, err := d.messages.FindByID(ctx, payload.MessageID)
	if errors.Is(err, xerrors.ErrNotFound) {
		d.logger.Info("outbound message no longer exists", zap.String("message_id", payload.MessageID))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load message: %w", err)
	}

	if m.Direction != message.DirectionOutbound || m.Status != message.StatusSent {
		d.logger.Debug("skipping settled message",
			zap.String("message_id", m.ID),
			zap.String("status", m.Status),
		)
		return nil
	}

	sendErr := d.deliver(ctx, m)
	if errors.Is(sendErr, context.Canceled) {
		return sendErr
	}

	status := message.StatusDelivered
	var deliveredAt *time.Time
	if sendErr != nil {
		status = message.StatusFailed
		d.logger.Warn("outbound delivery failed",
			zap.String("message_id", m.ID),
			zap.String("type", m.Type),
			zap.Error(sendErr),
		)
	} else {
		now := d.now().UTC()
		deliveredAt = &now
	}

	updated, err := d.messages.UpdateDeliveryStatus(ctx, m.ID, status, deliveredAt)
	if err != nil {
		return fmt.Errorf("failed to record delivery status: %w", err)
	}

	metrics.RecordDispatch(m.Type, status)
	d.logger.Info("outbound message settled",
		zap.String("message_id", m.ID),
		zap.String("status", status),
	)

	events.Emit(ctx, d.events, d.logger, events.MessageUpdated, updated.ClientID, updated)
	events.Emit(ctx, d.events, d.logger, events.ConversationUpdated, updated.ClientID,
		map[string]string{"clientId": updated.ClientID})
	return nil
}

func (d *Dispatcher) deliver(ctx context.Context, m *message.Message) error {
	switch m.Type {
	case message.TypeEmail:
		if d.mailer == nil {
			return errors.New("no SMTP server configured")
		}
		c, err := d.clients.FindByID(ctx, m.ClientID)
		if err != nil {
			return fmt.Errorf("failed to load client: %w", err)
		}
		if err := d.limiter.Wait(ctx); err != nil {
			return err
		}
		return d.mailer.Send(ctx, c.Email, d.subject, m.Content)
	case message.TypeSMS:
		return errors.New("no SMS gateway configured")
	default:
		return fmt.Errorf("unsupported message type %q", m.Type)
	}
}
