// internal/queue/consumer.go
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// ErrPermanent marks a delivery that must not be retried.
var ErrPermanent = errors.New("permanent failure")

// Handler processes one outbound request.
type Handler interface {
	HandleOutbound(ctx context.Context, payload OutboundPayload) error
}

type Consumer struct {
	ch       *amqp.Channel
	handler  Handler
	prefetch int
	logger   *zap.Logger
}

func NewConsumer(ch *amqp.Channel, handler Handler, prefetch int, logger *zap.Logger) *Consumer {
	if prefetch <= 0 {
		prefetch = 1
	}
	return &Consumer{ch: ch, handler: handler, prefetch: prefetch, logger: logger}
}

// Run consumes until ctx is cancelled or the channel closes.
func (c *Consumer) Run(ctx context.Context) error {
	if err := c.ch.Qos(c.prefetch, 0, false); err != nil {
		return fmt.Errorf("failed to set prefetch: %w", err)
	}

	deliveries, err := c.ch.Consume(QueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("consumer started", zap.String("queue", QueueName))

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("delivery channel closed")
			}
			c.handle(ctx, d)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, d amqp.Delivery) {
	var payload OutboundPayload
	if err := json.Unmarshal(d.Body, &payload); err != nil || payload.MessageID == "" {
		c.logger.Warn("rejecting malformed delivery", zap.ByteString("body", d.Body), zap.Error(err))
		d.Nack(false, false)
		return
	}

	if err := c.handler.HandleOutbound(ctx, payload); err != nil {
		// Permanent failures go to the DLQ, anything else is retried once
		// by redelivery before following them.
		requeue := !errors.Is(err, ErrPermanent) && !d.Redelivered
		c.logger.Error("outbound delivery failed",
			zap.String("message_id", payload.MessageID),
			zap.Bool("requeue", requeue),
			zap.Error(err),
		)
		d.Nack(false, requeue)
		return
	}

	d.Ack(false)
}
