// internal/queue/producer.go
package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"crm-service/internal/metrics"

	amqp "github.com/rabbitmq/amqp091-go"
)

// OutboundPayload asks the dispatcher to deliver a stored message.
type OutboundPayload struct {
	MessageID string `json:"messageId"`
}

type Producer struct {
	ch *amqp.Channel
}

func NewProducer(ch *amqp.Channel) *Producer {
	return &Producer{ch: ch}
}

func (p *Producer) PublishOutbound(ctx context.Context, payload OutboundPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal outbound payload: %w", err)
	}

	err = p.ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish outbound message: %w", err)
	}

	metrics.MessagesEnqueuedTotal.Inc()
	return nil
}
