// Package events publishes order lifecycle events for downstream
// consumers (fulfilment, analytics). Publishing is optional: with no
// brokers configured the publisher is a no-op.
package events

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/segmentio/kafka-go"

	"github.com/lamnguyen-ct/storefront/internal/config"
	"github.com/lamnguyen-ct/storefront/internal/models"
)

const TypeOrderCompleted = "order.completed"

type OrderEvent struct {
	Type       string        `json:"type"`
	SessionID  string        `json:"session_id"`
	Order      *models.Order `json:"order"`
	OccurredAt time.Time     `json:"occurred_at"`
}

type Publisher interface {
	PublishOrderCompleted(ctx context.Context, order *models.Order) error
	Close() error
}

type kafkaPublisher struct {
	writer *kafka.Writer
}

func NewPublisher(cfg *config.Config) Publisher {
	if !cfg.Kafka.Enabled || len(cfg.Kafka.Brokers) == 0 {
		return &noopPublisher{}
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Kafka.Brokers...),
		Topic:        cfg.Kafka.Topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
	return &kafkaPublisher{writer: writer}
}

func (p *kafkaPublisher) PublishOrderCompleted(ctx context.Context, order *models.Order) error {
	event := OrderEvent{
		Type:       TypeOrderCompleted,
		SessionID:  order.SessionID,
		Order:      order,
		OccurredAt: time.Now(),
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(order.SessionID),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("publish order event: %w", err)
	}
	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

type noopPublisher struct{}

func (noopPublisher) PublishOrderCompleted(context.Context, *models.Order) error { return nil }
func (noopPublisher) Close() error                                               { return nil }
