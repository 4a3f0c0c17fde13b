// Package events publishes order outcome events to Kafka for
// downstream fulfillment and reporting. Publishing is best-effort: the
// orchestrator records a failure in metrics/logs and moves on, so a
// broker outage never affects the caller-visible result.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Sardaar2003/fortigatex-sub001/internal/domain"
	"github.com/Sardaar2003/fortigatex-sub001/internal/ports"
	"github.com/Sardaar2003/fortigatex-sub001/pkg/metrics"
)

var _ ports.OutcomePublisher = (*Publisher)(nil)

type Config struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}

// OutcomeEvent: the wire shape downstream consumers see.
type OutcomeEvent struct {
	OrderUID         string         `json:"order_uid"`
	Project          domain.Project `json:"project"`
	UserID           string         `json:"user_id"`
	Status           domain.Status  `json:"status"`
	ValidationStatus bool           `json:"validation_status"`
	Message          string         `json:"message,omitempty"`
	OccurredAt       time.Time      `json:"occurred_at"`
}

type Publisher struct {
	writer    *kafka.Writer
	closeOnce sync.Once
}

func NewPublisher(cfg Config) *Publisher {
	wt := cfg.WriteTimeout
	if wt <= 0 {
		wt = 10 * time.Second
	}
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			WriteTimeout: wt,
		},
	}
}

// PublishOutcome writes one event keyed by order uid (per-order
// ordering within a partition).
func (p *Publisher) PublishOutcome(ctx context.Context, order *domain.Order) error {
	ev := OutcomeEvent{
		OrderUID:         order.OrderUID,
		Project:          order.Project,
		UserID:           order.UserID,
		Status:           order.Status,
		ValidationStatus: order.ValidationStatus,
		Message:          order.ValidationMessage,
		OccurredAt:       time.Now().UTC(),
	}
	value, err := json.Marshal(ev)
	if err != nil {
		metrics.OutcomeEvents.WithLabelValues("failed").Inc()
		return fmt.Errorf("marshal outcome event: %w", err)
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(order.OrderUID),
		Value: value,
	}); err != nil {
		metrics.OutcomeEvents.WithLabelValues("failed").Inc()
		return fmt.Errorf("write outcome event: %w", err)
	}
	metrics.OutcomeEvents.WithLabelValues("published").Inc()
	return nil
}

func (p *Publisher) Close() (retErr error) {
	p.closeOnce.Do(func() {
		retErr = p.writer.Close()
	})
	return retErr
}

// Noop: used when no brokers are configured.
type Noop struct{}

func (Noop) PublishOutcome(context.Context, *domain.Order) error { return nil }
func (Noop) Close() error                                        { return nil }
