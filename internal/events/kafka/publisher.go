// Package kafka publishes ledger events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/bobmcallan/centavo/internal/common"
	"github.com/bobmcallan/centavo/internal/interfaces"
	"github.com/bobmcallan/centavo/internal/models"
)

// Compile-time interface check
var _ interfaces.EventPublisher = (*Publisher)(nil)

// Publisher writes ledger events to Kafka as JSON, keyed by user id so that
// one user's events stay ordered within a partition.
type Publisher struct {
	writer *kafka.Writer
	logger *common.Logger
}

// NewPublisher creates a Kafka publisher from the events configuration.
func NewPublisher(cfg common.EventsConfig, logger *common.Logger) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		WriteTimeout: cfg.GetWriteTimeout(),
		// The ledger never blocks on delivery; failures surface via logs.
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}
	logger.Info().Strs("brokers", cfg.Brokers).Str("topic", cfg.Topic).
		Msg("Kafka event publisher initialized")
	return &Publisher{writer: writer, logger: logger}
}

// Publish writes one event. The caller treats failures as non-fatal.
func (p *Publisher) Publish(ctx context.Context, event *models.LedgerEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(event.UserID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
			{Key: "severity", Value: []byte(event.Severity)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish ledger event: %w", err)
	}
	return nil
}

// Close flushes and shuts down the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
