// Package events provides ledger event publishers.
package events

import (
	"context"

	"github.com/bobmcallan/centavo/internal/interfaces"
	"github.com/bobmcallan/centavo/internal/models"
)

// Compile-time interface check
var _ interfaces.EventPublisher = (*NoopPublisher)(nil)

// NoopPublisher discards events. Used when no broker is configured.
type NoopPublisher struct{}

// NewNoopPublisher creates a publisher that drops everything.
func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (p *NoopPublisher) Publish(_ context.Context, _ *models.LedgerEvent) error { return nil }

func (p *NoopPublisher) Close() error { return nil }
