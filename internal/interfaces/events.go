package interfaces

import (
	"context"

	"github.com/bobmcallan/centavo/internal/models"
)

// EventPublisher emits ledger events to downstream consumers. Publish
// failures must never fail the ledger operation that produced the event.
type EventPublisher interface {
	Publish(ctx context.Context, event *models.LedgerEvent) error
	Close() error
}
