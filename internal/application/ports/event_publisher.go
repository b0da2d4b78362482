package ports

import (
	"context"

	"github.com/gametech/walletledger/internal/domain/events"
)

// EventPublisher pushes domain events to the message bus.
//
// Publishing happens after the database transaction commits and is best
// effort: implementations log failures instead of returning them to the
// movement that produced the event.
type EventPublisher interface {
	// Publish sends one event. Delivery is at-least-once; consumers
	// must deduplicate on EventID.
	Publish(ctx context.Context, event events.DomainEvent) error

	// Close flushes and releases the underlying connection.
	Close() error
}
