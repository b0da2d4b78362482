// Package events implements the event publisher port on NATS.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/gametech/walletledger/internal/application/ports"
	domainevents "github.com/gametech/walletledger/internal/domain/events"
)

// Compile-time check
var _ ports.EventPublisher = (*NATSPublisher)(nil)

// NATSPublisher publishes domain events to NATS subjects. The subject
// is the event type under a fixed prefix, e.g.
// "walletledger.movement.completed". Delivery is fire-and-forget
// at-least-once; consumers deduplicate on event_id.
type NATSPublisher struct {
	conn   *nats.Conn
	prefix string
	logger *slog.Logger
}

// NewNATSPublisher connects to NATS and returns the publisher.
func NewNATSPublisher(url, prefix string, logger *slog.Logger) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("walletledger"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", slog.String("error", err.Error()))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("nats reconnected", slog.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}

	return &NATSPublisher{conn: conn, prefix: prefix, logger: logger}, nil
}

// Publish serializes the event to JSON and publishes it.
func (p *NATSPublisher) Publish(ctx context.Context, event domainevents.DomainEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", event.EventType(), err)
	}

	subject := p.prefix + "." + event.EventType()
	if err := p.conn.Publish(subject, payload); err != nil {
		return fmt.Errorf("publish to %s: %w", subject, err)
	}

	p.logger.DebugContext(ctx, "event published",
		slog.String("subject", subject),
		slog.String("event_id", event.EventID()))
	return nil
}

// Close drains the connection, flushing buffered messages.
func (p *NATSPublisher) Close() error {
	if err := p.conn.Drain(); err != nil {
		return fmt.Errorf("drain nats connection: %w", err)
	}
	return nil
}

// NoopPublisher discards events. Used when no broker is configured
// (local development, tests).
type NoopPublisher struct{}

// Publish does nothing.
func (NoopPublisher) Publish(context.Context, domainevents.DomainEvent) error { return nil }

// Close does nothing.
func (NoopPublisher) Close() error { return nil }
