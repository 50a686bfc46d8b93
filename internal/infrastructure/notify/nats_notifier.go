// Package notify publishes register lifecycle events for downstream
// consumers. Publishing is best effort and never blocks a write path.
package notify

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/nats-io/nats.go"

	"aiahub/internal/bootstrap/config"
	"aiahub/internal/errs"
	"aiahub/internal/ports"
)

// NATSNotifier fans register events out on a single subject.
type NATSNotifier struct {
	conn    *nats.Conn
	subject string
}

func NewNATSNotifier(ctx context.Context, cfg config.NATSConfig) (*NATSNotifier, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(err, "check context")
	}

	conn, err := nats.Connect(cfg.URL, nats.Name("aiahub"))
	if err != nil {
		return nil, errs.Wrapf(err, "connect nats %q", cfg.URL)
	}

	return &NATSNotifier{
		conn:    conn,
		subject: cfg.Subject,
	}, nil
}

func (n *NATSNotifier) Publish(ctx context.Context, event ports.RegisterEvent) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return errs.Wrap(err, "check context")
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return errs.Wrap(err, "marshal register event")
	}

	if err := n.conn.Publish(n.subject, payload); err != nil {
		return errs.Wrapf(err, "publish %q", n.subject)
	}
	return nil
}

// Close drains buffered messages before tearing the connection down.
func (n *NATSNotifier) Close() error {
	if n.conn == nil {
		return nil
	}
	return n.conn.Drain()
}
