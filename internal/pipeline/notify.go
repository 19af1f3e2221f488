package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	ferrors "git.home.luguber.info/inful/plenar/internal/foundation/errors"
	"git.home.luguber.info/inful/plenar/internal/logfields"
)

// Publisher sends a message on a subject. *nats.Conn implements it.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Notifier publishes ExportCompleted events to NATS so that consumers (a
// static site rebuild, a cache purge) can react to new exports.
type Notifier struct {
	conn    *nats.Conn
	pub     Publisher
	subject string
	logger  *slog.Logger
}

// ConnectNotifier connects to the NATS server at url.
func ConnectNotifier(url, subject string, logger *slog.Logger) (*Notifier, error) {
	conn, err := nats.Connect(url,
		nats.Name("plenar"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(5),
	)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryNetwork, "connect to NATS").
			WithContext("url", url).Retryable().Build()
	}
	n := NewNotifier(conn, subject, logger)
	n.conn = conn
	n.logger.Info("NATS notifier connected", slog.String("url", url), slog.String("subject", subject))
	return n, nil
}

// NewNotifier publishes through pub.
func NewNotifier(pub Publisher, subject string, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{pub: pub, subject: subject, logger: logger}
}

// Handle is a bus Handler for EventExportCompleted.
func (n *Notifier) Handle(ctx context.Context, e Event) error {
	ev, ok := e.(ExportCompleted)
	if !ok {
		return fmt.Errorf("unexpected event %s", e.Name())
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := n.pub.Publish(n.subject, data); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryNetwork, "publish export notification").
			WithContext("subject", n.subject).Retryable().Build()
	}
	if n.conn != nil {
		fctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := n.conn.FlushWithContext(fctx); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryNetwork, "flush NATS connection").Retryable().Build()
		}
	}
	n.logger.Info("Published export notification",
		logfields.RunID(ev.RunID),
		slog.String("subject", n.subject),
		slog.String("content_hash", ev.ContentHash))
	return nil
}

// Close drains the connection.
func (n *Notifier) Close() error {
	if n.conn == nil {
		return nil
	}
	return n.conn.Drain()
}
