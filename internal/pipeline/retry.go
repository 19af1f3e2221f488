package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/plenar/internal/logfields"
	"git.home.luguber.info/inful/plenar/internal/retry"
)

// WithRetry wraps a handler with the retry policy. Events whose handler
// still fails are parked in dlq.
func WithRetry(h Handler, policy retry.Policy, dlq *DeadLetterQueue) Handler {
	return func(ctx context.Context, e Event) error {
		err := policy.Do(ctx, func(ctx context.Context) error { return h(ctx, e) }, func(attempt int, err error) {
			slog.Info("Retrying event handler",
				slog.String("event", e.Name()),
				slog.Int("attempt", attempt),
				logfields.Error(err))
		})
		if err == nil {
			return nil
		}
		slog.Error("Event handler failed after retries", slog.String("event", e.Name()), logfields.Error(err))
		if dlq != nil {
			dlq.Enqueue(FailedEvent{Event: e, Error: err, Timestamp: time.Now()})
		}
		return fmt.Errorf("handle %s: %w", e.Name(), err)
	}
}
