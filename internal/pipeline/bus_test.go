package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/plenar/internal/config"
	ferrors "git.home.luguber.info/inful/plenar/internal/foundation/errors"
	"git.home.luguber.info/inful/plenar/internal/retry"
)

func TestBus_PublishStopsAtFirstError(t *testing.T) {
	bus := NewBus()
	var calls []string
	bus.Subscribe(EventExportCompleted, func(context.Context, Event) error {
		calls = append(calls, "first")
		return errors.New("fail")
	})
	bus.Subscribe(EventExportCompleted, func(context.Context, Event) error {
		calls = append(calls, "second")
		return nil
	})
	bus.Subscribe(EventExportCompleted, nil)

	require.Error(t, bus.Publish(context.Background(), ExportCompleted{}))
	require.Equal(t, []string{"first"}, calls)
	require.NoError(t, bus.Publish(context.Background(), otherEvent{}))
}

type otherEvent struct{}

func (otherEvent) Name() string { return "Other" }

func TestWithRetry_ParksExhaustedEvents(t *testing.T) {
	policy := retry.NewPolicy(config.BackoffFixed, time.Millisecond, time.Millisecond, 2)
	dlq := NewDeadLetterQueue(0)

	calls := 0
	h := WithRetry(func(context.Context, Event) error {
		calls++
		return errors.New("temporary")
	}, policy, dlq)
	require.Error(t, h(context.Background(), ExportCompleted{RunID: "r1"}))
	require.Equal(t, 3, calls)
	require.Equal(t, 1, dlq.Len())

	parked := dlq.Drain()
	require.Equal(t, "r1", parked[0].Event.(ExportCompleted).RunID)
	require.Zero(t, dlq.Len())
}

func TestWithRetry_NonRetryableFailsFast(t *testing.T) {
	policy := retry.NewPolicy(config.BackoffFixed, time.Millisecond, time.Millisecond, 5)
	calls := 0
	h := WithRetry(func(context.Context, Event) error {
		calls++
		return ferrors.ValidationError("bad event").Build()
	}, policy, nil)
	require.Error(t, h(context.Background(), ExportCompleted{}))
	require.Equal(t, 1, calls)
}

func TestWithRetry_SucceedsAfterRetry(t *testing.T) {
	policy := retry.NewPolicy(config.BackoffFixed, time.Millisecond, time.Millisecond, 2)
	dlq := NewDeadLetterQueue(0)
	calls := 0
	h := WithRetry(func(context.Context, Event) error {
		calls++
		if calls == 1 {
			return errors.New("temporary")
		}
		return nil
	}, policy, dlq)
	require.NoError(t, h(context.Background(), ExportCompleted{}))
	require.Zero(t, dlq.Len())
}

func TestDeadLetterQueue_Capacity(t *testing.T) {
	dlq := NewDeadLetterQueue(2)
	for _, id := range []string{"a", "b", "c"} {
		dlq.Enqueue(FailedEvent{Event: ExportCompleted{RunID: id}})
	}
	parked := dlq.Drain()
	require.Len(t, parked, 2)
	require.Equal(t, "b", parked[0].Event.(ExportCompleted).RunID)
	require.Equal(t, "c", parked[1].Event.(ExportCompleted).RunID)
}

func TestNotifier_RejectsOtherEvents(t *testing.T) {
	n := NewNotifier(&capturePublisher{}, "s", nil)
	require.Error(t, n.Handle(context.Background(), otherEvent{}))
	require.NoError(t, n.Close())
}

func TestNotifier_PublishFailureIsRetryable(t *testing.T) {
	n := NewNotifier(&capturePublisher{err: errors.New("no responders")}, "s", nil)
	err := n.Handle(context.Background(), ExportCompleted{})
	require.True(t, ferrors.IsRetryable(err))
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryNetwork))
}
