package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/plenar/internal/config"
	ferrors "git.home.luguber.info/inful/plenar/internal/foundation/errors"
)

// TestDefaultPolicy verifies the baseline default values.
func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	require.Equal(t, config.BackoffLinear, p.Mode)
	require.Equal(t, time.Second, p.Initial)
	require.Equal(t, 30*time.Second, p.Max)
	require.Equal(t, 2, p.MaxRetries)
}

// TestNewPolicyOverrides checks override precedence and clamping when initial > max.
func TestNewPolicyOverrides(t *testing.T) {
	p := NewPolicy(config.BackoffFixed, 5*time.Second, 2*time.Second, 5)
	require.Equal(t, 2*time.Second, p.Initial)
	require.Equal(t, 2*time.Second, p.Max)
	require.Equal(t, config.BackoffFixed, p.Mode)
	require.Equal(t, 5, p.MaxRetries)
}

func TestFromConfig(t *testing.T) {
	p := FromConfig(config.Default().Source.Retry)
	require.Equal(t, config.BackoffExponential, p.Mode)
	require.Equal(t, time.Second, p.Initial)
	require.Equal(t, 10*time.Second, p.Max)
	require.Equal(t, 2, p.MaxRetries)
}

// TestDelayModes ensures fixed, linear, exponential behave and respect cap.
func TestDelayModes(t *testing.T) {
	fixed := NewPolicy(config.BackoffFixed, 100*time.Millisecond, 500*time.Millisecond, 3)
	for i := 1; i <= 3; i++ {
		require.Equal(t, 100*time.Millisecond, fixed.Delay(i))
	}

	linear := NewPolicy(config.BackoffLinear, 100*time.Millisecond, 250*time.Millisecond, 5)
	cases := []struct {
		attempt int
		want    time.Duration
	}{{1, 100 * time.Millisecond}, {2, 200 * time.Millisecond}, {3, 250 * time.Millisecond}, {4, 250 * time.Millisecond}}
	for _, c := range cases {
		require.Equal(t, c.want, linear.Delay(c.attempt), "linear attempt %d", c.attempt)
	}

	exp := NewPolicy(config.BackoffExponential, 50*time.Millisecond, 160*time.Millisecond, 5)
	expCases := []struct {
		attempt int
		want    time.Duration
	}{{1, 50 * time.Millisecond}, {2, 100 * time.Millisecond}, {3, 160 * time.Millisecond}, {4, 160 * time.Millisecond}}
	for _, c := range expCases {
		require.Equal(t, c.want, exp.Delay(c.attempt), "exp attempt %d", c.attempt)
	}
}

// TestDelayEdgeCases ensures non-positive attempts yield zero.
func TestDelayEdgeCases(t *testing.T) {
	p := NewPolicy(config.BackoffLinear, 10*time.Millisecond, 20*time.Millisecond, 1)
	require.Zero(t, p.Delay(0))
	require.Zero(t, p.Delay(-1))
}

// TestValidate covers validation error paths.
func TestValidate(t *testing.T) {
	require.Error(t, Policy{Mode: config.BackoffLinear, Initial: 0, Max: time.Second, MaxRetries: 1}.Validate())
	require.Error(t, Policy{Mode: config.BackoffLinear, Initial: time.Second, Max: 0, MaxRetries: 1}.Validate())
	require.Error(t, Policy{Mode: config.BackoffLinear, Initial: time.Second, Max: 2 * time.Second, MaxRetries: -1}.Validate())
	require.NoError(t, Policy{Mode: config.BackoffLinear, Initial: time.Second, Max: 2 * time.Second}.Validate())
}

// TestUnknownModeFallsBack leaves mode default when unknown string supplied.
func TestUnknownModeFallsBack(t *testing.T) {
	p := NewPolicy("weird", 250*time.Millisecond, 500*time.Millisecond, 1)
	require.Equal(t, config.BackoffLinear, p.Mode)
}

func TestDo_RetriesUntilSuccess(t *testing.T) {
	p := NewPolicy(config.BackoffFixed, time.Millisecond, time.Millisecond, 3)
	calls := 0
	var retried []int
	err := p.Do(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("flaky")
		}
		return nil
	}, func(attempt int, _ error) { retried = append(retried, attempt) })
	require.NoError(t, err)
	require.Equal(t, 3, calls)
	require.Equal(t, []int{1, 2}, retried)
}

func TestDo_StopsOnNonRetryable(t *testing.T) {
	p := NewPolicy(config.BackoffFixed, time.Millisecond, time.Millisecond, 5)
	calls := 0
	err := p.Do(context.Background(), func(context.Context) error {
		calls++
		return ferrors.ValidationError("bad input").Build()
	}, nil)
	require.Error(t, err)
	require.Equal(t, 1, calls)
}

func TestDo_ExhaustsRetries(t *testing.T) {
	p := NewPolicy(config.BackoffFixed, time.Millisecond, time.Millisecond, 2)
	calls := 0
	err := p.Do(context.Background(), func(context.Context) error {
		calls++
		return ferrors.NetworkError("down").Build()
	}, nil)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryNetwork))
	require.Equal(t, 3, calls)
}

func TestDo_ContextCancelled(t *testing.T) {
	p := NewPolicy(config.BackoffFixed, time.Hour, time.Hour, 2)
	ctx, cancel := context.WithCancel(context.Background())
	err := p.Do(ctx, func(context.Context) error {
		cancel()
		return errors.New("boom")
	}, nil)
	require.ErrorIs(t, err, context.Canceled)
}
