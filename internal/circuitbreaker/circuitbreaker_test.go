package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errCarrierDown = errors.New("carrier down")

type transition struct {
	from, to State
}

func recordTransitions(cfg *Config) *[]transition {
	var seen []transition
	cfg.OnStateChange = func(_ string, from, to State) {
		seen = append(seen, transition{from, to})
	}
	return &seen
}

func run(cb *CircuitBreaker, results ...error) []error {
	errs := make([]error, 0, len(results))
	for _, result := range results {
		errs = append(errs, cb.Execute(context.Background(), func() error { return result }))
	}
	return errs
}

func TestCircuitBreaker_Transitions(t *testing.T) {
	tests := []struct {
		name      string
		threshold int
		results   []error
		wait      time.Duration
		after     []error
		wantState State
		wantSeen  []transition
	}{
		{
			name:      "stays closed below the threshold",
			threshold: 3,
			results:   []error{errCarrierDown, errCarrierDown, nil, errCarrierDown},
			wantState: StateClosed,
		},
		{
			name:      "opens at the threshold",
			threshold: 2,
			results:   []error{errCarrierDown, errCarrierDown},
			wantState: StateOpen,
			wantSeen:  []transition{{StateClosed, StateOpen}},
		},
		{
			name:      "closes after a successful trial call",
			threshold: 1,
			results:   []error{errCarrierDown},
			wait:      30 * time.Millisecond,
			after:     []error{nil},
			wantState: StateClosed,
			wantSeen:  []transition{{StateClosed, StateOpen}, {StateOpen, StateHalfOpen}, {StateHalfOpen, StateClosed}},
		},
		{
			name:      "reopens after a failed trial call",
			threshold: 1,
			results:   []error{errCarrierDown},
			wait:      30 * time.Millisecond,
			after:     []error{errCarrierDown},
			wantState: StateOpen,
			wantSeen:  []transition{{StateClosed, StateOpen}, {StateOpen, StateHalfOpen}, {StateHalfOpen, StateOpen}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{FailureThreshold: tt.threshold, SuccessThreshold: 1, Timeout: 20 * time.Millisecond, Name: "carrier"}
			seen := recordTransitions(&cfg)
			cb := New(cfg)

			run(cb, tt.results...)
			time.Sleep(tt.wait)
			run(cb, tt.after...)

			assert.Equal(t, tt.wantState, cb.State())
			assert.Equal(t, tt.wantSeen, *seen)
		})
	}
}

func TestCircuitBreaker_OpenRejectsWithoutCalling(t *testing.T) {
	cb := New(Config{FailureThreshold: 1, SuccessThreshold: 1, Timeout: time.Hour, Name: "carrier"})
	run(cb, errCarrierDown)

	called := false
	err := cb.Execute(context.Background(), func() error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
	assert.True(t, cb.IsOpen())
}

func TestCircuitBreaker_ExcludedErrorsDoNotCount(t *testing.T) {
	errRejected := errors.New("shipment rejected")
	cb := New(Config{
		FailureThreshold: 1,
		SuccessThreshold: 1,
		Timeout:          time.Hour,
		Name:             "carrier",
		IsExcluded:       func(err error) bool { return errors.Is(err, errRejected) },
	})

	errs := run(cb, errRejected, errRejected)

	assert.Equal(t, []error{errRejected, errRejected}, errs)
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_CanceledContext(t *testing.T) {
	cb := New(DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := cb.Execute(ctx, func() error {
		t.Fatal("fn must not run on a canceled context")
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestCircuitBreaker_Stats(t *testing.T) {
	cb := New(Config{FailureThreshold: 2, Name: "postgres-audit"})
	assert.Equal(t, "postgres-audit", cb.Name())

	run(cb, errCarrierDown)
	stats := cb.GetStats()
	assert.Equal(t, "closed", stats.State)
	assert.Equal(t, 1, stats.FailureCount)
	assert.True(t, stats.IsHealthy)
	assert.False(t, stats.LastFailure.IsZero())

	run(cb, errCarrierDown)
	stats = cb.GetStats()
	require.Equal(t, "open", stats.State)
	assert.False(t, stats.IsHealthy)
}

func TestNew_ClampsThresholds(t *testing.T) {
	cb := New(Config{Name: "zero"})
	run(cb, errCarrierDown)
	assert.True(t, cb.IsOpen())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "unknown", State(42).String())
}
