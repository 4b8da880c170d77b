//go:build !integration

package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBackend = errors.New("backend unavailable")

func fail() error    { return errBackend }
func succeed() error { return nil }

func TestCircuitBreaker_Execute(t *testing.T) {
	tests := []struct {
		name      string
		calls     []func() error
		wantErr   error
		wantState State
	}{
		{
			name:      "success keeps circuit closed",
			calls:     []func() error{succeed},
			wantState: StateClosed,
		},
		{
			name:      "failure below threshold stays closed",
			calls:     []func() error{fail},
			wantErr:   errBackend,
			wantState: StateClosed,
		},
		{
			name:      "failures at threshold open the circuit",
			calls:     []func() error{fail, fail},
			wantErr:   errBackend,
			wantState: StateOpen,
		},
		{
			name:      "success resets the failure count",
			calls:     []func() error{fail, succeed, fail},
			wantErr:   errBackend,
			wantState: StateClosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb := New(Config{FailureThreshold: 2, SuccessThreshold: 1, Timeout: time.Minute, Name: "test"})

			var err error
			for _, call := range tt.calls {
				err = cb.Execute(context.Background(), call)
			}

			assert.Equal(t, tt.wantErr, err)
			assert.Equal(t, tt.wantState, cb.State())
		})
	}
}

func TestCircuitBreaker_OpenRejectsCalls(t *testing.T) {
	cb := New(Config{FailureThreshold: 1, SuccessThreshold: 1, Timeout: time.Minute, Name: "test"})
	_ = cb.Execute(context.Background(), fail)

	called := false
	err := cb.Execute(context.Background(), func() error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
	assert.True(t, cb.IsOpen())
}

func TestCircuitBreaker_CanceledContext(t *testing.T) {
	cb := New(DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := cb.Execute(ctx, succeed)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, cb.GetStats().FailureCount)
}

func TestCircuitBreaker_Recovery(t *testing.T) {
	cb := New(Config{FailureThreshold: 2, SuccessThreshold: 2, Timeout: 50 * time.Millisecond, Name: "test"})

	_ = cb.Execute(context.Background(), fail)
	_ = cb.Execute(context.Background(), fail)
	require.Equal(t, StateOpen, cb.State())

	time.Sleep(60 * time.Millisecond)

	require.NoError(t, cb.Execute(context.Background(), succeed))
	assert.Equal(t, StateHalfOpen, cb.State())

	require.NoError(t, cb.Execute(context.Background(), succeed))
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	cb := New(Config{FailureThreshold: 2, SuccessThreshold: 2, Timeout: 50 * time.Millisecond, Name: "test"})

	_ = cb.Execute(context.Background(), fail)
	_ = cb.Execute(context.Background(), fail)
	time.Sleep(60 * time.Millisecond)

	err := cb.Execute(context.Background(), fail)

	assert.ErrorIs(t, err, errBackend)
	assert.Equal(t, StateOpen, cb.State())
}

func TestCircuitBreaker_OnStateChange(t *testing.T) {
	type change struct{ from, to State }
	var changes []change

	cb := New(Config{
		FailureThreshold: 1,
		SuccessThreshold: 1,
		Timeout:          20 * time.Millisecond,
		Name:             "audit-log",
		OnStateChange: func(name string, from, to State) {
			assert.Equal(t, "audit-log", name)
			changes = append(changes, change{from, to})
		},
	})

	_ = cb.Execute(context.Background(), fail)
	time.Sleep(30 * time.Millisecond)
	_ = cb.Execute(context.Background(), succeed)

	assert.Equal(t, []change{
		{StateClosed, StateClosed},
		{StateClosed, StateOpen},
		{StateOpen, StateHalfOpen},
		{StateHalfOpen, StateClosed},
	}, changes)
}

func TestCircuitBreaker_GetStats(t *testing.T) {
	cb := New(DefaultConfig())

	stats := cb.GetStats()
	assert.Equal(t, "circuit-breaker", stats.Name)
	assert.Equal(t, "closed", stats.State)
	assert.True(t, stats.IsHealthy)
	assert.Equal(t, 0, stats.FailureCount)

	_ = cb.Execute(context.Background(), fail)

	stats = cb.GetStats()
	assert.Equal(t, 1, stats.FailureCount)
	assert.False(t, stats.LastFailure.IsZero())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "unknown", State(9).String())
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, 5, config.FailureThreshold)
	assert.Equal(t, 2, config.SuccessThreshold)
	assert.Equal(t, 30*time.Second, config.Timeout)
	assert.Equal(t, "circuit-breaker", config.Name)
	assert.Nil(t, config.OnStateChange)
}

func TestCircuitBreaker_IsFailure(t *testing.T) {
	notFound := errors.New("not found")

	tests := []struct {
		name      string
		cfg       Config
		err       error
		wantState State
	}{
		{
			name:      "caller cancellation is not a backend failure",
			cfg:       Config{FailureThreshold: 1, SuccessThreshold: 1, Timeout: time.Minute},
			err:       context.Canceled,
			wantState: StateClosed,
		},
		{
			name:      "deadline counts by default",
			cfg:       Config{FailureThreshold: 1, SuccessThreshold: 1, Timeout: time.Minute},
			err:       context.DeadlineExceeded,
			wantState: StateOpen,
		},
		{
			name: "custom classifier",
			cfg: Config{FailureThreshold: 1, SuccessThreshold: 1, Timeout: time.Minute,
				IsFailure: func(err error) bool { return !errors.Is(err, notFound) }},
			err:       notFound,
			wantState: StateClosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb := New(tt.cfg)

			err := cb.Execute(context.Background(), func() error { return tt.err })

			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.wantState, cb.State())
		})
	}
}

func TestCircuitBreaker_SingleHalfOpenProbe(t *testing.T) {
	cb := New(Config{FailureThreshold: 1, SuccessThreshold: 1, Timeout: 10 * time.Millisecond, Name: "test"})
	_ = cb.Execute(context.Background(), fail)
	time.Sleep(20 * time.Millisecond)

	inProbe := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- cb.Execute(context.Background(), func() error {
			close(inProbe)
			<-release
			return nil
		})
	}()
	<-inProbe

	err := cb.Execute(context.Background(), succeed)
	assert.ErrorIs(t, err, ErrCircuitOpen)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, StateClosed, cb.State())
}

func TestCall(t *testing.T) {
	cb := New(Config{FailureThreshold: 1, SuccessThreshold: 1, Timeout: time.Minute})

	n, err := Call(context.Background(), cb, func() (int, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	_, err = Call(context.Background(), cb, func() (int, error) { return 0, errBackend })
	assert.ErrorIs(t, err, errBackend)

	n, err = Call(context.Background(), cb, func() (int, error) { return 7, nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Zero(t, n)
}
