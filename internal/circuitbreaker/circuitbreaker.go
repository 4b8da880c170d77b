// Package circuitbreaker guards calls to the audit and idempotency backends
// so a failing dependency is skipped instead of slowing every quote.
package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrCircuitOpen is returned instead of calling a backend that is tripped.
var ErrCircuitOpen = errors.New("circuit breaker is open")

type State int

const (
	StateClosed State = iota
	// StateHalfOpen admits one probe at a time.
	StateHalfOpen
	// StateOpen rejects calls until Timeout has passed since the last failure.
	StateOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateHalfOpen:
		return "half-open"
	case StateOpen:
		return "open"
	}
	return "unknown"
}

// Config tunes a breaker. FailureThreshold consecutive failures open it and
// SuccessThreshold consecutive half-open successes close it again.
type Config struct {
	FailureThreshold int
	SuccessThreshold int
	Timeout          time.Duration
	// Name labels logs, metrics and readiness output.
	Name string
	// OnStateChange runs with the breaker locked after every transition,
	// and once from New with from == to == StateClosed.
	OnStateChange func(name string, from, to State)
	// IsFailure decides which errors count against the backend. The default
	// ignores cancellation by the caller.
	IsFailure func(err error) bool
}

func DefaultConfig() Config {
	return Config{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Timeout:          30 * time.Second,
		Name:             "circuit-breaker",
	}
}

func defaultIsFailure(err error) bool {
	return !errors.Is(err, context.Canceled)
}

type CircuitBreaker struct {
	cfg Config

	mu          sync.RWMutex
	state       State
	failures    int
	successes   int
	lastFailure time.Time
	probing     bool
}

func New(cfg Config) *CircuitBreaker {
	if cfg.IsFailure == nil {
		cfg.IsFailure = defaultIsFailure
	}
	if cfg.OnStateChange != nil {
		cfg.OnStateChange(cfg.Name, StateClosed, StateClosed)
	}
	return &CircuitBreaker{cfg: cfg, state: StateClosed}
}

func (cb *CircuitBreaker) Name() string {
	return cb.cfg.Name
}

// Execute runs fn unless the breaker rejects the call, and records the
// outcome. A context that is already done is returned without touching
// the breaker.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	probe, err := cb.admit()
	if err != nil {
		return err
	}
	err = fn()
	cb.record(probe, err)
	return err
}

// Call is Execute for functions that also return a value.
func Call[T any](ctx context.Context, cb *CircuitBreaker, fn func() (T, error)) (T, error) {
	var out T
	err := cb.Execute(ctx, func() error {
		var err error
		out, err = fn()
		return err
	})
	return out, err
}

// admit reports whether the call may proceed and whether it is the
// half-open probe.
func (cb *CircuitBreaker) admit() (bool, error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateOpen:
		if time.Since(cb.lastFailure) < cb.cfg.Timeout {
			return false, ErrCircuitOpen
		}
		cb.successes = 0
		cb.setState(StateHalfOpen)
		fallthrough
	case StateHalfOpen:
		if cb.probing {
			return false, ErrCircuitOpen
		}
		cb.probing = true
		return true, nil
	}
	return false, nil
}

func (cb *CircuitBreaker) record(probe bool, err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if probe {
		cb.probing = false
	}

	if err != nil && cb.cfg.IsFailure(err) {
		cb.failures++
		cb.lastFailure = time.Now()
		if cb.state == StateHalfOpen || cb.failures >= cb.cfg.FailureThreshold {
			if cb.state == StateClosed {
				log.Warn().Str("circuit_breaker", cb.cfg.Name).Int("failure_count", cb.failures).Msg("Circuit breaker tripped")
			}
			cb.failures = max(cb.failures, cb.cfg.FailureThreshold)
			cb.setState(StateOpen)
		}
		return
	}

	cb.failures = 0
	if cb.state != StateHalfOpen {
		return
	}
	cb.successes++
	if cb.successes >= cb.cfg.SuccessThreshold {
		cb.successes = 0
		cb.setState(StateClosed)
	}
}

// setState must be called with mu held.
func (cb *CircuitBreaker) setState(to State) {
	from := cb.state
	if from == to {
		return
	}
	cb.state = to

	log.Info().
		Str("circuit_breaker", cb.cfg.Name).
		Stringer("from", from).
		Stringer("to", to).
		Msg("Circuit breaker state changed")

	if cb.cfg.OnStateChange != nil {
		cb.cfg.OnStateChange(cb.cfg.Name, from, to)
	}
}

func (cb *CircuitBreaker) State() State {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}

func (cb *CircuitBreaker) IsOpen() bool {
	return cb.State() == StateOpen
}

// Stats is a point-in-time view of a breaker, reported by the health endpoint.
type Stats struct {
	Name         string    `json:"name"`
	State        string    `json:"state"`
	FailureCount int       `json:"failure_count"`
	SuccessCount int       `json:"success_count"`
	LastFailure  time.Time `json:"last_failure,omitempty"`
	IsHealthy    bool      `json:"healthy"`
}

func (cb *CircuitBreaker) GetStats() Stats {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	return Stats{
		Name:         cb.cfg.Name,
		State:        cb.state.String(),
		FailureCount: cb.failures,
		SuccessCount: cb.successes,
		LastFailure:  cb.lastFailure,
		IsHealthy:    cb.state == StateClosed,
	}
}
