package repository

import (
	"context"
	"errors"
	"time"

	"github.com/guttosm/pricing-service/internal/circuitbreaker"
)

// LogsRepositoryWithCircuitBreaker wraps LogsRepository with circuit breaker protection.
type LogsRepositoryWithCircuitBreaker struct {
	repo           LogsRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewLogsRepositoryWithCircuitBreaker(repo LogsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// Create stores a single log entry. Writes are dropped while the circuit is open.
func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *LogEntryDocument) error {
	return dropWhenOpen(r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, entry)
	}))
}

// CreateMany stores a batch of log entries. Writes are dropped while the circuit is open.
func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	return dropWhenOpen(r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.CreateMany(ctx, entries)
	}))
}

func dropWhenOpen(err error) error {
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// Query retrieves log entries with circuit breaker protection.
// Unlike writes, an open circuit is reported to the caller.
func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func() ([]*LogEntryDocument, error) {
		return r.repo.Query(ctx, opts)
	})
}

// Count returns the count of log entries with circuit breaker protection.
func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func() (int64, error) {
		return r.repo.Count(ctx, opts)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *LogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// IdempotencyRepositoryWithCircuitBreaker wraps an idempotency store so an
// unreachable Redis is skipped instead of timing out on every request.
type IdempotencyRepositoryWithCircuitBreaker struct {
	repo           IdempotencyRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewIdempotencyRepositoryWithCircuitBreaker creates a new idempotency store wrapper with circuit breaker.
func NewIdempotencyRepositoryWithCircuitBreaker(repo IdempotencyRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *IdempotencyRepositoryWithCircuitBreaker {
	return &IdempotencyRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// Get reports a miss while the circuit is open.
func (r *IdempotencyRepositoryWithCircuitBreaker) Get(ctx context.Context, key string) (*IdempotencyRecord, bool, error) {
	var (
		record *IdempotencyRecord
		found  bool
	)
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		record, found, cbErr = r.repo.Get(ctx, key)
		return cbErr
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil, false, nil
	}
	return record, found, err
}

// Set drops the record while the circuit is open.
func (r *IdempotencyRepositoryWithCircuitBreaker) Set(ctx context.Context, key string, record *IdempotencyRecord, ttl time.Duration) error {
	return dropWhenOpen(r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Set(ctx, key, record, ttl)
	}))
}

// Ping bypasses the breaker so readiness reflects the real backend.
func (r *IdempotencyRepositoryWithCircuitBreaker) Ping(ctx context.Context) error {
	return r.repo.Ping(ctx)
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *IdempotencyRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}
