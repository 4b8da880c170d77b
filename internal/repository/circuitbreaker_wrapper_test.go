//go:build !integration

package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/pricing-service/internal/circuitbreaker"
)

// flakyIdempotencyStore fails every call while down is set.
type flakyIdempotencyStore struct {
	down    bool
	calls   int
	records map[string]*IdempotencyRecord
}

func (s *flakyIdempotencyStore) Get(_ context.Context, key string) (*IdempotencyRecord, bool, error) {
	s.calls++
	if s.down {
		return nil, false, errors.New("connection refused")
	}
	record, ok := s.records[key]
	return record, ok, nil
}

func (s *flakyIdempotencyStore) Set(_ context.Context, key string, record *IdempotencyRecord, _ time.Duration) error {
	s.calls++
	if s.down {
		return errors.New("connection refused")
	}
	s.records[key] = record
	return nil
}

func (s *flakyIdempotencyStore) Ping(context.Context) error {
	if s.down {
		return errors.New("connection refused")
	}
	return nil
}

func TestIdempotencyRepositoryWithCircuitBreaker(t *testing.T) {
	ctx := context.Background()
	store := &flakyIdempotencyStore{records: map[string]*IdempotencyRecord{}}
	cb := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: 2,
		SuccessThreshold: 1,
		Timeout:          time.Hour,
		Name:             "redis-idempotency",
	})
	repo := NewIdempotencyRepositoryWithCircuitBreaker(store, cb)

	t.Run("passes through while closed", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, "k", &IdempotencyRecord{StatusCode: 200}, time.Minute))

		record, found, err := repo.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, 200, record.StatusCode)
	})

	t.Run("backend errors are returned and open the circuit", func(t *testing.T) {
		store.down = true

		_, _, err := repo.Get(ctx, "k")
		assert.Error(t, err)
		err = repo.Set(ctx, "k", &IdempotencyRecord{StatusCode: 200}, time.Minute)
		assert.Error(t, err)

		assert.Equal(t, circuitbreaker.StateOpen, cb.State())
	})

	t.Run("open circuit reports a miss without calling the backend", func(t *testing.T) {
		before := store.calls

		record, found, err := repo.Get(ctx, "k")
		assert.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, record)
		assert.NoError(t, repo.Set(ctx, "k", &IdempotencyRecord{StatusCode: 200}, time.Minute))

		assert.Equal(t, before, store.calls)
	})

	t.Run("ping bypasses the breaker", func(t *testing.T) {
		assert.Error(t, repo.Ping(ctx))
		store.down = false
		assert.NoError(t, repo.Ping(ctx))
	})

	assert.Same(t, cb, repo.GetCircuitBreaker())
}
