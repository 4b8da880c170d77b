package middleware

import (
	"context"
	"time"

	"github.com/guttosm/pricing-service/internal/repository"
	"github.com/guttosm/pricing-service/internal/service/cache"
)

const idempotencyShards = 16

// MemoryIdempotencyStore keeps idempotent responses in a sharded LRU with TTL.
// It is local to the process; use the Redis store when running replicas.
type MemoryIdempotencyStore struct {
	cache *cache.ShardedCache[*repository.IdempotencyRecord]
}

// NewMemoryIdempotencyStore creates an in-memory store holding up to capacity responses.
func NewMemoryIdempotencyStore(capacity int, ttl time.Duration) *MemoryIdempotencyStore {
	return &MemoryIdempotencyStore{
		cache: cache.NewShardedCache[*repository.IdempotencyRecord]("idempotency", capacity, ttl, idempotencyShards),
	}
}

// Get returns the record stored under key.
func (s *MemoryIdempotencyStore) Get(_ context.Context, key string) (*repository.IdempotencyRecord, bool, error) {
	record, ok := s.cache.Get(key)
	return record, ok, nil
}

// Set stores record. The per-call ttl is ignored; entries expire after the
// ttl the store was created with.
func (s *MemoryIdempotencyStore) Set(_ context.Context, key string, record *repository.IdempotencyRecord, _ time.Duration) error {
	s.cache.Set(key, record)
	return nil
}

// Ping always succeeds.
func (s *MemoryIdempotencyStore) Ping(context.Context) error {
	return nil
}

// Stop releases the cleanup goroutines.
func (s *MemoryIdempotencyStore) Stop() {
	s.cache.Stop()
}

var _ repository.IdempotencyRepositoryInterface = (*MemoryIdempotencyStore)(nil)
