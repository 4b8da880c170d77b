package cache

import (
	"hash/fnv"
	"time"

	"github.com/guttosm/pricing-service/internal/metrics"
)

// ShardedCache spreads entries across several TTLCache shards by key hash
// to reduce lock contention. Only the capacity gauge is published for it.
type ShardedCache[V any] struct {
	shards    []*TTLCache[V]
	shardMask uint32
}

// NewShardedCache creates a sharded cache with the given total capacity.
// numShards is rounded up to a power of 2, defaulting to 16.
func NewShardedCache[V any](name string, capacity int, ttl time.Duration, numShards int) *ShardedCache[V] {
	if numShards <= 0 {
		numShards = 16
	}
	n := 1
	for n < numShards {
		n *= 2
	}

	perShard := capacity / n
	if perShard < 1 {
		perShard = 1
	}

	shards := make([]*TTLCache[V], n)
	for i := range shards {
		shards[i] = newTTLCache[V](name, perShard, ttl, false)
	}
	metrics.UpdateCacheMetrics(name, 0, perShard*n)

	return &ShardedCache[V]{
		shards:    shards,
		shardMask: uint32(n - 1),
	}
}

func (sc *ShardedCache[V]) shard(key string) *TTLCache[V] {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return sc.shards[h.Sum32()&sc.shardMask]
}

// Get retrieves a value from the owning shard.
func (sc *ShardedCache[V]) Get(key string) (V, bool) {
	return sc.shard(key).Get(key)
}

// Set stores a value in the owning shard.
func (sc *ShardedCache[V]) Set(key string, value V) {
	sc.shard(key).Set(key, value)
}

// Invalidate removes a key from the owning shard.
func (sc *ShardedCache[V]) Invalidate(key string) {
	sc.shard(key).Invalidate(key)
}

// Clear removes all entries from all shards.
func (sc *ShardedCache[V]) Clear() {
	for _, s := range sc.shards {
		s.Clear()
	}
}

// Stop shuts down all shards.
func (sc *ShardedCache[V]) Stop() {
	for _, s := range sc.shards {
		s.Stop()
	}
}

// Metrics returns metrics aggregated over all shards.
func (sc *ShardedCache[V]) Metrics() Metrics {
	var total Metrics
	for _, s := range sc.shards {
		m := s.Metrics()
		total.Hits += m.Hits
		total.Misses += m.Misses
		total.Evictions += m.Evictions
		total.Size += m.Size
		total.Capacity += m.Capacity
	}
	return total
}
