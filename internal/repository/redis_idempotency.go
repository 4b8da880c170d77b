package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyKeyPrefix = "idempotency:"

// IdempotencyRecord is a stored HTTP response that can be replayed.
type IdempotencyRecord struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers,omitempty"`
	Body       []byte            `json:"body"`
	CreatedAt  time.Time         `json:"created_at"`
}

// NewRedisClient parses a redis:// URL and verifies the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}

// RedisIdempotencyRepository stores idempotency records in Redis as JSON
// values with a TTL, so replicas share replays.
type RedisIdempotencyRepository struct {
	client *redis.Client
}

// NewRedisIdempotencyRepository creates a new Redis-backed idempotency store.
func NewRedisIdempotencyRepository(client *redis.Client) *RedisIdempotencyRepository {
	return &RedisIdempotencyRepository{client: client}
}

// Get returns the record stored under key. A missing key is not an error.
func (r *RedisIdempotencyRepository) Get(ctx context.Context, key string) (*IdempotencyRecord, bool, error) {
	data, err := r.client.Get(ctx, idempotencyKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var record IdempotencyRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, false, fmt.Errorf("corrupt idempotency record: %w", err)
	}
	return &record, true, nil
}

// Set stores record under key for ttl.
func (r *RedisIdempotencyRepository) Set(ctx context.Context, key string, record *IdempotencyRecord, ttl time.Duration) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, idempotencyKeyPrefix+key, data, ttl).Err()
}

// Ping checks the Redis connection.
func (r *RedisIdempotencyRepository) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return r.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (r *RedisIdempotencyRepository) Close() error {
	return r.client.Close()
}
