package app

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/pricing-service/config"
	"github.com/guttosm/pricing-service/internal/circuitbreaker"
	"github.com/guttosm/pricing-service/internal/middleware"
	"github.com/guttosm/pricing-service/internal/repository"
)

const (
	backendMemory = "memory"
	backendRedis  = "redis"
)

// IdempotencyComponents holds the Idempotency-Key response store.
type IdempotencyComponents struct {
	Config middleware.IdempotencyConfig
	// Store is the configured store, used for readiness pings.
	Store repository.IdempotencyRepositoryInterface
	// CircuitBreaker guards the Redis store; nil for the memory store.
	CircuitBreaker *circuitbreaker.CircuitBreaker

	redisClient *redis.Client
	memory      *middleware.MemoryIdempotencyStore
}

// InitializeIdempotency builds the configured store. An unreachable Redis
// falls back to the in-memory store.
func InitializeIdempotency(cfg config.IdempotencyConfig) *IdempotencyComponents {
	if cfg.Backend == backendRedis {
		if components := initializeRedisIdempotency(cfg); components != nil {
			return components
		}
	} else if cfg.Backend != "" && cfg.Backend != backendMemory {
		log.Warn().Str("backend", cfg.Backend).Msg("Unknown idempotency backend, using memory")
	}

	store := middleware.NewMemoryIdempotencyStore(cfg.Capacity, cfg.TTL)
	return &IdempotencyComponents{
		Config: middleware.IdempotencyConfig{
			Store:   store,
			Backend: backendMemory,
			TTL:     cfg.TTL,
			Enabled: true,
		},
		Store:  store,
		memory: store,
	}
}

func initializeRedisIdempotency(cfg config.IdempotencyConfig) *IdempotencyComponents {
	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()

	client, err := repository.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to Redis - using in-memory idempotency store")
		return nil
	}
	log.Info().Msg("Connected to Redis")

	breakerCfg := circuitbreaker.DefaultConfig()
	breakerCfg.Name = "redis-idempotency"
	breakerCfg.OnStateChange = recordBreakerState
	cb := circuitbreaker.New(breakerCfg)

	store := repository.NewIdempotencyRepositoryWithCircuitBreaker(repository.NewRedisIdempotencyRepository(client), cb)
	return &IdempotencyComponents{
		Config: middleware.IdempotencyConfig{
			Store:   store,
			Backend: backendRedis,
			TTL:     cfg.TTL,
			Enabled: true,
		},
		Store:          store,
		CircuitBreaker: cb,
		redisClient:    client,
	}
}

// Close stops the memory store or closes the Redis client.
func (i *IdempotencyComponents) Close(context.Context) error {
	if i.memory != nil {
		i.memory.Stop()
	}
	if i.redisClient != nil {
		return i.redisClient.Close()
	}
	return nil
}
