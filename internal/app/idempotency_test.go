//go:build !integration

package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/pricing-service/config"
	"github.com/guttosm/pricing-service/internal/repository"
)

func TestInitializeIdempotency(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.IdempotencyConfig
		backend string
	}{
		{name: "memory backend", cfg: config.IdempotencyConfig{Backend: "memory", TTL: time.Minute, Capacity: 10}, backend: "memory"},
		{name: "empty backend uses memory", cfg: config.IdempotencyConfig{TTL: time.Minute, Capacity: 10}, backend: "memory"},
		{name: "unknown backend uses memory", cfg: config.IdempotencyConfig{Backend: "etcd", TTL: time.Minute, Capacity: 10}, backend: "memory"},
		{name: "unreachable redis falls back", cfg: config.IdempotencyConfig{Backend: "redis", RedisURL: "not-a-url", TTL: time.Minute, Capacity: 10}, backend: "memory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			components := InitializeIdempotency(tt.cfg)
			require.NotNil(t, components)
			t.Cleanup(func() { assert.NoError(t, components.Close(context.Background())) })

			assert.Equal(t, tt.backend, components.Config.Backend)
			assert.True(t, components.Config.Enabled)
			assert.Equal(t, tt.cfg.TTL, components.Config.TTL)
			assert.Nil(t, components.CircuitBreaker)

			ctx := context.Background()
			require.NoError(t, components.Store.Ping(ctx))
			require.NoError(t, components.Config.Store.Set(ctx, "k", &repository.IdempotencyRecord{StatusCode: 200}, time.Minute))
			record, found, err := components.Config.Store.Get(ctx, "k")
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, 200, record.StatusCode)
		})
	}
}
