// Package middleware provides the gin middleware chain of the pricing service.
package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/pricing-service/internal/metrics"
	"github.com/guttosm/pricing-service/internal/repository"
)

const (
	// IdempotencyKeyHeader is the HTTP header name for idempotency key (RFC standard).
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader marks a response served from the store.
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
	// IdempotencyKeyTTL is the TTL for cached idempotency responses.
	IdempotencyKeyTTL = 5 * time.Minute

	storeTimeout = 500 * time.Millisecond
)

// IdempotencyStore persists replayable responses. The in-memory store and
// repository.RedisIdempotencyRepository both satisfy it.
type IdempotencyStore interface {
	Get(ctx context.Context, key string) (*repository.IdempotencyRecord, bool, error)
	Set(ctx context.Context, key string, record *repository.IdempotencyRecord, ttl time.Duration) error
}

// IdempotencyConfig holds configuration for idempotency middleware.
type IdempotencyConfig struct {
	Store IdempotencyStore
	// Backend labels replay metrics, e.g. "memory" or "redis".
	Backend string
	TTL     time.Duration
	Enabled bool
}

// DefaultIdempotencyConfig returns an in-memory configuration.
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		Store:   NewMemoryIdempotencyStore(10000, IdempotencyKeyTTL),
		Backend: "memory",
		TTL:     IdempotencyKeyTTL,
		Enabled: true,
	}
}

// Idempotency replays the stored 2xx response for a repeated
// Idempotency-Key on POST, PUT and PATCH. Store errors are logged and
// treated as a miss so the request still runs. Install it after the auth
// middleware so replays are scoped to the authenticated client.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.Store == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	if cfg.TTL <= 0 {
		cfg.TTL = IdempotencyKeyTTL
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost &&
			c.Request.Method != http.MethodPut &&
			c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		cacheKey := generateCacheKey(key, GetClientID(c), c.Request)

		if record, ok := lookup(c.Request.Context(), cfg.Store, cacheKey); ok {
			metrics.RecordIdempotencyReplay(cfg.Backend)

			contentType := "application/json"
			for k, v := range record.Headers {
				if k == "Content-Type" {
					contentType = v
					continue
				}
				c.Header(k, v)
			}
			c.Header(IdempotencyReplayedHeader, "true")
			c.Data(record.StatusCode, contentType, record.Body)
			c.Abort()
			return
		}

		writer := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = writer

		c.Next()

		status := writer.Status()
		if status < 200 || status >= 300 {
			return
		}

		record := &repository.IdempotencyRecord{
			StatusCode: status,
			Headers:    replayHeaders(writer.Header()),
			Body:       writer.body.Bytes(),
			CreatedAt:  time.Now(),
		}

		ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), storeTimeout)
		defer cancel()
		if err := cfg.Store.Set(ctx, cacheKey, record, cfg.TTL); err != nil {
			log.Warn().Err(err).Str("backend", cfg.Backend).Msg("Failed to store idempotent response")
		}
	}
}

func lookup(parent context.Context, store IdempotencyStore, key string) (*repository.IdempotencyRecord, bool) {
	ctx, cancel := context.WithTimeout(parent, storeTimeout)
	defer cancel()

	record, ok, err := store.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Msg("Idempotency store unavailable, processing request")
		return nil, false
	}
	return record, ok && record != nil
}

// replayHeaders keeps the headers that describe the body. Per-request
// headers such as X-Request-ID are left out.
func replayHeaders(h http.Header) map[string]string {
	out := make(map[string]string)
	for _, k := range []string{"Content-Type", "Content-Language"} {
		if v := h.Get(k); v != "" {
			out[k] = v
		}
	}
	return out
}

// generateCacheKey hashes the idempotency key with the client, method, path
// and body, so a reused key with a different payload or from another client
// is not replayed.
func generateCacheKey(idempotencyKey, clientID string, req *http.Request) string {
	hasher := sha256.New()
	hasher.Write([]byte(idempotencyKey))
	hasher.Write([]byte{0})
	hasher.Write([]byte(clientID))
	hasher.Write([]byte{0})
	hasher.Write([]byte(req.Method))
	hasher.Write([]byte{0})
	hasher.Write([]byte(req.URL.Path))
	hasher.Write([]byte{0})

	if req.Body != nil {
		bodyBytes, _ := io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		hasher.Write(bodyBytes)
	}

	return hex.EncodeToString(hasher.Sum(nil))
}

// responseWriter tees the response body for storage.
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
