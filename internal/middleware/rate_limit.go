package middleware

import (
	"hash/fnv"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/guttosm/pricing-service/internal/domain/dto"
	"github.com/guttosm/pricing-service/internal/i18n"
)

const defaultNumShards = 16

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type bucketShard struct {
	mu      sync.Mutex
	buckets map[string]*bucket
}

// RateLimiter gives every caller a token bucket of rate tokens that refills
// evenly over window. Callers are keyed by client id once authenticated and
// by IP otherwise.
type RateLimiter struct {
	shards   []*bucketShard
	rate     int
	window   time.Duration
	every    rate.Limit
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter creates a limiter allowing rate requests per window.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return NewShardedRateLimiter(limit, window, defaultNumShards)
}

// NewShardedRateLimiter creates a limiter with a custom shard count.
func NewShardedRateLimiter(limit int, window time.Duration, numShards int) *RateLimiter {
	if numShards <= 0 {
		numShards = defaultNumShards
	}
	if limit <= 0 {
		limit = 1
	}

	rl := &RateLimiter{
		shards: make([]*bucketShard, numShards),
		rate:   limit,
		window: window,
		every:  rate.Every(window / time.Duration(limit)),
		stopCh: make(chan struct{}),
	}
	for i := range rl.shards {
		rl.shards[i] = &bucketShard{buckets: make(map[string]*bucket)}
	}

	go rl.sweep()
	return rl
}

func (rl *RateLimiter) shardFor(key string) *bucketShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return rl.shards[h.Sum32()%uint32(len(rl.shards))]
}

// take spends one token for key. When denied, wait is how long until the
// next token is available.
func (rl *RateLimiter) take(key string) (allowed bool, remaining int, wait time.Duration) {
	shard := rl.shardFor(key)
	now := time.Now()

	shard.mu.Lock()
	defer shard.mu.Unlock()

	b, ok := shard.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(rl.every, rl.rate)}
		shard.buckets[key] = b
	}
	b.lastSeen = now

	allowed = b.limiter.AllowN(now, 1)
	tokens := b.limiter.TokensAt(now)
	if !allowed {
		wait = time.Duration((1 - tokens) * float64(time.Second) / float64(rl.every))
	}
	return allowed, int(math.Max(0, math.Floor(tokens))), wait
}

func (rl *RateLimiter) checkRateLimit(key string) (bool, int) {
	allowed, remaining, _ := rl.take(key)
	return allowed, remaining
}

// RateLimit returns the limiting middleware. It must run after the auth
// middleware for per-client limits to apply.
func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining, wait := rl.take(callerKey(c))

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.rate))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if allowed {
			c.Next()
			return
		}

		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		c.AbortWithStatusJSON(http.StatusTooManyRequests,
			dto.NewError(dto.ErrCodeRateLimit, i18n.T(i18n.ErrKeyRateLimitExceeded, i18n.GetLocale(c))).
				WithRequestID(GetRequestID(c)))
	}
}

func callerKey(c *gin.Context) string {
	if clientID := GetClientID(c); clientID != "" {
		return "client:" + clientID
	}
	return "ip:" + c.ClientIP()
}

func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupExpired()
		case <-rl.stopCh:
			return
		}
	}
}

// cleanupExpired drops buckets idle for two windows. Such a bucket would be
// full again, so forgetting it changes nothing for the caller.
func (rl *RateLimiter) cleanupExpired() {
	cutoff := time.Now().Add(-2 * rl.window)
	for _, shard := range rl.shards {
		shard.mu.Lock()
		for key, b := range shard.buckets {
			if b.lastSeen.Before(cutoff) {
				delete(shard.buckets, key)
			}
		}
		shard.mu.Unlock()
	}
}

// Stop ends the sweep goroutine. It is safe to call twice.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

// Stats reports how many callers are tracked, in total and per shard.
func (rl *RateLimiter) Stats() (total int, perShard []int) {
	perShard = make([]int, len(rl.shards))
	for i, shard := range rl.shards {
		shard.mu.Lock()
		perShard[i] = len(shard.buckets)
		shard.mu.Unlock()
		total += perShard[i]
	}
	return total, perShard
}
