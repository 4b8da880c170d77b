//go:build integration

package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"
)

type shared struct {
	once      sync.Once
	mu        sync.RWMutex
	container *Container
	err       error
	setup     func(context.Context) (*Container, error)
}

func (s *shared) get(ctx context.Context) (*Container, error) {
	s.once.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.container, s.err = s.setup(ctx)
	})

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.container, s.err
}

func (s *shared) uri(kind string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.container == nil {
		panic("shared " + kind + " container not initialized")
	}
	return s.container.URI
}

func (s *shared) cleanup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.container != nil {
		return s.container.Cleanup(ctx)
	}
	return nil
}

var (
	sharedMongo = &shared{setup: SetupMongoDB}
	sharedRedis = &shared{setup: SetupRedis}
)

// GetSharedMongoDB returns the package-wide MongoDB container, starting it on first use.
func GetSharedMongoDB(ctx context.Context) (*Container, error) {
	return sharedMongo.get(ctx)
}

// GetSharedRedis returns the package-wide Redis container, starting it on first use.
func GetSharedRedis(ctx context.Context) (*Container, error) {
	return sharedRedis.get(ctx)
}

// GetSharedContainerURI returns the URI of the shared MongoDB container.
// Panics if the container is not initialized.
func GetSharedContainerURI() string {
	return sharedMongo.uri("MongoDB")
}

// GetSharedRedisURL returns the redis:// URL of the shared Redis container.
func GetSharedRedisURL() string {
	return sharedRedis.uri("Redis")
}

// SetupTestMainWithMongoDB starts a shared MongoDB container, runs the tests
// and tears it down.
//
//	func TestMain(m *testing.M) {
//		os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
//	}
func SetupTestMainWithMongoDB(ctx context.Context, m *testing.M) int {
	return runWith(ctx, m, sharedMongo)
}

// SetupTestMainWithBackends starts both MongoDB and Redis.
func SetupTestMainWithBackends(ctx context.Context, m *testing.M) int {
	return runWith(ctx, m, sharedMongo, sharedRedis)
}

func runWith(ctx context.Context, m *testing.M, backends ...*shared) int {
	for _, b := range backends {
		if _, err := b.get(ctx); err != nil {
			panic(err)
		}
	}

	code := m.Run()

	for _, b := range backends {
		if err := b.cleanup(ctx); err != nil {
			// docker reaps the container eventually
			_, _ = os.Stderr.WriteString("Warning: failed to cleanup container: " + err.Error() + "\n")
		}
	}

	return code
}

// SanitizeDBName turns a test name into a unique MongoDB database name.
func SanitizeDBName(testName string) string {
	sanitized := strings.NewReplacer("/", "_", "\\", "_", " ", "_").Replace(testName)
	if len(sanitized) > 50 {
		sanitized = sanitized[:50]
	}
	return fmt.Sprintf("%s_%d", sanitized, time.Now().UnixNano()%1000000)
}
