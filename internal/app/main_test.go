//go:build integration

package app

import (
	"context"
	"os"
	"testing"

	"github.com/guttosm/pricing-service/internal/testutil"
)

// TestMain starts the shared MongoDB and Redis containers for the app integration tests.
func TestMain(m *testing.M) {
	os.Exit(testutil.SetupTestMainWithBackends(context.Background(), m))
}
