//go:build integration

package app

import (
	"context"
	"os"
	"testing"

	"github.com/thcfit/shipping-gateway/internal/testutil"
)

// TestMain shares one MongoDB and one PostgreSQL container across the app integration tests.
func TestMain(m *testing.M) {
	os.Exit(testutil.SetupTestMain(context.Background(), m))
}
