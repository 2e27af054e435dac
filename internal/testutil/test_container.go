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

var (
	sharedMongo     *MongoDBContainer
	sharedMongoErr  error
	sharedMongoOnce sync.Once

	sharedPostgres     *PostgresContainer
	sharedPostgresErr  error
	sharedPostgresOnce sync.Once
)

// GetSharedMongoDB returns a MongoDB container shared by every test in a package.
func GetSharedMongoDB(ctx context.Context) (*MongoDBContainer, error) {
	sharedMongoOnce.Do(func() {
		sharedMongo, sharedMongoErr = SetupMongoDB(ctx)
	})
	return sharedMongo, sharedMongoErr
}

// GetSharedPostgres returns a PostgreSQL container shared by every test in a package.
func GetSharedPostgres(ctx context.Context) (*PostgresContainer, error) {
	sharedPostgresOnce.Do(func() {
		sharedPostgres, sharedPostgresErr = SetupPostgres(ctx)
	})
	return sharedPostgres, sharedPostgresErr
}

// SetupTestMain starts the shared containers, runs the tests and tears them down.
//
//	func TestMain(m *testing.M) {
//		os.Exit(testutil.SetupTestMain(context.Background(), m))
//	}
func SetupTestMain(ctx context.Context, m *testing.M) int {
	if _, err := GetSharedMongoDB(ctx); err != nil {
		panic(err)
	}
	if _, err := GetSharedPostgres(ctx); err != nil {
		panic(err)
	}

	code := m.Run()

	if sharedMongo != nil {
		if err := sharedMongo.Cleanup(ctx); err != nil {
			_, _ = os.Stderr.WriteString("Warning: failed to cleanup shared MongoDB container: " + err.Error() + "\n")
		}
	}
	if sharedPostgres != nil {
		if err := sharedPostgres.Cleanup(ctx); err != nil {
			_, _ = os.Stderr.WriteString("Warning: failed to cleanup shared PostgreSQL container: " + err.Error() + "\n")
		}
	}

	return code
}

// SharedMongoURI returns the URI of the shared MongoDB container.
func SharedMongoURI() string {
	if sharedMongo == nil {
		panic("shared MongoDB container not initialized - call GetSharedMongoDB first")
	}
	return sharedMongo.URI
}

// SharedPostgresDSN returns the DSN of the shared PostgreSQL container.
func SharedPostgresDSN() string {
	if sharedPostgres == nil {
		panic("shared PostgreSQL container not initialized - call GetSharedPostgres first")
	}
	return sharedPostgres.DSN
}

// SanitizeDBName turns a test name into a unique MongoDB database name.
func SanitizeDBName(testName string) string {
	sanitized := strings.NewReplacer("/", "_", "\\", "_").Replace(testName)
	if len(sanitized) > 50 {
		sanitized = sanitized[:50]
	}
	return sanitized + "_" + fmt.Sprintf("%d", time.Now().UnixNano()%1000000)
}
