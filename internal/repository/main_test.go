//go:build integration

package repository

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thcfit/shipping-gateway/config"
	"github.com/thcfit/shipping-gateway/internal/testutil"
)

// TestMain shares one MongoDB and one PostgreSQL container across the package.
func TestMain(m *testing.M) {
	os.Exit(testutil.SetupTestMain(context.Background(), m))
}

func setupMongo(t *testing.T) *MongoDB {
	t.Helper()
	db, err := NewMongoDB(testutil.SharedMongoURI(), testutil.SanitizeDBName(t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(context.Background()) })
	return db
}

func setupPostgres(t *testing.T) *Postgres {
	t.Helper()
	ctx := context.Background()
	pg, err := NewPostgres(ctx, config.DatabaseConfig{
		URL:             testutil.SharedPostgresDSN(),
		MaxOpenConns:    5,
		MaxIdleConns:    2,
		ConnMaxLifetime: 0,
	})
	require.NoError(t, err)
	require.NoError(t, pg.Migrate(ctx))
	_, err = pg.DB.ExecContext(ctx, "TRUNCATE shipment_logs, dbs_users RESTART IDENTITY")
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Close() })
	return pg
}
