package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values", func(t *testing.T) {
		os.Clearenv()

		cfg := Load()

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, 100, cfg.Server.RateLimit)
		assert.Equal(t, time.Minute, cfg.Server.RateWindow)
		assert.Equal(t, "info", cfg.Server.LogLevel)
		assert.Equal(t, 30*time.Second, cfg.Carrier.Timeout)
		assert.Equal(t, "CASHTHBKK", cfg.Carrier.QuoteAccount)
		assert.Equal(t, "THB", cfg.Carrier.DefaultCurrency)
		assert.Equal(t, "https://express.api.dhl.com/mydhlapi/shipments", cfg.Carrier.ShipmentsURL)
		assert.Empty(t, cfg.Carrier.Username)
		assert.False(t, cfg.Database.Enabled)
		assert.False(t, cfg.Mongo.Enabled)
		assert.False(t, cfg.Storage.Enabled)
		assert.Equal(t, 5, cfg.CircuitBreaker.FailureThreshold)
	})

	t.Run("loads values from environment", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("PORT", "9090")
		_ = os.Setenv("RATE_LIMIT", "50")
		_ = os.Setenv("RATE_WINDOW", "30s")
		_ = os.Setenv("DHL_USERNAME", "user")
		_ = os.Setenv("DHL_PASSWORD", "secret")
		_ = os.Setenv("DHL_API_ENDPOINT_SHIP", "https://carrier.test/shipments")
		_ = os.Setenv("CARRIER_TIMEOUT", "5s")
		_ = os.Setenv("POSTGRES_ENABLED", "true")
		_ = os.Setenv("API_KEYS", "key1,key2")
		defer os.Clearenv()

		cfg := Load()

		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, 50, cfg.Server.RateLimit)
		assert.Equal(t, 30*time.Second, cfg.Server.RateWindow)
		assert.Equal(t, "user", cfg.Carrier.Username)
		assert.Equal(t, "secret", cfg.Carrier.Password)
		assert.Equal(t, "https://carrier.test/shipments", cfg.Carrier.ShipmentsURL)
		assert.Equal(t, 5*time.Second, cfg.Carrier.Timeout)
		assert.True(t, cfg.Database.Enabled)
		assert.True(t, cfg.Auth.APIKeys["key1"])
		assert.True(t, cfg.Auth.APIKeys["key2"])
	})

	t.Run("handles invalid values gracefully", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("RATE_LIMIT", "invalid")
		_ = os.Setenv("POSTGRES_ENABLED", "invalid")
		_ = os.Setenv("RATE_WINDOW", "invalid")
		defer os.Clearenv()

		cfg := Load()

		assert.Equal(t, 100, cfg.Server.RateLimit)
		assert.False(t, cfg.Database.Enabled)
		assert.Equal(t, time.Minute, cfg.Server.RateWindow)
	})

	t.Run("parses API keys with whitespace", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("API_KEYS", " key1 , key2 , key3 ")
		defer os.Clearenv()

		cfg := Load()

		assert.Len(t, cfg.Auth.APIKeys, 3)
		assert.True(t, cfg.Auth.APIKeys["key3"])
	})

	t.Run("returns nil for empty API keys", func(t *testing.T) {
		os.Clearenv()

		cfg := Load()

		assert.Nil(t, cfg.Auth.APIKeys)
	})

	t.Run("appends extra CORS origins to the shared table", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("CORS_ORIGINS", "https://admin.example.com, ")
		defer os.Clearenv()

		cfg := Load()

		assert.Contains(t, cfg.Server.CORSOrigins, "https://viruzjoke.github.io")
		assert.Contains(t, cfg.Server.CORSOrigins, "https://admin.example.com")
		assert.NotContains(t, cfg.Server.CORSOrigins, "")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  DatabaseConfig
		want string
	}{
		{
			name: "explicit URL wins",
			cfg:  DatabaseConfig{URL: "postgres://u:p@db:5432/x", Host: "ignored"},
			want: "postgres://u:p@db:5432/x",
		},
		{
			name: "composed from parts",
			cfg:  DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "x", SSLMode: "disable"},
			want: "host=db port=5432 user=u password=p dbname=x sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.DSN())
		})
	}
}
