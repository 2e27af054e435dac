//go:build !integration

package app

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/thcfit/shipping-gateway/config"
)

func TestInitializeLogger(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.ServerConfig
		wantLevel zerolog.Level
	}{
		{name: "empty level defaults to info", cfg: config.ServerConfig{}, wantLevel: zerolog.InfoLevel},
		{name: "debug", cfg: config.ServerConfig{LogLevel: "debug"}, wantLevel: zerolog.DebugLevel},
		{name: "pretty output", cfg: config.ServerConfig{LogLevel: "warn", LogPretty: true}, wantLevel: zerolog.WarnLevel},
		{name: "unknown level", cfg: config.ServerConfig{LogLevel: "verbose"}, wantLevel: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() { InitializeLogger(tt.cfg) })
			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())
		})
	}
}
