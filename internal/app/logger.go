// Package app provides logger initialization.
package app

import (
	"github.com/thcfit/shipping-gateway/config"
	"github.com/thcfit/shipping-gateway/internal/logger"
)

// InitializeLogger initializes the JSON logger from the server configuration.
// An empty level means info.
func InitializeLogger(cfg config.ServerConfig) {
	level := cfg.LogLevel
	if level == "" {
		level = "info"
	}
	logger.Init(level, cfg.LogPretty)
}
