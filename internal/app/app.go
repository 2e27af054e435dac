// Package app provides application initialization and dependency injection.
package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/thcfit/shipping-gateway/config"
	"github.com/thcfit/shipping-gateway/internal/http"
)

// writeTimeoutMargin is added to the carrier timeout to leave room for
// auditing and writing the forwarded response.
const writeTimeoutMargin = 15 * time.Second

// App is the wired gateway together with the resources it owns.
type App struct {
	Router *gin.Engine

	cfg    config.Config
	db     *DatabaseComponents
	routes *RouterComponents
}

// InitializeApp creates and wires all application dependencies.
// Stores that are disabled or unreachable are left out; the gateway still
// proxies carrier calls without them.
func InitializeApp(ctx context.Context, cfg config.Config) *App {
	// Initialize logger first (needed by other components)
	InitializeLogger(cfg.Server)

	if cfg.Auth.JWTSecretKey == "" {
		log.Warn().Msg("JWT_SECRET_KEY not set - admin login is disabled")
	}

	dbComponents := InitializeDatabase(ctx, cfg)
	serviceComponents := InitializeServices(cfg, dbComponents)

	if err := bootstrapAdmin(ctx, serviceComponents.Admins, cfg.Auth); err != nil {
		log.Warn().Err(err).Msg("Failed to bootstrap admin user")
	}

	routerComponents := InitializeRouter(serviceComponents, dbComponents, cfg)

	return &App{
		Router: http.NewRouter(routerComponents.HealthHandler, routerComponents.Config, routerComponents.Groups...),
		cfg:    cfg,
		db:     dbComponents,
		routes: routerComponents,
	}
}

// NewServer returns a graceful HTTP server that closes the app on shutdown.
func (a *App) NewServer() *Server {
	return NewServer(a.Router, a.cfg.Server.Port,
		WithWriteTimeout(a.cfg.Carrier.Timeout+writeTimeoutMargin),
		WithShutdownHooks(a.Close),
	)
}

// Close drains the request-log queue, stops background loops and closes the stores.
func (a *App) Close(ctx context.Context) error {
	var firstErr error
	if a.routes != nil {
		if a.routes.RequestSink != nil {
			if err := a.routes.RequestSink.Stop(ctx); err != nil {
				log.Warn().Err(err).Msg("Request log queue not fully drained")
				firstErr = err
			}
		}
		a.routes.Stop()
	}
	if a.db != nil {
		if err := a.db.Close(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
