// Package app provides router configuration.
package app

import (
	"github.com/thcfit/shipping-gateway/config"
	"github.com/thcfit/shipping-gateway/internal/http"
	"github.com/thcfit/shipping-gateway/internal/middleware"
)

// RouterComponents holds router-related components. The limiters and the
// request-log sink run background goroutines and must be stopped on shutdown.
type RouterComponents struct {
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
	Groups        []http.RouteGroup
	Limiter       *middleware.RateLimiter
	AdminLimiter  *middleware.RateLimiter
	RequestSink   *middleware.AsyncLogger
}

// InitializeRouter initializes HTTP handlers and router configuration.
func InitializeRouter(services *ServiceComponents, db *DatabaseComponents, cfg config.Config) *RouterComponents {
	healthHandler := http.NewHealthHandler()
	healthHandler.RegisterCircuitBreaker("carrier", services.CarrierCircuitBreaker)
	healthHandler.RegisterCircuitBreaker("carrier_address", services.AddressCircuitBreaker)
	if db != nil {
		if db.Postgres != nil {
			healthHandler.RegisterChecker("postgres", db.Postgres)
		}
		if db.Mongo != nil {
			healthHandler.RegisterChecker("mongodb", db.Mongo)
		}
		if db.AuditCircuitBreaker != nil {
			healthHandler.RegisterCircuitBreaker("postgres_audit", db.AuditCircuitBreaker)
		}
		if db.LogsCircuitBreaker != nil {
			healthHandler.RegisterCircuitBreaker("mongodb_logs", db.LogsCircuitBreaker)
		}
	}

	sink := middleware.NewAsyncLogger(services.RequestLogs, middleware.DefaultAsyncLoggerConfig())

	var limiter, adminLimiter *middleware.RateLimiter
	if cfg.Server.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateWindow)
		adminLimiter = middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateWindow)
	}

	adminHandler := http.NewAdminHandler(services.Admins, services.Audit, services.RequestLogs,
		http.WithActivitySink(sink))

	return &RouterComponents{
		HealthHandler: healthHandler,
		Config: http.RouterConfig{
			APIKeys:      cfg.Auth.APIKeys,
			CORSOrigins:  cfg.Server.CORSOrigins,
			SwaggerUser:  cfg.Server.SwaggerUser,
			SwaggerPass:  cfg.Server.SwaggerPass,
			Limiter:      limiter,
			AdminLimiter: adminLimiter,
			RequestSink:  sink,
		},
		Groups: []http.RouteGroup{
			http.NewShippingRoutes(services.Shipping),
			http.NewAdminRoutes(adminHandler, services.Admins),
		},
		Limiter:      limiter,
		AdminLimiter: adminLimiter,
		RequestSink:  sink,
	}
}

// Stop stops the limiter cleanup loops. The sink is drained separately.
func (rc *RouterComponents) Stop() {
	if rc.Limiter != nil {
		rc.Limiter.Stop()
	}
	if rc.AdminLimiter != nil {
		rc.AdminLimiter.Stop()
	}
}
