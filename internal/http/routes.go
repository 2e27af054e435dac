package http

import (
	"github.com/gin-gonic/gin"

	"github.com/thcfit/shipping-gateway/internal/middleware"
	"github.com/thcfit/shipping-gateway/internal/service"
)

// RouteGroup defines a group of routes that can be registered.
type RouteGroup interface {
	// RegisterRoutes registers routes to the given router group.
	RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig)
}

// ShippingRoutes registers the carrier proxy routes.
type ShippingRoutes struct {
	handler *ShippingHandler
}

// NewShippingRoutes creates a new ShippingRoutes instance.
func NewShippingRoutes(shipping service.ShippingService) *ShippingRoutes {
	return &ShippingRoutes{handler: NewShippingHandler(shipping)}
}

// RegisterRoutes registers the carrier routes, behind API key auth when keys are configured.
func (r *ShippingRoutes) RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	carrier := rg.Group("")
	if len(cfg.APIKeys) > 0 {
		carrier.Use(middleware.APIKeyAuth(cfg.APIKeys))
	}

	carrier.GET("/validate-address", r.handler.ValidateAddress)
	carrier.POST("/quote", r.handler.Quote)
	carrier.POST("/ship", r.handler.CreateShipment)
	carrier.POST("/shipments/form", r.handler.CreateShipmentFromForm)
	carrier.GET("/track", r.handler.Track)
	carrier.GET("/reference-data", r.handler.ReferenceData)
}

// AdminRoutes registers the admin login and log search routes.
type AdminRoutes struct {
	handler *AdminHandler
	admins  service.AdminService
}

// NewAdminRoutes creates a new AdminRoutes instance.
func NewAdminRoutes(handler *AdminHandler, admins service.AdminService) *AdminRoutes {
	return &AdminRoutes{handler: handler, admins: admins}
}

// RegisterRoutes registers login publicly and the searches behind admin JWT auth.
func (r *AdminRoutes) RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	admin := rg.Group("/admin")
	admin.POST("/login", r.handler.Login)

	protected := admin.Group("")
	protected.Use(middleware.AdminAuth(r.admins))
	if cfg.AdminLimiter != nil {
		protected.Use(cfg.AdminLimiter.AdminRateLimit())
	}
	protected.GET("/logs", r.handler.AuditLogs)
	protected.GET("/request-logs", r.handler.RequestLogs)
}
