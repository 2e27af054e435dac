package http

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/thcfit/shipping-gateway/docs"
	"github.com/thcfit/shipping-gateway/internal/domain/dto"
	"github.com/thcfit/shipping-gateway/internal/i18n"
	"github.com/thcfit/shipping-gateway/internal/metrics"
	"github.com/thcfit/shipping-gateway/internal/middleware"
)

// RouterConfig holds router configuration options.
type RouterConfig struct {
	APIKeys     map[string]bool
	CORSOrigins []string
	SwaggerUser string
	SwaggerPass string
	// Limiter throttles every request per client IP; nil disables it.
	Limiter *middleware.RateLimiter
	// AdminLimiter throttles authenticated admin requests per admin.
	AdminLimiter *middleware.RateLimiter
	// RequestSink receives a copy of every request log; nil keeps console logging only.
	RequestSink *middleware.AsyncLogger
}

// NewRouter creates the gin engine of the shipping gateway.
func NewRouter(healthHandler *HealthHandler, cfg RouterConfig, groups ...RouteGroup) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	configureGlobalMiddleware(router, &cfg)
	registerInfrastructureRoutes(router, healthHandler, &cfg)

	api := router.Group("/api")
	for _, group := range groups {
		group.RegisterRoutes(api, &cfg)
	}

	router.NoMethod(methodNotAllowed(router))
	router.NoRoute(notFound)

	return router
}

func configureGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) {
	allowedOrigins := cfg.CORSOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Accept-Language", "Authorization", "X-API-Key", "X-Request-ID", "X-Requested-With"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.RequestLogger(cfg.RequestSink),
		middleware.ErrorHandler(),
	)

	if cfg.Limiter != nil {
		router.Use(cfg.Limiter.RateLimit())
	}
}

// registerInfrastructureRoutes registers health, metrics, and documentation routes.
func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler, cfg *RouterConfig) {
	if healthHandler != nil {
		healthHandler.Register(router)
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		authorized := router.Group("/swagger", gin.BasicAuth(gin.Accounts{
			cfg.SwaggerUser: cfg.SwaggerPass,
		}))
		authorized.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	} else {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

// methodNotAllowed answers 405 with an Allow header listing the methods the path accepts.
func methodNotAllowed(router *gin.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var allowed []string
		for _, route := range router.Routes() {
			if route.Path == c.Request.URL.Path {
				allowed = append(allowed, route.Method)
			}
		}
		sort.Strings(allowed)
		c.Header("Allow", strings.Join(allowed, ", "))

		message := i18n.GetTranslator().Translate(i18n.ErrKeyMethodNotAllowed, i18n.GetLocale(c))
		c.JSON(http.StatusMethodNotAllowed,
			dto.NewError(dto.ErrCodeMethodNotAllowed, message).WithRequestID(middleware.GetRequestID(c)))
	}
}

func notFound(c *gin.Context) {
	message := i18n.GetTranslator().Translate(i18n.ErrKeyNotFound, i18n.GetLocale(c))
	c.JSON(http.StatusNotFound,
		dto.NewError(dto.ErrCodeNotFound, message).WithRequestID(middleware.GetRequestID(c)))
}
