package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/thcfit/shipping-gateway/internal/carrier"
	"github.com/thcfit/shipping-gateway/internal/domain/dto"
	"github.com/thcfit/shipping-gateway/internal/middleware"
	"github.com/thcfit/shipping-gateway/internal/mocks"
)

type testGateway struct {
	router   *gin.Engine
	shipping *mocks.MockShippingService
	admins   *mocks.MockAdminService
}

func newTestGateway(t *testing.T, cfg RouterConfig) testGateway {
	t.Helper()
	shipping := &mocks.MockShippingService{}
	admins := &mocks.MockAdminService{}
	adminHandler := NewAdminHandler(admins, &mocks.MockAuditService{}, &mocks.MockLoggingService{})

	router := NewRouter(NewHealthHandler(), cfg,
		NewShippingRoutes(shipping),
		NewAdminRoutes(adminHandler, admins),
	)
	return testGateway{router: router, shipping: shipping, admins: admins}
}

func (g testGateway) do(method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	g.router.ServeHTTP(w, req)
	return w
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	tests := []struct {
		method    string
		target    string
		wantAllow string
	}{
		{method: http.MethodGet, target: "/api/ship", wantAllow: "POST"},
		{method: http.MethodPut, target: "/api/quote", wantAllow: "POST"},
		{method: http.MethodPost, target: "/api/track", wantAllow: "GET"},
		{method: http.MethodDelete, target: "/api/admin/login", wantAllow: "POST"},
	}

	g := newTestGateway(t, RouterConfig{})
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			w := g.do(tt.method, tt.target, "", nil)

			assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
			assert.Equal(t, tt.wantAllow, w.Header().Get("Allow"))
			assert.Equal(t, dto.ErrCodeMethodNotAllowed, decodeError(t, w).Error)
		})
	}
	g.shipping.AssertNotCalled(t, "CreateShipment", mock.Anything, mock.Anything)
}

func TestRouter_NotFound(t *testing.T) {
	g := newTestGateway(t, RouterConfig{})

	w := g.do(http.MethodGet, "/api/unknown", "", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, dto.ErrCodeNotFound, resp.Error)
	assert.Equal(t, w.Header().Get(middleware.RequestIDHeader), resp.RequestID)
}

func TestRouter_APIKeys(t *testing.T) {
	g := newTestGateway(t, RouterConfig{APIKeys: map[string]bool{"key-1": true}})
	g.shipping.On("Track", mock.Anything, dto.TrackQuery{TrackingNumber: "123"}).
		Return(&carrier.Result{StatusCode: http.StatusOK, Body: []byte(`{"shipments":[]}`)}, nil)
	g.admins.On("Login", mock.Anything, "admin", "secret").
		Return(&dto.LoginResponse{Token: "t", TokenType: "Bearer", ExpiresIn: 60}, nil)

	t.Run("carrier route without key", func(t *testing.T) {
		w := g.do(http.MethodGet, "/api/track?trackingNumber=123", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("carrier route with key", func(t *testing.T) {
		w := g.do(http.MethodGet, "/api/track?trackingNumber=123", "", map[string]string{"X-API-Key": "key-1"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, `{"shipments":[]}`, w.Body.String())
	})

	t.Run("admin login needs no API key", func(t *testing.T) {
		w := g.do(http.MethodPost, "/api/admin/login", `{"username":"admin","password":"secret"}`, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRouter_CORS(t *testing.T) {
	g := newTestGateway(t, RouterConfig{CORSOrigins: []string{"https://thcfit.vercel.app"}})

	tests := []struct {
		name       string
		origin     string
		wantOrigin string
	}{
		{name: "allowed origin", origin: "https://thcfit.vercel.app", wantOrigin: "https://thcfit.vercel.app"},
		{name: "unknown origin", origin: "https://evil.example.com", wantOrigin: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := g.do(http.MethodOptions, "/api/quote", "", map[string]string{
				"Origin":                        tt.origin,
				"Access-Control-Request-Method": http.MethodPost,
			})
			assert.Equal(t, tt.wantOrigin, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestRouter_RateLimit(t *testing.T) {
	limiter := middleware.NewRateLimiter(1, time.Minute)
	defer limiter.Stop()
	g := newTestGateway(t, RouterConfig{Limiter: limiter})

	first := g.do(http.MethodGet, "/healthz", "", nil)
	second := g.do(http.MethodGet, "/healthz", "", nil)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))
}

func TestRouter_InfrastructureRoutes(t *testing.T) {
	tests := []struct {
		name       string
		cfg        RouterConfig
		target     string
		headers    map[string]string
		wantStatus int
	}{
		{name: "metrics", target: "/metrics", wantStatus: http.StatusOK},
		{name: "liveness", target: "/healthz", wantStatus: http.StatusOK},
		{name: "readiness", target: "/readyz", wantStatus: http.StatusOK},
		{name: "swagger document", target: "/swagger/doc.json", wantStatus: http.StatusOK},
		{
			name:       "swagger behind basic auth",
			cfg:        RouterConfig{SwaggerUser: "docs", SwaggerPass: "secret"},
			target:     "/swagger/doc.json",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGateway(t, tt.cfg)
			w := g.do(http.MethodGet, tt.target, "", tt.headers)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
		})
	}
}
