//go:build integration

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thcfit/shipping-gateway/config"
	"github.com/thcfit/shipping-gateway/internal/carrier"
	"github.com/thcfit/shipping-gateway/internal/domain/dto"
	"github.com/thcfit/shipping-gateway/internal/middleware"
	"github.com/thcfit/shipping-gateway/internal/repository"
	"github.com/thcfit/shipping-gateway/internal/service"
	"github.com/thcfit/shipping-gateway/internal/testutil"
)

func newFakeCarrier(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/token", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"access_token":"abc","token_type":"Bearer"}`)
	})
	mux.HandleFunc("/shipments", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"shipmentTrackingNumber":"5584773180","dispatchConfirmationNumber":"PRG200227000256","documents":[{"typeCode":"label","imageFormat":"PDF","content":"JVBERi0xLjQ="}]}`)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestGateway_Integration(t *testing.T) {
	ctx := context.Background()

	pg, err := repository.NewPostgres(ctx, config.DatabaseConfig{URL: testutil.SharedPostgresDSN(), MaxOpenConns: 5, MaxIdleConns: 2})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Close() })
	require.NoError(t, pg.Migrate(ctx))
	_, err = pg.DB.ExecContext(ctx, "TRUNCATE shipment_logs, dbs_users RESTART IDENTITY")
	require.NoError(t, err)

	mongo, err := repository.NewMongoDB(testutil.SharedMongoURI(), testutil.SanitizeDBName(t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = mongo.Close(ctx) })

	fake := newFakeCarrier(t)
	carrierCfg := config.CarrierConfig{
		Username:        "user",
		Password:        "secret",
		TokenURL:        fake.URL + "/auth/v1/token",
		ShipmentsURL:    fake.URL + "/shipments",
		DefaultCurrency: "THB",
	}
	client := carrier.NewClient(carrier.Credentials{
		Username: carrierCfg.Username,
		Password: carrierCfg.Password,
		TokenURL: carrierCfg.TokenURL,
	}, 5*time.Second)

	audit := service.NewAuditService(repository.NewAuditRepository(pg), nil)
	admins := service.NewAdminService(repository.NewAdminRepository(pg), service.NewTokenService("integration-secret", time.Hour))
	requestLogs := service.NewLoggingService(repository.NewLogsRepository(mongo))
	sink := middleware.NewAsyncLogger(requestLogs, middleware.DefaultAsyncLoggerConfig())

	created, err := admins.EnsureAdmin(ctx, "admin", "change-me", "Admin User")
	require.NoError(t, err)
	require.True(t, created)

	router := NewRouter(NewHealthHandler(), RouterConfig{RequestSink: sink},
		NewShippingRoutes(service.NewShippingService(client, audit, nil, carrierCfg)),
		NewAdminRoutes(NewAdminHandler(admins, audit, requestLogs, WithActivitySink(sink)), admins),
	)

	serve := func(method, target, body, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(middleware.RequestIDHeader, "it-"+method+"-"+target)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	ship := serve(http.MethodPost, "/api/ship", `{"productCode":"P","customerDetails":{"shipperDetails":{"contactInformation":{"fullName":"Somchai"}}}}`, "")
	require.Equal(t, http.StatusCreated, ship.Code)
	assert.Contains(t, ship.Body.String(), "5584773180")

	login := serve(http.MethodPost, "/api/admin/login", `{"username":"admin","password":"change-me"}`, "")
	require.Equal(t, http.StatusOK, login.Code)
	var session dto.LoginResponse
	require.NoError(t, json.Unmarshal(login.Body.Bytes(), &session))
	require.NotEmpty(t, session.Token)

	t.Run("audit row is searchable", func(t *testing.T) {
		w := serve(http.MethodGet, "/api/admin/logs?trackingNumber=558477", "", session.Token)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data struct {
				Items []map[string]interface{} `json:"items"`
				Count int                      `json:"count"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, 1, resp.Data.Count)
		row := resp.Data.Items[0]
		assert.Equal(t, "shipment_success", row["log_type"])
		assert.Equal(t, "PRG200227000256", row["booking_ref"])
		assert.Equal(t, "JVBERi0xLjQ=", row["respond_label"])
	})

	t.Run("request log is searchable", func(t *testing.T) {
		stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		require.NoError(t, sink.Stop(stopCtx))

		w := serve(http.MethodGet, "/api/admin/request-logs?action=shipment", "", session.Token)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data struct {
				Items []map[string]interface{} `json:"items"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Data.Items, 1)
		assert.Equal(t, "/api/ship", resp.Data.Items[0]["path"])
		assert.Equal(t, "it-POST-/api/ship", resp.Data.Items[0]["request_id"])
	})

	t.Run("wrong password", func(t *testing.T) {
		w := serve(http.MethodPost, "/api/admin/login", `{"username":"admin","password":"nope"}`, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
