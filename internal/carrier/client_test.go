package carrier

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thcfit/shipping-gateway/internal/circuitbreaker"
)

type fakeCarrier struct {
	server     *httptest.Server
	tokenCalls atomic.Int32
	apiCalls   atomic.Int32
	lastAuth   atomic.Value
	lastQuery  atomic.Value
	lastBody   atomic.Value
}

func newFakeCarrier(t *testing.T, tokenStatus int, api http.HandlerFunc) *fakeCarrier {
	t.Helper()
	f := &fakeCarrier{}
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/token", func(w http.ResponseWriter, r *http.Request) {
		f.tokenCalls.Add(1)
		user, pass, ok := r.BasicAuth()
		if !ok || user != "user" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(tokenStatus)
		_, _ = io.WriteString(w, `{"access_token":"abc123","token_type":"Bearer","expires_in":3600}`)
	})
	mux.HandleFunc("/api", func(w http.ResponseWriter, r *http.Request) {
		f.apiCalls.Add(1)
		f.lastAuth.Store(r.Header.Get("Authorization"))
		f.lastQuery.Store(r.URL.RawQuery)
		body, _ := io.ReadAll(r.Body)
		f.lastBody.Store(string(body))
		api(w, r)
	})
	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeCarrier) client(opts ...ClientOption) *Client {
	return NewClient(Credentials{
		Username: "user",
		Password: "secret",
		TokenURL: f.server.URL + "/auth/v1/token",
		APIKey:   "postal-key",
	}, 2*time.Second, opts...)
}

func jsonHandler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func TestClient_Do_Bearer(t *testing.T) {
	f := newFakeCarrier(t, http.StatusOK, jsonHandler(http.StatusOK, `{"shipmentTrackingNumber":"123"}`))

	result, err := f.client().Do(context.Background(), Request{
		Action: "shipment",
		Method: http.MethodPost,
		URL:    f.server.URL + "/api",
		Body:   []byte(`{"productCode":"P"}`),
		Auth:   AuthBearer,
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.JSONEq(t, `{"shipmentTrackingNumber":"123"}`, string(result.Body))
	assert.Equal(t, int32(1), f.tokenCalls.Load())
	assert.Equal(t, "Bearer abc123", f.lastAuth.Load())
	assert.Equal(t, `{"productCode":"P"}`, f.lastBody.Load())
}

func TestClient_Do_APIKey(t *testing.T) {
	f := newFakeCarrier(t, http.StatusOK, jsonHandler(http.StatusOK, `{"address":[]}`))

	_, err := f.client().Do(context.Background(), Request{
		Action: "validate_address",
		Method: http.MethodGet,
		URL:    f.server.URL + "/api?type=delivery",
		Query:  url.Values{"countryCode": {"TH"}, "postalCode": {"10110"}},
		Auth:   AuthAPIKey,
	})

	require.NoError(t, err)
	assert.Equal(t, int32(0), f.tokenCalls.Load())
	query, _ := url.ParseQuery(f.lastQuery.Load().(string))
	assert.Equal(t, "postal-key", query.Get("key"))
	assert.Equal(t, "TH", query.Get("countryCode"))
	assert.Equal(t, "delivery", query.Get("type"))
	assert.Empty(t, f.lastAuth.Load())
}

func TestClient_Do_TokenFailureSkipsMainCall(t *testing.T) {
	f := newFakeCarrier(t, http.StatusInternalServerError, jsonHandler(http.StatusOK, `{}`))

	_, err := f.client().Do(context.Background(), Request{
		Method: http.MethodGet,
		URL:    f.server.URL + "/api",
		Auth:   AuthBearer,
	})

	require.Error(t, err)
	assert.Equal(t, KindAuthentication, KindOf(err))
	assert.Equal(t, http.StatusBadGateway, AsError(err).HTTPStatus())
	assert.Equal(t, int32(0), f.apiCalls.Load())
}

func TestClient_Do_WrongCredentials(t *testing.T) {
	f := newFakeCarrier(t, http.StatusOK, jsonHandler(http.StatusOK, `{}`))
	c := NewClient(Credentials{Username: "user", Password: "wrong", TokenURL: f.server.URL + "/auth/v1/token"}, time.Second)

	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, URL: f.server.URL + "/api", Auth: AuthBearer})

	assert.Equal(t, KindAuthentication, KindOf(err))
	assert.Equal(t, int32(0), f.apiCalls.Load())
}

func TestClient_Do_ApplicationError(t *testing.T) {
	f := newFakeCarrier(t, http.StatusOK, jsonHandler(http.StatusBadRequest,
		`{"detail":"Multiple problems found","additionalDetails":[{"message":"x"},{"message":"y"}]}`))

	_, err := f.client().Do(context.Background(), Request{Method: http.MethodPost, URL: f.server.URL + "/api", Body: []byte(`{}`), Auth: AuthBearer})

	cerr := AsError(err)
	assert.Equal(t, KindApplication, cerr.Kind)
	assert.Equal(t, http.StatusBadRequest, cerr.HTTPStatus())
	assert.Equal(t, "Multiple problems found; x; y", cerr.Message)
}

func TestClient_Do_Timeout(t *testing.T) {
	f := newFakeCarrier(t, http.StatusOK, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	c := NewClient(Credentials{APIKey: "k"}, 50*time.Millisecond)

	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, URL: f.server.URL + "/api", Auth: AuthAPIKey})

	cerr := AsError(err)
	assert.Equal(t, KindProtocol, cerr.Kind)
	assert.Equal(t, http.StatusGatewayTimeout, cerr.HTTPStatus())
}

func TestClient_Do_Unreachable(t *testing.T) {
	c := NewClient(Credentials{APIKey: "k"}, time.Second)

	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, URL: "http://127.0.0.1:1/api", Auth: AuthAPIKey})

	cerr := AsError(err)
	assert.Equal(t, KindProtocol, cerr.Kind)
	assert.Equal(t, http.StatusBadGateway, cerr.HTTPStatus())
}

func TestClient_Do_CircuitBreaker(t *testing.T) {
	t.Run("rejections do not open the circuit", func(t *testing.T) {
		f := newFakeCarrier(t, http.StatusOK, jsonHandler(http.StatusBadRequest, `{"detail":"bad"}`))
		cb := circuitbreaker.New(BreakerConfig(circuitbreaker.Config{FailureThreshold: 1, SuccessThreshold: 1, Timeout: time.Minute, Name: "carrier"}))
		c := f.client(WithCircuitBreaker(cb))

		for i := 0; i < 3; i++ {
			_, err := c.Do(context.Background(), Request{Method: http.MethodGet, URL: f.server.URL + "/api", Auth: AuthBearer})
			assert.Equal(t, KindApplication, KindOf(err))
		}
		assert.Equal(t, circuitbreaker.StateClosed, cb.State())
	})

	t.Run("outages open the circuit", func(t *testing.T) {
		f := newFakeCarrier(t, http.StatusOK, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = io.WriteString(w, "upstream down")
		})
		cb := circuitbreaker.New(BreakerConfig(circuitbreaker.Config{FailureThreshold: 1, SuccessThreshold: 1, Timeout: time.Minute, Name: "carrier"}))
		c := f.client(WithCircuitBreaker(cb))

		_, err := c.Do(context.Background(), Request{Method: http.MethodGet, URL: f.server.URL + "/api", Auth: AuthBearer})
		assert.Equal(t, KindProtocol, KindOf(err))

		_, err = c.Do(context.Background(), Request{Method: http.MethodGet, URL: f.server.URL + "/api", Auth: AuthBearer})
		cerr := AsError(err)
		assert.Equal(t, KindProtocol, cerr.Kind)
		assert.Equal(t, http.StatusServiceUnavailable, cerr.HTTPStatus())
		assert.Equal(t, int32(1), f.apiCalls.Load())
	})
	t.Run("failed token exchanges leave the circuit closed", func(t *testing.T) {
		f := newFakeCarrier(t, http.StatusOK, jsonHandler(http.StatusOK, `{}`))
		cb := circuitbreaker.New(BreakerConfig(circuitbreaker.Config{FailureThreshold: 3, SuccessThreshold: 1, Timeout: time.Minute, Name: "carrier"}))
		c := NewClient(Credentials{Username: "user", Password: "wrong", TokenURL: f.server.URL + "/auth/v1/token"},
			time.Second, WithCircuitBreaker(cb))

		for i := 0; i < 5; i++ {
			_, err := c.Do(context.Background(), Request{Method: http.MethodGet, URL: f.server.URL + "/api", Auth: AuthBearer})
			cerr := AsError(err)
			assert.Equal(t, KindAuthentication, cerr.Kind, "call %d", i)
			assert.Equal(t, http.StatusBadGateway, cerr.HTTPStatus(), "call %d", i)
		}
		assert.Equal(t, circuitbreaker.StateClosed, cb.State())
		assert.Equal(t, int32(5), f.tokenCalls.Load())
		assert.Equal(t, int32(0), f.apiCalls.Load())
	})

	t.Run("address validation has its own circuit", func(t *testing.T) {
		f := newFakeCarrier(t, http.StatusOK, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("key") != "" {
				jsonHandler(http.StatusOK, `{"address":[]}`)(w, r)
				return
			}
			w.WriteHeader(http.StatusBadGateway)
			_, _ = io.WriteString(w, "upstream down")
		})
		shipping := circuitbreaker.New(BreakerConfig(circuitbreaker.Config{FailureThreshold: 1, SuccessThreshold: 1, Timeout: time.Minute, Name: "carrier"}))
		address := circuitbreaker.New(BreakerConfig(circuitbreaker.Config{FailureThreshold: 1, SuccessThreshold: 1, Timeout: time.Minute, Name: "carrier-address"}))
		c := f.client(WithCircuitBreaker(shipping), WithAddressCircuitBreaker(address))

		_, err := c.Do(context.Background(), Request{Method: http.MethodGet, URL: f.server.URL + "/api", Auth: AuthBearer})
		assert.Equal(t, KindProtocol, KindOf(err))
		require.Equal(t, circuitbreaker.StateOpen, shipping.State())

		result, err := c.Do(context.Background(), Request{Method: http.MethodGet, URL: f.server.URL + "/api", Auth: AuthAPIKey})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, result.StatusCode)
		assert.Equal(t, circuitbreaker.StateClosed, address.State())
		assert.Equal(t, int32(2), f.apiCalls.Load())
	})
}

func TestClient_Token(t *testing.T) {
	t.Run("defaults token type", func(t *testing.T) {
		srv := httptest.NewServer(jsonHandler(http.StatusOK, `{"access_token":"xyz"}`))
		defer srv.Close()
		c := NewClient(Credentials{Username: "u", Password: "p", TokenURL: srv.URL}, time.Second)

		token, err := c.Token(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Bearer xyz", token)
	})

	t.Run("missing access token", func(t *testing.T) {
		srv := httptest.NewServer(jsonHandler(http.StatusOK, `{"token_type":"Bearer"}`))
		defer srv.Close()
		c := NewClient(Credentials{Username: "u", Password: "p", TokenURL: srv.URL}, time.Second)

		_, err := c.Token(context.Background())
		assert.Equal(t, KindAuthentication, KindOf(err))
	})
}
