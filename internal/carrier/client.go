// Package carrier talks to the carrier REST API: token exchange, bounded
// calls and classification of every response into a result or an *Error.
package carrier

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/thcfit/shipping-gateway/internal/circuitbreaker"
)

const maxResponseBytes = 32 << 20

// AuthStrategy selects how a request authenticates upstream.
type AuthStrategy int

const (
	// AuthBearer exchanges the credential pair for a bearer token first.
	AuthBearer AuthStrategy = iota
	// AuthAPIKey sends the postal-validation API key as the "key" query parameter.
	AuthAPIKey
)

// Credentials are the secrets used to authenticate upstream.
type Credentials struct {
	Username string
	Password string
	TokenURL string
	APIKey   string
}

// Request is one upstream call.
type Request struct {
	Action string
	Method string
	URL    string
	Query  url.Values
	Body   []byte
	Auth   AuthStrategy
}

// Response is the raw upstream answer before classification.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Doer executes carrier calls. *Client implements it.
type Doer interface {
	Do(ctx context.Context, req Request) (*Result, error)
}

// Client is the carrier HTTP client.
type Client struct {
	httpClient  *http.Client
	credentials Credentials
	timeout     time.Duration
	breaker     *circuitbreaker.CircuitBreaker
	// addressBreaker guards the postal-validation host, which authenticates
	// with the API key and fails independently of the shipping endpoints.
	addressBreaker *circuitbreaker.CircuitBreaker
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithCircuitBreaker guards bearer-authenticated round trips with cb.
func WithCircuitBreaker(cb *circuitbreaker.CircuitBreaker) ClientOption {
	return func(c *Client) {
		c.breaker = cb
	}
}

// WithAddressCircuitBreaker guards API-key round trips with cb.
func WithAddressCircuitBreaker(cb *circuitbreaker.CircuitBreaker) ClientOption {
	return func(c *Client) {
		c.addressBreaker = cb
	}
}

// NewClient creates a Client. Every upstream call is bounded by timeout.
func NewClient(credentials Credentials, timeout time.Duration, opts ...ClientOption) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	c := &Client{
		httpClient:  &http.Client{Timeout: timeout},
		credentials: credentials,
		timeout:     timeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BreakerConfig returns cfg with the carrier's failure filter applied.
func BreakerConfig(cfg circuitbreaker.Config) circuitbreaker.Config {
	cfg.IsExcluded = isClientRejection
	return cfg
}

// Do authenticates, performs the call and classifies the response.
func (c *Client) Do(ctx context.Context, req Request) (*Result, error) {
	var result *Result
	run := func() error {
		var err error
		result, err = c.do(ctx, req)
		return err
	}

	var err error
	if cb := c.breakerFor(req.Auth); cb != nil {
		err = cb.Execute(ctx, run)
	} else {
		err = run()
	}

	switch {
	case errors.Is(err, circuitbreaker.ErrCircuitOpen):
		return nil, &Error{
			Kind:    KindProtocol,
			Status:  http.StatusServiceUnavailable,
			Message: "The carrier is currently unavailable",
			Err:     err,
		}
	case err != nil:
		var cerr *Error
		if errors.As(err, &cerr) {
			return nil, cerr
		}
		return nil, transportError(err)
	}
	return result, nil
}

func (c *Client) breakerFor(auth AuthStrategy) *circuitbreaker.CircuitBreaker {
	if auth == AuthAPIKey {
		return c.addressBreaker
	}
	return c.breaker
}

func (c *Client) do(ctx context.Context, req Request) (*Result, error) {
	header := http.Header{}
	query := cloneValues(req.Query)

	switch req.Auth {
	case AuthBearer:
		token, err := c.Token(ctx)
		if err != nil {
			return nil, err
		}
		header.Set("Authorization", token)
	case AuthAPIKey:
		query.Set("key", c.credentials.APIKey)
	}

	resp, err := c.send(ctx, req.Method, withQuery(req.URL, query), req.Body, header)
	if err != nil {
		return nil, transportError(err)
	}
	return Classify(resp)
}

// send performs one bounded round trip and reads the whole body.
func (c *Client) send(ctx context.Context, method, target string, body []byte, header http.Header) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

func transportError(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
		return &Error{
			Kind:    KindProtocol,
			Status:  http.StatusGatewayTimeout,
			Message: "The carrier did not respond in time",
			Err:     err,
		}
	}
	return &Error{
		Kind:    KindProtocol,
		Status:  http.StatusBadGateway,
		Message: "The carrier is currently unavailable",
		Err:     err,
	}
}

func isTimeout(err error) bool {
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}

func cloneValues(v url.Values) url.Values {
	out := url.Values{}
	for k, vs := range v {
		out[k] = append([]string(nil), vs...)
	}
	return out
}

func withQuery(target string, query url.Values) string {
	if len(query) == 0 {
		return target
	}
	u, err := url.Parse(target)
	if err != nil {
		return target
	}
	merged := u.Query()
	for k, vs := range query {
		merged[k] = vs
	}
	u.RawQuery = merged.Encode()
	return u.String()
}
