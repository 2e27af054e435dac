//go:build !integration

package app

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLambdaTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/ship", func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		c.Header("X-Seen-Query", c.Request.URL.RawQuery)
		c.Header("X-Seen-Cookie", c.GetHeader("Cookie"))
		c.Header("X-Seen-Client", c.ClientIP())
		c.Data(http.StatusCreated, "application/json", body)
	})
	router.GET("/label.pdf", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/pdf", []byte("%PDF-1.4"))
	})
	router.GET("/compressed", func(c *gin.Context) {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		_, _ = zw.Write([]byte(`{"ok":true}`))
		_ = zw.Close()
		c.Header("Content-Encoding", "gzip")
		c.Data(http.StatusOK, "application/json", buf.Bytes())
	})
	router.GET("/session", func(c *gin.Context) {
		c.SetCookie("a", "1", 60, "/", "", false, true)
		c.SetCookie("b", "2", 60, "/", "", false, true)
		c.Status(http.StatusNoContent)
	})
	return router
}

func v2Event(method, path, body string) events.APIGatewayV2HTTPRequest {
	return events.APIGatewayV2HTTPRequest{
		RawPath: path,
		Body:    body,
		Headers: map[string]string{"content-type": "application/json"},
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			DomainName: "api.example.com",
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{
				Method:   method,
				Path:     path,
				SourceIP: "203.0.113.7",
			},
		},
	}
}

func TestLambdaHandler_Handle(t *testing.T) {
	handler := NewLambdaHandler(newLambdaTestRouter())

	tests := []struct {
		name        string
		event       func() events.APIGatewayV2HTTPRequest
		wantStatus  int
		wantBody    string
		wantBase64  bool
		wantHeaders map[string]string
		wantCookies int
		decodeGzip  bool
	}{
		{
			name: "plain JSON body",
			event: func() events.APIGatewayV2HTTPRequest {
				e := v2Event(http.MethodPost, "/api/ship", `{"productCode":"P"}`)
				e.RawQueryString = "dryRun=1"
				e.Cookies = []string{"a=1", "b=2"}
				return e
			},
			wantStatus: http.StatusCreated,
			wantBody:   `{"productCode":"P"}`,
			wantHeaders: map[string]string{
				"X-Seen-Query":  "dryRun=1",
				"X-Seen-Cookie": "a=1; b=2",
				"X-Seen-Client": "203.0.113.7",
			},
		},
		{
			name: "base64 request body",
			event: func() events.APIGatewayV2HTTPRequest {
				e := v2Event(http.MethodPost, "/api/ship", base64.StdEncoding.EncodeToString([]byte(`{"a":1}`)))
				e.IsBase64Encoded = true
				return e
			},
			wantStatus: http.StatusCreated,
			wantBody:   `{"a":1}`,
		},
		{
			name:       "binary document",
			event:      func() events.APIGatewayV2HTTPRequest { return v2Event(http.MethodGet, "/label.pdf", "") },
			wantStatus: http.StatusOK,
			wantBody:   "%PDF-1.4",
			wantBase64: true,
		},
		{
			name:       "compressed response",
			event:      func() events.APIGatewayV2HTTPRequest { return v2Event(http.MethodGet, "/compressed", "") },
			wantStatus: http.StatusOK,
			wantBody:   `{"ok":true}`,
			wantBase64: true,
			decodeGzip: true,
		},
		{
			name:        "cookies are returned separately",
			event:       func() events.APIGatewayV2HTTPRequest { return v2Event(http.MethodGet, "/session", "") },
			wantStatus:  http.StatusNoContent,
			wantCookies: 2,
		},
		{
			name:       "unknown route",
			event:      func() events.APIGatewayV2HTTPRequest { return v2Event(http.MethodGet, "/missing", "") },
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := handler.Handle(context.Background(), tt.event())
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantBase64, resp.IsBase64Encoded)
			assert.Len(t, resp.Cookies, tt.wantCookies)
			for name, want := range tt.wantHeaders {
				assert.Equal(t, want, resp.Headers[name], name)
			}
			if tt.wantBody == "" {
				return
			}

			body := []byte(resp.Body)
			if resp.IsBase64Encoded {
				body, err = base64.StdEncoding.DecodeString(resp.Body)
				require.NoError(t, err)
			}
			if tt.decodeGzip {
				zr, err := gzip.NewReader(bytes.NewReader(body))
				require.NoError(t, err)
				body, err = io.ReadAll(zr)
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantBody, string(body))
		})
	}
}

func TestLambdaHandler_MalformedBody(t *testing.T) {
	event := v2Event(http.MethodPost, "/api/ship", "%%%not-base64")
	event.IsBase64Encoded = true

	_, err := NewLambdaHandler(newLambdaTestRouter()).Handle(context.Background(), event)

	assert.Error(t, err)
}

func TestIsTextual(t *testing.T) {
	tests := []struct {
		contentType string
		encoding    string
		want        bool
	}{
		{contentType: "", want: true},
		{contentType: "application/json; charset=utf-8", want: true},
		{contentType: "text/html", want: true},
		{contentType: "application/problem+json", want: true},
		{contentType: "application/pdf", want: false},
		{contentType: "image/png", want: false},
		{contentType: "application/json", encoding: "gzip", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.contentType+"/"+tt.encoding, func(t *testing.T) {
			header := http.Header{}
			if tt.contentType != "" {
				header.Set("Content-Type", tt.contentType)
			}
			if tt.encoding != "" {
				header.Set("Content-Encoding", tt.encoding)
			}
			assert.Equal(t, tt.want, isTextual(header))
		})
	}
}
