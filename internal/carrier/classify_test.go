package carrier

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMessage(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{
			name:     "detail with additional details",
			body:     `{"detail":"Validation failed","message":"ignored","additionalDetails":[{"message":"x"},{"message":"y"}]}`,
			expected: "Validation failed; x; y",
		},
		{
			name:     "message when detail missing",
			body:     `{"message":"Bad account"}`,
			expected: "Bad account",
		},
		{
			name:     "string additional details",
			body:     `{"detail":"Invalid","additionalDetails":["postalCode is required","cityName is required"]}`,
			expected: "Invalid; postalCode is required; cityName is required",
		},
		{
			name:     "additional details alone",
			body:     `{"additionalDetails":[{"message":"only this"}]}`,
			expected: "only this",
		},
		{
			name:     "blank detail falls through to message",
			body:     `{"detail":"  ","message":"Use me"}`,
			expected: "Use me",
		},
		{
			name:     "raw body when nothing recognisable",
			body:     `{"status":"500","title":"oops"}`,
			expected: `{"status":"500","title":"oops"}`,
		},
		{
			name:     "raw body for a JSON array",
			body:     `["a","b"]`,
			expected: `["a","b"]`,
		},
		{
			name:     "empty body",
			body:     ``,
			expected: messageRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractMessage([]byte(tt.body)))
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		resp       *Response
		wantKind   Kind
		wantStatus int
		validate   func(*testing.T, *Result, *Error)
	}{
		{
			name: "success forwards body verbatim",
			resp: &Response{
				StatusCode: http.StatusCreated,
				Header:     http.Header{"Content-Type": []string{"application/json; charset=utf-8"}},
				Body:       []byte(`{"shipmentTrackingNumber":"123"}`),
			},
			validate: func(t *testing.T, r *Result, _ *Error) {
				assert.Equal(t, http.StatusCreated, r.StatusCode)
				assert.Equal(t, `{"shipmentTrackingNumber":"123"}`, string(r.Body))
				assert.Equal(t, "application/json; charset=utf-8", r.ContentType)
			},
		},
		{
			name:       "non JSON error body is a protocol error",
			resp:       &Response{StatusCode: http.StatusServiceUnavailable, Header: http.Header{}, Body: []byte("<html>down</html>")},
			wantKind:   KindProtocol,
			wantStatus: http.StatusServiceUnavailable,
			validate: func(t *testing.T, _ *Result, e *Error) {
				assert.Equal(t, "<html>down</html>", e.Raw)
				assert.Equal(t, messageInvalidResponse, e.Message)
			},
		},
		{
			name:       "non JSON success body is a protocol error",
			resp:       &Response{StatusCode: http.StatusOK, Header: http.Header{}, Body: []byte("OK")},
			wantKind:   KindProtocol,
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "empty body is a protocol error",
			resp:       &Response{StatusCode: http.StatusOK, Header: http.Header{}},
			wantKind:   KindProtocol,
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "structured error keeps upstream status",
			resp:       &Response{StatusCode: http.StatusUnprocessableEntity, Header: http.Header{}, Body: []byte(`{"detail":"Invalid field"}`)},
			wantKind:   KindApplication,
			wantStatus: http.StatusUnprocessableEntity,
			validate: func(t *testing.T, _ *Result, e *Error) {
				assert.Equal(t, "Invalid field", e.Message)
				assert.JSONEq(t, `{"detail":"Invalid field"}`, string(e.Details))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Classify(tt.resp)
			if tt.wantKind == KindInternal {
				require.NoError(t, err)
				require.NotNil(t, result)
				if tt.validate != nil {
					tt.validate(t, result, nil)
				}
				return
			}

			require.Error(t, err)
			assert.Nil(t, result)
			cerr := AsError(err)
			assert.Equal(t, tt.wantKind, cerr.Kind)
			assert.Equal(t, tt.wantStatus, cerr.HTTPStatus())
			if tt.validate != nil {
				tt.validate(t, nil, cerr)
			}
		})
	}
}
