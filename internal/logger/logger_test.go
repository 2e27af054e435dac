package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureGlobal redirects the global logger into a buffer for one test.
func captureGlobal(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	original := log.Logger
	t.Cleanup(func() { log.Logger = original })
	log.Logger = zerolog.New(&buf)
	return &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	return line
}

func TestInit_Levels(t *testing.T) {
	original := log.Logger
	t.Cleanup(func() { log.Logger = original })

	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{level: "debug", want: zerolog.DebugLevel},
		{level: "warn", want: zerolog.WarnLevel},
		{level: " ERROR ", want: zerolog.ErrorLevel},
		{level: "", want: zerolog.InfoLevel},
		{level: "loud", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			Init(tt.level, false)
			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}

	Init("info", true)
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestForAction(t *testing.T) {
	tests := []struct {
		name          string
		requestID     string
		wantRequestID bool
	}{
		{name: "with request id", requestID: "req-1", wantRequestID: true},
		{name: "without request id", requestID: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureGlobal(t)

			l := ForAction("quote", tt.requestID)
			l.Info().Msg("Carrier call succeeded")

			line := decodeLine(t, buf)
			assert.Equal(t, "quote", line["action"])
			_, hasRequestID := line["request_id"]
			assert.Equal(t, tt.wantRequestID, hasRequestID)
		})
	}
}

func TestWithFields(t *testing.T) {
	buf := captureGlobal(t)

	l := WithFields(map[string]interface{}{"tracking_number": "5584773180", "pieces": 2})
	l.Warn().Msg("Audit write failed")

	line := decodeLine(t, buf)
	assert.Equal(t, "5584773180", line["tracking_number"])
	assert.EqualValues(t, 2, line["pieces"])
	assert.Equal(t, "warn", line["level"])
}

func TestLogger_ReturnsGlobal(t *testing.T) {
	buf := captureGlobal(t)

	l := Logger()
	l.Info().Msg("hello")

	assert.Contains(t, buf.String(), `"message":"hello"`)
}
