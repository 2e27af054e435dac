package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/thcfit/shipping-gateway/internal/domain/model"
	"github.com/thcfit/shipping-gateway/internal/logger"
)

// RequestLogger logs every request to the console and, when sink is set,
// queues a copy for the request-log store.
func RequestLogger(sink *AsyncLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()
		entry := &model.LogEntry{
			Timestamp:  start.UTC(),
			Level:      levelFor(statusCode),
			Message:    "HTTP request",
			RequestID:  GetRequestID(c),
			Method:     c.Request.Method,
			Path:       c.Request.URL.Path,
			StatusCode: statusCode,
			Duration:   latency.Milliseconds(),
			IP:         c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
			Admin:      GetAdmin(c),
			Action:     GetAction(c),
		}
		if len(c.Errors) > 0 {
			entry.Error = c.Errors.Last().Error()
		}

		log := logger.Logger().With().
			Str("request_id", entry.RequestID).
			Str("method", entry.Method).
			Str("path", entry.Path).
			Int("status_code", statusCode).
			Int64("duration_ms", entry.Duration).
			Str("ip", entry.IP).
			Logger()
		if entry.Action != "" {
			log = log.With().Str("action", entry.Action).Logger()
		}
		log.WithLevel(zerologLevel(entry.Level)).Msg("HTTP request")

		sink.Log(entry)
	}
}

// LogActivity queues an admin activity record, e.g. a failed login.
func LogActivity(sink *AsyncLogger, c *gin.Context, message string, err error, fields map[string]interface{}) {
	level := "info"
	if err != nil {
		level = "warn"
	}
	entry := &model.LogEntry{
		Timestamp: time.Now().UTC(),
		Level:     level,
		Message:   message,
		RequestID: GetRequestID(c),
		Method:    c.Request.Method,
		Path:      c.Request.URL.Path,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Admin:     GetAdmin(c),
		Fields:    fields,
	}
	if err != nil {
		entry.Error = err.Error()
	}
	sink.Log(entry)
}

func levelFor(statusCode int) string {
	switch {
	case statusCode >= 500:
		return "error"
	case statusCode >= 400:
		return "warn"
	default:
		return "info"
	}
}

func zerologLevel(level string) zerolog.Level {
	switch level {
	case "error":
		return zerolog.ErrorLevel
	case "warn":
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}
