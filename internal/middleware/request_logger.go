package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/guttosm/pricing-service/internal/domain/model"
	"github.com/guttosm/pricing-service/internal/logger"
)

// probePaths are polled by orchestrators and scrapers. They are logged at
// debug and never reach the audit sink.
var probePaths = map[string]bool{
	"/healthz": true,
	"/readyz":  true,
	"/metrics": true,
}

// RequestLogger writes one structured line per request and, when sink is
// non-nil, forwards the same entry to the audit store.
func RequestLogger(sink LogSink) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		entry := &model.LogEntry{
			Timestamp:  start,
			Level:      getLogLevel(status),
			Message:    "HTTP request",
			RequestID:  GetRequestID(c),
			Method:     c.Request.Method,
			Path:       c.Request.URL.Path,
			StatusCode: status,
			Duration:   time.Since(start).Milliseconds(),
			IP:         c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
			ClientID:   GetClientID(c),
		}
		if errs := c.Errors.ByType(gin.ErrorTypeAny); len(errs) > 0 {
			entry.Error = strings.Join(errs.Errors(), "; ")
		}

		probe := probePaths[entry.Path]
		level := zerolog.InfoLevel
		switch {
		case probe && status < 400:
			level = zerolog.DebugLevel
		case entry.Level == "error":
			level = zerolog.ErrorLevel
		case entry.Level == "warn":
			level = zerolog.WarnLevel
		}

		log := logger.Logger()
		event := log.WithLevel(level).
			Str("request_id", entry.RequestID).
			Str("method", entry.Method).
			Str("path", entry.Path).
			Int("status_code", status).
			Int64("duration_ms", entry.Duration).
			Int("bytes", c.Writer.Size()).
			Str("ip", entry.IP).
			Str("user_agent", entry.UserAgent)
		if entry.ClientID != "" {
			event = event.Str("client_id", entry.ClientID)
		}
		if entry.Error != "" {
			event = event.Str("error", entry.Error)
		}
		event.Msg(entry.Message)

		if sink != nil && !probe {
			sink.Log(entry)
		}
	}
}

func getLogLevel(statusCode int) string {
	switch {
	case statusCode >= 500:
		return "error"
	case statusCode >= 400:
		return "warn"
	default:
		return "info"
	}
}
