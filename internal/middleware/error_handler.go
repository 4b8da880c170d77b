package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pricing-service/internal/circuitbreaker"
	"github.com/guttosm/pricing-service/internal/domain/dto"
	"github.com/guttosm/pricing-service/internal/i18n"
	"github.com/guttosm/pricing-service/internal/logger"
	"github.com/guttosm/pricing-service/internal/service"
)

// ErrorHandler logs the last error a handler attached with c.Error. When the
// handler wrote nothing it also answers with the envelope matching that
// error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil {
			return
		}

		status, key := classify(last.Err)
		if c.Writer.Written() {
			status = c.Writer.Status()
		}

		log := logger.Logger()
		event := log.Error()
		if status < http.StatusInternalServerError {
			event = log.Warn()
		}
		event.
			Str("request_id", GetRequestID(c)).
			Err(last.Err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status_code", status).
			Msg("Request error")

		if c.Writer.Written() {
			return
		}
		c.JSON(status, dto.NewError(dto.ErrCodeFromStatus(status), i18n.T(key, i18n.GetLocale(c))).
			WithRequestID(GetRequestID(c)))
	}
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, i18n.ErrKeyInvalidOrderInput
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized, i18n.ErrKeyUnauthorized
	case errors.Is(err, circuitbreaker.ErrCircuitOpen):
		return http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, i18n.ErrKeyTimeout
	}
	return http.StatusInternalServerError, i18n.ErrKeyInternalError
}
