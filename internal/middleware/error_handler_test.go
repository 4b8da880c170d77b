package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/pricing-service/internal/circuitbreaker"
	"github.com/guttosm/pricing-service/internal/domain/dto"
	"github.com/guttosm/pricing-service/internal/service"
)

func TestErrorHandler(t *testing.T) {
	attach := func(err error) gin.HandlerFunc {
		return func(c *gin.Context) { _ = c.Error(err) }
	}

	tests := []struct {
		name        string
		handler     gin.HandlerFunc
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:       "no errors",
			handler:    func(c *gin.Context) { c.String(http.StatusOK, "ok") },
			wantStatus: http.StatusOK,
		},
		{
			name:        "unknown error",
			handler:     attach(errors.New("boom")),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    dto.ErrCodeInternal,
			wantMessage: "An unexpected error occurred",
		},
		{
			name:        "wrapped invalid input",
			handler:     attach(fmt.Errorf("quantity: %w", service.ErrInvalidInput)),
			wantStatus:  http.StatusBadRequest,
			wantCode:    dto.ErrCodeInvalidRequest,
			wantMessage: "Invalid order input",
		},
		{
			name:       "invalid token",
			handler:    attach(service.ErrInvalidToken),
			wantStatus: http.StatusUnauthorized,
			wantCode:   dto.ErrCodeUnauthorized,
		},
		{
			name:       "tripped backend",
			handler:    attach(circuitbreaker.ErrCircuitOpen),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   dto.ErrCodeUnavailable,
		},
		{
			name:       "deadline",
			handler:    attach(context.DeadlineExceeded),
			wantStatus: http.StatusGatewayTimeout,
			wantCode:   dto.ErrCodeTimeout,
		},
		{
			name: "response already written",
			handler: func(c *gin.Context) {
				_ = c.Error(errors.New("bad input"))
				c.JSON(http.StatusBadRequest, gin.H{"error": "custom"})
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "custom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RequestID(), ErrorHandler())
			router.GET("/test", tt.handler)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantCode == "" {
				return
			}
			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Error)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, resp.Message)
			}
		})
	}
}
