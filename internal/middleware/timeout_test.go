package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestTimeout(t *testing.T) {
	tests := []struct {
		name           string
		timeout        time.Duration
		handler        gin.HandlerFunc
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "fast handler",
			timeout:        time.Second,
			handler:        func(c *gin.Context) { c.String(http.StatusOK, "ok") },
			expectedStatus: http.StatusOK,
			expectedBody:   "ok",
		},
		{
			name:    "handler waits on context and writes nothing",
			timeout: 20 * time.Millisecond,
			handler: func(c *gin.Context) {
				<-c.Request.Context().Done()
			},
			expectedStatus: http.StatusGatewayTimeout,
			expectedBody:   "Request timed out",
		},
		{
			name:    "late response is kept",
			timeout: 10 * time.Millisecond,
			handler: func(c *gin.Context) {
				<-c.Request.Context().Done()
				c.String(http.StatusServiceUnavailable, "store unavailable")
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   "store unavailable",
		},
		{
			name:    "non-positive timeout uses default",
			timeout: 0,
			handler: func(c *gin.Context) {
				deadline, ok := c.Request.Context().Deadline()
				assert.True(t, ok)
				assert.WithinDuration(t, time.Now().Add(DefaultRequestTimeout), deadline, time.Second)
				c.String(http.StatusOK, "ok")
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "ok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(Timeout(tt.timeout))
			router.GET("/test", tt.handler)

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
		})
	}
}
