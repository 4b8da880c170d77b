package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/pricing-service/internal/domain/dto"
	"github.com/guttosm/pricing-service/internal/i18n"
	"github.com/guttosm/pricing-service/internal/middleware"
)

func newTestContext(method, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, "/test", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	middleware.RequestID()(c)
	return c, w
}

func TestBuildRequestAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		expectErr   bool
		expectField string
	}{
		{name: "valid", body: `{"client_id": "a", "client_secret": "b"}`},
		{name: "binding failure", body: `{"client_id": "a"}`, expectErr: true},
		{name: "empty id", body: `{"client_id": "", "client_secret": "b"}`, expectErr: true},
		{name: "malformed", body: `{`, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestContext(http.MethodPost, tt.body)

			req, err := BuildRequestAndValidate[dto.TokenRequest](c)
			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, req)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "a", req.ClientID)
		})
	}
}

func TestBuildRequest_QuoteRequest(t *testing.T) {
	c, _ := newTestContext(http.MethodPost, `{"unit_price": 12.50, "quantity": "3", "discount_percent": null, "distance_km": true}`)

	req, err := BuildRequest[dto.QuoteRequest](c)
	require.NoError(t, err)

	raw := req.ToRaw()
	assert.Equal(t, "12.50", raw.UnitPrice)
	assert.Equal(t, "3", raw.Quantity)
	assert.Equal(t, "", raw.DiscountPercent)
	assert.Equal(t, "true", raw.DistanceKm)
}

func TestUnmarshalFromBytes(t *testing.T) {
	resp, err := UnmarshalFromBytes[dto.TokenResponse]([]byte(`{"access_token":"x","token_type":"Bearer","expires_in":60}`))
	require.NoError(t, err)
	assert.Equal(t, int64(60), resp.ExpiresIn)

	_, err = UnmarshalFromBytes[dto.TokenResponse]([]byte(`{`))
	assert.Error(t, err)
}

func TestResponseBuilder_SuccessOK(t *testing.T) {
	c, w := newTestContext(http.MethodGet, "")

	NewResponseBuilder(c).SuccessOK(map[string]string{"k": "v"})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.RequestID)
	assert.NotZero(t, resp.Timestamp)
	assert.Equal(t, map[string]interface{}{"k": "v"}, resp.Data)
}

func TestResponseBuilder_Errors(t *testing.T) {
	tests := []struct {
		name            string
		call            func(*ResponseBuilder)
		locale          string
		expectedStatus  int
		expectedCode    string
		expectedMessage string
		expectedDetails map[string]string
	}{
		{
			name:            "translated key",
			call:            func(b *ResponseBuilder) { b.Error(http.StatusNotFound, i18n.ErrKeyNotFound, nil) },
			expectedStatus:  http.StatusNotFound,
			expectedCode:    dto.ErrCodeNotFound,
			expectedMessage: "Not found",
		},
		{
			name:            "translated key in portuguese",
			locale:          "pt",
			call:            func(b *ResponseBuilder) { b.Error(http.StatusTooManyRequests, i18n.ErrKeyRateLimitExceeded, nil) },
			expectedStatus:  http.StatusTooManyRequests,
			expectedCode:    dto.ErrCodeRateLimit,
			expectedMessage: "Muitas requisições, tente novamente mais tarde",
		},
		{
			name: "with details",
			call: func(b *ResponseBuilder) {
				b.ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyInvalidOrderInput, map[string]string{"quantity": "must be a whole number"}, errors.New("bad"))
			},
			expectedStatus:  http.StatusBadRequest,
			expectedCode:    dto.ErrCodeInvalidRequest,
			expectedMessage: "Invalid order input",
			expectedDetails: map[string]string{"quantity": "must be a whole number"},
		},
		{
			name:            "custom message",
			call:            func(b *ResponseBuilder) { b.ErrorWithMessage(http.StatusInternalServerError, "boom", nil) },
			expectedStatus:  http.StatusInternalServerError,
			expectedCode:    dto.ErrCodeInternal,
			expectedMessage: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(http.MethodGet, "")
			if tt.locale != "" {
				c.Request.Header.Set("Accept-Language", tt.locale)
			}

			tt.call(NewResponseBuilder(c))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, c.IsAborted())
			resp := decodeError(t, w)
			assert.Equal(t, tt.expectedCode, resp.Error)
			assert.Equal(t, tt.expectedMessage, resp.Message)
			assert.Equal(t, tt.expectedDetails, resp.Details)
			assert.NotEmpty(t, resp.RequestID)
		})
	}
}
