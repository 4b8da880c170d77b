package http

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pricing-service/internal/domain/dto"
	"github.com/guttosm/pricing-service/internal/i18n"
	"github.com/guttosm/pricing-service/internal/middleware"
)

// Envelopes are serialized synchronously by gin, so they go back to the
// pool as soon as the write returns.
var (
	successEnvelopes = sync.Pool{New: func() any { return new(dto.SuccessResponse) }}
	errorEnvelopes   = sync.Pool{New: func() any { return new(dto.ErrorResponse) }}
)

// ResponseBuilder writes the service's JSON envelopes for one request.
type ResponseBuilder struct {
	c *gin.Context
}

// NewResponseBuilder creates a new response builder for the given context.
func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

// Success writes data wrapped in a SuccessResponse.
func (b *ResponseBuilder) Success(statusCode int, data any) {
	resp := successEnvelopes.Get().(*dto.SuccessResponse)
	*resp = dto.SuccessResponse{
		Data:      data,
		RequestID: middleware.GetRequestID(b.c),
		Timestamp: time.Now(),
	}

	b.c.JSON(statusCode, resp)

	*resp = dto.SuccessResponse{}
	successEnvelopes.Put(resp)
}

// SuccessOK is Success with 200.
func (b *ResponseBuilder) SuccessOK(data any) {
	b.Success(http.StatusOK, data)
}

// Error aborts with the message for messageKey in the request locale.
func (b *ResponseBuilder) Error(statusCode int, messageKey string, err error) {
	b.abort(statusCode, b.translate(messageKey), nil, err)
}

// ErrorWithDetails is Error with a field to reason map attached.
func (b *ResponseBuilder) ErrorWithDetails(statusCode int, messageKey string, details map[string]string, err error) {
	b.abort(statusCode, b.translate(messageKey), details, err)
}

// ErrorWithMessage aborts with message as is.
func (b *ResponseBuilder) ErrorWithMessage(statusCode int, message string, err error) {
	b.abort(statusCode, message, nil, err)
}

func (b *ResponseBuilder) translate(key string) string {
	return i18n.T(key, i18n.GetLocale(b.c))
}

// abort records err on the context for the error middleware, then writes
// the ErrorResponse and stops the handler chain.
func (b *ResponseBuilder) abort(statusCode int, message string, details map[string]string, err error) {
	if err != nil {
		_ = b.c.Error(err)
	}

	resp := errorEnvelopes.Get().(*dto.ErrorResponse)
	*resp = dto.ErrorResponse{
		Error:     dto.ErrCodeFromStatus(statusCode),
		Message:   message,
		Details:   details,
		RequestID: middleware.GetRequestID(b.c),
		Timestamp: time.Now(),
	}

	b.c.AbortWithStatusJSON(statusCode, resp)

	*resp = dto.ErrorResponse{}
	errorEnvelopes.Put(resp)
}

// Validator is implemented by request DTOs with checks beyond binding tags.
type Validator interface {
	Validate() error
}

// BuildRequest binds the JSON body into a new T.
func BuildRequest[T any](c *gin.Context) (*T, error) {
	req := new(T)
	if err := c.ShouldBindJSON(req); err != nil {
		return nil, err
	}
	return req, nil
}

// BuildRequestAndValidate binds like BuildRequest and then runs Validate
// when T implements Validator.
func BuildRequestAndValidate[T any](c *gin.Context) (*T, error) {
	req, err := BuildRequest[T](c)
	if err != nil {
		return nil, err
	}
	if v, ok := any(req).(Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	return req, nil
}

// UnmarshalFromBytes decodes a JSON payload into a new T.
func UnmarshalFromBytes[T any](data []byte) (*T, error) {
	out := new(T)
	if err := json.Unmarshal(data, out); err != nil {
		return nil, err
	}
	return out, nil
}
