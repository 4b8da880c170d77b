package dto

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/pricing-service/internal/domain/model"
)

const (
	// ErrCodeInvalidRequest indicates an invalid request.
	ErrCodeInvalidRequest = "invalid_request"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal = "internal_error"
	// ErrCodeUnauthorized indicates missing or invalid authentication.
	ErrCodeUnauthorized = "unauthorized"
	// ErrCodeForbidden indicates insufficient permissions.
	ErrCodeForbidden = "forbidden"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound = "not_found"
	// ErrCodeRateLimit indicates rate limit exceeded.
	ErrCodeRateLimit = "rate_limit_exceeded"
	// ErrCodeConflict indicates a conflict with current state.
	ErrCodeConflict = "conflict"
	// ErrCodeTimeout indicates a request timeout.
	ErrCodeTimeout = "timeout"
	// ErrCodeUnavailable is used while a backing store is tripped or down.
	ErrCodeUnavailable = "service_unavailable"
)

// SuccessResponse wraps successful API responses with metadata.
// @Description Successful API response wrapper
type SuccessResponse struct {
	// Data contains the actual response data (QuoteResponse for the quote endpoint)
	Data interface{} `json:"data" swaggertype:"object"`
	// RequestID is the unique request identifier
	RequestID string `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	// Timestamp is when the response was generated
	Timestamp time.Time `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name SuccessResponse

// ErrorResponse represents a standardized error response for the API.
// @Description Standardized error response
type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_request"`
	Message string `json:"message,omitempty" example:"invalid order input"`
	// Details maps a field name to the reason it was rejected
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time         `json:"timestamp" example:"2025-01-28T10:00:00Z"`
	TraceID   string            `json:"trace_id,omitempty" example:"trace-123"`
} // @name ErrorResponse

// QuoteResponse is the priced breakdown of an order. Amounts are rendered
// with exactly two decimals.
// @Description Order price breakdown
type QuoteResponse struct {
	Subtotal            string `json:"subtotal" example:"20.00"`
	DiscountPercent     string `json:"discount_percent" example:"0"`
	DiscountAmount      string `json:"discount_amount" example:"0.00"`
	DiscountedSubtotal  string `json:"discounted_subtotal" example:"20.00"`
	TaxAmount           string `json:"tax_amount" example:"1.60"`
	DeliveryFee         string `json:"delivery_fee" example:"15.00"`
	FreeDeliveryApplied bool   `json:"free_delivery_applied" example:"false"`
	Total               string `json:"total" example:"36.60"`
} // @name QuoteResponse

// NewQuoteResponse builds a QuoteResponse from a breakdown and the discount
// percent that produced it.
func NewQuoteResponse(b model.OrderBreakdown, discountPercent decimal.Decimal) QuoteResponse {
	return QuoteResponse{
		Subtotal:            b.Subtotal.StringFixed(2),
		DiscountPercent:     discountPercent.String(),
		DiscountAmount:      b.DiscountAmount.StringFixed(2),
		DiscountedSubtotal:  b.DiscountedSubtotal.StringFixed(2),
		TaxAmount:           b.TaxAmount.StringFixed(2),
		DeliveryFee:         b.DeliveryFee.StringFixed(2),
		FreeDeliveryApplied: b.FreeDeliveryApplied,
		Total:               b.Total.StringFixed(2),
	}
}

// NewError creates a new ErrorResponse with the given code and message.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// WithRequestID adds a request ID to the error response.
func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

// WithDetails attaches per-field details to the error response.
func (e ErrorResponse) WithDetails(details map[string]string) ErrorResponse {
	e.Details = details
	return e
}

// ErrCodeFromStatus returns the appropriate error code for an HTTP status.
func ErrCodeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusTooManyRequests:
		return ErrCodeRateLimit
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return ErrCodeTimeout
	case http.StatusServiceUnavailable:
		return ErrCodeUnavailable
	default:
		return ErrCodeInternal
	}
}
