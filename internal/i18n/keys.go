// Package i18n translates user-facing messages and summary labels.
package i18n

// Error message translation keys.
const (
	ErrKeyInvalidRequest     = "error.invalid_request"
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	ErrKeyInvalidOrderInput  = "error.invalid_order_input"
	ErrKeyInternalError      = "error.internal_error"
	ErrKeyUnauthorized       = "error.unauthorized"
	ErrKeyInvalidCredentials = "error.invalid_credentials"
	ErrKeyAPIKeyRequired     = "error.api_key_required"
	ErrKeyInvalidAPIKey      = "error.invalid_api_key"
	ErrKeyNotFound           = "error.not_found"
	ErrKeyRateLimitExceeded  = "error.rate_limit_exceeded"
	ErrKeyInvalidToken       = "error.invalid_token"
	ErrKeyTokenRequired      = "error.token_required"
	ErrKeyTimeout            = "error.timeout"
	ErrKeyServiceUnavailable = "error.service_unavailable"
)

// Success message translation keys.
const (
	SuccessKeyQuoteCalculated = "success.quote_calculated"
	SuccessKeyTokenIssued     = "success.token_issued"
)

// Summary and form label keys.
const (
	LabelWelcome         = "label.welcome"
	LabelSummaryTitle    = "label.summary_title"
	LabelSubtotal        = "label.subtotal"
	LabelDiscount        = "label.discount"
	LabelTax             = "label.tax"
	LabelDeliveryFee     = "label.delivery_fee"
	LabelFreeDelivery    = "label.free_delivery"
	LabelTotal           = "label.total"
	LabelUnitPrice       = "label.unit_price"
	LabelQuantity        = "label.quantity"
	LabelDiscountPercent = "label.discount_percent"
	LabelDistanceKm      = "label.distance_km"
	LabelCalculate       = "label.calculate"
)
