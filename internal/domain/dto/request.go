// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

import (
	"bytes"
	"encoding/json"

	"github.com/guttosm/pricing-service/internal/domain/model"
)

// RawNumber captures a JSON value as text so the input policy decides how
// to read it. Numbers keep their literal text, strings their content and
// null becomes empty. Any other JSON value is kept verbatim.
type RawNumber string

// UnmarshalJSON implements json.Unmarshaler.
func (n *RawNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*n = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = RawNumber(s)
	default:
		*n = RawNumber(data)
	}
	return nil
}

// QuoteRequest represents the JSON request body for the quote endpoint.
//
// Every field accepts a JSON number, a numeric string or null. Missing
// fields are handled by the configured input policy.
//
// @Description Request to price a single-item order
// @Example {"unit_price": 10, "quantity": 2, "discount_percent": 0, "distance_km": 10}
type QuoteRequest struct {
	// UnitPrice is the price of one item.
	UnitPrice RawNumber `json:"unit_price" swaggertype:"string" example:"10"`
	// Quantity is the number of items ordered.
	Quantity RawNumber `json:"quantity" swaggertype:"string" example:"2"`
	// DiscountPercent is the discount applied to the subtotal, in percent.
	DiscountPercent RawNumber `json:"discount_percent" swaggertype:"string" example:"0"`
	// DistanceKm is the delivery distance in kilometres.
	DistanceKm RawNumber `json:"distance_km" swaggertype:"string" example:"10"`
} // @name QuoteRequest

// ToRaw converts the request into the textual input read by the parser.
func (r *QuoteRequest) ToRaw() model.RawOrderInput {
	return model.RawOrderInput{
		UnitPrice:       string(r.UnitPrice),
		Quantity:        string(r.Quantity),
		DiscountPercent: string(r.DiscountPercent),
		DistanceKm:      string(r.DistanceKm),
	}
}

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
