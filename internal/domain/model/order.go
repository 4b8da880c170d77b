// Package model defines the core domain entities for the pricing service.
package model

import (
	"github.com/shopspring/decimal"
)

// OrderInput holds the four values a quote is computed from.
// It is built fresh for each calculation and has no identity.
type OrderInput struct {
	UnitPrice       decimal.Decimal
	Quantity        decimal.Decimal
	DiscountPercent decimal.Decimal
	DistanceKm      decimal.Decimal
}

// Key returns a canonical string for the input, suitable as a cache key.
// Equal values with different scales ("2" and "2.00") map to the same key.
func (in OrderInput) Key() string {
	return canonical(in.UnitPrice) + "|" +
		canonical(in.Quantity) + "|" +
		canonical(in.DiscountPercent) + "|" +
		canonical(in.DistanceKm)
}

func canonical(d decimal.Decimal) string {
	// String() already trims trailing zeros of the fractional part.
	return d.String()
}

// OrderBreakdown is the immutable result of a pricing calculation.
//
// Total always equals Subtotal - DiscountAmount + DeliveryFee + TaxAmount,
// and DeliveryFee is zero whenever FreeDeliveryApplied is true.
type OrderBreakdown struct {
	Subtotal            decimal.Decimal
	DiscountAmount      decimal.Decimal
	DiscountedSubtotal  decimal.Decimal
	TaxAmount           decimal.Decimal
	DeliveryFee         decimal.Decimal
	FreeDeliveryApplied bool
	Total               decimal.Decimal
}

// Balanced reports whether the breakdown satisfies its arithmetic invariants.
func (b OrderBreakdown) Balanced() bool {
	expected := b.Subtotal.Sub(b.DiscountAmount).Add(b.DeliveryFee).Add(b.TaxAmount)
	if !b.Total.Equal(expected) {
		return false
	}
	if !b.DiscountedSubtotal.Equal(b.Subtotal.Sub(b.DiscountAmount)) {
		return false
	}
	return !b.FreeDeliveryApplied || b.DeliveryFee.IsZero()
}

// RawOrderInput carries the four fields as text, exactly as received from a
// form, query string, JSON body or command line flag. An empty string means
// the field was not supplied.
type RawOrderInput struct {
	UnitPrice       string
	Quantity        string
	DiscountPercent string
	DistanceKm      string
}
