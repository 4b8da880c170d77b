package model

import "github.com/shopspring/decimal"

// Rates are the fixed business constants used to price an order.
type Rates struct {
	// DeliveryRatePerKm is charged per kilometre when delivery is not free.
	DeliveryRatePerKm decimal.Decimal
	// TaxRate is applied to the discounted subtotal, never to the delivery fee.
	TaxRate decimal.Decimal
	// FreeDeliveryThreshold must be strictly exceeded by the discounted
	// subtotal for delivery to be free.
	FreeDeliveryThreshold decimal.Decimal
}

// DefaultRates are the production pricing rates.
var DefaultRates = Rates{
	DeliveryRatePerKm:     decimal.RequireFromString("1.50"),
	TaxRate:               decimal.RequireFromString("0.08"),
	FreeDeliveryThreshold: decimal.NewFromInt(50),
}

// TaxPercent returns the tax rate expressed as a percentage, e.g. 8.
func (r Rates) TaxPercent() decimal.Decimal {
	return r.TaxRate.Shift(2)
}
