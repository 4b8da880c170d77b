// Package service contains the business logic for the pricing service.
package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/pricing-service/internal/domain/model"
	"github.com/guttosm/pricing-service/internal/metrics"
	"github.com/guttosm/pricing-service/internal/service/cache"
)

// PricingCalculator defines the interface for order pricing.
type PricingCalculator interface {
	ComputeBreakdown(input model.OrderInput) model.OrderBreakdown
	Rates() model.Rates
	// InvalidateCache clears memoized breakdowns
	InvalidateCache()
	// Stop releases the cache's background cleanup.
	Stop()
}

// Option configures a PricingCalculatorService.
type Option func(*PricingCalculatorService)

// PricingCalculatorService implements PricingCalculator.
type PricingCalculatorService struct {
	rates model.Rates
	cache cache.Cache[model.OrderBreakdown]
}

// NewPricingCalculatorService creates a new PricingCalculatorService with the given options.
func NewPricingCalculatorService(opts ...Option) *PricingCalculatorService {
	s := &PricingCalculatorService{rates: model.DefaultRates}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithRates overrides the default rates.
func WithRates(r model.Rates) Option {
	return func(s *PricingCalculatorService) {
		s.rates = r
	}
}

// WithCache enables memoization of breakdowns with the specified capacity and TTL.
func WithCache(capacity int, ttl time.Duration) Option {
	return func(s *PricingCalculatorService) {
		if capacity > 0 {
			s.cache = cache.NewTTLCache[model.OrderBreakdown]("quotes", capacity, ttl)
		}
	}
}

// WithCacheInterface allows injecting a custom cache implementation.
func WithCacheInterface(c cache.Cache[model.OrderBreakdown]) Option {
	return func(s *PricingCalculatorService) {
		s.cache = c
	}
}

// Rates returns the rates the service prices with.
func (s *PricingCalculatorService) Rates() model.Rates {
	return s.rates
}

// ComputeBreakdown prices an order. It never fails: negative and zero
// values flow through the arithmetic unchanged.
func (s *PricingCalculatorService) ComputeBreakdown(input model.OrderInput) model.OrderBreakdown {
	start := time.Now()

	if s.cache != nil {
		if b, ok := s.cache.Get(input.Key()); ok {
			metrics.RecordQuote(time.Since(start), "cached", b.FreeDeliveryApplied)
			return b
		}
	}

	b := compute(input, s.rates)

	if s.cache != nil {
		s.cache.Set(input.Key(), b)
	}

	metrics.RecordQuote(time.Since(start), "computed", b.FreeDeliveryApplied)
	return b
}

// compute runs the pricing steps in their fixed order.
func compute(in model.OrderInput, r model.Rates) model.OrderBreakdown {
	subtotal := in.UnitPrice.Mul(in.Quantity)
	// Shift(-2) divides by 100 exactly
	discount := subtotal.Mul(in.DiscountPercent.Shift(-2))
	discounted := subtotal.Sub(discount)

	free := discounted.GreaterThan(r.FreeDeliveryThreshold)
	fee := decimal.Zero
	if !free {
		fee = in.DistanceKm.Mul(r.DeliveryRatePerKm)
	}

	tax := discounted.Mul(r.TaxRate)

	return model.OrderBreakdown{
		Subtotal:            subtotal,
		DiscountAmount:      discount,
		DiscountedSubtotal:  discounted,
		TaxAmount:           tax,
		DeliveryFee:         fee,
		FreeDeliveryApplied: free,
		Total:               subtotal.Sub(discount).Add(fee).Add(tax),
	}
}

// InvalidateCache clears the breakdown cache.
func (s *PricingCalculatorService) InvalidateCache() {
	if s.cache != nil {
		s.cache.Clear()
	}
}

// Stop shuts down the breakdown cache. Lookups after Stop still work but
// expired entries are no longer swept.
func (s *PricingCalculatorService) Stop() {
	if s.cache != nil {
		s.cache.Stop()
	}
}
