package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/pricing-service/config"
	"github.com/guttosm/pricing-service/internal/service"
)

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Calculator service.PricingCalculator
	Parser     *service.InputParser
	// Auth is nil when no client credentials are configured.
	Auth service.AuthService
}

// InitializeServices initializes business logic services.
func InitializeServices(cfg config.Config) *ServiceComponents {
	var opts []service.Option
	if cfg.Cache.Size > 0 {
		opts = append(opts, service.WithCache(cfg.Cache.Size, cfg.Cache.TTL))
	}

	components := &ServiceComponents{
		Calculator: service.NewPricingCalculatorService(opts...),
		Parser:     service.NewInputParser(service.PolicyFromStrict(cfg.Pricing.StrictInput)),
	}

	if len(cfg.Auth.Clients) > 0 {
		components.Auth = service.NewAuthService(cfg.Auth)
		log.Info().Int("clients", len(cfg.Auth.Clients)).Msg("Client credentials configured")
	}

	log.Info().
		Str("input_policy", components.Parser.Policy().String()).
		Int("cache_size", cfg.Cache.Size).
		Msg("Pricing services initialized")

	return components
}

// Close stops the calculator's cache cleanup.
func (s *ServiceComponents) Close(context.Context) error {
	s.Calculator.Stop()
	return nil
}
