package app

import (
	"context"

	"github.com/guttosm/pricing-service/config"
	"github.com/guttosm/pricing-service/internal/http"
	"github.com/guttosm/pricing-service/internal/middleware"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handler       *http.Handler
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// Close stops the rate limiters' sweepers.
func (r *RouterComponents) Close(context.Context) error {
	r.Config.Limiters.Stop()
	return nil
}

// InitializeRouter initializes HTTP handlers and router configuration.
// dbComponents is nil when the audit sink is disabled.
func InitializeRouter(
	services *ServiceComponents,
	dbComponents *DatabaseComponents,
	idempotency *IdempotencyComponents,
	cfg config.Config,
) *RouterComponents {
	routerCfg := http.RouterConfig{
		RateLimit:      cfg.Server.RateLimit,
		RateWindow:     cfg.Server.RateWindow,
		RequestTimeout: cfg.Server.RequestTimeout,
		APIKeys:        cfg.Auth.APIKeys,
		EnableAuth:     cfg.Auth.Enabled,
		CORSOrigins:    cfg.Server.CORSOrigins,
		SwaggerUser:    cfg.Server.SwaggerUser,
		SwaggerPass:    cfg.Server.SwaggerPass,
		AuthService:    services.Auth,
		Limiters:       http.NewRateLimiters(cfg.Server.RateLimit, cfg.Server.RateWindow),
	}

	handlerOpts := []http.HandlerOption{
		http.WithCurrency(cfg.Pricing.CurrencySymbol),
		http.WithDefaultLocale(cfg.Pricing.DefaultLocale),
	}

	healthHandler := http.NewHealthHandler()
	if routerCfg.Limiters != nil {
		healthHandler.RegisterStats("rate_limit", routerCfg.Limiters.Stats)
	}

	if dbComponents != nil {
		routerCfg.AuditSink = dbComponents.AuditSink
		routerCfg.LoggingService = dbComponents.LoggingService
		handlerOpts = append(handlerOpts, http.WithAuditSink(dbComponents.AuditSink))
		if dbComponents.AuditSink != nil {
			healthHandler.RegisterStats("audit_log", dbComponents.AuditSink.StatsMap)
		}

		if dbComponents.DB != nil {
			healthHandler.RegisterChecker("mongodb", http.CheckerFunc(dbComponents.DB.HealthCheck))
		}
		healthHandler.RegisterCircuitBreaker("mongodb_logs", dbComponents.LogsCircuitBreaker)
	}

	if idempotency != nil {
		routerCfg.Idempotency = idempotency.Config
		if idempotency.CircuitBreaker != nil {
			healthHandler.RegisterChecker("redis", http.CheckerFunc(idempotency.Store.Ping))
			healthHandler.RegisterCircuitBreaker("redis_idempotency", idempotency.CircuitBreaker)
		}
	} else {
		routerCfg.Idempotency = middleware.DefaultIdempotencyConfig()
	}

	return &RouterComponents{
		Handler:       http.NewHandler(services.Calculator, services.Parser, handlerOpts...),
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}
