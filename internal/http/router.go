package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/pricing-service/internal/metrics"
	"github.com/guttosm/pricing-service/internal/middleware"
	"github.com/guttosm/pricing-service/internal/service"
)

// RouterConfig holds router configuration options.
type RouterConfig struct {
	RateLimit      int
	RateWindow     time.Duration
	RequestTimeout time.Duration
	APIKeys        map[string]bool
	EnableAuth     bool
	CORSOrigins    []string
	SwaggerUser    string
	SwaggerPass    string
	// Idempotency is applied to the API group when Enabled.
	Idempotency middleware.IdempotencyConfig
	// AuditSink receives request and audit entries; nil disables them.
	AuditSink middleware.LogSink
	// LoggingService backs GET /api/audit-logs; nil leaves it unregistered.
	LoggingService service.LoggingService
	// AuthService backs /api/auth/token and Bearer validation; nil when no
	// clients are configured.
	AuthService service.AuthService
	// Limiters are built from RateLimit and RateWindow when nil. The caller
	// that supplies them owns Stop.
	Limiters *RateLimiters
}

// RateLimiters are the router's two limiters: by IP in front of every
// route, and by client behind Bearer auth.
type RateLimiters struct {
	IP     *middleware.RateLimiter
	Client *middleware.RateLimiter
}

// NewRateLimiters returns nil when limit is not positive.
func NewRateLimiters(limit int, window time.Duration) *RateLimiters {
	if limit <= 0 {
		return nil
	}
	return &RateLimiters{
		IP:     middleware.NewRateLimiter(limit, window),
		Client: middleware.NewRateLimiter(limit, window),
	}
}

// Stop ends both sweep goroutines.
func (l *RateLimiters) Stop() {
	if l == nil {
		return
	}
	l.IP.Stop()
	l.Client.Stop()
}

// Stats reports the tracked callers per limiter, for /readyz.
func (l *RateLimiters) Stats() map[string]int64 {
	if l == nil {
		return nil
	}
	ip, _ := l.IP.Stats()
	client, _ := l.Client.Stats()
	return map[string]int64{"ip_callers": int64(ip), "client_callers": int64(client)}
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:      100,
		RateWindow:     time.Minute,
		RequestTimeout: middleware.DefaultRequestTimeout,
		EnableAuth:     false,
	}
}

// NewRouter creates and configures the Gin router for the pricing service.
func NewRouter(handler *Handler, healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	if cfg.Limiters == nil {
		cfg.Limiters = NewRateLimiters(cfg.RateLimit, cfg.RateWindow)
	}

	configureGlobalMiddleware(router, &cfg)
	registerInfrastructureRoutes(router, healthHandler, &cfg)

	if handler != nil {
		form := NewFormHandler(handler)
		router.GET("/", form.ShowForm)
		router.POST("/", form.SubmitForm)
	}

	api := router.Group("/api")
	configureAPIMiddleware(api, &cfg)

	switch {
	case jwtEnabled(&cfg):
		registerAuthenticatedRoutes(api, handler, &cfg)
	case cfg.AuthService != nil:
		NewAuthRoutes(cfg.AuthService, cfg.AuditSink).RegisterPublicRoutes(api)
		registerPublicRoutes(api, handler, &cfg)
	default:
		registerPublicRoutes(api, handler, &cfg)
	}

	return router
}

// configureGlobalMiddleware sets up middleware applied to all routes.
func configureGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) {
	allowedOrigins := cfg.CORSOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	corsConfig := cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Accept-Language", "Authorization", "accept", "Cache-Control", "X-Requested-With", "X-API-Key", "Idempotency-Key", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Language", "X-Idempotency-Replayed", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.RequestLogger(cfg.AuditSink),
		middleware.ErrorHandler(),
	)

	// Anonymous callers are limited by IP here; authenticated routes add a
	// per-client limiter after the token is verified.
	if cfg.Limiters != nil {
		router.Use(cfg.Limiters.IP.RateLimit())
	}
}

// registerInfrastructureRoutes registers health, metrics, and documentation routes.
func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler, cfg *RouterConfig) {
	if healthHandler != nil {
		healthHandler.Register(router)
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger with optional basic auth
	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		authorized := router.Group("/swagger", gin.BasicAuth(gin.Accounts{
			cfg.SwaggerUser: cfg.SwaggerPass,
		}))
		authorized.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	} else {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

// configureAPIMiddleware sets up middleware for the API group.
func configureAPIMiddleware(api *gin.RouterGroup, cfg *RouterConfig) {
	if cfg.RequestTimeout > 0 {
		api.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	// API key authentication (when JWT auth is not available)
	if cfg.EnableAuth && cfg.AuthService == nil && len(cfg.APIKeys) > 0 {
		api.Use(middleware.APIKeyAuth(cfg.APIKeys))
	}

	// With JWT auth the token is verified per route group, so idempotency
	// is installed on the protected group instead.
	if cfg.Idempotency.Enabled && !jwtEnabled(cfg) {
		api.Use(middleware.Idempotency(cfg.Idempotency))
	}
}

func jwtEnabled(cfg *RouterConfig) bool {
	return cfg.EnableAuth && cfg.AuthService != nil
}

// registerAuthenticatedRoutes registers routes when JWT authentication is enabled.
func registerAuthenticatedRoutes(api *gin.RouterGroup, handler *Handler, cfg *RouterConfig) {
	authRoutes := NewAuthRoutes(cfg.AuthService, cfg.AuditSink)
	authRoutes.RegisterPublicRoutes(api)

	protected := authRoutes.Protected(api, cfg)

	if handler != nil {
		NewQuoteRoutes(handler).RegisterProtectedRoutes(protected)
	}
	if cfg.LoggingService != nil {
		NewAuditRoutes(cfg.LoggingService).RegisterProtectedRoutes(protected)
	}
}

// registerPublicRoutes registers routes when JWT authentication is off. API
// key auth, if configured, is already on the group.
func registerPublicRoutes(api *gin.RouterGroup, handler *Handler, cfg *RouterConfig) {
	if handler != nil {
		NewQuoteRoutes(handler).RegisterPublicRoutes(api)
	}
	if cfg.LoggingService != nil {
		NewAuditRoutes(cfg.LoggingService).RegisterProtectedRoutes(api)
	}
}
