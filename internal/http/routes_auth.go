package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/pricing-service/internal/middleware"
	"github.com/guttosm/pricing-service/internal/service"
)

// AuthRoutes owns the token endpoint and the Bearer-protected group.
type AuthRoutes struct {
	handler     *AuthHandler
	authService service.AuthService
}

func NewAuthRoutes(authService service.AuthService, auditSink middleware.LogSink) *AuthRoutes {
	return &AuthRoutes{
		handler:     NewAuthHandler(authService, auditSink),
		authService: authService,
	}
}

// RegisterPublicRoutes mounts POST /auth/token.
func (r *AuthRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/token", r.handler.IssueToken)
}

// Protected returns a child of rg that requires a Bearer token. Everything
// keyed by caller identity runs after verification: the per-client limiter
// and, when enabled, idempotent replay.
func (r *AuthRoutes) Protected(rg *gin.RouterGroup, cfg *RouterConfig) *gin.RouterGroup {
	chain := []gin.HandlerFunc{middleware.JWTAuth(r.authService)}
	if cfg.Limiters != nil {
		chain = append(chain, cfg.Limiters.Client.RateLimit())
	}
	if cfg.Idempotency.Enabled {
		chain = append(chain, middleware.Idempotency(cfg.Idempotency))
	}
	return rg.Group("", chain...)
}
