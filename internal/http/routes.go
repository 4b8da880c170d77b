package http

import (
	"github.com/gin-gonic/gin"
)

// PublicRouteGroup defines routes that don't require authentication.
type PublicRouteGroup interface {
	// RegisterPublicRoutes registers public routes to the given router group.
	RegisterPublicRoutes(rg *gin.RouterGroup)
}

// ProtectedRouteGroup defines routes that require authentication.
type ProtectedRouteGroup interface {
	// RegisterProtectedRoutes registers routes on a group that already
	// carries the auth middleware.
	RegisterProtectedRoutes(rg *gin.RouterGroup)
}

var (
	_ PublicRouteGroup    = (*QuoteRoutes)(nil)
	_ ProtectedRouteGroup = (*QuoteRoutes)(nil)
	_ PublicRouteGroup    = (*AuthRoutes)(nil)
	_ ProtectedRouteGroup = (*AuditRoutes)(nil)
)
