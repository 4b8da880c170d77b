package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/pricing-service/internal/service"
)

// AuditRoutes registers the audit log query endpoint.
type AuditRoutes struct {
	handler *AuditHandler
}

// NewAuditRoutes creates a new AuditRoutes instance.
func NewAuditRoutes(loggingService service.LoggingService) *AuditRoutes {
	return &AuditRoutes{handler: NewAuditHandler(loggingService)}
}

// RegisterProtectedRoutes registers GET /audit-logs.
func (r *AuditRoutes) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/audit-logs", r.handler.ListAuditLogs)
}
