package http

import (
	"github.com/gin-gonic/gin"
)

// QuoteRoutes handles quote route registration.
type QuoteRoutes struct {
	handler *Handler
}

// NewQuoteRoutes creates a new QuoteRoutes instance.
func NewQuoteRoutes(handler *Handler) *QuoteRoutes {
	return &QuoteRoutes{handler: handler}
}

// RegisterPublicRoutes registers the quote routes when auth is disabled.
func (r *QuoteRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	r.register(rg)
}

// RegisterProtectedRoutes registers the quote routes behind auth.
func (r *QuoteRoutes) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	r.register(rg)
}

func (r *QuoteRoutes) register(rg *gin.RouterGroup) {
	rg.POST("/quotes", r.handler.CreateQuote)
	rg.GET("/quotes", r.handler.GetQuote)
}

// GetHandler returns the underlying quote handler.
func (r *QuoteRoutes) GetHandler() *Handler {
	return r.handler
}
