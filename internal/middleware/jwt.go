package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pricing-service/internal/domain/dto"
	"github.com/guttosm/pricing-service/internal/i18n"
)

// ClaimsKey holds the verified *dto.Claims.
const ClaimsKey ContextKey = "client_claims"

// TokenValidator verifies bearer tokens. service.AuthService satisfies it.
type TokenValidator interface {
	ValidateToken(ctx context.Context, tokenString string) (*dto.Claims, error)
}

// JWTAuth requires a valid "Authorization: Bearer <token>" header and stores
// the client id and claims in the context.
func JWTAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, i18n.ErrKeyTokenRequired)
			return
		}

		scheme, tokenString, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			abortUnauthorized(c, i18n.ErrKeyInvalidToken)
			return
		}

		tokenString = strings.TrimSpace(tokenString)
		if tokenString == "" {
			abortUnauthorized(c, i18n.ErrKeyTokenRequired)
			return
		}

		claims, err := validator.ValidateToken(c.Request.Context(), tokenString)
		if err != nil {
			abortUnauthorized(c, i18n.ErrKeyInvalidToken)
			return
		}

		c.Set(string(ClientIDKey), claims.ClientID)
		c.Set(string(ClaimsKey), claims)

		c.Next()
	}
}
