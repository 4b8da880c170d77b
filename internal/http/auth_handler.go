package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pricing-service/internal/domain/dto"
	"github.com/guttosm/pricing-service/internal/domain/model"
	"github.com/guttosm/pricing-service/internal/i18n"
	"github.com/guttosm/pricing-service/internal/middleware"
	"github.com/guttosm/pricing-service/internal/service"
)

// AuthHandler provides HTTP handlers for authentication routes.
type AuthHandler struct {
	authService service.AuthService
	auditSink   middleware.LogSink
}

// NewAuthHandler creates a new authentication handler.
func NewAuthHandler(authService service.AuthService, auditSink middleware.LogSink) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		auditSink:   auditSink,
	}
}

// IssueToken handles POST /api/auth/token requests.
//
// @Summary      Issue access token
// @Description  Exchanges client credentials for a short-lived HS256 JWT used as a Bearer token on the quote routes.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body dto.TokenRequest true "Client credentials"
// @Success      200 {object} dto.SuccessResponse{data=dto.TokenResponse} "Token issued"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - invalid credentials"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/auth/token [post]
func (h *AuthHandler) IssueToken(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.TokenRequest](c)
	if err != nil {
		var validationErr *dto.ValidationError
		if errors.As(err, &validationErr) {
			builder.ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyInvalidRequest,
				map[string]string{validationErr.Field: validationErr.Message}, err)
		} else {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		}
		return
	}

	token, err := h.authService.IssueToken(c.Request.Context(), req.ClientID, req.ClientSecret)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			middleware.AuditLogError(h.auditSink, c, model.ActionTokenIssue, "Rejected client credentials", err, map[string]interface{}{
				"client_id": req.ClientID,
			})
			builder.Error(http.StatusUnauthorized, i18n.ErrKeyInvalidCredentials, err)
			return
		}
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	c.Set(string(middleware.ClientIDKey), req.ClientID)
	middleware.AuditLog(h.auditSink, c, model.ActionTokenIssue, "Access token issued", nil)

	builder.SuccessOK(token)
}
