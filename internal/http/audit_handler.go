package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pricing-service/internal/domain/model"
	"github.com/guttosm/pricing-service/internal/i18n"
	"github.com/guttosm/pricing-service/internal/service"
)

const maxAuditLimit = 500

// AuditLogsResponse is a page of audit entries.
// @Description Audit log page
type AuditLogsResponse struct {
	Entries []model.LogEntry `json:"entries"`
	Total   int64            `json:"total" example:"42"`
	Limit   int              `json:"limit" example:"100"`
	Skip    int              `json:"skip" example:"0"`
} // @name AuditLogsResponse

// AuditHandler serves the stored audit trail.
type AuditHandler struct {
	loggingService service.LoggingService
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(loggingService service.LoggingService) *AuditHandler {
	return &AuditHandler{loggingService: loggingService}
}

// ListAuditLogs handles GET /api/audit-logs requests.
//
// @Summary      List audit logs
// @Description  Returns request and audit entries, newest first. Available only when the MongoDB sink is enabled.
// @Tags         Audit
// @Produce      json
// @Param        request_id  query string false "Filter by request ID"
// @Param        level       query string false "Filter by level" Enums(info, warn, error)
// @Param        action_type query string false "Filter by action" Enums(quote, quote_form, token_issue)
// @Param        client_id   query string false "Filter by client"
// @Param        since       query string false "RFC3339 lower bound on timestamp"
// @Param        until       query string false "RFC3339 upper bound on timestamp"
// @Param        limit       query int    false "Page size (max 500)" default(100)
// @Param        skip        query int    false "Entries to skip" default(0)
// @Success      200 {object} dto.SuccessResponse{data=AuditLogsResponse} "Audit entries"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid query"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      503 {object} dto.ErrorResponse "Audit store unavailable"
// @Security     BearerAuth
// @Router       /api/audit-logs [get]
func (h *AuditHandler) ListAuditLogs(c *gin.Context) {
	builder := NewResponseBuilder(c)

	opts, details := parseAuditQuery(c)
	if len(details) > 0 {
		builder.ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, details, nil)
		return
	}

	entries, err := h.loggingService.QueryLogs(c.Request.Context(), opts)
	if errors.Is(err, service.ErrInvalidTimeRange) {
		builder.ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, map[string]string{"since": "must not be after until"}, err)
		return
	}
	if err != nil {
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable, err)
		return
	}

	total, err := h.loggingService.CountLogs(c.Request.Context(), opts)
	if err != nil {
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable, err)
		return
	}

	if entries == nil {
		entries = []model.LogEntry{}
	}

	builder.SuccessOK(AuditLogsResponse{
		Entries: entries,
		Total:   total,
		Limit:   opts.Limit,
		Skip:    opts.Skip,
	})
}

func parseAuditQuery(c *gin.Context) (model.LogQueryOptions, map[string]string) {
	opts := model.LogQueryOptions{
		RequestID:  c.Query("request_id"),
		Level:      c.Query("level"),
		ActionType: c.Query("action_type"),
		ClientID:   c.Query("client_id"),
		Limit:      100,
	}
	details := make(map[string]string)

	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 {
			details["limit"] = "must be a positive integer"
		} else {
			opts.Limit = min(limit, maxAuditLimit)
		}
	}
	if v := c.Query("skip"); v != "" {
		skip, err := strconv.Atoi(v)
		if err != nil || skip < 0 {
			details["skip"] = "must be a non-negative integer"
		} else {
			opts.Skip = skip
		}
	}
	for _, bound := range []struct {
		name   string
		target **time.Time
	}{{"since", &opts.StartTime}, {"until", &opts.EndTime}} {
		if v := c.Query(bound.name); v != "" {
			ts, err := time.Parse(time.RFC3339, v)
			if err != nil {
				details[bound.name] = "must be an RFC3339 timestamp"
				continue
			}
			*bound.target = &ts
		}
	}

	return opts, details
}
