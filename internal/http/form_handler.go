package http

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pricing-service/internal/domain/model"
	"github.com/guttosm/pricing-service/internal/i18n"
	"github.com/guttosm/pricing-service/internal/metrics"
	"github.com/guttosm/pricing-service/internal/middleware"
	"github.com/guttosm/pricing-service/internal/render"
	"github.com/guttosm/pricing-service/internal/service"
)

// FormHandler serves the browser order form at the site root.
type FormHandler struct {
	quotes *Handler
}

// NewFormHandler creates a form handler sharing the quote handler's
// calculator, parser, currency and audit sink.
func NewFormHandler(quotes *Handler) *FormHandler {
	return &FormHandler{quotes: quotes}
}

// ShowForm handles GET / and renders the empty form with the welcome message.
func (h *FormHandler) ShowForm(c *gin.Context) {
	locale := h.quotes.requestLocale(c)
	h.write(c, http.StatusOK, render.NewPage(locale, model.RawOrderInput{}, nil))
}

// SubmitForm handles POST / and re-renders the form with the summary.
func (h *FormHandler) SubmitForm(c *gin.Context) {
	locale := h.quotes.requestLocale(c)
	raw := model.RawOrderInput{
		UnitPrice:       c.PostForm("price"),
		Quantity:        c.PostForm("quantity"),
		DiscountPercent: c.PostForm("discount"),
		DistanceKm:      c.PostForm("distance"),
	}

	input, err := h.quotes.parser.Parse(raw)
	if err != nil {
		metrics.RecordQuoteRejected()
		page := render.NewPage(locale, raw, nil)

		var invalid *service.InvalidInputError
		if errors.As(err, &invalid) {
			for _, f := range invalid.Fields {
				page.Errors = append(page.Errors, f.Field+" "+f.Reason)
			}
		} else {
			page.Errors = []string{err.Error()}
		}
		h.write(c, http.StatusBadRequest, page)
		return
	}

	breakdown := h.quotes.calculator.ComputeBreakdown(input)

	middleware.AuditLog(h.quotes.auditSink, c, model.ActionQuoteForm, "Quote calculated from form", map[string]interface{}{
		"free_delivery": breakdown.FreeDeliveryApplied,
		"total":         breakdown.Total.StringFixed(2),
	})

	summary := render.NewSummary(breakdown, input.DiscountPercent, render.Options{
		Currency: h.quotes.currency,
		Locale:   locale,
		Rates:    h.quotes.calculator.Rates(),
	})
	h.write(c, http.StatusOK, render.NewPage(locale, raw, &summary))
}

func (h *FormHandler) write(c *gin.Context, status int, page render.Page) {
	var buf bytes.Buffer
	if err := render.HTML(&buf, page); err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, i18n.T(i18n.ErrKeyInternalError, page.Lang))
		return
	}

	c.Header("Content-Language", page.Lang)
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}
