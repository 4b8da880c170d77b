package http

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pricing-service/internal/domain/dto"
	"github.com/guttosm/pricing-service/internal/domain/model"
	"github.com/guttosm/pricing-service/internal/i18n"
	"github.com/guttosm/pricing-service/internal/metrics"
	"github.com/guttosm/pricing-service/internal/middleware"
	"github.com/guttosm/pricing-service/internal/render"
	"github.com/guttosm/pricing-service/internal/service"
)

// FormatText selects the plain-text summary on GET /api/quotes.
const FormatText = "text"

// Handler provides HTTP handlers for quote routes.
type Handler struct {
	calculator service.PricingCalculator
	parser     *service.InputParser
	auditSink  middleware.LogSink
	currency   string
	locale     string
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithAuditSink records an audit entry for every quote.
func WithAuditSink(sink middleware.LogSink) HandlerOption {
	return func(h *Handler) {
		h.auditSink = sink
	}
}

// WithCurrency sets the symbol used by text and HTML summaries.
func WithCurrency(symbol string) HandlerOption {
	return func(h *Handler) {
		if symbol != "" {
			h.currency = symbol
		}
	}
}

// WithDefaultLocale sets the summary language used when the request states
// no supported preference.
func WithDefaultLocale(locale string) HandlerOption {
	return func(h *Handler) {
		if i18n.IsSupported(locale) {
			h.locale = locale
		}
	}
}

// NewHandler creates a new Handler instance.
func NewHandler(calculator service.PricingCalculator, parser *service.InputParser, opts ...HandlerOption) *Handler {
	if parser == nil {
		parser = service.NewInputParser(service.PolicyLenient)
	}

	h := &Handler{
		calculator: calculator,
		parser:     parser,
		currency:   render.DefaultCurrency,
		locale:     i18n.DefaultLocale,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// quoteResult is a priced order together with the input that produced it.
type quoteResult struct {
	input     model.OrderInput
	breakdown model.OrderBreakdown
}

// price parses raw and computes the breakdown. On invalid input it writes
// the 400 response and returns false.
func (h *Handler) price(c *gin.Context, raw model.RawOrderInput) (quoteResult, bool) {
	input, err := h.parser.Parse(raw)
	if err != nil {
		metrics.RecordQuoteRejected()

		var invalid *service.InvalidInputError
		if errors.As(err, &invalid) {
			NewResponseBuilder(c).ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyInvalidOrderInput, invalid.Details(), err)
		} else {
			NewResponseBuilder(c).Error(http.StatusBadRequest, i18n.ErrKeyInvalidOrderInput, err)
		}
		return quoteResult{}, false
	}

	breakdown := h.calculator.ComputeBreakdown(input)

	middleware.AuditLog(h.auditSink, c, model.ActionQuote, "Quote calculated", map[string]interface{}{
		"unit_price":       input.UnitPrice.String(),
		"quantity":         input.Quantity.String(),
		"discount_percent": input.DiscountPercent.String(),
		"distance_km":      input.DistanceKm.String(),
		"free_delivery":    breakdown.FreeDeliveryApplied,
		"total":            breakdown.Total.StringFixed(2),
	})

	return quoteResult{input: input, breakdown: breakdown}, true
}

// CreateQuote handles POST /api/quotes requests.
//
// @Summary      Price an order
// @Description  Computes subtotal, discount, 8% tax, delivery fee and total for a single-item order. Delivery is free when the discounted subtotal is above 50. Supports idempotency via Idempotency-Key header.
// @Tags         Quotes
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        request body dto.QuoteRequest true "Order information"
// @Success      200 {object} dto.SuccessResponse{data=dto.QuoteResponse} "Priced order"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid credentials"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /api/quotes [post]
func (h *Handler) CreateQuote(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequest[dto.QuoteRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	result, ok := h.price(c, req.ToRaw())
	if !ok {
		return
	}

	builder.SuccessOK(dto.NewQuoteResponse(result.breakdown, result.input.DiscountPercent))
}

// GetQuote handles GET /api/quotes requests.
//
// @Summary      Price an order from query parameters
// @Description  Same calculation as POST /api/quotes. With format=text the localized plain-text summary is returned instead of JSON.
// @Tags         Quotes
// @Produce      json,plain
// @Param        price    query string false "Unit price" example(10)
// @Param        quantity query string false "Quantity" example(2)
// @Param        discount query string false "Discount percent" example(0)
// @Param        distance query string false "Distance in km" example(10)
// @Param        format   query string false "Response format" Enums(json, text)
// @Param        lang     query string false "Summary language" Enums(en, pt, nl)
// @Success      200 {object} dto.SuccessResponse{data=dto.QuoteResponse} "Priced order"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid credentials"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /api/quotes [get]
func (h *Handler) GetQuote(c *gin.Context) {
	raw := model.RawOrderInput{
		UnitPrice:       c.Query("price"),
		Quantity:        c.Query("quantity"),
		DiscountPercent: c.Query("discount"),
		DistanceKm:      c.Query("distance"),
	}

	result, ok := h.price(c, raw)
	if !ok {
		return
	}

	if c.Query("format") != FormatText {
		NewResponseBuilder(c).SuccessOK(dto.NewQuoteResponse(result.breakdown, result.input.DiscountPercent))
		return
	}

	summary := render.NewSummary(result.breakdown, result.input.DiscountPercent, render.Options{
		Currency: h.currency,
		Locale:   h.requestLocale(c),
		Rates:    h.calculator.Rates(),
	})

	var buf bytes.Buffer
	if err := render.Text(&buf, summary); err != nil {
		NewResponseBuilder(c).Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	c.Header("Content-Language", summary.Locale)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
}

// requestLocale resolves ?lang= and Accept-Language, falling back to the
// configured default.
func (h *Handler) requestLocale(c *gin.Context) string {
	return i18n.Match(c.Query(i18n.LangQueryParam), c.GetHeader(i18n.AcceptLanguageHeader), h.locale)
}
