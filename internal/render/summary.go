// Package render formats a priced order for people: plain text for the CLI
// and the text API, HTML for the web form.
package render

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/guttosm/pricing-service/internal/domain/model"
	"github.com/guttosm/pricing-service/internal/i18n"
)

// DefaultCurrency is prefixed to every amount when none is configured.
const DefaultCurrency = "R$"

// Line is one labelled row of a summary.
type Line struct {
	Label string
	Value string
	// Total marks the closing line, which is separated and emphasized.
	Total bool
}

// Summary is a localized, fully formatted breakdown.
type Summary struct {
	Locale string
	Title  string
	Lines  []Line
}

// Options control how a summary is formatted.
type Options struct {
	Currency string
	Locale   string
	Rates    model.Rates
}

// NewSummary formats b. discountPercent is echoed as given, in its shortest
// decimal form; amounts always carry two decimals.
func NewSummary(b model.OrderBreakdown, discountPercent decimal.Decimal, opts Options) Summary {
	currency := opts.Currency
	if currency == "" {
		currency = DefaultCurrency
	}
	locale := opts.Locale
	if !i18n.IsSupported(locale) {
		locale = i18n.DefaultLocale
	}
	rates := opts.Rates
	if rates.TaxRate.IsZero() && rates.DeliveryRatePerKm.IsZero() {
		rates = model.DefaultRates
	}

	money := func(d decimal.Decimal) string {
		return currency + " " + d.StringFixed(2)
	}
	t := func(key string) string {
		return i18n.T(key, locale)
	}

	delivery := t(i18n.LabelFreeDelivery)
	if !b.FreeDeliveryApplied {
		delivery = "+ " + money(b.DeliveryFee)
	}

	return Summary{
		Locale: locale,
		Title:  t(i18n.LabelSummaryTitle),
		Lines: []Line{
			{Label: t(i18n.LabelSubtotal), Value: money(b.Subtotal)},
			{Label: fmt.Sprintf("%s (%s%%)", t(i18n.LabelDiscount), discountPercent.String()), Value: "- " + money(b.DiscountAmount)},
			{Label: fmt.Sprintf("%s (%s%%)", t(i18n.LabelTax), rates.TaxPercent().String()), Value: "+ " + money(b.TaxAmount)},
			{Label: t(i18n.LabelDeliveryFee), Value: delivery},
			{Label: t(i18n.LabelTotal), Value: money(b.Total), Total: true},
		},
	}
}

// Text writes the summary as plain lines.
func Text(w io.Writer, s Summary) error {
	if _, err := fmt.Fprintln(w, s.Title); err != nil {
		return err
	}
	for _, line := range s.Lines {
		if line.Total {
			if _, err := fmt.Fprintln(w, "----------"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", line.Label, line.Value); err != nil {
			return err
		}
	}
	return nil
}
