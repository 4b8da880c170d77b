package render

import (
	"embed"
	"html/template"
	"io"

	"github.com/guttosm/pricing-service/internal/domain/model"
	"github.com/guttosm/pricing-service/internal/i18n"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// Field is one input of the order form.
type Field struct {
	Name  string
	Label string
	Value string
	Step  string
}

// Page is the view model of the order form.
type Page struct {
	Lang    string
	Welcome string
	Title   string
	Action  string
	Submit  string
	Fields  []Field
	// Errors lists rejected fields when the strict policy is on.
	Errors  []string
	Summary *Summary
}

// NewPage builds the form for locale, echoing the submitted values. Summary is
// nil until the form has been posted.
func NewPage(locale string, raw model.RawOrderInput, summary *Summary) Page {
	if !i18n.IsSupported(locale) {
		locale = i18n.DefaultLocale
	}
	t := func(key string) string {
		return i18n.T(key, locale)
	}

	return Page{
		Lang:    locale,
		Welcome: t(i18n.LabelWelcome),
		Title:   t(i18n.LabelSummaryTitle),
		Action:  "/?lang=" + locale,
		Submit:  t(i18n.LabelCalculate),
		Fields: []Field{
			{Name: "price", Label: t(i18n.LabelUnitPrice), Value: raw.UnitPrice, Step: "0.01"},
			{Name: "quantity", Label: t(i18n.LabelQuantity), Value: raw.Quantity, Step: "1"},
			{Name: "discount", Label: t(i18n.LabelDiscountPercent), Value: raw.DiscountPercent, Step: "0.01"},
			{Name: "distance", Label: t(i18n.LabelDistanceKm), Value: raw.DistanceKm, Step: "0.1"},
		},
		Summary: summary,
	}
}

// HTML renders the order form page.
func HTML(w io.Writer, p Page) error {
	return pageTemplate.ExecuteTemplate(w, "page", p)
}
