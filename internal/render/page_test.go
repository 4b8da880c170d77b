package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/pricing-service/internal/domain/model"
)

func TestHTML(t *testing.T) {
	summary := &Summary{
		Title: "Resumo do Pedido",
		Lines: []Line{
			{Label: "Subtotal", Value: "R$ 20.00"},
			{Label: "Total a Pagar", Value: "R$ 36.60", Total: true},
		},
	}

	tests := []struct {
		name        string
		locale      string
		raw         model.RawOrderInput
		summary     *Summary
		contains    []string
		notContains []string
	}{
		{
			name:   "empty english form",
			locale: "en",
			contains: []string{
				`<html lang="en">`,
				"Hello! Welcome to our delivery system.",
				`name="price"`, `name="quantity"`, `name="discount"`, `name="distance"`,
				`action="/?lang=en"`,
			},
			notContains: []string{`id="results"`},
		},
		{
			name:    "posted portuguese form echoes values",
			locale:  "pt",
			raw:     model.RawOrderInput{UnitPrice: "10", Quantity: "2", DiscountPercent: "0", DistanceKm: "10"},
			summary: summary,
			contains: []string{
				"Olá! Bem-vindo(a) ao nosso sistema de delivery.",
				`value="10"`, `value="2"`,
				`id="results"`,
				"<h2>Resumo do Pedido</h2>",
				"<p>Subtotal: R$ 20.00</p>",
				"<hr>",
				"<p><strong>Total a Pagar: R$ 36.60</strong></p>",
			},
		},
		{
			name:     "values are escaped",
			locale:   "en",
			raw:      model.RawOrderInput{UnitPrice: `"><script>`},
			contains: []string{`value="&#34;&gt;&lt;script&gt;"`},
			notContains: []string{
				"<script>",
			},
		},
		{
			name:     "unsupported locale",
			locale:   "de",
			contains: []string{`<html lang="en">`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, HTML(&buf, NewPage(tt.locale, tt.raw, tt.summary)))

			out := buf.String()
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, out, s)
			}
		})
	}
}
