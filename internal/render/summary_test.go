package render

import (
	"bytes"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/pricing-service/internal/domain/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNewSummary(t *testing.T) {
	tests := []struct {
		name     string
		b        model.OrderBreakdown
		discount decimal.Decimal
		opts     Options
		title    string
		lines    []string
	}{
		{
			name: "paid delivery in english",
			b: model.OrderBreakdown{
				Subtotal: dec("20"), DiscountAmount: dec("0"), DiscountedSubtotal: dec("20"),
				TaxAmount: dec("1.6"), DeliveryFee: dec("15"), Total: dec("36.6"),
			},
			discount: dec("0"),
			opts:     Options{Locale: "en"},
			title:    "Order Summary",
			lines: []string{
				"Subtotal: R$ 20.00",
				"Discount (0%): - R$ 0.00",
				"Tax (8%): + R$ 1.60",
				"Delivery fee: + R$ 15.00",
				"Total: R$ 36.60",
			},
		},
		{
			name: "free delivery in portuguese",
			b: model.OrderBreakdown{
				Subtotal: dec("100"), DiscountAmount: dec("10"), DiscountedSubtotal: dec("90"),
				TaxAmount: dec("7.2"), DeliveryFee: decimal.Zero, FreeDeliveryApplied: true, Total: dec("97.2"),
			},
			discount: dec("10"),
			opts:     Options{Locale: "pt"},
			title:    "Resumo do Pedido",
			lines: []string{
				"Subtotal: R$ 100.00",
				"Desconto (10%): - R$ 10.00",
				"Imposto (8%): + R$ 7.20",
				"Taxa de Entrega: Frete Grátis!",
				"Total a Pagar: R$ 97.20",
			},
		},
		{
			name: "fractional percent and custom currency",
			b: model.OrderBreakdown{
				Subtotal: dec("40"), DiscountAmount: dec("5"), DiscountedSubtotal: dec("35"),
				TaxAmount: dec("2.8"), DeliveryFee: dec("3.75"), Total: dec("41.55"),
			},
			discount: dec("12.50"),
			opts:     Options{Locale: "en", Currency: "€"},
			title:    "Order Summary",
			lines: []string{
				"Subtotal: € 40.00",
				"Discount (12.5%): - € 5.00",
				"Tax (8%): + € 2.80",
				"Delivery fee: + € 3.75",
				"Total: € 41.55",
			},
		},
		{
			name: "unknown locale falls back to english",
			b: model.OrderBreakdown{
				Subtotal: dec("0.005"), DiscountAmount: decimal.Zero, DiscountedSubtotal: dec("0.005"),
				TaxAmount: dec("0.0004"), DeliveryFee: decimal.Zero, Total: dec("0.0054"),
			},
			discount: decimal.Zero,
			opts:     Options{Locale: "xx"},
			title:    "Order Summary",
			lines: []string{
				"Subtotal: R$ 0.01",
				"Discount (0%): - R$ 0.00",
				"Tax (8%): + R$ 0.00",
				"Delivery fee: + R$ 0.00",
				"Total: R$ 0.01",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSummary(tt.b, tt.discount, tt.opts)

			assert.Equal(t, tt.title, s.Title)
			require.Len(t, s.Lines, len(tt.lines))
			for i, line := range s.Lines {
				assert.Equal(t, tt.lines[i], line.Label+": "+line.Value)
			}
			assert.True(t, s.Lines[len(s.Lines)-1].Total)
		})
	}
}

func TestText(t *testing.T) {
	s := Summary{
		Title: "Order Summary",
		Lines: []Line{
			{Label: "Subtotal", Value: "R$ 20.00"},
			{Label: "Total", Value: "R$ 36.60", Total: true},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Text(&buf, s))

	assert.Equal(t, "Order Summary\nSubtotal: R$ 20.00\n----------\nTotal: R$ 36.60\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func TestText_WriteError(t *testing.T) {
	err := Text(failingWriter{}, Summary{Title: "x"})
	assert.Error(t, err)
}
