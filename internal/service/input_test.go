package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/pricing-service/internal/domain/model"
)

func TestInputParser_Lenient(t *testing.T) {
	parser := NewInputParser(PolicyLenient)

	tests := []struct {
		name     string
		raw      model.RawOrderInput
		expected model.OrderInput
	}{
		{
			name:     "plain numbers",
			raw:      model.RawOrderInput{UnitPrice: "10", Quantity: "2", DiscountPercent: "0", DistanceKm: "10"},
			expected: order("10", "2", "0", "10"),
		},
		{
			name:     "missing fields are zero",
			raw:      model.RawOrderInput{},
			expected: order("0", "0", "0", "0"),
		},
		{
			name:     "non numeric fields are zero",
			raw:      model.RawOrderInput{UnitPrice: "abc", Quantity: "x2", DiscountPercent: "%", DistanceKm: "."},
			expected: order("0", "0", "0", "0"),
		},
		{
			name:     "trailing garbage is ignored",
			raw:      model.RawOrderInput{UnitPrice: "12.5abc", Quantity: "3 items", DiscountPercent: "10%", DistanceKm: "4km"},
			expected: order("12.5", "3", "10", "4"),
		},
		{
			name:     "quantity is truncated to an integer",
			raw:      model.RawOrderInput{UnitPrice: "1", Quantity: "2.9", DiscountPercent: "0", DistanceKm: "0"},
			expected: order("1", "2", "0", "0"),
		},
		{
			name:     "leading whitespace and signs",
			raw:      model.RawOrderInput{UnitPrice: "  +7.25", Quantity: "\t-3", DiscountPercent: " .5", DistanceKm: "5."},
			expected: order("7.25", "-3", "0.5", "5"),
		},
		{
			name:     "byte order mark counts as whitespace",
			raw:      model.RawOrderInput{UnitPrice: "1", Quantity: "\ufeff3", DiscountPercent: "10", DistanceKm: "\ufeff 1km"},
			expected: order("1", "3", "10", "1"),
		},
		{
			name:     "exponent notation",
			raw:      model.RawOrderInput{UnitPrice: "1e2", Quantity: "1e3", DiscountPercent: "2.5E+1", DistanceKm: "1e"},
			expected: order("100", "1", "25", "1"),
		},
		{
			name:     "absurd exponent is zero",
			raw:      model.RawOrderInput{UnitPrice: "1e999999"},
			expected: order("0", "0", "0", "0"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := parser.Parse(tt.raw)

			require.NoError(t, err)
			assert.True(t, in.UnitPrice.Equal(tt.expected.UnitPrice), "unit price %s", in.UnitPrice)
			assert.True(t, in.Quantity.Equal(tt.expected.Quantity), "quantity %s", in.Quantity)
			assert.True(t, in.DiscountPercent.Equal(tt.expected.DiscountPercent), "discount %s", in.DiscountPercent)
			assert.True(t, in.DistanceKm.Equal(tt.expected.DistanceKm), "distance %s", in.DistanceKm)
		})
	}
}

func TestInputParser_Strict(t *testing.T) {
	parser := NewInputParser(PolicyStrict)

	tests := []struct {
		name      string
		raw       model.RawOrderInput
		expected  model.OrderInput
		wantError map[string]string
	}{
		{
			name:     "valid input",
			raw:      model.RawOrderInput{UnitPrice: "10.50", Quantity: "2", DiscountPercent: "0", DistanceKm: " 10 "},
			expected: order("10.5", "2", "0", "10"),
		},
		{
			name:     "negative values are accepted",
			raw:      model.RawOrderInput{UnitPrice: "-1", Quantity: "-2", DiscountPercent: "-5", DistanceKm: "-3"},
			expected: order("-1", "-2", "-5", "-3"),
		},
		{
			name:     "byte order mark is trimmed",
			raw:      model.RawOrderInput{UnitPrice: "\ufeff4", Quantity: "1", DiscountPercent: "0", DistanceKm: "0"},
			expected: order("4", "1", "0", "0"),
		},
		{
			name:     "integral quantity with fraction digits",
			raw:      model.RawOrderInput{UnitPrice: "1", Quantity: "2.0", DiscountPercent: "0", DistanceKm: "0"},
			expected: order("1", "2", "0", "0"),
		},
		{
			name: "missing fields",
			raw:  model.RawOrderInput{UnitPrice: "10"},
			wantError: map[string]string{
				FieldQuantity:        ReasonRequired,
				FieldDiscountPercent: ReasonRequired,
				FieldDistanceKm:      ReasonRequired,
			},
		},
		{
			name: "trailing garbage is rejected",
			raw:  model.RawOrderInput{UnitPrice: "12.5abc", Quantity: "2", DiscountPercent: "0", DistanceKm: "0"},
			wantError: map[string]string{
				FieldUnitPrice: ReasonNotNumber,
			},
		},
		{
			name: "fractional quantity is rejected",
			raw:  model.RawOrderInput{UnitPrice: "1", Quantity: "2.9", DiscountPercent: "0", DistanceKm: "0"},
			wantError: map[string]string{
				FieldQuantity: ReasonNotInteger,
			},
		},
		{
			name: "absurd exponent is rejected",
			raw:  model.RawOrderInput{UnitPrice: "1", Quantity: "1", DiscountPercent: "0", DistanceKm: "1e500"},
			wantError: map[string]string{
				FieldDistanceKm: ReasonOutOfRange,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := parser.Parse(tt.raw)

			if tt.wantError != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidInput))

				var invalid *InvalidInputError
				require.True(t, errors.As(err, &invalid))
				assert.Equal(t, tt.wantError, invalid.Details())
				return
			}

			require.NoError(t, err)
			assert.True(t, in.UnitPrice.Equal(tt.expected.UnitPrice))
			assert.True(t, in.Quantity.Equal(tt.expected.Quantity))
			assert.True(t, in.DiscountPercent.Equal(tt.expected.DiscountPercent))
			assert.True(t, in.DistanceKm.Equal(tt.expected.DistanceKm))
		})
	}
}

func TestInvalidInputError_Error(t *testing.T) {
	err := &InvalidInputError{Fields: []FieldError{
		{Field: FieldQuantity, Reason: ReasonNotInteger},
		{Field: FieldDistanceKm, Reason: ReasonRequired},
	}}

	assert.Equal(t, "invalid order input: quantity must be a whole number; distance_km is required", err.Error())
	assert.False(t, errors.Is(err, errors.New("invalid order input")))
}

func TestPolicyFromStrict(t *testing.T) {
	assert.Equal(t, PolicyStrict, PolicyFromStrict(true))
	assert.Equal(t, PolicyLenient, PolicyFromStrict(false))
	assert.Equal(t, "strict", PolicyStrict.String())
	assert.Equal(t, "lenient", PolicyLenient.String())
	assert.Equal(t, PolicyStrict, NewInputParser(PolicyStrict).Policy())
}

func TestNormalizeLiteral(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"+.5", "0.5"},
		{"-.5", "-0.5"},
		{"5.", "5"},
		{"1E+3", "1e3"},
		{"2.5e-1", "2.5e-1"},
		{"10", "10"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.out, normalizeLiteral(tt.in))
		})
	}
}
