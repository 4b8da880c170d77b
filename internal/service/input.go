package service

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/guttosm/pricing-service/internal/domain/model"
	"github.com/guttosm/pricing-service/internal/metrics"
)

// Field names used in input errors.
const (
	FieldUnitPrice       = "unit_price"
	FieldQuantity        = "quantity"
	FieldDiscountPercent = "discount_percent"
	FieldDistanceKm      = "distance_km"
)

// Rejection reasons reported by the strict policy.
const (
	ReasonRequired   = "is required"
	ReasonNotNumber  = "must be a number"
	ReasonNotInteger = "must be a whole number"
	ReasonOutOfRange = "is out of range"
)

// ErrInvalidInput is matched by every *InvalidInputError.
var ErrInvalidInput = errors.New("invalid order input")

// maxExponent bounds scientific notation so a tiny literal cannot expand
// into a huge number.
const maxExponent = 64

var (
	floatPrefix = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)
	intPrefix   = regexp.MustCompile(`^[+-]?\d+`)
	fullNumber  = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?$`)
)

// InputPolicy selects how raw text becomes an OrderInput.
type InputPolicy int

const (
	// PolicyLenient reads the longest numeric prefix of each field and
	// treats anything unreadable as zero. It never fails.
	PolicyLenient InputPolicy = iota
	// PolicyStrict requires every field to be a complete number and the
	// quantity to be whole.
	PolicyStrict
)

// String returns the policy name.
func (p InputPolicy) String() string {
	if p == PolicyStrict {
		return "strict"
	}
	return "lenient"
}

// FieldError describes one rejected field.
type FieldError struct {
	Field  string
	Reason string
}

// InvalidInputError lists every field the strict policy rejected.
type InvalidInputError struct {
	Fields []FieldError
}

// Error implements error.
func (e *InvalidInputError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Reason)
	}
	return ErrInvalidInput.Error() + ": " + strings.Join(parts, "; ")
}

// Is reports whether target is ErrInvalidInput.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Details returns the rejected fields as a field to reason map.
func (e *InvalidInputError) Details() map[string]string {
	details := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		details[f.Field] = f.Reason
	}
	return details
}

// InputParser turns raw text fields into an OrderInput.
type InputParser struct {
	policy InputPolicy
}

// NewInputParser creates a parser for the given policy.
func NewInputParser(policy InputPolicy) *InputParser {
	return &InputParser{policy: policy}
}

// PolicyFromStrict maps a strict flag to a policy.
func PolicyFromStrict(strict bool) InputPolicy {
	if strict {
		return PolicyStrict
	}
	return PolicyLenient
}

// Policy returns the parser's policy.
func (p *InputParser) Policy() InputPolicy {
	return p.policy
}

// Parse converts raw into an OrderInput. Under the lenient policy the
// error is always nil.
func (p *InputParser) Parse(raw model.RawOrderInput) (model.OrderInput, error) {
	if p.policy == PolicyStrict {
		return parseStrict(raw)
	}
	return model.OrderInput{
		UnitPrice:       leadingDecimal(raw.UnitPrice),
		Quantity:        leadingInteger(raw.Quantity),
		DiscountPercent: leadingDecimal(raw.DiscountPercent),
		DistanceKm:      leadingDecimal(raw.DistanceKm),
	}, nil
}

func parseStrict(raw model.RawOrderInput) (model.OrderInput, error) {
	var (
		in   model.OrderInput
		errs []FieldError
	)

	check := func(field, text string, integral bool) decimal.Decimal {
		d, reason := strictDecimal(text, integral)
		if reason != "" {
			errs = append(errs, FieldError{Field: field, Reason: reason})
			metrics.RecordInputRejection(field)
		}
		return d
	}

	in.UnitPrice = check(FieldUnitPrice, raw.UnitPrice, false)
	in.Quantity = check(FieldQuantity, raw.Quantity, true)
	in.DiscountPercent = check(FieldDiscountPercent, raw.DiscountPercent, false)
	in.DistanceKm = check(FieldDistanceKm, raw.DistanceKm, false)

	if len(errs) > 0 {
		return model.OrderInput{}, &InvalidInputError{Fields: errs}
	}
	return in, nil
}

func strictDecimal(text string, integral bool) (decimal.Decimal, string) {
	text = strings.TrimFunc(text, isBlank)
	if text == "" {
		return decimal.Zero, ReasonRequired
	}
	if !fullNumber.MatchString(text) {
		return decimal.Zero, ReasonNotNumber
	}
	d, err := decimal.NewFromString(normalizeLiteral(text))
	if err != nil || outOfRange(d) {
		return decimal.Zero, ReasonOutOfRange
	}
	if integral && !d.IsInteger() {
		return decimal.Zero, ReasonNotInteger
	}
	return d, ""
}

// leadingDecimal reads the longest decimal prefix after leading whitespace.
// "12.5abc" is 12.5, "abc" is 0.
func leadingDecimal(text string) decimal.Decimal {
	m := floatPrefix.FindString(strings.TrimLeftFunc(text, isBlank))
	if m == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(normalizeLiteral(m))
	if err != nil || outOfRange(d) {
		return decimal.Zero
	}
	return d
}

// normalizeLiteral rewrites forms like "+.5", "5." and "1E+3" as
// "0.5", "5" and "1e3".
func normalizeLiteral(s string) string {
	sign := ""
	switch {
	case strings.HasPrefix(s, "-"):
		sign, s = "-", s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	mantissa, exp, hasExp := strings.Cut(strings.ToLower(s), "e")
	if strings.HasPrefix(mantissa, ".") {
		mantissa = "0" + mantissa
	}
	mantissa = strings.TrimSuffix(mantissa, ".")
	if !hasExp {
		return sign + mantissa
	}
	return sign + mantissa + "e" + strings.TrimPrefix(exp, "+")
}

// leadingInteger reads the longest integer prefix after leading whitespace.
// "2.9" is 2.
func leadingInteger(text string) decimal.Decimal {
	m := intPrefix.FindString(strings.TrimLeftFunc(text, isBlank))
	if m == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.TrimPrefix(m, "+"))
	if err != nil || outOfRange(d) {
		return decimal.Zero
	}
	return d
}

// isBlank also counts the byte order mark, which form input can carry.
func isBlank(r rune) bool {
	return r == '\uFEFF' || unicode.IsSpace(r)
}

func outOfRange(d decimal.Decimal) bool {
	if d.IsZero() {
		return false
	}
	// magnitude of the leading digit
	mag := int64(d.Exponent()) + int64(d.NumDigits()) - 1
	return mag > maxExponent || mag < -maxExponent
}
