package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/guttosm/pricing-service/internal/domain/dto"
	"github.com/guttosm/pricing-service/internal/domain/model"
	"github.com/guttosm/pricing-service/internal/i18n"
	"github.com/guttosm/pricing-service/internal/render"
	"github.com/guttosm/pricing-service/internal/service"
)

const (
	formatText = "text"
	formatJSON = "json"
)

type quoteOptions struct {
	raw      model.RawOrderInput
	strict   bool
	format   string
	locale   string
	currency string
}

func newQuoteCmd() *cobra.Command {
	opts := &quoteOptions{}

	quoteCmd := &cobra.Command{
		Use:   "quote",
		Short: "Calculate the price of an order",
		Long: `Calculate the price breakdown of an order.

Values are read leniently by default: the longest numeric prefix of each
flag is used and anything unreadable counts as 0. With --strict every value
must be a complete number and invalid input exits non-zero.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuote(cmd.OutOrStdout(), opts)
		},
	}

	flags := quoteCmd.Flags()
	flags.StringVar(&opts.raw.UnitPrice, "price", "", "unit price")
	flags.StringVar(&opts.raw.Quantity, "quantity", "", "number of items")
	flags.StringVar(&opts.raw.DiscountPercent, "discount", "", "discount percent")
	flags.StringVar(&opts.raw.DistanceKm, "distance", "", "delivery distance in km")
	flags.BoolVar(&opts.strict, "strict", false, "reject malformed or out-of-range input")
	flags.StringVarP(&opts.format, "format", "f", formatText, "output format (text, json)")
	flags.StringVar(&opts.locale, "locale", i18n.DefaultLocale, "summary language (en, pt, nl)")
	flags.StringVar(&opts.currency, "currency", render.DefaultCurrency, "currency symbol for the text summary")

	return quoteCmd
}

func runQuote(out io.Writer, opts *quoteOptions) error {
	if opts.format != formatText && opts.format != formatJSON {
		return fmt.Errorf("unknown format %q (want %s or %s)", opts.format, formatText, formatJSON)
	}

	parser := service.NewInputParser(service.PolicyFromStrict(opts.strict))
	input, err := parser.Parse(opts.raw)
	if err != nil {
		return fmt.Errorf("invalid order input: %w", err)
	}

	calculator := service.NewPricingCalculatorService()
	breakdown := calculator.ComputeBreakdown(input)

	log.Debug().
		Str("policy", parser.Policy().String()).
		Str("total", breakdown.Total.StringFixed(2)).
		Bool("free_delivery", breakdown.FreeDeliveryApplied).
		Msg("Quote calculated")

	if opts.format == formatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(dto.NewQuoteResponse(breakdown, input.DiscountPercent))
	}

	return render.Text(out, render.NewSummary(breakdown, input.DiscountPercent, render.Options{
		Currency: opts.currency,
		Locale:   i18n.Match(opts.locale),
		Rates:    calculator.Rates(),
	}))
}
