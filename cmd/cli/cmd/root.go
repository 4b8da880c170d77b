// Package cmd provides the CLI commands for the pricing tool.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/guttosm/pricing-service/internal/logger"
)

// Version is set at build time with -ldflags "-X .../cmd.Version=...".
var Version = "dev"

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var (
		logLevel string
		pretty   bool
	)

	root := &cobra.Command{
		Use:   "pricing",
		Short: "Price single-item delivery orders",
		Long: `pricing computes the subtotal, discount, 8% tax, delivery fee and total
for an order of one item type.

Examples:
  pricing quote --price 10 --quantity 2 --distance 10
  pricing quote --price 30 --quantity 2 --discount 10 --format json
  pricing quote --price 10abc --quantity 2 --strict`,
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			logger.Init(logLevel, pretty)
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&pretty, "pretty", false, "human-readable log output")

	root.AddCommand(newQuoteCmd())
	root.AddCommand(newVersionCmd())

	return root
}
