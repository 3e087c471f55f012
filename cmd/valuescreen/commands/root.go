// Package commands implements the valuescreen CLI.
package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	strategyFile string
	verbose      bool
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "valuescreen",
	Short: "Quality-value equity screener with multi-model price forecasting",
	Long: `valuescreen screens equity markets for quality companies trading at
a discount, and projects price paths with DCF, earnings-multiple and
ROIC-growth models.

Usage:
  go run ./cmd/valuescreen [command]

Examples:
  go run ./cmd/valuescreen screen --market SP500 --top 25
  go run ./cmd/valuescreen forecast AAPL
  go run ./cmd/valuescreen universe NIFTY100
  go run ./cmd/valuescreen api`,
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&strategyFile, "strategy", "", "strategy YAML file (default is built-in)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
