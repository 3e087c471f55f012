package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quantlab/valuescreen/internal/contracts"
	"github.com/quantlab/valuescreen/internal/forecast"
	"github.com/quantlab/valuescreen/internal/provider"
	"github.com/quantlab/valuescreen/internal/universe"
)

var forecastCmd = &cobra.Command{
	Use:   "forecast [ticker]",
	Short: "Project price paths for one company",
	Long: `Runs the DCF, earnings-multiple and ROIC-growth models for a company
and prints bull/base/bear price paths at 6-month to 5-year horizons,
with risk metrics and the expected alpha over the listing market.

Example:
  go run ./cmd/valuescreen forecast AAPL
  go run ./cmd/valuescreen forecast RELIANCE --market NIFTY100
  go run ./cmd/valuescreen forecast AZN --market FTSE100 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runForecast,
}

var (
	forecastMarket string
	forecastJSON   bool
)

func init() {
	rootCmd.AddCommand(forecastCmd)

	forecastCmd.Flags().StringVar(&forecastMarket, "market", "SP500", "listing market (SP500|NIFTY100|FTSE100)")
	forecastCmd.Flags().BoolVar(&forecastJSON, "json", false, "emit raw JSON instead of a report")
}

func runForecast(cmd *cobra.Command, args []string) error {
	if !universe.Valid(forecastMarket) {
		return fmt.Errorf("unknown market %q", forecastMarket)
	}

	d, err := initDeps(false)
	if err != nil {
		return err
	}
	defer d.close()

	ctx := cmd.Context()
	symbol := universe.Symbol(forecastMarket, args[0])

	snap, err := d.provider.Snapshot(ctx, symbol)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", symbol, err)
	}
	snap.Market = forecastMarket

	bars, err := d.provider.Prices(ctx, symbol, provider.DefaultPriceDays)
	if err != nil {
		d.log.WithError(err).WithField("ticker", symbol).Debug("Price history unavailable")
		bars = nil
	}

	engine := forecast.NewEngine(d.log, nil, d.strategy)
	fc, err := engine.Composite(snap, bars)
	if err != nil {
		return err
	}

	if forecastJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(fc)
	}

	printForecast(fc)
	return nil
}

func printForecast(fc *contracts.CompositeForecast) {
	title := fc.Ticker
	if fc.Name != "" {
		title = fmt.Sprintf("%s (%s)", fc.Name, fc.Ticker)
	}
	PrintHeader(fmt.Sprintf("Forecast: %s", title))
	PrintKeyValue("Market", fc.Market, 14)
	PrintKeyValue("Price", fmt.Sprintf("%.2f", fc.CurrentPrice), 14)
	PrintKeyValue("Models used", fmt.Sprintf("%d", fc.ModelsUsed), 14)
	if fc.DCFIntrinsicValue != nil {
		PrintKeyValue("DCF intrinsic", fmt.Sprintf("%.2f", *fc.DCFIntrinsicValue), 14)
	}
	if fc.MarginOfSafetyPct != nil {
		PrintKeyValue("Margin", fmt.Sprintf("%.1f%%", *fc.MarginOfSafetyPct), 14)
	}
	PrintKeyValue("1Y alpha", fmt.Sprintf("%+.1fpp", fc.Alpha1YPct), 14)
	fmt.Println()

	columns := []string{"Scenario", "6m", "1y", "2y", "5y"}
	widths := []int{10, 9, 9, 9, 9}
	PrintTableHeader(columns, widths)
	for _, sc := range contracts.Scenarios {
		row := []string{string(sc)}
		for _, h := range contracts.Horizons {
			row = append(row, fmt.Sprintf("%.2f", fc.Composite[sc][h]))
		}
		PrintTableRow(row, widths)
	}
	benchmark := []string{"market"}
	for _, h := range contracts.Horizons {
		benchmark = append(benchmark, fmt.Sprintf("%.2f", fc.MarketBenchmark[h]))
	}
	PrintTableRow(benchmark, widths)
	fmt.Println()

	PrintKeyValue("Beta", fmt.Sprintf("%.2f", fc.Risk.Beta), 14)
	PrintKeyValue("Volatility", fmtOptPct(fc.Risk.AnnualVolatility), 14)
	PrintKeyValue("Max drawdown", fmtOptPct(fc.Risk.MaxDrawdownPct), 14)
	PrintKeyValue("Sharpe", fmtOpt(fc.Risk.SharpeRatio, "%.2f"), 14)
}
