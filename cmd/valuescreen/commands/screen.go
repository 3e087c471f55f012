package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quantlab/valuescreen/internal/provider"
	"github.com/quantlab/valuescreen/internal/screening"
	"github.com/quantlab/valuescreen/internal/universe"
)

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Screen a market for quality companies at a discount",
	Long: `Screens a market's universe: fetches fundamentals and price history,
applies the quality and valuation gates, and ranks the survivors by
value score.

Example:
  go run ./cmd/valuescreen screen --market SP500 --top 25
  go run ./cmd/valuescreen screen --market NIFTY100 --hybrid
  go run ./cmd/valuescreen screen --limit 50 --json`,
	RunE: runScreen,
}

var (
	screenMarket string
	screenLimit  int
	screenTop    int
	screenHybrid bool
	screenJSON   bool
)

func init() {
	rootCmd.AddCommand(screenCmd)

	screenCmd.Flags().StringVar(&screenMarket, "market", "SP500", "market to screen (SP500|NIFTY100|FTSE100)")
	screenCmd.Flags().IntVar(&screenLimit, "limit", 0, "screen only the top N constituents by market cap (0 = all)")
	screenCmd.Flags().IntVar(&screenTop, "top", 0, "keep only the top N ranked results (0 = strategy default)")
	screenCmd.Flags().BoolVar(&screenHybrid, "hybrid", false, "blend momentum into the ranking")
	screenCmd.Flags().BoolVar(&screenJSON, "json", false, "emit raw JSON instead of a table")
}

func runScreen(cmd *cobra.Command, args []string) error {
	d, err := initDeps(false)
	if err != nil {
		return err
	}
	defer d.close()

	ctx := cmd.Context()

	constituents, err := d.resolver.Resolve(ctx, screenMarket, screenLimit)
	if err != nil {
		return err
	}

	results := d.collector.Collect(ctx, universe.Symbols(screenMarket, constituents), provider.DefaultPriceDays)

	candidates := make([]screening.Candidate, 0, len(results))
	for _, r := range results {
		if r.Err != nil || r.Snapshot == nil {
			continue
		}
		r.Snapshot.Market = screenMarket
		candidates = append(candidates, screening.Candidate{Snapshot: r.Snapshot, Prices: r.Prices})
	}

	strategy := *d.strategy
	if screenHybrid {
		strategy.Ranking.Hybrid = true
	}
	if screenTop > 0 {
		strategy.Screen.TopN = screenTop
	}

	outcome := screening.NewPipeline(d.log, d.engine, &strategy).Run(candidates)

	if screenJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(outcome)
	}

	printScreenTable(outcome, screenMarket, len(constituents))
	return nil
}

func printScreenTable(outcome *screening.Outcome, market string, universeSize int) {
	PrintHeader(fmt.Sprintf("Screen: %s", market))
	PrintKeyValue("Universe", fmt.Sprintf("%d", universeSize), 10)
	PrintKeyValue("Screened", fmt.Sprintf("%d", outcome.Summary.Candidates), 10)
	PrintKeyValue("Passed", fmt.Sprintf("%d", outcome.Summary.Ranked), 10)
	for reason, n := range outcome.Summary.Rejected {
		PrintKeyValue("✗ "+reason, fmt.Sprintf("%d", n), 10)
	}
	fmt.Println()

	if len(outcome.Results) == 0 {
		PrintError("No company passed the screen")
		return
	}

	columns := []string{"#", "Ticker", "Price", "ROIC", "D/E", "FromLow", "EQ", "Mom", "Score", "Conf"}
	widths := []int{3, 12, 10, 7, 6, 8, 6, 6, 6, 6}
	PrintTableHeader(columns, widths)

	for _, r := range outcome.Results {
		m := r.Metrics
		PrintTableRow([]string{
			fmt.Sprintf("%d", r.Rank),
			r.Ticker,
			fmtOpt(r.CurrentPrice, "%.2f"),
			fmtOptPct(m.ROIC),
			fmtOpt(m.DebtToEquity, "%.2f"),
			fmtOpt(m.DistanceFromLow, "%.1f%%"),
			fmtOpt(m.EarningsQuality, "%.0f"),
			fmtOpt(m.MomentumScore, "%.0f"),
			fmt.Sprintf("%.2f", r.RankScore()),
			string(m.Confidence),
		}, widths)
	}
}
