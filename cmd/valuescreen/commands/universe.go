package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quantlab/valuescreen/internal/universe"
	"github.com/quantlab/valuescreen/pkg/redis"
)

var universeCmd = &cobra.Command{
	Use:   "universe [market]",
	Short: "Show or refresh a market's constituents",
	Long: `Prints the resolved constituent list for a market, or re-scrapes it
with --refresh.

Example:
  go run ./cmd/valuescreen universe SP500 --limit 25
  go run ./cmd/valuescreen universe FTSE100 --refresh`,
	Args: cobra.ExactArgs(1),
	RunE: runUniverse,
}

var (
	universeLimit   int
	universeRefresh bool
)

func init() {
	rootCmd.AddCommand(universeCmd)

	universeCmd.Flags().IntVar(&universeLimit, "limit", 0, "show only the top N constituents (0 = all)")
	universeCmd.Flags().BoolVar(&universeRefresh, "refresh", false, "re-scrape constituents and store them")
}

func runUniverse(cmd *cobra.Command, args []string) error {
	market := args[0]
	if !universe.Valid(market) {
		return fmt.Errorf("unknown market %q", market)
	}

	// Refreshing persists the scrape, so it needs the database.
	d, err := initDeps(universeRefresh)
	if err != nil {
		return err
	}
	defer d.close()

	ctx := cmd.Context()

	if universeRefresh {
		scraper := universe.NewScraper(d.httpClient, "", d.log)
		constituents, err := scraper.Fetch(ctx, market)
		if err != nil {
			return err
		}
		if err := d.repo.Replace(ctx, market, constituents); err != nil {
			return err
		}
		if d.cache != nil {
			_ = d.cache.Delete(ctx, redis.UniverseKey(market))
		}
		PrintSuccess(fmt.Sprintf("Refreshed %s: %d constituents", market, len(constituents)))
	}

	constituents, err := d.resolver.Resolve(ctx, market, universeLimit)
	if err != nil {
		return err
	}

	PrintHeader(fmt.Sprintf("Universe: %s (%d)", market, len(constituents)))
	columns := []string{"#", "Ticker", "Symbol", "Name"}
	widths := []int{4, 12, 14, 30}
	PrintTableHeader(columns, widths)
	for i, c := range constituents {
		PrintTableRow([]string{
			fmt.Sprintf("%d", i+1),
			c.Ticker,
			universe.Symbol(market, c.Ticker),
			c.Name,
		}, widths)
	}
	return nil
}
