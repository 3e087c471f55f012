package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/quantlab/valuescreen/internal/scheduler"
	"github.com/quantlab/valuescreen/internal/scheduler/jobs"
	"github.com/quantlab/valuescreen/internal/universe"
)

var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run or inspect the maintenance jobs",
	Long: `Manages the recurring maintenance jobs.

Jobs:
  universe_refresh - Mondays 05:00, re-scrapes index constituents
  cache_warm       - daily 06:00, pre-fetches every universe

Example:
  go run ./cmd/valuescreen scheduler start
  go run ./cmd/valuescreen scheduler run cache_warm`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the scheduler daemon",
		RunE:  runScheduler,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "Run one job immediately",
		Args:  cobra.ExactArgs(1),
		RunE:  runSchedulerJob,
	}
)

var schedulerWarmLimit int

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)

	schedulerCmd.PersistentFlags().IntVar(&schedulerWarmLimit, "warm-limit", 0, "warm only the top N constituents per market (0 = all)")
}

func buildScheduler() (*scheduler.Scheduler, *deps, error) {
	// The refresh job writes scraped constituents to Postgres.
	d, err := initDeps(true)
	if err != nil {
		return nil, nil, err
	}

	sched := scheduler.New(d.log)

	scraper := universe.NewScraper(d.httpClient, "", d.log)
	if err := sched.AddJob(jobs.NewUniverseRefreshJob(scraper, d.repo, d.cache, d.log)); err != nil {
		return nil, nil, err
	}
	if err := sched.AddJob(jobs.NewCacheWarmJob(d.resolver, d.collector, schedulerWarmLimit, d.log)); err != nil {
		return nil, nil, err
	}

	return sched, d, nil
}

func runScheduler(cmd *cobra.Command, args []string) error {
	sched, d, err := buildScheduler()
	if err != nil {
		return err
	}
	defer d.close()

	sched.Start()

	PrintSuccess("Scheduler started")
	fmt.Println("\nRegistered jobs:")
	for _, name := range sched.Jobs() {
		fmt.Printf("  - %s\n", name)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()
	return nil
}

func runSchedulerJob(cmd *cobra.Command, args []string) error {
	sched, d, err := buildScheduler()
	if err != nil {
		return err
	}
	defer d.close()

	name := args[0]
	if err := sched.RunNow(name); err != nil {
		return err
	}

	history, err := sched.History(name)
	if err != nil {
		return err
	}
	last, ok := history.Last()
	if !ok {
		return fmt.Errorf("job %s recorded no result", name)
	}
	if !last.Success {
		return fmt.Errorf("job %s failed: %s", name, last.Error)
	}

	PrintSuccess(fmt.Sprintf("Job %s completed in %s", name, last.Duration))
	return nil
}
