package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/quantlab/valuescreen/internal/api"
	"github.com/quantlab/valuescreen/internal/api/handlers"
	"github.com/quantlab/valuescreen/internal/forecast"
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long: `Starts the REST API server.

Endpoints:
  GET /health                     - Health check
  GET /api/screen                 - Run a screen (?market=&limit=&hybrid=)
  GET /api/forecast/{ticker}      - Composite forecast (?market=)
  GET /api/universe/{market}      - Resolved constituents (?limit=)

Example:
  go run ./cmd/valuescreen api
  go run ./cmd/valuescreen api --port 8090`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "listen port (default from PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	d, err := initDeps(false)
	if err != nil {
		return err
	}
	defer d.close()

	if apiPort != "" {
		d.cfg.Port = apiPort
	}

	screenHandler := handlers.NewScreenHandler(d.resolver, d.collector, d.engine, d.strategy, d.log)
	forecastHandler := handlers.NewForecastHandler(d.provider,
		forecast.NewEngine(d.log, nil, d.strategy), d.log)
	universeHandler := handlers.NewUniverseHandler(d.resolver)

	router := api.NewRouter(screenHandler, forecastHandler, universeHandler, d.log)
	server := api.New(d.cfg, d.log, router)

	go func() {
		if err := server.Start(); err != nil {
			d.log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("\n✅ Server running on http://localhost:%s\n", d.cfg.Port)
	fmt.Println("\nPress Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}
