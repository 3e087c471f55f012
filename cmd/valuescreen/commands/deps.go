package commands

import (
	"fmt"

	"github.com/quantlab/valuescreen/internal/metrics"
	"github.com/quantlab/valuescreen/internal/provider"
	"github.com/quantlab/valuescreen/internal/provider/yahoo"
	"github.com/quantlab/valuescreen/internal/quality"
	"github.com/quantlab/valuescreen/internal/screenconfig"
	"github.com/quantlab/valuescreen/internal/universe"
	"github.com/quantlab/valuescreen/pkg/config"
	"github.com/quantlab/valuescreen/pkg/database"
	"github.com/quantlab/valuescreen/pkg/httputil"
	"github.com/quantlab/valuescreen/pkg/logger"
	"github.com/quantlab/valuescreen/pkg/redis"
)

// deps is the shared dependency graph the commands wire up. Redis and
// Postgres are optional: without them the provider fetches uncached
// and the universe falls back to the built-in lists.
type deps struct {
	cfg      *config.Config
	log      *logger.Logger
	strategy *screenconfig.Config

	redisClient *redis.Client
	cache       *redis.Cache
	db          *database.DB

	httpClient *httputil.Client
	provider   provider.Provider
	collector  *provider.Collector
	repo       *universe.Repository
	resolver   *universe.Resolver
	engine     *metrics.Engine
}

// initDeps loads config and builds the dependency graph. requireDB
// fails early for commands that cannot run without Postgres.
func initDeps(requireDB bool) (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if strategyFile != "" {
		cfg.StrategyFile = strategyFile
	}

	log := logger.New(cfg)

	strategy, err := screenconfig.LoadOrDefault(cfg.StrategyFile)
	if err != nil {
		return nil, fmt.Errorf("load strategy: %w", err)
	}
	if hash, err := screenconfig.Hash(strategy); err == nil {
		log.WithFields(map[string]interface{}{
			"file": cfg.StrategyFile,
			"hash": hash[:12],
		}).Info("Strategy loaded")
	}

	d := &deps{cfg: cfg, log: log, strategy: strategy}

	d.redisClient, err = redis.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	if d.redisClient.Enabled() {
		d.cache = redis.NewCache(d.redisClient, "valuescreen")
	}

	if cfg.Database.Enabled {
		d.db, err = database.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		d.repo = universe.NewRepository(d.db.Pool)
	} else if requireDB {
		return nil, fmt.Errorf("DATABASE_URL is required for this command")
	}

	d.httpClient = httputil.New(cfg, log)
	if d.redisClient.Enabled() {
		limiter := redis.NewRateLimiter(d.redisClient, "valuescreen")
		d.httpClient = d.httpClient.WithSharedRateLimiter(limiter, redis.ProviderRateLimit)
	}

	d.provider = yahoo.New(d.httpClient, cfg.Provider.BaseURL, log)
	if d.cache != nil {
		d.provider = provider.NewCached(d.provider, d.cache,
			cfg.Provider.FundamentalTTL, cfg.Provider.PriceTTL, log)
	}
	d.collector = provider.NewCollector(d.provider, cfg.Provider.Workers, log)

	d.resolver = universe.NewResolver(d.cache, d.repo, log)
	d.engine = metrics.NewEngine(log, quality.NewLogReporter(log))

	return d, nil
}

// close releases held connections.
func (d *deps) close() {
	if d.db != nil {
		d.db.Close()
	}
	if d.redisClient != nil {
		d.redisClient.Close()
	}
}
