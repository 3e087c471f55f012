package handlers

import (
	"net/http"
	"strconv"

	"github.com/quantlab/valuescreen/internal/contracts"
	"github.com/quantlab/valuescreen/internal/metrics"
	"github.com/quantlab/valuescreen/internal/provider"
	"github.com/quantlab/valuescreen/internal/screenconfig"
	"github.com/quantlab/valuescreen/internal/screening"
	"github.com/quantlab/valuescreen/internal/universe"
	"github.com/quantlab/valuescreen/pkg/logger"
)

// ScreenHandler runs the full screen for a market: resolve the
// universe, collect snapshots, filter and rank.
type ScreenHandler struct {
	resolver  *universe.Resolver
	collector *provider.Collector
	engine    *metrics.Engine
	cfg       *screenconfig.Config
	logger    *logger.Logger
}

// NewScreenHandler creates a screen handler.
func NewScreenHandler(
	resolver *universe.Resolver,
	col *provider.Collector,
	engine *metrics.Engine,
	cfg *screenconfig.Config,
	log *logger.Logger,
) *ScreenHandler {
	return &ScreenHandler{
		resolver:  resolver,
		collector: col,
		engine:    engine,
		cfg:       cfg,
		logger:    log,
	}
}

// ScreenResponse is the screen endpoint payload.
type ScreenResponse struct {
	Market   string                      `json:"market"`
	Universe int                         `json:"universe"`
	Fetched  int                         `json:"fetched"`
	Failed   int                         `json:"failed"`
	Hybrid   bool                        `json:"hybrid"`
	Results  []contracts.ScreeningResult `json:"results"`
	Summary  screening.Summary           `json:"summary"`
}

// Screen runs a screening pass.
// GET /api/screen?market=SP500&limit=50&hybrid=true
func (h *ScreenHandler) Screen(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	market := r.URL.Query().Get("market")
	if market == "" {
		market = "SP500"
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, "Invalid 'limit' (expected non-negative integer)")
			return
		}
		limit = n
	}

	cfg := *h.cfg
	if raw := r.URL.Query().Get("hybrid"); raw != "" {
		hybrid, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid 'hybrid' (expected true or false)")
			return
		}
		cfg.Ranking.Hybrid = hybrid
	}

	constituents, err := h.resolver.Resolve(ctx, market, limit)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	results := h.collector.Collect(ctx, universe.Symbols(market, constituents), provider.DefaultPriceDays)

	candidates := make([]screening.Candidate, 0, len(results))
	var failed int
	for _, res := range results {
		if res.Err != nil || res.Snapshot == nil {
			failed++
			continue
		}
		res.Snapshot.Market = market
		candidates = append(candidates, screening.Candidate{
			Snapshot: res.Snapshot,
			Prices:   res.Prices,
		})
	}

	pipeline := screening.NewPipeline(h.logger, h.engine, &cfg)
	outcome := pipeline.Run(candidates)

	respondJSON(w, http.StatusOK, ScreenResponse{
		Market:   market,
		Universe: len(constituents),
		Fetched:  len(candidates),
		Failed:   failed,
		Hybrid:   cfg.Ranking.Hybrid,
		Results:  outcome.Results,
		Summary:  outcome.Summary,
	})
}
