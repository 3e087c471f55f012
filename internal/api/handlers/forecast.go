package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/quantlab/valuescreen/internal/forecast"
	"github.com/quantlab/valuescreen/internal/provider"
	"github.com/quantlab/valuescreen/internal/universe"
	"github.com/quantlab/valuescreen/pkg/logger"
)

// ForecastHandler serves per-company composite forecasts.
type ForecastHandler struct {
	provider provider.Provider
	engine   *forecast.Engine
	logger   *logger.Logger
}

// NewForecastHandler creates a forecast handler.
func NewForecastHandler(p provider.Provider, engine *forecast.Engine, log *logger.Logger) *ForecastHandler {
	return &ForecastHandler{
		provider: p,
		engine:   engine,
		logger:   log,
	}
}

// Forecast builds the composite forecast for one company.
// GET /api/forecast/{ticker}?market=SP500
func (h *ForecastHandler) Forecast(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ticker := mux.Vars(r)["ticker"]

	market := r.URL.Query().Get("market")
	if market == "" {
		market = "SP500"
	}
	if !universe.Valid(market) {
		respondError(w, http.StatusBadRequest, "Unknown market")
		return
	}

	symbol := universe.Symbol(market, ticker)

	snap, err := h.provider.Snapshot(ctx, symbol)
	if err != nil {
		switch {
		case provider.IsMissing(err), provider.IsEmpty(err):
			respondError(w, http.StatusNotFound, "No data for ticker")
		case provider.IsTransient(err):
			respondError(w, http.StatusBadGateway, "Data source unavailable")
		default:
			h.logger.WithError(err).WithField("ticker", symbol).Error("Snapshot fetch failed")
			respondError(w, http.StatusInternalServerError, "Failed to fetch snapshot")
		}
		return
	}
	snap.Market = market

	bars, err := h.provider.Prices(ctx, symbol, provider.DefaultPriceDays)
	if err != nil {
		// Risk metrics degrade without history; the forecast still runs.
		h.logger.WithError(err).WithField("ticker", symbol).Debug("Price history unavailable")
		bars = nil
	}

	fc, err := h.engine.Composite(snap, bars)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, fc)
}
