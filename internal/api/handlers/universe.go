package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/quantlab/valuescreen/internal/universe"
)

// UniverseHandler serves resolved constituent lists.
type UniverseHandler struct {
	resolver *universe.Resolver
}

// NewUniverseHandler creates a universe handler.
func NewUniverseHandler(resolver *universe.Resolver) *UniverseHandler {
	return &UniverseHandler{resolver: resolver}
}

// UniverseResponse is the universe endpoint payload.
type UniverseResponse struct {
	Market       string                 `json:"market"`
	Count        int                    `json:"count"`
	Constituents []universe.Constituent `json:"constituents"`
}

// Get returns a market's constituents, largest companies first.
// GET /api/universe/{market}?limit=25
func (h *UniverseHandler) Get(w http.ResponseWriter, r *http.Request) {
	market := mux.Vars(r)["market"]

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, "Invalid 'limit' (expected non-negative integer)")
			return
		}
		limit = n
	}

	constituents, err := h.resolver.Resolve(r.Context(), market, limit)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, UniverseResponse{
		Market:       market,
		Count:        len(constituents),
		Constituents: constituents,
	})
}
