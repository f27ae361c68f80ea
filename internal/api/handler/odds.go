// internal/api/handler/odds.go
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"paperbook/internal/domain"
	"paperbook/internal/provider/theodds"
)

// OddsHandler handles HTTP requests for sports, odds, and feed quota.
type OddsHandler struct {
	client *theodds.Client
	logger *slog.Logger
}

// NewOddsHandler creates a new OddsHandler.
func NewOddsHandler(client *theodds.Client, logger *slog.Logger) *OddsHandler {
	return &OddsHandler{
		client: client,
		logger: logger,
	}
}

// ListSports handles the supported sports request.
// GET /sports
func (h *OddsHandler) ListSports(w http.ResponseWriter, r *http.Request) {
	sports, err := h.client.GetSports(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, sports)
}

// GetOdds handles the upcoming events request for one sport.
// GET /sports/{sportKey}/odds
func (h *OddsHandler) GetOdds(w http.ResponseWriter, r *http.Request) {
	sportKey := chi.URLParam(r, "sportKey")

	events, err := h.client.GetOdds(r.Context(), sportKey)
	if err != nil {
		respondWithError(w, err)
		return
	}
	if events == nil {
		events = []domain.Event{}
	}

	respondWithJSON(w, http.StatusOK, events)
}

// GetQuota handles the feed quota request.
// GET /quota
func (h *OddsHandler) GetQuota(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.client.Quota())
}
