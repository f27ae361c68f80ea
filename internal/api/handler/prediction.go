// internal/api/handler/prediction.go
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"paperbook/internal/service"
)

// PredictionHandler handles HTTP requests for model predictions.
type PredictionHandler struct {
	service service.PredictionService
	logger  *slog.Logger
}

// NewPredictionHandler creates a new PredictionHandler.
func NewPredictionHandler(svc service.PredictionService, logger *slog.Logger) *PredictionHandler {
	return &PredictionHandler{
		service: svc,
		logger:  logger,
	}
}

// GetPredictions handles the per-sport predictions request.
// GET /sports/{sportKey}/predictions
func (h *PredictionHandler) GetPredictions(w http.ResponseWriter, r *http.Request) {
	sportKey := chi.URLParam(r, "sportKey")

	results, err := h.service.GenerateForSport(r.Context(), sportKey)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, results)
}

// GetPrediction handles the single-event prediction request.
// GET /sports/{sportKey}/predictions/{eventID}
func (h *PredictionHandler) GetPrediction(w http.ResponseWriter, r *http.Request) {
	sportKey := chi.URLParam(r, "sportKey")
	eventID := chi.URLParam(r, "eventID")

	result, err := h.service.GenerateForEvent(r.Context(), sportKey, eventID)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}
