// internal/api/handler/preferences.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"paperbook/internal/domain"
	"paperbook/internal/service"
	"paperbook/internal/util"
)

// PreferencesHandler handles HTTP requests for user preferences.
type PreferencesHandler struct {
	service service.PreferencesService
	logger  *slog.Logger
}

// NewPreferencesHandler creates a new PreferencesHandler.
func NewPreferencesHandler(svc service.PreferencesService, logger *slog.Logger) *PreferencesHandler {
	return &PreferencesHandler{
		service: svc,
		logger:  logger,
	}
}

// GetPreferences handles the get preferences request, creating the
// default profile on first access.
// GET /users/{userID}/preferences
func (h *PreferencesHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		respondWithError(w, err)
		return
	}

	prefs, err := h.service.GetPreferences(r.Context(), userID)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, prefs)
}

// UpdatePreferences handles the partial preferences update request.
// PUT /users/{userID}/preferences
func (h *PreferencesHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		respondWithError(w, err)
		return
	}

	var update domain.PreferencesUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondWithError(w, util.ErrInvalidInput)
		return
	}

	prefs, err := h.service.UpdatePreferences(r.Context(), userID, update)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, prefs)
}
