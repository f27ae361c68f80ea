// internal/api/handler/bet.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"paperbook/internal/domain"
	"paperbook/internal/service"
	"paperbook/internal/util"
)

// BetHandler handles HTTP requests for the wager lifecycle.
type BetHandler struct {
	service service.BetService
	logger  *slog.Logger
}

// NewBetHandler creates a new BetHandler.
func NewBetHandler(svc service.BetService, logger *slog.Logger) *BetHandler {
	return &BetHandler{
		service: svc,
		logger:  logger,
	}
}

// PlaceBetRequest represents the request body for placing a bet.
type PlaceBetRequest struct {
	EventID      string          `json:"event_id"`
	SportKey     string          `json:"sport_key"`
	HomeTeam     string          `json:"home_team"`
	AwayTeam     string          `json:"away_team"`
	CommenceTime time.Time       `json:"commence_time"`
	BetType      string          `json:"bet_type"`
	Selection    string          `json:"selection"`
	Odds         float64         `json:"odds"`
	Stake        decimal.Decimal `json:"stake"`
}

// PlaceBet handles the place bet request.
// POST /users/{userID}/bets
func (h *BetHandler) PlaceBet(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		respondWithError(w, err)
		return
	}

	var req PlaceBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, util.ErrInvalidInput)
		return
	}

	bet, wallet, err := h.service.PlaceBet(r.Context(), userID, service.PlaceBetInput{
		EventID:      req.EventID,
		SportKey:     req.SportKey,
		HomeTeam:     req.HomeTeam,
		AwayTeam:     req.AwayTeam,
		CommenceTime: req.CommenceTime,
		BetType:      domain.BetType(req.BetType),
		Selection:    req.Selection,
		Odds:         req.Odds,
		Stake:        req.Stake,
	})
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"bet":         bet,
		"new_balance": wallet.Balance,
	})
}

// GetBets handles the bet history request.
// GET /users/{userID}/bets
func (h *BetHandler) GetBets(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		respondWithError(w, err)
		return
	}

	limit, _ := paginationParams(r, 50)

	bets, err := h.service.GetBets(r.Context(), userID, limit)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, bets)
}

// GetPendingBets handles the open bets request.
// GET /users/{userID}/bets/pending
func (h *BetHandler) GetPendingBets(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		respondWithError(w, err)
		return
	}

	bets, err := h.service.GetPendingBets(r.Context(), userID)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, bets)
}

// SettleRequest represents the request body for manual settlement.
type SettleRequest struct {
	Status string  `json:"status"`
	Result *string `json:"result,omitempty"`
}

// SettleBet handles the manual bet settlement request.
// POST /users/{userID}/bets/{betID}/settle
func (h *BetHandler) SettleBet(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		respondWithError(w, err)
		return
	}
	betID, err := strconv.ParseInt(chi.URLParam(r, "betID"), 10, 64)
	if err != nil {
		respondWithError(w, util.ErrInvalidInput)
		return
	}

	var req SettleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, util.ErrInvalidInput)
		return
	}

	bet, err := h.service.SettleBet(r.Context(), userID, betID, domain.BetStatus(req.Status), req.Result)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, bet)
}

// AutoSettle handles the automatic settlement request.
// POST /users/{userID}/bets/auto-settle
func (h *BetHandler) AutoSettle(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		respondWithError(w, err)
		return
	}

	report, err := h.service.AutoSettle(r.Context(), userID)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, report)
}

// ParlayLegRequest is one leg of a parlay placement request.
type ParlayLegRequest struct {
	EventID      string    `json:"event_id"`
	SportKey     string    `json:"sport_key"`
	HomeTeam     string    `json:"home_team"`
	AwayTeam     string    `json:"away_team"`
	CommenceTime time.Time `json:"commence_time"`
	BetType      string    `json:"bet_type"`
	Selection    string    `json:"selection"`
	Odds         float64   `json:"odds"`
}

// PlaceParlayRequest represents the request body for placing a parlay.
type PlaceParlayRequest struct {
	Stake decimal.Decimal    `json:"stake"`
	Legs  []ParlayLegRequest `json:"legs"`
}

// PlaceParlay handles the place parlay request.
// POST /users/{userID}/parlays
func (h *BetHandler) PlaceParlay(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		respondWithError(w, err)
		return
	}

	var req PlaceParlayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, util.ErrInvalidInput)
		return
	}

	legs := make([]service.ParlayLegInput, 0, len(req.Legs))
	for _, leg := range req.Legs {
		legs = append(legs, service.ParlayLegInput{
			EventID:      leg.EventID,
			SportKey:     leg.SportKey,
			HomeTeam:     leg.HomeTeam,
			AwayTeam:     leg.AwayTeam,
			CommenceTime: leg.CommenceTime,
			BetType:      domain.BetType(leg.BetType),
			Selection:    leg.Selection,
			Odds:         leg.Odds,
		})
	}

	parlay, wallet, err := h.service.PlaceParlay(r.Context(), userID, req.Stake, legs)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"parlay":      parlay,
		"new_balance": wallet.Balance,
	})
}

// GetParlays handles the parlay history request.
// GET /users/{userID}/parlays
func (h *BetHandler) GetParlays(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		respondWithError(w, err)
		return
	}

	limit, _ := paginationParams(r, 50)

	parlays, err := h.service.GetParlays(r.Context(), userID, limit)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, parlays)
}

// SettleParlay handles the manual parlay settlement request.
// POST /users/{userID}/parlays/{parlayID}/settle
func (h *BetHandler) SettleParlay(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		respondWithError(w, err)
		return
	}
	parlayID, err := strconv.ParseInt(chi.URLParam(r, "parlayID"), 10, 64)
	if err != nil {
		respondWithError(w, util.ErrInvalidInput)
		return
	}

	var req SettleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, util.ErrInvalidInput)
		return
	}

	parlay, err := h.service.SettleParlay(r.Context(), userID, parlayID, domain.BetStatus(req.Status))
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, parlay)
}

// SettleParlayLeg handles the leg bookkeeping settlement request.
// POST /users/{userID}/parlays/legs/{legID}/settle
func (h *BetHandler) SettleParlayLeg(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		respondWithError(w, err)
		return
	}
	legID, err := strconv.ParseInt(chi.URLParam(r, "legID"), 10, 64)
	if err != nil {
		respondWithError(w, util.ErrInvalidInput)
		return
	}

	var req SettleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, util.ErrInvalidInput)
		return
	}

	if err := h.service.SettleParlayLeg(r.Context(), userID, legID, domain.BetStatus(req.Status)); err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Leg updated"})
}

// GetStats handles the betting record summary request.
// GET /users/{userID}/stats
func (h *BetHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		respondWithError(w, err)
		return
	}

	stats, err := h.service.GetStats(r.Context(), userID)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}

// GetProfitHistory handles the daily profit series request.
// GET /users/{userID}/stats/profit-history?days=30
func (h *BetHandler) GetProfitHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		respondWithError(w, err)
		return
	}

	days, err := strconv.Atoi(r.URL.Query().Get("days"))
	if err != nil || days <= 0 {
		days = 30
	}

	points, err := h.service.GetProfitHistory(r.Context(), userID, days)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, points)
}

// GetStatsBySport handles the per-sport record request.
// GET /users/{userID}/stats/by-sport
func (h *BetHandler) GetStatsBySport(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		respondWithError(w, err)
		return
	}

	stats, err := h.service.GetStatsBySport(r.Context(), userID)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}
