// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"paperbook/internal/api/handler"
)

// Handlers bundles the HTTP handlers the router mounts.
type Handlers struct {
	User        *handler.UserHandler
	Wallet      *handler.WalletHandler
	Bet         *handler.BetHandler
	Odds        *handler.OddsHandler
	Prediction  *handler.PredictionHandler
	Preferences *handler.PreferencesHandler
}

// NewRouter sets up and returns a new HTTP router.
func NewRouter(h Handlers, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Post("/users", h.User.CreateUser)
	r.Route("/users/{userID}", func(r chi.Router) {
		r.Get("/", h.User.GetUser)

		r.Route("/wallet", func(r chi.Router) {
			r.Get("/", h.Wallet.GetWallet)
			r.Post("/deposit", h.Wallet.Deposit)
			r.Post("/withdraw", h.Wallet.Withdraw)
			r.Get("/transactions", h.Wallet.GetTransactions)
		})

		r.Route("/bets", func(r chi.Router) {
			r.Post("/", h.Bet.PlaceBet)
			r.Get("/", h.Bet.GetBets)
			r.Get("/pending", h.Bet.GetPendingBets)
			r.Post("/auto-settle", h.Bet.AutoSettle)
			r.Post("/{betID}/settle", h.Bet.SettleBet)
		})

		r.Route("/parlays", func(r chi.Router) {
			r.Post("/", h.Bet.PlaceParlay)
			r.Get("/", h.Bet.GetParlays)
			r.Post("/{parlayID}/settle", h.Bet.SettleParlay)
			r.Post("/legs/{legID}/settle", h.Bet.SettleParlayLeg)
		})

		r.Route("/stats", func(r chi.Router) {
			r.Get("/", h.Bet.GetStats)
			r.Get("/profit-history", h.Bet.GetProfitHistory)
			r.Get("/by-sport", h.Bet.GetStatsBySport)
		})

		r.Get("/preferences", h.Preferences.GetPreferences)
		r.Put("/preferences", h.Preferences.UpdatePreferences)
	})

	r.Get("/sports", h.Odds.ListSports)
	r.Route("/sports/{sportKey}", func(r chi.Router) {
		r.Get("/odds", h.Odds.GetOdds)
		r.Get("/predictions", h.Prediction.GetPredictions)
		r.Get("/predictions/{eventID}", h.Prediction.GetPrediction)
	})

	r.Get("/quota", h.Odds.GetQuota)

	return r
}
