// internal/repository/bet_repo.go
package repository

import (
	"context"
	"time"

	"paperbook/internal/domain"

	"github.com/shopspring/decimal"
)

// BetRepository defines the interface for single-selection wager data.
type BetRepository interface {
	// CreateBet adds a new bet using the provided DBExecutor.
	CreateBet(ctx context.Context, q DBExecutor, bet *domain.Bet) error
	// GetBetByID retrieves a bet by its ID.
	GetBetByID(ctx context.Context, q DBExecutor, id int64) (*domain.Bet, error)
	// GetBetsByUserID retrieves a user's bets, newest first.
	// A limit <= 0 returns all bets.
	GetBetsByUserID(ctx context.Context, q DBExecutor, userID int64, limit int) ([]domain.Bet, error)
	// GetPendingBetsByUserID retrieves a user's pending bets, newest first.
	GetPendingBetsByUserID(ctx context.Context, q DBExecutor, userID int64) ([]domain.Bet, error)
	// UpdateBetStatus records the terminal status, result text, and
	// settlement time for a bet.
	UpdateBetStatus(ctx context.Context, q DBExecutor, betID int64, status domain.BetStatus, result *string, settledAt time.Time) error
	// GetSettledBetsSince retrieves a user's bets settled at or after
	// the given time, oldest first.
	GetSettledBetsSince(ctx context.Context, q DBExecutor, userID int64, since time.Time) ([]domain.Bet, error)
	// SumStakeSince totals the stakes of bets placed at or after the
	// given time, for daily limit checks.
	SumStakeSince(ctx context.Context, q DBExecutor, userID int64, since time.Time) (decimal.Decimal, error)
}
