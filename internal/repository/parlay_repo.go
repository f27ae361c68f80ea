// internal/repository/parlay_repo.go
package repository

import (
	"context"
	"time"

	"paperbook/internal/domain"

	"github.com/shopspring/decimal"
)

// ParlayRepository defines the interface for parlay and leg data.
type ParlayRepository interface {
	// CreateParlay adds a new parlay and its legs using the provided DBExecutor.
	CreateParlay(ctx context.Context, q DBExecutor, parlay *domain.Parlay, legs []domain.ParlayLeg) error
	// GetParlayByID retrieves a parlay (without legs) by its ID.
	GetParlayByID(ctx context.Context, q DBExecutor, id int64) (*domain.Parlay, error)
	// GetParlaysByUserID retrieves a user's parlays with their legs, newest first.
	GetParlaysByUserID(ctx context.Context, q DBExecutor, userID int64, limit int) ([]domain.Parlay, error)
	// GetLegsByParlayID retrieves a parlay's legs in insertion order.
	GetLegsByParlayID(ctx context.Context, q DBExecutor, parlayID int64) ([]domain.ParlayLeg, error)
	// GetLegByID retrieves a single leg by its ID.
	GetLegByID(ctx context.Context, q DBExecutor, id int64) (*domain.ParlayLeg, error)
	// UpdateParlayStatus records the terminal status and settlement time.
	UpdateParlayStatus(ctx context.Context, q DBExecutor, parlayID int64, status domain.BetStatus, settledAt time.Time) error
	// UpdateLegStatus records a leg's bookkeeping status.
	UpdateLegStatus(ctx context.Context, q DBExecutor, legID int64, status domain.BetStatus) error
	// SumStakeSince totals the stakes of parlays placed at or after the
	// given time, for daily limit checks.
	SumStakeSince(ctx context.Context, q DBExecutor, userID int64, since time.Time) (decimal.Decimal, error)
}
