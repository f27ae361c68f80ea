// internal/repository/postgres/parlay_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"paperbook/internal/domain"
	"paperbook/internal/repository"
	"paperbook/internal/util"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const parlayColumns = `id, user_id, stake, combined_odds, potential_payout, status, settled_at, created_at, updated_at`

const legColumns = `id, parlay_id, event_id, sport_key, home_team, away_team, commence_time,
	bet_type, selection, odds, status, created_at`

// ParlayRepository implements repository.ParlayRepository for PostgreSQL.
type ParlayRepository struct{}

// NewParlayRepository creates a new ParlayRepository.
func NewParlayRepository(db *sqlx.DB) repository.ParlayRepository {
	return &ParlayRepository{}
}

// CreateParlay inserts a parlay and its legs using the provided DBExecutor.
// The caller is responsible for running this inside a transaction.
func (r *ParlayRepository) CreateParlay(ctx context.Context, q repository.DBExecutor, parlay *domain.Parlay, legs []domain.ParlayLeg) error {
	query := `INSERT INTO parlays (user_id, stake, combined_odds, potential_payout, status, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		parlay.UserID, parlay.Stake, parlay.CombinedOdds, parlay.PotentialPayout, parlay.Status,
		parlay.CreatedAt, parlay.UpdatedAt,
	).Scan(&parlay.ID)
	if err != nil {
		return fmt.Errorf("failed to create parlay: %w", err)
	}

	legQuery := `INSERT INTO parlay_legs (parlay_id, event_id, sport_key, home_team, away_team, commence_time,
                   bet_type, selection, odds, status, created_at)
                 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	for i := range legs {
		leg := &legs[i]
		leg.ParlayID = parlay.ID
		err := q.QueryRowContext(ctx, legQuery,
			leg.ParlayID, leg.EventID, leg.SportKey, leg.HomeTeam, leg.AwayTeam, leg.CommenceTime,
			leg.BetType, leg.Selection, leg.Odds, leg.Status, leg.CreatedAt,
		).Scan(&leg.ID)
		if err != nil {
			return fmt.Errorf("failed to create parlay leg %d: %w", i, err)
		}
	}

	parlay.Legs = legs
	return nil
}

// GetParlayByID retrieves a parlay (without legs) by its ID.
func (r *ParlayRepository) GetParlayByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Parlay, error) {
	var parlay domain.Parlay
	query := `SELECT ` + parlayColumns + ` FROM parlays WHERE id = $1`
	err := q.GetContext(ctx, &parlay, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get parlay by ID %d: %w", id, err)
	}
	return &parlay, nil
}

// GetParlaysByUserID retrieves a user's parlays with their legs, newest first.
func (r *ParlayRepository) GetParlaysByUserID(ctx context.Context, q repository.DBExecutor, userID int64, limit int) ([]domain.Parlay, error) {
	parlays := []domain.Parlay{}
	query := `SELECT ` + parlayColumns + ` FROM parlays WHERE user_id = $1 ORDER BY created_at DESC, id DESC`
	var err error
	if limit > 0 {
		err = q.SelectContext(ctx, &parlays, query+` LIMIT $2`, userID, limit)
	} else {
		err = q.SelectContext(ctx, &parlays, query, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch parlays for user %d: %w", userID, err)
	}

	for i := range parlays {
		legs, err := r.GetLegsByParlayID(ctx, q, parlays[i].ID)
		if err != nil {
			return nil, err
		}
		parlays[i].Legs = legs
	}
	return parlays, nil
}

// GetLegsByParlayID retrieves a parlay's legs in insertion order.
func (r *ParlayRepository) GetLegsByParlayID(ctx context.Context, q repository.DBExecutor, parlayID int64) ([]domain.ParlayLeg, error) {
	legs := []domain.ParlayLeg{}
	query := `SELECT ` + legColumns + ` FROM parlay_legs WHERE parlay_id = $1 ORDER BY id ASC`
	err := q.SelectContext(ctx, &legs, query, parlayID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch legs for parlay %d: %w", parlayID, err)
	}
	return legs, nil
}

// GetLegByID retrieves a single leg by its ID.
func (r *ParlayRepository) GetLegByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.ParlayLeg, error) {
	var leg domain.ParlayLeg
	query := `SELECT ` + legColumns + ` FROM parlay_legs WHERE id = $1`
	err := q.GetContext(ctx, &leg, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get parlay leg by ID %d: %w", id, err)
	}
	return &leg, nil
}

// UpdateParlayStatus records the terminal status and settlement time.
func (r *ParlayRepository) UpdateParlayStatus(ctx context.Context, q repository.DBExecutor, parlayID int64, status domain.BetStatus, settledAt time.Time) error {
	query := `UPDATE parlays SET status = $1, settled_at = $2, updated_at = $3 WHERE id = $4`
	res, err := q.ExecContext(ctx, query, status, settledAt, time.Now().UTC(), parlayID)
	if err != nil {
		return fmt.Errorf("failed to update status for parlay %d: %w", parlayID, err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating parlay %d: %w", parlayID, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// UpdateLegStatus records a leg's bookkeeping status.
func (r *ParlayRepository) UpdateLegStatus(ctx context.Context, q repository.DBExecutor, legID int64, status domain.BetStatus) error {
	query := `UPDATE parlay_legs SET status = $1 WHERE id = $2`
	res, err := q.ExecContext(ctx, query, status, legID)
	if err != nil {
		return fmt.Errorf("failed to update status for parlay leg %d: %w", legID, err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating parlay leg %d: %w", legID, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// SumStakeSince totals the stakes of parlays placed at or after the given time.
func (r *ParlayRepository) SumStakeSince(ctx context.Context, q repository.DBExecutor, userID int64, since time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `SELECT COALESCE(SUM(stake), 0) FROM parlays WHERE user_id = $1 AND created_at >= $2`
	err := q.GetContext(ctx, &total, query, userID, since)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum parlay stakes for user %d: %w", userID, err)
	}
	return total, nil
}
