// internal/repository/postgres/bet_pg.go
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

const betColumns = `id, user_id, event_id, sport_key, home_team, away_team, commence_time,
	bet_type, selection, odds, stake, potential_payout, status, result, settled_at, created_at, updated_at`

// BetRepository implements repository.BetRepository for PostgreSQL.
type BetRepository struct{}

// NewBetRepository creates a new BetRepository.
func NewBetRepository(db *sqlx.DB) repository.BetRepository {
	return &BetRepository{}
}

// CreateBet inserts a new bet using the provided DBExecutor.
func (r *BetRepository) CreateBet(ctx context.Context, q repository.DBExecutor, bet *domain.Bet) error {
	query := `INSERT INTO bets (user_id, event_id, sport_key, home_team, away_team, commence_time,
                bet_type, selection, odds, stake, potential_payout, status, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		bet.UserID, bet.EventID, bet.SportKey, bet.HomeTeam, bet.AwayTeam, bet.CommenceTime,
		bet.BetType, bet.Selection, bet.Odds, bet.Stake, bet.PotentialPayout, bet.Status,
		bet.CreatedAt, bet.UpdatedAt,
	).Scan(&bet.ID)
	if err != nil {
		return fmt.Errorf("failed to create bet: %w", err)
	}
	return nil
}

// GetBetByID retrieves a bet by its ID using the provided DBExecutor.
func (r *BetRepository) GetBetByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Bet, error) {
	var bet domain.Bet
	query := `SELECT ` + betColumns + ` FROM bets WHERE id = $1`
	err := q.GetContext(ctx, &bet, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get bet by ID %d: %w", id, err)
	}
	return &bet, nil
}

// GetBetsByUserID retrieves a user's bets, newest first. A limit <= 0
// returns all bets.
func (r *BetRepository) GetBetsByUserID(ctx context.Context, q repository.DBExecutor, userID int64, limit int) ([]domain.Bet, error) {
	bets := []domain.Bet{}
	query := `SELECT ` + betColumns + ` FROM bets WHERE user_id = $1 ORDER BY created_at DESC, id DESC`
	var err error
	if limit > 0 {
		err = q.SelectContext(ctx, &bets, query+` LIMIT $2`, userID, limit)
	} else {
		err = q.SelectContext(ctx, &bets, query, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bets for user %d: %w", userID, err)
	}
	return bets, nil
}

// GetPendingBetsByUserID retrieves a user's pending bets, newest first.
func (r *BetRepository) GetPendingBetsByUserID(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.Bet, error) {
	bets := []domain.Bet{}
	query := `SELECT ` + betColumns + ` FROM bets WHERE user_id = $1 AND status = $2 ORDER BY created_at DESC, id DESC`
	err := q.SelectContext(ctx, &bets, query, userID, domain.BetStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pending bets for user %d: %w", userID, err)
	}
	return bets, nil
}

// UpdateBetStatus records the terminal status, result text, and
// settlement time for a bet.
func (r *BetRepository) UpdateBetStatus(ctx context.Context, q repository.DBExecutor, betID int64, status domain.BetStatus, result *string, settledAt time.Time) error {
	query := `UPDATE bets SET status = $1, result = $2, settled_at = $3, updated_at = $4 WHERE id = $5`
	res, err := q.ExecContext(ctx, query, status, result, settledAt, time.Now().UTC(), betID)
	if err != nil {
		return fmt.Errorf("failed to update status for bet %d: %w", betID, err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating bet %d: %w", betID, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// GetSettledBetsSince retrieves a user's settled bets from the given
// time onward, oldest first.
func (r *BetRepository) GetSettledBetsSince(ctx context.Context, q repository.DBExecutor, userID int64, since time.Time) ([]domain.Bet, error) {
	bets := []domain.Bet{}
	query := `SELECT ` + betColumns + ` FROM bets
              WHERE user_id = $1 AND settled_at IS NOT NULL AND settled_at >= $2
              ORDER BY settled_at ASC, id ASC`
	err := q.SelectContext(ctx, &bets, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch settled bets for user %d: %w", userID, err)
	}
	return bets, nil
}

// SumStakeSince totals the stakes of bets placed at or after the given time.
func (r *BetRepository) SumStakeSince(ctx context.Context, q repository.DBExecutor, userID int64, since time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `SELECT COALESCE(SUM(stake), 0) FROM bets WHERE user_id = $1 AND created_at >= $2`
	err := q.GetContext(ctx, &total, query, userID, since)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum bet stakes for user %d: %w", userID, err)
	}
	return total, nil
}
