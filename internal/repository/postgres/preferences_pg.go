// internal/repository/postgres/preferences_pg.go
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
)

// PreferencesRepository implements repository.PreferencesRepository for PostgreSQL.
type PreferencesRepository struct{}

// NewPreferencesRepository creates a new PreferencesRepository.
func NewPreferencesRepository(db *sqlx.DB) repository.PreferencesRepository {
	return &PreferencesRepository{}
}

// CreatePreferences inserts a preferences row using the provided DBExecutor.
func (r *PreferencesRepository) CreatePreferences(ctx context.Context, q repository.DBExecutor, prefs *domain.UserPreferences) error {
	query := `INSERT INTO user_preferences (user_id, risk_tolerance, max_bet_amount, daily_bet_limit, notifications_enabled, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		prefs.UserID, prefs.RiskTolerance, prefs.MaxBetAmount, prefs.DailyBetLimit,
		prefs.NotificationsEnabled, prefs.CreatedAt, prefs.UpdatedAt,
	).Scan(&prefs.ID)
	if err != nil {
		return fmt.Errorf("failed to create user preferences: %w", err)
	}
	return nil
}

// GetPreferencesByUserID retrieves a user's preferences.
func (r *PreferencesRepository) GetPreferencesByUserID(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.UserPreferences, error) {
	var prefs domain.UserPreferences
	query := `SELECT id, user_id, risk_tolerance, max_bet_amount, daily_bet_limit, notifications_enabled, created_at, updated_at
              FROM user_preferences WHERE user_id = $1`
	err := q.GetContext(ctx, &prefs, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get preferences for user %d: %w", userID, err)
	}
	return &prefs, nil
}

// UpdatePreferences applies a partial update; nil fields are unchanged.
func (r *PreferencesRepository) UpdatePreferences(ctx context.Context, q repository.DBExecutor, userID int64, update domain.PreferencesUpdate) error {
	query := `UPDATE user_preferences SET
                risk_tolerance = COALESCE($1, risk_tolerance),
                max_bet_amount = COALESCE($2, max_bet_amount),
                daily_bet_limit = COALESCE($3, daily_bet_limit),
                notifications_enabled = COALESCE($4, notifications_enabled),
                updated_at = $5
              WHERE user_id = $6`
	res, err := q.ExecContext(ctx, query,
		update.RiskTolerance, update.MaxBetAmount, update.DailyBetLimit, update.NotificationsEnabled,
		time.Now().UTC(), userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update preferences for user %d: %w", userID, err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating preferences for user %d: %w", userID, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}
