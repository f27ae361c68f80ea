// internal/domain/preferences.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RiskTolerance describes a user's self-declared appetite for risk.
type RiskTolerance string

const (
	RiskToleranceConservative RiskTolerance = "conservative"
	RiskToleranceModerate     RiskTolerance = "moderate"
	RiskToleranceAggressive   RiskTolerance = "aggressive"
)

// UserPreferences holds per-user betting preferences. The bet limits
// are advisory context unless limit enforcement is enabled in config.
type UserPreferences struct {
	ID                   int64           `db:"id" json:"id"`
	UserID               int64           `db:"user_id" json:"user_id"`
	RiskTolerance        RiskTolerance   `db:"risk_tolerance" json:"risk_tolerance"`
	MaxBetAmount         decimal.Decimal `db:"max_bet_amount" json:"max_bet_amount"`
	DailyBetLimit        decimal.Decimal `db:"daily_bet_limit" json:"daily_bet_limit"`
	NotificationsEnabled bool            `db:"notifications_enabled" json:"notifications_enabled"`
	CreatedAt            time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time       `db:"updated_at" json:"updated_at"`
}

// NewUserPreferences creates preferences with the default risk profile.
func NewUserPreferences(userID int64) *UserPreferences {
	now := time.Now().UTC()
	return &UserPreferences{
		UserID:               userID,
		RiskTolerance:        RiskToleranceModerate,
		MaxBetAmount:         decimal.RequireFromString("100.00"),
		DailyBetLimit:        decimal.RequireFromString("500.00"),
		NotificationsEnabled: true,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// PreferencesUpdate is a partial update; nil fields are left unchanged.
type PreferencesUpdate struct {
	RiskTolerance        *RiskTolerance   `json:"risk_tolerance"`
	MaxBetAmount         *decimal.Decimal `json:"max_bet_amount"`
	DailyBetLimit        *decimal.Decimal `json:"daily_bet_limit"`
	NotificationsEnabled *bool            `json:"notifications_enabled"`
}
