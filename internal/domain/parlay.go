// internal/domain/parlay.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Parlay is a wager composed of two or more legs. The parlay carries
// the stake; legs carry only their selections and odds. Parlay status
// is set by an explicit settlement decision, never derived from leg
// statuses.
type Parlay struct {
	ID              int64           `db:"id" json:"id"`
	UserID          int64           `db:"user_id" json:"user_id"`
	Stake           decimal.Decimal `db:"stake" json:"stake"`
	CombinedOdds    decimal.Decimal `db:"combined_odds" json:"combined_odds"`
	PotentialPayout decimal.Decimal `db:"potential_payout" json:"potential_payout"`
	Status          BetStatus       `db:"status" json:"status"`
	SettledAt       *time.Time      `db:"settled_at" json:"settled_at"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`

	Legs []ParlayLeg `db:"-" json:"legs"`
}

// ParlayLeg is a single selection within a parlay. Its status is
// independent bookkeeping for partial tracking.
type ParlayLeg struct {
	ID           int64           `db:"id" json:"id"`
	ParlayID     int64           `db:"parlay_id" json:"parlay_id"`
	EventID      string          `db:"event_id" json:"event_id"`
	SportKey     string          `db:"sport_key" json:"sport_key"`
	HomeTeam     string          `db:"home_team" json:"home_team"`
	AwayTeam     string          `db:"away_team" json:"away_team"`
	CommenceTime time.Time       `db:"commence_time" json:"commence_time"`
	BetType      BetType         `db:"bet_type" json:"bet_type"`
	Selection    string          `db:"selection" json:"selection"`
	Odds         decimal.Decimal `db:"odds" json:"odds"`
	Status       BetStatus       `db:"status" json:"status"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
}

// NewParlay creates a new pending Parlay instance. Legs are attached
// by the caller before persistence.
func NewParlay(userID int64, stake, combinedOdds, potentialPayout decimal.Decimal) *Parlay {
	now := time.Now().UTC()
	return &Parlay{
		UserID:          userID,
		Stake:           stake,
		CombinedOdds:    combinedOdds,
		PotentialPayout: potentialPayout,
		Status:          BetStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
