// internal/domain/bet.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BetType defines the market a wager is placed on.
type BetType string

const (
	BetTypeMoneyline BetType = "moneyline"
	BetTypeSpread    BetType = "spread"
	BetTypeTotal     BetType = "total"
)

// BetStatus defines the lifecycle state of a wager. Pending is the
// initial state; all others are terminal.
type BetStatus string

const (
	BetStatusPending   BetStatus = "pending"
	BetStatusWon       BetStatus = "won"
	BetStatusLost      BetStatus = "lost"
	BetStatusPush      BetStatus = "push"
	BetStatusCancelled BetStatus = "cancelled"
)

// Terminal reports whether the status ends the wager's lifecycle.
func (s BetStatus) Terminal() bool {
	return s != BetStatusPending
}

// Bet is a single-selection stake on one event. PotentialPayout is
// fixed at creation and never recomputed.
type Bet struct {
	ID              int64           `db:"id" json:"id"`
	UserID          int64           `db:"user_id" json:"user_id"`
	EventID         string          `db:"event_id" json:"event_id"`
	SportKey        string          `db:"sport_key" json:"sport_key"`
	HomeTeam        string          `db:"home_team" json:"home_team"`
	AwayTeam        string          `db:"away_team" json:"away_team"`
	CommenceTime    time.Time       `db:"commence_time" json:"commence_time"`
	BetType         BetType         `db:"bet_type" json:"bet_type"`
	Selection       string          `db:"selection" json:"selection"`
	Odds            decimal.Decimal `db:"odds" json:"odds"`
	Stake           decimal.Decimal `db:"stake" json:"stake"`
	PotentialPayout decimal.Decimal `db:"potential_payout" json:"potential_payout"`
	Status          BetStatus       `db:"status" json:"status"`
	Result          *string         `db:"result" json:"result"`
	SettledAt       *time.Time      `db:"settled_at" json:"settled_at"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

// NewBet creates a new pending Bet instance.
func NewBet(
	userID int64,
	eventID, sportKey, homeTeam, awayTeam string,
	commenceTime time.Time,
	betType BetType,
	selection string,
	odds, stake, potentialPayout decimal.Decimal,
) *Bet {
	now := time.Now().UTC()
	return &Bet{
		UserID:          userID,
		EventID:         eventID,
		SportKey:        sportKey,
		HomeTeam:        homeTeam,
		AwayTeam:        awayTeam,
		CommenceTime:    commenceTime,
		BetType:         betType,
		Selection:       selection,
		Odds:            odds,
		Stake:           stake,
		PotentialPayout: potentialPayout,
		Status:          BetStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
