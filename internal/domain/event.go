// internal/domain/event.go
package domain

import "time"

// Event is a sporting event with bookmaker price tables, as returned
// by the odds feed. JSON tags follow the feed's wire format.
type Event struct {
	ID           string      `json:"id"`
	SportKey     string      `json:"sport_key"`
	SportTitle   string      `json:"sport_title"`
	CommenceTime time.Time   `json:"commence_time"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	Bookmakers   []Bookmaker `json:"bookmakers"`
}

// Bookmaker is one book's set of markets for an event.
type Bookmaker struct {
	Key     string   `json:"key"`
	Title   string   `json:"title"`
	Markets []Market `json:"markets"`
}

// Market keys used by the odds feed.
const (
	MarketH2H     = "h2h"
	MarketSpreads = "spreads"
	MarketTotals  = "totals"
)

// Market is a single priced market (h2h, spreads, totals).
type Market struct {
	Key      string    `json:"key"`
	Outcomes []Outcome `json:"outcomes"`
}

// Outcome is one priced side of a market. Price is American odds;
// Point carries the spread or total line where applicable.
type Outcome struct {
	Name  string   `json:"name"`
	Price float64  `json:"price"`
	Point *float64 `json:"point,omitempty"`
}

// CompletedGame is a finished event with final scores, used for
// automatic settlement matching.
type CompletedGame struct {
	ID           string    `json:"id"`
	SportKey     string    `json:"sport_key"`
	HomeTeam     string    `json:"home_team"`
	AwayTeam     string    `json:"away_team"`
	HomeScore    int       `json:"home_score"`
	AwayScore    int       `json:"away_score"`
	Completed    bool      `json:"completed"`
	CommenceTime time.Time `json:"commence_time"`
}
