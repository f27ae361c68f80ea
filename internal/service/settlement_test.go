// internal/service/settlement_test.go
package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"paperbook/internal/domain"
	"paperbook/internal/util"
)

func finishedGame(homeScore, awayScore int) domain.CompletedGame {
	return domain.CompletedGame{
		ID:        "game-1",
		SportKey:  "basketball_nba",
		HomeTeam:  "Los Angeles Lakers",
		AwayTeam:  "Boston Celtics",
		HomeScore: homeScore,
		AwayScore: awayScore,
		Completed: true,
	}
}

func TestEvaluateMoneyline(t *testing.T) {
	tests := []struct {
		name      string
		selection string
		homeScore int
		awayScore int
		want      domain.BetStatus
	}{
		{"home team wins", "Los Angeles Lakers", 110, 99, domain.BetStatusWon},
		{"home team loses", "Los Angeles Lakers", 99, 110, domain.BetStatusLost},
		{"away team wins", "Boston Celtics", 99, 110, domain.BetStatusWon},
		{"tie is a push", "Los Angeles Lakers", 100, 100, domain.BetStatusPush},
		{"selection with odds suffix still matches", "Los Angeles Lakers ML -150", 110, 99, domain.BetStatusWon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, err := EvaluateBet(domain.BetTypeMoneyline, tt.selection,
				"Los Angeles Lakers", "Boston Celtics", finishedGame(tt.homeScore, tt.awayScore))
			assert.NoError(t, err)
			assert.Equal(t, tt.want, status)
		})
	}
}

func TestEvaluateSpread(t *testing.T) {
	tests := []struct {
		name      string
		selection string
		homeScore int
		awayScore int
		want      domain.BetStatus
	}{
		// home 110 - 105: Lakers -3.5 covers (110 - 3.5 = 106.5 > 105)
		{"home favorite covers", "Los Angeles Lakers -3.5", 110, 105, domain.BetStatusWon},
		// home 107 - 105: Lakers -3.5 fails (103.5 < 105)
		{"home favorite fails to cover", "Los Angeles Lakers -3.5", 107, 105, domain.BetStatusLost},
		// away 105 + 7.5 = 112.5 > 110
		{"away underdog covers", "Boston Celtics +7.5", 110, 105, domain.BetStatusWon},
		// exact cover is a push: home 108 - 105 with -3
		{"exact line is a push", "Los Angeles Lakers -3", 108, 105, domain.BetStatusPush},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, err := EvaluateBet(domain.BetTypeSpread, tt.selection,
				"Los Angeles Lakers", "Boston Celtics", finishedGame(tt.homeScore, tt.awayScore))
			assert.NoError(t, err)
			assert.Equal(t, tt.want, status)
		})
	}
}

func TestEvaluateSpreadUnresolved(t *testing.T) {
	_, err := EvaluateBet(domain.BetTypeSpread, "Los Angeles Lakers",
		"Los Angeles Lakers", "Boston Celtics", finishedGame(110, 99))
	assert.ErrorIs(t, err, util.ErrUnresolvedBet)
}

func TestEvaluateTotal(t *testing.T) {
	tests := []struct {
		name      string
		selection string
		homeScore int
		awayScore int
		want      domain.BetStatus
	}{
		{"over hits", "Over 210.5", 110, 105, domain.BetStatusWon},
		{"over misses", "Over 220.5", 110, 105, domain.BetStatusLost},
		{"under hits", "Under 220.5", 110, 105, domain.BetStatusWon},
		{"under misses", "under 210.5", 110, 105, domain.BetStatusLost},
		{"exact total is a push", "Over 215", 110, 105, domain.BetStatusPush},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, err := EvaluateBet(domain.BetTypeTotal, tt.selection,
				"Los Angeles Lakers", "Boston Celtics", finishedGame(tt.homeScore, tt.awayScore))
			assert.NoError(t, err)
			assert.Equal(t, tt.want, status)
		})
	}
}

func TestEvaluateTotalUnresolved(t *testing.T) {
	_, err := EvaluateBet(domain.BetTypeTotal, "Over",
		"Los Angeles Lakers", "Boston Celtics", finishedGame(110, 105))
	assert.ErrorIs(t, err, util.ErrUnresolvedBet)
}

func TestFindGameResult(t *testing.T) {
	games := []domain.CompletedGame{
		finishedGame(110, 99),
		{
			ID:       "game-2",
			HomeTeam: "Miami Heat",
			AwayTeam: "Chicago Bulls",
		},
	}

	t.Run("matches by event id", func(t *testing.T) {
		game := FindGameResult(games, "game-2", "", "")
		assert.NotNil(t, game)
		assert.Equal(t, "Miami Heat", game.HomeTeam)
	})

	t.Run("matches by team pairing", func(t *testing.T) {
		game := FindGameResult(games, "other-id", "Los Angeles Lakers", "Boston Celtics")
		assert.NotNil(t, game)
		assert.Equal(t, "game-1", game.ID)
	})

	t.Run("no match", func(t *testing.T) {
		game := FindGameResult(games, "missing", "Denver Nuggets", "Utah Jazz")
		assert.Nil(t, game)
	})
}

func TestGameResultText(t *testing.T) {
	assert.Equal(t, "Los Angeles Lakers 110 - 99 Boston Celtics", GameResultText(finishedGame(110, 99)))
}
