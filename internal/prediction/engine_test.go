// internal/prediction/engine_test.go

package prediction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"paperbook/internal/domain"
)

func testEvent() domain.Event {
	return domain.Event{
		ID:           "evt-1001",
		SportKey:     "basketball_nba",
		SportTitle:   "NBA",
		CommenceTime: time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC),
		HomeTeam:     "Boston Celtics",
		AwayTeam:     "Los Angeles Lakers",
		Bookmakers: []domain.Bookmaker{
			{
				Key:   "draftkings",
				Title: "DraftKings",
				Markets: []domain.Market{
					{
						Key: domain.MarketH2H,
						Outcomes: []domain.Outcome{
							{Name: "Boston Celtics", Price: -150},
							{Name: "Los Angeles Lakers", Price: 130},
						},
					},
				},
			},
		},
	}
}

func TestHashStringDeterministic(t *testing.T) {
	assert.Equal(t, 96354, hashString("abc"))
	assert.Equal(t, hashString("Boston Celtics"), hashString("Boston Celtics"))
	assert.NotEqual(t, hashString("Boston Celtics"), hashString("Los Angeles Lakers"))
	assert.GreaterOrEqual(t, hashString("Los Angeles Lakers"), 0)
}

func TestGenerateIsDeterministic(t *testing.T) {
	event := testEvent()
	first := Generate(event)
	second := Generate(event)
	assert.Equal(t, first, second)
}

func TestProbabilitiesSumToOne(t *testing.T) {
	homeWin, awayWin, draw := probabilities("Arsenal", "Chelsea")

	assert.InDelta(t, 1.0, homeWin+awayWin+draw, 1e-9)
	assert.Greater(t, homeWin, 0.0)
	assert.Greater(t, awayWin, 0.0)
	// half the draw factor is carved off each side, so the draw share
	// is a constant independent of the matchup
	assert.InDelta(t, 0.125, draw, 1e-9)
}

func TestScoreEstimateUsesSportBaseline(t *testing.T) {
	homeScore, awayScore := scoreEstimate("Boston Celtics", "Los Angeles Lakers", "basketball_nba")

	// strength multiplier stays within [1.00, 1.30)
	assert.GreaterOrEqual(t, homeScore, 112.0)
	assert.Less(t, homeScore, 112.0*1.30)
	assert.GreaterOrEqual(t, awayScore, 109.0)
	assert.Less(t, awayScore, 109.0*1.30)
}

func TestScoreEstimateFallbackSport(t *testing.T) {
	homeScore, awayScore := scoreEstimate("Alpha", "Beta", "cricket_ipl")

	assert.GreaterOrEqual(t, homeScore, 2.0)
	assert.Less(t, homeScore, 2.0*1.30)
	assert.GreaterOrEqual(t, awayScore, 1.8)
	assert.Less(t, awayScore, 1.8*1.30)
}

func TestGenerateFields(t *testing.T) {
	result := Generate(testEvent())

	assert.Equal(t, "evt-1001", result.EventID)
	assert.Equal(t, "elo_poisson_hybrid", result.ModelUsed)
	assert.InDelta(t, 1.0, result.HomeWinProbability+result.AwayWinProbability+result.DrawProbability, 1e-3)
	assert.LessOrEqual(t, result.Confidence, 0.95)
	assert.Contains(t, []string{"Boston Celtics", "Los Angeles Lakers", ""}, result.PredictedWinner)
	assert.Contains(t, result.Rationale, "Boston Celtics vs Los Angeles Lakers")
}

func TestFindValueBetsFlagsMispricedDraw(t *testing.T) {
	// the model's draw probability is a constant 12.5%, so +1000 on the
	// draw (implied 9.1%) is always positive expected value
	event := domain.Event{
		ID:       "evt-2002",
		SportKey: "soccer_epl",
		HomeTeam: "Arsenal",
		AwayTeam: "Chelsea",
		Bookmakers: []domain.Bookmaker{
			{
				Key:   "fanduel",
				Title: "FanDuel",
				Markets: []domain.Market{
					{
						Key: domain.MarketH2H,
						Outcomes: []domain.Outcome{
							{Name: "Draw", Price: 1000},
						},
					},
				},
			},
		},
	}

	result := Generate(event)

	assert.Len(t, result.ValueBets, 1)
	vb := result.ValueBets[0]
	assert.Equal(t, "Draw", vb.Selection)
	assert.Equal(t, "FanDuel", vb.Bookmaker)
	assert.Equal(t, float64(1000), vb.Odds)
	assert.Equal(t, 11.0, vb.DecimalOdds)
	assert.Equal(t, 12.5, vb.ModelProbability)
	assert.Equal(t, 9.1, vb.ImpliedProbability)
	// EV = 0.125*10 - 0.875 = 0.375
	assert.Equal(t, 37.5, vb.ExpectedValue)
	assert.Equal(t, "Strong Value", vb.ValueRating)
	assert.Equal(t, ValueRatingStrong, result.ValueRating)
	assert.Contains(t, result.Rationale, "Value Bets Identified")
}

func TestFindValueBetsIgnoresUnknownOutcomes(t *testing.T) {
	event := testEvent()
	event.Bookmakers[0].Markets[0].Outcomes = append(event.Bookmakers[0].Markets[0].Outcomes,
		domain.Outcome{Name: "Some Other Team", Price: 5000})

	result := Generate(event)
	for _, vb := range result.ValueBets {
		assert.NotEqual(t, "Some Other Team", vb.Selection)
	}
}

func TestFindValueBetsSortedByExpectedValue(t *testing.T) {
	event := domain.Event{
		ID:       "evt-3003",
		SportKey: "soccer_epl",
		HomeTeam: "Arsenal",
		AwayTeam: "Chelsea",
		Bookmakers: []domain.Bookmaker{
			{
				Key:   "fanduel",
				Title: "FanDuel",
				Markets: []domain.Market{
					{
						Key: domain.MarketH2H,
						Outcomes: []domain.Outcome{
							{Name: "Draw", Price: 800},
							{Name: "Draw", Price: 1200},
						},
					},
				},
			},
		},
	}

	result := Generate(event)
	assert.Len(t, result.ValueBets, 2)
	assert.GreaterOrEqual(t, result.ValueBets[0].ExpectedValue, result.ValueBets[1].ExpectedValue)
	assert.Equal(t, float64(1200), result.ValueBets[0].Odds)
}

func TestValueBetRatingBuckets(t *testing.T) {
	assert.Equal(t, "Strong Value", valueBetRating(0.20))
	assert.Equal(t, "Moderate Value", valueBetRating(0.10))
	assert.Equal(t, "Slight Value", valueBetRating(0.03))
}
