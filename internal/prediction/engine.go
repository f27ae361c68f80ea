// internal/prediction/engine.go

// Package prediction implements the deterministic Elo/Poisson hybrid
// model behind event predictions and value-bet detection. Team ratings
// are derived from a string hash, not from entropy: the same inputs
// always produce the same output, which is what makes the model
// fixture-testable. It is an illustrative heuristic, not a trained
// statistical model.
package prediction

import (
	"fmt"
	"math"
	"strings"

	"paperbook/internal/domain"
	"paperbook/pkg/oddsmath"
)

const (
	baseRating    = 1500.0
	ratingBand    = 400 // hash is folded into ±200 around base
	homeAdvantage = 65.0
	drawFactor    = 0.25
	maxConfidence = 0.95
	modelName     = "elo_poisson_hybrid"
)

// sportScores holds baseline average scores per sport. Unknown sports
// fall back to a generic baseline.
var sportScores = map[string]struct{ home, away float64 }{
	"soccer_epl":            {1.5, 1.2},
	"soccer_spain_la_liga":  {1.4, 1.1},
	"americanfootball_nfl":  {24, 21},
	"basketball_nba":        {112, 109},
	"baseball_mlb":          {4.5, 4.2},
	"icehockey_nhl":         {3.1, 2.8},
}

var fallbackScores = struct{ home, away float64 }{2, 1.8}

// ValueRating buckets an event by the best value bet found in it.
type ValueRating string

const (
	ValueRatingStrong   ValueRating = "strong_value"
	ValueRatingModerate ValueRating = "moderate_value"
	ValueRatingFair     ValueRating = "fair_value"
	ValueRatingPoor     ValueRating = "poor_value"
)

// Result is the model output for one event.
type Result struct {
	EventID             string      `json:"event_id"`
	HomeTeam            string      `json:"home_team"`
	AwayTeam            string      `json:"away_team"`
	PredictedWinner     string      `json:"predicted_winner"` // empty when no outright favorite
	HomeWinProbability  float64     `json:"home_win_probability"`
	AwayWinProbability  float64     `json:"away_win_probability"`
	DrawProbability     float64     `json:"draw_probability"`
	PredictedHomeScore  float64     `json:"predicted_home_score"`
	PredictedAwayScore  float64     `json:"predicted_away_score"`
	Confidence          float64     `json:"confidence"`
	ValueRating         ValueRating `json:"value_rating"`
	Rationale           string      `json:"rationale"`
	ModelUsed           string      `json:"model_used"`
	ValueBets           []ValueBet  `json:"value_bets"`
}

// hashString is a polynomial rolling hash over 32-bit arithmetic,
// used to derive stable pseudo-ratings from team names. Documented
// deterministic by design; do not replace with real randomness.
func hashString(s string) int {
	var h int32
	for _, r := range s {
		h = h<<5 - h + int32(r)
	}
	if h < 0 {
		h = -h
	}
	return int(h)
}

// probabilities returns the (homeWin, awayWin, draw) triple from the
// Elo logistic curve with a fixed draw fraction carved off both sides.
// The three values sum to 1 exactly.
func probabilities(homeTeam, awayTeam string) (homeWin, awayWin, draw float64) {
	homeRating := baseRating + float64(hashString(homeTeam)%ratingBand) - 200 + homeAdvantage
	awayRating := baseRating + float64(hashString(awayTeam)%ratingBand) - 200

	diff := homeRating - awayRating
	expectedHome := 1.0 / (1.0 + math.Pow(10, -diff/400.0))

	homeWin = expectedHome * (1 - drawFactor*0.5)
	awayWin = (1 - expectedHome) * (1 - drawFactor*0.5)
	draw = 1 - homeWin - awayWin
	return homeWin, awayWin, draw
}

// scoreEstimate scales the sport's baseline scores by a hash-derived
// team strength multiplier in [1.00, 1.30), rounded to one decimal.
func scoreEstimate(homeTeam, awayTeam, sportKey string) (homeScore, awayScore float64) {
	base, ok := sportScores[sportKey]
	if !ok {
		base = fallbackScores
	}

	homeStrength := 1 + float64(hashString(homeTeam)%30)/100.0
	awayStrength := 1 + float64(hashString(awayTeam)%30)/100.0

	homeScore = math.Round(base.home*homeStrength*10) / 10
	awayScore = math.Round(base.away*awayStrength*10) / 10
	return homeScore, awayScore
}

// Generate produces the model's prediction for an event, including the
// value-bet scan over its bookmaker price tables. Pure: the same event
// always yields the same result.
func Generate(event domain.Event) Result {
	homeWin, awayWin, draw := probabilities(event.HomeTeam, event.AwayTeam)
	homeScore, awayScore := scoreEstimate(event.HomeTeam, event.AwayTeam, event.SportKey)

	var predictedWinner string
	if homeWin > awayWin && homeWin > draw {
		predictedWinner = event.HomeTeam
	} else if awayWin > homeWin && awayWin > draw {
		predictedWinner = event.AwayTeam
	}

	maxProb := math.Max(homeWin, math.Max(awayWin, draw))
	confidence := math.Min(maxConfidence, maxProb+(maxProb-0.33)*0.5)

	valueBets := findValueBets(event, homeWin, awayWin, draw)

	var rating ValueRating
	switch {
	case len(valueBets) > 0 && valueBets[0].ExpectedValue > 10:
		rating = ValueRatingStrong
	case len(valueBets) > 0 && valueBets[0].ExpectedValue > 5:
		rating = ValueRatingModerate
	case len(valueBets) > 0:
		rating = ValueRatingFair
	default:
		rating = ValueRatingPoor
	}

	return Result{
		EventID:            event.ID,
		HomeTeam:           event.HomeTeam,
		AwayTeam:           event.AwayTeam,
		PredictedWinner:    predictedWinner,
		HomeWinProbability: round4(homeWin),
		AwayWinProbability: round4(awayWin),
		DrawProbability:    round4(draw),
		PredictedHomeScore: homeScore,
		PredictedAwayScore: awayScore,
		Confidence:         round4(confidence),
		ValueRating:        rating,
		Rationale:          rationale(event, homeWin, awayWin, draw, homeScore, awayScore, valueBets),
		ModelUsed:          modelName,
		ValueBets:          valueBets,
	}
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func rationale(event domain.Event, homeWin, awayWin, draw, homeScore, awayScore float64, valueBets []ValueBet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Match Analysis: %s vs %s**\n\n", event.HomeTeam, event.AwayTeam)
	b.WriteString("Our hybrid Elo-Poisson model predicts:\n")
	fmt.Fprintf(&b, "- %s win probability: %.1f%%\n", event.HomeTeam, homeWin*100)
	fmt.Fprintf(&b, "- %s win probability: %.1f%%\n", event.AwayTeam, awayWin*100)
	fmt.Fprintf(&b, "- Draw probability: %.1f%%\n\n", draw*100)
	fmt.Fprintf(&b, "**Predicted Score:** %s %.1f - %.1f %s\n\n", event.HomeTeam, homeScore, awayScore, event.AwayTeam)

	if len(valueBets) > 0 {
		b.WriteString("**Value Bets Identified:**\n")
		top := valueBets
		if len(top) > 3 {
			top = top[:3]
		}
		for _, vb := range top {
			fmt.Fprintf(&b, "- %s (%s): %s | EV: +%v%% | %s\n",
				vb.Selection, vb.Bookmaker, oddsmath.FormatAmerican(vb.Odds), vb.ExpectedValue, vb.ValueRating)
		}
	} else {
		b.WriteString("**No significant value bets identified.** The bookmaker odds appear to be fairly priced for this matchup.\n")
	}
	return b.String()
}
