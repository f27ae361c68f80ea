// internal/prediction/valuebets.go

package prediction

import (
	"math"
	"sort"

	"paperbook/internal/domain"
	"paperbook/pkg/oddsmath"
)

// evThreshold is the minimum edge (as a fraction of stake) before an
// outcome is reported as a value bet. Anything thinner is noise.
const evThreshold = 0.02

// ValueBet is a single bookmaker outcome whose model probability beats
// the implied probability by more than the threshold. ExpectedValue and
// the probability fields are percentages rounded to one decimal.
type ValueBet struct {
	Selection          string  `json:"selection"`
	Bookmaker          string  `json:"bookmaker"`
	Odds               float64 `json:"odds"`
	DecimalOdds        float64 `json:"decimal_odds"`
	ModelProbability   float64 `json:"model_probability"`
	ImpliedProbability float64 `json:"implied_probability"`
	ExpectedValue      float64 `json:"expected_value"`
	ValueRating        string  `json:"value_rating"`
}

// findValueBets scans every h2h market of every bookmaker and keeps the
// outcomes where the model's probability produces positive expected
// value. Results are sorted by expected value descending.
func findValueBets(event domain.Event, homeWin, awayWin, draw float64) []ValueBet {
	valueBets := []ValueBet{}

	for _, bookmaker := range event.Bookmakers {
		for _, market := range bookmaker.Markets {
			if market.Key != domain.MarketH2H {
				continue
			}
			for _, outcome := range market.Outcomes {
				var modelProb float64
				switch outcome.Name {
				case event.HomeTeam:
					modelProb = homeWin
				case event.AwayTeam:
					modelProb = awayWin
				case "Draw":
					modelProb = draw
				default:
					continue
				}

				decimalOdds, err := oddsmath.AmericanToDecimal(outcome.Price)
				if err != nil {
					continue
				}
				impliedProb, err := oddsmath.ImpliedProbability(outcome.Price)
				if err != nil {
					continue
				}

				ev := oddsmath.ExpectedValue(modelProb, decimalOdds)
				if ev <= evThreshold {
					continue
				}

				valueBets = append(valueBets, ValueBet{
					Selection:          outcome.Name,
					Bookmaker:          bookmaker.Title,
					Odds:               outcome.Price,
					DecimalOdds:        math.Round(decimalOdds*100) / 100,
					ModelProbability:   roundPercent(modelProb),
					ImpliedProbability: roundPercent(impliedProb),
					ExpectedValue:      roundPercent(ev),
					ValueRating:        valueBetRating(ev),
				})
			}
		}
	}

	sort.SliceStable(valueBets, func(i, j int) bool {
		return valueBets[i].ExpectedValue > valueBets[j].ExpectedValue
	})
	return valueBets
}

func valueBetRating(ev float64) string {
	switch {
	case ev > 0.15:
		return "Strong Value"
	case ev > 0.08:
		return "Moderate Value"
	default:
		return "Slight Value"
	}
}

// roundPercent turns a fraction into a percentage with one decimal.
func roundPercent(fraction float64) float64 {
	return math.Round(fraction*1000) / 10
}
