// pkg/oddsmath/parlay.go
package oddsmath

import (
	"fmt"
	"math"
)

// ParlayOdds holds the combined price of a multi-leg wager.
type ParlayOdds struct {
	CombinedDecimal    float64 // product of all leg decimal odds
	CombinedAmerican   float64 // American equivalent, rounded to the nearest integer
	ImpliedProbability float64 // percentage, rounded to 2 decimals
}

// CombineParlayOdds multiplies each leg's decimal odds into a combined
// price and converts back to American. Requires at least one leg; the
// two-leg minimum for placing a parlay is enforced by the wager
// lifecycle, not here.
func CombineParlayOdds(legOdds []float64) (ParlayOdds, error) {
	if len(legOdds) == 0 {
		return ParlayOdds{}, fmt.Errorf("combine parlay odds: no legs provided")
	}

	combined := 1.0
	for _, o := range legOdds {
		dec, err := AmericanToDecimal(o)
		if err != nil {
			return ParlayOdds{}, fmt.Errorf("combine parlay odds: %w", err)
		}
		combined *= dec
	}

	var american float64
	if combined >= 2.0 {
		american = math.Round((combined - 1.0) * 100.0)
	} else {
		american = math.Round(-100.0 / (combined - 1.0))
	}

	implied := math.Round(1.0/combined*10000.0) / 100.0

	return ParlayOdds{
		CombinedDecimal:    combined,
		CombinedAmerican:   american,
		ImpliedProbability: implied,
	}, nil
}
