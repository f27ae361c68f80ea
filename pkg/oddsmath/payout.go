// pkg/oddsmath/payout.go
package oddsmath

import (
	"math"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// PotentialPayout returns stake plus winnings for a bet at the given
// American odds, rounded half-up to the cent. The result is always >= stake.
func PotentialPayout(stake decimal.Decimal, american float64) (decimal.Decimal, error) {
	if american == 0 {
		return decimal.Zero, ErrInvalidOdds
	}

	var winnings decimal.Decimal
	if american > 0 {
		winnings = stake.Mul(decimal.NewFromFloat(american)).Div(hundred)
	} else {
		winnings = stake.Mul(hundred).Div(decimal.NewFromFloat(math.Abs(american)))
	}

	return stake.Add(winnings).Round(2), nil
}
