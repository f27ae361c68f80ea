// pkg/oddsmath/american.go
package oddsmath

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidOdds is returned when American odds of exactly 0 are supplied.
// American odds have no zero value: the scale jumps from -100 to +100.
var ErrInvalidOdds = errors.New("invalid American odds: cannot be 0")

// AmericanToDecimal converts American odds to decimal odds.
// American +150 → Decimal 2.50
// American -150 → Decimal 1.67
func AmericanToDecimal(american float64) (float64, error) {
	if american == 0 {
		return 0, ErrInvalidOdds
	}

	if american > 0 {
		return (american / 100.0) + 1.0, nil
	}

	return (100.0 / math.Abs(american)) + 1.0, nil
}

// ImpliedProbability converts American odds to the bookmaker-implied
// probability, ignoring the bookmaker's margin.
// -150 → 0.6, +150 → 0.4. The result is always in (0, 1).
func ImpliedProbability(american float64) (float64, error) {
	if american == 0 {
		return 0, ErrInvalidOdds
	}

	if american > 0 {
		return 100.0 / (american + 100.0), nil
	}

	return math.Abs(american) / (math.Abs(american) + 100.0), nil
}

// ExpectedValue calculates the fractional return per unit staked given a
// model probability and decimal odds.
// EV = p*(decimal-1) - (1-p)
func ExpectedValue(modelProbability, decimalOdds float64) float64 {
	return modelProbability*(decimalOdds-1.0) - (1.0 - modelProbability)
}

// FormatAmerican renders American odds with an explicit leading sign,
// e.g. +150 and -110.
func FormatAmerican(american float64) string {
	if american > 0 {
		return fmt.Sprintf("+%v", american)
	}
	return fmt.Sprintf("%v", american)
}
