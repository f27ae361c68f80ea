// internal/service/settlement.go
package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"paperbook/internal/domain"
	"paperbook/internal/util"
)

// line parsing for spread ("Lakers -3.5") and total ("Over 210.5")
// selections
var (
	spreadLinePattern = regexp.MustCompile(`[+-]?\d+\.?\d*`)
	totalLinePattern  = regexp.MustCompile(`\d+\.?\d*`)
)

// FindGameResult matches a wager to its completed game, by event ID
// first and by team pairing as a fallback for synthetic or re-keyed
// events. Returns nil when the game has not finished yet.
func FindGameResult(games []domain.CompletedGame, eventID, homeTeam, awayTeam string) *domain.CompletedGame {
	for i := range games {
		g := &games[i]
		if g.ID == eventID || (g.HomeTeam == homeTeam && g.AwayTeam == awayTeam) {
			return g
		}
	}
	return nil
}

// GameResultText renders the canonical result line stored on settled
// wagers, e.g. "Lakers 102 - 99 Celtics".
func GameResultText(game domain.CompletedGame) string {
	return fmt.Sprintf("%s %d - %d %s", game.HomeTeam, game.HomeScore, game.AwayScore, game.AwayTeam)
}

// EvaluateBet decides the outcome of a single selection against a
// final score. It returns won, lost, or push. A selection whose line
// cannot be parsed returns ErrUnresolvedBet so the wager stays pending
// for manual review instead of defaulting to a loss.
func EvaluateBet(betType domain.BetType, selection, homeTeam, awayTeam string, game domain.CompletedGame) (domain.BetStatus, error) {
	switch betType {
	case domain.BetTypeMoneyline:
		return evaluateMoneyline(selection, game), nil
	case domain.BetTypeSpread:
		return evaluateSpread(selection, homeTeam, game)
	case domain.BetTypeTotal:
		return evaluateTotal(selection, game)
	default:
		return "", fmt.Errorf("%w: unknown bet type %q", util.ErrInvalidInput, betType)
	}
}

func evaluateMoneyline(selection string, game domain.CompletedGame) domain.BetStatus {
	var winner string
	switch {
	case game.HomeScore > game.AwayScore:
		winner = game.HomeTeam
	case game.AwayScore > game.HomeScore:
		winner = game.AwayTeam
	default:
		return domain.BetStatusPush
	}

	if strings.Contains(selection, winner) {
		return domain.BetStatusWon
	}
	return domain.BetStatusLost
}

func evaluateSpread(selection, homeTeam string, game domain.CompletedGame) (domain.BetStatus, error) {
	match := spreadLinePattern.FindString(selection)
	if match == "" {
		return "", fmt.Errorf("%w: no spread line in selection %q", util.ErrUnresolvedBet, selection)
	}
	spread, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return "", fmt.Errorf("%w: bad spread line in selection %q", util.ErrUnresolvedBet, selection)
	}

	isHomeTeam := strings.Contains(selection, homeTeam)
	var adjustedScore, opponentScore float64
	if isHomeTeam {
		adjustedScore = float64(game.HomeScore) + spread
		opponentScore = float64(game.AwayScore)
	} else {
		adjustedScore = float64(game.AwayScore) + spread
		opponentScore = float64(game.HomeScore)
	}

	switch {
	case adjustedScore > opponentScore:
		return domain.BetStatusWon, nil
	case adjustedScore == opponentScore:
		return domain.BetStatusPush, nil
	default:
		return domain.BetStatusLost, nil
	}
}

func evaluateTotal(selection string, game domain.CompletedGame) (domain.BetStatus, error) {
	match := totalLinePattern.FindString(selection)
	if match == "" {
		return "", fmt.Errorf("%w: no total line in selection %q", util.ErrUnresolvedBet, selection)
	}
	line, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return "", fmt.Errorf("%w: bad total line in selection %q", util.ErrUnresolvedBet, selection)
	}

	actualTotal := float64(game.HomeScore + game.AwayScore)
	isOver := strings.Contains(strings.ToLower(selection), "over")

	switch {
	case actualTotal == line:
		return domain.BetStatusPush, nil
	case isOver && actualTotal > line, !isOver && actualTotal < line:
		return domain.BetStatusWon, nil
	default:
		return domain.BetStatusLost, nil
	}
}
