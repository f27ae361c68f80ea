// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrInvalidInput        = errors.New("invalid input provided")
	ErrNotFound            = errors.New("resource not found")
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidParlay       = errors.New("parlay must have at least 2 legs")
	ErrAlreadySettled      = errors.New("bet already settled")
	ErrUnresolvedBet       = errors.New("bet outcome could not be resolved")
	ErrBetLimitExceeded    = errors.New("bet limit exceeded")
)

// IsError reports whether err matches the target sentinel error.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
