// internal/domain/wallet.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StartingBalance is the virtual bankroll granted when a wallet is
// first created. Wallets are created lazily on first access.
var StartingBalance = decimal.RequireFromString("10000.00")

// Wallet represents a user's paper-trading wallet. The balance is
// mutated only through ledger operations, never set directly.
type Wallet struct {
	ID             int64           `db:"id" json:"id"`
	UserID         int64           `db:"user_id" json:"user_id"`
	Balance        decimal.Decimal `db:"balance" json:"balance"`
	TotalDeposited decimal.Decimal `db:"total_deposited" json:"total_deposited"`
	TotalWithdrawn decimal.Decimal `db:"total_withdrawn" json:"total_withdrawn"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
}

// NewWallet creates a new Wallet instance seeded with the starting balance.
func NewWallet(userID int64) *Wallet {
	now := time.Now().UTC()
	return &Wallet{
		UserID:         userID,
		Balance:        StartingBalance,
		TotalDeposited: StartingBalance,
		TotalWithdrawn: decimal.Zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
