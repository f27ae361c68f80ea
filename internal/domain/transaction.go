// internal/domain/transaction.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType defines the type of a wallet balance change.
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
	TransactionTypeBetPlaced  TransactionType = "bet_placed"
	TransactionTypeBetWon     TransactionType = "bet_won"
	TransactionTypeBetLost    TransactionType = "bet_lost"
	TransactionTypeBetRefund  TransactionType = "bet_refund"
)

// ReferenceType identifies the kind of wager a transaction points at.
type ReferenceType string

const (
	ReferenceTypeBet    ReferenceType = "bet"
	ReferenceTypeParlay ReferenceType = "parlay"
)

// WalletTransaction is an immutable, append-only record of a single
// balance change. Amount is signed (debits are negative) and
// BalanceAfter snapshots the wallet balance the change produced, so
// replaying transactions in creation order reproduces every snapshot.
type WalletTransaction struct {
	ID            int64           `db:"id" json:"id"`
	WalletID      int64           `db:"wallet_id" json:"wallet_id"`
	UserID        int64           `db:"user_id" json:"user_id"`
	Type          TransactionType `db:"type" json:"type"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	BalanceAfter  decimal.Decimal `db:"balance_after" json:"balance_after"`
	ReferenceID   *int64          `db:"reference_id" json:"reference_id"`
	ReferenceType *ReferenceType  `db:"reference_type" json:"reference_type"`
	Description   string          `db:"description" json:"description"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

// NewWalletTransaction creates a new WalletTransaction instance.
func NewWalletTransaction(
	walletID, userID int64,
	txType TransactionType,
	amount, balanceAfter decimal.Decimal,
	referenceID *int64,
	referenceType *ReferenceType,
	description string,
) *WalletTransaction {
	return &WalletTransaction{
		WalletID:      walletID,
		UserID:        userID,
		Type:          txType,
		Amount:        amount,
		BalanceAfter:  balanceAfter,
		ReferenceID:   referenceID,
		ReferenceType: referenceType,
		Description:   description,
		CreatedAt:     time.Now().UTC(),
	}
}
