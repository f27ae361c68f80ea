// internal/repository/wallet_repo.go
package repository

import (
	"context"

	"paperbook/internal/domain"

	"github.com/shopspring/decimal"
)

// WalletRepository defines the interface for wallet data operations.
type WalletRepository interface {
	// CreateWallet adds a new wallet using the provided DBExecutor.
	CreateWallet(ctx context.Context, q DBExecutor, wallet *domain.Wallet) error
	// GetWalletByUserID retrieves a user's wallet.
	GetWalletByUserID(ctx context.Context, q DBExecutor, userID int64) (*domain.Wallet, error)
	// LockWalletByUserID retrieves a user's wallet with a row lock
	// (SELECT ... FOR UPDATE). Must be called inside a transaction;
	// this is what serializes concurrent operations on one wallet.
	LockWalletByUserID(ctx context.Context, q DBExecutor, userID int64) (*domain.Wallet, error)
	// UpdateWalletBalance applies a signed delta to the wallet balance.
	UpdateWalletBalance(ctx context.Context, q DBExecutor, walletID int64, delta decimal.Decimal) error
	// AddToDeposited bumps the cumulative deposited total.
	AddToDeposited(ctx context.Context, q DBExecutor, walletID int64, amount decimal.Decimal) error
	// AddToWithdrawn bumps the cumulative withdrawn total.
	AddToWithdrawn(ctx context.Context, q DBExecutor, walletID int64, amount decimal.Decimal) error
}
