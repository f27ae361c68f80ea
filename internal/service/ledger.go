// internal/service/ledger.go

// Package service contains the business logic layer. Services own
// transaction boundaries: each mutating operation runs inside a single
// database transaction, and every balance change goes through the
// Ledger so the wallet mutation and its transaction record commit or
// roll back together.
package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"paperbook/internal/domain"
	"paperbook/internal/repository"
	"paperbook/internal/util"
)

// Ledger applies balance changes to a locked wallet and appends the
// matching transaction record in the caller's database transaction.
// Callers must hold the wallet row lock before crediting or debiting.
type Ledger struct {
	walletRepo      repository.WalletRepository
	transactionRepo repository.TransactionRepository
}

func NewLedger(walletRepo repository.WalletRepository, transactionRepo repository.TransactionRepository) *Ledger {
	return &Ledger{walletRepo: walletRepo, transactionRepo: transactionRepo}
}

// GetOrCreateWalletLocked returns the user's wallet under a row lock,
// creating it with the starting balance on first access. The returned
// wallet reflects committed state; Credit and Debit keep its Balance
// field current within the transaction.
func (l *Ledger) GetOrCreateWalletLocked(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Wallet, error) {
	wallet, err := l.walletRepo.LockWalletByUserID(ctx, q, userID)
	if err == nil {
		return wallet, nil
	}
	if !util.IsError(err, util.ErrNotFound) {
		return nil, fmt.Errorf("ledger: failed to lock wallet for user %d: %w", userID, err)
	}

	if err := l.walletRepo.CreateWallet(ctx, q, domain.NewWallet(userID)); err != nil {
		return nil, fmt.Errorf("ledger: failed to create wallet for user %d: %w", userID, err)
	}

	wallet, err = l.walletRepo.LockWalletByUserID(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("ledger: failed to lock freshly created wallet for user %d: %w", userID, err)
	}
	return wallet, nil
}

// Credit adds amount to the locked wallet and appends a transaction
// whose BalanceAfter snapshots the new balance. amount must be positive.
func (l *Ledger) Credit(
	ctx context.Context,
	q repository.DBExecutor,
	wallet *domain.Wallet,
	amount decimal.Decimal,
	txType domain.TransactionType,
	referenceID *int64,
	referenceType *domain.ReferenceType,
	description string,
) (*domain.WalletTransaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrInvalidInput
	}

	if err := l.walletRepo.UpdateWalletBalance(ctx, q, wallet.ID, amount); err != nil {
		return nil, fmt.Errorf("ledger: failed to credit wallet %d: %w", wallet.ID, err)
	}
	wallet.Balance = wallet.Balance.Add(amount)

	transaction := domain.NewWalletTransaction(
		wallet.ID, wallet.UserID, txType, amount, wallet.Balance, referenceID, referenceType, description)
	if err := l.transactionRepo.CreateTransaction(ctx, q, transaction); err != nil {
		return nil, fmt.Errorf("ledger: failed to record credit on wallet %d: %w", wallet.ID, err)
	}
	return transaction, nil
}

// Debit removes amount from the locked wallet and appends a transaction
// with a negative Amount. amount must be positive and covered by the
// wallet balance.
func (l *Ledger) Debit(
	ctx context.Context,
	q repository.DBExecutor,
	wallet *domain.Wallet,
	amount decimal.Decimal,
	txType domain.TransactionType,
	referenceID *int64,
	referenceType *domain.ReferenceType,
	description string,
) (*domain.WalletTransaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrInvalidInput
	}
	if wallet.Balance.LessThan(amount) {
		return nil, util.ErrInsufficientBalance
	}

	if err := l.walletRepo.UpdateWalletBalance(ctx, q, wallet.ID, amount.Neg()); err != nil {
		return nil, fmt.Errorf("ledger: failed to debit wallet %d: %w", wallet.ID, err)
	}
	wallet.Balance = wallet.Balance.Sub(amount)

	transaction := domain.NewWalletTransaction(
		wallet.ID, wallet.UserID, txType, amount.Neg(), wallet.Balance, referenceID, referenceType, description)
	if err := l.transactionRepo.CreateTransaction(ctx, q, transaction); err != nil {
		return nil, fmt.Errorf("ledger: failed to record debit on wallet %d: %w", wallet.ID, err)
	}
	return transaction, nil
}
