// internal/repository/postgres/wallet_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"paperbook/internal/domain"
	"paperbook/internal/repository"
	"paperbook/internal/util"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// WalletRepository implements repository.WalletRepository for PostgreSQL.
type WalletRepository struct{}

// NewWalletRepository creates a new WalletRepository.
func NewWalletRepository(db *sqlx.DB) repository.WalletRepository {
	return &WalletRepository{}
}

// CreateWallet inserts a new wallet using the provided DBExecutor.
func (r *WalletRepository) CreateWallet(ctx context.Context, q repository.DBExecutor, wallet *domain.Wallet) error {
	query := `INSERT INTO wallets (user_id, balance, total_deposited, total_withdrawn, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := q.QueryRowContext(ctx, query, wallet.UserID, wallet.Balance, wallet.TotalDeposited, wallet.TotalWithdrawn, wallet.CreatedAt, wallet.UpdatedAt).Scan(&wallet.ID)
	if err != nil {
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	return nil
}

// GetWalletByUserID retrieves a wallet by user ID using the provided DBExecutor.
func (r *WalletRepository) GetWalletByUserID(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Wallet, error) {
	var wallet domain.Wallet
	query := `SELECT id, user_id, balance, total_deposited, total_withdrawn, created_at, updated_at
              FROM wallets WHERE user_id = $1`
	err := q.GetContext(ctx, &wallet, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get wallet for user %d: %w", userID, err)
	}
	return &wallet, nil
}

// LockWalletByUserID retrieves a wallet by user ID with FOR UPDATE, so
// concurrent operations on the same wallet serialize on the row lock.
func (r *WalletRepository) LockWalletByUserID(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Wallet, error) {
	var wallet domain.Wallet
	query := `SELECT id, user_id, balance, total_deposited, total_withdrawn, created_at, updated_at
              FROM wallets WHERE user_id = $1 FOR UPDATE`
	err := q.GetContext(ctx, &wallet, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock wallet for user %d: %w", userID, err)
	}
	return &wallet, nil
}

// UpdateWalletBalance applies a signed delta to the wallet balance.
func (r *WalletRepository) UpdateWalletBalance(ctx context.Context, q repository.DBExecutor, walletID int64, delta decimal.Decimal) error {
	query := `UPDATE wallets SET balance = balance + $1, updated_at = $2 WHERE id = $3`
	result, err := q.ExecContext(ctx, query, delta, time.Now().UTC(), walletID)
	if err != nil {
		return fmt.Errorf("failed to update wallet balance for ID %d: %w", walletID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating wallet balance for ID %d: %w", walletID, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no rows affected when updating wallet balance for ID %d: %w", walletID, util.ErrWalletNotFound)
	}
	return nil
}

// AddToDeposited bumps the cumulative deposited total.
func (r *WalletRepository) AddToDeposited(ctx context.Context, q repository.DBExecutor, walletID int64, amount decimal.Decimal) error {
	query := `UPDATE wallets SET total_deposited = total_deposited + $1, updated_at = $2 WHERE id = $3`
	if _, err := q.ExecContext(ctx, query, amount, time.Now().UTC(), walletID); err != nil {
		return fmt.Errorf("failed to update total deposited for wallet %d: %w", walletID, err)
	}
	return nil
}

// AddToWithdrawn bumps the cumulative withdrawn total.
func (r *WalletRepository) AddToWithdrawn(ctx context.Context, q repository.DBExecutor, walletID int64, amount decimal.Decimal) error {
	query := `UPDATE wallets SET total_withdrawn = total_withdrawn + $1, updated_at = $2 WHERE id = $3`
	if _, err := q.ExecContext(ctx, query, amount, time.Now().UTC(), walletID); err != nil {
		return fmt.Errorf("failed to update total withdrawn for wallet %d: %w", walletID, err)
	}
	return nil
}
