// internal/repository/transaction_repo.go
package repository

import (
	"context"

	"paperbook/internal/domain"
)

// TransactionRepository defines the interface for wallet transaction
// records. Transactions are append-only; there is no update or delete.
type TransactionRepository interface {
	// CreateTransaction appends a new transaction record using the provided DBExecutor.
	CreateTransaction(ctx context.Context, q DBExecutor, transaction *domain.WalletTransaction) error
	// GetTransactionsByUserID retrieves transaction history for a user,
	// newest first, with the total count for pagination.
	GetTransactionsByUserID(ctx context.Context, q DBExecutor, userID int64, limit, offset int) ([]domain.WalletTransaction, int64, error)
}
