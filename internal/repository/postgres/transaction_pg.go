// internal/repository/postgres/transaction_pg.go
package postgres

import (
	"context"
	"fmt"

	"paperbook/internal/domain"
	"paperbook/internal/repository"

	"github.com/jmoiron/sqlx"
)

// TransactionRepository implements repository.TransactionRepository for PostgreSQL.
type TransactionRepository struct{}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db *sqlx.DB) repository.TransactionRepository {
	return &TransactionRepository{}
}

// CreateTransaction appends a new transaction record using the provided DBExecutor.
func (r *TransactionRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.WalletTransaction) error {
	query := `INSERT INTO wallet_transactions (wallet_id, user_id, type, amount, balance_after, reference_id, reference_type, description, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`

	err := q.QueryRowContext(ctx, query,
		transaction.WalletID,
		transaction.UserID,
		transaction.Type,
		transaction.Amount,
		transaction.BalanceAfter,
		transaction.ReferenceID,
		transaction.ReferenceType,
		transaction.Description,
		transaction.CreatedAt,
	).Scan(&transaction.ID)

	if err != nil {
		return fmt.Errorf("failed to create wallet transaction: %w", err)
	}
	return nil
}

// GetTransactionsByUserID retrieves a paginated transaction history for a user.
func (r *TransactionRepository) GetTransactionsByUserID(ctx context.Context, q repository.DBExecutor, userID int64, limit, offset int) ([]domain.WalletTransaction, int64, error) {
	transactions := []domain.WalletTransaction{}

	query := `
		SELECT id, wallet_id, user_id, type, amount, balance_after, reference_id, reference_type, description, created_at
		FROM wallet_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`
	err := q.SelectContext(ctx, &transactions, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch transactions for user %d: %w", userID, err)
	}

	var totalCount int64
	countQuery := `SELECT COUNT(*) FROM wallet_transactions WHERE user_id = $1`
	err = q.GetContext(ctx, &totalCount, countQuery, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get transaction count for user %d: %w", userID, err)
	}

	return transactions, totalCount, nil
}
