// internal/service/wallet_service.go
package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"paperbook/internal/domain"
	"paperbook/internal/repository"
	"paperbook/internal/util"
	"paperbook/pkg/db"
)

// MaxDepositTotal caps cumulative top-ups so paper bankrolls stay in a
// realistic range.
var MaxDepositTotal = decimal.NewFromInt(100000)

// WalletService defines the interface for wallet-related business logic.
type WalletService interface {
	// GetWallet returns the user's wallet, creating it with the
	// starting balance on first access.
	GetWallet(ctx context.Context, userID int64) (*domain.Wallet, error)
	// Deposit tops up the paper bankroll. Cumulative deposits are capped.
	Deposit(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.Wallet, *domain.WalletTransaction, error)
	// Withdraw removes funds from the paper bankroll.
	Withdraw(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.Wallet, *domain.WalletTransaction, error)
	// GetTransactions returns paginated transaction history, newest first.
	GetTransactions(ctx context.Context, userID int64, limit, offset int) ([]domain.WalletTransaction, int64, error)
}

type walletService struct {
	dbBeginner      db.DBTxBeginner
	dbExecutor      repository.DBExecutor
	walletRepo      repository.WalletRepository
	transactionRepo repository.TransactionRepository
	ledger          *Ledger
	beginTx         db.BeginTxFunc
	commitTx        db.CommitTxFunc
	rollbackTx      db.RollbackTxFunc
}

// NewWalletService creates a new instance of WalletService.
func NewWalletService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	walletRepo repository.WalletRepository,
	transactionRepo repository.TransactionRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) WalletService {
	return &walletService{
		dbBeginner:      dbBeginner,
		dbExecutor:      dbExecutor,
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		ledger:          NewLedger(walletRepo, transactionRepo),
		beginTx:         beginTx,
		commitTx:        commitTx,
		rollbackTx:      rollbackTx,
	}
}

func (s *walletService) GetWallet(ctx context.Context, userID int64) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetWalletByUserID(ctx, s.dbExecutor, userID)
	if err == nil {
		return wallet, nil
	}
	if !util.IsError(err, util.ErrNotFound) {
		return nil, fmt.Errorf("get wallet: failed to get wallet for user %d: %w", userID, err)
	}

	// first access creates the wallet inside a transaction
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("get wallet: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("get wallet: transaction controller does not implement DBExecutor")
	}

	wallet, err = s.ledger.GetOrCreateWalletLocked(ctx, txExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("get wallet: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("get wallet: failed to commit transaction: %w", err)
	}
	return wallet, nil
}

// Deposit adds paper money to a user's wallet.
func (s *walletService) Deposit(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.Wallet, *domain.WalletTransaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, util.ErrInvalidInput
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, nil, fmt.Errorf("deposit: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, nil, fmt.Errorf("deposit: transaction controller does not implement DBExecutor")
	}

	wallet, err := s.ledger.GetOrCreateWalletLocked(ctx, txExecutor, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("deposit: %w", err)
	}

	if wallet.TotalDeposited.Add(amount).GreaterThan(MaxDepositTotal) {
		return nil, nil, fmt.Errorf("%w: cumulative deposits cannot exceed %s", util.ErrInvalidInput, MaxDepositTotal)
	}

	transaction, err := s.ledger.Credit(ctx, txExecutor, wallet, amount,
		domain.TransactionTypeDeposit, nil, nil, "wallet deposit")
	if err != nil {
		return nil, nil, fmt.Errorf("deposit: %w", err)
	}

	if err := s.walletRepo.AddToDeposited(ctx, txExecutor, wallet.ID, amount); err != nil {
		return nil, nil, fmt.Errorf("deposit: failed to update deposited total: %w", err)
	}
	wallet.TotalDeposited = wallet.TotalDeposited.Add(amount)

	if err := s.commitTx(txController); err != nil {
		return nil, nil, fmt.Errorf("deposit: failed to commit transaction: %w", err)
	}

	return wallet, transaction, nil
}

// Withdraw removes paper money from a user's wallet.
func (s *walletService) Withdraw(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.Wallet, *domain.WalletTransaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, util.ErrInvalidInput
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, nil, fmt.Errorf("withdraw: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, nil, fmt.Errorf("withdraw: transaction controller does not implement DBExecutor")
	}

	wallet, err := s.ledger.GetOrCreateWalletLocked(ctx, txExecutor, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("withdraw: %w", err)
	}

	transaction, err := s.ledger.Debit(ctx, txExecutor, wallet, amount,
		domain.TransactionTypeWithdrawal, nil, nil, "wallet withdrawal")
	if err != nil {
		return nil, nil, fmt.Errorf("withdraw: %w", err)
	}

	if err := s.walletRepo.AddToWithdrawn(ctx, txExecutor, wallet.ID, amount); err != nil {
		return nil, nil, fmt.Errorf("withdraw: failed to update withdrawn total: %w", err)
	}
	wallet.TotalWithdrawn = wallet.TotalWithdrawn.Add(amount)

	if err := s.commitTx(txController); err != nil {
		return nil, nil, fmt.Errorf("withdraw: failed to commit transaction: %w", err)
	}

	return wallet, transaction, nil
}

// GetTransactions retrieves a paginated list of a user's wallet transactions.
func (s *walletService) GetTransactions(ctx context.Context, userID int64, limit, offset int) ([]domain.WalletTransaction, int64, error) {
	_, err := s.walletRepo.GetWalletByUserID(ctx, s.dbExecutor, userID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, 0, util.ErrWalletNotFound
		}
		return nil, 0, fmt.Errorf("failed to check wallet existence: %w", err)
	}

	transactions, totalCount, err := s.transactionRepo.GetTransactionsByUserID(ctx, s.dbExecutor, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve transaction history: %w", err)
	}

	return transactions, totalCount, nil
}
