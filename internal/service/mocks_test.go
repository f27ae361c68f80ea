// internal/service/mocks_test.go
package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"paperbook/internal/domain"
	"paperbook/internal/repository"
)

// MockDBExecutor is a mock implementation of repository.DBExecutor.
type MockDBExecutor struct {
	mock.Mock
}

func (m *MockDBExecutor) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	argsCalled := m.Called(ctx, query, args)
	return argsCalled.Get(0).(sql.Result), argsCalled.Error(1)
}

func (m *MockDBExecutor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	m.Called(ctx, query, args)
	return &sql.Row{}
}

// MockDBBeginner is a mock implementation of db.DBTxBeginner.
type MockDBBeginner struct {
	mock.Mock
}

func (m *MockDBBeginner) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	args := m.Called(ctx, opts)
	return &sqlx.Tx{}, args.Error(1)
}

// MockTxController is a mock implementation of db.TxController that
// also satisfies repository.DBExecutor via the embedded MockDBExecutor.
type MockTxController struct {
	mock.Mock
	MockDBExecutor
}

func (m *MockTxController) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTxController) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

// MockWalletRepository is a mock implementation of repository.WalletRepository.
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) CreateWallet(ctx context.Context, q repository.DBExecutor, wallet *domain.Wallet) error {
	args := m.Called(ctx, q, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) GetWalletByUserID(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Wallet, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) LockWalletByUserID(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Wallet, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) UpdateWalletBalance(ctx context.Context, q repository.DBExecutor, walletID int64, delta decimal.Decimal) error {
	args := m.Called(ctx, q, walletID, delta)
	return args.Error(0)
}

func (m *MockWalletRepository) AddToDeposited(ctx context.Context, q repository.DBExecutor, walletID int64, amount decimal.Decimal) error {
	args := m.Called(ctx, q, walletID, amount)
	return args.Error(0)
}

func (m *MockWalletRepository) AddToWithdrawn(ctx context.Context, q repository.DBExecutor, walletID int64, amount decimal.Decimal) error {
	args := m.Called(ctx, q, walletID, amount)
	return args.Error(0)
}

// MockTransactionRepository is a mock implementation of repository.TransactionRepository.
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.WalletTransaction) error {
	args := m.Called(ctx, q, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetTransactionsByUserID(ctx context.Context, q repository.DBExecutor, userID int64, limit, offset int) ([]domain.WalletTransaction, int64, error) {
	args := m.Called(ctx, q, userID, limit, offset)
	return args.Get(0).([]domain.WalletTransaction), args.Get(1).(int64), args.Error(2)
}

// MockBetRepository is a mock implementation of repository.BetRepository.
type MockBetRepository struct {
	mock.Mock
}

func (m *MockBetRepository) CreateBet(ctx context.Context, q repository.DBExecutor, bet *domain.Bet) error {
	args := m.Called(ctx, q, bet)
	if args.Error(0) == nil {
		bet.ID = 1
	}
	return args.Error(0)
}

func (m *MockBetRepository) GetBetByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Bet, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bet), args.Error(1)
}

func (m *MockBetRepository) GetBetsByUserID(ctx context.Context, q repository.DBExecutor, userID int64, limit int) ([]domain.Bet, error) {
	args := m.Called(ctx, q, userID, limit)
	return args.Get(0).([]domain.Bet), args.Error(1)
}

func (m *MockBetRepository) GetPendingBetsByUserID(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.Bet, error) {
	args := m.Called(ctx, q, userID)
	return args.Get(0).([]domain.Bet), args.Error(1)
}

func (m *MockBetRepository) UpdateBetStatus(ctx context.Context, q repository.DBExecutor, betID int64, status domain.BetStatus, result *string, settledAt time.Time) error {
	args := m.Called(ctx, q, betID, status, result, settledAt)
	return args.Error(0)
}

func (m *MockBetRepository) GetSettledBetsSince(ctx context.Context, q repository.DBExecutor, userID int64, since time.Time) ([]domain.Bet, error) {
	args := m.Called(ctx, q, userID, since)
	return args.Get(0).([]domain.Bet), args.Error(1)
}

func (m *MockBetRepository) SumStakeSince(ctx context.Context, q repository.DBExecutor, userID int64, since time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, q, userID, since)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockParlayRepository is a mock implementation of repository.ParlayRepository.
type MockParlayRepository struct {
	mock.Mock
}

func (m *MockParlayRepository) CreateParlay(ctx context.Context, q repository.DBExecutor, parlay *domain.Parlay, legs []domain.ParlayLeg) error {
	args := m.Called(ctx, q, parlay, legs)
	if args.Error(0) == nil {
		parlay.ID = 1
	}
	return args.Error(0)
}

func (m *MockParlayRepository) GetParlayByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Parlay, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Parlay), args.Error(1)
}

func (m *MockParlayRepository) GetParlaysByUserID(ctx context.Context, q repository.DBExecutor, userID int64, limit int) ([]domain.Parlay, error) {
	args := m.Called(ctx, q, userID, limit)
	return args.Get(0).([]domain.Parlay), args.Error(1)
}

func (m *MockParlayRepository) GetLegsByParlayID(ctx context.Context, q repository.DBExecutor, parlayID int64) ([]domain.ParlayLeg, error) {
	args := m.Called(ctx, q, parlayID)
	return args.Get(0).([]domain.ParlayLeg), args.Error(1)
}

func (m *MockParlayRepository) GetLegByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.ParlayLeg, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParlayLeg), args.Error(1)
}

func (m *MockParlayRepository) UpdateParlayStatus(ctx context.Context, q repository.DBExecutor, parlayID int64, status domain.BetStatus, settledAt time.Time) error {
	args := m.Called(ctx, q, parlayID, status, settledAt)
	return args.Error(0)
}

func (m *MockParlayRepository) UpdateLegStatus(ctx context.Context, q repository.DBExecutor, legID int64, status domain.BetStatus) error {
	args := m.Called(ctx, q, legID, status)
	return args.Error(0)
}

func (m *MockParlayRepository) SumStakeSince(ctx context.Context, q repository.DBExecutor, userID int64, since time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, q, userID, since)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockPreferencesRepository is a mock implementation of repository.PreferencesRepository.
type MockPreferencesRepository struct {
	mock.Mock
}

func (m *MockPreferencesRepository) CreatePreferences(ctx context.Context, q repository.DBExecutor, prefs *domain.UserPreferences) error {
	args := m.Called(ctx, q, prefs)
	return args.Error(0)
}

func (m *MockPreferencesRepository) GetPreferencesByUserID(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.UserPreferences, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserPreferences), args.Error(1)
}

func (m *MockPreferencesRepository) UpdatePreferences(ctx context.Context, q repository.DBExecutor, userID int64, update domain.PreferencesUpdate) error {
	args := m.Called(ctx, q, userID, update)
	return args.Error(0)
}

// MockGameResultProvider is a mock implementation of GameResultProvider.
type MockGameResultProvider struct {
	mock.Mock
}

func (m *MockGameResultProvider) GetCompletedGames(ctx context.Context, sportKey string, daysFrom int) ([]domain.CompletedGame, error) {
	args := m.Called(ctx, sportKey, daysFrom)
	return args.Get(0).([]domain.CompletedGame), args.Error(1)
}
