// internal/service/user_service.go
package service

import (
	"context"
	"errors"
	"fmt"

	"paperbook/internal/domain"
	"paperbook/internal/repository"
	"paperbook/internal/util"
	"paperbook/pkg/db"
)

// UserService defines the interface for user account logic.
type UserService interface {
	// CreateUser registers a user and seeds their wallet and default
	// preferences in one transaction.
	CreateUser(ctx context.Context, username string) (*domain.User, *domain.Wallet, error)
	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
}

type userService struct {
	dbBeginner      db.DBTxBeginner
	dbExecutor      repository.DBExecutor
	userRepo        repository.UserRepository
	walletRepo      repository.WalletRepository
	preferencesRepo repository.PreferencesRepository
	beginTx         db.BeginTxFunc
	commitTx        db.CommitTxFunc
	rollbackTx      db.RollbackTxFunc
}

// NewUserService creates a new instance of UserService.
func NewUserService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	walletRepo repository.WalletRepository,
	preferencesRepo repository.PreferencesRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) UserService {
	return &userService{
		dbBeginner:      dbBeginner,
		dbExecutor:      dbExecutor,
		userRepo:        userRepo,
		walletRepo:      walletRepo,
		preferencesRepo: preferencesRepo,
		beginTx:         beginTx,
		commitTx:        commitTx,
		rollbackTx:      rollbackTx,
	}
}

func (s *userService) CreateUser(ctx context.Context, username string) (*domain.User, *domain.Wallet, error) {
	if username == "" {
		return nil, nil, util.ErrInvalidInput
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, nil, fmt.Errorf("create user: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, nil, fmt.Errorf("create user: transaction controller does not implement DBExecutor")
	}

	_, err = s.userRepo.GetUserByUsername(ctx, txExecutor, username)
	if err == nil {
		return nil, nil, fmt.Errorf("%w: username %q already taken", util.ErrInvalidInput, username)
	}
	if !errors.Is(err, util.ErrNotFound) {
		return nil, nil, fmt.Errorf("create user: failed to check existing user: %w", err)
	}

	user := domain.NewUser(username)
	if err := s.userRepo.CreateUser(ctx, txExecutor, user); err != nil {
		return nil, nil, fmt.Errorf("create user: failed to create user: %w", err)
	}

	wallet := domain.NewWallet(user.ID)
	if err := s.walletRepo.CreateWallet(ctx, txExecutor, wallet); err != nil {
		return nil, nil, fmt.Errorf("create user: failed to create wallet: %w", err)
	}

	if err := s.preferencesRepo.CreatePreferences(ctx, txExecutor, domain.NewUserPreferences(user.ID)); err != nil {
		return nil, nil, fmt.Errorf("create user: failed to create preferences: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, nil, fmt.Errorf("create user: failed to commit transaction: %w", err)
	}

	return user, wallet, nil
}

func (s *userService) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: failed to get user %d: %w", userID, err)
	}
	return user, nil
}
