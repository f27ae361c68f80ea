// internal/service/preferences_service.go
package service

import (
	"context"
	"fmt"

	"paperbook/internal/domain"
	"paperbook/internal/repository"
	"paperbook/internal/util"
	"paperbook/pkg/db"
)

// PreferencesService defines the interface for user preference logic.
type PreferencesService interface {
	// GetPreferences returns the user's preferences, creating the
	// default profile on first access.
	GetPreferences(ctx context.Context, userID int64) (*domain.UserPreferences, error)
	// UpdatePreferences applies a partial update and returns the
	// resulting preferences.
	UpdatePreferences(ctx context.Context, userID int64, update domain.PreferencesUpdate) (*domain.UserPreferences, error)
}

type preferencesService struct {
	dbBeginner      db.DBTxBeginner
	dbExecutor      repository.DBExecutor
	preferencesRepo repository.PreferencesRepository
	beginTx         db.BeginTxFunc
	commitTx        db.CommitTxFunc
	rollbackTx      db.RollbackTxFunc
}

// NewPreferencesService creates a new instance of PreferencesService.
func NewPreferencesService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	preferencesRepo repository.PreferencesRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) PreferencesService {
	return &preferencesService{
		dbBeginner:      dbBeginner,
		dbExecutor:      dbExecutor,
		preferencesRepo: preferencesRepo,
		beginTx:         beginTx,
		commitTx:        commitTx,
		rollbackTx:      rollbackTx,
	}
}

func (s *preferencesService) GetPreferences(ctx context.Context, userID int64) (*domain.UserPreferences, error) {
	prefs, err := s.preferencesRepo.GetPreferencesByUserID(ctx, s.dbExecutor, userID)
	if err == nil {
		return prefs, nil
	}
	if !util.IsError(err, util.ErrNotFound) {
		return nil, fmt.Errorf("get preferences: failed to get preferences for user %d: %w", userID, err)
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("get preferences: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("get preferences: transaction controller does not implement DBExecutor")
	}

	prefs = domain.NewUserPreferences(userID)
	if err := s.preferencesRepo.CreatePreferences(ctx, txExecutor, prefs); err != nil {
		return nil, fmt.Errorf("get preferences: failed to create default preferences for user %d: %w", userID, err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("get preferences: failed to commit transaction: %w", err)
	}
	return prefs, nil
}

func (s *preferencesService) UpdatePreferences(ctx context.Context, userID int64, update domain.PreferencesUpdate) (*domain.UserPreferences, error) {
	if update.RiskTolerance != nil {
		switch *update.RiskTolerance {
		case domain.RiskToleranceConservative, domain.RiskToleranceModerate, domain.RiskToleranceAggressive:
		default:
			return nil, fmt.Errorf("%w: unknown risk tolerance %q", util.ErrInvalidInput, *update.RiskTolerance)
		}
	}
	if update.MaxBetAmount != nil && update.MaxBetAmount.IsNegative() {
		return nil, util.ErrInvalidInput
	}
	if update.DailyBetLimit != nil && update.DailyBetLimit.IsNegative() {
		return nil, util.ErrInvalidInput
	}

	// make sure the row exists before the partial update
	if _, err := s.GetPreferences(ctx, userID); err != nil {
		return nil, err
	}

	if err := s.preferencesRepo.UpdatePreferences(ctx, s.dbExecutor, userID, update); err != nil {
		return nil, fmt.Errorf("update preferences: failed to update preferences for user %d: %w", userID, err)
	}

	prefs, err := s.preferencesRepo.GetPreferencesByUserID(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("update preferences: failed to re-fetch preferences for user %d: %w", userID, err)
	}
	return prefs, nil
}
