// internal/repository/preferences_repo.go
package repository

import (
	"context"

	"paperbook/internal/domain"
)

// PreferencesRepository defines the interface for user preference data.
type PreferencesRepository interface {
	// CreatePreferences adds a preferences row using the provided DBExecutor.
	CreatePreferences(ctx context.Context, q DBExecutor, prefs *domain.UserPreferences) error
	// GetPreferencesByUserID retrieves a user's preferences.
	GetPreferencesByUserID(ctx context.Context, q DBExecutor, userID int64) (*domain.UserPreferences, error)
	// UpdatePreferences applies a partial update; nil fields are unchanged.
	UpdatePreferences(ctx context.Context, q DBExecutor, userID int64, update domain.PreferencesUpdate) error
}
