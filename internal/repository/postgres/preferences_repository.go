package postgres

import (
	"context"
	"errors"
	"fmt"

	"ashiato/business/recommendation"
	"ashiato/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PreferencesRepository struct {
	DB *gorm.DB
}

var _ recommendation.PreferencesRepository = (*PreferencesRepository)(nil)

func NewPreferencesRepository(db *gorm.DB) *PreferencesRepository {
	return &PreferencesRepository{DB: db}
}

func (r *PreferencesRepository) FindByUserID(ctx context.Context, userID uint) (domain.UserPreferences, error) {
	if err := ctx.Err(); err != nil {
		return domain.UserPreferences{}, fmt.Errorf("context error: %w", err)
	}

	var prefs domain.UserPreferences
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&prefs).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.UserPreferences{}, recommendation.ErrPreferencesNotFound
	}
	if err != nil {
		return domain.UserPreferences{}, fmt.Errorf("failed to query user_preferences: %w", err)
	}

	return prefs, nil
}

// Upsert inserts or replaces the single preferences row for a user.
// Concurrent refreshes for the same user are last-write-wins.
func (r *PreferencesRepository) Upsert(ctx context.Context, prefs *domain.UserPreferences) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"preferred_regions", "updated_at"}),
		},
	).Create(prefs).Error; err != nil {
		return fmt.Errorf("failed to upsert user_preferences: %w", err)
	}

	return nil
}
