package postgres

import (
	"context"
	"fmt"

	"ashiato/business/recommendation"
	"ashiato/domain"

	"gorm.io/gorm"
)

type InteractionRepository struct {
	DB *gorm.DB
}

// Compile-time check that the struct implements the scorer's interface.
var _ recommendation.InteractionRepository = (*InteractionRepository)(nil)

func NewInteractionRepository(db *gorm.DB) *InteractionRepository {
	return &InteractionRepository{DB: db}
}

func (r *InteractionRepository) Create(ctx context.Context, interaction *domain.UserInteraction) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(interaction).Error; err != nil {
		return fmt.Errorf("failed to save interaction: %w", err)
	}

	return nil
}

// CountBySpotFromFollowedUsers counts interactions on one spot made by any
// user the given user follows.
func (r *InteractionRepository) CountBySpotFromFollowedUsers(ctx context.Context, userID, spotID uint) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	var count int64
	err := r.DB.WithContext(ctx).Model(&domain.UserInteraction{}).
		Joins("JOIN follows ON follows.following_id = user_interactions.user_id").
		Where("follows.follower_id = ? AND user_interactions.spot_id = ?", userID, spotID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count followed-user interactions: %w", err)
	}

	return count, nil
}

// CountByListName ranks the list names of spots the user interacted with by
// raw interaction count, highest first.
func (r *InteractionRepository) CountByListName(ctx context.Context, userID uint) ([]recommendation.ListInteractionCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []recommendation.ListInteractionCount
	err := r.DB.WithContext(ctx).Model(&domain.UserInteraction{}).
		Select("spots.list_name AS list_name, COUNT(*) AS count").
		Joins("JOIN spots ON spots.id = user_interactions.spot_id").
		Where("user_interactions.user_id = ?", userID).
		Group("spots.list_name").
		Order("count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count interactions by list: %w", err)
	}

	return rows, nil
}

// SumWeightByRegion ranks the regions of spots the user interacted with by
// summed interaction weight, highest first. Null and empty regions are
// excluded.
func (r *InteractionRepository) SumWeightByRegion(ctx context.Context, userID uint) ([]recommendation.RegionWeight, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []recommendation.RegionWeight
	err := r.DB.WithContext(ctx).Model(&domain.UserInteraction{}).
		Select("spots.region AS region, SUM(user_interactions.weight) AS total_weight").
		Joins("JOIN spots ON spots.id = user_interactions.spot_id").
		Where("user_interactions.user_id = ? AND spots.region IS NOT NULL AND spots.region <> ''", userID).
		Group("spots.region").
		Order("total_weight DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum interaction weight by region: %w", err)
	}

	return rows, nil
}
