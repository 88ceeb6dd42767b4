package postgres

import (
	"context"
	"errors"
	"fmt"

	"ashiato/domain"

	"gorm.io/gorm"
)

type SpotRepository struct {
	DB *gorm.DB
}

func NewSpotRepository(db *gorm.DB) *SpotRepository {
	return &SpotRepository{
		DB: db,
	}
}

func (r *SpotRepository) Create(ctx context.Context, spot *domain.Spot) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(spot).Error; err != nil {
		return fmt.Errorf("failed to create spot: %w", err)
	}

	return nil
}

func (r *SpotRepository) FindByID(ctx context.Context, id uint) (domain.Spot, error) {
	if err := ctx.Err(); err != nil {
		return domain.Spot{}, fmt.Errorf("context error: %w", err)
	}

	var spot domain.Spot

	err := r.DB.WithContext(ctx).Preload("Owner").First(&spot, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Spot{}, errors.New("spot not found")
		}
		return domain.Spot{}, fmt.Errorf("failed to find spot: %w", err)
	}

	return spot, nil
}

// FindAllExcludingOwner returns the recommendation candidate set: every
// spot not owned by userID, with the owning user preloaded.
func (r *SpotRepository) FindAllExcludingOwner(ctx context.Context, userID uint) ([]domain.Spot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var spots []domain.Spot
	err := r.DB.WithContext(ctx).
		Preload("Owner").
		Where("user_id <> ?", userID).
		Find(&spots).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find candidate spots: %w", err)
	}

	return spots, nil
}

func (r *SpotRepository) FindByOwner(ctx context.Context, userID uint) ([]domain.Spot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var spots []domain.Spot
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&spots).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find spots by owner: %w", err)
	}

	return spots, nil
}

func (r *SpotRepository) FindByOwnerAndList(ctx context.Context, userID uint, listName string) ([]domain.Spot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var spots []domain.Spot
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND list_name = ?", userID, listName).
		Find(&spots).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find spots by list: %w", err)
	}

	return spots, nil
}

func (r *SpotRepository) FindByRegion(ctx context.Context, region string) ([]domain.Spot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var spots []domain.Spot
	err := r.DB.WithContext(ctx).
		Preload("Owner").
		Where("region = ?", region).
		Find(&spots).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find spots by region: %w", err)
	}

	return spots, nil
}

func (r *SpotRepository) Update(ctx context.Context, spot *domain.Spot) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{
		"list_name":  spot.ListName,
		"region":     spot.Region,
		"place_name": spot.PlaceName,
		"url":        spot.URL,
		"comment":    spot.Comment,
	}

	result := r.DB.WithContext(ctx).Model(&domain.Spot{}).Where("id = ?", spot.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update spot: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("spot not found or already deleted")
	}

	return nil
}

func (r *SpotRepository) Delete(ctx context.Context, id uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.Spot{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete spot: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("spot not found or already deleted")
	}

	return nil
}
