package postgres

import (
	"context"
	"errors"
	"fmt"

	"ashiato/domain"

	"gorm.io/gorm"
)

type FollowRepository struct {
	DB *gorm.DB
}

func NewFollowRepository(db *gorm.DB) *FollowRepository {
	return &FollowRepository{DB: db}
}

func (r *FollowRepository) Create(ctx context.Context, follow *domain.Follow) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(follow).Error; err != nil {
		return fmt.Errorf("failed to create follow: %w", err)
	}

	return nil
}

func (r *FollowRepository) Delete(ctx context.Context, followerID, followingID uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&domain.Follow{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete follow: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("follow not found")
	}

	return nil
}

func (r *FollowRepository) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("context error: %w", err)
	}

	var count int64
	err := r.DB.WithContext(ctx).Model(&domain.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check follow: %w", err)
	}

	return count > 0, nil
}

func (r *FollowRepository) FindFollowing(ctx context.Context, followerID uint) ([]domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var users []domain.User
	err := r.DB.WithContext(ctx).
		Joins("JOIN follows ON follows.following_id = users.id").
		Where("follows.follower_id = ?", followerID).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find following: %w", err)
	}

	return users, nil
}

func (r *FollowRepository) FindFollowers(ctx context.Context, followingID uint) ([]domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var users []domain.User
	err := r.DB.WithContext(ctx).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.following_id = ?", followingID).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find followers: %w", err)
	}

	return users, nil
}
