package follow

import (
	"context"
	"errors"
	"fmt"

	"ashiato/domain"
)

type FollowRepository interface {
	Create(ctx context.Context, follow *domain.Follow) error
	Delete(ctx context.Context, followerID, followingID uint) error
	IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error)
	FindFollowing(ctx context.Context, followerID uint) ([]domain.User, error)
	FindFollowers(ctx context.Context, followingID uint) ([]domain.User, error)
}

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

type Service struct {
	followRepo FollowRepository
	userRepo   UserRepository
}

func NewService(followRepo FollowRepository, userRepo UserRepository) *Service {
	return &Service{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

func (s *Service) Follow(ctx context.Context, followerID, followingID uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if followerID == followingID {
		return errors.New("cannot follow yourself")
	}

	if _, err := s.userRepo.FindByID(ctx, followingID); err != nil {
		return err
	}

	following, err := s.followRepo.IsFollowing(ctx, followerID, followingID)
	if err != nil {
		return err
	}
	if following {
		return errors.New("already following")
	}

	return s.followRepo.Create(ctx, &domain.Follow{
		FollowerID:  followerID,
		FollowingID: followingID,
	})
}

func (s *Service) Unfollow(ctx context.Context, followerID, followingID uint) error {
	return s.followRepo.Delete(ctx, followerID, followingID)
}

func (s *Service) GetFollowing(ctx context.Context, userID uint) ([]domain.User, error) {
	return s.followRepo.FindFollowing(ctx, userID)
}

func (s *Service) GetFollowers(ctx context.Context, userID uint) ([]domain.User, error) {
	return s.followRepo.FindFollowers(ctx, userID)
}
