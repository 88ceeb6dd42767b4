package spot

import (
	"context"
	"errors"
	"fmt"

	"ashiato/domain"
	"ashiato/pkg/logger"
)

type SpotRepository interface {
	Create(ctx context.Context, spot *domain.Spot) error
	FindByID(ctx context.Context, id uint) (domain.Spot, error)
	FindByOwner(ctx context.Context, userID uint) ([]domain.Spot, error)
	FindByOwnerAndList(ctx context.Context, userID uint, listName string) ([]domain.Spot, error)
	FindByRegion(ctx context.Context, region string) ([]domain.Spot, error)
	Update(ctx context.Context, spot *domain.Spot) error
	Delete(ctx context.Context, id uint) error
}

// PageMetaRepository fetches metadata for a spot URL. Failures are never
// fatal for spot creation.
type PageMetaRepository interface {
	FetchTitle(ctx context.Context, url string) (string, error)
}

type Service struct {
	spotRepo     SpotRepository
	pageMetaRepo PageMetaRepository
}

func NewService(spotRepo SpotRepository, pageMetaRepo PageMetaRepository) *Service {
	return &Service{
		spotRepo:     spotRepo,
		pageMetaRepo: pageMetaRepo,
	}
}

func (s *Service) CreateSpot(ctx context.Context, spot *domain.Spot) (*domain.Spot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if spot.ListName == "" {
		return nil, errors.New("list name is required")
	}

	// fill the place name from the page title when only a URL was given
	if spot.PlaceName == "" && spot.URL != "" && s.pageMetaRepo != nil {
		title, err := s.pageMetaRepo.FetchTitle(ctx, spot.URL)
		if err != nil {
			logger.Warn("Failed to fetch page title", err)
		} else {
			spot.PlaceName = title
		}
	}

	if spot.PlaceName == "" {
		return nil, errors.New("place name is required")
	}

	if err := s.spotRepo.Create(ctx, spot); err != nil {
		return nil, err
	}

	return spot, nil
}

func (s *Service) GetSpotByID(ctx context.Context, id uint) (domain.Spot, error) {
	return s.spotRepo.FindByID(ctx, id)
}

func (s *Service) GetSpotsByOwner(ctx context.Context, userID uint) ([]domain.Spot, error) {
	return s.spotRepo.FindByOwner(ctx, userID)
}

func (s *Service) GetSpotsByList(ctx context.Context, userID uint, listName string) ([]domain.Spot, error) {
	if listName == "" {
		return nil, errors.New("list name is required")
	}

	return s.spotRepo.FindByOwnerAndList(ctx, userID, listName)
}

func (s *Service) GetSpotsByRegion(ctx context.Context, region string) ([]domain.Spot, error) {
	if region == "" {
		return nil, errors.New("region is required")
	}

	return s.spotRepo.FindByRegion(ctx, region)
}

// UpdateSpot only lets the owner change a spot.
func (s *Service) UpdateSpot(ctx context.Context, userID uint, spot *domain.Spot) (*domain.Spot, error) {
	existing, err := s.spotRepo.FindByID(ctx, spot.ID)
	if err != nil {
		return nil, err
	}

	if existing.UserID != userID {
		return nil, errors.New("spot does not belong to user")
	}

	spot.UserID = existing.UserID

	if err := s.spotRepo.Update(ctx, spot); err != nil {
		return nil, err
	}

	updated, err := s.spotRepo.FindByID(ctx, spot.ID)
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (s *Service) DeleteSpot(ctx context.Context, userID, id uint) error {
	existing, err := s.spotRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if existing.UserID != userID {
		return errors.New("spot does not belong to user")
	}

	return s.spotRepo.Delete(ctx, id)
}
