package recommendation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"ashiato/domain"
	"ashiato/pkg/logger"
)

const (
	defaultLimit        = 10
	maxPreferredRegions = 5
	scoringWorkers      = 8
)

// ErrPreferencesNotFound is returned by PreferencesRepository when no row
// exists for a user. The scorer treats it as "no stored preference", never
// as a failure.
var ErrPreferencesNotFound = errors.New("preferences not found")

// ---- Repository interfaces ----

type SpotRepository interface {
	FindAllExcludingOwner(ctx context.Context, userID uint) ([]domain.Spot, error)
	FindByOwner(ctx context.Context, userID uint) ([]domain.Spot, error)
}

type FollowRepository interface {
	IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error)
}

type ListInteractionCount struct {
	ListName string
	Count    int64
}

type RegionWeight struct {
	Region      string
	TotalWeight int64
}

type InteractionRepository interface {
	Create(ctx context.Context, interaction *domain.UserInteraction) error
	CountBySpotFromFollowedUsers(ctx context.Context, userID, spotID uint) (int64, error)
	// CountByListName returns list names ranked by raw interaction count,
	// highest first.
	CountByListName(ctx context.Context, userID uint) ([]ListInteractionCount, error)
	// SumWeightByRegion returns regions ranked by summed interaction
	// weight, highest first, null/empty regions excluded.
	SumWeightByRegion(ctx context.Context, userID uint) ([]RegionWeight, error)
}

type PreferencesRepository interface {
	FindByUserID(ctx context.Context, userID uint) (domain.UserPreferences, error)
	Upsert(ctx context.Context, prefs *domain.UserPreferences) error
}

// ---- Service ----

type Service struct {
	spotRepo        SpotRepository
	followRepo      FollowRepository
	interactionRepo InteractionRepository
	prefsRepo       PreferencesRepository
}

func NewService(
	spotRepo SpotRepository,
	followRepo FollowRepository,
	interactionRepo InteractionRepository,
	prefsRepo PreferencesRepository,
) *Service {
	return &Service{
		spotRepo:        spotRepo,
		followRepo:      followRepo,
		interactionRepo: interactionRepo,
		prefsRepo:       prefsRepo,
	}
}

// GetPersonalizedRecommendations scores every spot not owned by userID and
// returns the top entries ordered by score descending, ties broken by
// ascending spot ID. A storage failure aborts the whole call; no partial
// result is ever returned.
func (s *Service) GetPersonalizedRecommendations(
	ctx context.Context,
	userID uint,
	limit int,
) ([]domain.RecommendationScore, error) {

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	candidates, err := s.spotRepo.FindAllExcludingOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load candidate spots: %w", err)
	}
	if len(candidates) == 0 {
		return []domain.RecommendationScore{}, nil
	}

	profile, err := s.buildProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("build user profile: %w", err)
	}

	tid := TraceIDFromContext(ctx)
	logger.Debug("recommend",
		"trace_id", tid,
		"user_id", userID,
		"limit", limit,
		"candidate_count", len(candidates),
	)

	scored, err := s.scoreCandidates(ctx, userID, profile, candidates)
	if err != nil {
		return nil, err
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Spot.ID < scored[j].Spot.ID
	})

	if limit > len(scored) {
		limit = len(scored)
	}

	return scored[:limit], nil
}

// scoreCandidates fans per-candidate scoring out over a bounded worker
// pool. Each candidate may cost several data-store round trips, so the
// fan-out is capped rather than one goroutine per spot. Results keep their
// input slot, so concurrency never affects the final ordering.
func (s *Service) scoreCandidates(
	ctx context.Context,
	userID uint,
	profile *userProfile,
	candidates []domain.Spot,
) ([]domain.RecommendationScore, error) {

	results := make([]domain.RecommendationScore, len(candidates))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	sem := make(chan struct{}, scoringWorkers)

	for i, spot := range candidates {
		wg.Add(1)
		sem <- struct{}{}

		go func(idx int, spot domain.Spot) {
			defer wg.Done()
			defer func() { <-sem }()

			mu.Lock()
			failed := firstErr != nil
			mu.Unlock()
			if failed {
				return
			}

			rec, err := s.scoreSpot(ctx, userID, profile, spot)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}

			results[idx] = rec
		}(i, spot)
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	return results, nil
}

// RecordInteraction appends one weighted event to the interaction log.
// Unknown interaction types are not rejected; they fall back to weight 1.
func (s *Service) RecordInteraction(
	ctx context.Context,
	userID, spotID uint,
	interactionType string,
) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	interaction := &domain.UserInteraction{
		UserID:          userID,
		SpotID:          spotID,
		InteractionType: interactionType,
		Weight:          InteractionWeight(interactionType),
	}

	if err := s.interactionRepo.Create(ctx, interaction); err != nil {
		return fmt.Errorf("failed to save interaction: %w", err)
	}

	InteractionsRecordedTotal.WithLabelValues(interactionType).Inc()

	return nil
}

// UpdateUserPreferences recomputes the user's preferred regions as the
// top regions by summed interaction weight and upserts the preferences
// row. Concurrent calls are last-write-wins; the recomputation is
// idempotent over the interaction log, so a lost write converges on the
// next refresh.
func (s *Service) UpdateUserPreferences(ctx context.Context, userID uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	regions, err := s.interactionRepo.SumWeightByRegion(ctx, userID)
	if err != nil {
		return fmt.Errorf("rank regions by interaction weight: %w", err)
	}

	preferred := make([]string, 0, maxPreferredRegions)
	for _, rw := range regions {
		if rw.Region == "" {
			continue
		}
		preferred = append(preferred, rw.Region)
		if len(preferred) == maxPreferredRegions {
			break
		}
	}

	prefs, err := s.prefsRepo.FindByUserID(ctx, userID)
	if err != nil && !errors.Is(err, ErrPreferencesNotFound) {
		return fmt.Errorf("load preferences: %w", err)
	}
	if errors.Is(err, ErrPreferencesNotFound) {
		prefs = domain.UserPreferences{
			UserID:              userID,
			PreferredCategories: []string{},
			InterestTags:        []string{},
		}
	}

	prefs.PreferredRegions = preferred

	if err := s.prefsRepo.Upsert(ctx, &prefs); err != nil {
		return fmt.Errorf("upsert preferences: %w", err)
	}

	return nil
}
