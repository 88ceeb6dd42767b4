package recommendation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"ashiato/domain"
)

// Reason strings surfaced to the end user, one per scoring factor.
const (
	reasonFollowedOwner   = "フォローしているユーザーのスポット"
	reasonFollowedEngaged = "フォロー中のユーザーに人気のスポット"
	reasonPreferredRegion = "好みの地域のスポット"
	reasonHomeRegion      = "あなたのスポットが多い地域"
	reasonFamiliarList    = "よく利用するリストのスポット"
	reasonSharedKeywords  = "興味のあるキーワードを含むスポット"
	reasonFresh           = "新しく追加されたスポット"
	reasonRecent          = "最近追加されたスポット"
)

const (
	followBonus          = 30.0
	followedEngagedUnit  = 5.0
	followedEngagedCap   = 20.0
	preferredRegionBonus = 25.0
	homeRegionBonus      = 15.0
	familiarListBonus    = 20.0
	familiarListTopN     = 3
	keywordUnit          = 10.0
	keywordCap           = 25.0
	freshBonus           = 10.0
	recentBonus          = 5.0
	freshWindow          = 7 * 24 * time.Hour
	recentWindow         = 30 * 24 * time.Hour
)

// userProfile holds everything about the target user the per-candidate
// factors need, fetched once per recommendation call. A missing
// preferences row or empty history leaves the corresponding field empty,
// which every factor treats as "does not apply".
type userProfile struct {
	preferredRegions map[string]struct{}
	homeRegion       string
	familiarLists    map[string]struct{}
	ownKeywords      map[string]struct{}
}

func (s *Service) buildProfile(ctx context.Context, userID uint) (*userProfile, error) {
	profile := &userProfile{
		preferredRegions: make(map[string]struct{}),
		familiarLists:    make(map[string]struct{}),
	}

	prefs, err := s.prefsRepo.FindByUserID(ctx, userID)
	switch {
	case err == nil:
		for _, region := range prefs.PreferredRegions {
			profile.preferredRegions[region] = struct{}{}
		}
	case errors.Is(err, ErrPreferencesNotFound):
		// no stored preferences, factor simply contributes zero
	default:
		return nil, fmt.Errorf("load preferences: %w", err)
	}

	ownSpots, err := s.spotRepo.FindByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load own spots: %w", err)
	}
	profile.homeRegion = modeRegion(ownSpots)
	profile.ownKeywords = keywordsFromSpots(ownSpots)

	listCounts, err := s.interactionRepo.CountByListName(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("rank interacted lists: %w", err)
	}
	for i, lc := range listCounts {
		if i == familiarListTopN {
			break
		}
		profile.familiarLists[lc.ListName] = struct{}{}
	}

	return profile, nil
}

// modeRegion returns the single most frequent non-empty region among the
// given spots, empty string when there are none. Ties resolve to the
// lexicographically smallest region so repeated calls agree.
func modeRegion(spots []domain.Spot) string {
	counts := make(map[string]int)
	for _, spot := range spots {
		if spot.Region != "" {
			counts[spot.Region]++
		}
	}

	best := ""
	bestCount := 0
	for region, count := range counts {
		if count > bestCount || (count == bestCount && region < best) {
			best = region
			bestCount = count
		}
	}

	return best
}

// scoreSpot computes the full additive score for one candidate. Factors
// are independent: a factor that does not apply contributes zero and no
// reason, it never fails the call. Only storage errors abort.
func (s *Service) scoreSpot(
	ctx context.Context,
	userID uint,
	profile *userProfile,
	spot domain.Spot,
) (domain.RecommendationScore, error) {

	total := 0.0
	reasons := make([]string, 0, 4)

	social, socialReasons, err := s.socialScore(ctx, userID, spot)
	if err != nil {
		return domain.RecommendationScore{}, err
	}
	total += social
	reasons = append(reasons, socialReasons...)

	regional, regionalReasons := regionalScore(profile, spot)
	total += regional
	reasons = append(reasons, regionalReasons...)

	pattern, patternReasons := interactionPatternScore(profile, spot)
	total += pattern
	reasons = append(reasons, patternReasons...)

	content, contentReasons := contentScore(profile, spot)
	total += content
	reasons = append(reasons, contentReasons...)

	recency, recencyReasons := recencyScore(time.Now(), spot.CreatedAt)
	total += recency
	reasons = append(reasons, recencyReasons...)

	return domain.RecommendationScore{
		Spot:    spot,
		Score:   round2(total),
		Reasons: reasons,
	}, nil
}

// socialScore is the only factor that goes back to the store per
// candidate: whether the user follows the owner, and how many followed
// users interacted with the spot.
func (s *Service) socialScore(
	ctx context.Context,
	userID uint,
	spot domain.Spot,
) (float64, []string, error) {

	score := 0.0
	var reasons []string

	following, err := s.followRepo.IsFollowing(ctx, userID, spot.UserID)
	if err != nil {
		return 0, nil, fmt.Errorf("check follow edge: %w", err)
	}
	if following {
		score += followBonus
		reasons = append(reasons, reasonFollowedOwner)
	}

	n, err := s.interactionRepo.CountBySpotFromFollowedUsers(ctx, userID, spot.ID)
	if err != nil {
		return 0, nil, fmt.Errorf("count followed-user interactions: %w", err)
	}
	if n > 0 {
		score += math.Min(followedEngagedUnit*float64(n), followedEngagedCap)
		reasons = append(reasons, reasonFollowedEngaged)
	}

	return score, reasons, nil
}

func regionalScore(profile *userProfile, spot domain.Spot) (float64, []string) {
	if spot.Region == "" {
		return 0, nil
	}

	score := 0.0
	var reasons []string

	if _, ok := profile.preferredRegions[spot.Region]; ok {
		score += preferredRegionBonus
		reasons = append(reasons, reasonPreferredRegion)
	}

	if profile.homeRegion != "" && spot.Region == profile.homeRegion {
		score += homeRegionBonus
		reasons = append(reasons, reasonHomeRegion)
	}

	return score, reasons
}

func interactionPatternScore(profile *userProfile, spot domain.Spot) (float64, []string) {
	if _, ok := profile.familiarLists[spot.ListName]; !ok {
		return 0, nil
	}

	return familiarListBonus, []string{reasonFamiliarList}
}

func contentScore(profile *userProfile, spot domain.Spot) (float64, []string) {
	if len(profile.ownKeywords) == 0 {
		return 0, nil
	}

	shared := 0
	for keyword := range keywordsFromText(spot.Comment + " " + spot.PlaceName) {
		if _, ok := profile.ownKeywords[keyword]; ok {
			shared++
		}
	}
	if shared == 0 {
		return 0, nil
	}

	return math.Min(keywordUnit*float64(shared), keywordCap), []string{reasonSharedKeywords}
}

func recencyScore(now, createdAt time.Time) (float64, []string) {
	age := now.Sub(createdAt)

	switch {
	case age <= freshWindow:
		return freshBonus, []string{reasonFresh}
	case age <= recentWindow:
		return recentBonus, []string{reasonRecent}
	default:
		return 0, nil
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
