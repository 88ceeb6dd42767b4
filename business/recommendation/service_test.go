//go:build !integration

package recommendation

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"ashiato/domain"
)

// fakeStore is an in-memory implementation of all four repository
// interfaces, good enough to exercise every scoring factor.
type fakeStore struct {
	mu           sync.Mutex
	spots        []domain.Spot
	follows      map[[2]uint]bool
	interactions []domain.UserInteraction
	prefs        map[uint]domain.UserPreferences
	failWith     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		follows: make(map[[2]uint]bool),
		prefs:   make(map[uint]domain.UserPreferences),
	}
}

func (f *fakeStore) FindAllExcludingOwner(_ context.Context, userID uint) ([]domain.Spot, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []domain.Spot
	for _, s := range f.spots {
		if s.UserID != userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) FindByOwner(_ context.Context, userID uint) ([]domain.Spot, error) {
	var out []domain.Spot
	for _, s := range f.spots {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) IsFollowing(_ context.Context, followerID, followingID uint) (bool, error) {
	if f.failWith != nil {
		return false, f.failWith
	}
	return f.follows[[2]uint{followerID, followingID}], nil
}

func (f *fakeStore) Create(_ context.Context, interaction *domain.UserInteraction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	interaction.ID = uint(len(f.interactions) + 1)
	interaction.CreatedAt = time.Now()
	f.interactions = append(f.interactions, *interaction)
	return nil
}

func (f *fakeStore) CountBySpotFromFollowedUsers(_ context.Context, userID, spotID uint) (int64, error) {
	var n int64
	for _, iv := range f.interactions {
		if iv.SpotID == spotID && f.follows[[2]uint{userID, iv.UserID}] {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) spotByID(id uint) (domain.Spot, bool) {
	for _, s := range f.spots {
		if s.ID == id {
			return s, true
		}
	}
	return domain.Spot{}, false
}

func (f *fakeStore) CountByListName(_ context.Context, userID uint) ([]ListInteractionCount, error) {
	counts := make(map[string]int64)
	for _, iv := range f.interactions {
		if iv.UserID != userID {
			continue
		}
		if s, ok := f.spotByID(iv.SpotID); ok {
			counts[s.ListName]++
		}
	}
	out := make([]ListInteractionCount, 0, len(counts))
	for name, c := range counts {
		out = append(out, ListInteractionCount{ListName: name, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out, nil
}

func (f *fakeStore) SumWeightByRegion(_ context.Context, userID uint) ([]RegionWeight, error) {
	weights := make(map[string]int64)
	for _, iv := range f.interactions {
		if iv.UserID != userID {
			continue
		}
		if s, ok := f.spotByID(iv.SpotID); ok && s.Region != "" {
			weights[s.Region] += int64(iv.Weight)
		}
	}
	out := make([]RegionWeight, 0, len(weights))
	for region, w := range weights {
		out = append(out, RegionWeight{Region: region, TotalWeight: w})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TotalWeight > out[j].TotalWeight })
	return out, nil
}

func (f *fakeStore) FindByUserID(_ context.Context, userID uint) (domain.UserPreferences, error) {
	p, ok := f.prefs[userID]
	if !ok {
		return domain.UserPreferences{}, ErrPreferencesNotFound
	}
	return p, nil
}

func (f *fakeStore) Upsert(_ context.Context, prefs *domain.UserPreferences) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	prefs.UpdatedAt = time.Now()
	f.prefs[prefs.UserID] = *prefs
	return nil
}

func newTestService(store *fakeStore) *Service {
	return NewService(store, store, store, store)
}

func TestRecommendations_LimitAndNonNegativeScores(t *testing.T) {
	store := newFakeStore()
	for i := uint(1); i <= 25; i++ {
		store.spots = append(store.spots, domain.Spot{
			ID:        i,
			UserID:    2,
			ListName:  "tokyo-eats",
			Region:    "東京都",
			PlaceName: "spot",
			CreatedAt: time.Now().AddDate(0, 0, -100),
		})
	}

	svc := newTestService(store)

	recs, err := svc.GetPersonalizedRecommendations(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 10 {
		t.Fatalf("expected 10 recommendations, got %d", len(recs))
	}
	for _, rec := range recs {
		if rec.Score < 0 {
			t.Errorf("spot %d has negative score %v", rec.Spot.ID, rec.Score)
		}
	}

	// pool smaller than limit
	recs, err = svc.GetPersonalizedRecommendations(context.Background(), 1, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 25 {
		t.Fatalf("expected all 25 candidates, got %d", len(recs))
	}
}

func TestRecommendations_EmptyCandidatePool(t *testing.T) {
	store := newFakeStore()
	store.spots = []domain.Spot{
		{ID: 1, UserID: 1, ListName: "mine", CreatedAt: time.Now()},
	}

	svc := newTestService(store)

	recs, err := svc.GetPersonalizedRecommendations(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("expected empty result, got %d entries", len(recs))
	}
}

func TestSocialScore_FollowedOwnerWithInteractionBonus(t *testing.T) {
	store := newFakeStore()
	store.follows[[2]uint{1, 2}] = true
	store.follows[[2]uint{1, 3}] = true
	spot := domain.Spot{
		ID:        10,
		UserID:    2,
		ListName:  "osaka",
		CreatedAt: time.Now().AddDate(0, 0, -100),
	}
	store.spots = []domain.Spot{spot}

	// six interactions by a followed user: bonus capped at 20
	for i := 0; i < 6; i++ {
		store.interactions = append(store.interactions, domain.UserInteraction{
			UserID: 3, SpotID: 10, InteractionType: "view", Weight: 1,
		})
	}

	svc := newTestService(store)

	score, reasons, err := svc.socialScore(context.Background(), 1, spot)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score != 30+20 {
		t.Fatalf("expected social score 50, got %v", score)
	}
	if len(reasons) != 2 {
		t.Fatalf("expected 2 social reasons, got %v", reasons)
	}
}

func TestRecencyScore_Windows(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name      string
		createdAt time.Time
		want      float64
	}{
		{"today", now, 10},
		{"ten days ago", now.AddDate(0, 0, -10), 5},
		{"forty days ago", now.AddDate(0, 0, -40), 0},
	}

	for _, tc := range cases {
		got, _ := recencyScore(now, tc.createdAt)
		if got != tc.want {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestRecordInteraction_Weights(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	if err := svc.RecordInteraction(context.Background(), 1, 5, "visit"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.RecordInteraction(context.Background(), 1, 5, "unknown-type"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := store.interactions[0].Weight; got != 10 {
		t.Errorf("visit: expected weight 10, got %d", got)
	}
	if got := store.interactions[1].Weight; got != 1 {
		t.Errorf("unknown-type: expected weight 1, got %d", got)
	}
}

func TestUpdateUserPreferences_SingleRegionAndIdempotence(t *testing.T) {
	store := newFakeStore()
	store.spots = []domain.Spot{
		{ID: 1, UserID: 2, ListName: "kyoto", Region: "京都府", CreatedAt: time.Now()},
	}
	store.interactions = []domain.UserInteraction{
		{UserID: 1, SpotID: 1, InteractionType: "like", Weight: 3},
		{UserID: 1, SpotID: 1, InteractionType: "visit", Weight: 10},
	}

	svc := newTestService(store)

	if err := svc.UpdateUserPreferences(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := store.prefs[1].PreferredRegions
	if len(first) != 1 || first[0] != "京都府" {
		t.Fatalf("expected preferred regions [京都府], got %v", first)
	}

	// no new interactions: a second refresh must produce the same ranking
	if err := svc.UpdateUserPreferences(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := store.prefs[1].PreferredRegions
	if len(second) != 1 || second[0] != "京都府" {
		t.Fatalf("expected identical preferred regions after refresh, got %v", second)
	}
}

func TestScoring_FollowedFreshSpotScenario(t *testing.T) {
	store := newFakeStore()
	store.follows[[2]uint{1, 2}] = true
	store.spots = []domain.Spot{
		{
			ID:        7,
			UserID:    2,
			ListName:  "tokyo-cafes",
			Region:    "東京都",
			PlaceName: "Cafe Example",
			Comment:   "好きなカフェ",
			CreatedAt: time.Now(),
		},
	}

	svc := newTestService(store)

	recs, err := svc.GetPersonalizedRecommendations(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}

	rec := recs[0]
	if rec.Score != 40.00 {
		t.Errorf("expected score 40.00, got %v", rec.Score)
	}

	wantReasons := []string{
		"フォローしているユーザーのスポット",
		"新しく追加されたスポット",
	}
	if len(rec.Reasons) != len(wantReasons) {
		t.Fatalf("expected reasons %v, got %v", wantReasons, rec.Reasons)
	}
	for i, want := range wantReasons {
		if rec.Reasons[i] != want {
			t.Errorf("reason %d: expected %q, got %q", i, want, rec.Reasons[i])
		}
	}
}

func TestScoring_PreferredRegionAndFamiliarList(t *testing.T) {
	store := newFakeStore()
	store.prefs[1] = domain.UserPreferences{
		UserID:           1,
		PreferredRegions: []string{"東京都"},
	}
	store.spots = []domain.Spot{
		{
			ID:        7,
			UserID:    2,
			ListName:  "tokyo-cafes",
			Region:    "東京都",
			PlaceName: "spot",
			CreatedAt: time.Now().AddDate(0, 0, -100),
		},
	}
	// interactions concentrated on one list put it in the familiar top 3
	for i := 0; i < 3; i++ {
		store.interactions = append(store.interactions, domain.UserInteraction{
			UserID: 1, SpotID: 7, InteractionType: "view", Weight: 1,
		})
	}

	svc := newTestService(store)

	recs, err := svc.GetPersonalizedRecommendations(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}

	// 25 for the preferred region plus 20 for the familiar list
	rec := recs[0]
	if rec.Score != 45.00 {
		t.Errorf("expected score 45.00, got %v", rec.Score)
	}

	wantReasons := []string{
		"好みの地域のスポット",
		"よく利用するリストのスポット",
	}
	if len(rec.Reasons) != len(wantReasons) {
		t.Fatalf("expected reasons %v, got %v", wantReasons, rec.Reasons)
	}
	for i, want := range wantReasons {
		if rec.Reasons[i] != want {
			t.Errorf("reason %d: expected %q, got %q", i, want, rec.Reasons[i])
		}
	}
}

func TestScoring_HomeRegion(t *testing.T) {
	store := newFakeStore()
	store.spots = []domain.Spot{
		// two owned spots make 大阪府 the user's mode region
		{ID: 1, UserID: 1, ListName: "mine", Region: "大阪府", PlaceName: "spot", CreatedAt: time.Now().AddDate(0, 0, -100)},
		{ID: 2, UserID: 1, ListName: "mine", Region: "大阪府", PlaceName: "spot", CreatedAt: time.Now().AddDate(0, 0, -100)},
		{ID: 3, UserID: 2, ListName: "other", Region: "大阪府", PlaceName: "spot", CreatedAt: time.Now().AddDate(0, 0, -100)},
	}

	svc := newTestService(store)

	recs, err := svc.GetPersonalizedRecommendations(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}

	rec := recs[0]
	if rec.Score != 15.00 {
		t.Errorf("expected score 15.00, got %v", rec.Score)
	}
	if len(rec.Reasons) != 1 || rec.Reasons[0] != "あなたのスポットが多い地域" {
		t.Errorf("expected the home-region reason, got %v", rec.Reasons)
	}
}

func TestRanking_TieBreakBySpotID(t *testing.T) {
	store := newFakeStore()
	now := time.Now().AddDate(0, 0, -100)
	// identical spots in reverse id order so the sort has to reorder them
	store.spots = []domain.Spot{
		{ID: 3, UserID: 2, ListName: "a", CreatedAt: now},
		{ID: 1, UserID: 2, ListName: "a", CreatedAt: now},
		{ID: 2, UserID: 2, ListName: "a", CreatedAt: now},
	}

	svc := newTestService(store)

	recs, err := svc.GetPersonalizedRecommendations(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, wantID := range []uint{1, 2, 3} {
		if recs[i].Spot.ID != wantID {
			t.Errorf("position %d: expected spot %d, got %d", i, wantID, recs[i].Spot.ID)
		}
	}
}

func TestRecommendations_StorageErrorIsFatal(t *testing.T) {
	store := newFakeStore()
	store.spots = []domain.Spot{
		{ID: 1, UserID: 2, ListName: "a", CreatedAt: time.Now()},
	}

	svc := newTestService(store)
	store.failWith = nil

	// break the follow lookup only, after candidates load fine
	broken := newFakeStore()
	broken.spots = store.spots
	broken.failWith = errors.New("connection refused")

	svcBroken := NewService(store, broken, store, store)
	if _, err := svcBroken.GetPersonalizedRecommendations(context.Background(), 1, 10); err == nil {
		t.Fatal("expected a fatal error, got none")
	}

	if _, err := svc.GetPersonalizedRecommendations(context.Background(), 1, 10); err != nil {
		t.Fatalf("unexpected error on healthy store: %v", err)
	}
}

func TestContentScore_CappedIntersection(t *testing.T) {
	profile := &userProfile{
		ownKeywords: keywordsFromText("カフェ コーヒー ケーキ パン"),
	}
	spot := domain.Spot{
		PlaceName: "パンとケーキのカフェ",
		Comment:   "コーヒーが美味しい",
	}

	score, reasons := contentScore(profile, spot)
	if score != 25 {
		t.Errorf("expected capped content score 25, got %v", score)
	}
	if len(reasons) != 1 {
		t.Errorf("expected one content reason, got %v", reasons)
	}

	// no overlap
	score, reasons = contentScore(profile, domain.Spot{PlaceName: "山の温泉"})
	if score != 0 || len(reasons) != 0 {
		t.Errorf("expected zero contribution, got %v %v", score, reasons)
	}
}

func TestModeRegion(t *testing.T) {
	spots := []domain.Spot{
		{Region: "東京都"},
		{Region: "大阪府"},
		{Region: "東京都"},
		{Region: ""},
	}
	if got := modeRegion(spots); got != "東京都" {
		t.Errorf("expected 東京都, got %q", got)
	}
	if got := modeRegion(nil); got != "" {
		t.Errorf("expected empty mode for no spots, got %q", got)
	}
}
