//go:build !integration

package spot

import (
	"context"
	"errors"
	"testing"

	"ashiato/domain"
)

type fakeSpotRepo struct {
	spots  map[uint]domain.Spot
	nextID uint
}

func newFakeSpotRepo() *fakeSpotRepo {
	return &fakeSpotRepo{spots: make(map[uint]domain.Spot), nextID: 1}
}

func (f *fakeSpotRepo) Create(_ context.Context, spot *domain.Spot) error {
	spot.ID = f.nextID
	f.nextID++
	f.spots[spot.ID] = *spot
	return nil
}

func (f *fakeSpotRepo) FindByID(_ context.Context, id uint) (domain.Spot, error) {
	s, ok := f.spots[id]
	if !ok {
		return domain.Spot{}, errors.New("spot not found")
	}
	return s, nil
}

func (f *fakeSpotRepo) FindByOwner(_ context.Context, userID uint) ([]domain.Spot, error) {
	var out []domain.Spot
	for _, s := range f.spots {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSpotRepo) FindByOwnerAndList(_ context.Context, userID uint, listName string) ([]domain.Spot, error) {
	var out []domain.Spot
	for _, s := range f.spots {
		if s.UserID == userID && s.ListName == listName {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSpotRepo) FindByRegion(_ context.Context, region string) ([]domain.Spot, error) {
	var out []domain.Spot
	for _, s := range f.spots {
		if s.Region == region {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSpotRepo) Update(_ context.Context, spot *domain.Spot) error {
	if _, ok := f.spots[spot.ID]; !ok {
		return errors.New("spot not found or already deleted")
	}
	existing := f.spots[spot.ID]
	spot.UserID = existing.UserID
	f.spots[spot.ID] = *spot
	return nil
}

func (f *fakeSpotRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.spots[id]; !ok {
		return errors.New("spot not found or already deleted")
	}
	delete(f.spots, id)
	return nil
}

type fakePageMeta struct {
	title string
	err   error
}

func (f *fakePageMeta) FetchTitle(_ context.Context, _ string) (string, error) {
	return f.title, f.err
}

func TestCreateSpot_FillsPlaceNameFromPageTitle(t *testing.T) {
	repo := newFakeSpotRepo()
	svc := NewService(repo, &fakePageMeta{title: "喫茶ソワレ"})

	created, err := svc.CreateSpot(context.Background(), &domain.Spot{
		UserID:   1,
		ListName: "kyoto-cafes",
		URL:      "https://example.com/soiree",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.PlaceName != "喫茶ソワレ" {
		t.Errorf("expected place name from page title, got %q", created.PlaceName)
	}
}

func TestCreateSpot_TitleFetchFailureIsNotFatal(t *testing.T) {
	repo := newFakeSpotRepo()
	svc := NewService(repo, &fakePageMeta{err: errors.New("timeout")})

	// fetch fails and there is no place name: creation must be rejected,
	// but with a validation error, not the fetch error
	_, err := svc.CreateSpot(context.Background(), &domain.Spot{
		UserID:   1,
		ListName: "kyoto-cafes",
		URL:      "https://example.com/down",
	})
	if err == nil || err.Error() != "place name is required" {
		t.Fatalf("expected place name validation error, got %v", err)
	}

	// with an explicit place name the fetch failure is irrelevant
	created, err := svc.CreateSpot(context.Background(), &domain.Spot{
		UserID:    1,
		ListName:  "kyoto-cafes",
		PlaceName: "喫茶ソワレ",
		URL:       "https://example.com/down",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == 0 {
		t.Error("expected spot to be persisted")
	}
}

func TestUpdateSpot_OwnershipEnforced(t *testing.T) {
	repo := newFakeSpotRepo()
	svc := NewService(repo, nil)

	created, err := svc.CreateSpot(context.Background(), &domain.Spot{
		UserID:    1,
		ListName:  "tokyo",
		PlaceName: "spot",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.UpdateSpot(context.Background(), 2, &domain.Spot{
		ID:        created.ID,
		ListName:  "tokyo",
		PlaceName: "hijacked",
	})
	if err == nil || err.Error() != "spot does not belong to user" {
		t.Fatalf("expected ownership error, got %v", err)
	}

	if err := svc.DeleteSpot(context.Background(), 2, created.ID); err == nil {
		t.Fatal("expected ownership error on delete")
	}

	if err := svc.DeleteSpot(context.Background(), 1, created.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
}
