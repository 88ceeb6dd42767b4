//go:build !integration

package follow

import (
	"context"
	"errors"
	"testing"

	"ashiato/domain"
)

type fakeFollowRepo struct {
	pairs map[[2]uint]bool
}

func newFakeFollowRepo() *fakeFollowRepo {
	return &fakeFollowRepo{pairs: make(map[[2]uint]bool)}
}

func (f *fakeFollowRepo) Create(_ context.Context, follow *domain.Follow) error {
	f.pairs[[2]uint{follow.FollowerID, follow.FollowingID}] = true
	return nil
}

func (f *fakeFollowRepo) Delete(_ context.Context, followerID, followingID uint) error {
	key := [2]uint{followerID, followingID}
	if !f.pairs[key] {
		return errors.New("follow not found")
	}
	delete(f.pairs, key)
	return nil
}

func (f *fakeFollowRepo) IsFollowing(_ context.Context, followerID, followingID uint) (bool, error) {
	return f.pairs[[2]uint{followerID, followingID}], nil
}

func (f *fakeFollowRepo) FindFollowing(_ context.Context, followerID uint) ([]domain.User, error) {
	var out []domain.User
	for pair := range f.pairs {
		if pair[0] == followerID {
			out = append(out, domain.User{ID: pair[1]})
		}
	}
	return out, nil
}

func (f *fakeFollowRepo) FindFollowers(_ context.Context, followingID uint) ([]domain.User, error) {
	var out []domain.User
	for pair := range f.pairs {
		if pair[1] == followingID {
			out = append(out, domain.User{ID: pair[0]})
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	ids map[uint]bool
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	if !f.ids[id] {
		return domain.User{}, errors.New("user not found")
	}
	return domain.User{ID: id}, nil
}

func TestFollow_SelfFollowRejected(t *testing.T) {
	svc := NewService(newFakeFollowRepo(), &fakeUserRepo{ids: map[uint]bool{1: true}})

	err := svc.Follow(context.Background(), 1, 1)
	if err == nil || err.Error() != "cannot follow yourself" {
		t.Fatalf("expected self-follow rejection, got %v", err)
	}
}

func TestFollow_DuplicateRejected(t *testing.T) {
	svc := NewService(newFakeFollowRepo(), &fakeUserRepo{ids: map[uint]bool{1: true, 2: true}})

	if err := svc.Follow(context.Background(), 1, 2); err != nil {
		t.Fatalf("first follow failed: %v", err)
	}

	err := svc.Follow(context.Background(), 1, 2)
	if err == nil || err.Error() != "already following" {
		t.Fatalf("expected duplicate rejection, got %v", err)
	}
}

func TestFollow_UnknownTargetRejected(t *testing.T) {
	svc := NewService(newFakeFollowRepo(), &fakeUserRepo{ids: map[uint]bool{1: true}})

	if err := svc.Follow(context.Background(), 1, 99); err == nil {
		t.Fatal("expected error for unknown target user")
	}
}

func TestUnfollow_RemovesPair(t *testing.T) {
	repo := newFakeFollowRepo()
	svc := NewService(repo, &fakeUserRepo{ids: map[uint]bool{1: true, 2: true}})

	if err := svc.Follow(context.Background(), 1, 2); err != nil {
		t.Fatalf("follow failed: %v", err)
	}
	if err := svc.Unfollow(context.Background(), 1, 2); err != nil {
		t.Fatalf("unfollow failed: %v", err)
	}
	if err := svc.Unfollow(context.Background(), 1, 2); err == nil {
		t.Fatal("expected error when unfollowing twice")
	}

	following, err := svc.GetFollowing(context.Background(), 1)
	if err != nil {
		t.Fatalf("get following failed: %v", err)
	}
	if len(following) != 0 {
		t.Errorf("expected no remaining follows, got %d", len(following))
	}
}
