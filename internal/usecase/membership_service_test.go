package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/V1TECKOR/interclub/internal/infrastructure/repository/memory"
)

type captureNotifier struct {
	mu    sync.Mutex
	items []Notification
}

func (c *captureNotifier) Send(_ context.Context, item Notification) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
	return nil
}

func (c *captureNotifier) sent() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Notification(nil), c.items...)
}

func TestMembershipService_RequestMembership_NotifiesCaptain(t *testing.T) {
	store := memory.NewSeededStore()
	notifier := &captureNotifier{}
	service := NewMembershipService(store, notifier, discardLogger())

	item, err := service.RequestMembership(t.Context(), memory.UserIDFrida, memory.TeamIDHerren1)
	if err != nil {
		t.Fatalf("request membership: %v", err)
	}
	if item.Approved {
		t.Fatalf("expected pending membership")
	}

	sent := notifier.sent()
	if len(sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(sent))
	}
	if sent[0].To != "anna@blauweiss.example" {
		t.Fatalf("expected captain notified, got %q", sent[0].To)
	}
}

func TestMembershipService_RequestMembership_Duplicate(t *testing.T) {
	store := memory.NewSeededStore()
	service := NewMembershipService(store, nil, discardLogger())

	// Dirk already has a pending request in the seed data.
	_, err := service.RequestMembership(t.Context(), memory.UserIDDirk, memory.TeamIDHerren1)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestMembershipService_ApproveMembership(t *testing.T) {
	store := memory.NewSeededStore()
	notifier := &captureNotifier{}
	service := NewMembershipService(store, notifier, discardLogger())

	if err := service.ApproveMembership(t.Context(), memory.UserIDAnna, memory.UserIDDirk, memory.TeamIDHerren1); err != nil {
		t.Fatalf("approve membership: %v", err)
	}

	approved, err := service.IsApprovedMember(t.Context(), memory.UserIDDirk, memory.TeamIDHerren1)
	if err != nil {
		t.Fatalf("is approved member: %v", err)
	}
	if !approved {
		t.Fatalf("expected dirk approved")
	}

	sent := notifier.sent()
	if len(sent) != 1 || sent[0].To != "dirk@blauweiss.example" {
		t.Fatalf("expected member notified, got %v", sent)
	}

	// A second approve conflicts instead of silently succeeding.
	err = service.ApproveMembership(t.Context(), memory.UserIDAnna, memory.UserIDDirk, memory.TeamIDHerren1)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on repeat approve, got %v", err)
	}
}

func TestMembershipService_ApproveMembership_ClubAdminAllowed(t *testing.T) {
	store := memory.NewSeededStore()
	service := NewMembershipService(store, nil, discardLogger())

	if err := service.ApproveMembership(t.Context(), memory.UserIDErik, memory.UserIDDirk, memory.TeamIDHerren1); err != nil {
		t.Fatalf("approve as club admin: %v", err)
	}
}

func TestMembershipService_ApproveMembership_RequiresAuthority(t *testing.T) {
	store := memory.NewSeededStore()
	service := NewMembershipService(store, nil, discardLogger())

	err := service.ApproveMembership(t.Context(), memory.UserIDBen, memory.UserIDDirk, memory.TeamIDHerren1)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for plain member, got %v", err)
	}
}

func TestMembershipService_DenyMembership(t *testing.T) {
	store := memory.NewSeededStore()
	service := NewMembershipService(store, nil, discardLogger())

	if err := service.DenyMembership(t.Context(), memory.UserIDAnna, memory.UserIDDirk, memory.TeamIDHerren1); err != nil {
		t.Fatalf("deny membership: %v", err)
	}

	_, exists, err := store.Memberships().Get(t.Context(), memory.UserIDDirk, memory.TeamIDHerren1)
	if err != nil {
		t.Fatalf("get membership: %v", err)
	}
	if exists {
		t.Fatalf("expected denied request removed")
	}
}

func TestMembershipService_DenyMembership_ApprovedIsKept(t *testing.T) {
	store := memory.NewSeededStore()
	service := NewMembershipService(store, nil, discardLogger())

	err := service.DenyMembership(t.Context(), memory.UserIDAnna, memory.UserIDBen, memory.TeamIDHerren1)
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState for approved membership, got %v", err)
	}
}

func TestMembershipService_ListRoster(t *testing.T) {
	store := memory.NewSeededStore()
	service := NewMembershipService(store, nil, discardLogger())

	all, err := service.ListRoster(t.Context(), memory.UserIDAnna, memory.TeamIDHerren1, false)
	if err != nil {
		t.Fatalf("list roster: %v", err)
	}
	approved, err := service.ListRoster(t.Context(), memory.UserIDAnna, memory.TeamIDHerren1, true)
	if err != nil {
		t.Fatalf("list approved roster: %v", err)
	}

	if len(all) != 4 {
		t.Fatalf("expected 4 memberships, got %d", len(all))
	}
	if len(approved) != 3 {
		t.Fatalf("expected 3 approved memberships, got %d", len(approved))
	}
}

func TestMembershipService_ListRoster_OutsiderForbidden(t *testing.T) {
	store := memory.NewSeededStore()
	service := NewMembershipService(store, nil, discardLogger())

	if _, err := service.ListRoster(t.Context(), memory.UserIDFrida, memory.TeamIDHerren1, false); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for outsider, got %v", err)
	}
	if _, err := service.ListRoster(t.Context(), memory.UserIDDirk, memory.TeamIDHerren1, false); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for pending member, got %v", err)
	}

	// The club admin oversees every roster in the club.
	if _, err := service.ListRoster(t.Context(), memory.UserIDErik, memory.TeamIDHerren1, false); err != nil {
		t.Fatalf("club admin should read the roster: %v", err)
	}
}
