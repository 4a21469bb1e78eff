package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/V1TECKOR/interclub/internal/domain/match"
	"github.com/V1TECKOR/interclub/internal/infrastructure/repository/memory"
)

func TestMatchService_CreateMatch_CollapsesDuplicateDates(t *testing.T) {
	store := memory.NewSeededStore()
	service := NewMatchService(store, &seqIDGenerator{prefix: "m"}, nil, discardLogger())

	slot := time.Date(2026, 5, 9, 14, 0, 0, 0, time.UTC)
	created, err := service.CreateMatch(t.Context(), CreateMatchInput{
		CaptainID:     memory.UserIDAnna,
		TeamID:        memory.TeamIDHerren1,
		Opponent:      "TC Gruenfeld",
		Location:      "Home",
		ProposedDates: []time.Time{slot, slot, slot.Add(24 * time.Hour)},
	})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}

	if created.Status != match.StatusPlanned {
		t.Fatalf("expected planned status, got %s", created.Status)
	}

	dates, err := store.Matches().ListDates(t.Context(), created.ID)
	if err != nil {
		t.Fatalf("list dates: %v", err)
	}
	if len(dates) != 2 {
		t.Fatalf("expected duplicate slot collapsed to 2 dates, got %d", len(dates))
	}
}

func TestMatchService_CreateMatch_AnnouncesToApprovedRoster(t *testing.T) {
	store := memory.NewSeededStore()
	notifier := &captureNotifier{}
	service := NewMatchService(store, &seqIDGenerator{prefix: "m"}, notifier, discardLogger())

	if _, err := service.CreateMatch(t.Context(), CreateMatchInput{
		CaptainID: memory.UserIDAnna,
		TeamID:    memory.TeamIDHerren1,
		Opponent:  "SV Rotgold",
		Location:  "Away",
	}); err != nil {
		t.Fatalf("create match: %v", err)
	}

	sent := notifier.sent()
	if len(sent) != 3 {
		t.Fatalf("expected announcement to 3 approved members, got %d", len(sent))
	}
	recipients := make(map[string]struct{}, len(sent))
	for _, note := range sent {
		recipients[note.To] = struct{}{}
	}
	if _, ok := recipients["dirk@blauweiss.example"]; ok {
		t.Fatalf("pending member must not be announced to")
	}
}

func TestMatchService_CreateMatch_RequiresAuthority(t *testing.T) {
	store := memory.NewSeededStore()
	service := NewMatchService(store, &seqIDGenerator{prefix: "m"}, nil, discardLogger())

	_, err := service.CreateMatch(t.Context(), CreateMatchInput{
		CaptainID: memory.UserIDBen,
		TeamID:    memory.TeamIDHerren1,
		Opponent:  "TC Gruenfeld",
		Location:  "Home",
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-captain, got %v", err)
	}
}

func TestMatchService_CreateMatch_InvalidLocation(t *testing.T) {
	store := memory.NewSeededStore()
	service := NewMatchService(store, &seqIDGenerator{prefix: "m"}, nil, discardLogger())

	_, err := service.CreateMatch(t.Context(), CreateMatchInput{
		CaptainID: memory.UserIDAnna,
		TeamID:    memory.TeamIDHerren1,
		Opponent:  "TC Gruenfeld",
		Location:  "Moon",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestMatchService_GetMatch_OutsiderForbidden(t *testing.T) {
	store := memory.NewSeededStore()
	service := NewMatchService(store, &seqIDGenerator{prefix: "m"}, nil, discardLogger())

	created, err := service.CreateMatch(t.Context(), CreateMatchInput{
		CaptainID: memory.UserIDAnna,
		TeamID:    memory.TeamIDHerren1,
		Opponent:  "TC Gruenfeld",
		Location:  "Home",
	})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}

	if _, err := service.GetMatch(t.Context(), memory.UserIDFrida, created.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for other club's player, got %v", err)
	}

	// Club admins of the owning club read without a roster entry.
	if _, err := service.GetMatch(t.Context(), memory.UserIDErik, created.ID); err != nil {
		t.Fatalf("expected club admin access, got %v", err)
	}
}

func TestMatchService_ListTeamMatches_RequiresTeamAccess(t *testing.T) {
	store := memory.NewSeededStore()
	service := NewMatchService(store, &seqIDGenerator{prefix: "m"}, nil, discardLogger())

	if _, err := service.CreateMatch(t.Context(), CreateMatchInput{
		CaptainID: memory.UserIDAnna,
		TeamID:    memory.TeamIDHerren1,
		Opponent:  "TC Gruenfeld",
		Location:  "Home",
	}); err != nil {
		t.Fatalf("create match: %v", err)
	}

	if _, err := service.ListTeamMatches(t.Context(), memory.UserIDFrida, memory.TeamIDHerren1); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for other club's player, got %v", err)
	}

	items, err := service.ListTeamMatches(t.Context(), memory.UserIDBen, memory.TeamIDHerren1)
	if err != nil {
		t.Fatalf("list team matches: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 match, got %d", len(items))
	}
}
