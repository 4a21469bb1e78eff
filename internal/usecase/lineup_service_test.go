package usecase

import (
	"errors"
	"testing"

	"github.com/V1TECKOR/interclub/internal/domain/match"
	"github.com/V1TECKOR/interclub/internal/infrastructure/repository/memory"
)

// newLineupFixture finalizes a match where anna and ben voted available
// and clara voted unavailable.
func newLineupFixture(t *testing.T) (scheduleFixture, *LineupService) {
	t.Helper()

	fx := newScheduleFixture(t)
	winner := fx.dates[0].ID

	for userID, available := range map[string]bool{
		memory.UserIDAnna:  true,
		memory.UserIDBen:   true,
		memory.UserIDClara: false,
	} {
		if err := fx.schedule.SetAvailability(t.Context(), userID, winner, available); err != nil {
			t.Fatalf("vote %s: %v", userID, err)
		}
	}
	if _, err := fx.schedule.FinalizeDate(t.Context(), memory.UserIDAnna, fx.matchID, winner); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	return fx, NewLineupService(fx.store, discardLogger())
}

func TestLineupService_ProposeLineup_RequiresConfirmedMatch(t *testing.T) {
	fx := newScheduleFixture(t)
	service := NewLineupService(fx.store, discardLogger())

	_, err := service.ProposeLineup(t.Context(), memory.UserIDAnna, fx.matchID)
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState on planned match, got %v", err)
	}
}

func TestLineupService_ProposeLineup_FromAvailableVoters(t *testing.T) {
	fx, service := newLineupFixture(t)

	entries, err := service.ProposeLineup(t.Context(), memory.UserIDAnna, fx.matchID)
	if err != nil {
		t.Fatalf("propose lineup: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	for _, entry := range entries {
		if entry.UserID == memory.UserIDClara {
			t.Fatalf("unavailable voter must not be proposed")
		}
		if entry.Confirmed {
			t.Fatalf("proposed entries start unconfirmed")
		}
	}
}

func TestLineupService_ProposeLineup_Idempotent(t *testing.T) {
	fx, service := newLineupFixture(t)

	first, err := service.ProposeLineup(t.Context(), memory.UserIDAnna, fx.matchID)
	if err != nil {
		t.Fatalf("first propose: %v", err)
	}
	if err := service.ConfirmEntry(t.Context(), memory.UserIDAnna, fx.matchID, memory.UserIDBen); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	second, err := service.ProposeLineup(t.Context(), memory.UserIDAnna, fx.matchID)
	if err != nil {
		t.Fatalf("second propose: %v", err)
	}

	if len(second) != len(first) {
		t.Fatalf("repeat propose changed entry count: %d vs %d", len(second), len(first))
	}
	for _, entry := range second {
		if entry.UserID == memory.UserIDBen && !entry.Confirmed {
			t.Fatalf("repeat propose must not reset confirmations")
		}
	}
}

func TestLineupService_ConfirmEntry_UnknownUser(t *testing.T) {
	fx, service := newLineupFixture(t)

	if _, err := service.ProposeLineup(t.Context(), memory.UserIDAnna, fx.matchID); err != nil {
		t.Fatalf("propose lineup: %v", err)
	}

	err := service.ConfirmEntry(t.Context(), memory.UserIDAnna, fx.matchID, memory.UserIDClara)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound without entry, got %v", err)
	}
}

func TestLineupService_RemoveEntry(t *testing.T) {
	fx, service := newLineupFixture(t)

	if _, err := service.ProposeLineup(t.Context(), memory.UserIDAnna, fx.matchID); err != nil {
		t.Fatalf("propose lineup: %v", err)
	}

	if err := service.RemoveEntry(t.Context(), memory.UserIDAnna, fx.matchID, memory.UserIDBen); err != nil {
		t.Fatalf("remove unconfirmed entry: %v", err)
	}

	if err := service.ConfirmEntry(t.Context(), memory.UserIDAnna, fx.matchID, memory.UserIDAnna); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	err := service.RemoveEntry(t.Context(), memory.UserIDAnna, fx.matchID, memory.UserIDAnna)
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState for confirmed entry, got %v", err)
	}
}

func TestLineupService_MarkCompleted(t *testing.T) {
	fx, service := newLineupFixture(t)

	if _, err := service.ProposeLineup(t.Context(), memory.UserIDAnna, fx.matchID); err != nil {
		t.Fatalf("propose lineup: %v", err)
	}

	// No confirmed entry yet.
	err := service.MarkCompleted(t.Context(), memory.UserIDAnna, fx.matchID)
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState without confirmations, got %v", err)
	}

	if err := service.ConfirmEntry(t.Context(), memory.UserIDAnna, fx.matchID, memory.UserIDBen); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if err := service.MarkCompleted(t.Context(), memory.UserIDAnna, fx.matchID); err != nil {
		t.Fatalf("mark completed: %v", err)
	}

	item, _, err := fx.store.Matches().GetByID(t.Context(), fx.matchID)
	if err != nil {
		t.Fatalf("get match: %v", err)
	}
	if item.Status != match.StatusCompleted {
		t.Fatalf("expected completed, got %s", item.Status)
	}

	// Completed is terminal.
	err = service.MarkCompleted(t.Context(), memory.UserIDAnna, fx.matchID)
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState on completed match, got %v", err)
	}
	err = service.ConfirmEntry(t.Context(), memory.UserIDAnna, fx.matchID, memory.UserIDAnna)
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected lineup frozen after completion, got %v", err)
	}
}
