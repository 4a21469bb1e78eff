package memory

import (
	"errors"
	"testing"
	"time"

	"github.com/V1TECKOR/interclub/internal/domain/club"
	"github.com/V1TECKOR/interclub/internal/domain/storage"
	"github.com/V1TECKOR/interclub/internal/domain/team"
)

func TestWithinTxRollsBackOnError(t *testing.T) {
	store := NewStore()
	boom := errors.New("boom")

	err := store.WithinTx(t.Context(), func(tx storage.Tx) error {
		if err := tx.Clubs().Create(t.Context(), club.Club{ID: "club-a", Name: "Club A", CreatedAt: time.Now()}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	_, exists, err := store.Clubs().GetByID(t.Context(), "club-a")
	if err != nil {
		t.Fatalf("get club: %v", err)
	}
	if exists {
		t.Fatal("expected failed transaction to leave no writes behind")
	}
}

func TestWithinTxCommitsAllWrites(t *testing.T) {
	store := NewSeededStore()

	err := store.WithinTx(t.Context(), func(tx storage.Tx) error {
		if err := tx.Teams().Create(t.Context(), team.Team{
			ID:        "team-damen-1",
			ClubID:    ClubIDBlauweiss,
			Name:      "Damen 1",
			CaptainID: UserIDClara,
			CreatedAt: time.Now(),
		}); err != nil {
			return err
		}
		return tx.Users().UpdateRole(t.Context(), UserIDClara, "captain")
	})
	if err != nil {
		t.Fatalf("tx: %v", err)
	}

	created, exists, err := store.Teams().GetByID(t.Context(), "team-damen-1")
	if err != nil || !exists {
		t.Fatalf("expected committed team, exists=%v err=%v", exists, err)
	}
	if created.CaptainID != UserIDClara {
		t.Fatalf("unexpected captain %s", created.CaptainID)
	}
	promoted, _, err := store.Users().GetByID(t.Context(), UserIDClara)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if promoted.Role != "captain" {
		t.Fatalf("expected promotion to stick, got role %s", promoted.Role)
	}
}

func TestSnapshotIsolationFromOpenTx(t *testing.T) {
	store := NewStore()

	err := store.WithinTx(t.Context(), func(tx storage.Tx) error {
		if err := tx.Clubs().Create(t.Context(), club.Club{ID: "club-b", Name: "Club B", CreatedAt: time.Now()}); err != nil {
			return err
		}
		// Reads outside the transaction must not see uncommitted writes.
		_, exists, err := store.Clubs().GetByID(t.Context(), "club-b")
		if err != nil {
			return err
		}
		if exists {
			t.Fatal("uncommitted write visible outside the transaction")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("tx: %v", err)
	}
}

func TestCreateDuplicateReturnsDuplicateKey(t *testing.T) {
	store := NewSeededStore()

	err := store.WithinTx(t.Context(), func(tx storage.Tx) error {
		return tx.Clubs().Create(t.Context(), club.Club{ID: "club-other", Name: "tc blauweiss", CreatedAt: time.Now()})
	})
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Fatalf("expected duplicate key on case-insensitive club name, got %v", err)
	}
}
