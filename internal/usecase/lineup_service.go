package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/V1TECKOR/interclub/internal/domain/lineup"
	"github.com/V1TECKOR/interclub/internal/domain/match"
	"github.com/V1TECKOR/interclub/internal/domain/storage"
)

// LineupService derives and confirms the set of members who play a
// match, and runs the terminal completion transition.
type LineupService struct {
	store  storage.Store
	logger *slog.Logger
	now    func() time.Time
}

func NewLineupService(store storage.Store, logger *slog.Logger) *LineupService {
	if logger == nil {
		logger = slog.Default()
	}

	return &LineupService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// ProposeLineup creates unconfirmed entries for every approved member
// who voted available on the finalized date and has none yet. Repeat
// invocations add only missing entries, never duplicate or remove.
func (s *LineupService) ProposeLineup(ctx context.Context, captainID, matchID string) ([]lineup.Entry, error) {
	captainID = strings.TrimSpace(captainID)
	matchID = strings.TrimSpace(matchID)
	if captainID == "" || matchID == "" {
		return nil, fmt.Errorf("%w: captain id and match id are required", ErrInvalidInput)
	}

	var entries []lineup.Entry
	err := s.store.WithinTx(ctx, func(tx storage.Tx) error {
		loaded, err := loadMatchWithTeamForUpdate(ctx, tx, matchID)
		if err != nil {
			return err
		}
		if _, _, err := requireTeamAuthority(ctx, tx, captainID, loaded.Team.ID); err != nil {
			return err
		}
		if loaded.Match.Status != match.StatusConfirmed {
			return fmt.Errorf("%w: lineup requires a confirmed match, match %s is %s", ErrInvalidState, matchID, loaded.Match.Status)
		}

		votes, err := tx.Availability().ListByDate(ctx, loaded.Match.FinalDateID)
		if err != nil {
			return fmt.Errorf("list votes on finalized date: %w", err)
		}

		existing, err := tx.Lineups().ListByMatch(ctx, matchID)
		if err != nil {
			return fmt.Errorf("list lineup entries: %w", err)
		}
		present := make(map[string]struct{}, len(existing))
		for _, e := range existing {
			present[e.UserID] = struct{}{}
		}

		now := s.now().UTC()
		for _, vote := range votes {
			if !vote.Available {
				continue
			}
			if _, ok := present[vote.UserID]; ok {
				continue
			}
			approved, err := isApprovedMember(ctx, tx, vote.UserID, loaded.Team.ID)
			if err != nil {
				return err
			}
			if !approved {
				continue
			}

			entry := lineup.Entry{
				MatchID:   matchID,
				UserID:    vote.UserID,
				UpdatedAt: now,
			}
			if err := tx.Lineups().Create(ctx, entry); err != nil {
				return fmt.Errorf("create lineup entry: %w", err)
			}
			present[vote.UserID] = struct{}{}
		}

		entries, err = tx.Lineups().ListByMatch(ctx, matchID)
		if err != nil {
			return fmt.Errorf("reload lineup entries: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].UserID < entries[j].UserID })
	return entries, nil
}

// ConfirmEntry marks one proposed entry as playing.
func (s *LineupService) ConfirmEntry(ctx context.Context, captainID, matchID, userID string) error {
	captainID = strings.TrimSpace(captainID)
	matchID = strings.TrimSpace(matchID)
	userID = strings.TrimSpace(userID)
	if captainID == "" || matchID == "" || userID == "" {
		return fmt.Errorf("%w: captain, match and user ids are required", ErrInvalidInput)
	}

	return s.store.WithinTx(ctx, func(tx storage.Tx) error {
		loaded, err := loadMatchWithTeamForUpdate(ctx, tx, matchID)
		if err != nil {
			return err
		}
		if _, _, err := requireTeamAuthority(ctx, tx, captainID, loaded.Team.ID); err != nil {
			return err
		}
		if loaded.Match.Status != match.StatusConfirmed {
			return fmt.Errorf("%w: lineup confirmation requires a confirmed match, match %s is %s", ErrInvalidState, matchID, loaded.Match.Status)
		}

		ok, err := tx.Lineups().Confirm(ctx, matchID, userID, s.now().UTC())
		if err != nil {
			return fmt.Errorf("confirm lineup entry: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: no lineup entry for user=%s match=%s", ErrNotFound, userID, matchID)
		}

		return nil
	})
}

// RemoveEntry drops an unconfirmed entry. Confirmed selections are kept;
// withdrawing one means delete-then-recreate through an explicit
// unconfirm, which is not modeled.
func (s *LineupService) RemoveEntry(ctx context.Context, captainID, matchID, userID string) error {
	captainID = strings.TrimSpace(captainID)
	matchID = strings.TrimSpace(matchID)
	userID = strings.TrimSpace(userID)
	if captainID == "" || matchID == "" || userID == "" {
		return fmt.Errorf("%w: captain, match and user ids are required", ErrInvalidInput)
	}

	return s.store.WithinTx(ctx, func(tx storage.Tx) error {
		loaded, err := loadMatchWithTeamForUpdate(ctx, tx, matchID)
		if err != nil {
			return err
		}
		if _, _, err := requireTeamAuthority(ctx, tx, captainID, loaded.Team.ID); err != nil {
			return err
		}
		if loaded.Match.Status != match.StatusConfirmed {
			return fmt.Errorf("%w: lineup changes require a confirmed match, match %s is %s", ErrInvalidState, matchID, loaded.Match.Status)
		}

		entry, exists, err := tx.Lineups().Get(ctx, matchID, userID)
		if err != nil {
			return fmt.Errorf("get lineup entry: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: no lineup entry for user=%s match=%s", ErrNotFound, userID, matchID)
		}
		if entry.Confirmed {
			return fmt.Errorf("%w: confirmed entries cannot be removed", ErrInvalidState)
		}

		if _, err := tx.Lineups().Delete(ctx, matchID, userID); err != nil {
			return fmt.Errorf("delete lineup entry: %w", err)
		}

		return nil
	})
}

// MarkCompleted moves a confirmed match to its terminal state. Requires
// at least one confirmed lineup entry; afterwards no lineup or date
// mutation is accepted.
func (s *LineupService) MarkCompleted(ctx context.Context, captainID, matchID string) error {
	captainID = strings.TrimSpace(captainID)
	matchID = strings.TrimSpace(matchID)
	if captainID == "" || matchID == "" {
		return fmt.Errorf("%w: captain id and match id are required", ErrInvalidInput)
	}

	err := s.store.WithinTx(ctx, func(tx storage.Tx) error {
		loaded, err := loadMatchWithTeamForUpdate(ctx, tx, matchID)
		if err != nil {
			return err
		}
		if _, _, err := requireTeamAuthority(ctx, tx, captainID, loaded.Team.ID); err != nil {
			return err
		}
		if loaded.Match.Status != match.StatusConfirmed {
			return fmt.Errorf("%w: completion requires a confirmed match, match %s is %s", ErrInvalidState, matchID, loaded.Match.Status)
		}

		confirmed, err := tx.Lineups().CountConfirmed(ctx, matchID)
		if err != nil {
			return fmt.Errorf("count confirmed entries: %w", err)
		}
		if confirmed == 0 {
			return fmt.Errorf("%w: match %s has no confirmed lineup entry", ErrInvalidState, matchID)
		}

		ok, err := tx.Matches().Complete(ctx, matchID)
		if err != nil {
			return fmt.Errorf("complete match: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: another completion won on match %s", ErrConflict, matchID)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "match completed", "match_id", matchID)
	return nil
}

// ListLineup returns the current entries of a match.
func (s *LineupService) ListLineup(ctx context.Context, callerID, matchID string) ([]lineup.Entry, error) {
	callerID = strings.TrimSpace(callerID)
	matchID = strings.TrimSpace(matchID)
	if callerID == "" || matchID == "" {
		return nil, fmt.Errorf("%w: caller id and match id are required", ErrInvalidInput)
	}

	if _, err := requireMatchAccess(ctx, s.store, callerID, matchID); err != nil {
		return nil, err
	}

	items, err := s.store.Lineups().ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list lineup entries: %w", err)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].UserID < items[j].UserID })

	return items, nil
}
