package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/V1TECKOR/interclub/internal/domain/availability"
	"github.com/V1TECKOR/interclub/internal/domain/match"
	"github.com/V1TECKOR/interclub/internal/domain/storage"
	"github.com/V1TECKOR/interclub/internal/platform/id"
)

// ScheduleService manages candidate dates and availability votes, and
// runs the single finalize transition that locks a match to one date.
type ScheduleService struct {
	store  storage.Store
	ids    id.Generator
	logger *slog.Logger
	now    func() time.Time
}

func NewScheduleService(store storage.Store, ids id.Generator, logger *slog.Logger) *ScheduleService {
	if logger == nil {
		logger = slog.Default()
	}

	return &ScheduleService{
		store:  store,
		ids:    ids,
		logger: logger,
		now:    time.Now,
	}
}

// ProposeDate adds a candidate datetime while the match is still open.
func (s *ScheduleService) ProposeDate(ctx context.Context, captainID, matchID string, proposed time.Time) (match.Date, error) {
	captainID = strings.TrimSpace(captainID)
	matchID = strings.TrimSpace(matchID)
	if captainID == "" || matchID == "" {
		return match.Date{}, fmt.Errorf("%w: captain id and match id are required", ErrInvalidInput)
	}
	if proposed.IsZero() {
		return match.Date{}, fmt.Errorf("%w: proposed datetime is required", ErrInvalidInput)
	}
	proposed = proposed.UTC()

	dateID, err := s.ids.NewID()
	if err != nil {
		return match.Date{}, fmt.Errorf("generate match date id: %w", err)
	}

	item := match.Date{
		ID:         dateID,
		MatchID:    matchID,
		ProposedAt: proposed,
	}

	err = s.store.WithinTx(ctx, func(tx storage.Tx) error {
		loaded, err := loadMatchWithTeamForUpdate(ctx, tx, matchID)
		if err != nil {
			return err
		}
		if _, _, err := requireTeamAuthority(ctx, tx, captainID, loaded.Team.ID); err != nil {
			return err
		}
		if !loaded.Match.Open() {
			return fmt.Errorf("%w: match %s is no longer open for date proposals", ErrInvalidState, matchID)
		}

		existing, err := tx.Matches().ListDates(ctx, matchID)
		if err != nil {
			return fmt.Errorf("list match dates: %w", err)
		}
		for _, d := range existing {
			if d.ProposedAt.Equal(proposed) {
				return fmt.Errorf("%w: date %s already proposed for match %s", ErrConflict, proposed, matchID)
			}
		}

		if err := tx.Matches().AddDate(ctx, item); err != nil {
			if errors.Is(err, storage.ErrDuplicateKey) {
				return fmt.Errorf("%w: date %s already proposed for match %s", ErrConflict, proposed, matchID)
			}
			return fmt.Errorf("add match date: %w", err)
		}

		return nil
	})
	if err != nil {
		return match.Date{}, err
	}

	return item, nil
}

// SetAvailability upserts the caller's vote for one candidate date.
// Approved members only; rejected once the match date is finalized.
func (s *ScheduleService) SetAvailability(ctx context.Context, userID, matchDateID string, available bool) error {
	userID = strings.TrimSpace(userID)
	matchDateID = strings.TrimSpace(matchDateID)
	if userID == "" || matchDateID == "" {
		return fmt.Errorf("%w: user id and match date id are required", ErrInvalidInput)
	}

	return s.store.WithinTx(ctx, func(tx storage.Tx) error {
		date, exists, err := tx.Matches().GetDate(ctx, matchDateID)
		if err != nil {
			return fmt.Errorf("get match date: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: match date=%s", ErrNotFound, matchDateID)
		}

		loaded, err := loadMatchWithTeamForUpdate(ctx, tx, date.MatchID)
		if err != nil {
			return err
		}
		approved, err := isApprovedMember(ctx, tx, userID, loaded.Team.ID)
		if err != nil {
			return err
		}
		if !approved {
			return fmt.Errorf("%w: only approved members may vote on team %s", ErrForbidden, loaded.Team.ID)
		}
		if !loaded.Match.Open() {
			return fmt.Errorf("%w: match %s has a finalized date, votes are closed", ErrInvalidState, loaded.Match.ID)
		}

		if err := tx.Availability().Upsert(ctx, availability.Vote{
			MatchDateID: matchDateID,
			UserID:      userID,
			Available:   available,
			CreatedAt:   s.now().UTC(),
		}); err != nil {
			return fmt.Errorf("upsert availability vote: %w", err)
		}

		return nil
	})
}

// TallyAvailability aggregates votes per open candidate date across the
// approved roster. The engine informs the choice, the caller makes it.
func (s *ScheduleService) TallyAvailability(ctx context.Context, callerID, matchID string) ([]availability.Tally, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.TallyAvailability")
	defer span.End()

	callerID = strings.TrimSpace(callerID)
	matchID = strings.TrimSpace(matchID)
	if callerID == "" || matchID == "" {
		return nil, fmt.Errorf("%w: caller id and match id are required", ErrInvalidInput)
	}

	loaded, err := requireMatchAccess(ctx, s.store, callerID, matchID)
	if err != nil {
		return nil, err
	}

	roster, err := s.store.Memberships().ListByTeam(ctx, loaded.Team.ID, true)
	if err != nil {
		return nil, fmt.Errorf("list approved roster: %w", err)
	}
	approved := make(map[string]struct{}, len(roster))
	for _, m := range roster {
		approved[m.UserID] = struct{}{}
	}

	dates, err := s.store.Matches().ListDates(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list match dates: %w", err)
	}

	out := make([]availability.Tally, 0, len(dates))
	for _, date := range dates {
		votes, err := s.store.Availability().ListByDate(ctx, date.ID)
		if err != nil {
			return nil, fmt.Errorf("list votes by date: %w", err)
		}

		tally := availability.Tally{
			MatchDateID: date.ID,
			ProposedAt:  date.ProposedAt,
		}
		responded := make(map[string]struct{}, len(votes))
		for _, vote := range votes {
			// Votes from members no longer approved do not count.
			if _, ok := approved[vote.UserID]; !ok {
				continue
			}
			responded[vote.UserID] = struct{}{}
			if vote.Available {
				tally.Available++
			} else {
				tally.Unavailable++
			}
		}
		tally.NoResponse = len(approved) - len(responded)
		out = append(out, tally)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ProposedAt.Before(out[j].ProposedAt) })
	return out, nil
}

// FinalizeDate locks the match to one candidate date: final_date is set,
// status moves planned -> confirmed and every sibling date goes inert, in
// one atomic step. Concurrent finalizes resolve to exactly one winner;
// losers get a conflict and must re-fetch before deciding again.
func (s *ScheduleService) FinalizeDate(ctx context.Context, captainID, matchID, matchDateID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.FinalizeDate")
	defer span.End()

	captainID = strings.TrimSpace(captainID)
	matchID = strings.TrimSpace(matchID)
	matchDateID = strings.TrimSpace(matchDateID)
	if captainID == "" || matchID == "" || matchDateID == "" {
		return match.Match{}, fmt.Errorf("%w: captain, match and date ids are required", ErrInvalidInput)
	}

	var finalized match.Match
	err := s.store.WithinTx(ctx, func(tx storage.Tx) error {
		// No row lock needed: the Finalize compare-and-set below is the
		// guard, and its failure maps to a conflict either way.
		loaded, err := loadMatchWithTeam(ctx, tx, matchID)
		if err != nil {
			return err
		}
		if _, _, err := requireTeamAuthority(ctx, tx, captainID, loaded.Team.ID); err != nil {
			return err
		}

		switch loaded.Match.Status {
		case match.StatusCompleted:
			return fmt.Errorf("%w: match %s is completed", ErrInvalidState, matchID)
		case match.StatusConfirmed:
			return fmt.Errorf("%w: match %s already has a finalized date", ErrConflict, matchID)
		}

		date, exists, err := tx.Matches().GetDate(ctx, matchDateID)
		if err != nil {
			return fmt.Errorf("get match date: %w", err)
		}
		if !exists || date.MatchID != matchID {
			return fmt.Errorf("%w: match date=%s for match=%s", ErrNotFound, matchDateID, matchID)
		}

		ok, err := tx.Matches().Finalize(ctx, matchID, date.ID, date.ProposedAt)
		if err != nil {
			return fmt.Errorf("finalize match date: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: another finalize won on match %s", ErrConflict, matchID)
		}

		finalized, _, err = tx.Matches().GetByID(ctx, matchID)
		if err != nil {
			return fmt.Errorf("reload finalized match: %w", err)
		}

		return nil
	})
	if err != nil {
		return match.Match{}, err
	}

	s.logger.InfoContext(ctx, "match date finalized", "match_id", matchID, "match_date_id", matchDateID)
	return finalized, nil
}

// ListDates returns every candidate date of a match, finalized or not.
// Void dates stay on record for history.
func (s *ScheduleService) ListDates(ctx context.Context, callerID, matchID string) ([]match.Date, error) {
	callerID = strings.TrimSpace(callerID)
	matchID = strings.TrimSpace(matchID)
	if callerID == "" || matchID == "" {
		return nil, fmt.Errorf("%w: caller id and match id are required", ErrInvalidInput)
	}

	if _, err := requireMatchAccess(ctx, s.store, callerID, matchID); err != nil {
		return nil, err
	}

	items, err := s.store.Matches().ListDates(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list match dates: %w", err)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ProposedAt.Before(items[j].ProposedAt) })

	return items, nil
}
