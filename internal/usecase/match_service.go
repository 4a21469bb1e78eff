package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/V1TECKOR/interclub/internal/domain/match"
	"github.com/V1TECKOR/interclub/internal/domain/storage"
	"github.com/V1TECKOR/interclub/internal/domain/team"
	"github.com/V1TECKOR/interclub/internal/domain/user"
	"github.com/V1TECKOR/interclub/internal/platform/id"
)

const notifyWorkerCount = 8

type CreateMatchInput struct {
	CaptainID string
	TeamID    string
	Opponent  string
	Location  string
	// ProposedDates seeds the candidate date list at creation. Duplicates
	// within the input are collapsed.
	ProposedDates []time.Time
}

type matchWithTeam struct {
	Match match.Match
	Team  team.Team
}

func loadMatchWithTeam(ctx context.Context, tx storage.Tx, matchID string) (matchWithTeam, error) {
	return loadMatchWithTeamBy(ctx, tx, matchID, tx.Matches().GetByID)
}

// loadMatchWithTeamForUpdate is the write-transaction variant: it locks
// the match row so the status observed here cannot change under the
// writes that follow in the same transaction.
func loadMatchWithTeamForUpdate(ctx context.Context, tx storage.Tx, matchID string) (matchWithTeam, error) {
	return loadMatchWithTeamBy(ctx, tx, matchID, tx.Matches().GetByIDForUpdate)
}

func loadMatchWithTeamBy(
	ctx context.Context,
	tx storage.Tx,
	matchID string,
	get func(context.Context, string) (match.Match, bool, error),
) (matchWithTeam, error) {
	matchItem, exists, err := get(ctx, matchID)
	if err != nil {
		return matchWithTeam{}, fmt.Errorf("get match by id: %w", err)
	}
	if !exists {
		return matchWithTeam{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	teamItem, exists, err := tx.Teams().GetByID(ctx, matchItem.TeamID)
	if err != nil {
		return matchWithTeam{}, fmt.Errorf("get match team: %w", err)
	}
	if !exists {
		return matchWithTeam{}, fmt.Errorf("%w: team=%s", ErrNotFound, matchItem.TeamID)
	}

	return matchWithTeam{Match: matchItem, Team: teamItem}, nil
}

// MatchService creates fixtures and answers match queries. Status
// transitions are never set here directly; finalization and completion
// live with the schedule and lineup services.
type MatchService struct {
	store    storage.Store
	ids      id.Generator
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
}

func NewMatchService(store storage.Store, ids id.Generator, notifier Notifier, logger *slog.Logger) *MatchService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &MatchService{
		store:    store,
		ids:      ids,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *MatchService) CreateMatch(ctx context.Context, input CreateMatchInput) (match.Match, error) {
	input.CaptainID = strings.TrimSpace(input.CaptainID)
	input.TeamID = strings.TrimSpace(input.TeamID)
	input.Opponent = strings.TrimSpace(input.Opponent)

	if input.CaptainID == "" || input.TeamID == "" {
		return match.Match{}, fmt.Errorf("%w: captain id and team id are required", ErrInvalidInput)
	}
	if input.Opponent == "" {
		return match.Match{}, fmt.Errorf("%w: opponent is required", ErrInvalidInput)
	}
	location, err := match.ParseLocation(input.Location)
	if err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	matchID, err := s.ids.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate match id: %w", err)
	}

	created := match.Match{
		ID:        matchID,
		TeamID:    input.TeamID,
		Opponent:  input.Opponent,
		Location:  location,
		Status:    match.StatusPlanned,
		CreatedAt: s.now().UTC(),
	}

	err = s.store.WithinTx(ctx, func(tx storage.Tx) error {
		if _, _, err := requireTeamAuthority(ctx, tx, input.CaptainID, input.TeamID); err != nil {
			return err
		}

		if err := tx.Matches().Create(ctx, created); err != nil {
			return fmt.Errorf("create match: %w", err)
		}

		seen := make(map[time.Time]struct{}, len(input.ProposedDates))
		for _, proposed := range input.ProposedDates {
			proposed = proposed.UTC()
			if _, dup := seen[proposed]; dup {
				continue
			}
			seen[proposed] = struct{}{}

			dateID, err := s.ids.NewID()
			if err != nil {
				return fmt.Errorf("generate match date id: %w", err)
			}
			if err := tx.Matches().AddDate(ctx, match.Date{
				ID:         dateID,
				MatchID:    created.ID,
				ProposedAt: proposed,
			}); err != nil {
				if errors.Is(err, storage.ErrDuplicateKey) {
					return fmt.Errorf("%w: duplicate proposed date %s", ErrConflict, proposed)
				}
				return fmt.Errorf("add match date: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return match.Match{}, err
	}

	s.notifyTeam(ctx, created)
	return created, nil
}

func (s *MatchService) GetMatch(ctx context.Context, callerID, matchID string) (match.Match, error) {
	callerID = strings.TrimSpace(callerID)
	matchID = strings.TrimSpace(matchID)
	if callerID == "" || matchID == "" {
		return match.Match{}, fmt.Errorf("%w: caller id and match id are required", ErrInvalidInput)
	}

	loaded, err := requireMatchAccess(ctx, s.store, callerID, matchID)
	if err != nil {
		return match.Match{}, err
	}

	return loaded.Match, nil
}

func (s *MatchService) ListTeamMatches(ctx context.Context, callerID, teamID string) ([]match.Match, error) {
	callerID = strings.TrimSpace(callerID)
	teamID = strings.TrimSpace(teamID)
	if callerID == "" || teamID == "" {
		return nil, fmt.Errorf("%w: caller id and team id are required", ErrInvalidInput)
	}

	if _, err := requireTeamAccess(ctx, s.store, callerID, teamID); err != nil {
		return nil, err
	}

	items, err := s.store.Matches().ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list matches by team: %w", err)
	}

	return items, nil
}

// notifyTeam fans the match announcement out to the approved roster.
// Delivery is best effort and never fails the committed create.
func (s *MatchService) notifyTeam(ctx context.Context, created match.Match) {
	members, err := s.store.Memberships().ListByTeam(ctx, created.TeamID, true)
	if err != nil {
		s.logger.WarnContext(ctx, "list roster for match announcement failed", "match_id", created.ID, "error", err)
		return
	}
	if len(members) == 0 {
		return
	}

	recipients := make([]user.User, 0, len(members))
	for _, m := range members {
		item, exists, err := s.store.Users().GetByID(ctx, m.UserID)
		if err != nil || !exists || item.Email == "" {
			continue
		}
		recipients = append(recipients, item)
	}
	if len(recipients) == 0 {
		return
	}

	pool, err := ants.NewPool(notifyWorkerCount)
	if err != nil {
		s.logger.WarnContext(ctx, "create notify pool failed", "error", err)
		return
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, recipient := range recipients {
		recipient := recipient
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			note := Notification{
				To:      recipient.Email,
				Subject: "New match scheduled",
				Body: fmt.Sprintf(
					"Hello %s,\n\na match against %s was scheduled. Please record your availability.",
					recipient.FirstName, created.Opponent,
				),
			}
			if err := s.notifier.Send(ctx, note); err != nil {
				s.logger.WarnContext(ctx, "match announcement delivery failed", "to", recipient.Email, "error", err)
			}
		}); err != nil {
			workers.Done()
			s.logger.WarnContext(ctx, "submit notify job failed", "error", err)
		}
	}
	workers.Wait()
}
