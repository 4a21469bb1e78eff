package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/V1TECKOR/interclub/internal/domain/membership"
	"github.com/V1TECKOR/interclub/internal/domain/storage"
	"github.com/V1TECKOR/interclub/internal/domain/team"
	"github.com/V1TECKOR/interclub/internal/domain/user"
	"github.com/V1TECKOR/interclub/internal/platform/id"
)

type CreateTeamInput struct {
	CreatorID string
	Name      string
}

// TeamService creates teams and answers roster queries. The creator
// becomes the team's captain with an auto-approved membership; a player
// creating their first team is promoted to captain.
type TeamService struct {
	store  storage.Store
	ids    id.Generator
	logger *slog.Logger
	now    func() time.Time
}

func NewTeamService(store storage.Store, ids id.Generator, logger *slog.Logger) *TeamService {
	if logger == nil {
		logger = slog.Default()
	}

	return &TeamService{
		store:  store,
		ids:    ids,
		logger: logger,
		now:    time.Now,
	}
}

func (s *TeamService) CreateTeam(ctx context.Context, input CreateTeamInput) (team.Team, error) {
	input.CreatorID = strings.TrimSpace(input.CreatorID)
	input.Name = strings.TrimSpace(input.Name)

	if input.CreatorID == "" {
		return team.Team{}, fmt.Errorf("%w: creator id is required", ErrInvalidInput)
	}
	if input.Name == "" {
		return team.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	teamID, err := s.ids.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	var created team.Team
	err = s.store.WithinTx(ctx, func(tx storage.Tx) error {
		creator, exists, err := tx.Users().GetByID(ctx, input.CreatorID)
		if err != nil {
			return fmt.Errorf("get creator by id: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: user=%s", ErrNotFound, input.CreatorID)
		}
		if creator.ClubID == "" {
			return fmt.Errorf("%w: creator has no club assignment", ErrInvalidState)
		}

		now := s.now().UTC()
		created = team.Team{
			ID:        teamID,
			ClubID:    creator.ClubID,
			Name:      input.Name,
			CaptainID: creator.ID,
			CreatedAt: now,
		}
		if err := created.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		if err := tx.Teams().Create(ctx, created); err != nil {
			if errors.Is(err, storage.ErrDuplicateKey) {
				return fmt.Errorf("%w: team name %s already exists", ErrConflict, created.Name)
			}
			return fmt.Errorf("create team: %w", err)
		}

		// Captains are members of their own roster from the start.
		approvedAt := now
		if err := tx.Memberships().Create(ctx, membership.Membership{
			UserID:      creator.ID,
			TeamID:      created.ID,
			Approved:    true,
			RequestedAt: now,
			ApprovedAt:  &approvedAt,
		}); err != nil {
			return fmt.Errorf("create captain membership: %w", err)
		}

		if creator.Role == user.RolePlayer {
			if err := tx.Users().UpdateRole(ctx, creator.ID, user.RoleCaptain); err != nil {
				return fmt.Errorf("promote creator to captain: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return team.Team{}, err
	}

	s.logger.InfoContext(ctx, "team created", "team_id", created.ID, "club_id", created.ClubID)
	return created, nil
}

func (s *TeamService) GetTeam(ctx context.Context, teamID string) (team.Team, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	item, exists, err := s.store.Teams().GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	return item, nil
}

// ListClubTeams is available club-wide: members discover teams here
// before they hold any membership.
func (s *TeamService) ListClubTeams(ctx context.Context, callerID, clubID string) ([]team.Team, error) {
	callerID = strings.TrimSpace(callerID)
	clubID = strings.TrimSpace(clubID)
	if callerID == "" || clubID == "" {
		return nil, fmt.Errorf("%w: caller id and club id are required", ErrInvalidInput)
	}

	caller, exists, err := s.store.Users().GetByID(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("get caller by id: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: user=%s", ErrNotFound, callerID)
	}
	if caller.ClubID != clubID {
		return nil, fmt.Errorf("%w: caller does not belong to club %s", ErrForbidden, clubID)
	}

	items, err := s.store.Teams().ListByClub(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("list teams by club: %w", err)
	}

	return items, nil
}
