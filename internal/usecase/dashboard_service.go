package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/V1TECKOR/interclub/internal/domain/match"
	"github.com/V1TECKOR/interclub/internal/domain/storage"
)

const dashboardMatchLimit = 20

type DashboardTeam struct {
	TeamID    string
	Name      string
	Approved  bool
	IsCaptain bool
}

type DashboardMatch struct {
	Match    match.Match
	TeamName string
}

type Dashboard struct {
	ClubName        string
	Teams           []DashboardTeam
	UpcomingMatches []DashboardMatch
}

// DashboardService assembles the member landing view: club, teams with
// membership state, and upcoming matches of approved teams.
type DashboardService struct {
	store storage.Store
}

func NewDashboardService(store storage.Store) *DashboardService {
	return &DashboardService{store: store}
}

func (s *DashboardService) Get(ctx context.Context, userID string) (Dashboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.Get")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Dashboard{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	caller, exists, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		return Dashboard{}, fmt.Errorf("get user by id: %w", err)
	}
	if !exists {
		return Dashboard{}, fmt.Errorf("%w: user=%s", ErrNotFound, userID)
	}

	memberships, err := s.store.Memberships().ListByUser(ctx, userID)
	if err != nil {
		return Dashboard{}, fmt.Errorf("list memberships by user: %w", err)
	}

	var out Dashboard
	group := pool.New().WithContext(ctx).WithCancelOnError()

	group.Go(func(ctx context.Context) error {
		if caller.ClubID == "" {
			return nil
		}
		clubItem, exists, err := s.store.Clubs().GetByID(ctx, caller.ClubID)
		if err != nil {
			return fmt.Errorf("get club by id: %w", err)
		}
		if exists {
			out.ClubName = clubItem.Name
		}
		return nil
	})

	teams := make([]DashboardTeam, len(memberships))
	matchRows := make([][]DashboardMatch, len(memberships))
	for i, m := range memberships {
		i, m := i, m
		group.Go(func(ctx context.Context) error {
			teamItem, exists, err := s.store.Teams().GetByID(ctx, m.TeamID)
			if err != nil {
				return fmt.Errorf("get team by id: %w", err)
			}
			if !exists {
				return nil
			}

			teams[i] = DashboardTeam{
				TeamID:    teamItem.ID,
				Name:      teamItem.Name,
				Approved:  m.Approved,
				IsCaptain: teamItem.CaptainID == userID,
			}
			if !m.Approved {
				return nil
			}

			matches, err := s.store.Matches().ListByTeam(ctx, teamItem.ID)
			if err != nil {
				return fmt.Errorf("list matches by team: %w", err)
			}
			rows := make([]DashboardMatch, 0, len(matches))
			for _, item := range matches {
				if item.Status == match.StatusCompleted {
					continue
				}
				rows = append(rows, DashboardMatch{Match: item, TeamName: teamItem.Name})
			}
			matchRows[i] = rows
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return Dashboard{}, err
	}

	for _, t := range teams {
		if t.TeamID != "" {
			out.Teams = append(out.Teams, t)
		}
	}
	sort.Slice(out.Teams, func(i, j int) bool { return out.Teams[i].Name < out.Teams[j].Name })

	for _, rows := range matchRows {
		out.UpcomingMatches = append(out.UpcomingMatches, rows...)
	}
	// Dated fixtures first in date order, undated ones trail by recency.
	sort.Slice(out.UpcomingMatches, func(i, j int) bool {
		a, b := out.UpcomingMatches[i].Match, out.UpcomingMatches[j].Match
		switch {
		case a.FinalDate != nil && b.FinalDate != nil:
			return a.FinalDate.Before(*b.FinalDate)
		case a.FinalDate != nil:
			return true
		case b.FinalDate != nil:
			return false
		default:
			return a.CreatedAt.After(b.CreatedAt)
		}
	})
	if len(out.UpcomingMatches) > dashboardMatchLimit {
		out.UpcomingMatches = out.UpcomingMatches[:dashboardMatchLimit]
	}

	return out, nil
}
