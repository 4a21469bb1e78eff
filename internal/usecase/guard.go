package usecase

import (
	"context"
	"fmt"

	"github.com/V1TECKOR/interclub/internal/domain/storage"
	"github.com/V1TECKOR/interclub/internal/domain/team"
	"github.com/V1TECKOR/interclub/internal/domain/user"
)

// requireTeamAuthority loads the team and verifies that the caller may
// manage it: the team's captain, or a club_admin of the team's club.
func requireTeamAuthority(ctx context.Context, tx storage.Tx, callerID, teamID string) (team.Team, user.User, error) {
	teamItem, exists, err := tx.Teams().GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, user.User{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return team.Team{}, user.User{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	caller, exists, err := tx.Users().GetByID(ctx, callerID)
	if err != nil {
		return team.Team{}, user.User{}, fmt.Errorf("get caller by id: %w", err)
	}
	if !exists {
		return team.Team{}, user.User{}, fmt.Errorf("%w: user=%s", ErrNotFound, callerID)
	}

	if teamItem.CaptainID != caller.ID && !caller.IsClubAdmin(teamItem.ClubID) {
		return team.Team{}, user.User{}, fmt.Errorf("%w: caller is not captain or club admin of team %s", ErrForbidden, teamID)
	}

	return teamItem, caller, nil
}

// isApprovedMember is the membership guard shared by voting, lineup,
// tasks and messaging.
func isApprovedMember(ctx context.Context, tx storage.Tx, userID, teamID string) (bool, error) {
	item, exists, err := tx.Memberships().Get(ctx, userID, teamID)
	if err != nil {
		return false, fmt.Errorf("get membership: %w", err)
	}

	return exists && item.Approved, nil
}

// requireTeamAccess loads a team and checks the caller may view its
// internals: an approved member, or a club_admin of the owning club.
func requireTeamAccess(ctx context.Context, tx storage.Tx, callerID, teamID string) (team.Team, error) {
	teamItem, exists, err := tx.Teams().GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	approved, err := isApprovedMember(ctx, tx, callerID, teamID)
	if err != nil {
		return team.Team{}, err
	}
	if approved {
		return teamItem, nil
	}

	caller, exists, err := tx.Users().GetByID(ctx, callerID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get caller by id: %w", err)
	}
	if exists && caller.IsClubAdmin(teamItem.ClubID) {
		return teamItem, nil
	}

	return team.Team{}, fmt.Errorf("%w: caller is not an approved member of team %s", ErrForbidden, teamID)
}

// requireMatchAccess loads a match and checks the caller is an approved
// member of its team or a club_admin of the owning club.
func requireMatchAccess(ctx context.Context, tx storage.Tx, callerID, matchID string) (matchWithTeam, error) {
	loaded, err := loadMatchWithTeam(ctx, tx, matchID)
	if err != nil {
		return matchWithTeam{}, err
	}

	approved, err := isApprovedMember(ctx, tx, callerID, loaded.Team.ID)
	if err != nil {
		return matchWithTeam{}, err
	}
	if approved {
		return loaded, nil
	}

	caller, exists, err := tx.Users().GetByID(ctx, callerID)
	if err != nil {
		return matchWithTeam{}, fmt.Errorf("get caller by id: %w", err)
	}
	if exists && caller.IsClubAdmin(loaded.Team.ClubID) {
		return loaded, nil
	}

	return matchWithTeam{}, fmt.Errorf("%w: caller is not an approved member of team %s", ErrForbidden, loaded.Team.ID)
}
