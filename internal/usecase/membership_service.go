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
	"github.com/V1TECKOR/interclub/internal/domain/user"
)

// MembershipService runs the roster approval workflow that gates every
// other coordination operation.
type MembershipService struct {
	store    storage.Store
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
}

func NewMembershipService(store storage.Store, notifier Notifier, logger *slog.Logger) *MembershipService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &MembershipService{
		store:    store,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// RequestMembership files a pending join request for the user on the team.
func (s *MembershipService) RequestMembership(ctx context.Context, userID, teamID string) (membership.Membership, error) {
	userID = strings.TrimSpace(userID)
	teamID = strings.TrimSpace(teamID)
	if userID == "" || teamID == "" {
		return membership.Membership{}, fmt.Errorf("%w: user id and team id are required", ErrInvalidInput)
	}

	item := membership.Membership{
		UserID:      userID,
		TeamID:      teamID,
		RequestedAt: s.now().UTC(),
	}

	var captain user.User
	var requester user.User
	err := s.store.WithinTx(ctx, func(tx storage.Tx) error {
		var exists bool
		var err error
		requester, exists, err = tx.Users().GetByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("get user by id: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: user=%s", ErrNotFound, userID)
		}

		teamItem, exists, err := tx.Teams().GetByID(ctx, teamID)
		if err != nil {
			return fmt.Errorf("get team by id: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
		}

		if _, exists, err = tx.Memberships().Get(ctx, userID, teamID); err != nil {
			return fmt.Errorf("get membership: %w", err)
		} else if exists {
			return fmt.Errorf("%w: membership already requested for team %s", ErrConflict, teamID)
		}

		if err := tx.Memberships().Create(ctx, item); err != nil {
			if errors.Is(err, storage.ErrDuplicateKey) {
				return fmt.Errorf("%w: membership already requested for team %s", ErrConflict, teamID)
			}
			return fmt.Errorf("create membership: %w", err)
		}

		captain, _, err = tx.Users().GetByID(ctx, teamItem.CaptainID)
		if err != nil {
			return fmt.Errorf("get captain by id: %w", err)
		}

		return nil
	})
	if err != nil {
		return membership.Membership{}, err
	}

	if captain.Email != "" {
		s.notify(ctx, Notification{
			To:      captain.Email,
			Subject: "New team join request",
			Body:    fmt.Sprintf("Hello %s,\n\n%s asked to join your team.", captain.FirstName, requester.FullName()),
		})
	}

	return item, nil
}

// ApproveMembership flips a pending request to approved. Only the team's
// captain or a club_admin of the team's club may approve.
func (s *MembershipService) ApproveMembership(ctx context.Context, approverID, userID, teamID string) error {
	approverID = strings.TrimSpace(approverID)
	userID = strings.TrimSpace(userID)
	teamID = strings.TrimSpace(teamID)
	if approverID == "" || userID == "" || teamID == "" {
		return fmt.Errorf("%w: approver, user and team ids are required", ErrInvalidInput)
	}

	var member user.User
	err := s.store.WithinTx(ctx, func(tx storage.Tx) error {
		if _, _, err := requireTeamAuthority(ctx, tx, approverID, teamID); err != nil {
			return err
		}

		item, exists, err := tx.Memberships().Get(ctx, userID, teamID)
		if err != nil {
			return fmt.Errorf("get membership: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: no membership request for user=%s team=%s", ErrNotFound, userID, teamID)
		}
		if item.Approved {
			return fmt.Errorf("%w: membership already approved", ErrConflict)
		}

		ok, err := tx.Memberships().Approve(ctx, userID, teamID, s.now().UTC())
		if err != nil {
			return fmt.Errorf("approve membership: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: no pending membership for user=%s team=%s", ErrNotFound, userID, teamID)
		}

		member, _, err = tx.Users().GetByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("get member by id: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	if member.Email != "" {
		s.notify(ctx, Notification{
			To:      member.Email,
			Subject: "Team join request approved",
			Body:    fmt.Sprintf("Hello %s,\n\nyour join request was accepted.", member.FirstName),
		})
	}

	return nil
}

// DenyMembership removes a pending request. Approved memberships are
// never removed; the roster keeps its history.
func (s *MembershipService) DenyMembership(ctx context.Context, approverID, userID, teamID string) error {
	approverID = strings.TrimSpace(approverID)
	userID = strings.TrimSpace(userID)
	teamID = strings.TrimSpace(teamID)
	if approverID == "" || userID == "" || teamID == "" {
		return fmt.Errorf("%w: approver, user and team ids are required", ErrInvalidInput)
	}

	return s.store.WithinTx(ctx, func(tx storage.Tx) error {
		if _, _, err := requireTeamAuthority(ctx, tx, approverID, teamID); err != nil {
			return err
		}

		item, exists, err := tx.Memberships().Get(ctx, userID, teamID)
		if err != nil {
			return fmt.Errorf("get membership: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: no membership request for user=%s team=%s", ErrNotFound, userID, teamID)
		}
		if item.Approved {
			return fmt.Errorf("%w: approved memberships cannot be denied", ErrInvalidState)
		}

		if _, err := tx.Memberships().Delete(ctx, userID, teamID); err != nil {
			return fmt.Errorf("delete membership: %w", err)
		}

		return nil
	})
}

// IsApprovedMember is the pure guard query used by other components.
func (s *MembershipService) IsApprovedMember(ctx context.Context, userID, teamID string) (bool, error) {
	return isApprovedMember(ctx, s.store, strings.TrimSpace(userID), strings.TrimSpace(teamID))
}

// ListRoster returns a team's memberships, optionally approved rows only.
func (s *MembershipService) ListRoster(ctx context.Context, callerID, teamID string, approvedOnly bool) ([]membership.Membership, error) {
	callerID = strings.TrimSpace(callerID)
	teamID = strings.TrimSpace(teamID)
	if callerID == "" || teamID == "" {
		return nil, fmt.Errorf("%w: caller id and team id are required", ErrInvalidInput)
	}

	if _, err := requireTeamAccess(ctx, s.store, callerID, teamID); err != nil {
		return nil, err
	}

	items, err := s.store.Memberships().ListByTeam(ctx, teamID, approvedOnly)
	if err != nil {
		return nil, fmt.Errorf("list memberships by team: %w", err)
	}

	return items, nil
}

func (s *MembershipService) notify(ctx context.Context, item Notification) {
	if err := s.notifier.Send(ctx, item); err != nil {
		s.logger.WarnContext(ctx, "notification delivery failed", "to", item.To, "error", err)
	}
}
