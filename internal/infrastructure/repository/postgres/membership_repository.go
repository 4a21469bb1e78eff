package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/V1TECKOR/interclub/internal/domain/membership"
)

type membershipTableModel struct {
	UserID      string     `db:"user_id"`
	TeamID      string     `db:"team_id"`
	Approved    bool       `db:"approved"`
	RequestedAt time.Time  `db:"requested_at"`
	ApprovedAt  *time.Time `db:"approved_at"`
}

type MembershipRepository struct {
	q sqlx.ExtContext
}

func (r MembershipRepository) Create(ctx context.Context, item membership.Membership) error {
	const query = `
		INSERT INTO team_membership (user_id, team_id, approved, requested_at, approved_at)
		VALUES ($1, $2, $3, $4, $5)`

	if _, err := r.q.ExecContext(ctx, query, item.UserID, item.TeamID, item.Approved, item.RequestedAt, item.ApprovedAt); err != nil {
		return mapWriteError("insert membership", err)
	}

	return nil
}

func (r MembershipRepository) Get(ctx context.Context, userID, teamID string) (membership.Membership, bool, error) {
	const query = `
		SELECT user_id, team_id, approved, requested_at, approved_at
		FROM team_membership WHERE user_id = $1 AND team_id = $2`

	var row membershipTableModel
	if err := sqlx.GetContext(ctx, r.q, &row, query, userID, teamID); err != nil {
		if isNotFound(err) {
			return membership.Membership{}, false, nil
		}
		return membership.Membership{}, false, fmt.Errorf("get membership: %w", err)
	}

	return membershipFromRow(row), true, nil
}

func (r MembershipRepository) Approve(ctx context.Context, userID, teamID string, approvedAt time.Time) (bool, error) {
	const query = `
		UPDATE team_membership SET approved = TRUE, approved_at = $1
		WHERE user_id = $2 AND team_id = $3 AND approved = FALSE`

	result, err := r.q.ExecContext(ctx, query, approvedAt, userID, teamID)
	if err != nil {
		return false, fmt.Errorf("approve membership: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("approve membership rows affected: %w", err)
	}

	return affected == 1, nil
}

func (r MembershipRepository) Delete(ctx context.Context, userID, teamID string) (bool, error) {
	const query = `DELETE FROM team_membership WHERE user_id = $1 AND team_id = $2`

	result, err := r.q.ExecContext(ctx, query, userID, teamID)
	if err != nil {
		return false, fmt.Errorf("delete membership: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete membership rows affected: %w", err)
	}

	return affected == 1, nil
}

func (r MembershipRepository) ListByTeam(ctx context.Context, teamID string, approvedOnly bool) ([]membership.Membership, error) {
	query := `
		SELECT user_id, team_id, approved, requested_at, approved_at
		FROM team_membership WHERE team_id = $1`
	if approvedOnly {
		query += ` AND approved = TRUE`
	}
	query += ` ORDER BY requested_at, user_id`

	var rows []membershipTableModel
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, teamID); err != nil {
		return nil, fmt.Errorf("select memberships by team: %w", err)
	}

	return membershipsFromRows(rows), nil
}

func (r MembershipRepository) ListByUser(ctx context.Context, userID string) ([]membership.Membership, error) {
	const query = `
		SELECT user_id, team_id, approved, requested_at, approved_at
		FROM team_membership WHERE user_id = $1 ORDER BY requested_at, team_id`

	var rows []membershipTableModel
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("select memberships by user: %w", err)
	}

	return membershipsFromRows(rows), nil
}

func membershipFromRow(row membershipTableModel) membership.Membership {
	return membership.Membership{
		UserID:      row.UserID,
		TeamID:      row.TeamID,
		Approved:    row.Approved,
		RequestedAt: row.RequestedAt,
		ApprovedAt:  row.ApprovedAt,
	}
}

func membershipsFromRows(rows []membershipTableModel) []membership.Membership {
	out := make([]membership.Membership, 0, len(rows))
	for _, row := range rows {
		out = append(out, membershipFromRow(row))
	}

	return out
}
