package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/V1TECKOR/interclub/internal/domain/lineup"
)

type lineupTableModel struct {
	MatchID   string    `db:"match_id"`
	UserID    string    `db:"user_id"`
	Confirmed bool      `db:"confirmed"`
	UpdatedAt time.Time `db:"updated_at"`
}

type LineupRepository struct {
	q sqlx.ExtContext
}

func (r LineupRepository) Create(ctx context.Context, item lineup.Entry) error {
	const query = `
		INSERT INTO lineup (match_id, user_id, confirmed, updated_at)
		VALUES ($1, $2, $3, $4)`

	if _, err := r.q.ExecContext(ctx, query, item.MatchID, item.UserID, item.Confirmed, item.UpdatedAt); err != nil {
		return mapWriteError("insert lineup entry", err)
	}

	return nil
}

func (r LineupRepository) Get(ctx context.Context, matchID, userID string) (lineup.Entry, bool, error) {
	const query = `
		SELECT match_id, user_id, confirmed, updated_at
		FROM lineup WHERE match_id = $1 AND user_id = $2`

	var row lineupTableModel
	if err := sqlx.GetContext(ctx, r.q, &row, query, matchID, userID); err != nil {
		if isNotFound(err) {
			return lineup.Entry{}, false, nil
		}
		return lineup.Entry{}, false, fmt.Errorf("get lineup entry: %w", err)
	}

	return lineupFromRow(row), true, nil
}

func (r LineupRepository) ListByMatch(ctx context.Context, matchID string) ([]lineup.Entry, error) {
	const query = `
		SELECT match_id, user_id, confirmed, updated_at
		FROM lineup WHERE match_id = $1 ORDER BY user_id`

	var rows []lineupTableModel
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, matchID); err != nil {
		return nil, fmt.Errorf("select lineup entries: %w", err)
	}

	out := make([]lineup.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, lineupFromRow(row))
	}

	return out, nil
}

func (r LineupRepository) Confirm(ctx context.Context, matchID, userID string, at time.Time) (bool, error) {
	const query = `
		UPDATE lineup SET confirmed = TRUE, updated_at = $1
		WHERE match_id = $2 AND user_id = $3`

	result, err := r.q.ExecContext(ctx, query, at, matchID, userID)
	if err != nil {
		return false, fmt.Errorf("confirm lineup entry: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("confirm lineup entry rows affected: %w", err)
	}

	return affected == 1, nil
}

func (r LineupRepository) Delete(ctx context.Context, matchID, userID string) (bool, error) {
	const query = `DELETE FROM lineup WHERE match_id = $1 AND user_id = $2`

	result, err := r.q.ExecContext(ctx, query, matchID, userID)
	if err != nil {
		return false, fmt.Errorf("delete lineup entry: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete lineup entry rows affected: %w", err)
	}

	return affected == 1, nil
}

func (r LineupRepository) CountConfirmed(ctx context.Context, matchID string) (int, error) {
	const query = `SELECT count(*) FROM lineup WHERE match_id = $1 AND confirmed = TRUE`

	var count int
	if err := sqlx.GetContext(ctx, r.q, &count, query, matchID); err != nil {
		return 0, fmt.Errorf("count confirmed lineup entries: %w", err)
	}

	return count, nil
}

func lineupFromRow(row lineupTableModel) lineup.Entry {
	return lineup.Entry{
		MatchID:   row.MatchID,
		UserID:    row.UserID,
		Confirmed: row.Confirmed,
		UpdatedAt: row.UpdatedAt,
	}
}
