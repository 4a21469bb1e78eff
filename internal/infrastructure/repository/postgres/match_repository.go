package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/V1TECKOR/interclub/internal/domain/match"
)

type MatchRepository struct {
	q sqlx.ExtContext
}

func (r MatchRepository) Create(ctx context.Context, item match.Match) error {
	const query = `
		INSERT INTO matches (id, team_id, opponent, location, status, final_date, final_date_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.q.ExecContext(ctx, query,
		item.ID, item.TeamID, item.Opponent, string(item.Location), string(item.Status),
		item.FinalDate, nullString(item.FinalDateID), item.CreatedAt,
	)
	if err != nil {
		return mapWriteError("insert match", err)
	}

	return nil
}

func (r MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	const query = `
		SELECT id, team_id, opponent, location, status, final_date, final_date_id, created_at
		FROM matches WHERE id = $1`

	return r.getByID(ctx, query, matchID)
}

// GetByIDForUpdate takes the row lock, so a status observed here still
// holds when the transaction's dependent writes commit. Without it a
// concurrent Finalize or Complete could slip between the read and the
// write under read committed.
func (r MatchRepository) GetByIDForUpdate(ctx context.Context, matchID string) (match.Match, bool, error) {
	const query = `
		SELECT id, team_id, opponent, location, status, final_date, final_date_id, created_at
		FROM matches WHERE id = $1 FOR UPDATE`

	return r.getByID(ctx, query, matchID)
}

func (r MatchRepository) getByID(ctx context.Context, query, matchID string) (match.Match, bool, error) {
	var row matchTableModel
	if err := sqlx.GetContext(ctx, r.q, &row, query, matchID); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match by id: %w", err)
	}

	return matchFromRow(row), true, nil
}

func (r MatchRepository) ListByTeam(ctx context.Context, teamID string) ([]match.Match, error) {
	const query = `
		SELECT id, team_id, opponent, location, status, final_date, final_date_id, created_at
		FROM matches WHERE team_id = $1 ORDER BY created_at, id`

	var rows []matchTableModel
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, teamID); err != nil {
		return nil, fmt.Errorf("select matches by team: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}

	return out, nil
}

// Finalize is the winner-decides compare-and-set: the guard on status
// makes the second concurrent caller update zero rows.
func (r MatchRepository) Finalize(ctx context.Context, matchID, dateID string, finalDate time.Time) (bool, error) {
	const query = `
		UPDATE matches SET status = $1, final_date = $2, final_date_id = $3
		WHERE id = $4 AND status = $5`

	result, err := r.q.ExecContext(ctx, query,
		string(match.StatusConfirmed), finalDate, dateID, matchID, string(match.StatusPlanned),
	)
	if err != nil {
		return false, fmt.Errorf("finalize match: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("finalize match rows affected: %w", err)
	}

	return affected == 1, nil
}

func (r MatchRepository) Complete(ctx context.Context, matchID string) (bool, error) {
	const query = `UPDATE matches SET status = $1 WHERE id = $2 AND status = $3`

	result, err := r.q.ExecContext(ctx, query,
		string(match.StatusCompleted), matchID, string(match.StatusConfirmed),
	)
	if err != nil {
		return false, fmt.Errorf("complete match: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("complete match rows affected: %w", err)
	}

	return affected == 1, nil
}

func (r MatchRepository) AddDate(ctx context.Context, item match.Date) error {
	const query = `INSERT INTO match_dates (id, match_id, proposed_datetime) VALUES ($1, $2, $3)`
	if _, err := r.q.ExecContext(ctx, query, item.ID, item.MatchID, item.ProposedAt); err != nil {
		return mapWriteError("insert match date", err)
	}

	return nil
}

func (r MatchRepository) GetDate(ctx context.Context, dateID string) (match.Date, bool, error) {
	const query = `SELECT id, match_id, proposed_datetime FROM match_dates WHERE id = $1`

	var row matchDateTableModel
	if err := sqlx.GetContext(ctx, r.q, &row, query, dateID); err != nil {
		if isNotFound(err) {
			return match.Date{}, false, nil
		}
		return match.Date{}, false, fmt.Errorf("get match date: %w", err)
	}

	return matchDateFromRow(row), true, nil
}

func (r MatchRepository) ListDates(ctx context.Context, matchID string) ([]match.Date, error) {
	const query = `
		SELECT id, match_id, proposed_datetime
		FROM match_dates WHERE match_id = $1 ORDER BY proposed_datetime`

	var rows []matchDateTableModel
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, matchID); err != nil {
		return nil, fmt.Errorf("select match dates: %w", err)
	}

	out := make([]match.Date, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchDateFromRow(row))
	}

	return out, nil
}
