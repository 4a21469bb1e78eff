package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/V1TECKOR/interclub/internal/domain/availability"
)

type voteTableModel struct {
	MatchDateID string    `db:"match_date_id"`
	UserID      string    `db:"user_id"`
	Available   bool      `db:"available"`
	CreatedAt   time.Time `db:"created_at"`
}

type AvailabilityRepository struct {
	q sqlx.ExtContext
}

func (r AvailabilityRepository) Upsert(ctx context.Context, item availability.Vote) error {
	const query = `
		INSERT INTO availability (match_date_id, user_id, available, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (match_date_id, user_id) DO UPDATE SET available = EXCLUDED.available`

	if _, err := r.q.ExecContext(ctx, query, item.MatchDateID, item.UserID, item.Available, item.CreatedAt); err != nil {
		return fmt.Errorf("upsert availability vote: %w", err)
	}

	return nil
}

func (r AvailabilityRepository) Get(ctx context.Context, matchDateID, userID string) (availability.Vote, bool, error) {
	const query = `
		SELECT match_date_id, user_id, available, created_at
		FROM availability WHERE match_date_id = $1 AND user_id = $2`

	var row voteTableModel
	if err := sqlx.GetContext(ctx, r.q, &row, query, matchDateID, userID); err != nil {
		if isNotFound(err) {
			return availability.Vote{}, false, nil
		}
		return availability.Vote{}, false, fmt.Errorf("get availability vote: %w", err)
	}

	return voteFromRow(row), true, nil
}

func (r AvailabilityRepository) ListByDate(ctx context.Context, matchDateID string) ([]availability.Vote, error) {
	const query = `
		SELECT match_date_id, user_id, available, created_at
		FROM availability WHERE match_date_id = $1 ORDER BY user_id`

	var rows []voteTableModel
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, matchDateID); err != nil {
		return nil, fmt.Errorf("select availability votes: %w", err)
	}

	out := make([]availability.Vote, 0, len(rows))
	for _, row := range rows {
		out = append(out, voteFromRow(row))
	}

	return out, nil
}

func voteFromRow(row voteTableModel) availability.Vote {
	return availability.Vote{
		MatchDateID: row.MatchDateID,
		UserID:      row.UserID,
		Available:   row.Available,
		CreatedAt:   row.CreatedAt,
	}
}
