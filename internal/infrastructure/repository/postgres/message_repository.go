package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/V1TECKOR/interclub/internal/domain/message"
)

type messageTableModel struct {
	ID        string    `db:"id"`
	MatchID   string    `db:"match_id"`
	UserID    string    `db:"user_id"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}

type MessageRepository struct {
	q sqlx.ExtContext
}

func (r MessageRepository) Append(ctx context.Context, item message.Message) error {
	const query = `
		INSERT INTO match_messages (id, match_id, user_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	if _, err := r.q.ExecContext(ctx, query, item.ID, item.MatchID, item.UserID, item.Content, item.CreatedAt); err != nil {
		return mapWriteError("insert match message", err)
	}

	return nil
}

// List orders by the append sequence, not created_at, so ties on the
// timestamp cannot reorder a thread between pages.
func (r MessageRepository) List(ctx context.Context, matchID string, offset, limit int) ([]message.Message, error) {
	query := `
		SELECT id, match_id, user_id, content, created_at
		FROM match_messages WHERE match_id = $1 ORDER BY seq OFFSET $2`
	args := []any{matchID, offset}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}

	var rows []messageTableModel
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select match messages: %w", err)
	}

	out := make([]message.Message, 0, len(rows))
	for _, row := range rows {
		out = append(out, message.Message{
			ID:        row.ID,
			MatchID:   row.MatchID,
			UserID:    row.UserID,
			Content:   row.Content,
			CreatedAt: row.CreatedAt,
		})
	}

	return out, nil
}
