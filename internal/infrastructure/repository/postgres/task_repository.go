package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/V1TECKOR/interclub/internal/domain/task"
)

type taskTableModel struct {
	MatchID   string    `db:"match_id"`
	Name      string    `db:"task_name"`
	UserID    string    `db:"user_id"`
	UpdatedAt time.Time `db:"updated_at"`
}

type TaskRepository struct {
	q sqlx.ExtContext
}

func (r TaskRepository) Upsert(ctx context.Context, item task.Assignment) error {
	const query = `
		INSERT INTO match_tasks (match_id, task_name, user_id, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (match_id, task_name) DO UPDATE
		SET user_id = EXCLUDED.user_id, updated_at = EXCLUDED.updated_at`

	if _, err := r.q.ExecContext(ctx, query, item.MatchID, item.Name, item.UserID, item.UpdatedAt); err != nil {
		return fmt.Errorf("upsert task assignment: %w", err)
	}

	return nil
}

func (r TaskRepository) Get(ctx context.Context, matchID, name string) (task.Assignment, bool, error) {
	const query = `
		SELECT match_id, task_name, user_id, updated_at
		FROM match_tasks WHERE match_id = $1 AND task_name = $2`

	var row taskTableModel
	if err := sqlx.GetContext(ctx, r.q, &row, query, matchID, name); err != nil {
		if isNotFound(err) {
			return task.Assignment{}, false, nil
		}
		return task.Assignment{}, false, fmt.Errorf("get task assignment: %w", err)
	}

	return taskFromRow(row), true, nil
}

func (r TaskRepository) ListByMatch(ctx context.Context, matchID string) ([]task.Assignment, error) {
	const query = `
		SELECT match_id, task_name, user_id, updated_at
		FROM match_tasks WHERE match_id = $1 ORDER BY task_name`

	var rows []taskTableModel
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, matchID); err != nil {
		return nil, fmt.Errorf("select task assignments: %w", err)
	}

	out := make([]task.Assignment, 0, len(rows))
	for _, row := range rows {
		out = append(out, taskFromRow(row))
	}

	return out, nil
}

func taskFromRow(row taskTableModel) task.Assignment {
	return task.Assignment{
		MatchID:   row.MatchID,
		Name:      row.Name,
		UserID:    row.UserID,
		UpdatedAt: row.UpdatedAt,
	}
}
