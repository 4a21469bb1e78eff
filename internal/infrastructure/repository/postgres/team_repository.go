package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/V1TECKOR/interclub/internal/domain/team"
)

type teamTableModel struct {
	ID        string    `db:"id"`
	ClubID    string    `db:"club_id"`
	Name      string    `db:"name"`
	CaptainID string    `db:"captain_id"`
	CreatedAt time.Time `db:"created_at"`
}

type TeamRepository struct {
	q sqlx.ExtContext
}

func (r TeamRepository) Create(ctx context.Context, item team.Team) error {
	const query = `
		INSERT INTO teams (id, club_id, name, captain_id, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	if _, err := r.q.ExecContext(ctx, query, item.ID, item.ClubID, item.Name, item.CaptainID, item.CreatedAt); err != nil {
		return mapWriteError("insert team", err)
	}

	return nil
}

func (r TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	const query = `SELECT id, club_id, name, captain_id, created_at FROM teams WHERE id = $1`

	var row teamTableModel
	if err := sqlx.GetContext(ctx, r.q, &row, query, teamID); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team by id: %w", err)
	}

	return teamFromRow(row), true, nil
}

func (r TeamRepository) ListByClub(ctx context.Context, clubID string) ([]team.Team, error) {
	const query = `SELECT id, club_id, name, captain_id, created_at FROM teams WHERE club_id = $1 ORDER BY name`

	var rows []teamTableModel
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, clubID); err != nil {
		return nil, fmt.Errorf("select teams by club: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}

	return out, nil
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:        row.ID,
		ClubID:    row.ClubID,
		Name:      row.Name,
		CaptainID: row.CaptainID,
		CreatedAt: row.CreatedAt,
	}
}
