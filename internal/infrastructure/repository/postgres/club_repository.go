package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/V1TECKOR/interclub/internal/domain/club"
)

type ClubRepository struct {
	q sqlx.ExtContext
}

func (r ClubRepository) Create(ctx context.Context, item club.Club) error {
	const query = `INSERT INTO clubs (id, name, created_at) VALUES ($1, $2, $3)`
	if _, err := r.q.ExecContext(ctx, query, item.ID, item.Name, item.CreatedAt); err != nil {
		return mapWriteError("insert club", err)
	}

	return nil
}

func (r ClubRepository) GetByID(ctx context.Context, clubID string) (club.Club, bool, error) {
	const query = `SELECT id, name, created_at FROM clubs WHERE id = $1`

	var row clubTableModel
	if err := sqlx.GetContext(ctx, r.q, &row, query, clubID); err != nil {
		if isNotFound(err) {
			return club.Club{}, false, nil
		}
		return club.Club{}, false, fmt.Errorf("get club by id: %w", err)
	}

	return clubFromRow(row), true, nil
}

func (r ClubRepository) GetByName(ctx context.Context, name string) (club.Club, bool, error) {
	const query = `SELECT id, name, created_at FROM clubs WHERE lower(name) = lower($1)`

	var row clubTableModel
	if err := sqlx.GetContext(ctx, r.q, &row, query, name); err != nil {
		if isNotFound(err) {
			return club.Club{}, false, nil
		}
		return club.Club{}, false, fmt.Errorf("get club by name: %w", err)
	}

	return clubFromRow(row), true, nil
}

func (r ClubRepository) CreateLicenseMapping(ctx context.Context, item club.LicenseMapping) error {
	const query = `INSERT INTO license_club_map (id, prefix, club_id) VALUES ($1, $2, $3)`
	if _, err := r.q.ExecContext(ctx, query, item.ID, item.Prefix, item.ClubID); err != nil {
		return mapWriteError("insert license mapping", err)
	}

	return nil
}

func (r ClubRepository) ListLicenseMappings(ctx context.Context) ([]club.LicenseMapping, error) {
	const query = `SELECT id, prefix, club_id FROM license_club_map ORDER BY prefix`

	var rows []licenseMappingTableModel
	if err := sqlx.SelectContext(ctx, r.q, &rows, query); err != nil {
		return nil, fmt.Errorf("select license mappings: %w", err)
	}

	out := make([]club.LicenseMapping, 0, len(rows))
	for _, row := range rows {
		out = append(out, club.LicenseMapping{ID: row.ID, Prefix: row.Prefix, ClubID: row.ClubID})
	}

	return out, nil
}

func clubFromRow(row clubTableModel) club.Club {
	return club.Club{ID: row.ID, Name: row.Name, CreatedAt: row.CreatedAt}
}
