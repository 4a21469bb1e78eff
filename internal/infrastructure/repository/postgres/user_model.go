package postgres

import (
	"database/sql"
	"time"

	"github.com/V1TECKOR/interclub/internal/domain/user"
)

type userTableModel struct {
	ID            string         `db:"id"`
	FirstName     string         `db:"first_name"`
	LastName      string         `db:"last_name"`
	Email         string         `db:"email"`
	LicenseNumber string         `db:"license_number"`
	PasswordHash  string         `db:"password_hash"`
	Role          string         `db:"role"`
	ClubID        sql.NullString `db:"club_id"`
	CreatedAt     time.Time      `db:"created_at"`
}

func userFromRow(row userTableModel) user.User {
	return user.User{
		ID:            row.ID,
		FirstName:     row.FirstName,
		LastName:      row.LastName,
		Email:         row.Email,
		LicenseNumber: row.LicenseNumber,
		PasswordHash:  row.PasswordHash,
		Role:          user.Role(row.Role),
		ClubID:        row.ClubID.String,
		CreatedAt:     row.CreatedAt,
	}
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}
