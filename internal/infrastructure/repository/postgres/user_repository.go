package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/V1TECKOR/interclub/internal/domain/user"
)

type UserRepository struct {
	q sqlx.ExtContext
}

func (r UserRepository) Create(ctx context.Context, item user.User) error {
	const query = `
		INSERT INTO users (id, first_name, last_name, email, license_number, password_hash, role, club_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.q.ExecContext(ctx, query,
		item.ID, item.FirstName, item.LastName, item.Email, item.LicenseNumber,
		item.PasswordHash, string(item.Role), nullString(item.ClubID), item.CreatedAt,
	)
	if err != nil {
		return mapWriteError("insert user", err)
	}

	return nil
}

func (r UserRepository) GetByID(ctx context.Context, userID string) (user.User, bool, error) {
	return r.getBy(ctx, "id = $1", userID, "get user by id")
}

func (r UserRepository) GetByEmail(ctx context.Context, email string) (user.User, bool, error) {
	return r.getBy(ctx, "lower(email) = lower($1)", email, "get user by email")
}

func (r UserRepository) GetByLicenseNumber(ctx context.Context, licenseNumber string) (user.User, bool, error) {
	return r.getBy(ctx, "license_number = $1", licenseNumber, "get user by license number")
}

func (r UserRepository) UpdateRole(ctx context.Context, userID string, role user.Role) error {
	const query = `UPDATE users SET role = $1 WHERE id = $2`
	result, err := r.q.ExecContext(ctx, query, string(role), userID)
	if err != nil {
		return fmt.Errorf("update user role: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user role rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update user role: user %s not found", userID)
	}

	return nil
}

func (r UserRepository) getBy(ctx context.Context, where, arg, op string) (user.User, bool, error) {
	query := `
		SELECT id, first_name, last_name, email, license_number, password_hash, role, club_id, created_at
		FROM users WHERE ` + where

	var row userTableModel
	if err := sqlx.GetContext(ctx, r.q, &row, query, arg); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("%s: %w", op, err)
	}

	return userFromRow(row), true, nil
}
