package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/V1TECKOR/interclub/internal/domain/storage"
)

const uniqueViolationCode = "23505"

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// mapWriteError translates unique violations to the storage sentinel so
// use cases can surface conflicts without knowing about pq.
func mapWriteError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
		return fmt.Errorf("%s: %w", op, storage.ErrDuplicateKey)
	}

	return fmt.Errorf("%s: %w", op, err)
}
