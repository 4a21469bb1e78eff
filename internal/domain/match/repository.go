package match

import (
	"context"
	"time"
)

// Repository exposes match and candidate-date persistence operations.
// Finalize and Complete are compare-and-set transitions: they return
// false without changing anything when the expected status does not hold,
// so concurrent callers resolve to exactly one winner.
type Repository interface {
	Create(ctx context.Context, item Match) error
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	// GetByIDForUpdate loads the match and holds it against concurrent
	// status transitions until the enclosing transaction ends. Every
	// write that depends on the status it read must load through this.
	GetByIDForUpdate(ctx context.Context, matchID string) (Match, bool, error)
	ListByTeam(ctx context.Context, teamID string) ([]Match, error)

	// Finalize moves planned -> confirmed and locks the final date.
	Finalize(ctx context.Context, matchID, dateID string, finalDate time.Time) (bool, error)
	// Complete moves confirmed -> completed.
	Complete(ctx context.Context, matchID string) (bool, error)

	AddDate(ctx context.Context, item Date) error
	GetDate(ctx context.Context, dateID string) (Date, bool, error)
	ListDates(ctx context.Context, matchID string) ([]Date, error)
}
