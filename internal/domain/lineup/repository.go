package lineup

import (
	"context"
	"time"
)

// Repository exposes lineup persistence operations.
type Repository interface {
	Create(ctx context.Context, item Entry) error
	Get(ctx context.Context, matchID, userID string) (Entry, bool, error)
	ListByMatch(ctx context.Context, matchID string) ([]Entry, error)
	// Confirm returns false when no entry exists for the pair.
	Confirm(ctx context.Context, matchID, userID string, at time.Time) (bool, error)
	Delete(ctx context.Context, matchID, userID string) (bool, error)
	CountConfirmed(ctx context.Context, matchID string) (int, error)
}
