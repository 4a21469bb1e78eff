package membership

import (
	"context"
	"time"
)

// Repository exposes team membership persistence operations.
type Repository interface {
	Create(ctx context.Context, item Membership) error
	Get(ctx context.Context, userID, teamID string) (Membership, bool, error)
	// Approve flips a pending row to approved. Returns false when no
	// pending row exists for the pair.
	Approve(ctx context.Context, userID, teamID string, approvedAt time.Time) (bool, error)
	Delete(ctx context.Context, userID, teamID string) (bool, error)
	ListByTeam(ctx context.Context, teamID string, approvedOnly bool) ([]Membership, error)
	ListByUser(ctx context.Context, userID string) ([]Membership, error)
}
