package availability

import "context"

// Repository exposes availability vote persistence operations. Upsert
// keys on (match date, user), so repeated votes overwrite.
type Repository interface {
	Upsert(ctx context.Context, item Vote) error
	Get(ctx context.Context, matchDateID, userID string) (Vote, bool, error)
	ListByDate(ctx context.Context, matchDateID string) ([]Vote, error)
}
