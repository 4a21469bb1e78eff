package task

import "context"

// Repository exposes task assignment persistence operations. Upsert keys
// on (match, task name): reassignment overwrites the prior assignee.
type Repository interface {
	Upsert(ctx context.Context, item Assignment) error
	Get(ctx context.Context, matchID, name string) (Assignment, bool, error)
	ListByMatch(ctx context.Context, matchID string) ([]Assignment, error)
}
