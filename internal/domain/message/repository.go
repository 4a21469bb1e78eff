package message

import "context"

// Repository exposes append-only message persistence. List pages in
// creation order ascending so callers can iterate lazily and restart.
type Repository interface {
	Append(ctx context.Context, item Message) error
	List(ctx context.Context, matchID string, offset, limit int) ([]Message, error)
}
