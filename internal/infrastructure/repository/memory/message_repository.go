package memory

import (
	"context"

	"github.com/V1TECKOR/interclub/internal/domain/message"
)

type messageRepository struct {
	d *data
}

// Append keeps per-match slices in insertion order, which matches
// creation order because writers are serialized.
func (r messageRepository) Append(_ context.Context, item message.Message) error {
	r.d.messages[item.MatchID] = append(r.d.messages[item.MatchID], item)
	return nil
}

func (r messageRepository) List(_ context.Context, matchID string, offset, limit int) ([]message.Message, error) {
	thread := r.d.messages[matchID]
	if offset >= len(thread) {
		return nil, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(thread) {
		end = len(thread)
	}
	out := make([]message.Message, end-offset)
	copy(out, thread[offset:end])

	return out, nil
}
