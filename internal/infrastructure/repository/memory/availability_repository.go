package memory

import (
	"context"
	"sort"

	"github.com/V1TECKOR/interclub/internal/domain/availability"
)

type voteRepository struct {
	d *data
}

func (r voteRepository) Upsert(_ context.Context, item availability.Vote) error {
	r.d.votes[pairKey(item.MatchDateID, item.UserID)] = item
	return nil
}

func (r voteRepository) Get(_ context.Context, matchDateID, userID string) (availability.Vote, bool, error) {
	item, ok := r.d.votes[pairKey(matchDateID, userID)]
	return item, ok, nil
}

func (r voteRepository) ListByDate(_ context.Context, matchDateID string) ([]availability.Vote, error) {
	var out []availability.Vote
	for _, item := range r.d.votes {
		if item.MatchDateID == matchDateID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })

	return out, nil
}
