package memory

import (
	"context"
	"sort"
	"time"

	"github.com/V1TECKOR/interclub/internal/domain/lineup"
	"github.com/V1TECKOR/interclub/internal/domain/storage"
)

type lineupRepository struct {
	d *data
}

func (r lineupRepository) Create(_ context.Context, item lineup.Entry) error {
	key := pairKey(item.MatchID, item.UserID)
	if _, ok := r.d.lineups[key]; ok {
		return storage.ErrDuplicateKey
	}
	r.d.lineups[key] = item

	return nil
}

func (r lineupRepository) Get(_ context.Context, matchID, userID string) (lineup.Entry, bool, error) {
	item, ok := r.d.lineups[pairKey(matchID, userID)]
	return item, ok, nil
}

func (r lineupRepository) ListByMatch(_ context.Context, matchID string) ([]lineup.Entry, error) {
	var out []lineup.Entry
	for _, item := range r.d.lineups {
		if item.MatchID == matchID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })

	return out, nil
}

func (r lineupRepository) Confirm(_ context.Context, matchID, userID string, at time.Time) (bool, error) {
	key := pairKey(matchID, userID)
	item, ok := r.d.lineups[key]
	if !ok {
		return false, nil
	}
	item.Confirmed = true
	item.UpdatedAt = at
	r.d.lineups[key] = item

	return true, nil
}

func (r lineupRepository) Delete(_ context.Context, matchID, userID string) (bool, error) {
	key := pairKey(matchID, userID)
	if _, ok := r.d.lineups[key]; !ok {
		return false, nil
	}
	delete(r.d.lineups, key)

	return true, nil
}

func (r lineupRepository) CountConfirmed(_ context.Context, matchID string) (int, error) {
	count := 0
	for _, item := range r.d.lineups {
		if item.MatchID == matchID && item.Confirmed {
			count++
		}
	}

	return count, nil
}
