package memory

import (
	"context"
	"sort"
	"time"

	"github.com/V1TECKOR/interclub/internal/domain/match"
	"github.com/V1TECKOR/interclub/internal/domain/storage"
)

type matchRepository struct {
	d *data
}

func (r matchRepository) Create(_ context.Context, item match.Match) error {
	if _, ok := r.d.matches[item.ID]; ok {
		return storage.ErrDuplicateKey
	}
	r.d.matches[item.ID] = item

	return nil
}

func (r matchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	item, ok := r.d.matches[matchID]
	return item, ok, nil
}

// GetByIDForUpdate reads like GetByID: transactions run one at a time
// against a private snapshot here, so the read cannot go stale.
func (r matchRepository) GetByIDForUpdate(ctx context.Context, matchID string) (match.Match, bool, error) {
	return r.GetByID(ctx, matchID)
}

func (r matchRepository) ListByTeam(_ context.Context, teamID string) ([]match.Match, error) {
	var out []match.Match
	for _, item := range r.d.matches {
		if item.TeamID == teamID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r matchRepository) Finalize(_ context.Context, matchID, dateID string, finalDate time.Time) (bool, error) {
	item, ok := r.d.matches[matchID]
	if !ok || item.Status != match.StatusPlanned {
		return false, nil
	}
	item.Status = match.StatusConfirmed
	item.FinalDate = &finalDate
	item.FinalDateID = dateID
	r.d.matches[matchID] = item

	return true, nil
}

func (r matchRepository) Complete(_ context.Context, matchID string) (bool, error) {
	item, ok := r.d.matches[matchID]
	if !ok || item.Status != match.StatusConfirmed {
		return false, nil
	}
	item.Status = match.StatusCompleted
	r.d.matches[matchID] = item

	return true, nil
}

func (r matchRepository) AddDate(_ context.Context, item match.Date) error {
	if _, ok := r.d.matchDates[item.ID]; ok {
		return storage.ErrDuplicateKey
	}
	for _, existing := range r.d.matchDates {
		if existing.MatchID == item.MatchID && existing.ProposedAt.Equal(item.ProposedAt) {
			return storage.ErrDuplicateKey
		}
	}
	r.d.matchDates[item.ID] = item

	return nil
}

func (r matchRepository) GetDate(_ context.Context, dateID string) (match.Date, bool, error) {
	item, ok := r.d.matchDates[dateID]
	return item, ok, nil
}

func (r matchRepository) ListDates(_ context.Context, matchID string) ([]match.Date, error) {
	var out []match.Date
	for _, item := range r.d.matchDates {
		if item.MatchID == matchID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProposedAt.Before(out[j].ProposedAt) })

	return out, nil
}
