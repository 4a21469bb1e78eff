package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/V1TECKOR/interclub/internal/domain/storage"
	"github.com/V1TECKOR/interclub/internal/domain/team"
)

type teamRepository struct {
	d *data
}

func (r teamRepository) Create(_ context.Context, item team.Team) error {
	if _, ok := r.d.teams[item.ID]; ok {
		return storage.ErrDuplicateKey
	}
	for _, existing := range r.d.teams {
		if existing.ClubID == item.ClubID && strings.EqualFold(existing.Name, item.Name) {
			return storage.ErrDuplicateKey
		}
	}
	r.d.teams[item.ID] = item

	return nil
}

func (r teamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	item, ok := r.d.teams[teamID]
	return item, ok, nil
}

func (r teamRepository) ListByClub(_ context.Context, clubID string) ([]team.Team, error) {
	var out []team.Team
	for _, item := range r.d.teams {
		if item.ClubID == clubID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}
