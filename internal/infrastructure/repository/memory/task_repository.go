package memory

import (
	"context"
	"sort"

	"github.com/V1TECKOR/interclub/internal/domain/task"
)

type taskRepository struct {
	d *data
}

func (r taskRepository) Upsert(_ context.Context, item task.Assignment) error {
	r.d.tasks[pairKey(item.MatchID, item.Name)] = item
	return nil
}

func (r taskRepository) Get(_ context.Context, matchID, name string) (task.Assignment, bool, error) {
	item, ok := r.d.tasks[pairKey(matchID, name)]
	return item, ok, nil
}

func (r taskRepository) ListByMatch(_ context.Context, matchID string) ([]task.Assignment, error) {
	var out []task.Assignment
	for _, item := range r.d.tasks {
		if item.MatchID == matchID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}
