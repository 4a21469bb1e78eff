package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/V1TECKOR/interclub/internal/domain/storage"
	"github.com/V1TECKOR/interclub/internal/domain/task"
)

// TaskService distributes match-day duties among lineup members.
type TaskService struct {
	store storage.Store
	now   func() time.Time
}

func NewTaskService(store storage.Store) *TaskService {
	return &TaskService{
		store: store,
		now:   time.Now,
	}
}

// AssignTask hands one duty to one lineup member, overwriting any prior
// assignee for the same task name.
func (s *TaskService) AssignTask(ctx context.Context, captainID, matchID, taskName, userID string) (task.Assignment, error) {
	captainID = strings.TrimSpace(captainID)
	matchID = strings.TrimSpace(matchID)
	userID = strings.TrimSpace(userID)
	if captainID == "" || matchID == "" || userID == "" {
		return task.Assignment{}, fmt.Errorf("%w: captain, match and user ids are required", ErrInvalidInput)
	}
	// Task names are free-form labels and stored exactly as given;
	// " Baelle" and "Baelle" are distinct duty slots.
	if strings.TrimSpace(taskName) == "" {
		return task.Assignment{}, fmt.Errorf("%w: task name is required", ErrInvalidInput)
	}

	item := task.Assignment{
		MatchID: matchID,
		Name:    taskName,
		UserID:  userID,
	}

	err := s.store.WithinTx(ctx, func(tx storage.Tx) error {
		loaded, err := loadMatchWithTeamForUpdate(ctx, tx, matchID)
		if err != nil {
			return err
		}
		if _, _, err := requireTeamAuthority(ctx, tx, captainID, loaded.Team.ID); err != nil {
			return err
		}

		// Duties go to people who are actually at the match.
		if _, exists, err := tx.Lineups().Get(ctx, matchID, userID); err != nil {
			return fmt.Errorf("get lineup entry: %w", err)
		} else if !exists {
			return fmt.Errorf("%w: user=%s has no lineup entry on match=%s", ErrNotFound, userID, matchID)
		}

		item.UpdatedAt = s.now().UTC()
		if err := tx.Tasks().Upsert(ctx, item); err != nil {
			return fmt.Errorf("upsert task assignment: %w", err)
		}

		return nil
	})
	if err != nil {
		return task.Assignment{}, err
	}

	return item, nil
}

// ListTasks returns the duty board of a match, ordered by task name.
func (s *TaskService) ListTasks(ctx context.Context, callerID, matchID string) ([]task.Assignment, error) {
	callerID = strings.TrimSpace(callerID)
	matchID = strings.TrimSpace(matchID)
	if callerID == "" || matchID == "" {
		return nil, fmt.Errorf("%w: caller id and match id are required", ErrInvalidInput)
	}

	if _, err := requireMatchAccess(ctx, s.store, callerID, matchID); err != nil {
		return nil, err
	}

	items, err := s.store.Tasks().ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list task assignments: %w", err)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })

	return items, nil
}
