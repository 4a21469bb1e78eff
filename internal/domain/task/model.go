package task

import (
	"fmt"
	"strings"
	"time"
)

// Assignment hands one named match-day duty to one lineup member. Task
// names are free-form, case-sensitive labels; one assignee per name.
type Assignment struct {
	MatchID   string
	Name      string
	UserID    string
	UpdatedAt time.Time
}

func (a Assignment) Validate() error {
	if a.MatchID == "" {
		return fmt.Errorf("task assignment match id is required")
	}
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("task name is required")
	}
	if a.UserID == "" {
		return fmt.Errorf("task assignment user id is required")
	}

	return nil
}
