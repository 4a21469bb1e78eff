package message

import (
	"fmt"
	"strings"
	"time"
)

// Message is an immutable note on a match thread. There is no edit or
// delete path; the thread is audit history.
type Message struct {
	ID        string
	MatchID   string
	UserID    string
	Content   string
	CreatedAt time.Time
}

func (m Message) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("message id is required")
	}
	if m.MatchID == "" {
		return fmt.Errorf("message match id is required")
	}
	if m.UserID == "" {
		return fmt.Errorf("message user id is required")
	}
	if strings.TrimSpace(m.Content) == "" {
		return fmt.Errorf("message content is required")
	}

	return nil
}
