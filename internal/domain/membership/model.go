package membership

import (
	"fmt"
	"time"
)

// Membership joins a user to a team. A row is pending until a team
// authority approves it; only approved members vote, play and post.
type Membership struct {
	UserID      string
	TeamID      string
	Approved    bool
	RequestedAt time.Time
	ApprovedAt  *time.Time
}

func (m Membership) Validate() error {
	if m.UserID == "" {
		return fmt.Errorf("membership user id is required")
	}
	if m.TeamID == "" {
		return fmt.Errorf("membership team id is required")
	}
	if m.Approved && m.ApprovedAt == nil {
		return fmt.Errorf("approved membership requires an approval time")
	}
	if !m.Approved && m.ApprovedAt != nil {
		return fmt.Errorf("pending membership cannot carry an approval time")
	}

	return nil
}
