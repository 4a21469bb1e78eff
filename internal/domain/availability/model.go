package availability

import (
	"fmt"
	"time"
)

// Vote is one user's yes/no answer for one candidate date. Votes are
// mutable until the match date is finalized.
type Vote struct {
	MatchDateID string
	UserID      string
	Available   bool
	CreatedAt   time.Time
}

func (v Vote) Validate() error {
	if v.MatchDateID == "" {
		return fmt.Errorf("vote match date id is required")
	}
	if v.UserID == "" {
		return fmt.Errorf("vote user id is required")
	}

	return nil
}

// Tally aggregates votes for one candidate date across the approved
// roster. NoResponse counts approved members who have not voted.
type Tally struct {
	MatchDateID string
	ProposedAt  time.Time
	Available   int
	Unavailable int
	NoResponse  int
}
