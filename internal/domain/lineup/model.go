package lineup

import (
	"fmt"
	"time"
)

// Entry is a candidate-or-confirmed player slot for one match. Entries
// start unconfirmed; only the confirmation operation flips the flag.
type Entry struct {
	MatchID   string
	UserID    string
	Confirmed bool
	UpdatedAt time.Time
}

func (e Entry) Validate() error {
	if e.MatchID == "" {
		return fmt.Errorf("lineup entry match id is required")
	}
	if e.UserID == "" {
		return fmt.Errorf("lineup entry user id is required")
	}

	return nil
}
