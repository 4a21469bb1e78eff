package match

import (
	"fmt"
	"strings"
	"time"
)

// Status is the match lifecycle. Transitions are one-way:
// planned -> confirmed (date finalized) -> completed (terminal).
type Status string

const (
	StatusPlanned   Status = "planned"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
)

// Location is an opaque venue category. "Other" carries no behavior
// beyond its label.
type Location string

const (
	LocationHome  Location = "Home"
	LocationAway  Location = "Away"
	LocationOther Location = "Other"
)

func ParseLocation(raw string) (Location, error) {
	switch Location(strings.TrimSpace(raw)) {
	case LocationHome:
		return LocationHome, nil
	case LocationAway:
		return LocationAway, nil
	case LocationOther:
		return LocationOther, nil
	default:
		return "", fmt.Errorf("unknown match location %q", raw)
	}
}

// Match is one fixture of a team against an opponent. FinalDate and
// FinalDateID are set together by finalization and never change again.
type Match struct {
	ID          string
	TeamID      string
	Opponent    string
	Location    Location
	Status      Status
	FinalDate   *time.Time
	FinalDateID string
	CreatedAt   time.Time
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if m.TeamID == "" {
		return fmt.Errorf("match team id is required")
	}
	if strings.TrimSpace(m.Opponent) == "" {
		return fmt.Errorf("match opponent is required")
	}
	if _, err := ParseLocation(string(m.Location)); err != nil {
		return err
	}

	return nil
}

// Open reports whether candidate dates may still be proposed and voted on.
func (m Match) Open() bool {
	return m.Status == StatusPlanned
}

// Date is a candidate datetime for a match. Dates that lose finalization
// stay on record but accept no further votes.
type Date struct {
	ID         string
	MatchID    string
	ProposedAt time.Time
}

func (d Date) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("match date id is required")
	}
	if d.MatchID == "" {
		return fmt.Errorf("match date match id is required")
	}
	if d.ProposedAt.IsZero() {
		return fmt.Errorf("match date datetime is required")
	}

	return nil
}
