package team

import (
	"fmt"
	"strings"
	"time"
)

// Team is one interclub roster inside a club, led by exactly one captain.
type Team struct {
	ID        string
	ClubID    string
	Name      string
	CaptainID string
	CreatedAt time.Time
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.ClubID == "" {
		return fmt.Errorf("team club id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	if t.CaptainID == "" {
		return fmt.Errorf("team captain id is required")
	}

	return nil
}
