package user

import (
	"fmt"
	"strings"
	"time"
)

// Role orders a user's authority inside their club. Captains manage one
// team; club admins manage every team of their club.
type Role string

const (
	RolePlayer    Role = "player"
	RoleCaptain   Role = "captain"
	RoleClubAdmin Role = "club_admin"
)

func ParseRole(raw string) (Role, error) {
	switch Role(strings.TrimSpace(raw)) {
	case RolePlayer:
		return RolePlayer, nil
	case RoleCaptain:
		return RoleCaptain, nil
	case RoleClubAdmin:
		return RoleClubAdmin, nil
	default:
		return "", fmt.Errorf("unknown user role %q", raw)
	}
}

// User is a registered player. ClubID is resolved from the license
// number at registration and stays empty when no mapping matches.
type User struct {
	ID            string
	FirstName     string
	LastName      string
	Email         string
	LicenseNumber string
	PasswordHash  string
	Role          Role
	ClubID        string
	CreatedAt     time.Time
}

func (u User) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("user id is required")
	}
	if strings.TrimSpace(u.Email) == "" {
		return fmt.Errorf("user email is required")
	}
	if strings.TrimSpace(u.LicenseNumber) == "" {
		return fmt.Errorf("user license number is required")
	}
	if _, err := ParseRole(string(u.Role)); err != nil {
		return err
	}

	return nil
}

// IsClubAdmin reports whether the user administers the given club.
func (u User) IsClubAdmin(clubID string) bool {
	return u.Role == RoleClubAdmin && clubID != "" && u.ClubID == clubID
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Principal is the authenticated identity attached to a request after
// token introspection.
type Principal struct {
	UserID string
	Email  string
}
