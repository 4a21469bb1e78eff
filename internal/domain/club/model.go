package club

import (
	"fmt"
	"strings"
	"time"
)

// Club groups the teams of one organization. Players inherit their club
// from their license number at registration time.
type Club struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

func (c Club) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("club id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("club name is required")
	}

	return nil
}

// LicenseMapping routes a license-number prefix to a club. Prefixes are
// unique across the table.
type LicenseMapping struct {
	ID     string
	Prefix string
	ClubID string
}

func (m LicenseMapping) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("license mapping id is required")
	}
	if m.Prefix == "" {
		return fmt.Errorf("license mapping prefix is required")
	}
	if m.ClubID == "" {
		return fmt.Errorf("license mapping club id is required")
	}

	return nil
}

// MatchLicense resolves a license number to a club by longest matching
// prefix. Returns false when no mapping applies.
func MatchLicense(mappings []LicenseMapping, licenseNumber string) (string, bool) {
	var (
		bestLen int
		clubID  string
		found   bool
	)
	for _, m := range mappings {
		if !strings.HasPrefix(licenseNumber, m.Prefix) {
			continue
		}
		if !found || len(m.Prefix) > bestLen {
			bestLen = len(m.Prefix)
			clubID = m.ClubID
			found = true
		}
	}

	return clubID, found
}
