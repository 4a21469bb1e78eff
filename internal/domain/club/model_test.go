package club

import "testing"

func TestMatchLicense_LongestPrefixWins(t *testing.T) {
	mappings := []LicenseMapping{
		{ID: "map-1", Prefix: "BW-", ClubID: "club-bw"},
		{ID: "map-2", Prefix: "BW-19", ClubID: "club-bw-old"},
		{ID: "map-3", Prefix: "RG-", ClubID: "club-rg"},
	}

	clubID, ok := MatchLicense(mappings, "BW-1970-77")
	if !ok {
		t.Fatalf("expected a match")
	}
	if clubID != "club-bw-old" {
		t.Fatalf("expected longest prefix to win, got %s", clubID)
	}

	clubID, ok = MatchLicense(mappings, "BW-2001")
	if !ok || clubID != "club-bw" {
		t.Fatalf("expected short prefix match, got %s ok=%v", clubID, ok)
	}
}

func TestMatchLicense_NoMatch(t *testing.T) {
	mappings := []LicenseMapping{{ID: "map-1", Prefix: "BW-", ClubID: "club-bw"}}

	if clubID, ok := MatchLicense(mappings, "XX-1"); ok || clubID != "" {
		t.Fatalf("expected no match, got %s ok=%v", clubID, ok)
	}
	if _, ok := MatchLicense(nil, "BW-1"); ok {
		t.Fatalf("expected no match on empty mapping list")
	}
}
