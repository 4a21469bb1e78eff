package memory

import (
	"time"

	"github.com/V1TECKOR/interclub/internal/domain/club"
	"github.com/V1TECKOR/interclub/internal/domain/membership"
	"github.com/V1TECKOR/interclub/internal/domain/team"
	"github.com/V1TECKOR/interclub/internal/domain/user"
)

const (
	ClubIDBlauweiss = "club-blauweiss"
	ClubIDRotgold   = "club-rotgold"

	TeamIDHerren1 = "team-blauweiss-herren-1"

	UserIDAnna  = "user-anna"  // captain of Herren 1
	UserIDBen   = "user-ben"   // approved player
	UserIDClara = "user-clara" // approved player
	UserIDDirk  = "user-dirk"  // pending membership
	UserIDErik  = "user-erik"  // club admin of Blauweiss
	UserIDFrida = "user-frida" // plays for the other club
)

var seedTime = time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

func SeedClubs() []club.Club {
	return []club.Club{
		{ID: ClubIDBlauweiss, Name: "TC Blauweiss", CreatedAt: seedTime},
		{ID: ClubIDRotgold, Name: "SV Rotgold", CreatedAt: seedTime},
	}
}

func SeedLicenseMappings() []club.LicenseMapping {
	return []club.LicenseMapping{
		{ID: "map-bw", Prefix: "BW-", ClubID: ClubIDBlauweiss},
		{ID: "map-bw19", Prefix: "BW-19", ClubID: ClubIDBlauweiss},
		{ID: "map-rg", Prefix: "RG-", ClubID: ClubIDRotgold},
	}
}

func SeedUsers() []user.User {
	return []user.User{
		{ID: UserIDAnna, FirstName: "Anna", LastName: "Keller", Email: "anna@blauweiss.example", LicenseNumber: "BW-1001", Role: user.RoleCaptain, ClubID: ClubIDBlauweiss, CreatedAt: seedTime},
		{ID: UserIDBen, FirstName: "Ben", LastName: "Roth", Email: "ben@blauweiss.example", LicenseNumber: "BW-1002", Role: user.RolePlayer, ClubID: ClubIDBlauweiss, CreatedAt: seedTime},
		{ID: UserIDClara, FirstName: "Clara", LastName: "Vogt", Email: "clara@blauweiss.example", LicenseNumber: "BW-1003", Role: user.RolePlayer, ClubID: ClubIDBlauweiss, CreatedAt: seedTime},
		{ID: UserIDDirk, FirstName: "Dirk", LastName: "Sommer", Email: "dirk@blauweiss.example", LicenseNumber: "BW-1004", Role: user.RolePlayer, ClubID: ClubIDBlauweiss, CreatedAt: seedTime},
		{ID: UserIDErik, FirstName: "Erik", LastName: "Brandt", Email: "erik@blauweiss.example", LicenseNumber: "BW-0001", Role: user.RoleClubAdmin, ClubID: ClubIDBlauweiss, CreatedAt: seedTime},
		{ID: UserIDFrida, FirstName: "Frida", LastName: "Lang", Email: "frida@rotgold.example", LicenseNumber: "RG-2001", Role: user.RolePlayer, ClubID: ClubIDRotgold, CreatedAt: seedTime},
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: TeamIDHerren1, ClubID: ClubIDBlauweiss, Name: "Herren 1", CaptainID: UserIDAnna, CreatedAt: seedTime},
	}
}

func SeedMemberships() []membership.Membership {
	approvedAt := seedTime
	return []membership.Membership{
		{UserID: UserIDAnna, TeamID: TeamIDHerren1, Approved: true, RequestedAt: seedTime, ApprovedAt: &approvedAt},
		{UserID: UserIDBen, TeamID: TeamIDHerren1, Approved: true, RequestedAt: seedTime.Add(time.Hour), ApprovedAt: &approvedAt},
		{UserID: UserIDClara, TeamID: TeamIDHerren1, Approved: true, RequestedAt: seedTime.Add(2 * time.Hour), ApprovedAt: &approvedAt},
		{UserID: UserIDDirk, TeamID: TeamIDHerren1, Approved: false, RequestedAt: seedTime.Add(3 * time.Hour)},
	}
}

// NewSeededStore builds a store preloaded with a small club so dev mode
// and tests have something to schedule against.
func NewSeededStore() *Store {
	s := NewStore()
	d := s.current.Load()
	for _, item := range SeedClubs() {
		d.clubs[item.ID] = item
	}
	for _, item := range SeedLicenseMappings() {
		d.licenseMappings[item.ID] = item
	}
	for _, item := range SeedUsers() {
		d.users[item.ID] = item
	}
	for _, item := range SeedTeams() {
		d.teams[item.ID] = item
	}
	for _, item := range SeedMemberships() {
		d.memberships[pairKey(item.UserID, item.TeamID)] = item
	}

	return s
}
