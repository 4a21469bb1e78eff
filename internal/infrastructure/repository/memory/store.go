package memory

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/V1TECKOR/interclub/internal/domain/availability"
	"github.com/V1TECKOR/interclub/internal/domain/club"
	"github.com/V1TECKOR/interclub/internal/domain/lineup"
	"github.com/V1TECKOR/interclub/internal/domain/match"
	"github.com/V1TECKOR/interclub/internal/domain/membership"
	"github.com/V1TECKOR/interclub/internal/domain/message"
	"github.com/V1TECKOR/interclub/internal/domain/storage"
	"github.com/V1TECKOR/interclub/internal/domain/task"
	"github.com/V1TECKOR/interclub/internal/domain/team"
	"github.com/V1TECKOR/interclub/internal/domain/user"
)

// data is one committed snapshot of the whole store. Snapshots are never
// mutated after publication; transactions clone, mutate the clone and
// swap. Readers therefore always see a consistent committed state.
type data struct {
	clubs           map[string]club.Club
	licenseMappings map[string]club.LicenseMapping
	users           map[string]user.User
	teams           map[string]team.Team
	memberships     map[string]membership.Membership
	matches         map[string]match.Match
	matchDates      map[string]match.Date
	votes           map[string]availability.Vote
	lineups         map[string]lineup.Entry
	tasks           map[string]task.Assignment
	messages        map[string][]message.Message
}

func newData() *data {
	return &data{
		clubs:           make(map[string]club.Club),
		licenseMappings: make(map[string]club.LicenseMapping),
		users:           make(map[string]user.User),
		teams:           make(map[string]team.Team),
		memberships:     make(map[string]membership.Membership),
		matches:         make(map[string]match.Match),
		matchDates:      make(map[string]match.Date),
		votes:           make(map[string]availability.Vote),
		lineups:         make(map[string]lineup.Entry),
		tasks:           make(map[string]task.Assignment),
		messages:        make(map[string][]message.Message),
	}
}

func (d *data) clone() *data {
	next := newData()
	for k, v := range d.clubs {
		next.clubs[k] = v
	}
	for k, v := range d.licenseMappings {
		next.licenseMappings[k] = v
	}
	for k, v := range d.users {
		next.users[k] = v
	}
	for k, v := range d.teams {
		next.teams[k] = v
	}
	for k, v := range d.memberships {
		next.memberships[k] = v
	}
	for k, v := range d.matches {
		next.matches[k] = v
	}
	for k, v := range d.matchDates {
		next.matchDates[k] = v
	}
	for k, v := range d.votes {
		next.votes[k] = v
	}
	for k, v := range d.lineups {
		next.lineups[k] = v
	}
	for k, v := range d.tasks {
		next.tasks[k] = v
	}
	for k, v := range d.messages {
		next.messages[k] = append([]message.Message(nil), v...)
	}

	return next
}

// Store is an in-memory storage.Store with serializable transactions.
// Used by tests and by dev mode when no database is configured.
type Store struct {
	writeMu sync.Mutex
	current atomic.Pointer[data]
}

func NewStore() *Store {
	s := &Store{}
	s.current.Store(newData())
	return s
}

// WithinTx serializes writers. The transaction works on a clone of the
// committed snapshot; an error discards the clone so nothing partial is
// ever observable.
func (s *Store) WithinTx(_ context.Context, fn func(tx storage.Tx) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next := s.current.Load().clone()
	if err := fn(repos{d: next}); err != nil {
		return err
	}
	s.current.Store(next)

	return nil
}

// Accessors outside WithinTx are read views over the latest committed
// snapshot. Writes must go through WithinTx.
func (s *Store) snapshot() repos {
	return repos{d: s.current.Load()}
}

func (s *Store) Clubs() club.Repository                { return s.snapshot().Clubs() }
func (s *Store) Users() user.Repository                { return s.snapshot().Users() }
func (s *Store) Teams() team.Repository                { return s.snapshot().Teams() }
func (s *Store) Memberships() membership.Repository    { return s.snapshot().Memberships() }
func (s *Store) Matches() match.Repository             { return s.snapshot().Matches() }
func (s *Store) Availability() availability.Repository { return s.snapshot().Availability() }
func (s *Store) Lineups() lineup.Repository            { return s.snapshot().Lineups() }
func (s *Store) Tasks() task.Repository                { return s.snapshot().Tasks() }
func (s *Store) Messages() message.Repository          { return s.snapshot().Messages() }

// repos binds every repository to one snapshot.
type repos struct {
	d *data
}

func (r repos) Clubs() club.Repository                { return clubRepository{d: r.d} }
func (r repos) Users() user.Repository                { return userRepository{d: r.d} }
func (r repos) Teams() team.Repository                { return teamRepository{d: r.d} }
func (r repos) Memberships() membership.Repository    { return membershipRepository{d: r.d} }
func (r repos) Matches() match.Repository             { return matchRepository{d: r.d} }
func (r repos) Availability() availability.Repository { return voteRepository{d: r.d} }
func (r repos) Lineups() lineup.Repository            { return lineupRepository{d: r.d} }
func (r repos) Tasks() task.Repository                { return taskRepository{d: r.d} }
func (r repos) Messages() message.Repository          { return messageRepository{d: r.d} }

func pairKey(a, b string) string {
	return a + "::" + b
}
