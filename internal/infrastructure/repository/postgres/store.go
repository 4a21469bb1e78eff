package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

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

// Store implements storage.Store over PostgreSQL. Every repository runs
// against an sqlx.ExtContext so the same code serves both the pooled
// connection and an open transaction.
type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) WithinTx(ctx context.Context, fn func(tx storage.Tx) error) error {
	dbTx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(repos{q: dbTx}); err != nil {
		if rbErr := dbTx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback after %w: %v", err, rbErr)
		}
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

func (s *Store) Clubs() club.Repository                { return ClubRepository{q: s.db} }
func (s *Store) Users() user.Repository                { return UserRepository{q: s.db} }
func (s *Store) Teams() team.Repository                { return TeamRepository{q: s.db} }
func (s *Store) Memberships() membership.Repository    { return MembershipRepository{q: s.db} }
func (s *Store) Matches() match.Repository             { return MatchRepository{q: s.db} }
func (s *Store) Availability() availability.Repository { return AvailabilityRepository{q: s.db} }
func (s *Store) Lineups() lineup.Repository            { return LineupRepository{q: s.db} }
func (s *Store) Tasks() task.Repository                { return TaskRepository{q: s.db} }
func (s *Store) Messages() message.Repository          { return MessageRepository{q: s.db} }

type repos struct {
	q sqlx.ExtContext
}

func (r repos) Clubs() club.Repository                { return ClubRepository{q: r.q} }
func (r repos) Users() user.Repository                { return UserRepository{q: r.q} }
func (r repos) Teams() team.Repository                { return TeamRepository{q: r.q} }
func (r repos) Memberships() membership.Repository    { return MembershipRepository{q: r.q} }
func (r repos) Matches() match.Repository             { return MatchRepository{q: r.q} }
func (r repos) Availability() availability.Repository { return AvailabilityRepository{q: r.q} }
func (r repos) Lineups() lineup.Repository            { return LineupRepository{q: r.q} }
func (r repos) Tasks() task.Repository                { return TaskRepository{q: r.q} }
func (r repos) Messages() message.Repository          { return MessageRepository{q: r.q} }
