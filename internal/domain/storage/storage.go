package storage

import (
	"context"
	"errors"

	"github.com/V1TECKOR/interclub/internal/domain/availability"
	"github.com/V1TECKOR/interclub/internal/domain/club"
	"github.com/V1TECKOR/interclub/internal/domain/lineup"
	"github.com/V1TECKOR/interclub/internal/domain/match"
	"github.com/V1TECKOR/interclub/internal/domain/membership"
	"github.com/V1TECKOR/interclub/internal/domain/message"
	"github.com/V1TECKOR/interclub/internal/domain/task"
	"github.com/V1TECKOR/interclub/internal/domain/team"
	"github.com/V1TECKOR/interclub/internal/domain/user"
)

// ErrDuplicateKey is returned by repositories when an insert or upsert
// violates a uniqueness constraint. Use cases translate it to a caller
// facing conflict.
var ErrDuplicateKey = errors.New("duplicate key")

// Tx bundles every repository over one consistent view of the store.
type Tx interface {
	Clubs() club.Repository
	Users() user.Repository
	Teams() team.Repository
	Memberships() membership.Repository
	Matches() match.Repository
	Availability() availability.Repository
	Lineups() lineup.Repository
	Tasks() task.Repository
	Messages() message.Repository
}

// Store is the shared transactional store behind the coordination
// engine. Accessors outside WithinTx read committed state; WithinTx runs
// fn atomically: either every write in fn commits or none do.
type Store interface {
	Tx
	WithinTx(ctx context.Context, fn func(tx Tx) error) error
}
