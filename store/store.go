// Package store defines the external player-document contract and ships
// two adapters: an in-memory map for tests and an embedded badger store
// for the running service, following the storage split
// hailam-chessplay's storage package uses for its own embedded KV data.
package store

import (
	"context"
	"errors"

	"github.com/chessroyale/core/chesstypes"
)

// ErrNotFound is returned by FindByEmail when no matching record exists.
var ErrNotFound = errors.New("store: no player with that email")

// Record is the persisted shape of one player account: nick and email
// are both unique keys, password_hash is an opaque string produced by an
// external hashing collaborator, and elo is tracked per game type,
// starting at 1000 for a freshly inserted record.
type Record struct {
	Nick         string
	Email        string
	PasswordHash string
	Elo          map[chesstypes.GameType]int
}

// PlayerStore is the async document interface the room service and auth
// service depend on. It never appears on the wire and is never itself
// responsible for password hashing.
type PlayerStore interface {
	FindByEmail(ctx context.Context, email string) (Record, error)
	ExistsByNick(ctx context.Context, nick string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Insert(ctx context.Context, rec Record) error
	UpdateElo(ctx context.Context, nick string, gameType chesstypes.GameType, elo int) error
}
