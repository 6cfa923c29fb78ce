// Package player holds the identity of a signed-in client: their nick,
// per-game-type Elo ratings, and the channel used to push messages back
// to their connection.
package player

import "github.com/chessroyale/core/chesstypes"

// Player is identified and hashed by Nick alone - two Players with the
// same Nick are the same player, regardless of any other field.
type Player struct {
	Nick string
	Elo  map[chesstypes.GameType]int

	// Send delivers outbound wire frames to this player's connection.
	// It is never closed; once the connection goes away nothing drains it.
	Send chan []byte
}

// New returns a Player seeded with elo (typically 1000 across game
// types for a newly registered account) and a buffered send channel.
func New(nick string, elo map[chesstypes.GameType]int) *Player {
	return &Player{
		Nick: nick,
		Elo:  elo,
		Send: make(chan []byte, 32),
	}
}

// DefaultElo returns the starting rating map for a freshly created
// account: 1000 in every game type.
func DefaultElo() map[chesstypes.GameType]int {
	elo := make(map[chesstypes.GameType]int, len(chesstypes.AllGameTypes))
	for _, gt := range chesstypes.AllGameTypes {
		elo[gt] = 1000
	}
	return elo
}

// Equal reports whether p and other name the same player.
func (p *Player) Equal(other *Player) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.Nick == other.Nick
}
