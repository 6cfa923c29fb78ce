// Package room implements the two room kinds a game can be played in -
// ranked (matched by Elo) and private (joined by access key) - following
// the reference service's RankedGameRoom/PrivateGameRoom split.
package room

import (
	"golang.org/x/sync/errgroup"

	"github.com/chessroyale/core/game"
	"github.com/chessroyale/core/player"
)

// Kind tags which of the two room variants a Room is.
type Kind int

const (
	Ranked Kind = iota
	Private
)

// Room is a sum type over Ranked and Private; exactly one of the two
// constructors below should be used, and Kind reports which was used.
type Room struct {
	kind Kind

	// Ranked fields.
	player1, player2 *player.Player

	// Private fields.
	host, guest *player.Player
	accessKey   string
	kicked      map[*player.Player]bool

	Runner *game.Runner
}

// NewRanked returns a two-player ranked room around a fresh runner.
func NewRanked(player1, player2 *player.Player) *Room {
	return &Room{
		kind:    Ranked,
		player1: player1,
		player2: player2,
		Runner:  game.New(nil),
	}
}

// NewPrivate returns a private room hosted by host, keyed by accessKey.
func NewPrivate(host *player.Player, accessKey string) *Room {
	return &Room{
		kind:      Private,
		host:      host,
		accessKey: accessKey,
		kicked:    make(map[*player.Player]bool),
		Runner:    game.New(nil),
	}
}

// Kind reports whether the room is Ranked or Private.
func (r *Room) Kind() Kind { return r.kind }

// Players returns the room's current participants: both players for a
// ranked room; the host, and the guest if present, for a private room.
func (r *Room) Players() []*player.Player {
	if r.kind == Ranked {
		return []*player.Player{r.player1, r.player2}
	}
	players := []*player.Player{r.host}
	if r.guest != nil {
		players = append(players, r.guest)
	}
	return players
}

// Host returns the private room's host. Only meaningful for Kind ==
// Private.
func (r *Room) Host() *player.Player { return r.host }

// Guest returns the private room's guest, or nil if none has joined.
// Only meaningful for Kind == Private.
func (r *Room) Guest() *player.Player { return r.guest }

// AccessKey returns the private room's join key. Only meaningful for
// Kind == Private.
func (r *Room) AccessKey() string { return r.accessKey }

// Full reports whether a private room already has a guest.
func (r *Room) Full() bool { return r.guest != nil }

// SetGuest attaches guest to a private room.
func (r *Room) SetGuest(guest *player.Player) { r.guest = guest }

// ClearGuest detaches the current guest, if any.
func (r *Room) ClearGuest() { r.guest = nil }

// Kick adds p to the set of players barred from rejoining this private
// room.
func (r *Room) Kick(p *player.Player) {
	r.kicked[p] = true
}

// IsKicked reports whether p was previously kicked from this private
// room.
func (r *Room) IsKicked(p *player.Player) bool {
	return r.kicked[p]
}

// Broadcast sends message to every current participant concurrently. A
// send failing for one participant does not prevent delivery to the
// others - each send runs independently.
func (r *Room) Broadcast(message []byte) {
	var g errgroup.Group
	for _, p := range r.Players() {
		p := p
		g.Go(func() error {
			select {
			case p.Send <- message:
			default:
			}
			return nil
		})
	}
	_ = g.Wait()
}

// SendTo delivers message only to p, used for status replies that
// should not reach the other participant(s).
func SendTo(p *player.Player, message []byte) {
	select {
	case p.Send <- message:
	default:
	}
}
