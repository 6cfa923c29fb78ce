// Package history tracks played moves and the board positions they
// produced, enough to answer the engine's repetition and fifty-move-rule
// questions, following the reference engine's MoveHistory/BoardSnapshot
// split.
package history

import (
	"sort"
	"strings"

	"github.com/chessroyale/core/boardgeo"
	"github.com/chessroyale/core/chesstypes"
)

// CastleRight records which side(s) a team may still castle to, as part
// of a BoardSnapshot.
type CastleRight uint8

const (
	CastleNone CastleRight = iota
	CastleShort
	CastleLong
	CastleBoth
)

// pieceAt is the (kind, team) pair recorded for one occupied square in a
// snapshot.
type pieceAt struct {
	Type chesstypes.PieceType
	Team chesstypes.Team
}

// BoardSnapshot is a position fingerprint: the full placement map, whose
// turn it is, both teams' castling rights, and whether an en passant
// capture is currently available. Two snapshots that compare equal are
// the same position for repetition purposes, per the standard chess
// threefold-repetition rule.
type BoardSnapshot struct {
	key string
}

// NewBoardSnapshot builds a snapshot from the current game state. pieces
// maps occupied squares to their piece; the map is read once and not
// retained, so snapshot identity does not depend on map iteration order.
func NewBoardSnapshot(
	pieces map[boardgeo.Vector2d]pieceAtLike,
	movingTeam chesstypes.Team,
	castleRights map[chesstypes.Team]CastleRight,
	enPassantAvailable bool,
) BoardSnapshot {
	squares := make([]boardgeo.Vector2d, 0, len(pieces))
	for sq := range pieces {
		squares = append(squares, sq)
	}
	sort.Slice(squares, func(i, j int) bool {
		if squares[i].X != squares[j].X {
			return squares[i].X < squares[j].X
		}
		return squares[i].Y < squares[j].Y
	})

	var b strings.Builder
	for _, sq := range squares {
		p := pieces[sq]
		b.WriteByte(byte('0' + sq.X))
		b.WriteByte(byte('0' + sq.Y))
		b.WriteByte(byte('0' + p.PieceType()))
		b.WriteByte(byte('0' + p.Owner()))
		b.WriteByte('|')
	}
	b.WriteByte(';')
	b.WriteByte(byte('0' + movingTeam))
	b.WriteByte(';')
	b.WriteByte(byte('0' + castleRights[chesstypes.White]))
	b.WriteByte(byte('0' + castleRights[chesstypes.Black]))
	b.WriteByte(';')
	if enPassantAvailable {
		b.WriteByte('1')
	} else {
		b.WriteByte('0')
	}

	return BoardSnapshot{key: b.String()}
}

// pieceAtLike is the (kind, team) view NewBoardSnapshot reads for each
// square. Callers pass values built with NewPieceAt, so history never
// imports the board package.
type pieceAtLike interface {
	PieceType() chesstypes.PieceType
	Owner() chesstypes.Team
}

func (p pieceAt) PieceType() chesstypes.PieceType { return p.Type }
func (p pieceAt) Owner() chesstypes.Team          { return p.Team }

// NewPieceAt builds a pieceAtLike value for a (kind, team) pair.
func NewPieceAt(t chesstypes.PieceType, team chesstypes.Team) pieceAtLike {
	return pieceAt{Type: t, Team: team}
}

// record is one played half-move paired with the snapshot it produced.
type record struct {
	move     chesstypes.Move
	snapshot BoardSnapshot
}

// History accumulates the played moves of a single game and the
// resulting positions, answering the three draw-adjacent questions the
// engine needs: threefold/fivefold repetition and the fifty-move rule.
type History struct {
	records             []record
	snapshotCounts      map[BoardSnapshot]int
	lastPawnOrCapturing int
}

// New returns an empty History.
func New() *History {
	return &History{
		snapshotCounts:      make(map[BoardSnapshot]int),
		lastPawnOrCapturing: -1,
	}
}

// Update records a played move and the snapshot it produced. isPawnMove
// and isCapture reset the fifty-move-rule counter, matching the standard
// chess rule that a pawn push or capture restarts the clock.
func (h *History) Update(move chesstypes.Move, snapshot BoardSnapshot, isPawnMove, isCapture bool) {
	h.records = append(h.records, record{move: move, snapshot: snapshot})
	h.snapshotCounts[snapshot]++
	if isPawnMove || isCapture {
		h.lastPawnOrCapturing = len(h.records) - 1
	}
}

// AddSnapshot records snapshot without a corresponding move, used once at
// game start to seed the repetition table with the initial position.
func (h *History) AddSnapshot(snapshot BoardSnapshot) {
	h.snapshotCounts[snapshot]++
}

// RepeatedThreeTimes reports whether the most recent position has now
// occurred three times, the threshold a player may claim a draw at.
func (h *History) RepeatedThreeTimes(current BoardSnapshot) bool {
	return h.snapshotCounts[current] >= 3
}

// RepeatedFiveTimes reports whether the most recent position has now
// occurred five times, the threshold at which the game is an automatic
// tie.
func (h *History) RepeatedFiveTimes(current BoardSnapshot) bool {
	return h.snapshotCounts[current] >= 5
}

// FiftyMovesRuleSatisfied reports whether 50 full moves (100 half-moves)
// have passed since the last pawn move or capture.
func (h *History) FiftyMovesRuleSatisfied() bool {
	return len(h.records)-h.lastPawnOrCapturing > 100
}

// LastMove returns the most recently played move, or the zero Move and
// false if no move has been played yet.
func (h *History) LastMove() (chesstypes.Move, bool) {
	if len(h.records) == 0 {
		return chesstypes.Move{}, false
	}
	return h.records[len(h.records)-1].move, true
}

// Len returns the number of half-moves played.
func (h *History) Len() int {
	return len(h.records)
}
