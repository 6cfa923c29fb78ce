// Package board implements the 8x8 piece-placement map and the per-team
// piece sets that sit on top of it, following the reference engine's
// Chessboard/PlayerPieceSet split.
package board

import (
	"github.com/chessroyale/core/boardgeo"
	"github.com/chessroyale/core/chesstypes"
)

// Piece is a single piece on the board: its kind, owning team, current
// square, and whether it has ever moved (needed for castling and the
// pawn double-push rule).
type Piece struct {
	Type     chesstypes.PieceType
	Team     chesstypes.Team
	Position boardgeo.Vector2d
	HasMoved bool
}

// pawnMoveVectors/pawnAttackVectors are keyed by team because pawns push
// and capture in opposite directions depending on side.
var pawnMoveVectors = map[chesstypes.Team][]boardgeo.Vector2d{
	chesstypes.White: {boardgeo.Up},
	chesstypes.Black: {boardgeo.Down},
}

var pawnAttackVectors = map[chesstypes.Team][]boardgeo.Vector2d{
	chesstypes.White: {boardgeo.UpLeft, boardgeo.UpRight},
	chesstypes.Black: {boardgeo.DownLeft, boardgeo.DownRight},
}

// KnightVectors are the 8 fixed knight-step offsets.
var KnightVectors = []boardgeo.Vector2d{
	{X: -2, Y: -1}, {X: -2, Y: 1}, {X: -1, Y: -2}, {X: -1, Y: 2},
	{X: 1, Y: -2}, {X: 1, Y: 2}, {X: 2, Y: -1}, {X: 2, Y: 1},
}

// BishopVectors are the 4 diagonal slide directions.
var BishopVectors = []boardgeo.Vector2d{boardgeo.UpRight, boardgeo.DownRight, boardgeo.DownLeft, boardgeo.UpLeft}

// RookVectors are the 4 orthogonal slide directions.
var RookVectors = []boardgeo.Vector2d{boardgeo.Up, boardgeo.Right, boardgeo.Down, boardgeo.Left}

// QueenVectors (and King's step set) is the union of bishop and rook
// directions.
var QueenVectors = append(append([]boardgeo.Vector2d{}, BishopVectors...), RookVectors...)

// MoveVectors returns the direction/offset table for a piece: sliders get
// their slide directions, steppers (knight/king) their fixed offsets, and
// pawns their team-relative push direction.
func (p Piece) MoveVectors() []boardgeo.Vector2d {
	switch p.Type {
	case chesstypes.Pawn:
		return pawnMoveVectors[p.Team]
	case chesstypes.Knight:
		return KnightVectors
	case chesstypes.Bishop:
		return BishopVectors
	case chesstypes.Rook:
		return RookVectors
	case chesstypes.Queen, chesstypes.King:
		return QueenVectors
	default:
		return nil
	}
}

// AttackVectors returns a pawn's team-relative diagonal capture directions.
// Only meaningful for pawns.
func (p Piece) AttackVectors() []boardgeo.Vector2d {
	return pawnAttackVectors[p.Team]
}

// PlayerPieceSet groups one team's live pieces by kind for O(team)
// enumeration, kept in sync with the Board's placement map.
type PlayerPieceSet struct {
	Pawns   []*Piece
	Knights []*Piece
	Bishops []*Piece
	Rooks   []*Piece
	Queens  []*Piece
	King    *Piece
}

// Add inserts p into the group matching its type.
func (s *PlayerPieceSet) Add(p *Piece) {
	switch p.Type {
	case chesstypes.Pawn:
		s.Pawns = append(s.Pawns, p)
	case chesstypes.Knight:
		s.Knights = append(s.Knights, p)
	case chesstypes.Bishop:
		s.Bishops = append(s.Bishops, p)
	case chesstypes.Rook:
		s.Rooks = append(s.Rooks, p)
	case chesstypes.Queen:
		s.Queens = append(s.Queens, p)
	case chesstypes.King:
		s.King = p
	}
}

// Remove drops p from the group matching its type. Removing the king is
// not supported - invariant §3 guarantees exactly one king per team for the
// lifetime of a game.
func (s *PlayerPieceSet) Remove(p *Piece) {
	switch p.Type {
	case chesstypes.Pawn:
		s.Pawns = removePiece(s.Pawns, p)
	case chesstypes.Knight:
		s.Knights = removePiece(s.Knights, p)
	case chesstypes.Bishop:
		s.Bishops = removePiece(s.Bishops, p)
	case chesstypes.Rook:
		s.Rooks = removePiece(s.Rooks, p)
	case chesstypes.Queen:
		s.Queens = removePiece(s.Queens, p)
	}
}

func removePiece(pieces []*Piece, target *Piece) []*Piece {
	for i, p := range pieces {
		if p == target {
			return append(pieces[:i], pieces[i+1:]...)
		}
	}
	return pieces
}

// All returns every live piece in the set, king last.
func (s *PlayerPieceSet) All() []*Piece {
	all := make([]*Piece, 0, len(s.Pawns)+len(s.Knights)+len(s.Bishops)+len(s.Rooks)+len(s.Queens)+1)
	all = append(all, s.Pawns...)
	all = append(all, s.Knights...)
	all = append(all, s.Bishops...)
	all = append(all, s.Rooks...)
	all = append(all, s.Queens...)
	if s.King != nil {
		all = append(all, s.King)
	}
	return all
}

// Len returns the total piece count, including the king.
func (s *PlayerPieceSet) Len() int {
	n := len(s.Pawns) + len(s.Knights) + len(s.Bishops) + len(s.Rooks) + len(s.Queens)
	if s.King != nil {
		n++
	}
	return n
}
