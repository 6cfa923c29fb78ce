package board

import (
	"github.com/chessroyale/core/boardgeo"
	"github.com/chessroyale/core/chesstypes"
)

// Board is the 8x8 placement map plus the two teams' piece sets, kept in
// sync on every mutation. Nil at a square means empty.
type Board struct {
	squares [8][8]*Piece
	Pieces  map[chesstypes.Team]*PlayerPieceSet
}

// NewEmpty returns a Board with no pieces placed.
func NewEmpty() *Board {
	return &Board{
		Pieces: map[chesstypes.Team]*PlayerPieceSet{
			chesstypes.White: {},
			chesstypes.Black: {},
		},
	}
}

// NewStandard returns a Board set up for the standard chess starting
// position.
func NewStandard() *Board {
	b := NewEmpty()
	backRank := []chesstypes.PieceType{
		chesstypes.Rook, chesstypes.Knight, chesstypes.Bishop, chesstypes.Queen,
		chesstypes.King, chesstypes.Bishop, chesstypes.Knight, chesstypes.Rook,
	}
	for x := 0; x < 8; x++ {
		b.Place(&Piece{Type: backRank[x], Team: chesstypes.White, Position: boardgeo.Vector2d{X: x, Y: 0}})
		b.Place(&Piece{Type: chesstypes.Pawn, Team: chesstypes.White, Position: boardgeo.Vector2d{X: x, Y: 1}})
		b.Place(&Piece{Type: chesstypes.Pawn, Team: chesstypes.Black, Position: boardgeo.Vector2d{X: x, Y: 6}})
		b.Place(&Piece{Type: backRank[x], Team: chesstypes.Black, Position: boardgeo.Vector2d{X: x, Y: 7}})
	}
	return b
}

// Place puts p on the board at p.Position and adds it to its team's piece
// set. The square must be empty.
func (b *Board) Place(p *Piece) {
	b.squares[p.Position.X][p.Position.Y] = p
	b.Pieces[p.Team].Add(p)
}

// PieceAt returns the piece occupying pos, or nil if pos is empty or off
// the board.
func (b *Board) PieceAt(pos boardgeo.Vector2d) *Piece {
	if !boardgeo.OnBoard(pos) {
		return nil
	}
	return b.squares[pos.X][pos.Y]
}

// Remove takes p off the board and out of its team's piece set.
func (b *Board) Remove(p *Piece) {
	b.squares[p.Position.X][p.Position.Y] = nil
	b.Pieces[p.Team].Remove(p)
}

// MovePiece relocates p from its current square to to, clearing the old
// square. It does not touch whatever may have been on the destination
// square - callers must Remove a captured piece first.
func (b *Board) MovePiece(p *Piece, to boardgeo.Vector2d) {
	b.squares[p.Position.X][p.Position.Y] = nil
	p.Position = to
	p.HasMoved = true
	b.squares[to.X][to.Y] = p
}

// AnyPieceBetween reports whether any piece occupies a square strictly
// between from and to. Assumes from and to are colinear.
func (b *Board) AnyPieceBetween(from, to boardgeo.Vector2d) bool {
	step := boardgeo.UnitVectorTo(from, to)
	for cur := from.Add(step); !cur.Equal(to); cur = cur.Add(step) {
		if b.PieceAt(cur) != nil {
			return true
		}
	}
	return false
}

// FirstPieceAlong walks from from in direction dir (exclusive of from)
// until it falls off the board, returning the first piece it hits or nil.
// Used by the engine's pin test, which looks past a piece along a ray
// whose endpoint it does not know in advance.
func (b *Board) FirstPieceAlong(from, dir boardgeo.Vector2d) (*Piece, boardgeo.Vector2d) {
	cur := from.Add(dir)
	for boardgeo.OnBoard(cur) {
		if p := b.PieceAt(cur); p != nil {
			return p, cur
		}
		cur = cur.Add(dir)
	}
	return nil, boardgeo.Vector2d{}
}

// King returns team's king. Always non-nil once the board has been set up
// - invariant §3 guarantees exactly one king per team for the life of a
// game.
func (b *Board) King(team chesstypes.Team) *Piece {
	return b.Pieces[team].King
}

// Clone returns a deep copy: new Piece values, new piece sets, independent
// of b. Used before speculatively applying a move to test for self-check.
func (b *Board) Clone() *Board {
	out := NewEmpty()
	for _, team := range []chesstypes.Team{chesstypes.White, chesstypes.Black} {
		for _, p := range b.Pieces[team].All() {
			cp := *p
			out.Place(&cp)
		}
	}
	return out
}
