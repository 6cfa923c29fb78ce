package board

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chessroyale/core/boardgeo"
	"github.com/chessroyale/core/chesstypes"
)

func TestNewStandardPlacement(t *testing.T) {
	b := NewStandard()
	assert.Equal(t, chesstypes.Rook, b.PieceAt(boardgeo.Vector2d{X: 0, Y: 0}).Type)
	assert.Equal(t, chesstypes.King, b.PieceAt(boardgeo.Vector2d{X: 4, Y: 0}).Type)
	assert.Equal(t, chesstypes.Pawn, b.PieceAt(boardgeo.Vector2d{X: 3, Y: 6}).Type)
	assert.Nil(t, b.PieceAt(boardgeo.Vector2d{X: 3, Y: 3}))
	assert.Equal(t, 16, b.Pieces[chesstypes.White].Len())
	assert.Equal(t, 16, b.Pieces[chesstypes.Black].Len())
}

func TestMovePieceClearsOrigin(t *testing.T) {
	b := NewStandard()
	p := b.PieceAt(boardgeo.Vector2d{X: 4, Y: 1})
	b.MovePiece(p, boardgeo.Vector2d{X: 4, Y: 3})
	assert.Nil(t, b.PieceAt(boardgeo.Vector2d{X: 4, Y: 1}))
	assert.Same(t, p, b.PieceAt(boardgeo.Vector2d{X: 4, Y: 3}))
	assert.True(t, p.HasMoved)
}

func TestAnyPieceBetween(t *testing.T) {
	b := NewStandard()
	assert.True(t, b.AnyPieceBetween(boardgeo.Vector2d{X: 0, Y: 0}, boardgeo.Vector2d{X: 0, Y: 7}))
	b.Remove(b.PieceAt(boardgeo.Vector2d{X: 0, Y: 1}))
	assert.False(t, b.AnyPieceBetween(boardgeo.Vector2d{X: 0, Y: 0}, boardgeo.Vector2d{X: 0, Y: 6}))
}

func TestCloneIsIndependent(t *testing.T) {
	b := NewStandard()
	clone := b.Clone()
	p := clone.PieceAt(boardgeo.Vector2d{X: 4, Y: 1})
	clone.MovePiece(p, boardgeo.Vector2d{X: 4, Y: 3})
	assert.NotNil(t, b.PieceAt(boardgeo.Vector2d{X: 4, Y: 1}))
	assert.Nil(t, clone.PieceAt(boardgeo.Vector2d{X: 4, Y: 1}))
}
