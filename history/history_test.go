package history

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chessroyale/core/boardgeo"
	"github.com/chessroyale/core/chesstypes"
)

func snapshotWithKingsAt(wx, wy int) BoardSnapshot {
	pieces := map[boardgeo.Vector2d]pieceAtLike{
		{X: wx, Y: wy}: NewPieceAt(chesstypes.King, chesstypes.White),
		{X: 4, Y: 7}:   NewPieceAt(chesstypes.King, chesstypes.Black),
	}
	rights := map[chesstypes.Team]CastleRight{chesstypes.White: CastleNone, chesstypes.Black: CastleNone}
	return NewBoardSnapshot(pieces, chesstypes.White, rights, false)
}

func TestSnapshotEqualityIgnoresMapOrder(t *testing.T) {
	a := map[boardgeo.Vector2d]pieceAtLike{
		{X: 0, Y: 0}: NewPieceAt(chesstypes.Rook, chesstypes.White),
		{X: 4, Y: 0}: NewPieceAt(chesstypes.King, chesstypes.White),
	}
	b := map[boardgeo.Vector2d]pieceAtLike{
		{X: 4, Y: 0}: NewPieceAt(chesstypes.King, chesstypes.White),
		{X: 0, Y: 0}: NewPieceAt(chesstypes.Rook, chesstypes.White),
	}
	rights := map[chesstypes.Team]CastleRight{chesstypes.White: CastleBoth, chesstypes.Black: CastleBoth}
	assert.Equal(t, NewBoardSnapshot(a, chesstypes.White, rights, false), NewBoardSnapshot(b, chesstypes.White, rights, false))
}

func TestRepeatedThreeTimes(t *testing.T) {
	h := New()
	snap := snapshotWithKingsAt(4, 0)
	h.AddSnapshot(snap)
	assert.False(t, h.RepeatedThreeTimes(snap))
	h.Update(chesstypes.NewNormal(boardgeo.Vector2d{X: 4, Y: 0}, boardgeo.Vector2d{X: 5, Y: 0}), snap, false, false)
	h.Update(chesstypes.NewNormal(boardgeo.Vector2d{X: 4, Y: 0}, boardgeo.Vector2d{X: 5, Y: 0}), snap, false, false)
	assert.True(t, h.RepeatedThreeTimes(snap))
}

func TestFiftyMovesRuleSatisfied(t *testing.T) {
	h := New()
	snap := snapshotWithKingsAt(4, 0)
	for i := 0; i < 99; i++ {
		h.Update(chesstypes.NewNormal(boardgeo.Vector2d{}, boardgeo.Vector2d{}), snap, false, false)
	}
	assert.False(t, h.FiftyMovesRuleSatisfied())
	h.Update(chesstypes.NewNormal(boardgeo.Vector2d{}, boardgeo.Vector2d{}), snap, false, false)
	assert.True(t, h.FiftyMovesRuleSatisfied())
}
