package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chessroyale/core/board"
	"github.com/chessroyale/core/boardgeo"
	"github.com/chessroyale/core/chesstypes"
	"github.com/chessroyale/core/history"
)

func sq(x, y int) boardgeo.Vector2d { return boardgeo.Vector2d{X: x, Y: y} }

func mustMove(t *testing.T, e *Engine, from, to boardgeo.Vector2d) {
	t.Helper()
	moves, err := e.AvailableMoves(from)
	require.NoError(t, err)
	for _, m := range moves {
		if m.To.Equal(to) && (m.Kind == chesstypes.Normal || m.Kind == chesstypes.Capture) {
			require.NoError(t, e.ProcessMove(m))
			return
		}
	}
	t.Fatalf("no legal move %v -> %v", from, to)
}

func TestFoolsMateCheckmate(t *testing.T) {
	e := NewStandard()
	mustMove(t, e, sq(5, 1), sq(5, 2))
	mustMove(t, e, sq(4, 6), sq(4, 4))
	mustMove(t, e, sq(6, 1), sq(6, 3))

	moves, err := e.AvailableMoves(sq(3, 7))
	require.NoError(t, err)
	var queenMoveToH4 chesstypes.Move
	found := false
	for _, m := range moves {
		if m.To.Equal(sq(7, 3)) {
			queenMoveToH4 = m
			found = true
		}
	}
	require.True(t, found, "queen should reach h4")
	require.NoError(t, e.ProcessMove(queenMoveToH4))

	assert.True(t, e.Check.Checked())
	assert.True(t, e.IsCheckmate())
}

func TestPawnDoublePushAndEnPassant(t *testing.T) {
	e := NewStandard()
	mustMove(t, e, sq(4, 1), sq(4, 3))
	mustMove(t, e, sq(0, 6), sq(0, 5))
	mustMove(t, e, sq(4, 3), sq(4, 4))
	mustMove(t, e, sq(3, 6), sq(3, 4))

	moves, err := e.AvailableMoves(sq(4, 4))
	require.NoError(t, err)
	var foundEP bool
	for _, m := range moves {
		if m.Kind == chesstypes.EnPassant {
			foundEP = true
			assert.True(t, m.CapturedSquare.Equal(sq(3, 4)))
		}
	}
	assert.True(t, foundEP, "en passant should be available")
}

func TestCastlingKingside(t *testing.T) {
	e := NewStandard()
	mustMove(t, e, sq(6, 0), sq(5, 2))
	mustMove(t, e, sq(1, 6), sq(1, 5))
	mustMove(t, e, sq(4, 1), sq(4, 2))
	mustMove(t, e, sq(2, 6), sq(2, 5))
	mustMove(t, e, sq(5, 0), sq(3, 2))
	mustMove(t, e, sq(0, 6), sq(0, 5))

	moves, err := e.AvailableMoves(sq(4, 0))
	require.NoError(t, err)
	var castled bool
	for _, m := range moves {
		if m.Kind == chesstypes.Castling {
			castled = true
			require.NoError(t, e.ProcessMove(m))
		}
	}
	require.True(t, castled, "kingside castling should be available")
	assert.Equal(t, chesstypes.King, e.Board.PieceAt(sq(6, 0)).Type)
	assert.Equal(t, chesstypes.Rook, e.Board.PieceAt(sq(5, 0)).Type)
}

func TestHasSufficientMaterial(t *testing.T) {
	e := NewStandard()
	assert.True(t, e.HasSufficientMaterial(chesstypes.White))
}

// TestPinnedBishopCannotLeaveTheFile sets up White king e1, White bishop
// e2, Black rook e8: the bishop is pinned along the e-file and every
// diagonal move it could otherwise make would expose the king to the
// rook, so it must have no legal moves at all.
func TestPinnedBishopCannotLeaveTheFile(t *testing.T) {
	b := board.NewEmpty()
	b.Place(&board.Piece{Type: chesstypes.King, Team: chesstypes.White, Position: sq(4, 0)})
	b.Place(&board.Piece{Type: chesstypes.Bishop, Team: chesstypes.White, Position: sq(4, 1)})
	b.Place(&board.Piece{Type: chesstypes.Rook, Team: chesstypes.Black, Position: sq(4, 7)})
	b.Place(&board.Piece{Type: chesstypes.King, Team: chesstypes.Black, Position: sq(0, 7)})

	e := &Engine{Board: b, History: history.New(), CurrentlyMoving: chesstypes.White}
	e.Check = e.computeCheckStatus()

	moves, err := e.AvailableMoves(sq(4, 1))
	require.NoError(t, err)
	assert.Empty(t, moves, "pinned bishop should have no legal moves off the e-file")
}

// TestPinnedRookMayStillSlideAlongThePinLine checks the pin restricts
// the pinned piece to the pin line itself, not to zero moves: a rook
// pinned along a file may still move up and down that file.
func TestPinnedRookMayStillSlideAlongThePinLine(t *testing.T) {
	b := board.NewEmpty()
	b.Place(&board.Piece{Type: chesstypes.King, Team: chesstypes.White, Position: sq(4, 0)})
	b.Place(&board.Piece{Type: chesstypes.Rook, Team: chesstypes.White, Position: sq(4, 1)})
	b.Place(&board.Piece{Type: chesstypes.Rook, Team: chesstypes.Black, Position: sq(4, 7)})
	b.Place(&board.Piece{Type: chesstypes.King, Team: chesstypes.Black, Position: sq(0, 7)})

	e := &Engine{Board: b, History: history.New(), CurrentlyMoving: chesstypes.White}
	e.Check = e.computeCheckStatus()

	moves, err := e.AvailableMoves(sq(4, 1))
	require.NoError(t, err)
	require.NotEmpty(t, moves, "pinned rook should still be able to slide along the pin line")
	for _, m := range moves {
		assert.True(t, boardgeo.SameFile(sq(4, 0), m.To), "pinned rook move left the pin line: %v", m.To)
	}
}
