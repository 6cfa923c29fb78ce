// Package engine implements chess move generation and game-end
// classification on top of board and history, following the reference
// engine's ChessEngine class move for move.
package engine

import (
	"errors"

	"github.com/chessroyale/core/assert"
	"github.com/chessroyale/core/board"
	"github.com/chessroyale/core/boardgeo"
	"github.com/chessroyale/core/chesstypes"
	"github.com/chessroyale/core/history"
)

var (
	// ErrNoPieceAt is returned when available moves are requested for an
	// empty square.
	ErrNoPieceAt = errors.New("engine: no piece at that square")
	// ErrNotYourTeam is returned when available moves are requested for a
	// piece belonging to the team that is not currently on move.
	ErrNotYourTeam = errors.New("engine: piece does not belong to the team on move")
	// ErrIllegalMove is returned by ProcessMove when the move is not in
	// the mover's current available-move list.
	ErrIllegalMove = errors.New("engine: move is not legal in the current position")
)

// firstRank/secondRank are the back rank and pawn start rank per team.
var firstRank = map[chesstypes.Team]int{chesstypes.White: 0, chesstypes.Black: 7}
var secondRank = map[chesstypes.Team]int{chesstypes.White: 1, chesstypes.Black: 6}

// CheckStatus tracks which piece(s), if any, currently check the side to
// move. A double check (two simultaneous checking pieces) can only be
// escaped by moving the king, never by blocking or capturing.
type CheckStatus struct {
	CheckingPiece1 *board.Piece
	CheckingPiece2 *board.Piece
}

// Checked reports whether the side to move is in check.
func (c CheckStatus) Checked() bool { return c.CheckingPiece1 != nil }

// DoubleChecked reports whether the side to move is in check from two
// pieces at once.
func (c CheckStatus) DoubleChecked() bool { return c.CheckingPiece1 != nil && c.CheckingPiece2 != nil }

// Engine holds one game's full mutable state: the board, the move
// history it's derived from, whose turn it is, and the current check
// status. All move generation and legality checks go through it.
type Engine struct {
	Board           *board.Board
	History         *history.History
	CurrentlyMoving chesstypes.Team
	Check           CheckStatus
}

// NewStandard returns an Engine set up for a fresh game from the standard
// starting position, White to move.
func NewStandard() *Engine {
	e := &Engine{
		Board:           board.NewStandard(),
		History:         history.New(),
		CurrentlyMoving: chesstypes.White,
	}
	e.Check = e.computeCheckStatus()
	e.History.AddSnapshot(e.snapshot())
	return e
}

// AvailableMoves returns every legal move for the piece at pos. Returns
// ErrNoPieceAt / ErrNotYourTeam if pos does not hold a piece belonging to
// the side to move.
func (e *Engine) AvailableMoves(pos boardgeo.Vector2d) ([]chesstypes.Move, error) {
	p := e.Board.PieceAt(pos)
	if p == nil {
		return nil, ErrNoPieceAt
	}
	if p.Team != e.CurrentlyMoving {
		return nil, ErrNotYourTeam
	}
	return e.availableMovesForPiece(p), nil
}

func (e *Engine) availableMovesForPiece(p *board.Piece) []chesstypes.Move {
	if e.Check.DoubleChecked() && p.Type != chesstypes.King {
		return nil
	}
	switch p.Type {
	case chesstypes.Pawn:
		return e.availablePawnMoves(p)
	case chesstypes.Knight:
		return e.availableKnightMoves(p)
	case chesstypes.King:
		return e.availableKingMoves(p)
	default:
		return e.availableSliderMoves(p)
	}
}

// ValidateMove reports whether move is currently legal for the piece
// sitting on move.From.
func (e *Engine) ValidateMove(move chesstypes.Move) bool {
	moves, err := e.AvailableMoves(move.From)
	if err != nil {
		return false
	}
	for _, m := range moves {
		if m == move {
			return true
		}
	}
	return false
}

// ProcessMove applies move to the board, flips the side to move, and
// updates history and check status. Returns ErrIllegalMove if move is not
// currently legal.
func (e *Engine) ProcessMove(move chesstypes.Move) error {
	if !e.ValidateMove(move) {
		return ErrIllegalMove
	}

	mover := e.Board.PieceAt(move.From)
	assert.Assert(mover != nil && mover.Team == e.CurrentlyMoving, "ProcessMove: %v is not a %s piece", move.From, e.CurrentlyMoving)
	isPawnMove := mover.Type == chesstypes.Pawn
	isCapture := move.IsCapture()

	switch move.Kind {
	case chesstypes.Capture:
		e.Board.Remove(e.Board.PieceAt(move.To))
		e.Board.MovePiece(mover, move.To)
	case chesstypes.Castling:
		rook := e.Board.PieceAt(move.RookFrom)
		e.Board.MovePiece(rook, move.RookTo)
		e.Board.MovePiece(mover, move.To)
	case chesstypes.EnPassant:
		e.Board.Remove(e.Board.PieceAt(move.CapturedSquare))
		e.Board.MovePiece(mover, move.To)
	case chesstypes.Promotion:
		e.Board.Remove(mover)
		e.Board.Place(&board.Piece{Type: move.PromoteTo, Team: e.CurrentlyMoving, Position: move.To, HasMoved: true})
	case chesstypes.PromotionWithCapture:
		e.Board.Remove(e.Board.PieceAt(move.To))
		e.Board.Remove(mover)
		e.Board.Place(&board.Piece{Type: move.PromoteTo, Team: e.CurrentlyMoving, Position: move.To, HasMoved: true})
	default:
		e.Board.MovePiece(mover, move.To)
	}

	e.CurrentlyMoving = e.CurrentlyMoving.Opposite()
	e.Check = e.computeCheckStatus()
	e.History.Update(move, e.snapshot(), isPawnMove, isCapture)
	return nil
}

// IsCheckmate reports whether the side to move has no legal moves and is
// currently in check.
func (e *Engine) IsCheckmate() bool {
	if !e.Check.Checked() {
		return false
	}
	return !e.anyLegalMoveExists()
}

// IsStalemate reports whether the side to move has no legal moves but is
// not in check.
func (e *Engine) IsStalemate() bool {
	if e.Check.Checked() {
		return false
	}
	return !e.anyLegalMoveExists()
}

func (e *Engine) anyLegalMoveExists() bool {
	for _, p := range e.Board.Pieces[e.CurrentlyMoving].All() {
		if len(e.availableMovesForPiece(p)) > 0 {
			return true
		}
	}
	return false
}

// IsTie reports whether the game is an automatic draw: insufficient
// mating material for both sides, or the current position has now
// occurred five times.
func (e *Engine) IsTie() bool {
	if !e.HasSufficientMaterial(chesstypes.White) && !e.HasSufficientMaterial(chesstypes.Black) {
		return true
	}
	return e.History.RepeatedFiveTimes(e.snapshot())
}

// CanClaimDraw reports whether the side to move may claim a draw: the
// current position has occurred three times, or the fifty-move rule is
// satisfied.
func (e *Engine) CanClaimDraw() bool {
	return e.History.RepeatedThreeTimes(e.snapshot()) || e.History.FiftyMovesRuleSatisfied()
}

// HasSufficientMaterial reports whether team retains enough material to
// deliver checkmate: false only for a lone king, a king and single
// knight, or a king and single bishop opposed by a lone king-and-bishop
// of the same square color.
func (e *Engine) HasSufficientMaterial(team chesstypes.Team) bool {
	other := team.Opposite()
	pieces := e.Board.Pieces[team]
	opposite := e.Board.Pieces[other]

	switch pieces.Len() {
	case 1:
		return false
	case 2:
		if len(pieces.Knights) == 1 {
			return false
		}
		if len(pieces.Bishops) == 1 && opposite.Len() == 2 && len(opposite.Bishops) == 1 &&
			onSameColor(pieces.Bishops[0].Position, opposite.Bishops[0].Position) {
			return false
		}
	}
	return true
}

func onSameColor(a, b boardgeo.Vector2d) bool {
	return (a.X+a.Y)%2 == (b.X+b.Y)%2
}

func (e *Engine) snapshot() history.BoardSnapshot {
	pieces := make(map[boardgeo.Vector2d]interface {
		PieceType() chesstypes.PieceType
		Owner() chesstypes.Team
	})
	for _, team := range []chesstypes.Team{chesstypes.White, chesstypes.Black} {
		for _, p := range e.Board.Pieces[team].All() {
			pieces[p.Position] = history.NewPieceAt(p.Type, p.Team)
		}
	}
	return history.NewBoardSnapshot(pieces, e.CurrentlyMoving, e.castleRights(), e.enPassantAvailable())
}

func (e *Engine) castleRights() map[chesstypes.Team]history.CastleRight {
	rights := make(map[chesstypes.Team]history.CastleRight, 2)
	for _, team := range []chesstypes.Team{chesstypes.White, chesstypes.Black} {
		king := e.Board.PieceAt(boardgeo.Vector2d{X: 4, Y: firstRank[team]})
		if king == nil || king.Team != team || king.HasMoved {
			rights[team] = history.CastleNone
			continue
		}
		rookLong := e.Board.PieceAt(boardgeo.Vector2d{X: 0, Y: firstRank[team]})
		rookShort := e.Board.PieceAt(boardgeo.Vector2d{X: 7, Y: firstRank[team]})
		longRight := rookLong != nil && rookLong.Team == team && !rookLong.HasMoved
		shortRight := rookShort != nil && rookShort.Team == team && !rookShort.HasMoved
		switch {
		case longRight && shortRight:
			rights[team] = history.CastleBoth
		case shortRight:
			rights[team] = history.CastleShort
		case longRight:
			rights[team] = history.CastleLong
		default:
			rights[team] = history.CastleNone
		}
	}
	return rights
}

func (e *Engine) enPassantAvailable() bool {
	for _, pawn := range e.Board.Pieces[e.CurrentlyMoving].Pawns {
		for _, m := range e.availablePawnMoves(pawn) {
			if m.Kind == chesstypes.EnPassant {
				return true
			}
		}
	}
	return false
}

func (e *Engine) lastMovingPiece() *board.Piece {
	last, ok := e.History.LastMove()
	if !ok {
		return nil
	}
	return e.Board.PieceAt(last.To)
}
