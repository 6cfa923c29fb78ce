package engine

import (
	"github.com/chessroyale/core/board"
	"github.com/chessroyale/core/boardgeo"
	"github.com/chessroyale/core/chesstypes"
)

func (e *Engine) availablePawnMoves(pawn *board.Piece) []chesstypes.Move {
	var moves []chesstypes.Move
	opposite := e.CurrentlyMoving.Opposite()
	pushVec := pawn.MoveVectors()[0]
	smallMove := pawn.Position.Add(pushVec)

	if boardgeo.OnBoard(smallMove) && !e.willMoveRevealKing(pawn.Position, smallMove) && e.Board.PieceAt(smallMove) == nil {
		if !e.Check.Checked() || e.willMoveCoverKing(smallMove) {
			if pawn.Position.Y == secondRank[opposite] {
				moves = append(moves, chesstypes.NewPromotion(pawn.Position, smallMove, chesstypes.Queen))
				moves = append(moves, chesstypes.NewPromotion(pawn.Position, smallMove, chesstypes.Rook))
				moves = append(moves, chesstypes.NewPromotion(pawn.Position, smallMove, chesstypes.Bishop))
				moves = append(moves, chesstypes.NewPromotion(pawn.Position, smallMove, chesstypes.Knight))
			} else {
				moves = append(moves, chesstypes.NewNormal(pawn.Position, smallMove))
			}
		}

		bigMove := smallMove.Add(pushVec)
		if !pawn.HasMoved && e.Board.PieceAt(bigMove) == nil &&
			(!e.Check.Checked() || e.willMoveCoverKing(bigMove)) {
			moves = append(moves, chesstypes.NewNormal(pawn.Position, bigMove))
		}
	}

	for _, attackVec := range pawn.AttackVectors() {
		attackPos := pawn.Position.Add(attackVec)
		if !boardgeo.OnBoard(attackPos) || e.willMoveRevealKing(pawn.Position, attackPos) {
			continue
		}
		if e.Check.Checked() && !e.willCaptureCheckingPiece(attackPos) {
			continue
		}

		target := e.Board.PieceAt(attackPos)
		if target != nil && target.Team != e.CurrentlyMoving {
			if pawn.Position.Y == secondRank[opposite] {
				moves = append(moves, chesstypes.NewPromotionWithCapture(pawn.Position, attackPos, chesstypes.Queen))
				moves = append(moves, chesstypes.NewPromotionWithCapture(pawn.Position, attackPos, chesstypes.Rook))
				moves = append(moves, chesstypes.NewPromotionWithCapture(pawn.Position, attackPos, chesstypes.Bishop))
				moves = append(moves, chesstypes.NewPromotionWithCapture(pawn.Position, attackPos, chesstypes.Knight))
			} else {
				moves = append(moves, chesstypes.NewCapture(pawn.Position, attackPos))
			}
			continue
		}

		last, ok := e.History.LastMove()
		lastMover := e.lastMovingPiece()
		if ok && target == nil && lastMover != nil && lastMover.Type == chesstypes.Pawn &&
			abs(last.From.Y-last.To.Y) == 2 && last.To.X == attackPos.X {
			moves = append(moves, chesstypes.NewEnPassant(pawn.Position, attackPos, last.To))
		}
	}

	return moves
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func (e *Engine) availableKnightMoves(knight *board.Piece) []chesstypes.Move {
	var moves []chesstypes.Move
	for _, vec := range knight.MoveVectors() {
		newPos := knight.Position.Add(vec)
		if !boardgeo.OnBoard(newPos) || e.willMoveRevealKing(knight.Position, newPos) {
			continue
		}
		if e.Check.Checked() && !e.willMoveCoverKing(newPos) && !e.willCaptureCheckingPiece(newPos) {
			continue
		}
		target := e.Board.PieceAt(newPos)
		if target != nil && target.Team == e.CurrentlyMoving {
			continue
		}
		if target != nil {
			moves = append(moves, chesstypes.NewCapture(knight.Position, newPos))
		} else {
			moves = append(moves, chesstypes.NewNormal(knight.Position, newPos))
		}
	}
	return moves
}

func (e *Engine) availableKingMoves(king *board.Piece) []chesstypes.Move {
	var moves []chesstypes.Move
	attacked := e.attackedFields()

	for _, vec := range king.MoveVectors() {
		newPos := king.Position.Add(vec)
		if !boardgeo.OnBoard(newPos) {
			continue
		}
		target := e.Board.PieceAt(newPos)
		if target != nil && target.Team == e.CurrentlyMoving {
			continue
		}
		if attacked[newPos] {
			continue
		}
		if target != nil {
			moves = append(moves, chesstypes.NewCapture(king.Position, newPos))
		} else {
			moves = append(moves, chesstypes.NewNormal(king.Position, newPos))
		}
	}

	if king.HasMoved || e.Check.Checked() {
		return moves
	}

	for _, rook := range e.Board.Pieces[e.CurrentlyMoving].Rooks {
		if rook.HasMoved || e.Board.AnyPieceBetween(king.Position, rook.Position) {
			continue
		}
		unit := boardgeo.UnitVectorTo(king.Position, rook.Position)
		newRookPos := king.Position.Add(unit)
		newKingPos := king.Position.Add(unit.Mul(2))
		if attacked[newRookPos] || attacked[newKingPos] {
			continue
		}
		moves = append(moves, chesstypes.NewCastling(king.Position, newKingPos, rook.Position, newRookPos))
	}

	return moves
}

func (e *Engine) availableSliderMoves(p *board.Piece) []chesstypes.Move {
	var moves []chesstypes.Move
	for _, vec := range p.MoveVectors() {
		newPos := p.Position.Add(vec)
		if !boardgeo.OnBoard(newPos) || e.willMoveRevealKing(p.Position, newPos) {
			continue
		}

		for boardgeo.OnBoard(newPos) {
			if e.Check.Checked() && !e.willMoveCoverKing(newPos) && !e.willCaptureCheckingPiece(newPos) {
				newPos = newPos.Add(vec)
				continue
			}

			target := e.Board.PieceAt(newPos)
			if target != nil {
				if target.Team != e.CurrentlyMoving {
					moves = append(moves, chesstypes.NewCapture(p.Position, newPos))
				}
				break
			}

			moves = append(moves, chesstypes.NewNormal(p.Position, newPos))
			newPos = newPos.Add(vec)
		}
	}
	return moves
}

func (e *Engine) currentKingPosition() boardgeo.Vector2d {
	return e.Board.Pieces[e.CurrentlyMoving].King.Position
}

func (e *Engine) willMoveCoverKing(to boardgeo.Vector2d) bool {
	checker := e.Check.CheckingPiece1
	return checker.Type != chesstypes.Knight &&
		boardgeo.SameLine3(e.currentKingPosition(), to, checker.Position) &&
		boardgeo.IsBetween(to, e.currentKingPosition(), checker.Position)
}

func (e *Engine) willCaptureCheckingPiece(attackPos boardgeo.Vector2d) bool {
	return e.Check.CheckingPiece1.Position.Equal(attackPos)
}

// willMoveRevealKing reports whether moving the piece at from to to would
// expose the side-to-move's king to a pin: from must lie on a line
// (file/rank/diagonal) with the king, the destination must leave that
// line, and the next piece beyond from on that line from the king's
// perspective must be an enemy slider that attacks along it.
func (e *Engine) willMoveRevealKing(from, to boardgeo.Vector2d) bool {
	kingPos := e.currentKingPosition()

	onLineBefore := boardgeo.SameLine2(kingPos, from)
	onLineAfter := boardgeo.SameLine3(kingPos, from, to)
	if !onLineBefore || onLineAfter {
		return false
	}

	revealed, _ := e.Board.FirstPieceAlong(from, boardgeo.UnitVectorTo(kingPos, from))
	if revealed == nil || revealed.Team == e.CurrentlyMoving {
		return false
	}

	switch revealed.Type {
	case chesstypes.Queen:
		return true
	case chesstypes.Rook:
		return boardgeo.SameRow(kingPos, from)
	case chesstypes.Bishop:
		return boardgeo.SameDiagonal(kingPos, from)
	default:
		return false
	}
}

// attackedFields returns every square the opponent currently attacks,
// used to keep the king off squares it would be captured on and to gate
// castling through or into check.
func (e *Engine) attackedFields() map[boardgeo.Vector2d]bool {
	attacked := make(map[boardgeo.Vector2d]bool)
	opponent := e.Board.Pieces[e.CurrentlyMoving.Opposite()]

	for _, p := range opponent.Pawns {
		for _, vec := range p.AttackVectors() {
			newPos := p.Position.Add(vec)
			if boardgeo.OnBoard(newPos) {
				attacked[newPos] = true
			}
		}
	}

	steppers := append(append([]*board.Piece{}, opponent.Knights...), opponent.King)
	for _, p := range steppers {
		for _, vec := range p.MoveVectors() {
			newPos := p.Position.Add(vec)
			if boardgeo.OnBoard(newPos) {
				attacked[newPos] = true
			}
		}
	}

	sliders := append(append(append([]*board.Piece{}, opponent.Bishops...), opponent.Rooks...), opponent.Queens...)
	for _, p := range sliders {
		for _, vec := range p.MoveVectors() {
			newPos := p.Position.Add(vec)
			for boardgeo.OnBoard(newPos) {
				attacked[newPos] = true
				blocker := e.Board.PieceAt(newPos)
				if blocker != nil && !(blocker.Team == e.CurrentlyMoving && blocker.Type == chesstypes.King) {
					break
				}
				newPos = newPos.Add(vec)
			}
		}
	}

	return attacked
}

// checkingPieces returns every opponent piece currently giving check to
// the side to move's king.
func (e *Engine) checkingPieces() []*board.Piece {
	var checking []*board.Piece
	kingPos := e.currentKingPosition()
	opposite := e.CurrentlyMoving.Opposite()

	for _, vec := range board.KnightVectors {
		otherPos := kingPos.Add(vec)
		if !boardgeo.OnBoard(otherPos) {
			continue
		}
		if p := e.Board.PieceAt(otherPos); p != nil && p.Type == chesstypes.Knight && p.Team == opposite {
			checking = append(checking, p)
		}
	}

	for _, vec := range pawnAttackVectorsFor(opposite) {
		otherPos := kingPos.Sub(vec)
		if !boardgeo.OnBoard(otherPos) {
			continue
		}
		if p := e.Board.PieceAt(otherPos); p != nil && p.Type == chesstypes.Pawn && p.Team == opposite {
			checking = append(checking, p)
		}
	}

	for _, vec := range board.BishopVectors {
		otherPos := kingPos.Add(vec)
		for boardgeo.OnBoard(otherPos) {
			if p := e.Board.PieceAt(otherPos); p != nil {
				if (p.Type == chesstypes.Bishop || p.Type == chesstypes.Queen) && p.Team == opposite {
					checking = append(checking, p)
				}
				break
			}
			otherPos = otherPos.Add(vec)
		}
	}

	for _, vec := range board.RookVectors {
		otherPos := kingPos.Add(vec)
		for boardgeo.OnBoard(otherPos) {
			if p := e.Board.PieceAt(otherPos); p != nil {
				if (p.Type == chesstypes.Rook || p.Type == chesstypes.Queen) && p.Team == opposite {
					checking = append(checking, p)
				}
				break
			}
			otherPos = otherPos.Add(vec)
		}
	}

	return checking
}

func pawnAttackVectorsFor(team chesstypes.Team) []boardgeo.Vector2d {
	dummy := &board.Piece{Team: team, Type: chesstypes.Pawn}
	return dummy.AttackVectors()
}

func (e *Engine) computeCheckStatus() CheckStatus {
	checking := e.checkingPieces()
	switch len(checking) {
	case 1:
		return CheckStatus{CheckingPiece1: checking[0]}
	case 2:
		return CheckStatus{CheckingPiece1: checking[0], CheckingPiece2: checking[1]}
	default:
		return CheckStatus{}
	}
}
