package protocol

import (
	"errors"

	"github.com/chessroyale/core/boardgeo"
	"github.com/chessroyale/core/chesstypes"
)

// ErrMalformedMove is returned when a MovePayload can't be decoded into a
// chesstypes.Move: coordinates out of the board, an unknown move/piece
// type, or a variant missing a field it requires.
var ErrMalformedMove = errors.New("protocol: malformed move payload")

func toVector(pos Position) (boardgeo.Vector2d, error) {
	v := boardgeo.Vector2d{X: pos[0], Y: pos[1]}
	if !boardgeo.OnBoard(v) {
		return v, ErrMalformedMove
	}
	return v, nil
}

func fromVector(v boardgeo.Vector2d) Position {
	return Position{v.X, v.Y}
}

// DecodeMove converts a wire MovePayload into a chesstypes.Move,
// validating coordinates and required fields per the move kind.
func DecodeMove(p MovePayload) (chesstypes.Move, error) {
	from, err := toVector(p.PositionFrom)
	if err != nil {
		return chesstypes.Move{}, err
	}
	to, err := toVector(p.PositionTo)
	if err != nil {
		return chesstypes.Move{}, err
	}

	switch p.Type {
	case chesstypes.Normal:
		return chesstypes.NewNormal(from, to), nil
	case chesstypes.Capture:
		return chesstypes.NewCapture(from, to), nil
	case chesstypes.Castling:
		if p.RookFrom == nil || p.RookTo == nil {
			return chesstypes.Move{}, ErrMalformedMove
		}
		rookFrom, err := toVector(*p.RookFrom)
		if err != nil {
			return chesstypes.Move{}, err
		}
		rookTo, err := toVector(*p.RookTo)
		if err != nil {
			return chesstypes.Move{}, err
		}
		return chesstypes.NewCastling(from, to, rookFrom, rookTo), nil
	case chesstypes.EnPassant:
		if p.CapturedPosition == nil {
			return chesstypes.Move{}, ErrMalformedMove
		}
		captured, err := toVector(*p.CapturedPosition)
		if err != nil {
			return chesstypes.Move{}, err
		}
		return chesstypes.NewEnPassant(from, to, captured), nil
	case chesstypes.Promotion:
		if p.PieceType == nil {
			return chesstypes.Move{}, ErrMalformedMove
		}
		return chesstypes.NewPromotion(from, to, *p.PieceType), nil
	case chesstypes.PromotionWithCapture:
		if p.PieceType == nil {
			return chesstypes.Move{}, ErrMalformedMove
		}
		return chesstypes.NewPromotionWithCapture(from, to, *p.PieceType), nil
	default:
		return chesstypes.Move{}, ErrMalformedMove
	}
}

// EncodeMove converts an applied chesstypes.Move into its wire shape.
func EncodeMove(m chesstypes.Move) MovePayload {
	payload := MovePayload{
		Type:         m.Kind,
		PositionFrom: fromVector(m.From),
		PositionTo:   fromVector(m.To),
	}
	switch m.Kind {
	case chesstypes.Castling:
		rookFrom := fromVector(m.RookFrom)
		rookTo := fromVector(m.RookTo)
		payload.RookFrom = &rookFrom
		payload.RookTo = &rookTo
	case chesstypes.EnPassant:
		captured := fromVector(m.CapturedSquare)
		payload.CapturedPosition = &captured
	case chesstypes.Promotion, chesstypes.PromotionWithCapture:
		pt := m.PromoteTo
		payload.PieceType = &pt
	}
	return payload
}
