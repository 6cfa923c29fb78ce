package chesstypes

import "github.com/chessroyale/core/boardgeo"

// Move is a tagged union over the six move kinds spec §3 describes.
// RookFrom/RookTo are only meaningful for Castling; CapturedSquare only for
// EnPassant; PromoteTo only for Promotion/PromotionWithCapture. Equality
// and hashing (via the struct's comparability) include every field, so two
// Moves of different kinds are never equal even with matching From/To.
type Move struct {
	Kind           MoveType
	From, To       boardgeo.Vector2d
	RookFrom       boardgeo.Vector2d
	RookTo         boardgeo.Vector2d
	CapturedSquare boardgeo.Vector2d
	PromoteTo      PieceType
}

// NewNormal builds a Normal move.
func NewNormal(from, to boardgeo.Vector2d) Move {
	return Move{Kind: Normal, From: from, To: to}
}

// NewCapture builds a Capture move.
func NewCapture(from, to boardgeo.Vector2d) Move {
	return Move{Kind: Capture, From: from, To: to}
}

// NewCastling builds a Castling move.
func NewCastling(kingFrom, kingTo, rookFrom, rookTo boardgeo.Vector2d) Move {
	return Move{Kind: Castling, From: kingFrom, To: kingTo, RookFrom: rookFrom, RookTo: rookTo}
}

// NewEnPassant builds an EnPassant move.
func NewEnPassant(from, to, captured boardgeo.Vector2d) Move {
	return Move{Kind: EnPassant, From: from, To: to, CapturedSquare: captured}
}

// NewPromotion builds a Promotion move.
func NewPromotion(from, to boardgeo.Vector2d, pt PieceType) Move {
	return Move{Kind: Promotion, From: from, To: to, PromoteTo: pt}
}

// NewPromotionWithCapture builds a PromotionWithCapture move.
func NewPromotionWithCapture(from, to boardgeo.Vector2d, pt PieceType) Move {
	return Move{Kind: PromotionWithCapture, From: from, To: to, PromoteTo: pt}
}

// IsCapture reports whether applying m removes an opponent piece (directly
// or via en passant), which matters for the 50-move rule and history.
func (m Move) IsCapture() bool {
	switch m.Kind {
	case Capture, EnPassant, PromotionWithCapture:
		return true
	default:
		return false
	}
}
