// Package chesstypes holds the tagged-union-style constants the chess
// engine and wire protocol both depend on: team colors, piece kinds, move
// kinds, and the clocked game types a room can be started with.
package chesstypes

import "fmt"

// Team is the side a piece or player belongs to.
type Team uint8

const (
	White Team = iota
	Black
)

// Opposite returns the other team.
func (t Team) Opposite() Team {
	if t == White {
		return Black
	}
	return White
}

func (t Team) String() string {
	if t == White {
		return "WHITE"
	}
	return "BLACK"
}

// PieceType tags a piece by kind. Numeric values are the wire encoding
// from spec §6: 1=Pawn .. 6=King.
type PieceType uint8

const (
	PtNone PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

func (p PieceType) String() string {
	switch p {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// MoveType tags a Move by kind. Numeric values are the wire encoding from
// spec §6: 1=Move .. 6=PromotionWithCapture.
type MoveType uint8

const (
	Normal MoveType = iota + 1
	Capture
	Castling
	EnPassant
	Promotion
	PromotionWithCapture
)

func (m MoveType) String() string {
	switch m {
	case Normal:
		return "Normal"
	case Capture:
		return "Capture"
	case Castling:
		return "Castling"
	case EnPassant:
		return "EnPassant"
	case Promotion:
		return "Promotion"
	case PromotionWithCapture:
		return "PromotionWithCapture"
	default:
		return fmt.Sprintf("MoveType(%d)", uint8(m))
	}
}

// CastlingRights records which side(s) a team may still castle to.
type CastlingRights uint8

const (
	CastleNone CastlingRights = iota
	CastleShort
	CastleLong
	CastleBoth
)

// GameType names a clocked room variant; package game sets each type's
// per-side clock total.
type GameType string

const (
	Blitz   GameType = "BLITZ"
	Rapid   GameType = "RAPID"
	Classic GameType = "CLASSIC"
)

// AllGameTypes lists every GameType, in the fixed order matchmaking sweeps
// and Elo maps iterate in.
var AllGameTypes = []GameType{Blitz, Rapid, Classic}
