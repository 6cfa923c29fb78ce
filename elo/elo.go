// Package elo implements the Elo rating update used to adjust both
// players' ranked ratings after a game, following the reference
// service's ranking module.
package elo

import (
	"math"

	"github.com/chessroyale/core/config"
)

// Score is one player's outcome in a finished game, expressed the way
// the Elo formula wants it: a win counts as 1, a draw as 0.5, a loss as
// 0.
type Score float64

const (
	Loss Score = 0.0
	Draw Score = 0.5
	Win  Score = 1.0
)

// Reverse returns the other player's score for the same game.
func (s Score) Reverse() Score {
	switch s {
	case Loss:
		return Win
	case Win:
		return Loss
	default:
		return s
	}
}

// Change returns the signed Elo adjustment for the player rated elo1,
// having scored score against an opponent rated elo2. Callers add the
// result to player1's rating and subtract it from player2's to get both
// new ratings; K is config.Settings.Matchmaking.EloK.
func Change(elo1, elo2 int, score Score) int {
	expected := 1 / (1 + math.Pow(10, float64(elo2-elo1)/400))
	k := float64(config.Settings.Matchmaking.EloK)
	change := k * (float64(score) - expected)
	return int(math.Round(change))
}
