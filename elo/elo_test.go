package elo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chessroyale/core/config"
)

func TestChangeEqualRatingsWin(t *testing.T) {
	config.Settings.Matchmaking.EloK = 30
	assert.Equal(t, 15, Change(1500, 1500, Win))
	assert.Equal(t, -15, Change(1500, 1500, Loss))
	assert.Equal(t, 0, Change(1500, 1500, Draw))
}

func TestChangeFavorsUnderdog(t *testing.T) {
	config.Settings.Matchmaking.EloK = 30
	weakerWinsAgainstStronger := Change(1400, 1600, Win)
	strongerWinsAgainstWeaker := Change(1600, 1400, Win)
	assert.Greater(t, weakerWinsAgainstStronger, strongerWinsAgainstWeaker)
}

func TestReverse(t *testing.T) {
	assert.Equal(t, Loss, Win.Reverse())
	assert.Equal(t, Win, Loss.Reverse())
	assert.Equal(t, Draw, Draw.Reverse())
}
