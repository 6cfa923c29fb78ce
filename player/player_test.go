package player

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chessroyale/core/chesstypes"
)

func TestDefaultEloCoversEveryGameType(t *testing.T) {
	elo := DefaultElo()
	for _, gt := range chesstypes.AllGameTypes {
		assert.Equal(t, 1000, elo[gt])
	}
}

func TestEqualComparesByNickOnly(t *testing.T) {
	a := New("alice", DefaultElo())
	b := New("alice", map[chesstypes.GameType]int{chesstypes.Blitz: 1800})
	c := New("bob", DefaultElo())

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestEqualHandlesNil(t *testing.T) {
	a := New("alice", DefaultElo())
	var nilPlayer *Player

	assert.False(t, a.Equal(nilPlayer))
	assert.True(t, nilPlayer.Equal(nil))
}

func TestNewSeedsBufferedSendChannel(t *testing.T) {
	p := New("alice", DefaultElo())
	p.Send <- []byte("hello")
	assert.Equal(t, []byte("hello"), <-p.Send)
}
