package room

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chessroyale/core/player"
)

func newTestPlayer(nick string) *player.Player {
	return player.New(nick, player.DefaultElo())
}

func TestNewRankedPlayers(t *testing.T) {
	p1, p2 := newTestPlayer("alice"), newTestPlayer("bob")
	r := NewRanked(p1, p2)

	assert.Equal(t, Ranked, r.Kind())
	assert.ElementsMatch(t, []*player.Player{p1, p2}, r.Players())
}

func TestNewPrivateHostOnlyUntilGuestJoins(t *testing.T) {
	host := newTestPlayer("alice")
	r := NewPrivate(host, "AAAAA")

	assert.Equal(t, Private, r.Kind())
	assert.False(t, r.Full())
	assert.Equal(t, []*player.Player{host}, r.Players())

	guest := newTestPlayer("bob")
	r.SetGuest(guest)

	assert.True(t, r.Full())
	assert.Equal(t, guest, r.Guest())
	assert.ElementsMatch(t, []*player.Player{host, guest}, r.Players())

	r.ClearGuest()
	assert.False(t, r.Full())
	assert.Nil(t, r.Guest())
}

func TestKickTracksBarredPlayers(t *testing.T) {
	r := NewPrivate(newTestPlayer("alice"), "BBBBB")
	guest := newTestPlayer("bob")

	assert.False(t, r.IsKicked(guest))
	r.Kick(guest)
	assert.True(t, r.IsKicked(guest))
}

func TestBroadcastReachesEveryParticipant(t *testing.T) {
	p1, p2 := newTestPlayer("alice"), newTestPlayer("bob")
	r := NewRanked(p1, p2)

	r.Broadcast([]byte("hi"))

	for _, p := range []*player.Player{p1, p2} {
		select {
		case msg := <-p.Send:
			require.Equal(t, []byte("hi"), msg)
		case <-time.After(time.Second):
			t.Fatalf("did not receive broadcast")
		}
	}
}

func TestBroadcastDoesNotBlockOnFullChannel(t *testing.T) {
	p1 := newTestPlayer("alice")
	for i := 0; i < cap(p1.Send); i++ {
		p1.Send <- []byte("filler")
	}
	r := NewRanked(p1, newTestPlayer("bob"))

	done := make(chan struct{})
	go func() {
		r.Broadcast([]byte("overflow"))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("broadcast blocked on a full participant channel")
	}
}

func TestSendToDeliversOnlyToTarget(t *testing.T) {
	p1, p2 := newTestPlayer("alice"), newTestPlayer("bob")
	SendTo(p1, []byte("status"))

	select {
	case msg := <-p1.Send:
		assert.Equal(t, []byte("status"), msg)
	case <-time.After(time.Second):
		t.Fatalf("target did not receive message")
	}

	select {
	case <-p2.Send:
		t.Fatalf("non-target received message")
	default:
	}
}
