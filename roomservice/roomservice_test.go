package roomservice

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chessroyale/core/chesstypes"
	"github.com/chessroyale/core/player"
	"github.com/chessroyale/core/protocol"
	"github.com/chessroyale/core/store"
)

func newTestPlayer(nick string, elo int) *player.Player {
	return player.New(nick, map[chesstypes.GameType]int{
		chesstypes.Blitz:   elo,
		chesstypes.Rapid:   elo,
		chesstypes.Classic: elo,
	})
}

func recv(t *testing.T, p *player.Player) map[string]interface{} {
	t.Helper()
	select {
	case data := <-p.Send:
		var out map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &out))
		return out
	case <-time.After(time.Second):
		t.Fatalf("no message sent to %s", p.Nick)
		return nil
	}
}

func TestJoinRankedQueueSendsConfirmation(t *testing.T) {
	s := New(store.NewMemoryStore())
	p := newTestPlayer("alice", 1200)

	err := s.JoinRankedQueue(protocol.JoinRankedQueueRequest{GameType: chesstypes.Rapid}, p)
	require.NoError(t, err)

	msg := recv(t, p)
	assert.EqualValues(t, protocol.JoinRankedQueue, msg["code"])
}

func TestJoinRankedQueueRejectsUnknownGameType(t *testing.T) {
	s := New(store.NewMemoryStore())
	p := newTestPlayer("alice", 1200)

	err := s.JoinRankedQueue(protocol.JoinRankedQueueRequest{GameType: "NOT_A_TYPE"}, p)
	assert.ErrorIs(t, err, ErrUnknownGameType)
}

func TestCreateAndJoinPrivateRoom(t *testing.T) {
	s := New(store.NewMemoryStore())
	host := newTestPlayer("host", 1000)
	guest := newTestPlayer("guest", 1000)

	s.CreatePrivateRoom(host)
	created := recv(t, host)
	key, _ := created["accessKey"].(string)
	require.Len(t, key, 5)

	s.JoinPrivateRoom(protocol.JoinPrivateRoomRequest{AccessKey: key}, guest)

	hostMsg := recv(t, host)
	guestMsg := recv(t, guest)
	assert.EqualValues(t, protocol.JoinSuccess, hostMsg["status"])
	assert.EqualValues(t, protocol.JoinSuccess, guestMsg["status"])
}

func TestJoinPrivateRoomUnknownKey(t *testing.T) {
	s := New(store.NewMemoryStore())
	p := newTestPlayer("alice", 1000)

	s.JoinPrivateRoom(protocol.JoinPrivateRoomRequest{AccessKey: "ZZZZZ"}, p)
	msg := recv(t, p)
	assert.EqualValues(t, protocol.JoinRoomNotExist, msg["status"])
}

func TestStartPrivateGameRequiresHost(t *testing.T) {
	s := New(store.NewMemoryStore())
	host := newTestPlayer("host", 1000)
	guest := newTestPlayer("guest", 1000)

	s.CreatePrivateRoom(host)
	created := recv(t, host)
	key := created["accessKey"].(string)
	s.JoinPrivateRoom(protocol.JoinPrivateRoomRequest{AccessKey: key}, guest)
	recv(t, host)
	recv(t, guest)

	err := s.StartPrivateGame(protocol.StartPrivateGameRequest{GameType: chesstypes.Blitz}, guest)
	assert.ErrorIs(t, err, ErrNotHost)

	err = s.StartPrivateGame(protocol.StartPrivateGameRequest{GameType: chesstypes.Blitz}, host)
	require.NoError(t, err)

	hostMsg := recv(t, host)
	guestMsg := recv(t, guest)
	assert.EqualValues(t, protocol.StartPrivateGame, hostMsg["code"])
	assert.EqualValues(t, protocol.StartPrivateGame, guestMsg["code"])
	assert.NotNil(t, hostMsg["teams"])
}

func TestLeavePrivateRoomNotifiesBothParticipants(t *testing.T) {
	s := New(store.NewMemoryStore())
	host := newTestPlayer("host", 1000)
	guest := newTestPlayer("guest", 1000)

	s.CreatePrivateRoom(host)
	created := recv(t, host)
	key := created["accessKey"].(string)
	s.JoinPrivateRoom(protocol.JoinPrivateRoomRequest{AccessKey: key}, guest)
	recv(t, host)
	recv(t, guest)

	s.LeavePrivateRoom(host)

	hostMsg := recv(t, host)
	guestMsg := recv(t, guest)
	assert.EqualValues(t, protocol.LeavePrivateRoom, hostMsg["code"])
	assert.EqualValues(t, protocol.LeavePrivateRoom, guestMsg["code"])

	_, stillHosting := s.privateRoomsByPlayer[host]
	assert.False(t, stillHosting)
}

func TestMatchPlayersPairsQueuedPlayers(t *testing.T) {
	s := New(store.NewMemoryStore())
	p1 := newTestPlayer("p1", 150)
	p2 := newTestPlayer("p2", 180)

	require.True(t, s.queue.Join(p1, chesstypes.Blitz))
	require.True(t, s.queue.Join(p2, chesstypes.Blitz))

	s.MatchPlayers()

	r1, ok1 := s.rankedRooms[p1]
	r2, ok2 := s.rankedRooms[p2]
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Same(t, r1, r2)
	assert.True(t, r1.Runner.Running())

	msg1 := recv(t, p1)
	assert.EqualValues(t, protocol.JoinedRankedRoom, msg1["code"])
}

func TestSurrenderEndsRankedGameAndPersistsElo(t *testing.T) {
	memStore := store.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, memStore.Insert(ctx, store.Record{Nick: "p1", Email: "p1@example.com", PasswordHash: "x", Elo: map[chesstypes.GameType]int{chesstypes.Blitz: 1000}}))
	require.NoError(t, memStore.Insert(ctx, store.Record{Nick: "p2", Email: "p2@example.com", PasswordHash: "x", Elo: map[chesstypes.GameType]int{chesstypes.Blitz: 1000}}))

	s := New(memStore)
	p1 := newTestPlayer("p1", 1000)
	p2 := newTestPlayer("p2", 1000)

	s.createRanked(p1, p2, chesstypes.Blitz)
	recv(t, p1)
	recv(t, p2)

	s.Surrender(ctx, p1)

	msg1 := recv(t, p1)
	msg2 := recv(t, p2)
	assert.EqualValues(t, protocol.GameSurrender, msg1["code"])
	assert.EqualValues(t, protocol.GameSurrender, msg2["code"])

	_, stillInRoom := s.rankedRooms[p1]
	assert.False(t, stillInRoom)
	assert.NotEqual(t, 1000, p1.Elo[chesstypes.Blitz])

	persisted, err := memStore.FindByEmail(ctx, "p1@example.com")
	require.NoError(t, err)
	assert.Equal(t, p1.Elo[chesstypes.Blitz], persisted.Elo[chesstypes.Blitz])
}

func TestDisconnectWhileQueuedCancelsSilently(t *testing.T) {
	s := New(store.NewMemoryStore())
	p := newTestPlayer("alice", 1000)
	require.True(t, s.queue.Join(p, chesstypes.Rapid))

	s.Disconnect(context.Background(), p)

	assert.False(t, s.queue.IsWaiting(p))
	select {
	case <-p.Send:
		t.Fatal("disconnect while queued must not send a message")
	default:
	}
}
