package broker

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/chessroyale/core/auth"
	"github.com/chessroyale/core/roomservice"
	"github.com/chessroyale/core/store"
)

func newTestPool() *Pool {
	s := store.NewMemoryStore()
	return NewPool(auth.NewService(s, auth.BcryptHasher{}), roomservice.New(s))
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func TestSignUpThenJoinRankedQueue(t *testing.T) {
	pool := newTestPool()
	srv := httptest.NewServer(pool)
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"code":     1,
		"nick":     "alice",
		"email":    "alice@example.com",
		"password": "hunter22",
	}))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var authResp map[string]interface{}
	require.NoError(t, conn.ReadJSON(&authResp))
	require.EqualValues(t, 1, authResp["status"])

	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"code":     3,
		"gameType": "RAPID",
	}))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var queueResp map[string]interface{}
	require.NoError(t, conn.ReadJSON(&queueResp))
	require.EqualValues(t, 3, queueResp["code"])
}

func TestAnonymousSessionRejectedForNonAuthCode(t *testing.T) {
	pool := newTestPool()
	srv := httptest.NewServer(pool)
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(map[string]interface{}{"code": 3, "gameType": "RAPID"}))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
}
