// Package broker owns the WebSocket connection pool: upgrading HTTP
// requests, reading and writing frames per connection, and dispatching
// authenticated requests into the room service. Structured the way the
// reference hub/client pool pattern splits a per-connection read pump
// and write pump around a buffered outbound channel.
package broker

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/chessroyale/core/logging"
	"github.com/chessroyale/core/player"
)

var log = logging.GetLog("broker")

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMessageBytes = 1 << 16
)

// Session is one live WebSocket connection. It starts Anonymous and
// transitions to Authenticated exactly once, the instant a SIGN_UP or
// SIGN_IN request resolves to a Player.
type Session struct {
	ID   uuid.UUID
	pool *Pool
	conn *websocket.Conn
	send chan []byte
	done chan struct{}

	mu        sync.Mutex
	connected time.Time
	player    *player.Player
}

func newSession(pool *Pool, conn *websocket.Conn) *Session {
	return &Session{
		ID:        uuid.New(),
		pool:      pool,
		conn:      conn,
		send:      make(chan []byte, 32),
		done:      make(chan struct{}),
		connected: time.Now(),
	}
}

// Authenticated reports whether the session has completed sign-up/sign-in.
func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.player != nil
}

// Player returns the bound player, or nil for an anonymous session.
func (s *Session) Player() *player.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.player
}

// authenticate binds p to the session and starts forwarding p's
// outbound messages onto the wire. Only the first call has effect.
func (s *Session) authenticate(p *player.Player) {
	s.mu.Lock()
	if s.player != nil {
		s.mu.Unlock()
		return
	}
	s.player = p
	s.mu.Unlock()
	go s.pump(p)
}

// idleSince returns the time the session was opened, from which the
// reaper measures how long a still-anonymous session has been idle.
func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// closeWithReason sends a close frame carrying reason and tears down the
// connection. readPump's own deferred cleanup handles unregistering the
// session once the subsequent read fails.
func (s *Session) closeWithReason(code int, reason string) {
	deadline := time.Now().Add(writeWait)
	msg := websocket.FormatCloseMessage(code, reason)
	s.conn.WriteControl(websocket.CloseMessage, msg, deadline)
	s.conn.Close()
}

func (s *Session) write(v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Errorf("marshal outgoing frame: %v", err)
		return
	}
	select {
	case s.send <- data:
	default:
		log.Warningf("session send buffer full, dropping frame")
	}
}

// readPump pumps incoming frames into the pool's dispatcher until the
// connection errors or closes. Must run in its own goroutine; on return
// it unregisters the session and closes the connection itself.
func (s *Session) readPump() {
	defer func() {
		s.pool.unregister(s)
		close(s.done)
		s.conn.Close()
	}()

	s.conn.SetReadLimit(maxMessageBytes)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Debugf("session %s read error: %v", s.ID, err)
			}
			return
		}
		s.pool.dispatch(s, data)
	}
}

// writePump drains the session's outbound queue onto the wire and keeps
// the connection alive with periodic pings. Must run in its own
// goroutine.
func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case data, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// pump drains a Player's Send channel onto the session's own outbound
// queue, bridging the room service's player-addressed messages to this
// connection's wire. Runs until the session's connection closes.
func (s *Session) pump(p *player.Player) {
	for {
		select {
		case data := <-p.Send:
			select {
			case s.send <- data:
			default:
				log.Warningf("session send buffer full for %s, dropping frame", p.Nick)
			}
		case <-s.done:
			return
		}
	}
}
