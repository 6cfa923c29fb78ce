package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/chessroyale/core/auth"
	"github.com/chessroyale/core/config"
	"github.com/chessroyale/core/protocol"
	"github.com/chessroyale/core/roomservice"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Pool is the connection registry: it upgrades incoming HTTP requests to
// WebSocket sessions, reaps anonymous connections that never sign in,
// and dispatches every authenticated frame into the room service.
type Pool struct {
	auth  *auth.Service
	rooms *roomservice.Service

	mu       sync.Mutex
	sessions map[*Session]bool
}

// NewPool returns a connection pool backed by authSvc for sign-up/sign-in
// and roomSvc for everything after.
func NewPool(authSvc *auth.Service, roomSvc *roomservice.Service) *Pool {
	return &Pool{
		auth:     authSvc,
		rooms:    roomSvc,
		sessions: make(map[*Session]bool),
	}
}

// ServeHTTP upgrades the request to a WebSocket connection and starts
// its read/write pumps. Implements http.Handler so it can be mounted
// directly on a ServeMux.
func (p *Pool) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Errorf("websocket upgrade: %v", err)
		return
	}

	s := newSession(p, conn)
	p.mu.Lock()
	p.sessions[s] = true
	p.mu.Unlock()

	go s.writePump()
	go s.readPump()
}

func (p *Pool) unregister(s *Session) {
	p.mu.Lock()
	_, ok := p.sessions[s]
	delete(p.sessions, s)
	p.mu.Unlock()
	if !ok {
		return
	}

	if player := s.Player(); player != nil {
		p.rooms.Disconnect(context.Background(), player)
	}
}

// RunReaper closes anonymous sessions that have outlived the sign-in
// grace period, sweeping every config.Settings.Server.ReaperEvery
// seconds until ctx is canceled.
func (p *Pool) RunReaper(ctx context.Context) {
	interval := time.Duration(config.Settings.Server.ReaperEvery) * time.Second
	grace := time.Duration(config.Settings.Server.LoginGrace) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.reapOnce(grace)
		}
	}
}

func (p *Pool) reapOnce(grace time.Duration) {
	now := time.Now()

	p.mu.Lock()
	var stale []*Session
	for s := range p.sessions {
		if !s.Authenticated() && now.Sub(s.idleSince()) > grace {
			stale = append(stale, s)
		}
	}
	p.mu.Unlock()

	for _, s := range stale {
		log.Debugf("reaping anonymous connection idle past grace period")
		s.conn.Close()
	}
}

// dispatch parses one incoming frame's envelope and routes it by
// authentication state: anonymous sessions may only sign up or sign in,
// authenticated sessions consult the full code table.
func (p *Pool) dispatch(s *Session, data []byte) {
	var env protocol.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		p.invalidRequest(s, err.Error())
		return
	}

	if !s.Authenticated() {
		p.dispatchAnonymous(s, env.Code, data)
		return
	}
	p.dispatchAuthenticated(s, env.Code, data)
}

// authResult either binds the session to res.Player and sends the usual
// success frame, or closes the connection with a JSON {code, status}
// close payload, per the auth-failure close semantics.
func (p *Pool) authResult(s *Session, code protocol.Code, res auth.Result, err error) {
	if err != nil {
		p.invalidRequest(s, err.Error())
		return
	}
	if res.Status != protocol.AuthSuccess {
		payload, _ := json.Marshal(protocol.AuthResponse{Code: code, Status: res.Status})
		s.closeWithReason(websocket.CloseUnsupportedData, string(payload))
		return
	}
	s.authenticate(res.Player)
	s.write(protocol.AuthResponse{Code: code, Status: res.Status})
}

func (p *Pool) dispatchAnonymous(s *Session, code protocol.Code, data []byte) {
	ctx := context.Background()

	switch code {
	case protocol.SignUp:
		var req protocol.SignUpRequest
		if err := json.Unmarshal(data, &req); err != nil {
			p.invalidRequest(s, err.Error())
			return
		}
		res, err := p.auth.SignUp(ctx, req.Nick, req.Email, req.Password)
		p.authResult(s, protocol.SignUp, res, err)

	case protocol.SignIn:
		var req protocol.SignInRequest
		if err := json.Unmarshal(data, &req); err != nil {
			p.invalidRequest(s, err.Error())
			return
		}
		res, err := p.auth.SignIn(ctx, req.Email, req.Password)
		p.authResult(s, protocol.SignIn, res, err)

	default:
		log.Debugf("anonymous session sent non-auth code %d, closing", code)
		s.closeWithReason(websocket.CloseUnsupportedData, "invalid request")
	}
}

// invalidRequest closes the connection with the close reason spec'd for
// malformed frames: a short, non-JSON reason string rather than the auth
// failure path's structured payload.
func (p *Pool) invalidRequest(s *Session, why string) {
	log.Debugf("invalid request: %s", why)
	s.closeWithReason(websocket.CloseUnsupportedData, "invalid request")
}

func (p *Pool) dispatchAuthenticated(s *Session, code protocol.Code, data []byte) {
	ctx := context.Background()
	sender := s.Player()

	switch code {
	case protocol.JoinRankedQueue:
		var req protocol.JoinRankedQueueRequest
		if err := json.Unmarshal(data, &req); err != nil {
			p.invalidRequest(s, err.Error())
			return
		}
		if err := p.rooms.JoinRankedQueue(req, sender); err != nil {
			p.invalidRequest(s, err.Error())
		}
	case protocol.CancelJoiningRanked:
		p.rooms.CancelJoiningRanked(sender)
	case protocol.CreatePrivateRoom:
		p.rooms.CreatePrivateRoom(sender)
	case protocol.JoinPrivateRoom:
		var req protocol.JoinPrivateRoomRequest
		if err := json.Unmarshal(data, &req); err != nil {
			p.invalidRequest(s, err.Error())
			return
		}
		p.rooms.JoinPrivateRoom(req, sender)
	case protocol.LeavePrivateRoom:
		p.rooms.LeavePrivateRoom(sender)
	case protocol.KickFromPrivateRoom:
		p.rooms.KickFromPrivateRoom(sender)
	case protocol.StartPrivateGame:
		var req protocol.StartPrivateGameRequest
		if err := json.Unmarshal(data, &req); err != nil {
			p.invalidRequest(s, err.Error())
			return
		}
		if err := p.rooms.StartPrivateGame(req, sender); err != nil && err != roomservice.ErrNotHost {
			p.invalidRequest(s, err.Error())
		}
	case protocol.GameSurrender:
		p.rooms.Surrender(ctx, sender)
	case protocol.GameOfferDraw:
		p.rooms.OfferDraw(sender)
	case protocol.GameRespondToDrawOffer:
		var req protocol.RespondToDrawOfferRequest
		if err := json.Unmarshal(data, &req); err != nil {
			p.invalidRequest(s, err.Error())
			return
		}
		p.rooms.RespondToDrawOffer(ctx, req, sender)
	case protocol.GameClaimDraw:
		p.rooms.ClaimDraw(ctx, sender)
	case protocol.GameMove:
		var req protocol.GameMoveRequest
		if err := json.Unmarshal(data, &req); err != nil {
			p.invalidRequest(s, err.Error())
			return
		}
		if err := p.rooms.Move(ctx, req, sender); err != nil {
			p.invalidRequest(s, err.Error())
		}
	default:
		p.invalidRequest(s, fmt.Sprintf("unknown code %d", code))
	}
}
