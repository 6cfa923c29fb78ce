// Package roomservice is the central orchestrator tying rooms,
// matchmaking, and persistence together, following the reference
// GameRoomService: one handler method per client request code, three
// room indexes, and a periodic matchmaking sweep.
package roomservice

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/chessroyale/core/chesstypes"
	"github.com/chessroyale/core/config"
	"github.com/chessroyale/core/elo"
	"github.com/chessroyale/core/game"
	"github.com/chessroyale/core/logging"
	"github.com/chessroyale/core/matchmaking"
	"github.com/chessroyale/core/player"
	"github.com/chessroyale/core/protocol"
	"github.com/chessroyale/core/room"
	"github.com/chessroyale/core/store"
)

var log = logging.GetLog("roomservice")

// out formats the Elo deltas this package logs, the same message.Printer
// idiom the reference engine uses for large-number log output.
var out = message.NewPrinter(language.English)

const accessKeyLen = 5
const accessKeyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ErrNotHost is returned when a non-host tries to start a private game.
var ErrNotHost = errors.New("roomservice: player is not the room host")

// ErrUnknownGameType is returned for a request naming a game type the
// server doesn't recognize.
var ErrUnknownGameType = errors.New("roomservice: unknown game type")

// Service is the single stateful orchestrator a broker dispatches every
// authenticated request through. One Service is shared by every
// connection.
type Service struct {
	mu sync.Mutex

	store store.PlayerStore
	queue *matchmaking.Queue

	rankedRooms          map[*player.Player]*room.Room
	privateRoomsByPlayer map[*player.Player]*room.Room
	privateRoomsByKey    map[string]*room.Room
}

// New returns a Service with empty indexes and a fresh matchmaking
// queue, persisting Elo updates through s.
func New(s store.PlayerStore) *Service {
	return &Service{
		store:                s,
		queue:                matchmaking.NewQueue(),
		rankedRooms:          make(map[*player.Player]*room.Room),
		privateRoomsByPlayer: make(map[*player.Player]*room.Room),
		privateRoomsByKey:    make(map[string]*room.Room),
	}
}

func send(p *player.Player, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Errorf("marshal message for %s: %v", p.Nick, err)
		return
	}
	room.SendTo(p, data)
}

func broadcast(r *room.Room, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Errorf("marshal broadcast message: %v", err)
		return
	}
	r.Broadcast(data)
}

func validGameType(gt chesstypes.GameType) bool {
	for _, g := range chesstypes.AllGameTypes {
		if g == gt {
			return true
		}
	}
	return false
}

func descriptorOf(p *player.Player) protocol.PlayerDescriptor {
	return protocol.ToDescriptor(p.Nick, p.Elo)
}

func teamDescriptors(teams map[*player.Player]chesstypes.Team) map[chesstypes.Team]protocol.PlayerDescriptor {
	out := make(map[chesstypes.Team]protocol.PlayerDescriptor, len(teams))
	for p, t := range teams {
		out[t] = descriptorOf(p)
	}
	return out
}

// JoinRankedQueue enqueues sender for req.GameType, unless they are
// already in a room or queue anywhere.
func (s *Service) JoinRankedQueue(req protocol.JoinRankedQueueRequest, sender *player.Player) error {
	if !validGameType(req.GameType) {
		return ErrUnknownGameType
	}

	s.mu.Lock()
	inRoom := s.rankedRooms[sender] != nil || s.privateRoomsByPlayer[sender] != nil
	s.mu.Unlock()
	if inRoom {
		return nil
	}

	if !s.queue.Join(sender, req.GameType) {
		return nil
	}

	send(sender, protocol.Envelope{Code: protocol.JoinRankedQueue})
	return nil
}

// CancelJoiningRanked removes sender from the ranked queue if waiting.
func (s *Service) CancelJoiningRanked(sender *player.Player) {
	if s.queue.Cancel(sender) {
		send(sender, protocol.Envelope{Code: protocol.CancelJoiningRanked})
	}
}

// CreatePrivateRoom creates a fresh private room hosted by sender with a
// unique access key, unless sender is already in a room or queue.
func (s *Service) CreatePrivateRoom(sender *player.Player) {
	s.mu.Lock()
	if s.rankedRooms[sender] != nil || s.privateRoomsByPlayer[sender] != nil {
		s.mu.Unlock()
		return
	}
	if s.queue.IsWaiting(sender) {
		s.mu.Unlock()
		return
	}

	key := s.generateAccessKeyLocked()
	r := room.NewPrivate(sender, key)
	s.privateRoomsByKey[key] = r
	s.privateRoomsByPlayer[sender] = r
	s.mu.Unlock()

	send(sender, protocol.CreatePrivateRoomResponse{Code: protocol.CreatePrivateRoom, AccessKey: key})
}

func (s *Service) generateAccessKeyLocked() string {
	for {
		b := make([]byte, accessKeyLen)
		for i := range b {
			b[i] = accessKeyAlphabet[rand.Intn(len(accessKeyAlphabet))]
		}
		key := string(b)
		if _, taken := s.privateRoomsByKey[key]; !taken {
			return key
		}
	}
}

// JoinPrivateRoom attempts to seat sender as the guest of the room keyed
// by req.AccessKey.
func (s *Service) JoinPrivateRoom(req protocol.JoinPrivateRoomRequest, sender *player.Player) {
	s.mu.Lock()
	if s.rankedRooms[sender] != nil || s.privateRoomsByPlayer[sender] != nil || s.queue.IsWaiting(sender) {
		s.mu.Unlock()
		return
	}

	r, ok := s.privateRoomsByKey[req.AccessKey]
	if !ok {
		s.mu.Unlock()
		send(sender, protocol.JoinPrivateRoomResponse{Code: protocol.JoinPrivateRoom, Status: protocol.JoinRoomNotExist})
		return
	}
	if r.Full() {
		s.mu.Unlock()
		send(sender, protocol.JoinPrivateRoomResponse{Code: protocol.JoinPrivateRoom, Status: protocol.JoinRoomFull})
		return
	}
	if r.IsKicked(sender) {
		s.mu.Unlock()
		send(sender, protocol.JoinPrivateRoomResponse{Code: protocol.JoinPrivateRoom, Status: protocol.JoinKickedFromRoom})
		return
	}

	r.SetGuest(sender)
	s.privateRoomsByPlayer[sender] = r
	s.mu.Unlock()

	host := descriptorOf(r.Host())
	broadcast(r, protocol.JoinPrivateRoomResponse{
		Code:   protocol.JoinPrivateRoom,
		Status: protocol.JoinSuccess,
		Host:   &host,
	})
}

// LeavePrivateRoom removes sender from their private room. If sender is
// the host the room is torn down entirely; if sender is the guest only
// the guest seat empties. The leave message reaches every participant
// the room had before the departure, including the leaver.
func (s *Service) LeavePrivateRoom(sender *player.Player) {
	s.mu.Lock()
	r, ok := s.privateRoomsByPlayer[sender]
	if !ok {
		s.mu.Unlock()
		return
	}

	participants := r.Players()
	if sender == r.Host() {
		s.removePrivateLocked(r)
	} else {
		r.ClearGuest()
		delete(s.privateRoomsByPlayer, sender)
	}
	s.mu.Unlock()

	msg := protocol.PlayerLeftMessage{Code: protocol.LeavePrivateRoom, Player: descriptorOf(sender)}
	for _, p := range participants {
		send(p, msg)
	}
}

// KickFromPrivateRoom evicts the guest of sender's private room, barring
// them from rejoining with the same access key.
func (s *Service) KickFromPrivateRoom(sender *player.Player) {
	s.mu.Lock()
	r, ok := s.privateRoomsByPlayer[sender]
	if !ok || sender != r.Host() || r.Guest() == nil {
		s.mu.Unlock()
		return
	}

	guest := r.Guest()
	r.Runner.Clean()
	delete(s.privateRoomsByPlayer, guest)
	r.Kick(guest)
	r.ClearGuest()
	s.mu.Unlock()

	msg := protocol.Envelope{Code: protocol.KickFromPrivateRoom}
	send(r.Host(), msg)
	send(guest, msg)
}

// StartPrivateGame starts the game running inside sender's private room.
// Only the host may start it, and only once a guest has joined.
func (s *Service) StartPrivateGame(req protocol.StartPrivateGameRequest, sender *player.Player) error {
	s.mu.Lock()
	r, ok := s.privateRoomsByPlayer[sender]
	if !ok {
		s.mu.Unlock()
		return nil
	}
	if sender != r.Host() {
		s.mu.Unlock()
		return ErrNotHost
	}
	if r.Guest() == nil {
		s.mu.Unlock()
		return nil
	}
	if !validGameType(req.GameType) {
		s.mu.Unlock()
		return ErrUnknownGameType
	}

	host, guest := r.Host(), r.Guest()
	r.Runner.Start(host, guest, req.GameType, func(end game.GameEndStatus) {
		s.onPrivateTimeEnd(end)
	})
	s.mu.Unlock()

	broadcast(r, protocol.GameStartedMessage{
		Code:     protocol.StartPrivateGame,
		GameType: req.GameType,
		Teams:    teamDescriptors(r.Runner.Teams()),
	})
	return nil
}

func (s *Service) onPrivateTimeEnd(end game.GameEndStatus) {
	msg := protocol.Envelope{Code: protocol.GameTimeEnd}
	send(end.Winner, msg)
	send(end.Loser, msg)
}

// roomByPlayer finds sender's currently active game room, ranked or
// private. The reference implementation has a bug here: it indexes
// private_rooms_by_player by player before checking membership, which
// raises instead of falling through. This looks the private index up
// with plain membership, as the rest of the service already does for
// every other room lookup.
func (s *Service) roomByPlayer(sender *player.Player) *room.Room {
	if r, ok := s.rankedRooms[sender]; ok {
		return r
	}
	if r, ok := s.privateRoomsByPlayer[sender]; ok {
		return r
	}
	return nil
}

// Surrender ends sender's active game with them as the loser.
func (s *Service) Surrender(ctx context.Context, sender *player.Player) {
	s.mu.Lock()
	r := s.roomByPlayer(sender)
	if r == nil {
		s.mu.Unlock()
		return
	}
	end := r.Runner.OnSurrender(sender)
	ranked := r.Kind() == room.Ranked
	s.mu.Unlock()

	if end != nil && ranked {
		s.removeRanked(ctx, *end)
	}

	broadcast(r, protocol.PlayerLeftMessage{Code: protocol.GameSurrender, Player: descriptorOf(sender)})
}

// OfferDraw records sender's draw offer, if it's their turn and none
// currently stands.
func (s *Service) OfferDraw(sender *player.Player) {
	s.mu.Lock()
	r := s.roomByPlayer(sender)
	if r == nil {
		s.mu.Unlock()
		return
	}
	ok := r.Runner.OnDrawOffer(sender)
	s.mu.Unlock()

	if ok {
		broadcast(r, protocol.PlayerLeftMessage{Code: protocol.GameOfferDraw, Player: descriptorOf(sender)})
	}
}

// RespondToDrawOffer accepts or rejects the standing draw offer against
// sender.
func (s *Service) RespondToDrawOffer(ctx context.Context, req protocol.RespondToDrawOfferRequest, sender *player.Player) {
	s.mu.Lock()
	r := s.roomByPlayer(sender)
	if r == nil {
		s.mu.Unlock()
		return
	}

	var end *game.GameEndStatus
	ranked := r.Kind() == room.Ranked
	if req.Accepted {
		end = r.Runner.OnDrawOfferAccepted(sender)
	} else {
		r.Runner.OnDrawOfferRejected(sender)
	}
	s.mu.Unlock()

	if end != nil && ranked {
		s.removeRanked(ctx, *end)
	}

	broadcast(r, protocol.RespondToDrawOfferRequest{Code: protocol.GameRespondToDrawOffer, Accepted: req.Accepted})
}

// ClaimDraw ends sender's game as a draw if the position satisfies
// threefold repetition or the fifty-move rule.
func (s *Service) ClaimDraw(ctx context.Context, sender *player.Player) {
	s.mu.Lock()
	r := s.roomByPlayer(sender)
	if r == nil {
		s.mu.Unlock()
		return
	}
	end := r.Runner.OnDrawClaim(sender)
	ranked := r.Kind() == room.Ranked
	s.mu.Unlock()

	if end == nil {
		return
	}
	if ranked {
		s.removeRanked(ctx, *end)
	}

	broadcast(r, protocol.PlayerLeftMessage{Code: protocol.GameClaimDraw, Player: descriptorOf(sender)})
}

// Move validates and applies req.Move on behalf of sender, broadcasting
// the result to the room and persisting any ranked game end.
func (s *Service) Move(ctx context.Context, req protocol.GameMoveRequest, sender *player.Player) error {
	move, err := protocol.DecodeMove(req.Move)
	if err != nil {
		return err
	}

	s.mu.Lock()
	r := s.roomByPlayer(sender)
	if r == nil {
		s.mu.Unlock()
		return nil
	}
	status := r.Runner.OnMove(move, sender)
	ranked := r.Kind() == room.Ranked
	s.mu.Unlock()

	if !status.Successful {
		return nil
	}
	if status.End != nil && ranked {
		s.removeRanked(ctx, *status.End)
	}

	broadcast(r, protocol.GameMoveMessage{
		Code:     protocol.GameMove,
		Move:     req.Move,
		TimeLeft: int64(status.PlayerTimeLeft / time.Millisecond),
	})
	return nil
}

// Disconnect handles a dropped connection: cancels sender's queue entry
// if waiting, otherwise surrenders their active ranked game or tears
// down/vacates their private room.
func (s *Service) Disconnect(ctx context.Context, sender *player.Player) {
	if s.queue.Cancel(sender) {
		return
	}

	msg := protocol.PlayerDisconnectedMessage{Code: protocol.PlayerDisconnected, Player: descriptorOf(sender)}

	s.mu.Lock()
	if r, ok := s.rankedRooms[sender]; ok {
		end := r.Runner.OnSurrender(sender)
		s.mu.Unlock()
		if end != nil {
			s.removeRanked(ctx, *end)
			send(end.Winner, msg)
		}
		return
	}

	if r, ok := s.privateRoomsByPlayer[sender]; ok {
		if sender == r.Host() {
			guest := r.Guest()
			s.removePrivateLocked(r)
			s.mu.Unlock()
			if guest != nil {
				send(guest, msg)
			}
			return
		}
		r.Runner.Clean()
		r.ClearGuest()
		delete(s.privateRoomsByPlayer, sender)
		s.mu.Unlock()
		send(r.Host(), msg)
		return
	}
	s.mu.Unlock()
}

// removePrivateLocked tears down a private room's indexes. Callers must
// hold s.mu.
func (s *Service) removePrivateLocked(r *room.Room) {
	r.Runner.Clean()
	delete(s.privateRoomsByPlayer, r.Host())
	if r.Guest() != nil {
		delete(s.privateRoomsByPlayer, r.Guest())
	}
	delete(s.privateRoomsByKey, r.AccessKey())
}

// removeRanked tears down a finished ranked room's indexes and persists
// both sides' updated Elo. end.Winner/end.Loser name the decisive result,
// or an arbitrary ordering of the two participants for a draw.
func (s *Service) removeRanked(ctx context.Context, end game.GameEndStatus) {
	s.mu.Lock()
	delete(s.rankedRooms, end.Winner)
	delete(s.rankedRooms, end.Loser)
	s.mu.Unlock()

	score := elo.Win
	if end.Draw {
		score = elo.Draw
	}

	winnerElo := end.Winner.Elo[end.GameType]
	loserElo := end.Loser.Elo[end.GameType]
	change := elo.Change(winnerElo, loserElo, score)

	end.Winner.Elo[end.GameType] = winnerElo + change
	end.Loser.Elo[end.GameType] = loserElo - change

	log.Infof(out.Sprintf("%s %+d -> %d, %s %+d -> %d (%s)",
		end.Winner.Nick, change, end.Winner.Elo[end.GameType],
		end.Loser.Nick, -change, end.Loser.Elo[end.GameType], end.GameType))

	if err := s.store.UpdateElo(ctx, end.Winner.Nick, end.GameType, end.Winner.Elo[end.GameType]); err != nil {
		log.Errorf("persist elo for %s: %v", end.Winner.Nick, err)
	}
	if err := s.store.UpdateElo(ctx, end.Loser.Nick, end.GameType, end.Loser.Elo[end.GameType]); err != nil {
		log.Errorf("persist elo for %s: %v", end.Loser.Nick, err)
	}
}

// createRanked pairs player1 and player2 into a fresh ranked room and
// starts their game running.
func (s *Service) createRanked(player1, player2 *player.Player, gameType chesstypes.GameType) {
	r := room.NewRanked(player1, player2)

	s.mu.Lock()
	s.rankedRooms[player1] = r
	s.rankedRooms[player2] = r
	s.mu.Unlock()

	r.Runner.Start(player1, player2, gameType, func(end game.GameEndStatus) {
		s.onRankedTimeEnd(end)
	})

	broadcast(r, protocol.GameStartedMessage{
		Code:     protocol.JoinedRankedRoom,
		GameType: gameType,
		Teams:    teamDescriptors(r.Runner.Teams()),
	})
}

func (s *Service) onRankedTimeEnd(end game.GameEndStatus) {
	s.removeRanked(context.Background(), end)
	msg := protocol.Envelope{Code: protocol.GameTimeEnd}
	send(end.Winner, msg)
	send(end.Loser, msg)
}

// MatchPlayers runs one matchmaking sweep, pairing every match it finds
// into a fresh ranked room.
func (s *Service) MatchPlayers() {
	for _, pair := range s.queue.Sweep() {
		s.createRanked(pair.Player1, pair.Player2, pair.GameType)
	}
}

// RunMatchmaking runs MatchPlayers on a fixed interval until ctx is
// canceled, the way the reference service's matching loop does, driven
// by config.Settings.Matchmaking.SweepEvery instead of a literal sleep.
func (s *Service) RunMatchmaking(ctx context.Context) {
	interval := time.Duration(config.Settings.Matchmaking.SweepEvery) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.MatchPlayers()
		}
	}
}
