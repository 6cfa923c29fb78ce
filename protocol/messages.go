package protocol

import (
	"github.com/chessroyale/core/chesstypes"
)

// Envelope is the minimal shape every incoming frame must satisfy: a
// code identifying the handler, everything else handler-specific.
type Envelope struct {
	Code Code `json:"code"`
}

// Position is the wire encoding of a board square.
type Position [2]int

// PlayerDescriptor is how a Player is rendered to clients: nick plus
// per-game-type Elo.
type PlayerDescriptor struct {
	Nick string                        `json:"nick"`
	Elo  map[chesstypes.GameType]int   `json:"elo"`
}

// SignUpRequest is the SIGN_UP payload.
type SignUpRequest struct {
	Code     Code   `json:"code"`
	Nick     string `json:"nick"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInRequest is the SIGN_IN payload.
type SignInRequest struct {
	Code     Code   `json:"code"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse answers both SignUp and SignIn.
type AuthResponse struct {
	Code   Code       `json:"code"`
	Status AuthStatus `json:"status"`
}

// JoinRankedQueueRequest is the JOIN_RANKED_QUEUE payload.
type JoinRankedQueueRequest struct {
	Code     Code               `json:"code"`
	GameType chesstypes.GameType `json:"gameType"`
}

// CreatePrivateRoomResponse answers CREATE_PRIVATE_ROOM.
type CreatePrivateRoomResponse struct {
	Code      Code   `json:"code"`
	AccessKey string `json:"accessKey"`
}

// JoinPrivateRoomRequest is the JOIN_PRIVATE_ROOM payload.
type JoinPrivateRoomRequest struct {
	Code      Code   `json:"code"`
	AccessKey string `json:"accessKey"`
}

// JoinPrivateRoomResponse answers JOIN_PRIVATE_ROOM. Host is only
// populated on SUCCESS.
type JoinPrivateRoomResponse struct {
	Code   Code                      `json:"code"`
	Status PrivateRoomJoinStatus     `json:"status"`
	Host   *PlayerDescriptor         `json:"host,omitempty"`
}

// PlayerLeftMessage carries a code and the acting player's descriptor.
// LEAVE_PRIVATE_ROOM sends it, and the surrender, draw-offer and
// draw-claim handlers broadcast it.
type PlayerLeftMessage struct {
	Code   Code             `json:"code"`
	Player PlayerDescriptor `json:"player"`
}

// StartPrivateGameRequest is the START_PRIVATE_GAME payload.
type StartPrivateGameRequest struct {
	Code     Code               `json:"code"`
	GameType chesstypes.GameType `json:"gameType"`
}

// GameStartedMessage is broadcast once a room's runner starts, for both
// private-game starts and ranked pairing.
type GameStartedMessage struct {
	Code     Code                                  `json:"code"`
	GameType chesstypes.GameType                    `json:"gameType"`
	Teams    map[chesstypes.Team]PlayerDescriptor   `json:"teams"`
}

// MovePayload is the structural move encoding GAME_MOVE carries both
// ways.
type MovePayload struct {
	Type           chesstypes.MoveType `json:"type"`
	PositionFrom   Position            `json:"positionFrom"`
	PositionTo     Position            `json:"positionTo"`
	RookFrom       *Position           `json:"rookFrom,omitempty"`
	RookTo         *Position           `json:"rookTo,omitempty"`
	CapturedPosition *Position         `json:"capturedPosition,omitempty"`
	PieceType      *chesstypes.PieceType `json:"pieceType,omitempty"`
}

// GameMoveRequest is the GAME_MOVE payload sent by the mover.
type GameMoveRequest struct {
	Code Code        `json:"code"`
	Move MovePayload `json:"move"`
}

// GameMoveMessage is broadcast after a move is accepted.
type GameMoveMessage struct {
	Code     Code        `json:"code"`
	Move     MovePayload `json:"move"`
	TimeLeft int64       `json:"timeLeft"`
}

// RespondToDrawOfferRequest is the GAME_RESPOND_TO_DRAW_OFFER payload.
type RespondToDrawOfferRequest struct {
	Code     Code `json:"code"`
	Accepted bool `json:"accepted"`
}

// GameEndMessage is the wire shape of a concluded game's result. No
// handler in this module sends it: the surrender, draw and time-end paths
// send their own messages, and a checkmating or tying move is reported
// only through the GAME_MOVE broadcast.
type GameEndMessage struct {
	Code   Code             `json:"code"`
	Draw   bool             `json:"draw"`
	Winner PlayerDescriptor `json:"winner,omitempty"`
	Loser  PlayerDescriptor `json:"loser,omitempty"`
}

// PlayerDisconnectedMessage notifies a room's remaining participant(s)
// that a peer's connection dropped.
type PlayerDisconnectedMessage struct {
	Code   Code             `json:"code"`
	Player PlayerDescriptor `json:"player"`
}

// ToDescriptor renders nick/elo as the wire PlayerDescriptor shape.
func ToDescriptor(nick string, elo map[chesstypes.GameType]int) PlayerDescriptor {
	return PlayerDescriptor{Nick: nick, Elo: elo}
}
