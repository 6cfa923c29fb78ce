package game

import (
	"math/rand"
	"sync"
	"time"

	"github.com/chessroyale/core/chesstypes"
	"github.com/chessroyale/core/engine"
	"github.com/chessroyale/core/player"
)

// gameTimes maps each game type to its per-side clock total.
var gameTimes = map[chesstypes.GameType]time.Duration{
	chesstypes.Blitz:   5 * time.Minute,
	chesstypes.Rapid:   30 * time.Minute,
	chesstypes.Classic: 2 * time.Hour,
}

// GameEndStatus reports how a game concluded: a decisive result (winner
// beats loser) or a draw (winner/loser are an arbitrary ordering of the
// two participants, used only for Elo bookkeeping).
type GameEndStatus struct {
	Draw     bool
	Winner   *player.Player
	Loser    *player.Player
	GameType chesstypes.GameType
}

// MoveStatus is the result of attempting to play a move through a
// Runner: whether it was accepted, the mover's remaining time, and a
// non-nil GameEndStatus if the move ended the game.
type MoveStatus struct {
	Successful     bool
	PlayerTimeLeft time.Duration
	End            *GameEndStatus
}

// Runner owns one game's live engine, clock, team assignment, and draw
// offer, following the reference runner's single-struct design. A zero
// Runner is not running; call Start to begin a game.
type Runner struct {
	mu sync.Mutex

	teams     map[*player.Player]chesstypes.Team
	gameType  chesstypes.GameType
	clock     *Clock
	engine    *engine.Engine
	drawOffer *player.Player
	onTimeEnd func(GameEndStatus)

	randSource rand.Source
}

// New returns an idle Runner. randSource seeds the coin flip Start uses
// for team assignment; pass nil to use a time-seeded source, or a fixed
// source from a test to pin the outcome.
func New(randSource rand.Source) *Runner {
	if randSource == nil {
		randSource = rand.NewSource(time.Now().UnixNano())
	}
	return &Runner{randSource: randSource}
}

// Running reports whether a game is currently in progress.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.engine != nil
}

// Start begins a game between player1 and player2, assigning teams by a
// coin flip, and installs onTimeEnd to be invoked if either clock
// expires. A no-op if a game is already running.
func (r *Runner) Start(player1, player2 *player.Player, gameType chesstypes.GameType, onTimeEnd func(GameEndStatus)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.engine != nil {
		return
	}

	r.gameType = gameType
	r.onTimeEnd = onTimeEnd
	r.teams = make(map[*player.Player]chesstypes.Team, 2)

	if rand.New(r.randSource).Intn(2) == 0 {
		r.teams[player1] = chesstypes.White
		r.teams[player2] = chesstypes.Black
	} else {
		r.teams[player1] = chesstypes.Black
		r.teams[player2] = chesstypes.White
	}

	r.engine = engine.NewStandard()
	r.clock = NewClock(gameTimes[gameType], r.onTeamTimeEnd)
}

// Clean tears down the running game: cancels the clock and clears all
// per-game state. Safe to call whether or not a game is running.
func (r *Runner) Clean() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clean()
}

func (r *Runner) clean() {
	if r.clock != nil {
		r.clock.Cancel()
		r.clock = nil
	}
	r.engine = nil
	r.drawOffer = nil
	r.teams = nil
}

// Engine returns the live engine, or nil if no game is running. Callers
// must not mutate it outside of Runner's own methods.
func (r *Runner) Engine() *engine.Engine {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.engine
}

// Team returns p's assigned team for the running game.
func (r *Runner) Team(p *player.Player) (chesstypes.Team, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.teams[p]
	return t, ok
}

// Teams returns a copy of the current team assignment, or nil if no
// game is running.
func (r *Runner) Teams() map[*player.Player]chesstypes.Team {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.teams == nil {
		return nil
	}
	out := make(map[*player.Player]chesstypes.Team, len(r.teams))
	for p, t := range r.teams {
		out[p] = t
	}
	return out
}

// OnSurrender ends the game with p as the loser. Returns nil if no game
// is running.
func (r *Runner) OnSurrender(p *player.Player) *GameEndStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.engine == nil {
		return nil
	}

	winner := r.playerByTeam(r.teams[p].Opposite())
	gameType := r.gameType
	r.clean()
	return &GameEndStatus{Draw: false, Winner: winner, Loser: p, GameType: gameType}
}

// OnDrawOffer records p's draw offer. Only the side to move may offer,
// and only when no offer currently stands.
func (r *Runner) OnDrawOffer(p *player.Player) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.engine == nil || r.drawOffer != nil || r.teams[p] != r.engine.CurrentlyMoving {
		return false
	}
	r.drawOffer = p
	return true
}

// OnDrawOfferAccepted ends the game as a draw when the non-offering side
// accepts. Returns nil if there is no standing offer or p made it.
func (r *Runner) OnDrawOfferAccepted(p *player.Player) *GameEndStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.engine == nil || r.drawOffer == nil || p.Equal(r.drawOffer) {
		return nil
	}

	p1, p2 := r.twoPlayers()
	gameType := r.gameType
	r.clean()
	return &GameEndStatus{Draw: true, Winner: p1, Loser: p2, GameType: gameType}
}

// OnDrawOfferRejected clears a standing offer when the non-offering side
// declines.
func (r *Runner) OnDrawOfferRejected(p *player.Player) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.engine == nil || r.drawOffer == nil || p.Equal(r.drawOffer) {
		return false
	}
	r.drawOffer = nil
	return true
}

// OnDrawClaim ends the game as a draw if p is to move and the position
// satisfies threefold repetition or the fifty-move rule.
func (r *Runner) OnDrawClaim(p *player.Player) *GameEndStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.engine == nil || r.teams[p] != r.engine.CurrentlyMoving || !r.engine.CanClaimDraw() {
		return nil
	}

	p1, p2 := r.twoPlayers()
	gameType := r.gameType
	r.clean()
	return &GameEndStatus{Draw: true, Winner: p1, Loser: p2, GameType: gameType}
}

// OnMove validates and applies move on behalf of p. If the move is
// illegal or it is not p's turn, returns a failed MoveStatus. Clears any
// standing draw offer not made by the mover, since any move other than
// an acceptance implicitly declines it.
func (r *Runner) OnMove(move chesstypes.Move, p *player.Player) MoveStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.engine == nil || r.teams[p] != r.engine.CurrentlyMoving || !r.engine.ValidateMove(move) {
		return MoveStatus{Successful: false}
	}

	if err := r.engine.ProcessMove(move); err != nil {
		return MoveStatus{Successful: false}
	}

	gameType := r.gameType
	opponent := r.oppositePlayer(p)
	timeLeft := r.clock.Next()

	if r.engine.IsCheckmate() {
		r.clean()
		return MoveStatus{Successful: true, PlayerTimeLeft: timeLeft, End: &GameEndStatus{Draw: false, Winner: p, Loser: opponent, GameType: gameType}}
	}
	if r.engine.IsTie() {
		r.clean()
		return MoveStatus{Successful: true, PlayerTimeLeft: timeLeft, End: &GameEndStatus{Draw: true, Winner: p, Loser: opponent, GameType: gameType}}
	}

	if r.drawOffer != nil && !r.drawOffer.Equal(p) {
		r.drawOffer = nil
	}

	return MoveStatus{Successful: true, PlayerTimeLeft: timeLeft}
}

func (r *Runner) onTeamTimeEnd(team chesstypes.Team) {
	r.mu.Lock()
	if r.engine == nil {
		r.mu.Unlock()
		return
	}

	expired := r.playerByTeam(team)
	survivor := r.oppositePlayer(expired)
	gameType := r.gameType
	sufficientMaterial := r.engine.HasSufficientMaterial(r.teams[survivor])
	callback := r.onTimeEnd
	r.clean()
	r.mu.Unlock()

	status := GameEndStatus{Draw: !sufficientMaterial, Winner: survivor, Loser: expired, GameType: gameType}
	if callback != nil {
		callback(status)
	}
}

func (r *Runner) oppositePlayer(p *player.Player) *player.Player {
	return r.playerByTeam(r.teams[p].Opposite())
}

func (r *Runner) playerByTeam(team chesstypes.Team) *player.Player {
	for p, t := range r.teams {
		if t == team {
			return p
		}
	}
	return nil
}

func (r *Runner) twoPlayers() (*player.Player, *player.Player) {
	players := make([]*player.Player, 0, 2)
	for p := range r.teams {
		players = append(players, p)
	}
	if len(players) != 2 {
		return nil, nil
	}
	return players[0], players[1]
}
