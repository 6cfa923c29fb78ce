// Package game implements the per-game clock, draw-offer state machine,
// and result classification that sits on top of engine, following the
// reference service's GameTimer/GameRunner split.
package game

import (
	"sync"
	"time"

	"github.com/chessroyale/core/chesstypes"
)

// FirstMoveGrace is the fixed clock segment given to the first mover,
// distinct from the game type's stored total.
const FirstMoveGrace = 30 * time.Second

// Clock tracks each team's remaining time and fires a callback when one
// side's clock reaches zero. Safe for concurrent use; Next and Cancel may
// race with the pending timer's callback firing.
type Clock struct {
	mu          sync.Mutex
	timesLeft   map[chesstypes.Team]time.Duration
	currentTeam chesstypes.Team
	timer       *time.Timer
	moveStart   time.Time
	isFirstMove bool
	onTimeEnd   func(chesstypes.Team)
}

// NewClock starts a clock for a game with total time per side, invoking
// onTimeEnd with whichever team's clock expired. The first segment is
// FirstMoveGrace regardless of total, per the first-move grace rule.
func NewClock(total time.Duration, onTimeEnd func(chesstypes.Team)) *Clock {
	c := &Clock{
		timesLeft:   map[chesstypes.Team]time.Duration{chesstypes.White: total, chesstypes.Black: total},
		currentTeam: chesstypes.White,
		isFirstMove: true,
		onTimeEnd:   onTimeEnd,
	}
	c.schedule(FirstMoveGrace)
	return c
}

// Next ends the current side's move segment, returns the time that side
// had left, and starts the next side's segment. Must be called exactly
// once per completed move.
func (c *Clock) Next() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.timer.Stop()
	now := time.Now()

	if c.isFirstMove {
		c.isFirstMove = false
	} else {
		elapsed := now.Sub(c.moveStart)
		c.timesLeft[c.currentTeam] -= elapsed
	}

	timeLeft := c.timesLeft[c.currentTeam]
	c.currentTeam = c.currentTeam.Opposite()
	c.moveStart = now
	c.schedule(c.timesLeft[c.currentTeam])

	return timeLeft
}

// Cancel stops the pending expiry timer without starting a new one,
// used when the game ends for a reason other than time running out.
func (c *Clock) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
	}
}

// CurrentTeam returns the side whose clock is currently running.
func (c *Clock) CurrentTeam() chesstypes.Team {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentTeam
}

// TimeLeft returns team's remaining time without side effects.
func (c *Clock) TimeLeft(team chesstypes.Team) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timesLeft[team]
}

func (c *Clock) schedule(delay time.Duration) {
	team := c.currentTeam
	c.timer = time.AfterFunc(delay, func() {
		c.onTimeEnd(team)
	})
}
