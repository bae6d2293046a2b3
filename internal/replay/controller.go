package replay

import (
	"sync"
	"time"

	"github.com/tmarquesini/card-arena/internal/clock"
	"github.com/tmarquesini/card-arena/internal/record"
)

// DefaultBaseInterval is the auto-advance period at speed 1.
const DefaultBaseInterval = 1500 * time.Millisecond

// Controller plays back a finished BattleRecord without recomputation: every
// value it exposes is a pure read of the captured history. Auto-advance runs
// on a cancellable scheduler tick; at most one tick is pending and none
// fires after pause, completion or Close.
type Controller struct {
	mu           sync.Mutex
	rec          *record.BattleRecord
	sched        clock.Scheduler
	baseInterval time.Duration
	onComplete   func()

	current       int
	playing       bool
	speed         int
	timer         clock.Timer
	completeFired bool
	closed        bool
}

// NewController creates a controller over a finished record. A nil scheduler
// falls back to the wall clock; a zero interval falls back to
// DefaultBaseInterval. onComplete may be nil.
func NewController(rec *record.BattleRecord, sched clock.Scheduler, baseInterval time.Duration, onComplete func()) *Controller {
	if sched == nil {
		sched = clock.NewScheduler()
	}
	if baseInterval <= 0 {
		baseInterval = DefaultBaseInterval
	}
	return &Controller{
		rec:          rec,
		sched:        sched,
		baseInterval: baseInterval,
		onComplete:   onComplete,
		speed:        1,
	}
}

// CurrentTurn returns the playback cursor; 0 is the initial state.
func (c *Controller) CurrentTurn() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// IsPlaying reports whether auto-advance is running.
func (c *Controller) IsPlaying() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playing
}

// Speed returns the playback speed multiplier (1, 2 or 4).
func (c *Controller) Speed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speed
}

// IsComplete reports whether the cursor reached the end of the record.
func (c *Controller) IsComplete() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current >= c.rec.TotalTurns
}

// ChallengerHP returns the challenger's HP at the current turn.
func (c *Controller) ChallengerHP() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rec.HPAtTurn(c.current).ChallengerHP
}

// OpponentHP returns the opponent's HP at the current turn.
func (c *Controller) OpponentHP() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rec.HPAtTurn(c.current).OpponentHP
}

// Play starts auto-advance. Playing a completed replay restarts it from the
// initial state.
func (c *Controller) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.playing {
		return
	}
	if c.current >= c.rec.TotalTurns {
		c.current = 0
		c.completeFired = false
	}
	c.playing = true
	c.schedule()
}

// Pause stops auto-advance, keeping the cursor in place.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopPlayback()
}

// Reset stops playback and rewinds to the initial state.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopPlayback()
	c.current = 0
	c.completeFired = false
}

// SetSpeed changes the playback speed; only 1, 2 and 4 are accepted. A
// pending tick is rescheduled at the new rate.
func (c *Controller) SetSpeed(speed int) {
	if speed != 1 && speed != 2 && speed != 4 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.speed = speed
	if c.playing {
		c.cancelTimer()
		c.schedule()
	}
}

// GoToTurn jumps to a turn, clamped to [0, totalTurns]. Landing on or after
// the end stops playback.
func (c *Controller) GoToTurn(turn int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if turn < 0 {
		turn = 0
	}
	if turn > c.rec.TotalTurns {
		turn = c.rec.TotalTurns
	}
	c.current = turn
	if c.current >= c.rec.TotalTurns {
		c.stopPlayback()
	}
}

// NextTurn advances one turn, bounded at the end.
func (c *Controller) NextTurn() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current < c.rec.TotalTurns {
		c.current++
	}
	if c.current >= c.rec.TotalTurns {
		c.stopPlayback()
	}
}

// PrevTurn steps back one turn, bounded at the initial state.
func (c *Controller) PrevTurn() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current > 0 {
		c.current--
	}
}

// Close cancels any pending tick. The controller must not be used after.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopPlayback()
	c.closed = true
}

func (c *Controller) schedule() {
	c.timer = c.sched.AfterFunc(c.baseInterval/time.Duration(c.speed), c.tick)
}

func (c *Controller) cancelTimer() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) stopPlayback() {
	c.playing = false
	c.cancelTimer()
}

func (c *Controller) tick() {
	var done func()
	c.mu.Lock()
	if !c.playing || c.closed {
		c.mu.Unlock()
		return
	}
	c.current++
	if c.current >= c.rec.TotalTurns {
		c.current = c.rec.TotalTurns
		c.stopPlayback()
		if !c.completeFired {
			c.completeFired = true
			done = c.onComplete
		}
	} else {
		c.schedule()
	}
	c.mu.Unlock()
	if done != nil {
		done()
	}
}
