package arena

import (
	"sync"
	"time"

	"github.com/tmarquesini/card-arena/internal/clock"
	"github.com/tmarquesini/card-arena/internal/game"
)

// AutoPilot drives an arena on scheduler ticks while auto-battle is enabled.
// Each tick performs exactly one ExecuteMove or ExecuteAttack; the arena
// calls stay synchronous and atomic, the pilot only decides when they fire.
type AutoPilot struct {
	mu       sync.Mutex
	arena    *Arena
	sched    clock.Scheduler
	interval time.Duration
	timer    clock.Timer
	running  bool
}

// NewAutoPilot wires an arena to a scheduler with the given tick interval.
func NewAutoPilot(a *Arena, sched clock.Scheduler, interval time.Duration) *AutoPilot {
	return &AutoPilot{arena: a, sched: sched, interval: interval}
}

// Start enables auto-battle on the arena and schedules the first tick. It is
// a no-op while the arena is not in a running phase.
func (p *AutoPilot) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return
	}
	if !p.arena.IsAutoBattle() {
		if !p.arena.ToggleAutoBattle() {
			return
		}
	}
	p.running = true
	p.timer = p.sched.AfterFunc(p.interval, p.tick)
}

// Stop cancels the pending tick and disables auto-battle. No tick fires
// after Stop returns.
func (p *AutoPilot) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	if p.arena.IsAutoBattle() {
		p.arena.ToggleAutoBattle()
	}
}

func (p *AutoPilot) stopLocked() {
	p.running = false
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

func (p *AutoPilot) tick() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running {
		return
	}
	if !p.arena.IsAutoBattle() {
		p.stopLocked()
		return
	}
	switch p.arena.Phase() {
	case game.PhaseMoving:
		p.arena.ExecuteMove()
	case game.PhaseCombat:
		p.arena.ExecuteAttack()
	}
	// A knockout forces auto-battle off; never reschedule past the end.
	if p.arena.Phase() == game.PhaseFinished || !p.arena.IsAutoBattle() {
		p.stopLocked()
		return
	}
	p.timer = p.sched.AfterFunc(p.interval, p.tick)
}
