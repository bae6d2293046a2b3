package clock

import (
	"sync"
	"time"
)

// Timer is a handle to one pending tick. Stop reports whether the tick was
// cancelled before it fired.
type Timer interface {
	Stop() bool
}

// Scheduler schedules a single callback after a delay. The contract for
// callers: at most one pending tick at a time, cancel on dispose, and no
// tick may fire after a terminal state. Both the replay controller and the
// auto-battle runner drive their loops through this interface instead of an
// ambient time.AfterFunc.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

type realScheduler struct{}

// NewScheduler returns the wall-clock scheduler.
func NewScheduler() Scheduler { return realScheduler{} }

func (realScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Manual is a test scheduler: ticks fire only when Fire is called, in the
// order they were scheduled.
type Manual struct {
	mu      sync.Mutex
	pending []*manualTimer
}

// NewManual creates a manual scheduler.
func NewManual() *Manual { return &Manual{} }

type manualTimer struct {
	owner   *Manual
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

func (m *Manual) AfterFunc(d time.Duration, fn func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTimer{owner: m, fn: fn}
	m.pending = append(m.pending, t)
	return t
}

// Pending returns the number of scheduled, unfired, uncancelled ticks.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.pending {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}

// Fire runs the oldest pending tick. It reports whether a tick fired.
func (m *Manual) Fire() bool {
	m.mu.Lock()
	var next *manualTimer
	rest := m.pending[:0]
	for _, t := range m.pending {
		if next == nil && !t.fired && !t.stopped {
			next = t
			t.fired = true
			continue
		}
		rest = append(rest, t)
	}
	m.pending = rest
	m.mu.Unlock()
	if next == nil {
		return false
	}
	next.fn()
	return true
}
