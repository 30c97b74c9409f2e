package scheduler

import (
	"sync"
	"time"

	"github.com/acavaleiro/habitboard/internal/logger"
)

// Midnight fires a callback at each local midnight boundary for as long as
// the application session lasts. The timer is only a trigger: the callback is
// expected to re-check due-ness from persisted watermarks against the wall
// clock, so a timer that fires late (device slept through midnight) or early
// (clock adjustment) never corrupts state.
type Midnight struct {
	onFire func()
	now    func() time.Time

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

func NewMidnight(onFire func()) *Midnight {
	return &Midnight{
		onFire: onFire,
		now:    time.Now,
	}
}

// SetClock replaces the scheduler's clock. Tests use this to pin "now".
func (m *Midnight) SetClock(now func() time.Time) {
	m.now = now
}

// NextMidnight returns the first local midnight strictly after t.
func NextMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()).AddDate(0, 0, 1)
}

// Start arms the timer for the next midnight. No-op if already started.
func (m *Midnight) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timer != nil || m.stopped {
		return
	}
	m.arm()
}

// Stop cancels the timer. Safe to call if it already fired or never started.
func (m *Midnight) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

// arm schedules the next firing. Caller must hold mu.
func (m *Midnight) arm() {
	if m.timer != nil {
		m.timer.Stop()
	}
	now := m.now()
	delay := NextMidnight(now).Sub(now)
	logger.Debug("armed midnight timer", "delay", delay)
	m.timer = time.AfterFunc(delay, m.fire)
}

func (m *Midnight) fire() {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return
	}
	// Re-arm before running the callback so a slow callback cannot skip a
	// boundary.
	m.arm()
	m.mu.Unlock()

	m.onFire()
}
