package rollover

import (
	"time"

	"github.com/acavaleiro/habitboard/internal/logger"
	"github.com/acavaleiro/habitboard/internal/models"
)

// State is the pending-confirmation machine's position.
type State int

const (
	// StateIdle means no rollover is needed or the last one was applied.
	StateIdle State = iota
	// StateAwaitingConfirmation means a daily rollover is due but habits
	// scheduled yesterday were left incomplete; the reset is withheld until
	// the user confirms or a later evaluation finds nothing pending.
	StateAwaitingConfirmation
	// StateApplying is the transient state while the rollover transform runs
	// and is persisted. Re-entrant calls during it are no-ops.
	StateApplying
)

// Result is what an evaluation reports back to the caller.
type Result struct {
	// Applied is true when a rollover executed during this call.
	Applied bool
	// PendingIDs lists the daily habits blocking an auto-rollover.
	PendingIDs []string
	// SaveErr carries a persistence failure. The in-memory state is still
	// valid; the caller decides user-visible messaging.
	SaveErr error
}

// Store is the slice of the storage provider the session needs.
type Store interface {
	GetBoard() (models.Board, error)
	SaveBoard(models.Board) error
}

// Session owns the in-memory board and the pending-confirmation state for one
// application run. It is not safe for concurrent use; callers are expected to
// serialize entry points (timer callback, user confirmation).
type Session struct {
	store   Store
	board   models.Board
	state   State
	pending []string
	now     func() time.Time
}

func NewSession(store Store) *Session {
	return &Session{
		store: store,
		now:   time.Now,
	}
}

// SetClock replaces the session's clock. Tests use this to pin "now".
func (s *Session) SetClock(now func() time.Time) {
	s.now = now
}

// Load reads the board from the store. Watermarks that were never written
// (first run) are seeded to today's midnight and the most recent Monday, so
// nothing is due until an actual day boundary passes.
func (s *Session) Load() error {
	board, err := s.store.GetBoard()
	if err != nil {
		return err
	}
	s.board = board

	now := s.now()
	seeded := false
	if s.board.Watermarks.LastDailyReset.IsZero() {
		s.board.Watermarks.LastDailyReset = Midnight(now)
		seeded = true
	}
	if s.board.Watermarks.LastWeeklyReset.IsZero() {
		s.board.Watermarks.LastWeeklyReset = LastMonday(now)
		seeded = true
	}
	if seeded {
		if err := s.store.SaveBoard(s.board); err != nil {
			logger.Warn("failed to persist seeded watermarks", "err", err)
		}
	}
	return nil
}

// State returns the machine's current position.
func (s *Session) State() State {
	return s.state
}

// Board returns a snapshot of the in-memory board.
func (s *Session) Board() models.Board {
	return s.board
}

// SetBoard replaces the in-memory board after an out-of-band mutation
// (create/update/delete through the store).
func (s *Session) SetBoard(board models.Board) {
	s.board = board
}

// Evaluate decides whether a rollover is due right now and either applies it
// or parks the machine awaiting confirmation. It is the single entry point
// for both the load-time check and the midnight timer; due-ness always comes
// from watermarks against the wall clock, never from timer bookkeeping.
func (s *Session) Evaluate() Result {
	if s.state == StateApplying {
		return Result{}
	}

	now := s.now()
	if !IsDailyDue(s.board.Watermarks.LastDailyReset, now) {
		s.state = StateIdle
		s.pending = nil
		return Result{}
	}

	pending := PendingHabits(s.board.DailyHabits, now)
	if len(pending) > 0 {
		s.state = StateAwaitingConfirmation
		s.pending = pending
		return Result{PendingIDs: pending}
	}

	return s.apply(now)
}

// Confirm acknowledges the pending prompt and applies the withheld rollover.
// Called with nothing pending (stale UI state) it is a no-op.
func (s *Session) Confirm() Result {
	if s.state != StateAwaitingConfirmation {
		return Result{}
	}
	return s.apply(s.now())
}

func (s *Session) apply(now time.Time) Result {
	s.state = StateApplying

	weeklyDue := IsWeeklyDue(s.board.Watermarks.LastWeeklyReset, now)
	yesterday := YesterdayWeekday(now)

	for i, h := range s.board.DailyHabits {
		s.board.DailyHabits[i] = RollDaily(h, yesterday)
	}
	for i, h := range s.board.IncrementalHabits {
		s.board.IncrementalHabits[i] = RollIncremental(h, weeklyDue)
	}
	s.board.Todos = PurgeStaleTodos(s.board.Todos, now)

	s.board.Watermarks.LastDailyReset = Midnight(now)
	if weeklyDue {
		s.board.Watermarks.LastWeeklyReset = LastMonday(now)
	}

	res := Result{Applied: true}
	if err := s.store.SaveBoard(s.board); err != nil {
		// In-memory state stays authoritative for the rest of the session;
		// the next load re-derives from whatever was durably persisted and
		// the transforms are idempotent.
		logger.Warn("failed to persist rollover", "err", err)
		res.SaveErr = err
	}

	s.pending = nil
	s.state = StateIdle
	return res
}
