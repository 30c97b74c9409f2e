package rollover

import (
	"errors"
	"testing"
	"time"

	"github.com/acavaleiro/habitboard/internal/models"
)

// memStore is an in-memory Store for session tests.
type memStore struct {
	board   models.Board
	saves   int
	saveErr error
}

func (m *memStore) GetBoard() (models.Board, error) {
	return m.board, nil
}

func (m *memStore) SaveBoard(board models.Board) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.board = board
	m.saves++
	return nil
}

func newTestSession(t *testing.T, store *memStore, now time.Time) *Session {
	t.Helper()
	s := NewSession(store)
	s.SetClock(func() time.Time { return now })
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return s
}

func TestEvaluate_NotDueIsNoOp(t *testing.T) {
	now := at(2024, time.January, 3, 9, 0)
	store := &memStore{board: models.Board{
		DailyHabits: []models.DailyHabit{{ID: "h1", Done: true, Streak: 2, DaysOfWeek: []time.Weekday{time.Tuesday}}},
		Watermarks:  models.Watermarks{LastDailyReset: date(2024, time.January, 3), LastWeeklyReset: date(2024, time.January, 1)},
	}}

	s := newTestSession(t, store, now)
	res := s.Evaluate()

	if res.Applied || len(res.PendingIDs) > 0 {
		t.Errorf("Expected no-op when not due, got %+v", res)
	}
	if s.State() != StateIdle {
		t.Errorf("Expected Idle, got %v", s.State())
	}
	if !s.Board().DailyHabits[0].Done {
		t.Error("Expected habit untouched when not due")
	}
}

func TestEvaluate_PendingHabitsWithholdRollover(t *testing.T) {
	// lastDailyReset 2024-01-01, now 2024-01-03. Yesterday (Jan 2) was a
	// Tuesday; the habit was scheduled Mon-Fri and left incomplete.
	now := at(2024, time.January, 3, 8, 0)
	store := &memStore{board: models.Board{
		DailyHabits: []models.DailyHabit{{
			ID:         "h1",
			Title:      "run",
			Done:       false,
			Streak:     4,
			DaysOfWeek: []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		}},
		Watermarks: models.Watermarks{LastDailyReset: date(2024, time.January, 1), LastWeeklyReset: date(2024, time.January, 1)},
	}}

	s := newTestSession(t, store, now)
	res := s.Evaluate()

	if res.Applied {
		t.Error("Expected rollover withheld while habits are pending")
	}
	if len(res.PendingIDs) != 1 || res.PendingIDs[0] != "h1" {
		t.Errorf("Expected pending [h1], got %v", res.PendingIDs)
	}
	if s.State() != StateAwaitingConfirmation {
		t.Errorf("Expected AwaitingConfirmation, got %v", s.State())
	}

	// No mutation yet: streak and watermark must be untouched.
	if s.Board().DailyHabits[0].Streak != 4 {
		t.Error("Expected streak untouched before confirmation")
	}
	if !s.Board().Watermarks.LastDailyReset.Equal(date(2024, time.January, 1)) {
		t.Error("Expected watermark untouched before confirmation")
	}
}

func TestEvaluate_AutoAppliesWhenNothingPending(t *testing.T) {
	now := at(2024, time.January, 3, 8, 0)
	store := &memStore{board: models.Board{
		DailyHabits: []models.DailyHabit{{
			ID:         "h1",
			Done:       true,
			Streak:     4,
			DaysOfWeek: []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		}},
		Watermarks: models.Watermarks{LastDailyReset: date(2024, time.January, 1), LastWeeklyReset: date(2024, time.January, 1)},
	}}

	s := newTestSession(t, store, now)
	res := s.Evaluate()

	if !res.Applied {
		t.Fatal("Expected auto-apply with no pending habits")
	}
	board := s.Board()
	if board.DailyHabits[0].Streak != 4 {
		t.Errorf("Expected streak preserved, got %d", board.DailyHabits[0].Streak)
	}
	if board.DailyHabits[0].Done {
		t.Error("Expected done cleared")
	}
	if !board.Watermarks.LastDailyReset.Equal(date(2024, time.January, 3)) {
		t.Errorf("Expected watermark advanced to Jan 3, got %v", board.Watermarks.LastDailyReset)
	}
	if s.State() != StateIdle {
		t.Errorf("Expected Idle after apply, got %v", s.State())
	}
	if store.saves == 0 {
		t.Error("Expected the rollover to be persisted")
	}
}

func TestConfirm_AppliesWithheldRollover(t *testing.T) {
	now := at(2024, time.January, 3, 8, 0)
	store := &memStore{board: models.Board{
		DailyHabits: []models.DailyHabit{{
			ID:         "h1",
			Done:       false,
			Streak:     4,
			DaysOfWeek: []time.Weekday{time.Tuesday},
		}},
		Watermarks: models.Watermarks{LastDailyReset: date(2024, time.January, 1), LastWeeklyReset: date(2024, time.January, 1)},
	}}

	s := newTestSession(t, store, now)
	s.Evaluate()
	res := s.Confirm()

	if !res.Applied {
		t.Fatal("Expected confirmation to apply the rollover")
	}
	board := s.Board()
	if board.DailyHabits[0].Streak != 0 {
		t.Errorf("Expected missed habit's streak broken, got %d", board.DailyHabits[0].Streak)
	}
	if !board.Watermarks.LastDailyReset.Equal(date(2024, time.January, 3)) {
		t.Error("Expected daily watermark advanced on confirm")
	}
	if s.State() != StateIdle {
		t.Errorf("Expected Idle after confirm, got %v", s.State())
	}
}

func TestConfirm_WithNothingPendingIsNoOp(t *testing.T) {
	now := at(2024, time.January, 3, 8, 0)
	store := &memStore{board: models.Board{
		Watermarks: models.Watermarks{LastDailyReset: date(2024, time.January, 3), LastWeeklyReset: date(2024, time.January, 1)},
	}}

	s := newTestSession(t, store, now)
	res := s.Confirm()

	if res.Applied {
		t.Error("Expected stale confirmation to be a no-op")
	}
	if store.saves != 0 {
		t.Error("Expected no write from a stale confirmation")
	}
}

func TestApply_WeeklyCountersResetOnlyWhenWeeklyDue(t *testing.T) {
	// Weekly watermark exactly 7 days back: weekly rollover fires.
	now := at(2024, time.January, 8, 7, 0) // Monday
	store := &memStore{board: models.Board{
		IncrementalHabits: []models.IncrementalHabit{
			{ID: "w1", ResetFrequency: models.ResetWeekly, PositiveCount: 4, NegativeCount: 1},
			{ID: "d1", ResetFrequency: models.ResetDaily, PositiveCount: 9, NegativeCount: 2},
		},
		Watermarks: models.Watermarks{LastDailyReset: date(2024, time.January, 7), LastWeeklyReset: date(2024, time.January, 1)},
	}}

	s := newTestSession(t, store, now)
	res := s.Evaluate()

	if !res.Applied {
		t.Fatal("Expected rollover to apply")
	}
	board := s.Board()
	for _, h := range board.IncrementalHabits {
		if h.PositiveCount != 0 || h.NegativeCount != 0 {
			t.Errorf("Expected %s counters zeroed, got %d/%d", h.ID, h.PositiveCount, h.NegativeCount)
		}
	}
	if !board.Watermarks.LastWeeklyReset.Equal(date(2024, time.January, 8)) {
		t.Errorf("Expected weekly watermark at most recent Monday, got %v", board.Watermarks.LastWeeklyReset)
	}
}

func TestApply_WeeklyCountersSurviveDailyOnlyRollover(t *testing.T) {
	now := at(2024, time.January, 4, 7, 0)
	store := &memStore{board: models.Board{
		IncrementalHabits: []models.IncrementalHabit{
			{ID: "w1", ResetFrequency: models.ResetWeekly, PositiveCount: 4, NegativeCount: 1},
		},
		Watermarks: models.Watermarks{LastDailyReset: date(2024, time.January, 3), LastWeeklyReset: date(2024, time.January, 1)},
	}}

	s := newTestSession(t, store, now)
	s.Evaluate()

	h := s.Board().IncrementalHabits[0]
	if h.PositiveCount != 4 || h.NegativeCount != 1 {
		t.Errorf("Expected weekly counters untouched by daily-only rollover, got %d/%d", h.PositiveCount, h.NegativeCount)
	}
	if !s.Board().Watermarks.LastWeeklyReset.Equal(date(2024, time.January, 1)) {
		t.Error("Expected weekly watermark untouched")
	}
}

func TestApply_PurgesStaleTodos(t *testing.T) {
	now := at(2024, time.January, 10, 7, 0)
	stale := now.AddDate(0, 0, -8)
	fresh := now.AddDate(0, 0, -2)
	store := &memStore{board: models.Board{
		Todos: []models.Todo{
			{ID: "stale", DoneDate: &stale},
			{ID: "fresh", DoneDate: &fresh},
			{ID: "open"},
		},
		Watermarks: models.Watermarks{LastDailyReset: date(2024, time.January, 9), LastWeeklyReset: date(2024, time.January, 8)},
	}}

	s := newTestSession(t, store, now)
	s.Evaluate()

	todos := s.Board().Todos
	if len(todos) != 2 {
		t.Fatalf("Expected 2 todos after purge, got %d", len(todos))
	}
	for _, td := range todos {
		if td.ID == "stale" {
			t.Error("Expected stale todo purged during rollover")
		}
	}
}

func TestApply_SaveFailureKeepsMemoryAuthoritative(t *testing.T) {
	now := at(2024, time.January, 3, 8, 0)
	store := &memStore{
		board: models.Board{
			DailyHabits: []models.DailyHabit{{ID: "h1", Done: true, Streak: 1, DaysOfWeek: []time.Weekday{time.Tuesday}}},
			Watermarks:  models.Watermarks{LastDailyReset: date(2024, time.January, 2), LastWeeklyReset: date(2024, time.January, 1)},
		},
		saveErr: errors.New("disk full"),
	}

	s := newTestSession(t, store, now)
	res := s.Evaluate()

	if !res.Applied {
		t.Fatal("Expected rollover applied despite save failure")
	}
	if res.SaveErr == nil {
		t.Error("Expected save failure surfaced in the result")
	}
	if s.Board().DailyHabits[0].Done {
		t.Error("Expected in-memory state to reflect the rollover")
	}
	if s.State() != StateIdle {
		t.Error("Expected machine back in Idle for the rest of the session")
	}
}

func TestEvaluate_SecondCallSameDayIsNoOp(t *testing.T) {
	now := at(2024, time.January, 3, 8, 0)
	store := &memStore{board: models.Board{
		DailyHabits: []models.DailyHabit{{ID: "h1", Done: true, Streak: 2, DaysOfWeek: []time.Weekday{time.Tuesday}}},
		Watermarks:  models.Watermarks{LastDailyReset: date(2024, time.January, 2), LastWeeklyReset: date(2024, time.January, 1)},
	}}

	s := newTestSession(t, store, now)
	first := s.Evaluate()
	second := s.Evaluate()

	if !first.Applied {
		t.Fatal("Expected first evaluation to apply")
	}
	if second.Applied {
		t.Error("Expected second same-day evaluation to be a no-op")
	}
	if s.Board().DailyHabits[0].Streak != 2 {
		t.Error("Expected streak unchanged by retried evaluation")
	}
}

func TestLoad_SeedsWatermarksOnFirstRun(t *testing.T) {
	now := at(2024, time.January, 10, 15, 0) // Wednesday
	store := &memStore{}

	s := newTestSession(t, store, now)

	wm := s.Board().Watermarks
	if !wm.LastDailyReset.Equal(date(2024, time.January, 10)) {
		t.Errorf("Expected daily watermark seeded to today's midnight, got %v", wm.LastDailyReset)
	}
	if !wm.LastWeeklyReset.Equal(date(2024, time.January, 8)) {
		t.Errorf("Expected weekly watermark seeded to last Monday, got %v", wm.LastWeeklyReset)
	}
	if store.saves != 1 {
		t.Errorf("Expected seeded watermarks persisted once, got %d saves", store.saves)
	}

	// Nothing is due immediately after seeding.
	if res := s.Evaluate(); res.Applied || len(res.PendingIDs) > 0 {
		t.Errorf("Expected nothing due right after first-run seeding, got %+v", res)
	}
}
