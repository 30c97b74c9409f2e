package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/acavaleiro/habitboard/internal/models"
)

func TestSQLiteStore_SaveBoardRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.db")
	store := NewSQLiteStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer store.Close()

	done := time.Date(2024, time.January, 2, 18, 0, 0, 0, time.Local)
	board := models.Board{
		DailyHabits: []models.DailyHabit{{
			ID:         "h1",
			Title:      "stretch",
			Done:       true,
			Streak:     3,
			DaysOfWeek: []time.Weekday{time.Monday, time.Wednesday},
			Order:      1,
		}},
		IncrementalHabits: []models.IncrementalHabit{{
			ID:             "i1",
			Title:          "water",
			ResetFrequency: models.ResetWeekly,
			PositiveCount:  4,
			NegativeCount:  1,
		}},
		Todos: []models.Todo{
			{ID: "t1", Title: "taxes", DoneDate: &done},
			{ID: "t2", Title: "open item"},
		},
		Watermarks: models.Watermarks{
			LastDailyReset:  time.Date(2024, time.January, 3, 0, 0, 0, 0, time.Local),
			LastWeeklyReset: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local),
		},
	}
	if err := store.SaveBoard(board); err != nil {
		t.Fatalf("SaveBoard failed: %v", err)
	}

	got, err := store.GetBoard()
	if err != nil {
		t.Fatalf("GetBoard failed: %v", err)
	}

	if len(got.DailyHabits) != 1 {
		t.Fatalf("Expected 1 daily habit, got %d", len(got.DailyHabits))
	}
	h := got.DailyHabits[0]
	if !h.Done || h.Streak != 3 || len(h.DaysOfWeek) != 2 {
		t.Errorf("Daily habit did not round-trip: %+v", h)
	}

	if len(got.Todos) != 2 {
		t.Fatalf("Expected 2 todos, got %d", len(got.Todos))
	}
	if got.Todos[0].DoneDate == nil || !got.Todos[0].DoneDate.Equal(done) {
		t.Errorf("Todo done date did not round-trip: %+v", got.Todos[0])
	}
	if got.Todos[1].DoneDate != nil {
		t.Error("Expected open todo to keep a nil done date")
	}

	if !got.Watermarks.LastDailyReset.Equal(board.Watermarks.LastDailyReset) {
		t.Errorf("Watermarks did not round-trip: %+v", got.Watermarks)
	}
}

func TestSQLiteStore_SaveBoardReplacesPreviousState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.db")
	store := NewSQLiteStore(path)
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	first := models.Board{
		Todos: []models.Todo{{ID: "t1", Title: "one"}, {ID: "t2", Title: "two"}},
	}
	if err := store.SaveBoard(first); err != nil {
		t.Fatal(err)
	}

	second := models.Board{
		Todos: []models.Todo{{ID: "t2", Title: "two"}},
	}
	if err := store.SaveBoard(second); err != nil {
		t.Fatal(err)
	}

	got, err := store.GetBoard()
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Todos) != 1 || got.Todos[0].ID != "t2" {
		t.Errorf("Expected SaveBoard to replace prior state, got %+v", got.Todos)
	}
}

func TestSQLiteStore_ItemMutations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.db")
	store := NewSQLiteStore(path)
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	habit := models.IncrementalHabit{ID: "i1", Title: "pages", ResetFrequency: models.ResetDaily}
	if err := store.AddIncrementalHabit(habit); err != nil {
		t.Fatalf("AddIncrementalHabit failed: %v", err)
	}

	habit.PositiveCount = 12
	if err := store.UpdateIncrementalHabit(habit); err != nil {
		t.Fatalf("UpdateIncrementalHabit failed: %v", err)
	}

	board, err := store.GetBoard()
	if err != nil {
		t.Fatal(err)
	}
	if board.IncrementalHabits[0].PositiveCount != 12 {
		t.Errorf("Expected updated count, got %d", board.IncrementalHabits[0].PositiveCount)
	}

	if err := store.DeleteIncrementalHabit("i1"); err != nil {
		t.Fatal(err)
	}
	if err := store.UpdateIncrementalHabit(habit); err == nil {
		t.Error("Expected update of missing habit to error")
	}
}
