package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/acavaleiro/habitboard/internal/models"
)

func TestJSONStore_LoadMissingFileStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.json")
	store := NewJSONStore(path)

	if err := store.Load(); err != nil {
		t.Fatalf("Load failed on missing file: %v", err)
	}

	board, err := store.GetBoard()
	if err != nil {
		t.Fatalf("GetBoard failed: %v", err)
	}
	if len(board.DailyHabits) != 0 || len(board.IncrementalHabits) != 0 || len(board.Todos) != 0 {
		t.Error("Expected empty board from missing file")
	}
	if !board.Watermarks.LastDailyReset.IsZero() {
		t.Error("Expected zero watermarks from missing file")
	}
}

func TestJSONStore_MalformedStateStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	store := NewJSONStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("Expected malformed state to degrade, not fail: %v", err)
	}

	board, err := store.GetBoard()
	if err != nil {
		t.Fatalf("GetBoard failed: %v", err)
	}
	if len(board.DailyHabits) != 0 {
		t.Error("Expected empty board from malformed file")
	}
}

func TestJSONStore_SaveBoardRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.json")
	store := NewJSONStore(path)
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}

	done := time.Date(2024, time.January, 2, 18, 0, 0, 0, time.Local)
	board := models.Board{
		DailyHabits: []models.DailyHabit{{
			ID:         "h1",
			Title:      "stretch",
			Done:       true,
			Streak:     3,
			DaysOfWeek: []time.Weekday{time.Monday, time.Wednesday},
		}},
		IncrementalHabits: []models.IncrementalHabit{{
			ID:             "i1",
			Title:          "water",
			ResetFrequency: models.ResetWeekly,
			PositiveCount:  4,
			NegativeCount:  1,
		}},
		Todos: []models.Todo{{ID: "t1", Title: "taxes", DoneDate: &done}},
		Watermarks: models.Watermarks{
			LastDailyReset:  time.Date(2024, time.January, 3, 0, 0, 0, 0, time.Local),
			LastWeeklyReset: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local),
		},
	}
	if err := store.SaveBoard(board); err != nil {
		t.Fatalf("SaveBoard failed: %v", err)
	}

	reopened := NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatal(err)
	}
	got, err := reopened.GetBoard()
	if err != nil {
		t.Fatal(err)
	}

	if len(got.DailyHabits) != 1 || got.DailyHabits[0].Streak != 3 || !got.DailyHabits[0].Done {
		t.Errorf("Daily habit did not round-trip: %+v", got.DailyHabits)
	}
	if len(got.IncrementalHabits) != 1 || got.IncrementalHabits[0].ResetFrequency != models.ResetWeekly {
		t.Errorf("Incremental habit did not round-trip: %+v", got.IncrementalHabits)
	}
	if len(got.Todos) != 1 || got.Todos[0].DoneDate == nil || !got.Todos[0].DoneDate.Equal(done) {
		t.Errorf("Todo did not round-trip: %+v", got.Todos)
	}
	if !got.Watermarks.LastDailyReset.Equal(board.Watermarks.LastDailyReset) {
		t.Errorf("Watermarks did not round-trip: %+v", got.Watermarks)
	}
}

func TestJSONStore_ItemMutations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.json")
	store := NewJSONStore(path)
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}

	habit := models.DailyHabit{ID: "h1", Title: "read", DaysOfWeek: []time.Weekday{time.Sunday}}
	if err := store.AddDailyHabit(habit); err != nil {
		t.Fatalf("AddDailyHabit failed: %v", err)
	}

	habit.Title = "read 20 pages"
	if err := store.UpdateDailyHabit(habit); err != nil {
		t.Fatalf("UpdateDailyHabit failed: %v", err)
	}

	board, _ := store.GetBoard()
	if board.DailyHabits[0].Title != "read 20 pages" {
		t.Errorf("Expected updated title, got %q", board.DailyHabits[0].Title)
	}

	if err := store.DeleteDailyHabit("h1"); err != nil {
		t.Fatalf("DeleteDailyHabit failed: %v", err)
	}
	if err := store.DeleteDailyHabit("h1"); err == nil {
		t.Error("Expected delete of missing habit to error")
	}

	board, _ = store.GetBoard()
	if len(board.DailyHabits) != 0 {
		t.Error("Expected habit removed")
	}
}

func TestJSONStore_InitRefusesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := store.Init(); err == nil {
		t.Error("Expected second Init to refuse existing storage")
	}
}
