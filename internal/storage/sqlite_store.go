package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/acavaleiro/habitboard/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS daily_habits (
	id           TEXT PRIMARY KEY,
	title        TEXT NOT NULL,
	done         INTEGER NOT NULL DEFAULT 0,
	streak       INTEGER NOT NULL DEFAULT 0,
	days_of_week TEXT NOT NULL DEFAULT '[]',
	sort_order   INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS incremental_habits (
	id              TEXT PRIMARY KEY,
	title           TEXT NOT NULL,
	reset_frequency TEXT NOT NULL DEFAULT 'daily',
	positive_count  INTEGER NOT NULL DEFAULT 0,
	negative_count  INTEGER NOT NULL DEFAULT 0,
	sort_order      INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS todos (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	done_date  TEXT,
	due_date   TEXT,
	sort_order INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS watermarks (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	return s.open()
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return s.open()
}

func (s *SQLiteStore) open() error {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}
	s.db = db
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetBoard() (models.Board, error) {
	var board models.Board
	if s.db == nil {
		return board, fmt.Errorf("storage not loaded")
	}

	rows, err := s.db.Query("SELECT id, title, done, streak, days_of_week, sort_order FROM daily_habits ORDER BY sort_order")
	if err != nil {
		return board, err
	}
	defer rows.Close()
	for rows.Next() {
		var h models.DailyHabit
		var done int
		var days string
		if err := rows.Scan(&h.ID, &h.Title, &done, &h.Streak, &days, &h.Order); err != nil {
			return board, err
		}
		h.Done = done != 0
		if err := json.Unmarshal([]byte(days), &h.DaysOfWeek); err != nil {
			// A single corrupt weekday set should not take the board down.
			h.DaysOfWeek = nil
		}
		board.DailyHabits = append(board.DailyHabits, h)
	}
	if err := rows.Err(); err != nil {
		return board, err
	}

	incRows, err := s.db.Query("SELECT id, title, reset_frequency, positive_count, negative_count, sort_order FROM incremental_habits ORDER BY sort_order")
	if err != nil {
		return board, err
	}
	defer incRows.Close()
	for incRows.Next() {
		var h models.IncrementalHabit
		if err := incRows.Scan(&h.ID, &h.Title, &h.ResetFrequency, &h.PositiveCount, &h.NegativeCount, &h.Order); err != nil {
			return board, err
		}
		board.IncrementalHabits = append(board.IncrementalHabits, h)
	}
	if err := incRows.Err(); err != nil {
		return board, err
	}

	todoRows, err := s.db.Query("SELECT id, title, done_date, due_date, sort_order FROM todos ORDER BY sort_order")
	if err != nil {
		return board, err
	}
	defer todoRows.Close()
	for todoRows.Next() {
		var td models.Todo
		var doneDate, dueDate sql.NullString
		if err := todoRows.Scan(&td.ID, &td.Title, &doneDate, &dueDate, &td.Order); err != nil {
			return board, err
		}
		td.DoneDate = parseNullTime(doneDate)
		td.DueDate = parseNullTime(dueDate)
		board.Todos = append(board.Todos, td)
	}
	if err := todoRows.Err(); err != nil {
		return board, err
	}

	board.Watermarks.LastDailyReset = s.getWatermark("last_daily_reset")
	board.Watermarks.LastWeeklyReset = s.getWatermark("last_weekly_reset")

	return board, nil
}

// SaveBoard replaces the whole persisted collection plus watermarks in a
// single transaction.
func (s *SQLiteStore) SaveBoard(board models.Board) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"daily_habits", "incremental_habits", "todos"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}

	for _, h := range board.DailyHabits {
		days, err := json.Marshal(h.DaysOfWeek)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(
			"INSERT INTO daily_habits (id, title, done, streak, days_of_week, sort_order) VALUES (?, ?, ?, ?, ?, ?)",
			h.ID, h.Title, boolToInt(h.Done), h.Streak, string(days), h.Order,
		); err != nil {
			return err
		}
	}

	for _, h := range board.IncrementalHabits {
		if _, err := tx.Exec(
			"INSERT INTO incremental_habits (id, title, reset_frequency, positive_count, negative_count, sort_order) VALUES (?, ?, ?, ?, ?, ?)",
			h.ID, h.Title, string(h.ResetFrequency), h.PositiveCount, h.NegativeCount, h.Order,
		); err != nil {
			return err
		}
	}

	for _, td := range board.Todos {
		if _, err := tx.Exec(
			"INSERT INTO todos (id, title, done_date, due_date, sort_order) VALUES (?, ?, ?, ?, ?)",
			td.ID, td.Title, formatNullTime(td.DoneDate), formatNullTime(td.DueDate), td.Order,
		); err != nil {
			return err
		}
	}

	if err := saveWatermark(tx, "last_daily_reset", board.Watermarks.LastDailyReset); err != nil {
		return err
	}
	if err := saveWatermark(tx, "last_weekly_reset", board.Watermarks.LastWeeklyReset); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStore) getWatermark(key string) time.Time {
	var value string
	err := s.db.QueryRow("SELECT value FROM watermarks WHERE key = ?", key).Scan(&value)
	if err != nil {
		return time.Time{}
	}
	t, err := time.ParseInLocation(time.RFC3339, value, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

func saveWatermark(tx *sql.Tx, key string, t time.Time) error {
	if t.IsZero() {
		return nil
	}
	_, err := tx.Exec(
		"INSERT INTO watermarks (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, t.Format(time.RFC3339),
	)
	return err
}

func (s *SQLiteStore) AddDailyHabit(habit models.DailyHabit) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	days, err := json.Marshal(habit.DaysOfWeek)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		"INSERT INTO daily_habits (id, title, done, streak, days_of_week, sort_order) VALUES (?, ?, ?, ?, ?, ?)",
		habit.ID, habit.Title, boolToInt(habit.Done), habit.Streak, string(days), habit.Order,
	)
	return err
}

func (s *SQLiteStore) UpdateDailyHabit(habit models.DailyHabit) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	days, err := json.Marshal(habit.DaysOfWeek)
	if err != nil {
		return err
	}
	res, err := s.db.Exec(
		"UPDATE daily_habits SET title = ?, done = ?, streak = ?, days_of_week = ?, sort_order = ? WHERE id = ?",
		habit.Title, boolToInt(habit.Done), habit.Streak, string(days), habit.Order, habit.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, "habit", habit.ID)
}

func (s *SQLiteStore) DeleteDailyHabit(id string) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	res, err := s.db.Exec("DELETE FROM daily_habits WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res, "habit", id)
}

func (s *SQLiteStore) AddIncrementalHabit(habit models.IncrementalHabit) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	_, err := s.db.Exec(
		"INSERT INTO incremental_habits (id, title, reset_frequency, positive_count, negative_count, sort_order) VALUES (?, ?, ?, ?, ?, ?)",
		habit.ID, habit.Title, string(habit.ResetFrequency), habit.PositiveCount, habit.NegativeCount, habit.Order,
	)
	return err
}

func (s *SQLiteStore) UpdateIncrementalHabit(habit models.IncrementalHabit) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	res, err := s.db.Exec(
		"UPDATE incremental_habits SET title = ?, reset_frequency = ?, positive_count = ?, negative_count = ?, sort_order = ? WHERE id = ?",
		habit.Title, string(habit.ResetFrequency), habit.PositiveCount, habit.NegativeCount, habit.Order, habit.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, "habit", habit.ID)
}

func (s *SQLiteStore) DeleteIncrementalHabit(id string) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	res, err := s.db.Exec("DELETE FROM incremental_habits WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res, "habit", id)
}

func (s *SQLiteStore) AddTodo(todo models.Todo) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	_, err := s.db.Exec(
		"INSERT INTO todos (id, title, done_date, due_date, sort_order) VALUES (?, ?, ?, ?, ?)",
		todo.ID, todo.Title, formatNullTime(todo.DoneDate), formatNullTime(todo.DueDate), todo.Order,
	)
	return err
}

func (s *SQLiteStore) UpdateTodo(todo models.Todo) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	res, err := s.db.Exec(
		"UPDATE todos SET title = ?, done_date = ?, due_date = ?, sort_order = ? WHERE id = ?",
		todo.Title, formatNullTime(todo.DoneDate), formatNullTime(todo.DueDate), todo.Order, todo.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, "todo", todo.ID)
}

func (s *SQLiteStore) DeleteTodo(id string) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	res, err := s.db.Exec("DELETE FROM todos WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res, "todo", id)
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func parseNullTime(v sql.NullString) *time.Time {
	if !v.Valid || v.String == "" {
		return nil
	}
	t, err := time.ParseInLocation(time.RFC3339, v.String, time.Local)
	if err != nil {
		return nil
	}
	return &t
}

func formatNullTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}

func requireRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s not found: %s", kind, id)
	}
	return nil
}
