package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/acavaleiro/habitboard/internal/logger"
	"github.com/acavaleiro/habitboard/internal/models"
)

type record struct {
	Version int          `json:"version"`
	Board   models.Board `json:"board"`
}

type JSONStore struct {
	path   string
	record *record
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.record = &record{Version: 1}
	return s.save()
}

// Load reads the persisted board. Missing or malformed state is never fatal:
// the store degrades to an empty board rather than refusing to start.
func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("no persisted board, starting fresh", "path", s.path)
			s.record = &record{Version: 1}
			return nil
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.record = &record{}
	if err := json.Unmarshal(data, s.record); err != nil {
		logger.Warn("persisted board is malformed, starting fresh", "path", s.path, "err", err)
		s.record = &record{Version: 1}
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(s.record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetBoard() (models.Board, error) {
	if s.record == nil {
		return models.Board{}, fmt.Errorf("storage not loaded")
	}
	return s.record.Board, nil
}

// SaveBoard writes the whole collection plus watermarks as one record.
// Partial writes are not a supported outcome.
func (s *JSONStore) SaveBoard(board models.Board) error {
	if s.record == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.record.Board = board
	return s.save()
}

func (s *JSONStore) AddDailyHabit(habit models.DailyHabit) error {
	if s.record == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.record.Board.DailyHabits = append(s.record.Board.DailyHabits, habit)
	return s.save()
}

func (s *JSONStore) UpdateDailyHabit(habit models.DailyHabit) error {
	if s.record == nil {
		return fmt.Errorf("storage not loaded")
	}
	for i, h := range s.record.Board.DailyHabits {
		if h.ID == habit.ID {
			s.record.Board.DailyHabits[i] = habit
			return s.save()
		}
	}
	return fmt.Errorf("habit not found: %s", habit.ID)
}

func (s *JSONStore) DeleteDailyHabit(id string) error {
	if s.record == nil {
		return fmt.Errorf("storage not loaded")
	}
	for i, h := range s.record.Board.DailyHabits {
		if h.ID == id {
			s.record.Board.DailyHabits = append(s.record.Board.DailyHabits[:i], s.record.Board.DailyHabits[i+1:]...)
			return s.save()
		}
	}
	return fmt.Errorf("habit not found: %s", id)
}

func (s *JSONStore) AddIncrementalHabit(habit models.IncrementalHabit) error {
	if s.record == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.record.Board.IncrementalHabits = append(s.record.Board.IncrementalHabits, habit)
	return s.save()
}

func (s *JSONStore) UpdateIncrementalHabit(habit models.IncrementalHabit) error {
	if s.record == nil {
		return fmt.Errorf("storage not loaded")
	}
	for i, h := range s.record.Board.IncrementalHabits {
		if h.ID == habit.ID {
			s.record.Board.IncrementalHabits[i] = habit
			return s.save()
		}
	}
	return fmt.Errorf("habit not found: %s", habit.ID)
}

func (s *JSONStore) DeleteIncrementalHabit(id string) error {
	if s.record == nil {
		return fmt.Errorf("storage not loaded")
	}
	for i, h := range s.record.Board.IncrementalHabits {
		if h.ID == id {
			s.record.Board.IncrementalHabits = append(s.record.Board.IncrementalHabits[:i], s.record.Board.IncrementalHabits[i+1:]...)
			return s.save()
		}
	}
	return fmt.Errorf("habit not found: %s", id)
}

func (s *JSONStore) AddTodo(todo models.Todo) error {
	if s.record == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.record.Board.Todos = append(s.record.Board.Todos, todo)
	return s.save()
}

func (s *JSONStore) UpdateTodo(todo models.Todo) error {
	if s.record == nil {
		return fmt.Errorf("storage not loaded")
	}
	for i, td := range s.record.Board.Todos {
		if td.ID == todo.ID {
			s.record.Board.Todos[i] = todo
			return s.save()
		}
	}
	return fmt.Errorf("todo not found: %s", todo.ID)
}

func (s *JSONStore) DeleteTodo(id string) error {
	if s.record == nil {
		return fmt.Errorf("storage not loaded")
	}
	for i, td := range s.record.Board.Todos {
		if td.ID == id {
			s.record.Board.Todos = append(s.record.Board.Todos[:i], s.record.Board.Todos[i+1:]...)
			return s.save()
		}
	}
	return fmt.Errorf("todo not found: %s", id)
}

// GetConfigPath returns the path to the underlying storage file.
//
// Concurrency note:
//   - JSONStore is not safe for concurrent use by multiple goroutines without
//     external synchronization.
//   - Running multiple habitboard processes against the same storage path at
//     the same time is not supported and may lead to data loss.
func (s *JSONStore) GetConfigPath() string {
	return s.path
}
