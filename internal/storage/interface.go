package storage

import "github.com/acavaleiro/habitboard/internal/models"

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Board
	GetBoard() (models.Board, error)
	SaveBoard(models.Board) error

	// Daily habits
	AddDailyHabit(models.DailyHabit) error
	UpdateDailyHabit(models.DailyHabit) error
	DeleteDailyHabit(id string) error

	// Incremental habits
	AddIncrementalHabit(models.IncrementalHabit) error
	UpdateIncrementalHabit(models.IncrementalHabit) error
	DeleteIncrementalHabit(id string) error

	// Todos
	AddTodo(models.Todo) error
	UpdateTodo(models.Todo) error
	DeleteTodo(id string) error

	// Utils
	GetConfigPath() string
}
