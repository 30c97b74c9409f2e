package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/acavaleiro/habitboard/internal/cli"
	"github.com/acavaleiro/habitboard/internal/logger"
	"github.com/acavaleiro/habitboard/internal/rollover"
	"github.com/acavaleiro/habitboard/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage file path (.json for a JSON store, anything else for SQLite)." type:"path" default:"~/.config/habitboard/habitboard.db"`
	Debug   bool   `help:"Enable debug logging."`

	Init cli.InitCmd `cmd:"" help:"Initialize habitboard storage."`
	Tui  cli.TuiCmd  `cmd:"" help:"Launch the interactive board." default:"1"`

	Habit struct {
		Add      cli.HabitAddCmd      `cmd:"" help:"Add a daily habit."`
		Done     cli.HabitDoneCmd     `cmd:"" help:"Check off a habit for today."`
		Undo     cli.HabitUndoCmd     `cmd:"" help:"Uncheck a habit."`
		List     cli.HabitListCmd     `cmd:"" help:"List habits."`
		Delete   cli.HabitDeleteCmd   `cmd:"" help:"Delete a habit."`
		Schedule cli.HabitScheduleCmd `cmd:"" help:"Change a habit's scheduled weekdays."`
		Move     cli.HabitMoveCmd     `cmd:"" help:"Reorder a habit."`
	} `cmd:"" help:"Manage daily habits."`

	Counter struct {
		Add    cli.CounterAddCmd    `cmd:"" help:"Add an incremental counter."`
		Bump   cli.CounterBumpCmd   `cmd:"" help:"Increment a counter."`
		List   cli.CounterListCmd   `cmd:"" help:"List counters."`
		Delete cli.CounterDeleteCmd `cmd:"" help:"Delete a counter."`
		Move   cli.CounterMoveCmd   `cmd:"" help:"Reorder a counter."`
	} `cmd:"" help:"Manage incremental counters."`

	Todo struct {
		Add    cli.TodoAddCmd    `cmd:"" help:"Add a todo."`
		Done   cli.TodoDoneCmd   `cmd:"" help:"Complete a todo."`
		Undo   cli.TodoUndoCmd   `cmd:"" help:"Reopen a completed todo."`
		List   cli.TodoListCmd   `cmd:"" help:"List todos."`
		Delete cli.TodoDeleteCmd `cmd:"" help:"Delete a todo."`
		Clean  cli.TodoCleanCmd  `cmd:"" help:"Remove all completed todos now."`
		Move   cli.TodoMoveCmd   `cmd:"" help:"Reorder a todo."`
	} `cmd:"" help:"Manage todos."`

	Rollover struct {
		Status  cli.RolloverStatusCmd  `cmd:"" help:"Show watermarks and pending state." default:"1"`
		Confirm cli.RolloverConfirmCmd `cmd:"" help:"Acknowledge unfinished habits and start the new day."`
	} `cmd:"" help:"Inspect and confirm day/week rollovers."`

	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Snapshot the storage file." default:"1"`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore the storage file from a backup."`
	} `cmd:"" help:"Back up and restore board storage."`

	Doctor cli.DoctorCmd `cmd:"" help:"Check the board for inconsistencies."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("habitboard"),
		kong.Description("Personal habit, counter and todo board with daily/weekly rollovers"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.3.0"},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}

	// Storage flavor follows the file extension, like the config path itself.
	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}
	defer store.Close()

	appCtx := &cli.Context{
		Store:   store,
		Session: rollover.NewSession(store),
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
