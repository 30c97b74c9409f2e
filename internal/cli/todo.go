package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/acavaleiro/habitboard/internal/constants"
	"github.com/acavaleiro/habitboard/internal/models"
)

type TodoAddCmd struct {
	Title string `arg:"" help:"Todo title."`
	Due   string `help:"Optional due date (YYYY-MM-DD, informational only)."`
}

func (c *TodoAddCmd) Run(ctx *Context) error {
	res, err := ctx.load()
	if err != nil {
		return err
	}
	reportPending(res)

	todo := models.Todo{
		ID:    uuid.New().String(),
		Title: c.Title,
		Order: len(ctx.Session.Board().Todos),
	}

	if c.Due != "" {
		due, err := time.ParseInLocation(constants.DateFormat, c.Due, time.Local)
		if err != nil {
			return fmt.Errorf("invalid due date, use YYYY-MM-DD: %w", err)
		}
		todo.DueDate = &due
	}

	if err := ctx.Store.AddTodo(todo); err != nil {
		return err
	}

	fmt.Printf("Added todo: %s\n", todo.Title)
	return nil
}

type TodoDoneCmd struct {
	ID string `arg:"" help:"Todo ID (or unique title prefix)."`
}

func (c *TodoDoneCmd) Run(ctx *Context) error {
	res, err := ctx.load()
	if err != nil {
		return err
	}
	reportPending(res)

	todo, err := findTodo(ctx.Session.Board().Todos, c.ID)
	if err != nil {
		return err
	}

	now := time.Now()
	todo.DoneDate = &now
	if err := ctx.Store.UpdateTodo(todo); err != nil {
		return err
	}

	fmt.Printf("Completed: %s\n", todo.Title)
	return nil
}

type TodoUndoCmd struct {
	ID string `arg:"" help:"Todo ID (or unique title prefix)."`
}

func (c *TodoUndoCmd) Run(ctx *Context) error {
	res, err := ctx.load()
	if err != nil {
		return err
	}
	reportPending(res)

	todo, err := findTodo(ctx.Session.Board().Todos, c.ID)
	if err != nil {
		return err
	}

	todo.DoneDate = nil
	if err := ctx.Store.UpdateTodo(todo); err != nil {
		return err
	}

	fmt.Printf("Reopened: %s\n", todo.Title)
	return nil
}

type TodoListCmd struct {
	All bool `help:"Include completed todos."`
}

func (c *TodoListCmd) Run(ctx *Context) error {
	res, err := ctx.load()
	if err != nil {
		return err
	}
	reportPending(res)

	todos := ctx.Session.Board().Todos
	shown := 0
	for _, td := range todos {
		if !c.All && td.DoneDate != nil {
			continue
		}
		shown++
		mark := "○"
		if td.DoneDate != nil {
			mark = "✓"
		}
		line := fmt.Sprintf("%s %-30s", mark, td.Title)
		if td.DueDate != nil {
			line += fmt.Sprintf("  due %s", td.DueDate.Format(constants.DateFormat))
		}
		fmt.Printf("%s  (%s)\n", line, td.ID)
	}
	if shown == 0 {
		fmt.Println("No open todos.")
	}
	return nil
}

type TodoDeleteCmd struct {
	ID string `arg:"" help:"Todo ID (or unique title prefix)."`
}

func (c *TodoDeleteCmd) Run(ctx *Context) error {
	res, err := ctx.load()
	if err != nil {
		return err
	}
	reportPending(res)

	todo, err := findTodo(ctx.Session.Board().Todos, c.ID)
	if err != nil {
		return err
	}

	if err := ctx.Store.DeleteTodo(todo.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted todo: %s\n", todo.Title)
	return nil
}

// TodoCleanCmd removes every completed todo immediately instead of waiting
// for the seven-day purge.
type TodoCleanCmd struct{}

func (c *TodoCleanCmd) Run(ctx *Context) error {
	res, err := ctx.load()
	if err != nil {
		return err
	}
	reportPending(res)

	board := ctx.Session.Board()
	kept := make([]models.Todo, 0, len(board.Todos))
	removed := 0
	for _, td := range board.Todos {
		if td.DoneDate != nil {
			removed++
			continue
		}
		kept = append(kept, td)
	}

	if removed == 0 {
		fmt.Println("Nothing to clean.")
		return nil
	}

	board.Todos = kept
	if err := ctx.Store.SaveBoard(board); err != nil {
		return err
	}
	ctx.Session.SetBoard(board)

	fmt.Printf("Removed %d completed todo(s).\n", removed)
	return nil
}

func findTodo(todos []models.Todo, key string) (models.Todo, error) {
	for _, td := range todos {
		if td.ID == key {
			return td, nil
		}
	}

	var matches []models.Todo
	for _, td := range todos {
		if key != "" && strings.HasPrefix(strings.ToLower(td.Title), strings.ToLower(key)) {
			matches = append(matches, td)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.Todo{}, fmt.Errorf("todo not found: %s", key)
	default:
		return models.Todo{}, fmt.Errorf("todo %q is ambiguous (%d matches)", key, len(matches))
	}
}
