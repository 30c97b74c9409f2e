package cli

import (
	"fmt"

	"github.com/acavaleiro/habitboard/internal/models"
)

type HabitMoveCmd struct {
	ID       string `arg:"" help:"Habit ID (or unique title prefix)."`
	Position int    `arg:"" help:"New 1-based position in the list."`
}

func (c *HabitMoveCmd) Run(ctx *Context) error {
	res, err := ctx.load()
	if err != nil {
		return err
	}
	reportPending(res)

	board := ctx.Session.Board()
	habit, err := findDailyHabit(board.DailyHabits, c.ID)
	if err != nil {
		return err
	}

	board.DailyHabits = moveDailyHabit(board.DailyHabits, habit.ID, c.Position)
	if err := ctx.Store.SaveBoard(board); err != nil {
		return err
	}
	ctx.Session.SetBoard(board)

	fmt.Printf("Moved %s to position %d\n", habit.Title, clampPosition(c.Position, len(board.DailyHabits)))
	return nil
}

type CounterMoveCmd struct {
	ID       string `arg:"" help:"Counter ID (or unique title prefix)."`
	Position int    `arg:"" help:"New 1-based position in the list."`
}

func (c *CounterMoveCmd) Run(ctx *Context) error {
	res, err := ctx.load()
	if err != nil {
		return err
	}
	reportPending(res)

	board := ctx.Session.Board()
	habit, err := findCounter(board.IncrementalHabits, c.ID)
	if err != nil {
		return err
	}

	board.IncrementalHabits = moveIncrementalHabit(board.IncrementalHabits, habit.ID, c.Position)
	if err := ctx.Store.SaveBoard(board); err != nil {
		return err
	}
	ctx.Session.SetBoard(board)

	fmt.Printf("Moved %s to position %d\n", habit.Title, clampPosition(c.Position, len(board.IncrementalHabits)))
	return nil
}

type TodoMoveCmd struct {
	ID       string `arg:"" help:"Todo ID (or unique title prefix)."`
	Position int    `arg:"" help:"New 1-based position in the list."`
}

func (c *TodoMoveCmd) Run(ctx *Context) error {
	res, err := ctx.load()
	if err != nil {
		return err
	}
	reportPending(res)

	board := ctx.Session.Board()
	todo, err := findTodo(board.Todos, c.ID)
	if err != nil {
		return err
	}

	board.Todos = moveTodo(board.Todos, todo.ID, c.Position)
	if err := ctx.Store.SaveBoard(board); err != nil {
		return err
	}
	ctx.Session.SetBoard(board)

	fmt.Printf("Moved %s to position %d\n", todo.Title, clampPosition(c.Position, len(board.Todos)))
	return nil
}

// clampPosition normalizes a 1-based position into [1, n].
func clampPosition(pos, n int) int {
	if pos < 1 {
		return 1
	}
	if pos > n {
		return n
	}
	return pos
}

func moveDailyHabit(habits []models.DailyHabit, id string, position int) []models.DailyHabit {
	from := -1
	for i, h := range habits {
		if h.ID == id {
			from = i
			break
		}
	}
	if from < 0 {
		return habits
	}
	to := clampPosition(position, len(habits)) - 1

	moved := habits[from]
	habits = append(habits[:from], habits[from+1:]...)
	habits = append(habits[:to], append([]models.DailyHabit{moved}, habits[to:]...)...)
	for i := range habits {
		habits[i].Order = i
	}
	return habits
}

func moveIncrementalHabit(habits []models.IncrementalHabit, id string, position int) []models.IncrementalHabit {
	from := -1
	for i, h := range habits {
		if h.ID == id {
			from = i
			break
		}
	}
	if from < 0 {
		return habits
	}
	to := clampPosition(position, len(habits)) - 1

	moved := habits[from]
	habits = append(habits[:from], habits[from+1:]...)
	habits = append(habits[:to], append([]models.IncrementalHabit{moved}, habits[to:]...)...)
	for i := range habits {
		habits[i].Order = i
	}
	return habits
}

func moveTodo(todos []models.Todo, id string, position int) []models.Todo {
	from := -1
	for i, td := range todos {
		if td.ID == id {
			from = i
			break
		}
	}
	if from < 0 {
		return todos
	}
	to := clampPosition(position, len(todos)) - 1

	moved := todos[from]
	todos = append(todos[:from], todos[from+1:]...)
	todos = append(todos[:to], append([]models.Todo{moved}, todos[to:]...)...)
	for i := range todos {
		todos[i].Order = i
	}
	return todos
}
