package cli

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/acavaleiro/habitboard/internal/models"
)

type CounterAddCmd struct {
	Title  string `arg:"" help:"Counter title."`
	Weekly bool   `help:"Reset weekly instead of daily."`
}

func (c *CounterAddCmd) Run(ctx *Context) error {
	res, err := ctx.load()
	if err != nil {
		return err
	}
	reportPending(res)

	freq := models.ResetDaily
	if c.Weekly {
		freq = models.ResetWeekly
	}

	habit := models.IncrementalHabit{
		ID:             uuid.New().String(),
		Title:          c.Title,
		ResetFrequency: freq,
		Order:          len(ctx.Session.Board().IncrementalHabits),
	}

	if err := ctx.Store.AddIncrementalHabit(habit); err != nil {
		return err
	}

	fmt.Printf("Added counter: %s (resets %s)\n", habit.Title, freq)
	return nil
}

type CounterBumpCmd struct {
	ID       string `arg:"" help:"Counter ID (or unique title prefix)."`
	Negative bool   `short:"n" help:"Bump the negative counter instead."`
}

func (c *CounterBumpCmd) Run(ctx *Context) error {
	res, err := ctx.load()
	if err != nil {
		return err
	}
	reportPending(res)

	habit, err := findCounter(ctx.Session.Board().IncrementalHabits, c.ID)
	if err != nil {
		return err
	}

	if c.Negative {
		habit.NegativeCount++
	} else {
		habit.PositiveCount++
	}

	if err := ctx.Store.UpdateIncrementalHabit(habit); err != nil {
		return err
	}

	fmt.Printf("%s: +%d / -%d\n", habit.Title, habit.PositiveCount, habit.NegativeCount)
	return nil
}

type CounterListCmd struct{}

func (c *CounterListCmd) Run(ctx *Context) error {
	res, err := ctx.load()
	if err != nil {
		return err
	}
	reportPending(res)

	counters := ctx.Session.Board().IncrementalHabits
	if len(counters) == 0 {
		fmt.Println("No counters yet. Add one with 'habitboard counter add'.")
		return nil
	}
	for _, h := range counters {
		fmt.Printf("%-30s +%-4d -%-4d resets %-6s (%s)\n", h.Title, h.PositiveCount, h.NegativeCount, h.ResetFrequency, h.ID)
	}
	return nil
}

type CounterDeleteCmd struct {
	ID string `arg:"" help:"Counter ID (or unique title prefix)."`
}

func (c *CounterDeleteCmd) Run(ctx *Context) error {
	res, err := ctx.load()
	if err != nil {
		return err
	}
	reportPending(res)

	habit, err := findCounter(ctx.Session.Board().IncrementalHabits, c.ID)
	if err != nil {
		return err
	}

	if err := ctx.Store.DeleteIncrementalHabit(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted counter: %s\n", habit.Title)
	return nil
}

func findCounter(habits []models.IncrementalHabit, key string) (models.IncrementalHabit, error) {
	for _, h := range habits {
		if h.ID == key {
			return h, nil
		}
	}

	var matches []models.IncrementalHabit
	for _, h := range habits {
		if key != "" && strings.HasPrefix(strings.ToLower(h.Title), strings.ToLower(key)) {
			matches = append(matches, h)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.IncrementalHabit{}, fmt.Errorf("counter not found: %s", key)
	default:
		return models.IncrementalHabit{}, fmt.Errorf("counter %q is ambiguous (%d matches)", key, len(matches))
	}
}
