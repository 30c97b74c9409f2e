package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/acavaleiro/habitboard/internal/models"
)

type HabitAddCmd struct {
	Title    string `arg:"" help:"Habit title."`
	Weekdays string `short:"w" help:"Comma-separated scheduled weekdays (names or 0-6). Defaults to every day."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	res, err := ctx.load()
	if err != nil {
		return err
	}
	reportPending(res)

	days := everyDay()
	if c.Weekdays != "" {
		days, err = parseWeekdays(c.Weekdays)
		if err != nil {
			return err
		}
	}

	habit := models.DailyHabit{
		ID:         uuid.New().String(),
		Title:      c.Title,
		DaysOfWeek: days,
		Order:      len(ctx.Session.Board().DailyHabits),
	}

	if err := ctx.Store.AddDailyHabit(habit); err != nil {
		return err
	}

	fmt.Printf("Added habit: %s (%s)\n", habit.Title, formatWeekdays(habit.DaysOfWeek))
	return nil
}

type HabitDoneCmd struct {
	ID string `arg:"" help:"Habit ID (or unique title prefix)."`
}

func (c *HabitDoneCmd) Run(ctx *Context) error {
	res, err := ctx.load()
	if err != nil {
		return err
	}
	reportPending(res)

	habit, err := findDailyHabit(ctx.Session.Board().DailyHabits, c.ID)
	if err != nil {
		return err
	}

	checked := habit.CheckOff()
	if err := ctx.Store.UpdateDailyHabit(checked); err != nil {
		return err
	}

	fmt.Printf("Done: %s (streak %d)\n", checked.Title, checked.Streak)
	return nil
}

type HabitUndoCmd struct {
	ID string `arg:"" help:"Habit ID (or unique title prefix)."`
}

func (c *HabitUndoCmd) Run(ctx *Context) error {
	res, err := ctx.load()
	if err != nil {
		return err
	}
	reportPending(res)

	habit, err := findDailyHabit(ctx.Session.Board().DailyHabits, c.ID)
	if err != nil {
		return err
	}

	unchecked := habit.Uncheck()
	if err := ctx.Store.UpdateDailyHabit(unchecked); err != nil {
		return err
	}

	fmt.Printf("Unchecked: %s (streak %d)\n", unchecked.Title, unchecked.Streak)
	return nil
}

type HabitListCmd struct {
	All bool `help:"Show all habits, not just today's."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	res, err := ctx.load()
	if err != nil {
		return err
	}
	reportPending(res)

	habits := ctx.Session.Board().DailyHabits
	today := time.Now().Weekday()

	shown := 0
	for _, h := range habits {
		if !c.All && !h.ScheduledOn(today) {
			continue
		}
		shown++
		mark := "○"
		if h.Done {
			mark = "✓"
		}
		fmt.Printf("%s %-30s streak %-4d %s  (%s)\n", mark, h.Title, h.Streak, formatWeekdays(h.DaysOfWeek), h.ID)
	}

	if shown == 0 {
		if c.All {
			fmt.Println("No habits yet. Add one with 'habitboard habit add'.")
		} else {
			fmt.Println("No habits scheduled today. Use --all to see everything.")
		}
	}
	return nil
}

type HabitDeleteCmd struct {
	ID string `arg:"" help:"Habit ID (or unique title prefix)."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	res, err := ctx.load()
	if err != nil {
		return err
	}
	reportPending(res)

	habit, err := findDailyHabit(ctx.Session.Board().DailyHabits, c.ID)
	if err != nil {
		return err
	}

	if err := ctx.Store.DeleteDailyHabit(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted habit: %s\n", habit.Title)
	return nil
}

type HabitScheduleCmd struct {
	ID       string `arg:"" help:"Habit ID (or unique title prefix)."`
	Weekdays string `arg:"" help:"New comma-separated scheduled weekdays."`
}

func (c *HabitScheduleCmd) Run(ctx *Context) error {
	res, err := ctx.load()
	if err != nil {
		return err
	}
	reportPending(res)

	habit, err := findDailyHabit(ctx.Session.Board().DailyHabits, c.ID)
	if err != nil {
		return err
	}

	days, err := parseWeekdays(c.Weekdays)
	if err != nil {
		return err
	}
	habit.DaysOfWeek = days

	if err := ctx.Store.UpdateDailyHabit(habit); err != nil {
		return err
	}

	fmt.Printf("Rescheduled %s: %s\n", habit.Title, formatWeekdays(days))
	return nil
}

// findDailyHabit resolves a habit by exact ID first, then by unique title
// prefix so the CLI stays usable without copy-pasting UUIDs.
func findDailyHabit(habits []models.DailyHabit, key string) (models.DailyHabit, error) {
	for _, h := range habits {
		if h.ID == key {
			return h, nil
		}
	}

	var matches []models.DailyHabit
	for _, h := range habits {
		if key != "" && strings.HasPrefix(strings.ToLower(h.Title), strings.ToLower(key)) {
			matches = append(matches, h)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.DailyHabit{}, fmt.Errorf("habit not found: %s", key)
	default:
		return models.DailyHabit{}, fmt.Errorf("habit %q is ambiguous (%d matches)", key, len(matches))
	}
}
