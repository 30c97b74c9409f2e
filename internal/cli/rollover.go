package cli

import (
	"fmt"

	"github.com/acavaleiro/habitboard/internal/constants"
	"github.com/acavaleiro/habitboard/internal/models"
)

// RolloverStatusCmd re-runs the due-ness evaluation and reports what
// happened, including the watermarks and any withheld reset.
type RolloverStatusCmd struct{}

func (c *RolloverStatusCmd) Run(ctx *Context) error {
	res, err := ctx.load()
	if err != nil {
		return err
	}

	board := ctx.Session.Board()
	fmt.Printf("Last daily reset:  %s\n", board.Watermarks.LastDailyReset.Format(constants.DateFormat))
	fmt.Printf("Last weekly reset: %s\n", board.Watermarks.LastWeeklyReset.Format(constants.DateFormat))

	switch {
	case res.Applied:
		fmt.Println("Rollover applied just now.")
	case len(res.PendingIDs) > 0:
		fmt.Printf("Rollover withheld: %d habit(s) from yesterday unfinished:\n", len(res.PendingIDs))
		for _, id := range res.PendingIDs {
			fmt.Printf("  - %s\n", habitTitle(board.DailyHabits, id))
		}
		fmt.Println("Run 'habitboard rollover confirm' to start the new day.")
	default:
		fmt.Println("Nothing due.")
	}
	return nil
}

type RolloverConfirmCmd struct{}

func (c *RolloverConfirmCmd) Run(ctx *Context) error {
	res, err := ctx.load()
	if err != nil {
		return err
	}

	if res.Applied {
		fmt.Println("Rollover applied; nothing was pending.")
		return nil
	}
	if len(res.PendingIDs) == 0 {
		fmt.Println("Nothing to confirm.")
		return nil
	}

	confirmed := ctx.Session.Confirm()
	if confirmed.SaveErr != nil {
		fmt.Printf("Warning: rollover applied but could not be saved: %v\n", confirmed.SaveErr)
	}
	if confirmed.Applied {
		fmt.Println("New day started. Unfinished habits lost their streaks.")
	}
	return nil
}

func habitTitle(habits []models.DailyHabit, id string) string {
	for _, h := range habits {
		if h.ID == id {
			return h.Title
		}
	}
	return id
}
