package cli

import (
	"fmt"

	"github.com/acavaleiro/habitboard/internal/validation"
)

type DoctorCmd struct{}

func (c *DoctorCmd) Run(ctx *Context) error {
	res, err := ctx.load()
	if err != nil {
		return err
	}
	reportPending(res)

	result := validation.New().ValidateBoard(ctx.Session.Board())
	if !result.HasConflicts() {
		fmt.Println("Board is healthy.")
		return nil
	}

	fmt.Printf("Found %d issue(s):\n", len(result.Conflicts))
	for _, conflict := range result.Conflicts {
		fmt.Printf("  [%s] %s\n", conflict.Type, conflict.Message)
	}
	return fmt.Errorf("board has %d validation issue(s)", len(result.Conflicts))
}
