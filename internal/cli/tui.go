package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/acavaleiro/habitboard/internal/scheduler"
	"github.com/acavaleiro/habitboard/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	res, err := ctx.load()
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewModel(ctx.Store, ctx.Session, res), tea.WithAltScreen())

	// Keep a midnight timer running for the lifetime of the TUI so a day
	// boundary is caught even when the program stays open overnight.
	timer := scheduler.NewMidnight(func() {
		p.Send(tui.MidnightMsg{})
	})
	timer.Start()
	defer timer.Stop()

	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
	return nil
}
