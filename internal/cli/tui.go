package cli

import (
	tea "github.com/charmbracelet/bubbletea"

	"studyflow/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	model := tui.NewModel(ctx.Store, ctx.Scheduler)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
