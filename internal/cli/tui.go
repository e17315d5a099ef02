package cli

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/tasklog/internal/storage"
	"github.com/julianstephens/tasklog/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	if err := ctx.Store.Open(storage.ReadOnly); err != nil {
		return err
	}
	defer ctx.Store.Close()

	p := tea.NewProgram(tui.NewModel(ctx.Store), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
