package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tasklog/internal/models"
	"github.com/julianstephens/tasklog/internal/storage"
)

type StartCmd struct {
	Number    *int   `arg:"" optional:"" help:"Registry number of the task to start."`
	BreakTime bool   `short:"b" help:"Start a break instead of a working task."`
	Time      string `short:"t" help:"Start time as HHMM or HH:MM (default: now)."`
}

func (c *StartCmd) Run(ctx *Context) error {
	start, err := clockOrNow(c.Time)
	if err != nil {
		return err
	}

	if err := ctx.Store.Open(storage.ReadWrite); err != nil {
		return err
	}
	defer ctx.Store.Close()

	name, err := c.resolveName(ctx.Store)
	if err != nil {
		return err
	}

	// An already-running task ends the moment the new one begins.
	if _, err := closeOpenTask(ctx.Store, start); err != nil {
		return err
	}

	task := models.StartTask(name, start, c.BreakTime)
	if _, err := ctx.Store.AppendTask(task); err != nil {
		return err
	}

	fmt.Printf("%s started at %s\n", task.Name, start.Clock())
	return nil
}

func (c *StartCmd) resolveName(store storage.Provider) (string, error) {
	if c.BreakTime {
		return models.BreakTaskName, nil
	}

	if c.Number != nil {
		name, err := store.NameBySeq(*c.Number)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return "", fmt.Errorf("no task name registered under number %d", *c.Number)
			}
			return "", err
		}
		return name, nil
	}

	// No number given: pick interactively from the registry.
	names, err := store.ListNames()
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", fmt.Errorf("no task names registered, add one with 'tasklog register'")
	}

	options := make([]huh.Option[string], 0, len(names))
	for _, e := range names {
		options = append(options, huh.NewOption(fmt.Sprintf("%d. %s", e.Seq, e.Name), e.Name))
	}

	var name string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Start which task?").
			Options(options...).
			Value(&name),
	))
	if err := form.Run(); err != nil {
		return "", err
	}
	return name, nil
}
