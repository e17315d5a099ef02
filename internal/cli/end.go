package cli

import (
	"fmt"

	"github.com/julianstephens/tasklog/internal/storage"
)

type EndCmd struct {
	Time string `short:"t" help:"End time as HHMM or HH:MM (default: now)."`
}

func (c *EndCmd) Run(ctx *Context) error {
	end, err := clockOrNow(c.Time)
	if err != nil {
		return err
	}

	if err := ctx.Store.Open(storage.ReadWrite); err != nil {
		return err
	}
	defer ctx.Store.Close()

	ended, err := closeOpenTask(ctx.Store, end)
	if err != nil {
		return err
	}
	if ended == nil {
		fmt.Println("No task is running.")
		return nil
	}

	if err := ctx.Store.ResetCurrentTask(); err != nil {
		return err
	}

	fmt.Printf("%s ended at %s (%s)\n", ended.Name, end.Clock(), ended.DurationHHMM())
	return nil
}
