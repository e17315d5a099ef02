package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tasklog/internal/models"
	"github.com/julianstephens/tasklog/internal/storage"
)

type DeleteCmd struct {
	Number int  `arg:"" help:"Today's task number to delete."`
	Yes    bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *DeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Open(storage.ReadWrite); err != nil {
		return err
	}
	defer ctx.Store.Close()

	id, err := ctx.Store.TaskIDBySeq(c.Number, models.Today())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no task %d logged today", c.Number)
		}
		return err
	}
	task, err := ctx.Store.GetTask(id)
	if err != nil {
		return err
	}

	if !c.Yes {
		confirmed := false
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete task %d (%s, started %s)?", c.Number, task.Name, task.Start.Clock())).
				Value(&confirmed),
		))
		if err := form.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Delete cancelled.")
			return nil
		}
	}

	if err := ctx.Store.DeleteTask(id); err != nil {
		return err
	}

	fmt.Printf("Task %d deleted.\n", c.Number)
	return nil
}
