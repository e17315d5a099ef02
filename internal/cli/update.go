package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/tasklog/internal/models"
	"github.com/julianstephens/tasklog/internal/storage"
)

type UpdateCmd struct {
	Number int    `arg:"" help:"Today's task number to edit."`
	Field  string `arg:"" enum:"name,start,end" help:"Field to change (name|start|end)."`
	Value  string `arg:"" help:"New value: a task name, or a clock time as HHMM / HH:MM."`
}

func (c *UpdateCmd) Run(ctx *Context) error {
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

	var updated models.Task
	switch c.Field {
	case "name":
		updated, err = task.WithName(c.Value)
	case "start":
		var t models.TaskTime
		if t, err = models.ParseClock(c.Value); err == nil {
			updated, err = task.WithStart(t)
		}
	case "end":
		var t models.TaskTime
		if t, err = models.ParseClock(c.Value); err == nil {
			updated, err = task.WithEnd(t)
		}
	}
	if err != nil {
		return err
	}

	if err := ctx.Store.UpdateTask(id, updated); err != nil {
		return err
	}

	fmt.Printf("Task %d updated.\n", c.Number)
	return nil
}
