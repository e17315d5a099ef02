package cli

import (
	"fmt"

	"github.com/julianstephens/tasklog/internal/models"
	"github.com/julianstephens/tasklog/internal/storage"
)

type ListCmd struct {
	All  bool   `short:"a" help:"List the whole log instead of a single day."`
	Date string `short:"d" help:"Working date to list (YYYY-MM-DD or YYYYMMDD, default: today)."`
}

func (c *ListCmd) Run(ctx *Context) error {
	if c.All && c.Date != "" {
		return fmt.Errorf("--all and --date are mutually exclusive")
	}

	if err := ctx.Store.Open(storage.ReadOnly); err != nil {
		return err
	}
	defer ctx.Store.Close()

	if c.All {
		tasks, err := ctx.Store.ListAll()
		if err != nil {
			return err
		}
		if len(tasks) == 0 {
			fmt.Println("No tasks logged.")
			return nil
		}
		renderTaskRows(tasks)
		return nil
	}

	date, err := dateOrToday(c.Date)
	if err != nil {
		return err
	}

	tasks, err := ctx.Store.ListDay(date)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Printf("No tasks logged on %s.\n", date)
		return nil
	}

	renderTaskRows(tasks)

	plain := make([]models.Task, len(tasks))
	for i, nt := range tasks {
		plain[i] = nt.Task
	}
	renderSummary(models.Summarize(plain))
	return nil
}
