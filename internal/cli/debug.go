package cli

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tasklog/internal/storage"
)

type DebugCmd struct {
	Current *DebugCurrentCmd `cmd:"" help:"Show the current-task pointer."`
	Reset   *DebugResetCmd   `cmd:"" help:"Clear the current-task pointer without ending the task."`
	DBPath  *DebugDBPathCmd  `cmd:"" name:"db-path" help:"Show the ledger path."`
}

type DebugCurrentCmd struct{}

func (cmd *DebugCurrentCmd) Run(ctx *Context) error {
	if err := ctx.Store.Open(storage.ReadOnly); err != nil {
		return err
	}
	defer ctx.Store.Close()

	cur, err := ctx.Store.CurrentTask()
	if err != nil {
		return err
	}
	if cur == nil {
		fmt.Println("No current task.")
		return nil
	}

	fmt.Printf("Current task: %s (id %d), started at %s\n", cur.Name, cur.TaskID, cur.Start.Clock())
	return nil
}

type DebugResetCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (cmd *DebugResetCmd) Run(ctx *Context) error {
	if !cmd.Yes {
		confirmed := false
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title("Clear the current-task pointer? The open task keeps no end time.").
				Value(&confirmed),
		))
		if err := form.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	if err := ctx.Store.Open(storage.ReadWrite); err != nil {
		return err
	}
	defer ctx.Store.Close()

	if err := ctx.Store.ResetCurrentTask(); err != nil {
		return err
	}

	fmt.Println("Current-task pointer cleared.")
	return nil
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *Context) error {
	// Machine-readable so scripts can locate the ledger.
	output := map[string]string{
		"path": ctx.Store.Path(),
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}
