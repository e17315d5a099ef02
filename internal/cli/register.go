package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/tasklog/internal/storage"
)

type RegisterCmd struct {
	Name string `arg:"" help:"Task name to add to the registry."`
}

func (c *RegisterCmd) Run(ctx *Context) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmt.Errorf("task name must not be empty")
	}

	if err := ctx.Store.Open(storage.ReadWrite); err != nil {
		return err
	}
	defer ctx.Store.Close()

	if err := ctx.Store.RegisterName(name); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return fmt.Errorf("task name %q is already registered", name)
		}
		return err
	}

	fmt.Printf("Registered: %s\n", name)
	return nil
}

type UnregisterCmd struct {
	Name string `arg:"" help:"Task name to remove from the registry."`
}

func (c *UnregisterCmd) Run(ctx *Context) error {
	if err := ctx.Store.Open(storage.ReadWrite); err != nil {
		return err
	}
	defer ctx.Store.Close()

	if err := ctx.Store.UnregisterName(c.Name); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("task name %q is not registered", c.Name)
		}
		return err
	}

	fmt.Printf("Unregistered: %s\n", c.Name)
	return nil
}

type NamesCmd struct{}

func (c *NamesCmd) Run(ctx *Context) error {
	if err := ctx.Store.Open(storage.ReadOnly); err != nil {
		return err
	}
	defer ctx.Store.Close()

	names, err := ctx.Store.ListNames()
	if err != nil {
		return err
	}

	if len(names) == 0 {
		fmt.Println("No task names registered.")
		return nil
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("%2s  %s", "No", "Task")))
	for _, e := range names {
		fmt.Printf("%2d  %s\n", e.Seq, e.Name)
	}
	return nil
}
