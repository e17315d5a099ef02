package cli

import (
	"fmt"

	"github.com/julianstephens/tasklog/internal/storage"
)

type InitCmd struct {
	Force bool `help:"Recreate the ledger even if it already exists, discarding all data."`
}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Open(storage.ReadWriteCreate); err != nil {
		return err
	}
	defer ctx.Store.Close()

	initialized, err := ctx.Store.IsInitialized()
	if err != nil {
		return err
	}
	if initialized && !c.Force {
		return fmt.Errorf("database already exists: %s (use --force to recreate)", ctx.Store.Path())
	}

	if err := ctx.Store.Initialize(); err != nil {
		return err
	}

	fmt.Printf("Database created: %s\n", ctx.Store.Path())
	return nil
}
