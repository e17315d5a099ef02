package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/tasklog/internal/cli"
	"github.com/julianstephens/tasklog/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	DB      string `help:"Ledger file path (.db for SQLite, .json for a JSON ledger)." env:"TASKLOG_DB_PATH" type:"path" default:"tasklog.db"`

	Init       cli.InitCmd       `cmd:"" help:"Create a new ledger."`
	Register   cli.RegisterCmd   `cmd:"" help:"Register a task name."`
	Unregister cli.UnregisterCmd `cmd:"" help:"Remove a task name from the registry."`
	Names      cli.NamesCmd      `cmd:"" help:"List registered task names."`
	Start      cli.StartCmd      `cmd:"" help:"Start a task, ending any running one."`
	End        cli.EndCmd        `cmd:"" help:"End the running task."`
	List       cli.ListCmd       `cmd:"" help:"List a day's tasks with a summary."`
	Update     cli.UpdateCmd     `cmd:"" help:"Edit a field of one of today's tasks."`
	Delete     cli.DeleteCmd     `cmd:"" help:"Delete one of today's tasks."`
	Backup     cli.BackupCmd     `cmd:"" help:"Manage ledger backups."`
	Debug      cli.DebugCmd      `cmd:"" help:"Inspect internal state."`
	Doctor     cli.DoctorCmd     `cmd:"" help:"Run health checks on the ledger."`
	Tui        cli.TuiCmd        `cmd:"" help:"Launch the read-only dashboard."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("tasklog"),
		kong.Description("Personal task-time ledger: start and end named activities, summarize working days."),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	// The backend follows the file extension, like the config layer.
	var store storage.Provider
	if strings.HasSuffix(CLI.DB, ".json") {
		store = storage.NewJSONStore(CLI.DB)
	} else {
		store = storage.NewSQLiteStore(CLI.DB)
	}

	appCtx := &cli.Context{Store: store}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
