package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/tasklog/internal/backup"
	"github.com/julianstephens/tasklog/internal/models"
	"github.com/julianstephens/tasklog/internal/storage"
	"github.com/julianstephens/tasklog/internal/validation"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()
	defer ctx.Store.Close()

	hasError := false
	storeReachable := false

	// Check 1: ledger reachable
	if err := checkStoreReachable(ctx); err != nil {
		fmt.Printf("❌ Ledger reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Ledger reachable: OK\n")
		storeReachable = true
	}

	// Check 2: integrity report (only if the ledger opens)
	if storeReachable {
		if err := checkIntegrity(ctx); err != nil {
			fmt.Printf("❌ Ledger integrity: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Ledger integrity: OK\n")
		}
	} else {
		fmt.Printf("⊘ Ledger integrity: SKIPPED (ledger not reachable)\n")
	}

	// Check 3: backups present (warning only)
	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Backups present: OK\n")
	}

	// Check 4: single writer (warning only)
	if err := checkSingleWriter(); err != nil {
		fmt.Printf("⚠ Single writer: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Single writer: OK\n")
	}

	// Check 5: clock/timezone sanity
	if err := checkClockTimezone(); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *Context) error {
	if err := ctx.Store.Open(storage.ReadOnly); err != nil {
		return err
	}

	initialized, err := ctx.Store.IsInitialized()
	if err != nil {
		return err
	}
	if !initialized {
		return storage.ErrNotInitialized
	}

	// For SQLite, also verify the connection answers a trivial query.
	if sqliteStore, ok := ctx.Store.(*storage.SQLiteStore); ok {
		db := sqliteStore.DB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}

	return nil
}

// checkIntegrity runs the validator over the registry, today's log, and the
// current-task pointer. Expects the store to be open.
func checkIntegrity(ctx *Context) error {
	validator := validation.New()
	var result validation.ValidationResult

	names, err := ctx.Store.ListNames()
	if err != nil {
		return fmt.Errorf("failed to list names: %w", err)
	}
	result.Conflicts = append(result.Conflicts, validator.ValidateNames(names).Conflicts...)

	today := models.Today()
	tasks, err := ctx.Store.ListDay(today)
	if err != nil {
		return fmt.Errorf("failed to list today's tasks: %w", err)
	}
	result.Conflicts = append(result.Conflicts, validator.ValidateDay(today, tasks).Conflicts...)

	cur, err := ctx.Store.CurrentTask()
	if err != nil {
		return fmt.Errorf("failed to read current task: %w", err)
	}
	var pointed *models.Task
	if cur != nil {
		if task, err := ctx.Store.GetTask(cur.TaskID); err == nil {
			pointed = &task
		}
	}
	result.Conflicts = append(result.Conflicts, validator.ValidatePointer(cur, pointed).Conflicts...)

	if result.HasConflicts() {
		return fmt.Errorf("%s", result.FormatReport())
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.Path())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'tasklog backup create'")
	}

	return nil
}

// checkSingleWriter looks for other running tasklog processes. The ledger
// assumes a single writer, so a second instance is worth a warning.
func checkSingleWriter() error {
	processes, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("failed to list processes: %w", err)
	}

	var others []int
	for _, p := range processes {
		if p.Pid() == os.Getpid() {
			continue
		}
		if strings.HasPrefix(p.Executable(), "tasklog") {
			others = append(others, p.Pid())
		}
	}

	if len(others) > 0 {
		return fmt.Errorf("other tasklog processes running (pids %v) - concurrent writers can corrupt the ledger", others)
	}
	return nil
}

func checkClockTimezone() error {
	now := time.Now()

	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	_, offset := now.Zone()
	if offset == 0 && now.Location() == time.UTC {
		fmt.Printf("   Note: timezone is UTC\n")
	}

	return nil
}
