package cli

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/tasklog/internal/models"
	"github.com/julianstephens/tasklog/internal/storage"
)

func setupTestContext(t *testing.T, names ...string) *Context {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "tasklog.db")

	store := storage.NewSQLiteStore(dbPath)
	if err := store.Open(storage.ReadWriteCreate); err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	if err := store.Initialize(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	for _, name := range names {
		if err := store.RegisterName(name); err != nil {
			t.Fatalf("failed to register %q: %v", name, err)
		}
	}
	store.Close()

	return &Context{Store: store}
}

// reopen gives tests a fresh read-only view after a command closed the store.
func reopen(t *testing.T, ctx *Context) {
	t.Helper()
	if err := ctx.Store.Open(storage.ReadOnly); err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	t.Cleanup(func() { ctx.Store.Close() })
}

func intPtr(v int) *int { return &v }

// appendToday files an open task at 10:00 on the current working date, so
// number lookups against today always resolve regardless of the wall clock.
func appendToday(t *testing.T, ctx *Context, name string) {
	t.Helper()
	start, err := models.ParseTaskTime(models.Today().String() + "T10:00:00")
	if err != nil {
		t.Fatalf("failed to build start time: %v", err)
	}
	if err := ctx.Store.Open(storage.ReadWrite); err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	if _, err := ctx.Store.AppendTask(models.StartTask(name, start, false)); err != nil {
		t.Fatalf("failed to append task: %v", err)
	}
	ctx.Store.Close()
}

func TestStartCmd(t *testing.T) {
	ctx := setupTestContext(t, "task a")

	cmd := &StartCmd{Number: intPtr(1), Time: "1000"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	reopen(t, ctx)
	cur, err := ctx.Store.CurrentTask()
	if err != nil {
		t.Fatalf("CurrentTask failed: %v", err)
	}
	if cur == nil || cur.Name != "task a" {
		t.Fatalf("expected pointer at task a, got %+v", cur)
	}
	if cur.Start.Clock() != "10:00" {
		t.Errorf("expected start 10:00, got %s", cur.Start.Clock())
	}
}

func TestStartCmdUnknownNumber(t *testing.T) {
	ctx := setupTestContext(t, "task a")

	cmd := &StartCmd{Number: intPtr(9)}
	if err := cmd.Run(ctx); err == nil {
		t.Fatal("expected an error for an unregistered number")
	}
}

func TestStartCmdClosesRunningTask(t *testing.T) {
	ctx := setupTestContext(t, "task a", "task b")

	if err := (&StartCmd{Number: intPtr(1), Time: "1000"}).Run(ctx); err != nil {
		t.Fatalf("first start failed: %v", err)
	}
	if err := (&StartCmd{Number: intPtr(2), Time: "1030"}).Run(ctx); err != nil {
		t.Fatalf("second start failed: %v", err)
	}

	reopen(t, ctx)
	tasks, err := ctx.Store.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}

	// The first task must have ended at the second task's start time.
	first := tasks[0].Task
	if first.End == nil || first.End.Clock() != "10:30" {
		t.Errorf("first task not closed at 10:30: %+v", first.End)
	}

	cur, err := ctx.Store.CurrentTask()
	if err != nil {
		t.Fatalf("CurrentTask failed: %v", err)
	}
	if cur == nil || cur.Name != "task b" {
		t.Errorf("pointer should follow the newest start, got %+v", cur)
	}
}

func TestStartCmdBreak(t *testing.T) {
	ctx := setupTestContext(t)

	if err := (&StartCmd{BreakTime: true, Time: "1200"}).Run(ctx); err != nil {
		t.Fatalf("break start failed: %v", err)
	}

	reopen(t, ctx)
	tasks, err := ctx.Store.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(tasks) != 1 || !tasks[0].Task.IsBreak || tasks[0].Task.Name != models.BreakTaskName {
		t.Errorf("expected a single break task, got %+v", tasks)
	}
}

func TestEndCmd(t *testing.T) {
	ctx := setupTestContext(t, "task a")

	if err := (&StartCmd{Number: intPtr(1), Time: "1000"}).Run(ctx); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if err := (&EndCmd{Time: "1114"}).Run(ctx); err != nil {
		t.Fatalf("end failed: %v", err)
	}

	reopen(t, ctx)
	cur, err := ctx.Store.CurrentTask()
	if err != nil {
		t.Fatalf("CurrentTask failed: %v", err)
	}
	if cur != nil {
		t.Errorf("pointer should be cleared after end, got %+v", cur)
	}

	tasks, err := ctx.Store.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Task.End == nil {
		t.Fatalf("expected one closed task, got %+v", tasks)
	}
	if got := tasks[0].Task.DurationHHMM(); got != "01:14" {
		t.Errorf("expected duration 01:14, got %s", got)
	}
}

func TestEndCmdIdle(t *testing.T) {
	ctx := setupTestContext(t)

	if err := (&EndCmd{}).Run(ctx); err != nil {
		t.Errorf("end with no running task should be a no-op, got %v", err)
	}
}

func TestEndCmdBeforeStart(t *testing.T) {
	ctx := setupTestContext(t, "task a")

	if err := (&StartCmd{Number: intPtr(1), Time: "1000"}).Run(ctx); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if err := (&EndCmd{Time: "0930"}).Run(ctx); err == nil {
		t.Fatal("expected an error ending before the start time")
	}

	// A failed end must leave both the task and the pointer untouched.
	reopen(t, ctx)
	cur, err := ctx.Store.CurrentTask()
	if err != nil {
		t.Fatalf("CurrentTask failed: %v", err)
	}
	if cur == nil {
		t.Fatal("pointer should survive a failed end")
	}
	task, err := ctx.Store.GetTask(cur.TaskID)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if task.End != nil {
		t.Errorf("task should still be open, got end %v", task.End)
	}
}

func TestInitCmdRefusesReinit(t *testing.T) {
	ctx := setupTestContext(t)

	if err := (&InitCmd{}).Run(ctx); err == nil {
		t.Fatal("expected init to refuse an existing ledger")
	}
	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("forced init failed: %v", err)
	}
}

func TestRegisterCmdDuplicate(t *testing.T) {
	ctx := setupTestContext(t, "task a")

	if err := (&RegisterCmd{Name: "task a"}).Run(ctx); err == nil {
		t.Fatal("expected an error registering a duplicate name")
	}
}

func TestUpdateCmdEnd(t *testing.T) {
	ctx := setupTestContext(t, "task a")

	appendToday(t, ctx, "task a")
	if err := (&UpdateCmd{Number: 1, Field: "end", Value: "1045"}).Run(ctx); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	reopen(t, ctx)
	tasks, err := ctx.Store.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if tasks[0].Task.End == nil || tasks[0].Task.End.Clock() != "10:45" {
		t.Errorf("expected end 10:45, got %+v", tasks[0].Task.End)
	}
}

func TestDeleteCmd(t *testing.T) {
	ctx := setupTestContext(t, "task a")

	appendToday(t, ctx, "task a")
	if err := (&DeleteCmd{Number: 1, Yes: true}).Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	reopen(t, ctx)
	tasks, err := ctx.Store.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("expected an empty day after delete, got %+v", tasks)
	}
}

func TestDebugResetCmd(t *testing.T) {
	ctx := setupTestContext(t, "task a")

	if err := (&StartCmd{Number: intPtr(1), Time: "1000"}).Run(ctx); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if err := (&DebugResetCmd{Yes: true}).Run(ctx); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	reopen(t, ctx)
	cur, err := ctx.Store.CurrentTask()
	if err != nil {
		t.Fatalf("CurrentTask failed: %v", err)
	}
	if cur != nil {
		t.Errorf("pointer should be cleared, got %+v", cur)
	}
}
