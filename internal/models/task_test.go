package models

import (
	"errors"
	"testing"
	"time"
)

func TestStartTask(t *testing.T) {
	start := mustTime(t, "2021-01-02T11:06:00")
	task := StartTask("task a", start, false)

	if task.ID != 0 {
		t.Errorf("expected unsaved task to have id 0, got %d", task.ID)
	}
	if task.Name != "task a" {
		t.Errorf("expected name %q, got %q", "task a", task.Name)
	}
	if !task.Open() {
		t.Error("a started task must be open")
	}
	if got := task.WorkingDate().String(); got != "2021-01-02" {
		t.Errorf("expected working date 2021-01-02, got %s", got)
	}
}

func TestStartTaskBreak(t *testing.T) {
	task := StartTask("ignored", mustTime(t, "2021-01-02T12:00:00"), true)

	if task.Name != BreakTaskName {
		t.Errorf("expected break task to be named %q, got %q", BreakTaskName, task.Name)
	}
	if !task.IsBreak {
		t.Error("expected IsBreak to be set")
	}
}

func TestTaskEnded(t *testing.T) {
	start := mustTime(t, "2021-01-02T11:06:00")
	task := StartTask("task a", start, false)

	end := mustTime(t, "2021-01-02T11:30:00")
	closed, err := task.Ended(end)
	if err != nil {
		t.Fatalf("Ended failed: %v", err)
	}
	if closed.Open() {
		t.Error("expected task to be closed")
	}
	if d, _ := closed.Duration(); d != 24*time.Minute {
		t.Errorf("expected 24m duration, got %v", d)
	}
	if !task.Open() {
		t.Error("Ended must not mutate the receiver")
	}
}

func TestTaskEndedAtStartTime(t *testing.T) {
	start := mustTime(t, "2021-01-02T11:06:00")
	task := StartTask("task a", start, false)

	closed, err := task.Ended(start)
	if err != nil {
		t.Fatalf("ending at the start time must be allowed: %v", err)
	}
	if d, _ := closed.Duration(); d != 0 {
		t.Errorf("expected zero duration, got %v", d)
	}
}

func TestTaskEndedBeforeStart(t *testing.T) {
	task := StartTask("task a", mustTime(t, "2021-01-02T11:06:00"), false)

	_, err := task.Ended(mustTime(t, "2021-01-02T10:30:00"))
	if !errors.Is(err, ErrEndBeforeStart) {
		t.Errorf("expected ErrEndBeforeStart, got %v", err)
	}
}

func TestTaskWithName(t *testing.T) {
	task := StartTask("task a", mustTime(t, "2021-01-02T11:06:00"), false)

	renamed, err := task.WithName("task b")
	if err != nil {
		t.Fatalf("WithName failed: %v", err)
	}
	if renamed.Name != "task b" {
		t.Errorf("expected task b, got %s", renamed.Name)
	}

	if _, err := task.WithName(""); !errors.Is(err, ErrEmptyName) {
		t.Errorf("expected ErrEmptyName, got %v", err)
	}
}

func TestTaskWithNameToBreak(t *testing.T) {
	task := StartTask("task a", mustTime(t, "2021-01-02T11:06:00"), false)

	renamed, err := task.WithName(BreakTaskName)
	if err != nil {
		t.Fatalf("WithName failed: %v", err)
	}
	if !renamed.IsBreak {
		t.Error("renaming to the break name must mark the task as a break")
	}
}

func TestTaskWithStart(t *testing.T) {
	task := StartTask("task a", mustTime(t, "2021-01-02T11:06:00"), false)
	closed, err := task.Ended(mustTime(t, "2021-01-02T12:00:00"))
	if err != nil {
		t.Fatalf("Ended failed: %v", err)
	}

	moved, err := closed.WithStart(mustTime(t, "2021-01-02T11:30:00"))
	if err != nil {
		t.Fatalf("WithStart failed: %v", err)
	}
	if d, _ := moved.Duration(); d != 30*time.Minute {
		t.Errorf("expected 30m, got %v", d)
	}

	_, err = closed.WithStart(mustTime(t, "2021-01-02T12:30:00"))
	if !errors.Is(err, ErrEndBeforeStart) {
		t.Errorf("moving the start past the end must fail, got %v", err)
	}
}

func TestTaskDurationHHMM(t *testing.T) {
	task := StartTask("task a", mustTime(t, "2021-01-02T11:06:00"), false)
	if got := task.DurationHHMM(); got != "" {
		t.Errorf("open task must render an empty duration, got %q", got)
	}

	closed, _ := task.Ended(mustTime(t, "2021-01-02T12:20:00"))
	if got := closed.DurationHHMM(); got != "01:14" {
		t.Errorf("expected 01:14, got %q", got)
	}
}
