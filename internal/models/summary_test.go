package models

import (
	"testing"
	"time"
)

func closedTask(t *testing.T, name, start, end string, isBreak bool) Task {
	t.Helper()
	task := StartTask(name, mustTime(t, start), isBreak)
	closed, err := task.Ended(mustTime(t, end))
	if err != nil {
		t.Fatalf("failed to close task %s: %v", name, err)
	}
	return closed
}

func TestSummarizeEmpty(t *testing.T) {
	if s := Summarize(nil); s != nil {
		t.Errorf("expected nil summary for no tasks, got %+v", s)
	}
}

func TestSummarizeSingleDay(t *testing.T) {
	tasks := []Task{
		closedTask(t, "task a", "2015-09-19T10:00:00", "2015-09-19T10:30:00", false),
		closedTask(t, "task b", "2015-09-19T10:30:00", "2015-09-19T10:40:00", false),
		closedTask(t, "task a", "2015-09-19T10:40:00", "2015-09-19T10:55:00", false),
	}

	s := Summarize(tasks)
	if s == nil {
		t.Fatal("expected a summary")
	}

	if got := s.Start.Clock(); got != "10:00" {
		t.Errorf("expected start 10:00, got %s", got)
	}
	if got := s.End.Clock(); got != "10:55" {
		t.Errorf("expected end 10:55, got %s", got)
	}
	if s.Total != 55*time.Minute {
		t.Errorf("expected total 55m, got %v", s.Total)
	}
	if d := s.ByName["task a"]; d != 45*time.Minute {
		t.Errorf("expected task a = 45m, got %v", d)
	}
	if d := s.ByName["task b"]; d != 10*time.Minute {
		t.Errorf("expected task b = 10m, got %v", d)
	}
	if len(s.ByName) != 2 {
		t.Errorf("expected 2 names, got %d", len(s.ByName))
	}
}

func TestSummarizeOpenTaskExtendsSpanOnly(t *testing.T) {
	tasks := []Task{
		closedTask(t, "task a", "2021-01-01T09:00:00", "2021-01-01T10:00:00", false),
		StartTask("task b", mustTime(t, "2021-01-01T11:00:00"), false),
	}

	s := Summarize(tasks)
	if s == nil {
		t.Fatal("expected a summary")
	}

	// the open task stands in for its own end
	if got := s.End.Clock(); got != "11:00" {
		t.Errorf("expected end 11:00, got %s", got)
	}
	if s.Total != time.Hour {
		t.Errorf("open tasks must not contribute to the total, got %v", s.Total)
	}
	d, ok := s.ByName["task b"]
	if !ok {
		t.Fatal("an open working task must still appear in ByName")
	}
	if d != 0 {
		t.Errorf("expected zero duration for the open task, got %v", d)
	}
}

func TestSummarizeBreakPartition(t *testing.T) {
	tasks := []Task{
		closedTask(t, "task a", "2021-01-01T09:00:00", "2021-01-01T12:00:00", false),
		closedTask(t, "", "2021-01-01T12:00:00", "2021-01-01T13:00:00", true),
		closedTask(t, "task a", "2021-01-01T13:00:00", "2021-01-01T14:00:00", false),
	}

	s := Summarize(tasks)
	if s == nil {
		t.Fatal("expected a summary")
	}

	if s.Total != 4*time.Hour {
		t.Errorf("breaks must not count toward the total, got %v", s.Total)
	}
	if _, ok := s.ByName[BreakTaskName]; ok {
		t.Error("breaks must not appear in ByName")
	}
	if len(s.Breaks) != 1 {
		t.Fatalf("expected 1 break, got %d", len(s.Breaks))
	}
	if got := s.Breaks[0].Start.Clock(); got != "12:00" {
		t.Errorf("expected break at 12:00, got %s", got)
	}
}

func TestSummarizeBreakWidensSpan(t *testing.T) {
	tasks := []Task{
		closedTask(t, "task a", "2021-01-01T09:00:00", "2021-01-01T10:00:00", false),
		closedTask(t, "", "2021-01-01T08:00:00", "2021-01-01T11:00:00", true),
	}

	s := Summarize(tasks)
	if got := s.Start.Clock(); got != "08:00" {
		t.Errorf("breaks must widen the span start, got %s", got)
	}
	if got := s.End.Clock(); got != "11:00" {
		t.Errorf("breaks must widen the span end, got %s", got)
	}
	if s.Total != time.Hour {
		t.Errorf("expected total 1h, got %v", s.Total)
	}
}
