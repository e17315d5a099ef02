package models

import (
	"errors"
	"time"
)

// BreakTaskName is the reserved name for break intervals. Break status is
// derived from the name; the task log carries no separate flag column.
const BreakTaskName = "break time"

// ErrEndBeforeStart is returned when an end time precedes the start time of
// the task it would close.
var ErrEndBeforeStart = errors.New("end time is before the start time")

// ErrEmptyName is returned when a task would be renamed to an empty label.
var ErrEmptyName = errors.New("task name is empty")

// Task is one logged activity interval.
type Task struct {
	ID      int64 // 0 until stored
	Name    string
	Start   TaskTime
	End     *TaskTime // nil while the task is open
	IsBreak bool
}

// StartTask opens a new unsaved task at the given time. When isBreak is set
// the name is forced to BreakTaskName.
func StartTask(name string, start TaskTime, isBreak bool) Task {
	if isBreak {
		name = BreakTaskName
	}
	return Task{Name: name, Start: start, IsBreak: isBreak}
}

// Ended returns a copy of the task closed at end, or ErrEndBeforeStart when
// end precedes the start time. The receiver is never mutated.
func (t Task) Ended(end TaskTime) (Task, error) {
	if end.Before(t.Start) {
		return Task{}, ErrEndBeforeStart
	}
	t.End = &end
	return t, nil
}

// WithName returns a copy of the task with a new non-empty name.
func (t Task) WithName(name string) (Task, error) {
	if name == "" {
		return Task{}, ErrEmptyName
	}
	t.Name = name
	t.IsBreak = name == BreakTaskName
	return t, nil
}

// WithStart returns a copy of the task started at start. It fails when the
// task already has an end time earlier than the new start.
func (t Task) WithStart(start TaskTime) (Task, error) {
	if t.End != nil && t.End.Before(start) {
		return Task{}, ErrEndBeforeStart
	}
	t.Start = start
	return t, nil
}

// WithEnd is Ended under the name the edit commands use.
func (t Task) WithEnd(end TaskTime) (Task, error) {
	return t.Ended(end)
}

// WorkingDate is the day the task belongs to, derived from its start time.
func (t Task) WorkingDate() WorkDate {
	return WorkDateOf(t.Start)
}

// Open reports whether the task has no end time yet.
func (t Task) Open() bool {
	return t.End == nil
}

// Duration returns the task length; ok is false while the task is open.
func (t Task) Duration() (d time.Duration, ok bool) {
	if t.End == nil {
		return 0, false
	}
	return t.End.Sub(t.Start), true
}

// DurationHHMM renders the duration as HH:MM, empty while the task is open.
func (t Task) DurationHHMM() string {
	d, ok := t.Duration()
	if !ok {
		return ""
	}
	return FormatDurationHHMM(d)
}
