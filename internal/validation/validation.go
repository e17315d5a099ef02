package validation

import (
	"fmt"
	"strings"

	"github.com/julianstephens/tasklog/internal/models"
	"github.com/julianstephens/tasklog/internal/storage"
)

type ConflictType string

const (
	// ConflictSparseSequence means sequence numbers are not a dense 1..N run.
	ConflictSparseSequence ConflictType = "sparse_sequence"
	// ConflictSequenceOrder means sequence numbers disagree with the
	// ordering key (name text or start time).
	ConflictSequenceOrder ConflictType = "sequence_order"
	// ConflictWrongDay means a task row sits under a working date that does
	// not match its start time (a stale day-crossing edit).
	ConflictWrongDay ConflictType = "wrong_day"
	// ConflictNegativeInterval means a task's end time precedes its start.
	ConflictNegativeInterval ConflictType = "negative_interval"
	// ConflictDanglingPointer means the current-task pointer references a
	// task row that no longer exists.
	ConflictDanglingPointer ConflictType = "dangling_pointer"
	// ConflictClosedCurrent means the pointed-at task already has an end
	// time and should not be considered open.
	ConflictClosedCurrent ConflictType = "closed_current"
)

type Conflict struct {
	Type    ConflictType
	Message string
}

type ValidationResult struct {
	Conflicts []Conflict
}

func (r ValidationResult) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

func (r ValidationResult) FormatReport() string {
	if !r.HasConflicts() {
		return "No conflicts found."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d conflict(s):\n", len(r.Conflicts))
	for _, c := range r.Conflicts {
		fmt.Fprintf(&b, "  [%s] %s\n", c.Type, c.Message)
	}
	return strings.TrimRight(b.String(), "\n")
}

type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateNames checks that registry sequence numbers are dense, 1-based,
// and strictly increasing with lexicographic name order.
func (v *Validator) ValidateNames(names []storage.NameEntry) ValidationResult {
	var result ValidationResult

	for i, e := range names {
		if e.Seq != i+1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:    ConflictSparseSequence,
				Message: fmt.Sprintf("name %q has seq %d, expected %d", e.Name, e.Seq, i+1),
			})
		}
		if i > 0 && names[i-1].Name >= e.Name {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:    ConflictSequenceOrder,
				Message: fmt.Sprintf("name %q is out of lexicographic order", e.Name),
			})
		}
	}

	return result
}

// ValidateDay checks one working date's tasks: per-day sequence numbers must
// be dense and follow ascending start time, every row must belong to the
// date it is filed under, and no interval may be negative.
func (v *Validator) ValidateDay(date models.WorkDate, tasks []storage.NumberedTask) ValidationResult {
	var result ValidationResult

	for i, nt := range tasks {
		if nt.Seq != i+1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:    ConflictSparseSequence,
				Message: fmt.Sprintf("task %d on %s has seq %d, expected %d", nt.Task.ID, date, nt.Seq, i+1),
			})
		}
		if i > 0 && tasks[i-1].Task.Start.After(nt.Task.Start) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:    ConflictSequenceOrder,
				Message: fmt.Sprintf("task %d on %s is numbered against start-time order", nt.Task.ID, date),
			})
		}
		if nt.Task.WorkingDate() != date {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type: ConflictWrongDay,
				Message: fmt.Sprintf("task %d is filed under %s but starts on %s",
					nt.Task.ID, date, nt.Task.WorkingDate()),
			})
		}
		if nt.Task.End != nil && nt.Task.End.Before(nt.Task.Start) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:    ConflictNegativeInterval,
				Message: fmt.Sprintf("task %d ends before it starts", nt.Task.ID),
			})
		}
	}

	return result
}

// ValidatePointer checks the current-task pointer against the task row it
// references; task is nil when the row could not be found.
func (v *Validator) ValidatePointer(cur *storage.CurrentTask, task *models.Task) ValidationResult {
	var result ValidationResult
	if cur == nil {
		return result
	}

	if task == nil {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:    ConflictDanglingPointer,
			Message: fmt.Sprintf("current task %d does not exist", cur.TaskID),
		})
		return result
	}

	if task.End != nil {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:    ConflictClosedCurrent,
			Message: fmt.Sprintf("current task %d already has an end time", cur.TaskID),
		})
	}

	return result
}
