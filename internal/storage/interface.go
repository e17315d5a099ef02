package storage

import "github.com/julianstephens/tasklog/internal/models"

// AccessMode controls how a store file is opened.
type AccessMode int

const (
	// ReadWriteCreate opens the store and creates the file if missing.
	ReadWriteCreate AccessMode = iota
	// ReadWrite opens an existing store for mutation.
	ReadWrite
	// ReadOnly opens an existing store for queries only.
	ReadOnly
)

// NameEntry is a registered task name with its 1-based sequence number.
type NameEntry struct {
	Seq  int
	Name string
}

// NumberedTask pairs a task with its per-day sequence number.
type NumberedTask struct {
	Seq  int
	Task models.Task
}

// CurrentTask is the single-slot record of the task presently open.
type CurrentTask struct {
	TaskID int64
	Name   string
	Start  models.TaskTime
}

// Provider is the ledger: a task-name registry, the task log, and the
// current-task pointer behind a single opened store.
//
// Every multi-step mutation (Initialize, Register/UnregisterName,
// AppendTask, DeleteTask) is atomic: a failure mid-sequence leaves no
// partial effect visible. Sequence numbers are renumbered inside the same
// transaction as the mutation that invalidated them.
type Provider interface {
	// Lifecycle
	Open(mode AccessMode) error
	Close() error

	// Schema
	IsInitialized() (bool, error)
	Initialize() error

	// Task-name registry
	RegisterName(name string) error
	UnregisterName(name string) error
	NameBySeq(seq int) (string, error)
	ListNames() ([]NameEntry, error)

	// Task log
	AppendTask(task models.Task) (int64, error)
	GetTask(id int64) (models.Task, error)
	TaskIDBySeq(seq int, date models.WorkDate) (int64, error)
	ListDay(date models.WorkDate) ([]NumberedTask, error)
	ListAll() ([]NumberedTask, error)
	UpdateTask(id int64, task models.Task) error
	DeleteTask(id int64) error

	// Current-task pointer
	CurrentTask() (*CurrentTask, error)
	ResetCurrentTask() error

	// Utils
	Path() string
}
