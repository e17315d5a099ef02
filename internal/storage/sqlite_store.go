package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/tasklog/internal/models"
	_ "modernc.org/sqlite"
)

// SQLiteStore is the SQLite-backed ledger. The schema is three relations:
//
//	tasks     (id, name, working_date, seq_num, start_time, end_time)
//	tasknames (id, task_name, seq_num)
//	manager   (id, task_id, task_name, start_time) -- single row, id 0
//
// Times are stored as YYYY-MM-DDTHH:MM:SS strings; an empty end_time means
// the task is still open. working_date is stored redundantly as YYYY-MM-DD
// for query efficiency and always agrees with the start time.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

// NewSQLiteStore creates a store for the given database file. The file is
// not touched until Open is called.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Open(mode AccessMode) error {
	if s.db != nil {
		return nil
	}

	dsn := s.path
	switch mode {
	case ReadWrite, ReadOnly:
		if _, err := os.Stat(s.path); os.IsNotExist(err) {
			return ErrNotInitialized
		}
		if mode == ReadOnly {
			dsn = "file:" + s.path + "?mode=ro"
		} else {
			dsn = "file:" + s.path + "?mode=rw"
		}
	case ReadWriteCreate:
		if dir := filepath.Dir(s.path); dir != "." {
			if err := os.MkdirAll(dir, 0700); err != nil {
				return fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

// IsInitialized reports whether the three required relations exist.
func (s *SQLiteStore) IsInitialized() (bool, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT count(name) FROM sqlite_master
		 WHERE type = 'table' AND name IN ('tasks', 'tasknames', 'manager')`,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to inspect schema: %w", err)
	}
	return count == 3, nil
}

// Initialize destructively (re)creates the schema and seeds the single
// empty manager row. All-or-nothing: on error the prior state is untouched.
func (s *SQLiteStore) Initialize() error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmts := []string{
		`DROP TABLE IF EXISTS tasks`,
		`DROP TABLE IF EXISTS tasknames`,
		`DROP TABLE IF EXISTS manager`,
		`CREATE TABLE tasks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			working_date TEXT NOT NULL,
			seq_num INTEGER,
			start_time TEXT NOT NULL,
			end_time TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE tasknames (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			task_name TEXT NOT NULL,
			seq_num INTEGER
		)`,
		`CREATE TABLE manager (
			id INTEGER PRIMARY KEY,
			task_id INTEGER,
			task_name TEXT,
			start_time TEXT
		)`,
		`INSERT INTO manager (id) VALUES (0)`,
	}
	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}

	return tx.Commit()
}

// RegisterName adds a name to the registry and renumbers it. Fails with
// ErrAlreadyExists, without mutation, when the name is already registered.
func (s *SQLiteStore) RegisterName(name string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRow(`SELECT id FROM tasknames WHERE task_name = ?`, name).Scan(&id)
	switch {
	case err == nil:
		return fmt.Errorf("task name %q: %w", name, ErrAlreadyExists)
	case !errors.Is(err, sql.ErrNoRows):
		return err
	}

	if _, err := tx.Exec(`INSERT INTO tasknames (task_name) VALUES (?)`, name); err != nil {
		return err
	}
	if err := renumberNames(tx); err != nil {
		return err
	}

	return tx.Commit()
}

// UnregisterName removes a name from the registry and renumbers the rest.
// Fails with ErrNotFound, without mutation, when the name is absent.
func (s *SQLiteStore) UnregisterName(name string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRow(`SELECT id FROM tasknames WHERE task_name = ?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("task name %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM tasknames WHERE id = ?`, id); err != nil {
		return err
	}
	if err := renumberNames(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStore) NameBySeq(seq int) (string, error) {
	var name string
	err := s.db.QueryRow(`SELECT task_name FROM tasknames WHERE seq_num = ?`, seq).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("task name #%d: %w", seq, ErrNotFound)
	}
	if err != nil {
		return "", err
	}
	return name, nil
}

func (s *SQLiteStore) ListNames() ([]NameEntry, error) {
	rows, err := s.db.Query(`SELECT seq_num, task_name FROM tasknames ORDER BY seq_num`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []NameEntry
	for rows.Next() {
		var e NameEntry
		if err := rows.Scan(&e.Seq, &e.Name); err != nil {
			return nil, err
		}
		names = append(names, e)
	}
	return names, rows.Err()
}

// AppendTask inserts a new log row, renumbers the task's working date, and
// points the manager at the new task, all in one transaction.
func (s *SQLiteStore) AppendTask(task models.Task) (int64, error) {
	workingDate := task.WorkingDate().String()
	endTime := ""
	if task.End != nil {
		endTime = task.End.String()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO tasks (name, working_date, start_time, end_time) VALUES (?, ?, ?, ?)`,
		task.Name, workingDate, task.Start.String(), endTime,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if err := renumberDay(tx, workingDate); err != nil {
		return 0, err
	}

	_, err = tx.Exec(
		`UPDATE manager SET task_id = ?, task_name = ?, start_time = ? WHERE id = 0`,
		id, task.Name, task.Start.String(),
	)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *SQLiteStore) GetTask(id int64) (models.Task, error) {
	row := s.db.QueryRow(`SELECT id, name, start_time, end_time FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	return task, err
}

func (s *SQLiteStore) TaskIDBySeq(seq int, date models.WorkDate) (int64, error) {
	var id int64
	err := s.db.QueryRow(
		`SELECT id FROM tasks WHERE seq_num = ? AND working_date = ?`,
		seq, date.String(),
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("task #%d on %s: %w", seq, date, ErrNotFound)
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ListDay returns one working date's tasks ordered by per-day sequence.
func (s *SQLiteStore) ListDay(date models.WorkDate) ([]NumberedTask, error) {
	return s.listTasks(
		`SELECT seq_num, id, name, start_time, end_time FROM tasks
		 WHERE working_date = ? ORDER BY seq_num`,
		date.String(),
	)
}

// ListAll returns the whole history ordered by working date, then per-day
// sequence.
func (s *SQLiteStore) ListAll() ([]NumberedTask, error) {
	return s.listTasks(
		`SELECT seq_num, id, name, start_time, end_time FROM tasks
		 ORDER BY working_date, seq_num`,
	)
}

func (s *SQLiteStore) listTasks(query string, args ...any) ([]NumberedTask, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []NumberedTask
	for rows.Next() {
		var nt NumberedTask
		var start, end string
		if err := rows.Scan(&nt.Seq, &nt.Task.ID, &nt.Task.Name, &start, &end); err != nil {
			return nil, err
		}
		if err := fillTimes(&nt.Task, start, end); err != nil {
			return nil, err
		}
		tasks = append(tasks, nt)
	}
	return tasks, rows.Err()
}

// UpdateTask overwrites a row in place. It does not renumber the per-day
// sequence: an edit that moves a task across a working-date boundary leaves
// that day's numbering stale until the next append or delete touches it.
func (s *SQLiteStore) UpdateTask(id int64, task models.Task) error {
	endTime := ""
	if task.End != nil {
		endTime = task.End.String()
	}

	res, err := s.db.Exec(
		`UPDATE tasks SET name = ?, working_date = ?, start_time = ?, end_time = ? WHERE id = ?`,
		task.Name, task.WorkingDate().String(), task.Start.String(), endTime, id,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteTask removes a row and renumbers the remaining tasks of its working
// date. The current-task pointer is left alone; clearing it is an explicit
// administrative operation.
func (s *SQLiteStore) DeleteTask(id int64) error {
	var workingDate string
	err := s.db.QueryRow(`SELECT working_date FROM tasks WHERE id = ?`, id).Scan(&workingDate)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return err
	}
	if err := renumberDay(tx, workingDate); err != nil {
		return err
	}

	return tx.Commit()
}

// CurrentTask returns the pointer row, or nil when no task is open.
func (s *SQLiteStore) CurrentTask() (*CurrentTask, error) {
	var taskID sql.NullInt64
	var name, start sql.NullString
	err := s.db.QueryRow(`SELECT task_id, task_name, start_time FROM manager WHERE id = 0`).
		Scan(&taskID, &name, &start)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotInitialized
	}
	if err != nil {
		return nil, err
	}
	if !taskID.Valid {
		return nil, nil
	}

	startTime, err := models.ParseTaskTime(start.String)
	if err != nil {
		return nil, fmt.Errorf("corrupt manager start time: %w", err)
	}
	return &CurrentTask{TaskID: taskID.Int64, Name: name.String, Start: startTime}, nil
}

// ResetCurrentTask clears the pointer unconditionally.
func (s *SQLiteStore) ResetCurrentTask() error {
	_, err := s.db.Exec(
		`UPDATE manager SET task_id = NULL, task_name = NULL, start_time = NULL WHERE id = 0`,
	)
	return err
}

func (s *SQLiteStore) Path() string {
	return s.path
}

// DB exposes the handle for health checks.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// renumberNames reassigns dense 1-based sequence numbers to all registered
// names in lexicographic order: fetch, rank in memory, write back.
func renumberNames(tx *sql.Tx) error {
	ids, err := collectIDs(tx, `SELECT id FROM tasknames ORDER BY task_name`)
	if err != nil {
		return err
	}
	for rank, id := range ids {
		if _, err := tx.Exec(`UPDATE tasknames SET seq_num = ? WHERE id = ?`, rank+1, id); err != nil {
			return err
		}
	}
	return nil
}

// renumberDay reassigns dense 1-based sequence numbers to one working
// date's tasks in ascending start-time order.
func renumberDay(tx *sql.Tx, workingDate string) error {
	ids, err := collectIDs(tx,
		`SELECT id FROM tasks WHERE working_date = ? ORDER BY start_time, id`, workingDate)
	if err != nil {
		return err
	}
	for rank, id := range ids {
		if _, err := tx.Exec(`UPDATE tasks SET seq_num = ? WHERE id = ?`, rank+1, id); err != nil {
			return err
		}
	}
	return nil
}

func collectIDs(tx *sql.Tx, query string, args ...any) ([]int64, error) {
	rows, err := tx.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanTask(row *sql.Row) (models.Task, error) {
	var task models.Task
	var start, end string
	if err := row.Scan(&task.ID, &task.Name, &start, &end); err != nil {
		return models.Task{}, err
	}
	if err := fillTimes(&task, start, end); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

func fillTimes(task *models.Task, start, end string) error {
	startTime, err := models.ParseTaskTime(start)
	if err != nil {
		return fmt.Errorf("corrupt start time for task %d: %w", task.ID, err)
	}
	task.Start = startTime

	if end != "" {
		endTime, err := models.ParseTaskTime(end)
		if err != nil {
			return fmt.Errorf("corrupt end time for task %d: %w", task.ID, err)
		}
		task.End = &endTime
	}

	task.IsBreak = task.Name == models.BreakTaskName
	return nil
}
