package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/julianstephens/tasklog/internal/models"
)

// JSONStore is a single-file JSON backend behind the same Provider
// interface, selected when the configured path ends in ".json".
//
// Mutations are applied to a copy of the in-memory ledger and swapped in
// only after the file write succeeds, so a failed save leaves the prior
// state untouched.
//
// Not safe for concurrent use; running multiple processes against the same
// file is not supported.
type JSONStore struct {
	path   string
	mode   AccessMode
	ledger *jsonLedger
}

type jsonLedger struct {
	Version int           `json:"version"`
	Names   []jsonName    `json:"names"`
	Tasks   []jsonTask    `json:"tasks"`
	Current *jsonCurrent  `json:"current"`
	NextID  int64         `json:"next_id"`
}

type jsonName struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Seq  int    `json:"seq_num"`
}

type jsonTask struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	WorkingDate string `json:"working_date"`
	Seq         int    `json:"seq_num"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
}

type jsonCurrent struct {
	TaskID    int64  `json:"task_id"`
	Name      string `json:"name"`
	StartTime string `json:"start_time"`
}

// NewJSONStore creates a store for the given JSON file. The file is not
// touched until Open is called.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Open(mode AccessMode) error {
	if s.ledger != nil {
		return nil
	}
	s.mode = mode

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			if mode == ReadWriteCreate {
				// file appears on Initialize
				return nil
			}
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	ledger := &jsonLedger{}
	if err := json.Unmarshal(data, ledger); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	s.ledger = ledger
	return nil
}

func (s *JSONStore) Close() error {
	s.ledger = nil
	return nil
}

func (s *JSONStore) IsInitialized() (bool, error) {
	return s.ledger != nil, nil
}

func (s *JSONStore) Initialize() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create storage directory: %w", err)
		}
	}
	fresh := &jsonLedger{Version: 1, NextID: 1}
	if err := s.save(fresh); err != nil {
		return err
	}
	s.ledger = fresh
	return nil
}

func (s *JSONStore) RegisterName(name string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	for _, n := range s.ledger.Names {
		if n.Name == name {
			return fmt.Errorf("task name %q: %w", name, ErrAlreadyExists)
		}
	}

	next := s.clone()
	next.Names = append(next.Names, jsonName{ID: next.NextID, Name: name})
	next.NextID++
	renumberJSONNames(next)
	return s.commit(next)
}

func (s *JSONStore) UnregisterName(name string) error {
	if err := s.loaded(); err != nil {
		return err
	}

	next := s.clone()
	idx := -1
	for i, n := range next.Names {
		if n.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("task name %q: %w", name, ErrNotFound)
	}
	next.Names = append(next.Names[:idx], next.Names[idx+1:]...)
	renumberJSONNames(next)
	return s.commit(next)
}

func (s *JSONStore) NameBySeq(seq int) (string, error) {
	if err := s.loaded(); err != nil {
		return "", err
	}
	for _, n := range s.ledger.Names {
		if n.Seq == seq {
			return n.Name, nil
		}
	}
	return "", fmt.Errorf("task name #%d: %w", seq, ErrNotFound)
}

func (s *JSONStore) ListNames() ([]NameEntry, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	entries := make([]NameEntry, 0, len(s.ledger.Names))
	for _, n := range s.ledger.Names {
		entries = append(entries, NameEntry{Seq: n.Seq, Name: n.Name})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Seq < entries[j].Seq })
	return entries, nil
}

func (s *JSONStore) AppendTask(task models.Task) (int64, error) {
	if err := s.loaded(); err != nil {
		return 0, err
	}

	next := s.clone()
	id := next.NextID
	next.NextID++

	endTime := ""
	if task.End != nil {
		endTime = task.End.String()
	}
	next.Tasks = append(next.Tasks, jsonTask{
		ID:          id,
		Name:        task.Name,
		WorkingDate: task.WorkingDate().String(),
		StartTime:   task.Start.String(),
		EndTime:     endTime,
	})
	renumberJSONDay(next, task.WorkingDate().String())
	next.Current = &jsonCurrent{TaskID: id, Name: task.Name, StartTime: task.Start.String()}

	if err := s.commit(next); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *JSONStore) GetTask(id int64) (models.Task, error) {
	if err := s.loaded(); err != nil {
		return models.Task{}, err
	}
	for _, rec := range s.ledger.Tasks {
		if rec.ID == id {
			return decodeJSONTask(rec)
		}
	}
	return models.Task{}, fmt.Errorf("task %d: %w", id, ErrNotFound)
}

func (s *JSONStore) TaskIDBySeq(seq int, date models.WorkDate) (int64, error) {
	if err := s.loaded(); err != nil {
		return 0, err
	}
	for _, rec := range s.ledger.Tasks {
		if rec.Seq == seq && rec.WorkingDate == date.String() {
			return rec.ID, nil
		}
	}
	return 0, fmt.Errorf("task #%d on %s: %w", seq, date, ErrNotFound)
}

func (s *JSONStore) ListDay(date models.WorkDate) ([]NumberedTask, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	var tasks []NumberedTask
	for _, rec := range s.ledger.Tasks {
		if rec.WorkingDate != date.String() {
			continue
		}
		task, err := decodeJSONTask(rec)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, NumberedTask{Seq: rec.Seq, Task: task})
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].Seq < tasks[j].Seq })
	return tasks, nil
}

func (s *JSONStore) ListAll() ([]NumberedTask, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	recs := make([]jsonTask, len(s.ledger.Tasks))
	copy(recs, s.ledger.Tasks)
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].WorkingDate != recs[j].WorkingDate {
			return recs[i].WorkingDate < recs[j].WorkingDate
		}
		return recs[i].Seq < recs[j].Seq
	})

	var tasks []NumberedTask
	for _, rec := range recs {
		task, err := decodeJSONTask(rec)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, NumberedTask{Seq: rec.Seq, Task: task})
	}
	return tasks, nil
}

func (s *JSONStore) UpdateTask(id int64, task models.Task) error {
	if err := s.loaded(); err != nil {
		return err
	}

	next := s.clone()
	for i, rec := range next.Tasks {
		if rec.ID != id {
			continue
		}
		endTime := ""
		if task.End != nil {
			endTime = task.End.String()
		}
		next.Tasks[i] = jsonTask{
			ID:          id,
			Name:        task.Name,
			WorkingDate: task.WorkingDate().String(),
			Seq:         rec.Seq,
			StartTime:   task.Start.String(),
			EndTime:     endTime,
		}
		return s.commit(next)
	}
	return fmt.Errorf("task %d: %w", id, ErrNotFound)
}

func (s *JSONStore) DeleteTask(id int64) error {
	if err := s.loaded(); err != nil {
		return err
	}

	next := s.clone()
	idx := -1
	for i, rec := range next.Tasks {
		if rec.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	workingDate := next.Tasks[idx].WorkingDate
	next.Tasks = append(next.Tasks[:idx], next.Tasks[idx+1:]...)
	renumberJSONDay(next, workingDate)
	return s.commit(next)
}

func (s *JSONStore) CurrentTask() (*CurrentTask, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	if s.ledger.Current == nil {
		return nil, nil
	}
	start, err := models.ParseTaskTime(s.ledger.Current.StartTime)
	if err != nil {
		return nil, fmt.Errorf("corrupt current task start time: %w", err)
	}
	return &CurrentTask{
		TaskID: s.ledger.Current.TaskID,
		Name:   s.ledger.Current.Name,
		Start:  start,
	}, nil
}

func (s *JSONStore) ResetCurrentTask() error {
	if err := s.loaded(); err != nil {
		return err
	}
	next := s.clone()
	next.Current = nil
	return s.commit(next)
}

func (s *JSONStore) Path() string {
	return s.path
}

func (s *JSONStore) loaded() error {
	if s.ledger == nil {
		return ErrNotInitialized
	}
	return nil
}

func (s *JSONStore) clone() *jsonLedger {
	next := &jsonLedger{
		Version: s.ledger.Version,
		Names:   make([]jsonName, len(s.ledger.Names)),
		Tasks:   make([]jsonTask, len(s.ledger.Tasks)),
		NextID:  s.ledger.NextID,
	}
	copy(next.Names, s.ledger.Names)
	copy(next.Tasks, s.ledger.Tasks)
	if s.ledger.Current != nil {
		cur := *s.ledger.Current
		next.Current = &cur
	}
	return next
}

func (s *JSONStore) commit(next *jsonLedger) error {
	if s.mode == ReadOnly {
		return errors.New("storage opened read-only")
	}
	if err := s.save(next); err != nil {
		return err
	}
	s.ledger = next
	return nil
}

func (s *JSONStore) save(ledger *jsonLedger) error {
	data, err := json.MarshalIndent(ledger, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func renumberJSONNames(ledger *jsonLedger) {
	sort.Slice(ledger.Names, func(i, j int) bool { return ledger.Names[i].Name < ledger.Names[j].Name })
	for i := range ledger.Names {
		ledger.Names[i].Seq = i + 1
	}
}

func renumberJSONDay(ledger *jsonLedger, workingDate string) {
	var day []*jsonTask
	for i := range ledger.Tasks {
		if ledger.Tasks[i].WorkingDate == workingDate {
			day = append(day, &ledger.Tasks[i])
		}
	}
	sort.Slice(day, func(i, j int) bool {
		if day[i].StartTime != day[j].StartTime {
			return day[i].StartTime < day[j].StartTime
		}
		return day[i].ID < day[j].ID
	})
	for rank, rec := range day {
		rec.Seq = rank + 1
	}
}

func decodeJSONTask(rec jsonTask) (models.Task, error) {
	start, err := models.ParseTaskTime(rec.StartTime)
	if err != nil {
		return models.Task{}, fmt.Errorf("corrupt start time for task %d: %w", rec.ID, err)
	}
	task := models.Task{
		ID:      rec.ID,
		Name:    rec.Name,
		Start:   start,
		IsBreak: rec.Name == models.BreakTaskName,
	}
	if rec.EndTime != "" {
		end, err := models.ParseTaskTime(rec.EndTime)
		if err != nil {
			return models.Task{}, fmt.Errorf("corrupt end time for task %d: %w", rec.ID, err)
		}
		task.End = &end
	}
	return task, nil
}
