package cli

import (
	"github.com/julianstephens/tasklog/internal/models"
	"github.com/julianstephens/tasklog/internal/storage"
)

type Context struct {
	Store storage.Provider
}

// clockOrNow resolves an optional --time flag value: an empty string means
// the current wall clock, anything else must parse as HHMM / HH:MM.
func clockOrNow(s string) (models.TaskTime, error) {
	if s == "" {
		return models.Now(), nil
	}
	return models.ParseClock(s)
}

// dateOrToday resolves an optional --date flag value against the working
// date, not the calendar date.
func dateOrToday(s string) (models.WorkDate, error) {
	if s == "" {
		return models.Today(), nil
	}
	return models.ParseWorkDate(s)
}

// closeOpenTask fills the end time of the task the pointer references, if
// any. The pointer itself is left alone so callers decide whether it gets
// cleared (end) or overwritten (start).
func closeOpenTask(store storage.Provider, end models.TaskTime) (*models.Task, error) {
	cur, err := store.CurrentTask()
	if err != nil {
		return nil, err
	}
	if cur == nil {
		return nil, nil
	}

	task, err := store.GetTask(cur.TaskID)
	if err != nil {
		return nil, err
	}
	ended, err := task.Ended(end)
	if err != nil {
		return nil, err
	}
	if err := store.UpdateTask(task.ID, ended); err != nil {
		return nil, err
	}
	return &ended, nil
}
