package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/tasklog/internal/models"
	"github.com/julianstephens/tasklog/internal/storage"
)

// tickMsg refreshes the dashboard once a minute so the running task's
// elapsed time stays current.
type tickMsg time.Time

// Model is a read-only dashboard over one working date of the ledger.
type Model struct {
	store    storage.Provider
	date     models.WorkDate
	tasks    []storage.NumberedTask
	summary  *models.Summary
	current  *storage.CurrentTask
	loadErr  error
	keys     KeyMap
	help     help.Model
	quitting bool
	width    int
	height   int
}

func NewModel(store storage.Provider) Model {
	m := Model{
		store: store,
		date:  models.Today(),
		keys:  DefaultKeyMap(),
		help:  help.New(),
	}
	m.reload()
	return m
}

func (m *Model) reload() {
	m.loadErr = nil

	tasks, err := m.store.ListDay(m.date)
	if err != nil {
		m.loadErr = err
		m.tasks = nil
		m.summary = nil
		m.current = nil
		return
	}
	m.tasks = tasks

	plain := make([]models.Task, len(tasks))
	for i, nt := range tasks {
		plain[i] = nt.Task
	}
	m.summary = models.Summarize(plain)

	cur, err := m.store.CurrentTask()
	if err != nil {
		m.loadErr = err
		return
	}
	m.current = cur
}

func tick() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tickMsg:
		m.reload()
		return m, tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			m.reload()
		case key.Matches(msg, m.keys.PrevDay):
			m.date = m.date.AddDays(-1)
			m.reload()
		case key.Matches(msg, m.keys.NextDay):
			m.date = m.date.AddDays(1)
			m.reload()
		case key.Matches(msg, m.keys.Today):
			m.date = models.Today()
			m.reload()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}

	return m, nil
}
