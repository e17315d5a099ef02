package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tasklog/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	title := titleStyle.Render(fmt.Sprintf("tasklog — %s", m.date))

	var body string
	switch {
	case m.loadErr != nil:
		body = errorStyle.Render(fmt.Sprintf("Error: %v", m.loadErr))
	case len(m.tasks) == 0:
		body = "No tasks logged."
	default:
		body = lipgloss.JoinVertical(lipgloss.Left, m.viewTasks(), m.viewSummary())
	}

	ui := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		body,
		m.viewCurrent(),
		m.help.View(m.keys),
	)
	return docStyle.Render(ui)
}

func (m Model) viewTasks() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("%2s  %-5s - %-5s  %8s  %s",
		"No", "Start", "End", "Duration", "Task")))
	b.WriteString("\n")

	for _, nt := range m.tasks {
		end := ""
		duration := ""
		if nt.Task.End != nil {
			end = nt.Task.End.Clock()
			duration = nt.Task.DurationHHMM()
		}
		row := fmt.Sprintf("%2d  %-5s - %-5s  %8s  %s",
			nt.Seq, nt.Task.Start.Clock(), end, duration, nt.Task.Name)
		if nt.Task.IsBreak {
			row = breakStyle.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewSummary() string {
	if m.summary == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Summary"))
	b.WriteString(fmt.Sprintf("\n%s - %s  total %s\n",
		m.summary.Start.Clock(), m.summary.End.Clock(),
		models.FormatDurationHHMM(m.summary.Total)))

	names := make([]string, 0, len(m.summary.ByName))
	for name := range m.summary.ByName {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			models.FormatDurationHHMM(m.summary.ByName[name]), name))
	}

	return b.String()
}

func (m Model) viewCurrent() string {
	if m.current == nil {
		return ""
	}
	elapsed := models.Now().Sub(m.current.Start)
	return runningStyle.Render(fmt.Sprintf("▶ %s since %s (%s)",
		m.current.Name, m.current.Start.Clock(), models.FormatDurationHHMM(elapsed)))
}
