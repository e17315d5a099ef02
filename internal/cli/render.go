package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tasklog/internal/models"
	"github.com/julianstephens/tasklog/internal/storage"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	breakStyle  = lipgloss.NewStyle().Faint(true)
)

const taskRowFormat = "%-10s  %2s  %-5s - %-5s  %8s  %s"

// renderTaskRows prints a day (or all-history) task table.
func renderTaskRows(tasks []storage.NumberedTask) {
	fmt.Println(headerStyle.Render(fmt.Sprintf(taskRowFormat,
		"Date", "No", "Start", "End", "Duration", "Task")))

	for _, nt := range tasks {
		end := ""
		duration := ""
		if nt.Task.End != nil {
			end = nt.Task.End.Clock()
			duration = nt.Task.DurationHHMM()
		}
		row := fmt.Sprintf(taskRowFormat,
			nt.Task.WorkingDate(), fmt.Sprintf("%d", nt.Seq),
			nt.Task.Start.Clock(), end, duration, nt.Task.Name)
		if nt.Task.IsBreak {
			row = breakStyle.Render(row)
		}
		fmt.Println(row)
	}
}

// renderSummary prints the aggregate block below a single-day listing.
func renderSummary(summary *models.Summary) {
	if summary == nil {
		return
	}

	fmt.Println()
	fmt.Println(headerStyle.Render("Summary"))
	fmt.Printf("Start    : %s\n", summary.Start.Clock())
	fmt.Printf("End      : %s\n", summary.End.Clock())
	fmt.Printf("Duration : %s\n", models.FormatDurationHHMM(summary.Total))

	if len(summary.ByName) > 0 {
		names := make([]string, 0, len(summary.ByName))
		for name := range summary.ByName {
			names = append(names, name)
		}
		sort.Strings(names)

		width := 0
		for _, name := range names {
			if len(name) > width {
				width = len(name)
			}
		}

		fmt.Println()
		fmt.Println(headerStyle.Render("Task duration"))
		for _, name := range names {
			fmt.Printf("%-*s  %s\n", width, name, models.FormatDurationHHMM(summary.ByName[name]))
		}
	}

	if len(summary.Breaks) > 0 {
		fmt.Println()
		fmt.Println(headerStyle.Render("Break"))
		for _, b := range summary.Breaks {
			end := strings.Repeat(" ", 5)
			if b.End != nil {
				end = b.End.Clock()
			}
			fmt.Printf("%s - %s\n", b.Start.Clock(), end)
		}
	}
}
