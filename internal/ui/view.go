package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"flowstate/internal/calendar"
	"flowstate/internal/note"
	"flowstate/internal/task"
)

var (
	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(26)
	activeColumnStyle = columnStyle.BorderForeground(lipgloss.Color("214"))
	headerStyle       = lipgloss.NewStyle().Bold(true)
	mutedStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("flowstate"))
	b.WriteString("  ")
	for i, name := range tabNames {
		if tab(i) == m.tab {
			b.WriteString("[" + name + "] ")
		} else {
			b.WriteString(mutedStyle.Render(name) + " ")
		}
	}
	b.WriteString("\n\n")

	switch m.tab {
	case tabBoard:
		b.WriteString(m.viewBoard())
	case tabTodos:
		b.WriteString(m.viewTodos())
	case tabNotes:
		b.WriteString(m.viewNotes())
	case tabCalendar:
		b.WriteString(m.viewCalendar())
	}

	b.WriteString("\n")
	switch m.mode {
	case modeInput, modeEventForm:
		b.WriteString(m.input.View())
		b.WriteString("\n")
	case modeNoteEdit:
		b.WriteString(m.area.View())
		b.WriteString("\n")
	case modeConfirm:
		if m.confirm != nil {
			b.WriteString(m.confirm.prompt)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.helpLine()))
	return b.String()
}

func (m Model) viewBoard() string {
	cols := m.visibleColumns()
	rendered := make([]string, 0, len(cols))
	dragged, isDragging := m.board.Dragging()

	for i, status := range cols {
		tasks := m.columnTasks(status)
		var col strings.Builder
		col.WriteString(headerStyle.Render(fmt.Sprintf("%s (%d)", task.StatusLabels[status], len(tasks))))
		col.WriteString("\n")
		if len(tasks) == 0 {
			col.WriteString(mutedStyle.Render("empty"))
		}
		for j, t := range tasks {
			cursor := " "
			if i == m.boardCol && j == clampCursor(m.boardRow, len(tasks)) {
				cursor = ">"
			}
			line := fmt.Sprintf("%s %s %s", cursor, priorityMark(t.Priority), t.Title)
			if isDragging && t.ID == dragged.ID {
				line += " *"
			}
			if t.DueDate != 0 {
				line += mutedStyle.Render(" " + time.UnixMilli(t.DueDate).Format("01-02"))
			}
			col.WriteString(line)
			col.WriteString("\n")
		}

		style := columnStyle
		if i == m.boardCol {
			style = activeColumnStyle
		}
		rendered = append(rendered, style.Render(col.String()))
	}

	out := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	if m.priorityFilter != "all" {
		out += "\n" + mutedStyle.Render("filter: "+m.priorityFilter)
	}
	return out
}

func priorityMark(p task.Priority) string {
	switch p {
	case task.PriorityHigh:
		return "!"
	case task.PriorityLow:
		return "·"
	default:
		return "-"
	}
}

func (m Model) viewTodos() string {
	todos := m.todos.Todos()
	if len(todos) == 0 {
		return "No todos yet. Press 'a' to add one."
	}
	var b strings.Builder
	for i, t := range todos {
		cursor := " "
		if i == clampCursor(m.todoCursor, len(todos)) {
			cursor = ">"
		}
		checkbox := "[ ]"
		if t.Completed {
			checkbox = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", cursor, checkbox, t.Text))
	}
	return b.String()
}

func (m Model) viewNotes() string {
	notes := m.notes.Notes()
	var list strings.Builder
	for i, n := range notes {
		cursor := " "
		if i == clampCursor(m.noteCursor, len(notes)) {
			cursor = ">"
		}
		marker := " "
		if n.ID == m.notes.ActiveID() {
			marker = "*"
		}
		list.WriteString(fmt.Sprintf("%s%s %s %s\n", cursor, marker, n.Title, mutedStyle.Render(relativeTime(n.UpdatedAt))))
	}

	active := m.notes.Active()
	preview := note.PlainText(active.Content)
	if strings.TrimSpace(preview) == "" {
		preview = mutedStyle.Render("(empty)")
	}

	left := columnStyle.Render(list.String())
	right := columnStyle.Width(50).Render(headerStyle.Render(active.Title) + "\n\n" + preview)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m Model) viewCalendar() string {
	grid := m.viewMonthGrid()

	bucket := calendar.Midnight(m.day)
	events := m.events.ByDate(bucket)
	due := calendar.TasksDueOn(m.tasks.Tasks(), bucket)

	var b strings.Builder
	b.WriteString(headerStyle.Render(m.day.Format("Monday, Jan 2 2006")))
	b.WriteString("\n\n")
	if len(events) == 0 {
		b.WriteString(mutedStyle.Render("No events"))
		b.WriteString("\n")
	}
	for i, e := range events {
		cursor := " "
		if i == clampCursor(m.eventCursor, len(events)) {
			cursor = ">"
		}
		line := fmt.Sprintf("%s %s", cursor, e.Title)
		if e.StartTime != "" {
			span := e.StartTime
			if e.EndTime != "" {
				span += "-" + e.EndTime
			}
			line += mutedStyle.Render(" " + span)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if len(due) > 0 {
		b.WriteString("\n")
		b.WriteString(headerStyle.Render("Due"))
		b.WriteString("\n")
		for _, t := range due {
			b.WriteString(fmt.Sprintf("  %s %s\n", priorityMark(t.Priority), t.Title))
		}
	}

	left := columnStyle.Width(24).Render(grid)
	right := columnStyle.Width(46).Render(b.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// viewMonthGrid renders the selected day's month, marking days that have
// events and highlighting the selection.
func (m Model) viewMonthGrid() string {
	first := time.Date(m.day.Year(), m.day.Month(), 1, 0, 0, 0, 0, m.day.Location())
	var b strings.Builder
	b.WriteString(headerStyle.Render(first.Format("January 2006")))
	b.WriteString("\n Su Mo Tu We Th Fr Sa\n")

	b.WriteString(strings.Repeat("   ", int(first.Weekday())))
	for d := first; d.Month() == m.day.Month(); d = d.AddDate(0, 0, 1) {
		label := fmt.Sprintf("%2d", d.Day())
		switch {
		case d.Day() == m.day.Day():
			b.WriteString(">" + label)
		case len(m.events.ByDate(calendar.Midnight(d))) > 0:
			b.WriteString("*" + label)
		default:
			b.WriteString(" " + label)
		}
		if d.Weekday() == time.Saturday {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) helpLine() string {
	k := m.cfg.Keys
	switch m.tab {
	case tabBoard:
		return fmt.Sprintf("%s/%s/%s/%s move • %s grab • %s add • %s rename • %s priority • %s archive • %s restore • %s archive col • %s filter • %s delete • %s quit",
			k.Left, k.Down, k.Up, k.Right, k.Grab, k.Add, k.Rename, k.Edit, k.Archive, k.Restore, k.ShowHidden, k.Filter, k.Delete, k.Quit)
	case tabTodos:
		return fmt.Sprintf("%s/%s move • %s add • space toggle • %s rename • %s delete • %s clear done • %s quit",
			k.Up, k.Down, k.Add, k.Rename, k.Delete, k.Clear, k.Quit)
	case tabNotes:
		return fmt.Sprintf("%s/%s move • %s select • %s add • %s rename • %s edit • %s delete • %s quit",
			k.Up, k.Down, k.Confirm, k.Add, k.Rename, k.Edit, k.Delete, k.Quit)
	default:
		return fmt.Sprintf("%s/%s day • [/] week • %s/%s event • %s add • %s edit • %s delete • %s quit",
			k.Left, k.Right, k.Up, k.Down, k.Add, k.Edit, k.Delete, k.Quit)
	}
}

// relativeTime renders an epoch-millis timestamp the way the notes list
// shows freshness: just now, Nm ago, Nh ago, Nd ago, then a short date.
func relativeTime(ms int64) string {
	if ms == 0 {
		return ""
	}
	diff := time.Since(time.UnixMilli(ms))
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return time.UnixMilli(ms).Format("Jan 2")
	}
}
