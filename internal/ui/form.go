package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"flowstate/internal/calendar"
)

// eventForm walks the user through the calendar event fields one at a time,
// reusing the single shared text input.
type eventForm struct {
	editID      string
	title       string
	description string
	start       string
	end         string
	color       string
	index       int
}

func eventFields() []string {
	return []string{"title", "description", "start time (HH:MM)", "end time (HH:MM)", "color (#rrggbb)"}
}

// newEventForm starts a blank form, or one prefilled from an existing event.
func newEventForm(e *calendar.Event) *eventForm {
	if e == nil {
		return &eventForm{}
	}
	return &eventForm{
		editID:      e.ID,
		title:       e.Title,
		description: e.Description,
		start:       e.StartTime,
		end:         e.EndTime,
		color:       e.Color,
	}
}

func (f eventForm) currentLabel() string {
	return eventFields()[f.index]
}

func (f eventForm) currentValue() string {
	switch f.index {
	case 0:
		return f.title
	case 1:
		return f.description
	case 2:
		return f.start
	case 3:
		return f.end
	case 4:
		return f.color
	default:
		return ""
	}
}

func (f *eventForm) setCurrentValue(v string) {
	switch f.index {
	case 0:
		f.title = v
	case 1:
		f.description = v
	case 2:
		f.start = v
	case 3:
		f.end = v
	case 4:
		f.color = v
	}
}

func (m Model) updateEventForm(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.form = nil
		m.mode = modeNormal
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		if m.form == nil {
			return m, nil
		}
		m.form.setCurrentValue(m.input.Value())
		if m.form.index >= len(eventFields())-1 {
			return m.saveEventForm()
		}
		m.form.index++
		m.input.SetValue(m.form.currentValue())
		m.input.Placeholder = m.form.currentLabel()
		m.status = fmt.Sprintf("Editing %s (field %d of %d)", m.form.currentLabel(), m.form.index+1, len(eventFields()))
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) saveEventForm() (tea.Model, tea.Cmd) {
	f := m.form
	m.form = nil
	m.mode = modeNormal
	m.input.SetValue("")
	m.input.Blur()

	title := strings.TrimSpace(f.title)
	if title == "" {
		m.status = "Title cannot be empty"
		return m, nil
	}

	if f.editID == "" {
		m.events.Add(calendar.AddOptions{
			Title:       title,
			Description: f.description,
			Date:        calendar.Midnight(m.day),
			StartTime:   f.start,
			EndTime:     f.end,
			Color:       f.color,
		})
		m.status = "Added event"
		return m, nil
	}

	m.events.Update(f.editID, calendar.UpdateOptions{
		Title:       &title,
		Description: &f.description,
		StartTime:   &f.start,
		EndTime:     &f.end,
		Color:       &f.color,
	})
	m.status = "Updated event"
	return m, nil
}
