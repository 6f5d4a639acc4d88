package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"flowstate/internal/board"
	"flowstate/internal/calendar"
	"flowstate/internal/config"
	"flowstate/internal/note"
	"flowstate/internal/store"
	"flowstate/internal/task"
	"flowstate/internal/todo"
)

type tab int

const (
	tabBoard tab = iota
	tabTodos
	tabNotes
	tabCalendar
)

var tabNames = []string{"Board", "Todos", "Notes", "Calendar"}

type mode int

const (
	modeNormal mode = iota
	modeInput
	modeNoteEdit
	modeEventForm
	modeConfirm
)

// inputAction says what the shared text input is collecting.
type inputAction int

const (
	actionAddTask inputAction = iota
	actionRenameTask
	actionAddTodo
	actionRenameTodo
	actionRenameNote
)

type confirmState struct {
	prompt string
	apply  func(*Model)
}

type Model struct {
	cfg config.Config

	tasks  *task.Repository
	todos  *todo.Repository
	notes  *note.Repository
	events *calendar.Repository
	board  *board.Reducer

	tab  tab
	mode mode

	input   textinput.Model
	action  inputAction
	editID  string
	area    textarea.Model
	form    *eventForm
	confirm *confirmState
	status  string

	// board tab
	boardCol       int
	boardRow       int
	showArchive    bool
	priorityFilter string // "all" or a task.Priority value
	dragging       bool
	hoverID        string

	// todos tab
	todoCursor int

	// notes tab
	noteCursor int

	// calendar tab
	day         time.Time
	eventCursor int
}

func Run(kv store.KV, cfg config.Config) error {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40

	ta := textarea.New()
	ta.SetWidth(60)
	ta.SetHeight(10)

	tasks := task.NewRepository(kv)
	m := Model{
		cfg:            cfg,
		tasks:          tasks,
		todos:          todo.NewRepository(kv),
		notes:          note.NewRepository(kv),
		events:         calendar.NewRepository(kv),
		board:          board.New(tasks),
		input:          ti,
		area:           ta,
		priorityFilter: "all",
		day:            time.Now(),
		status:         "Press 'a' to add, tab to switch panels.",
	}

	program := tea.NewProgram(m, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case modeInput:
			return m.updateInputMode(msg.String(), msg)
		case modeNoteEdit:
			return m.updateNoteEditMode(msg.String(), msg)
		case modeEventForm:
			return m.updateEventForm(msg.String(), msg)
		case modeConfirm:
			return m.updateConfirm(msg.String())
		}
		return m.handleKey(msg.String())
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
		m.area.SetWidth(msg.Width - 10)
	}
	return m, nil
}

func (m Model) handleKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.NextTab:
		m.tab = tab((int(m.tab) + 1) % len(tabNames))
		m.abandonDrag()
		return m, nil
	case m.cfg.Keys.PrevTab:
		m.tab = tab((int(m.tab) + len(tabNames) - 1) % len(tabNames))
		m.abandonDrag()
		return m, nil
	}

	switch m.tab {
	case tabBoard:
		return m.updateBoard(key)
	case tabTodos:
		return m.updateTodos(key)
	case tabNotes:
		return m.updateNotes(key)
	case tabCalendar:
		return m.updateCalendar(key)
	}
	return m, nil
}

// visibleColumns returns the board columns in display order, including the
// archive column when it is toggled on.
func (m Model) visibleColumns() []task.Status {
	cols := append([]task.Status(nil), task.MainStatuses...)
	if m.showArchive {
		cols = append(cols, task.StatusArchived)
	}
	return cols
}

// columnTasks applies the priority filter on top of ByStatus, matching what
// the board renders.
func (m Model) columnTasks(status task.Status) []task.Task {
	tasks := m.tasks.ByStatus(status)
	if m.priorityFilter == "all" {
		return tasks
	}
	var out []task.Task
	for _, t := range tasks {
		if string(t.Priority) == m.priorityFilter {
			out = append(out, t)
		}
	}
	return out
}

func (m Model) selectedColumn() task.Status {
	cols := m.visibleColumns()
	return cols[clampCursor(m.boardCol, len(cols))]
}

func (m Model) selectedTask() (task.Task, bool) {
	tasks := m.columnTasks(m.selectedColumn())
	if len(tasks) == 0 {
		return task.Task{}, false
	}
	return tasks[clampCursor(m.boardRow, len(tasks))], true
}

func (m *Model) abandonDrag() {
	if !m.dragging {
		return
	}
	m.board.DragEnd("")
	m.dragging = false
	m.hoverID = ""
}

func (m Model) updateBoard(key string) (tea.Model, tea.Cmd) {
	cols := m.visibleColumns()
	switch key {
	case m.cfg.Keys.Left, "left":
		if m.dragging {
			return m.dragToColumn(-1)
		}
		m.boardCol = clampCursor(m.boardCol-1, len(cols))
		m.boardRow = 0
	case m.cfg.Keys.Right, "right":
		if m.dragging {
			return m.dragToColumn(1)
		}
		m.boardCol = clampCursor(m.boardCol+1, len(cols))
		m.boardRow = 0
	case m.cfg.Keys.Down, "down":
		if m.dragging {
			return m.dragOverRow(1)
		}
		m.boardRow = clampCursor(m.boardRow+1, len(m.columnTasks(m.selectedColumn())))
	case m.cfg.Keys.Up, "up":
		if m.dragging {
			return m.dragOverRow(-1)
		}
		m.boardRow = clampCursor(m.boardRow-1, len(m.columnTasks(m.selectedColumn())))
	case m.cfg.Keys.Grab:
		if m.dragging {
			return m, nil
		}
		t, ok := m.selectedTask()
		if !ok {
			m.status = "Nothing to grab"
			return m, nil
		}
		m.board.DragStart(t.ID)
		m.dragging = true
		m.hoverID = ""
		m.status = fmt.Sprintf("Dragging %q: move with %s/%s/%s/%s, %s to drop, %s to abandon",
			t.Title, m.cfg.Keys.Left, m.cfg.Keys.Down, m.cfg.Keys.Up, m.cfg.Keys.Right,
			m.cfg.Keys.Confirm, m.cfg.Keys.Cancel)
	case m.cfg.Keys.Confirm, "enter":
		if !m.dragging {
			return m, nil
		}
		m.board.DragEnd(m.hoverID)
		m.dragging = false
		m.hoverID = ""
		m.status = "Dropped"
	case m.cfg.Keys.Cancel, "esc":
		if m.dragging {
			m.abandonDrag()
			m.status = "Drag abandoned"
		}
	case m.cfg.Keys.Add:
		m.mode = modeInput
		m.action = actionAddTask
		m.input.Placeholder = "Task title"
		m.input.SetValue("")
		m.input.Focus()
		m.status = "Add task: type a title and press Enter"
	case m.cfg.Keys.Rename:
		t, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		m.mode = modeInput
		m.action = actionRenameTask
		m.editID = t.ID
		m.input.Placeholder = "Task title"
		m.input.SetValue(t.Title)
		m.input.Focus()
	case m.cfg.Keys.Edit:
		t, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		next := nextPriority(t.Priority)
		m.tasks.Update(t.ID, task.UpdateOptions{Priority: &next})
		m.status = fmt.Sprintf("Priority: %s", next)
	case m.cfg.Keys.Archive:
		t, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		if t.Status != task.StatusComplete {
			m.status = "Only complete tasks can be archived"
			return m, nil
		}
		m.tasks.Archive(t.ID)
		m.boardRow = clampCursor(m.boardRow, len(m.columnTasks(m.selectedColumn())))
		m.status = "Archived"
	case m.cfg.Keys.Restore:
		if m.selectedColumn() != task.StatusArchived {
			return m, nil
		}
		t, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		m.tasks.Restore(t.ID)
		m.boardRow = clampCursor(m.boardRow, len(m.columnTasks(task.StatusArchived)))
		m.status = "Restored to Complete"
	case m.cfg.Keys.ShowHidden:
		m.showArchive = !m.showArchive
		m.boardCol = clampCursor(m.boardCol, len(m.visibleColumns()))
	case m.cfg.Keys.Clear:
		if m.selectedColumn() != task.StatusArchived {
			return m, nil
		}
		m.confirm = &confirmState{
			prompt: "Delete all archived tasks? y/n",
			apply: func(mm *Model) {
				mm.tasks.ClearArchived()
				mm.boardRow = 0
				mm.status = "Archive cleared"
			},
		}
		m.mode = modeConfirm
	case m.cfg.Keys.Delete:
		t, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		id := t.ID
		m.confirm = &confirmState{
			prompt: fmt.Sprintf("Delete %q? y/n", t.Title),
			apply: func(mm *Model) {
				mm.tasks.Delete(id)
				mm.boardRow = clampCursor(mm.boardRow, len(mm.columnTasks(mm.selectedColumn())))
				mm.status = "Deleted task"
			},
		}
		m.mode = modeConfirm
	case m.cfg.Keys.Filter:
		m.priorityFilter = nextFilter(m.priorityFilter)
		m.boardRow = 0
		m.status = "Filter: " + m.priorityFilter
	}
	return m, nil
}

// dragToColumn hovers the dragged task over an adjacent column, which applies
// the eager status move.
func (m Model) dragToColumn(delta int) (tea.Model, tea.Cmd) {
	cols := m.visibleColumns()
	next := clampCursor(m.boardCol+delta, len(cols))
	if cols[next] == task.StatusArchived {
		// Archive is not a drop target; only the explicit archive action
		// moves tasks there.
		return m, nil
	}
	m.boardCol = next
	m.boardRow = 0
	m.hoverID = string(cols[next])
	m.board.DragOver(m.hoverID)
	return m, nil
}

// dragOverRow hovers the dragged task over the task above or below it in the
// current column.
func (m Model) dragOverRow(delta int) (tea.Model, tea.Cmd) {
	tasks := m.columnTasks(m.selectedColumn())
	if len(tasks) == 0 {
		return m, nil
	}
	m.boardRow = clampCursor(m.boardRow+delta, len(tasks))
	over := tasks[m.boardRow]
	dragged, ok := m.board.Dragging()
	if ok && over.ID != dragged.ID {
		m.hoverID = over.ID
		m.board.DragOver(m.hoverID)
	}
	return m, nil
}

func (m Model) updateTodos(key string) (tea.Model, tea.Cmd) {
	todos := m.todos.Todos()
	switch key {
	case m.cfg.Keys.Down, "down":
		m.todoCursor = clampCursor(m.todoCursor+1, len(todos))
	case m.cfg.Keys.Up, "up":
		m.todoCursor = clampCursor(m.todoCursor-1, len(todos))
	case m.cfg.Keys.Add:
		m.mode = modeInput
		m.action = actionAddTodo
		m.input.Placeholder = "Todo"
		m.input.SetValue("")
		m.input.Focus()
	case m.cfg.Keys.Toggle:
		if len(todos) == 0 {
			return m, nil
		}
		m.todos.Toggle(todos[m.todoCursor].ID)
	case m.cfg.Keys.Rename:
		if len(todos) == 0 {
			return m, nil
		}
		t := todos[m.todoCursor]
		m.mode = modeInput
		m.action = actionRenameTodo
		m.editID = t.ID
		m.input.Placeholder = "Todo"
		m.input.SetValue(t.Text)
		m.input.Focus()
	case m.cfg.Keys.Delete:
		if len(todos) == 0 {
			return m, nil
		}
		id := todos[m.todoCursor].ID
		m.todos.Delete(id)
		m.todoCursor = clampCursor(m.todoCursor, len(m.todos.Todos()))
		m.status = "Deleted todo"
	case m.cfg.Keys.Clear:
		m.todos.ClearCompleted()
		m.todoCursor = clampCursor(m.todoCursor, len(m.todos.Todos()))
		m.status = "Cleared completed"
	}
	return m, nil
}

func (m Model) updateNotes(key string) (tea.Model, tea.Cmd) {
	notes := m.notes.Notes()
	switch key {
	case m.cfg.Keys.Down, "down":
		m.noteCursor = clampCursor(m.noteCursor+1, len(notes))
	case m.cfg.Keys.Up, "up":
		m.noteCursor = clampCursor(m.noteCursor-1, len(notes))
	case m.cfg.Keys.Confirm, "enter":
		m.notes.Select(notes[clampCursor(m.noteCursor, len(notes))].ID)
	case m.cfg.Keys.Add:
		created := m.notes.Add()
		m.noteCursor = len(m.notes.Notes()) - 1
		m.status = fmt.Sprintf("Added %q", created.Title)
	case m.cfg.Keys.Rename:
		n := notes[clampCursor(m.noteCursor, len(notes))]
		m.mode = modeInput
		m.action = actionRenameNote
		m.editID = n.ID
		m.input.Placeholder = "Note title"
		m.input.SetValue(n.Title)
		m.input.Focus()
	case m.cfg.Keys.Edit:
		n := notes[clampCursor(m.noteCursor, len(notes))]
		m.notes.Select(n.ID)
		m.editID = n.ID
		m.area.SetValue(note.PlainText(n.Content))
		m.area.Focus()
		m.mode = modeNoteEdit
		m.status = "Editing note: esc saves"
	case m.cfg.Keys.Delete:
		n := notes[clampCursor(m.noteCursor, len(notes))]
		id := n.ID
		m.confirm = &confirmState{
			prompt: fmt.Sprintf("Delete note %q? y/n", n.Title),
			apply: func(mm *Model) {
				mm.notes.Delete(id)
				mm.noteCursor = clampCursor(mm.noteCursor, len(mm.notes.Notes()))
				mm.status = "Deleted note"
			},
		}
		m.mode = modeConfirm
	}
	return m, nil
}

func (m Model) updateCalendar(key string) (tea.Model, tea.Cmd) {
	dayEvents := m.events.ByDate(calendar.Midnight(m.day))
	switch key {
	case m.cfg.Keys.Left, "left":
		m.day = m.day.AddDate(0, 0, -1)
		m.eventCursor = 0
	case m.cfg.Keys.Right, "right":
		m.day = m.day.AddDate(0, 0, 1)
		m.eventCursor = 0
	case "[":
		m.day = m.day.AddDate(0, 0, -7)
		m.eventCursor = 0
	case "]":
		m.day = m.day.AddDate(0, 0, 7)
		m.eventCursor = 0
	case m.cfg.Keys.Down, "down":
		m.eventCursor = clampCursor(m.eventCursor+1, len(dayEvents))
	case m.cfg.Keys.Up, "up":
		m.eventCursor = clampCursor(m.eventCursor-1, len(dayEvents))
	case m.cfg.Keys.Add:
		m.form = newEventForm(nil)
		m.input.SetValue("")
		m.input.Placeholder = m.form.currentLabel()
		m.input.Focus()
		m.mode = modeEventForm
		m.status = "New event: Enter to advance, Esc to cancel"
	case m.cfg.Keys.Edit:
		if len(dayEvents) == 0 {
			return m, nil
		}
		e := dayEvents[clampCursor(m.eventCursor, len(dayEvents))]
		m.form = newEventForm(&e)
		m.input.SetValue(m.form.currentValue())
		m.input.Placeholder = m.form.currentLabel()
		m.input.Focus()
		m.mode = modeEventForm
		m.status = "Edit event: Enter to advance, Esc to cancel"
	case m.cfg.Keys.Delete:
		if len(dayEvents) == 0 {
			return m, nil
		}
		e := dayEvents[clampCursor(m.eventCursor, len(dayEvents))]
		id := e.ID
		m.confirm = &confirmState{
			prompt: fmt.Sprintf("Delete event %q? y/n", e.Title),
			apply: func(mm *Model) {
				mm.events.Delete(id)
				mm.eventCursor = 0
				mm.status = "Deleted event"
			},
		}
		m.mode = modeConfirm
	}
	return m, nil
}

func (m Model) updateInputMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.mode = modeNormal
		m.input.SetValue("")
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		value := strings.TrimSpace(m.input.Value())
		m.input.SetValue("")
		m.input.Blur()
		m.mode = modeNormal
		return m.applyInput(value)
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

// applyInput commits the text input. Empty titles never reach the
// repositories; the trim-and-reject here is the caller-side contract.
func (m Model) applyInput(value string) (tea.Model, tea.Cmd) {
	if value == "" {
		m.status = "Title cannot be empty"
		return m, nil
	}
	switch m.action {
	case actionAddTask:
		priority := task.PriorityMedium
		if m.priorityFilter != "all" {
			priority = task.Priority(m.priorityFilter)
		}
		m.tasks.Add(task.AddOptions{Title: value, Status: m.selectedColumn(), Priority: priority})
		m.boardRow = len(m.columnTasks(m.selectedColumn())) - 1
		m.status = "Added task"
	case actionRenameTask:
		m.tasks.Update(m.editID, task.UpdateOptions{Title: &value})
		m.status = "Renamed task"
	case actionAddTodo:
		m.todos.Add(value)
		m.todoCursor = len(m.todos.Todos()) - 1
		m.status = "Added todo"
	case actionRenameTodo:
		m.todos.UpdateText(m.editID, value)
		m.status = "Updated todo"
	case actionRenameNote:
		m.notes.Update(m.editID, note.UpdateOptions{Title: &value})
		m.status = "Renamed note"
	}
	return m, nil
}

func (m Model) updateNoteEditMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key == m.cfg.Keys.Cancel || key == "esc" {
		content := note.FromPlainText(m.area.Value())
		m.notes.Update(m.editID, note.UpdateOptions{Content: &content})
		m.area.Blur()
		m.mode = modeNormal
		m.status = "Saved note"
		return m, nil
	}
	var cmd tea.Cmd
	m.area, cmd = m.area.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y":
		if m.confirm != nil {
			m.confirm.apply(&m)
		}
		m.confirm = nil
		m.mode = modeNormal
		return m, nil
	case "n", "N", m.cfg.Keys.Cancel, "esc":
		m.confirm = nil
		m.mode = modeNormal
		m.status = "Cancelled"
		return m, nil
	default:
		return m, nil
	}
}

func nextPriority(p task.Priority) task.Priority {
	switch p {
	case task.PriorityLow:
		return task.PriorityMedium
	case task.PriorityMedium:
		return task.PriorityHigh
	default:
		return task.PriorityLow
	}
}

func nextFilter(current string) string {
	order := []string{"all", string(task.PriorityLow), string(task.PriorityMedium), string(task.PriorityHigh)}
	for i, f := range order {
		if f == current {
			return order[(i+1)%len(order)]
		}
	}
	return "all"
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
