// Package board turns drag-gesture events into task repository operations.
// The gesture source (pointer, keyboard, whatever the shell provides) only
// has to deliver start/over/end events carrying a dragged-task id and an
// optional hover-target id, which is either another task's id or a column id
// (one of the main status values).
package board

import (
	"flowstate/internal/task"
)

// Reducer is the gesture state machine: idle until DragStart captures a task,
// back to idle on DragEnd. Column changes are applied eagerly while hovering,
// so the board previews the move live; in-column reordering is deferred to
// the drop.
type Reducer struct {
	repo   *task.Repository
	active string
}

func New(repo *task.Repository) *Reducer {
	return &Reducer{repo: repo}
}

// DragStart captures the dragged task. Unknown ids leave the reducer idle.
func (r *Reducer) DragStart(id string) {
	if _, ok := r.repo.Get(id); ok {
		r.active = id
	}
}

// Dragging returns the captured task, for overlay rendering.
func (r *Reducer) Dragging() (task.Task, bool) {
	if r.active == "" {
		return task.Task{}, false
	}
	return r.repo.Get(r.active)
}

// DragOver applies the eager column move: hovering a different column, or a
// task that lives in a different column, immediately re-statuses the dragged
// task. Hovering inside the current column does nothing until the drop.
func (r *Reducer) DragOver(overID string) {
	if r.active == "" || overID == "" {
		return
	}
	active, ok := r.repo.Get(r.active)
	if !ok {
		return
	}

	if status, ok := columnStatus(overID); ok {
		if active.Status != status {
			r.repo.Move(active.ID, status)
		}
		return
	}

	if over, ok := r.repo.Get(overID); ok && over.Status != active.Status {
		r.repo.Move(active.ID, over.Status)
	}
}

// DragEnd finishes the gesture. Dropping on a task in the same column splices
// the dragged task to that task's index and persists the new order; dropping
// on nothing, on a column, or on itself changes nothing. Eager moves applied
// during the drag are never rolled back, even when the drop is abandoned.
func (r *Reducer) DragEnd(overID string) {
	activeID := r.active
	r.active = ""

	if activeID == "" || overID == "" || overID == activeID {
		return
	}
	active, ok := r.repo.Get(activeID)
	if !ok {
		return
	}
	over, ok := r.repo.Get(overID)
	if !ok || over.Status != active.Status {
		return
	}

	column := r.repo.ByStatus(active.Status)
	oldIndex := indexOf(column, activeID)
	newIndex := indexOf(column, overID)
	if oldIndex < 0 || newIndex < 0 || oldIndex == newIndex {
		return
	}

	moved := column[oldIndex]
	column = append(column[:oldIndex], column[oldIndex+1:]...)
	column = append(column[:newIndex], append([]task.Task{moved}, column[newIndex:]...)...)

	var reordered []task.Task
	for _, t := range r.repo.Tasks() {
		if t.Status != active.Status {
			reordered = append(reordered, t)
		}
	}
	r.repo.Reorder(append(reordered, column...))
}

func columnStatus(overID string) (task.Status, bool) {
	for _, s := range task.MainStatuses {
		if string(s) == overID {
			return s, true
		}
	}
	return "", false
}

func indexOf(tasks []task.Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
