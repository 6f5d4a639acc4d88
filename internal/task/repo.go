package task

import (
	"time"

	"github.com/google/uuid"

	"flowstate/internal/store"
)

const storageKey = "flowstate-tasks"

// Repository owns the task collection. Every mutation rewrites the full
// collection under one storage key; reads are served from memory.
type Repository struct {
	kv    store.KV
	tasks []Task
}

func NewRepository(kv store.KV) *Repository {
	return &Repository{
		kv:    kv,
		tasks: store.Load(kv, storageKey, []Task(nil)),
	}
}

// AddOptions are the caller-supplied fields for a new task. Title is expected
// to be pre-trimmed and non-empty; the repository stores it as given.
type AddOptions struct {
	Title       string
	Description string
	Status      Status
	Priority    Priority
	DueDate     int64
}

// UpdateOptions is a sparse field set for Update. Nil means leave unchanged.
// ID and CreatedAt are not updatable.
type UpdateOptions struct {
	Title       *string
	Description *string
	Status      *Status
	Priority    *Priority
	DueDate     *int64
}

func (r *Repository) Add(opts AddOptions) Task {
	if opts.Status == "" {
		opts.Status = StatusTodo
	}
	if opts.Priority == "" {
		opts.Priority = PriorityMedium
	}
	t := Task{
		ID:          uuid.NewString(),
		Title:       opts.Title,
		Description: opts.Description,
		Status:      opts.Status,
		Priority:    opts.Priority,
		DueDate:     opts.DueDate,
		CreatedAt:   time.Now().UnixMilli(),
	}
	r.tasks = append(r.tasks, t)
	r.save()
	return t
}

// Update merges the provided fields into the task with the given id.
// An unknown id is a no-op.
func (r *Repository) Update(id string, opts UpdateOptions) {
	for i := range r.tasks {
		if r.tasks[i].ID != id {
			continue
		}
		if opts.Title != nil {
			r.tasks[i].Title = *opts.Title
		}
		if opts.Description != nil {
			r.tasks[i].Description = *opts.Description
		}
		if opts.Status != nil {
			r.tasks[i].Status = *opts.Status
		}
		if opts.Priority != nil {
			r.tasks[i].Priority = *opts.Priority
		}
		if opts.DueDate != nil {
			r.tasks[i].DueDate = *opts.DueDate
		}
		r.save()
		return
	}
}

// Move changes only the status. Column position is untouched.
func (r *Repository) Move(id string, status Status) {
	r.Update(id, UpdateOptions{Status: &status})
}

func (r *Repository) Archive(id string) {
	r.Move(id, StatusArchived)
}

// Restore always returns a task to the complete column, not to whatever
// status it had before archiving.
func (r *Repository) Restore(id string) {
	r.Move(id, StatusComplete)
}

// Reorder replaces the whole collection with the given list. Callers must
// pass the same set of tasks; the repository does not verify membership.
func (r *Repository) Reorder(tasks []Task) {
	r.tasks = tasks
	r.save()
}

func (r *Repository) Delete(id string) {
	r.removeIf(func(t Task) bool { return t.ID == id })
}

// ClearArchived removes every archived task.
func (r *Repository) ClearArchived() {
	r.removeIf(func(t Task) bool { return t.Status == StatusArchived })
}

func (r *Repository) removeIf(drop func(Task) bool) {
	kept := r.tasks[:0]
	for _, t := range r.tasks {
		if !drop(t) {
			kept = append(kept, t)
		}
	}
	r.tasks = kept
	r.save()
}

// ByStatus returns the tasks in one column, preserving collection order.
func (r *Repository) ByStatus(status Status) []Task {
	var out []Task
	for _, t := range r.tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

func (r *Repository) Get(id string) (Task, bool) {
	for _, t := range r.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// Tasks returns the full collection in storage order.
func (r *Repository) Tasks() []Task {
	out := make([]Task, len(r.tasks))
	copy(out, r.tasks)
	return out
}

func (r *Repository) save() {
	store.Save(r.kv, storageKey, r.tasks)
}
