package todo

import (
	"github.com/google/uuid"

	"flowstate/internal/store"
)

const storageKey = "flowstate-todos"

// Todo is one line in the quick list. Deliberately minimal: no timestamps,
// no priority; the kanban board is where the heavier task model lives.
type Todo struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

type Repository struct {
	kv    store.KV
	todos []Todo
}

func NewRepository(kv store.KV) *Repository {
	return &Repository{
		kv:    kv,
		todos: store.Load(kv, storageKey, []Todo(nil)),
	}
}

func (r *Repository) Add(text string) Todo {
	t := Todo{ID: uuid.NewString(), Text: text}
	r.todos = append(r.todos, t)
	r.save()
	return t
}

func (r *Repository) Toggle(id string) {
	for i := range r.todos {
		if r.todos[i].ID == id {
			r.todos[i].Completed = !r.todos[i].Completed
			r.save()
			return
		}
	}
}

func (r *Repository) UpdateText(id, text string) {
	for i := range r.todos {
		if r.todos[i].ID == id {
			r.todos[i].Text = text
			r.save()
			return
		}
	}
}

func (r *Repository) Delete(id string) {
	kept := r.todos[:0]
	for _, t := range r.todos {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	r.todos = kept
	r.save()
}

// ClearCompleted removes every completed item.
func (r *Repository) ClearCompleted() {
	kept := r.todos[:0]
	for _, t := range r.todos {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	r.todos = kept
	r.save()
}

func (r *Repository) Todos() []Todo {
	out := make([]Todo, len(r.todos))
	copy(out, r.todos)
	return out
}

func (r *Repository) save() {
	store.Save(r.kv, storageKey, r.todos)
}
