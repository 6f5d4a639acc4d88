package todo

import (
	"testing"

	"flowstate/internal/store"
)

func TestAddDefaultsToIncomplete(t *testing.T) {
	r := NewRepository(store.Memory())
	created := r.Add("buy milk")

	if created.ID == "" {
		t.Fatalf("expected generated id")
	}
	if created.Completed {
		t.Fatalf("new todos must start incomplete")
	}
}

func TestToggleFlipsCompletion(t *testing.T) {
	r := NewRepository(store.Memory())
	created := r.Add("buy milk")

	r.Toggle(created.ID)
	if got := r.Todos()[0]; !got.Completed {
		t.Fatalf("expected completed after toggle, got %+v", got)
	}
	r.Toggle(created.ID)
	if got := r.Todos()[0]; got.Completed {
		t.Fatalf("expected incomplete after second toggle, got %+v", got)
	}
	r.Toggle("missing") // no-op
}

func TestUpdateTextAndDelete(t *testing.T) {
	r := NewRepository(store.Memory())
	a := r.Add("a")
	b := r.Add("b")

	r.UpdateText(a.ID, "a2")
	if got := r.Todos()[0].Text; got != "a2" {
		t.Fatalf("expected updated text, got %q", got)
	}

	r.Delete(a.ID)
	todos := r.Todos()
	if len(todos) != 1 || todos[0].ID != b.ID {
		t.Fatalf("expected only %q to remain, got %+v", b.Text, todos)
	}
}

func TestClearCompleted(t *testing.T) {
	r := NewRepository(store.Memory())
	a := r.Add("keep")
	done := r.Add("done")
	r.Toggle(done.ID)

	r.ClearCompleted()
	todos := r.Todos()
	if len(todos) != 1 || todos[0].ID != a.ID {
		t.Fatalf("expected completed items removed, got %+v", todos)
	}
}

func TestTodosPersistAcrossRepositories(t *testing.T) {
	kv := store.Memory()
	r := NewRepository(kv)
	created := r.Add("durable")

	reloaded := NewRepository(kv)
	todos := reloaded.Todos()
	if len(todos) != 1 || todos[0] != created {
		t.Fatalf("expected %+v to survive reload, got %+v", created, todos)
	}
}
