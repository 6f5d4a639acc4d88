package board

import (
	"testing"

	"flowstate/internal/store"
	"flowstate/internal/task"
)

func newBoard(t *testing.T) (*Reducer, *task.Repository) {
	t.Helper()
	repo := task.NewRepository(store.Memory())
	return New(repo), repo
}

func ids(tasks []task.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestDragStartUnknownIDStaysIdle(t *testing.T) {
	b, _ := newBoard(t)
	b.DragStart("missing")
	if _, ok := b.Dragging(); ok {
		t.Fatalf("reducer should stay idle for unknown ids")
	}
}

func TestDragOverColumnMovesEagerly(t *testing.T) {
	b, repo := newBoard(t)
	created := repo.Add(task.AddOptions{Title: "a"})

	b.DragStart(created.ID)
	b.DragOver(string(task.StatusComplete))

	got, _ := repo.Get(created.ID)
	if got.Status != task.StatusComplete {
		t.Fatalf("expected eager move to complete, got %q", got.Status)
	}
}

func TestDragOverTaskInOtherColumnMovesEagerly(t *testing.T) {
	b, repo := newBoard(t)
	dragged := repo.Add(task.AddOptions{Title: "a"})
	target := repo.Add(task.AddOptions{Title: "b", Status: task.StatusInProgress})

	b.DragStart(dragged.ID)
	b.DragOver(target.ID)

	got, _ := repo.Get(dragged.ID)
	if got.Status != task.StatusInProgress {
		t.Fatalf("expected move into hovered task's column, got %q", got.Status)
	}
}

func TestDragOverSameColumnDoesNothing(t *testing.T) {
	b, repo := newBoard(t)
	dragged := repo.Add(task.AddOptions{Title: "a"})
	neighbor := repo.Add(task.AddOptions{Title: "b"})

	b.DragStart(dragged.ID)
	b.DragOver(neighbor.ID)
	b.DragOver(string(task.StatusTodo))

	order := ids(repo.ByStatus(task.StatusTodo))
	if order[0] != dragged.ID || order[1] != neighbor.ID {
		t.Fatalf("hovering inside the column must not reorder, got %v", order)
	}
}

func TestCancelledDropKeepsEagerMove(t *testing.T) {
	b, repo := newBoard(t)
	created := repo.Add(task.AddOptions{Title: "a"})

	b.DragStart(created.ID)
	b.DragOver(string(task.StatusComplete))
	b.DragEnd("") // released over empty space

	got, _ := repo.Get(created.ID)
	if got.Status != task.StatusComplete {
		t.Fatalf("abandoned drop must not roll back the eager move, got %q", got.Status)
	}
	if _, ok := b.Dragging(); ok {
		t.Fatalf("reducer should be idle after drag end")
	}
}

func TestDropOnSameColumnTaskReorders(t *testing.T) {
	b, repo := newBoard(t)
	a := repo.Add(task.AddOptions{Title: "a"})
	bb := repo.Add(task.AddOptions{Title: "b"})
	c := repo.Add(task.AddOptions{Title: "c"})
	other := repo.Add(task.AddOptions{Title: "other", Status: task.StatusComplete})

	b.DragStart(a.ID)
	b.DragEnd(c.ID)

	order := ids(repo.ByStatus(task.StatusTodo))
	want := []string{bb.ID, c.ID, a.ID}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, order)
		}
	}

	// Other columns keep their tasks untouched.
	complete := repo.ByStatus(task.StatusComplete)
	if len(complete) != 1 || complete[0].ID != other.ID {
		t.Fatalf("other column changed: %+v", complete)
	}
	if len(repo.Tasks()) != 4 {
		t.Fatalf("reorder must preserve membership, got %d tasks", len(repo.Tasks()))
	}
}

func TestDropMovesTaskEarlier(t *testing.T) {
	b, repo := newBoard(t)
	a := repo.Add(task.AddOptions{Title: "a"})
	bb := repo.Add(task.AddOptions{Title: "b"})
	c := repo.Add(task.AddOptions{Title: "c"})

	b.DragStart(c.ID)
	b.DragEnd(a.ID)

	order := ids(repo.ByStatus(task.StatusTodo))
	want := []string{c.ID, a.ID, bb.ID}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, order)
		}
	}
}

func TestDropOnSelfDoesNothing(t *testing.T) {
	b, repo := newBoard(t)
	a := repo.Add(task.AddOptions{Title: "a"})
	bb := repo.Add(task.AddOptions{Title: "b"})

	b.DragStart(a.ID)
	b.DragEnd(a.ID)

	order := ids(repo.ByStatus(task.StatusTodo))
	if order[0] != a.ID || order[1] != bb.ID {
		t.Fatalf("self drop must not reorder, got %v", order)
	}
}

func TestEagerMoveThenDropSplicesIntoNewColumn(t *testing.T) {
	b, repo := newBoard(t)
	dragged := repo.Add(task.AddOptions{Title: "a"})
	repo.Add(task.AddOptions{Title: "b", Status: task.StatusInProgress})
	target := repo.Add(task.AddOptions{Title: "c", Status: task.StatusInProgress})

	b.DragStart(dragged.ID)
	b.DragOver(target.ID) // eager move into in-progress
	b.DragEnd(target.ID)  // now same column: splice to target index

	order := ids(repo.ByStatus(task.StatusInProgress))
	if len(order) != 3 {
		t.Fatalf("expected 3 in-progress tasks, got %v", order)
	}
	if order[len(order)-1] != target.ID {
		t.Fatalf("expected dragged task spliced before target, got %v", order)
	}
	got, _ := repo.Get(dragged.ID)
	if got.Status != task.StatusInProgress {
		t.Fatalf("expected dragged task in target column, got %q", got.Status)
	}
}
