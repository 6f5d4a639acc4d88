package note

import (
	"testing"

	"flowstate/internal/store"
)

func assertInvariants(t *testing.T, r *Repository) {
	t.Helper()
	notes := r.Notes()
	if len(notes) == 0 {
		t.Fatalf("collection must never be empty")
	}
	active := r.ActiveID()
	for _, n := range notes {
		if n.ID == active {
			return
		}
	}
	t.Fatalf("active id %q does not reference an existing note", active)
}

func TestNewRepositorySynthesizesDefaultNote(t *testing.T) {
	r := NewRepository(store.Memory())
	assertInvariants(t, r)

	notes := r.Notes()
	if len(notes) != 1 || notes[0].Title != "Untitled" {
		t.Fatalf("expected one default note, got %+v", notes)
	}
	if r.Active().ID != notes[0].ID {
		t.Fatalf("expected default note to be active")
	}
}

func TestNewRepositoryMigratesLegacyNotes(t *testing.T) {
	kv := store.Memory()
	store.Save(kv, "flowstate-notes", []Note{
		{ID: "legacy", Title: "Old", Content: "line1\n\nline2", UpdatedAt: 1},
	})
	store.Save(kv, "flowstate-active-note", "legacy")

	r := NewRepository(kv)
	got, ok := r.Get("legacy")
	if !ok {
		t.Fatalf("legacy note missing after load")
	}
	if got.ContentVersion != VersionStructured {
		t.Fatalf("expected migrated note, got version %d", got.ContentVersion)
	}
	if !IsDoc(got.Content) {
		t.Fatalf("expected structured content, got %q", got.Content)
	}

	// The migrated collection is what a second load sees; nothing changes.
	again, _ := NewRepository(kv).Get("legacy")
	if again != got {
		t.Fatalf("second load changed the note: %+v vs %+v", again, got)
	}
}

func TestStaleActiveIDResetsToFirstNote(t *testing.T) {
	kv := store.Memory()
	store.Save(kv, "flowstate-notes", []Note{
		{ID: "a", Title: "A", Content: EmptyDoc(), ContentVersion: VersionStructured, UpdatedAt: 1},
		{ID: "b", Title: "B", Content: EmptyDoc(), ContentVersion: VersionStructured, UpdatedAt: 2},
	})
	store.Save(kv, "flowstate-active-note", "gone")

	r := NewRepository(kv)
	if r.ActiveID() != "a" {
		t.Fatalf("expected active to reset to first note, got %q", r.ActiveID())
	}
}

func TestAddActivatesNewNote(t *testing.T) {
	r := NewRepository(store.Memory())
	created := r.Add()

	if r.ActiveID() != created.ID {
		t.Fatalf("expected new note to be active")
	}
	if created.Title != "Untitled" || created.Content != EmptyDoc() {
		t.Fatalf("unexpected new note: %+v", created)
	}
	assertInvariants(t, r)
}

func TestUpdateRefreshesUpdatedAt(t *testing.T) {
	r := NewRepository(store.Memory())
	created := r.Add()
	r.Update(created.ID, UpdateOptions{}) // even an empty merge touches the note

	got, _ := r.Get(created.ID)
	if got.UpdatedAt < created.UpdatedAt {
		t.Fatalf("updatedAt went backwards")
	}

	title := "Meeting notes"
	content := FromPlainText("agenda")
	r.Update(created.ID, UpdateOptions{Title: &title, Content: &content})
	got, _ = r.Get(created.ID)
	if got.Title != "Meeting notes" || got.Content != content {
		t.Fatalf("expected merged fields, got %+v", got)
	}
}

func TestDeleteActiveFallsToFirstRemaining(t *testing.T) {
	r := NewRepository(store.Memory())
	first := r.Notes()[0]
	second := r.Add()

	if r.ActiveID() != second.ID {
		t.Fatalf("expected second note active")
	}
	r.Delete(second.ID)
	if r.ActiveID() != first.ID {
		t.Fatalf("expected activation to fall to first remaining note")
	}
	assertInvariants(t, r)
}

func TestDeleteLastNoteRecreatesDefault(t *testing.T) {
	r := NewRepository(store.Memory())
	only := r.Notes()[0]

	r.Delete(only.ID)
	assertInvariants(t, r)

	notes := r.Notes()
	if len(notes) != 1 || notes[0].ID == only.ID {
		t.Fatalf("expected a fresh default note, got %+v", notes)
	}
}

func TestSelectUnknownIDKeepsInvariant(t *testing.T) {
	r := NewRepository(store.Memory())
	active := r.ActiveID()

	r.Select("missing")
	if r.ActiveID() != active {
		t.Fatalf("unknown select must not change activation")
	}
	assertInvariants(t, r)
}

func TestInvariantsAcrossAddDeleteSequence(t *testing.T) {
	r := NewRepository(store.Memory())
	a := r.Add()
	b := r.Add()
	r.Delete(a.ID)
	assertInvariants(t, r)
	r.Select(b.ID)
	r.Delete(b.ID)
	assertInvariants(t, r)
	r.Delete(r.ActiveID())
	assertInvariants(t, r)
}

func TestSelectionPersistsAcrossRepositories(t *testing.T) {
	kv := store.Memory()
	r := NewRepository(kv)
	created := r.Add()

	reloaded := NewRepository(kv)
	if reloaded.ActiveID() != created.ID {
		t.Fatalf("expected active note to survive reload")
	}
}
