package note

import (
	"time"

	"github.com/google/uuid"

	"flowstate/internal/store"
)

const (
	notesKey      = "flowstate-notes"
	activeNoteKey = "flowstate-active-note"
)

const defaultTitle = "Untitled"

// Note is one entry in the notes panel. Content is a serialized structured
// document (see doc.go); UpdatedAt is refreshed on every mutation.
type Note struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Content        string `json:"content"`
	ContentVersion int    `json:"contentVersion,omitempty"`
	UpdatedAt      int64  `json:"updatedAt"`
}

// Repository owns the note collection and the active-note selection. Two
// invariants hold after construction and after every mutation: the collection
// is never empty, and the active id always references an existing note.
type Repository struct {
	kv     store.KV
	notes  []Note
	active string
}

func NewRepository(kv store.KV) *Repository {
	r := &Repository{
		kv:     kv,
		active: store.Load(kv, activeNoteKey, ""),
	}
	loaded := store.Load(kv, notesKey, []Note(nil))
	r.notes = Migrate(loaded)
	r.ensure()
	r.save()
	return r
}

// UpdateOptions is a sparse field set for Update. Nil means leave unchanged.
type UpdateOptions struct {
	Title   *string
	Content *string
}

// Add creates a blank note and makes it active.
func (r *Repository) Add() Note {
	n := Note{
		ID:             uuid.NewString(),
		Title:          defaultTitle,
		Content:        EmptyDoc(),
		ContentVersion: VersionStructured,
		UpdatedAt:      time.Now().UnixMilli(),
	}
	r.notes = append(r.notes, n)
	r.active = n.ID
	r.save()
	return n
}

// Update merges the provided fields and refreshes UpdatedAt. Unknown id is a
// no-op.
func (r *Repository) Update(id string, opts UpdateOptions) {
	for i := range r.notes {
		if r.notes[i].ID != id {
			continue
		}
		if opts.Title != nil {
			r.notes[i].Title = *opts.Title
		}
		if opts.Content != nil {
			r.notes[i].Content = *opts.Content
		}
		r.notes[i].UpdatedAt = time.Now().UnixMilli()
		r.save()
		return
	}
}

// Delete removes a note. If it was active, activation falls to the first
// remaining note; deleting the last note leaves a fresh blank note behind.
func (r *Repository) Delete(id string) {
	kept := r.notes[:0]
	for _, n := range r.notes {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	r.notes = kept
	r.ensure()
	r.save()
}

// Select makes an existing note active. Unknown id is a no-op.
func (r *Repository) Select(id string) {
	for _, n := range r.notes {
		if n.ID == id {
			r.active = id
			r.save()
			return
		}
	}
}

// Active returns the currently selected note.
func (r *Repository) Active() Note {
	for _, n := range r.notes {
		if n.ID == r.active {
			return n
		}
	}
	return r.notes[0]
}

func (r *Repository) ActiveID() string {
	return r.active
}

func (r *Repository) Get(id string) (Note, bool) {
	for _, n := range r.notes {
		if n.ID == id {
			return n, true
		}
	}
	return Note{}, false
}

func (r *Repository) Notes() []Note {
	out := make([]Note, len(r.notes))
	copy(out, r.notes)
	return out
}

// ensure restores the repository invariants: at least one note exists and the
// active id points at one of them.
func (r *Repository) ensure() {
	if len(r.notes) == 0 {
		r.notes = append(r.notes, Note{
			ID:             uuid.NewString(),
			Title:          defaultTitle,
			Content:        EmptyDoc(),
			ContentVersion: VersionStructured,
			UpdatedAt:      time.Now().UnixMilli(),
		})
		r.active = r.notes[0].ID
		return
	}
	for _, n := range r.notes {
		if n.ID == r.active {
			return
		}
	}
	r.active = r.notes[0].ID
}

func (r *Repository) save() {
	store.Save(r.kv, notesKey, r.notes)
	store.Save(r.kv, activeNoteKey, r.active)
}
