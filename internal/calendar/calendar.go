package calendar

import (
	"time"

	"github.com/google/uuid"

	"flowstate/internal/store"
	"flowstate/internal/task"
)

const storageKey = "flowstate-calendar-events"

// Event is a dated calendar entry. Date is the day bucket: an epoch-millis
// timestamp truncated to local midnight. Callers truncate before passing a
// date in; the repository stores and compares it verbatim. StartTime and
// EndTime are free-form "HH:MM" strings and are not validated against each
// other.
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Date        int64  `json:"date"`
	StartTime   string `json:"startTime,omitempty"`
	EndTime     string `json:"endTime,omitempty"`
	Color       string `json:"color,omitempty"`
	CreatedAt   int64  `json:"createdAt"`
}

type Repository struct {
	kv     store.KV
	events []Event
}

func NewRepository(kv store.KV) *Repository {
	return &Repository{
		kv:     kv,
		events: store.Load(kv, storageKey, []Event(nil)),
	}
}

type AddOptions struct {
	Title       string
	Description string
	Date        int64
	StartTime   string
	EndTime     string
	Color       string
}

// UpdateOptions is a sparse field set for Update. Nil means leave unchanged.
type UpdateOptions struct {
	Title       *string
	Description *string
	Date        *int64
	StartTime   *string
	EndTime     *string
	Color       *string
}

func (r *Repository) Add(opts AddOptions) Event {
	e := Event{
		ID:          uuid.NewString(),
		Title:       opts.Title,
		Description: opts.Description,
		Date:        opts.Date,
		StartTime:   opts.StartTime,
		EndTime:     opts.EndTime,
		Color:       opts.Color,
		CreatedAt:   time.Now().UnixMilli(),
	}
	r.events = append(r.events, e)
	r.save()
	return e
}

func (r *Repository) Update(id string, opts UpdateOptions) {
	for i := range r.events {
		if r.events[i].ID != id {
			continue
		}
		if opts.Title != nil {
			r.events[i].Title = *opts.Title
		}
		if opts.Description != nil {
			r.events[i].Description = *opts.Description
		}
		if opts.Date != nil {
			r.events[i].Date = *opts.Date
		}
		if opts.StartTime != nil {
			r.events[i].StartTime = *opts.StartTime
		}
		if opts.EndTime != nil {
			r.events[i].EndTime = *opts.EndTime
		}
		if opts.Color != nil {
			r.events[i].Color = *opts.Color
		}
		r.save()
		return
	}
}

func (r *Repository) Delete(id string) {
	kept := r.events[:0]
	for _, e := range r.events {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	r.events = kept
	r.save()
}

// ByDate returns the events whose day bucket equals the given midnight
// timestamp, in collection order.
func (r *Repository) ByDate(midnight int64) []Event {
	var out []Event
	for _, e := range r.events {
		if e.Date == midnight {
			out = append(out, e)
		}
	}
	return out
}

func (r *Repository) Get(id string) (Event, bool) {
	for _, e := range r.events {
		if e.ID == id {
			return e, true
		}
	}
	return Event{}, false
}

func (r *Repository) Events() []Event {
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

func (r *Repository) save() {
	store.Save(r.kv, storageKey, r.events)
}

// Midnight truncates t to local midnight and returns it as epoch millis, the
// day-bucket key shared by events and task due dates.
func Midnight(t time.Time) int64 {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location()).UnixMilli()
}

// TasksDueOn filters tasks whose due date falls in the given day bucket.
// This is a read-only join; nothing links tasks to events in storage.
func TasksDueOn(tasks []task.Task, midnight int64) []task.Task {
	var out []task.Task
	for _, t := range tasks {
		if t.DueDate == 0 {
			continue
		}
		if Midnight(time.UnixMilli(t.DueDate)) == midnight {
			out = append(out, t)
		}
	}
	return out
}
