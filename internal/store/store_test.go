package store

import (
	"path/filepath"
	"testing"
)

type record struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flowstate.db")
	s := Open(path, nil)

	want := []record{{ID: "a", Count: 1}, {ID: "b", Count: 2}}
	Save(s, "records", want)
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened := Open(path, nil)
	defer reopened.Close()

	got := Load(reopened, "records", []record(nil))
	if len(got) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("record %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestLoadMissingKeyReturnsDefault(t *testing.T) {
	s := Memory()
	got := Load(s, "nothing", record{ID: "fallback"})
	if got.ID != "fallback" {
		t.Fatalf("expected default record, got %+v", got)
	}
}

func TestLoadCorruptValueReturnsDefault(t *testing.T) {
	s := Memory()
	s.Put("records", []byte("{not json"))

	got := Load(s, "records", []record{{ID: "fresh"}})
	if len(got) != 1 || got[0].ID != "fresh" {
		t.Fatalf("expected fallback to default, got %+v", got)
	}
}

func TestOpenDegradesToMemory(t *testing.T) {
	// A directory is not a usable database file; the store should keep
	// working from memory instead of failing.
	s := Open(t.TempDir(), nil)
	defer s.Close()

	Save(s, "records", record{ID: "a", Count: 3})
	got := Load(s, "records", record{})
	if got.ID != "a" || got.Count != 3 {
		t.Fatalf("expected in-memory round trip, got %+v", got)
	}
}

func TestPutOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flowstate.db")
	s := Open(path, nil)
	defer s.Close()

	Save(s, "records", record{ID: "old"})
	Save(s, "records", record{ID: "new"})

	got := Load(s, "records", record{})
	if got.ID != "new" {
		t.Fatalf("expected last write to win, got %+v", got)
	}
}
