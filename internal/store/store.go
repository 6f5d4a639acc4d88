package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// KV is the persistence capability handed to each repository. Values are
// opaque serialized blobs; one key maps to one blob, last write wins.
type KV interface {
	Get(key string) ([]byte, bool)
	Put(key string, value []byte)
}

// Store is a SQLite-backed KV with a write-through in-memory cache. After the
// first read of a key the cache is the source of truth; the database is only
// a durability layer. If the database cannot be opened or written the store
// keeps working from memory and logs a warning, so callers never see
// persistence errors.
type Store struct {
	db  *sql.DB
	mem map[string][]byte
	log *zap.SugaredLogger
}

// Open opens (or creates) the database at path. It never fails: any error
// degrades the store to memory-only operation.
func Open(path string, log *zap.SugaredLogger) *Store {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	s := &Store{mem: make(map[string][]byte), log: log}

	if path == "" {
		log.Warnw("no db path configured, running in-memory")
		return s
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		log.Warnw("create db directory failed, running in-memory", "path", path, "error", err)
		return s
	}

	db, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		log.Warnw("open db failed, running in-memory", "path", path, "error", err)
		return s
	}
	db.SetMaxOpenConns(1)

	if err := ensureSchema(db); err != nil {
		log.Warnw("migrate db failed, running in-memory", "path", path, "error", err)
		db.Close()
		return s
	}

	s.db = db
	return s
}

// Memory returns a store with no backing database. Used by tests and as the
// degraded mode when storage is unavailable.
func Memory() *Store {
	return &Store{mem: make(map[string][]byte), log: zap.NewNop().Sugar()}
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Get(key string) ([]byte, bool) {
	if value, ok := s.mem[key]; ok {
		return value, true
	}
	if s.db == nil {
		return nil, false
	}

	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?;`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false
	}
	if err != nil {
		s.log.Warnw("read failed", "key", key, "error", err)
		return nil, false
	}
	s.mem[key] = []byte(value)
	return []byte(value), true
}

func (s *Store) Put(key string, value []byte) {
	s.mem[key] = value
	if s.db == nil {
		return
	}
	_, err := s.db.Exec(`INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value;`, key, string(value))
	if err != nil {
		s.log.Warnw("write failed", "key", key, "error", err)
	}
}

// Load reads the value stored under key into a T. Absent or undecodable
// values fall back to def, so a corrupt entry behaves like a fresh install.
func Load[T any](kv KV, key string, def T) T {
	raw, ok := kv.Get(key)
	if !ok {
		return def
	}
	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		return def
	}
	return value
}

// Save serializes v and writes it under key, replacing any previous value.
func Save[T any](kv KV, key string, v T) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	kv.Put(key, raw)
}

func ensureSchema(db *sql.DB) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS kv (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`
	_, err := db.Exec(ddl)
	return err
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
