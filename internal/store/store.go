// Package store persists student interactions in SQLite. The table is
// append-only: records are inserted, scanned in insertion order, and removed
// only by a full Clear. Existing rows are never updated.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"coteach/internal/classify"
)

// TimeLayout is the text encoding used for the timestamp column.
const TimeLayout = "2006-01-02 15:04:05"

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store: closed")

// Interaction is one persisted student submission.
type Interaction struct {
	ID        int64
	Timestamp time.Time
	Topic     classify.Topic
	Text      string
}

// Store wraps a single SQLite connection. Writers are serialized by the
// mutex; SetMaxOpenConns(1) keeps readers from observing a half-applied
// write on the shared handle.
type Store struct {
	db     *sql.DB
	mu     sync.RWMutex
	path   string
	log    *zap.Logger
	now    func() time.Time
	closed bool
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the insertion clock. Tests use this to pin timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open initializes the SQLite database at path, creating the directory and
// schema as needed. Use ":memory:" for an ephemeral store.
func Open(path string, logger *zap.Logger, opts ...Option) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("store: create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logger.Debug("failed to set busy_timeout", zap.Error(err))
	}
	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
			logger.Debug("failed to set journal_mode=WAL", zap.Error(err))
		}
		if _, err := db.Exec("PRAGMA synchronous = NORMAL"); err != nil {
			logger.Debug("failed to set synchronous=NORMAL", zap.Error(err))
		}
	}

	s := &Store{db: db, path: path, log: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	logger.Info("interaction store ready", zap.String("path", path))
	return s, nil
}

// initialize creates the interactions table. AUTOINCREMENT keeps ids strictly
// increasing and never reused, even across a Clear.
func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS interactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT NOT NULL,
		topic TEXT NOT NULL,
		query TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_interactions_topic ON interactions(topic);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("store: initialize schema: %w", err)
	}
	return nil
}

// Insert appends a new interaction with the next id and the store clock's
// current time, and returns the stored record.
func (s *Store) Insert(topic classify.Topic, text string) (Interaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Interaction{}, ErrClosed
	}

	ts := s.now()
	res, err := s.db.Exec(
		"INSERT INTO interactions (timestamp, topic, query) VALUES (?, ?, ?)",
		ts.Format(TimeLayout), string(topic), text,
	)
	if err != nil {
		s.log.Error("insert failed", zap.String("topic", string(topic)), zap.Error(err))
		return Interaction{}, fmt.Errorf("store: insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Interaction{}, fmt.Errorf("store: insert id: %w", err)
	}

	rec := Interaction{ID: id, Timestamp: ts.Truncate(time.Second), Topic: topic, Text: text}
	s.log.Debug("interaction stored", zap.Int64("id", id), zap.String("topic", string(topic)))
	return rec, nil
}

// Scan returns every interaction in insertion order (ascending id).
func (s *Store) Scan() ([]Interaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrClosed
	}

	rows, err := s.db.Query(
		"SELECT id, timestamp, topic, query FROM interactions ORDER BY id ASC",
	)
	if err != nil {
		s.log.Error("scan failed", zap.Error(err))
		return nil, fmt.Errorf("store: scan: %w", err)
	}
	defer rows.Close()

	var out []Interaction
	for rows.Next() {
		var (
			rec Interaction
			ts  string
			tp  string
		)
		if err := rows.Scan(&rec.ID, &ts, &tp, &rec.Text); err != nil {
			return nil, fmt.Errorf("store: scan row: %w", err)
		}
		rec.Topic = classify.Topic(tp)
		parsed, err := time.ParseInLocation(TimeLayout, ts, time.Local)
		if err != nil {
			return nil, fmt.Errorf("store: bad timestamp %q for id %d: %w", ts, rec.ID, err)
		}
		rec.Timestamp = parsed
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: scan: %w", err)
	}
	return out, nil
}

// Clear removes every interaction in one statement. The id counter is not
// reset: AUTOINCREMENT preserves sqlite_sequence, so later inserts continue
// from the last used id.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	if _, err := s.db.Exec("DELETE FROM interactions"); err != nil {
		s.log.Error("clear failed", zap.Error(err))
		return fmt.Errorf("store: clear: %w", err)
	}
	s.log.Info("interaction store cleared")
	return nil
}

// Count returns the number of stored interactions.
func (s *Store) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, ErrClosed
	}

	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM interactions").Scan(&n); err != nil {
		return 0, fmt.Errorf("store: count: %w", err)
	}
	return n, nil
}

// Path returns the database location.
func (s *Store) Path() string { return s.path }

// Close releases the database handle. Further operations return ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
