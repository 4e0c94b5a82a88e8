// Package history stores recently played media in a SQLite database.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is a recently played media locator.
type Entry struct {
	URI        string
	Name       string
	LastPlayed time.Time
	PlayCount  int
	Watched    time.Duration
}

type Store struct {
	db         *sql.DB
	maxEntries int
}

// Open opens or creates the database at path, keeping at most maxEntries
// entries. Parent directories are created if they don't exist.
func Open(path string, maxEntries int) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// a single connection so ":memory:" databases are shared
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating history database: %w", err)
	}
	return &Store{db: db, maxEntries: maxEntries}, nil
}

// migrate is idempotent
func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS recent (
			uri TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			last_played INTEGER NOT NULL,
			play_count INTEGER NOT NULL DEFAULT 1,
			watched_ms INTEGER NOT NULL DEFAULT 0
		)
	`)
	if err != nil {
		return err
	}
	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS recent_last_played ON recent (last_played DESC)`)
	return err
}

const (
	upsertRecentSQL = `
		INSERT INTO recent (uri, name, last_played, play_count) VALUES (?, ?, ?, 1)
		ON CONFLICT(uri) DO UPDATE SET
			name = excluded.name,
			last_played = excluded.last_played,
			play_count = play_count + 1`
	trimRecentSQL = `
		DELETE FROM recent WHERE uri NOT IN (
			SELECT uri FROM recent ORDER BY last_played DESC, rowid DESC LIMIT ?
		)`
	selectRecentSQL = `
		SELECT uri, name, last_played, play_count, watched_ms FROM recent
		ORDER BY last_played DESC, rowid DESC LIMIT ?`
	addWatchedSQL   = `UPDATE recent SET watched_ms = watched_ms + ? WHERE uri = ?`
	deleteRecentSQL = `DELETE FROM recent WHERE uri = ?`
	clearRecentSQL  = `DELETE FROM recent`
)

// Record notes that uri was played at the given time.
func (s *Store) Record(uri, name string, at time.Time) error {
	if _, err := s.db.Exec(upsertRecentSQL, uri, name, at.UnixMilli()); err != nil {
		return fmt.Errorf("record %s: %w", uri, err)
	}
	if s.maxEntries > 0 {
		if _, err := s.db.Exec(trimRecentSQL, s.maxEntries); err != nil {
			return fmt.Errorf("trim history: %w", err)
		}
	}
	return nil
}

// AddWatched adds to the total time uri has been watched.
func (s *Store) AddWatched(uri string, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	_, err := s.db.Exec(addWatchedSQL, d.Milliseconds(), uri)
	return err
}

// Recent returns up to limit entries, most recently played first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	rows, err := s.db.Query(selectRecentSQL, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e         Entry
			played    int64
			watchedMs int64
		)
		if err := rows.Scan(&e.URI, &e.Name, &played, &e.PlayCount, &watchedMs); err != nil {
			return nil, err
		}
		e.LastPlayed = time.UnixMilli(played)
		e.Watched = time.Duration(watchedMs) * time.Millisecond
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) Remove(uri string) error {
	_, err := s.db.Exec(deleteRecentSQL, uri)
	return err
}

func (s *Store) Clear() error {
	_, err := s.db.Exec(clearRecentSQL)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}
