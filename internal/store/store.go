package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"roadmap-cli/internal/model"
)

const (
	dbFileName       = "roadmap.json"
	lastSyncFileName = "last-sync"
)

// DB is the locally persisted roadmap document.
type DB struct {
	Version int          `json:"version"`
	Weeks   []model.Week `json:"weeks"`
}

// Store reads and writes the roadmap document under Dir.
type Store struct {
	Dir string
}

// DefaultDir is the config dir; the roadmap document lives next to
// config.json.
func DefaultDir() (string, error) {
	return ConfigDir()
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) dbPath() string {
	return filepath.Join(s.Dir, dbFileName)
}

// Load reads the roadmap document. On first run (no document yet) it
// persists the bundled seed curriculum and returns that; an existing
// document is always used as-is so user edits are never overwritten by the
// seed.
func (s Store) Load() (*DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}

	b, err := os.ReadFile(s.dbPath())
	if errors.Is(err, os.ErrNotExist) {
		db, err := seedDB()
		if err != nil {
			return nil, err
		}
		if err := s.Save(db); err != nil {
			return nil, err
		}
		return db, nil
	}
	if err != nil {
		return nil, err
	}

	var db DB
	if err := json.Unmarshal(b, &db); err != nil {
		// Legacy export format: a bare week array.
		var weeks []model.Week
		if err2 := json.Unmarshal(b, &weeks); err2 == nil {
			return &DB{Version: 1, Weeks: weeks}, nil
		}
		return nil, fmt.Errorf("parse %s: %w", dbFileName, err)
	}
	if db.Version == 0 {
		db.Version = 1
	}
	return &db, nil
}

// Save writes the document atomically (temp file + rename) so a crash
// mid-write never leaves a truncated roadmap behind.
func (s Store) Save(db *DB) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	b, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.dbPath() + ".tmp"
	if err := os.WriteFile(tmp, append(b, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.dbPath())
}

// Reset discards the local document; the next Load re-seeds from the
// bundled curriculum.
func (s Store) Reset() error {
	err := os.Remove(s.dbPath())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (s Store) lastSyncPath() string {
	return filepath.Join(s.Dir, lastSyncFileName)
}

// LastSync returns the recorded last successful sync time.
func (s Store) LastSync() (time.Time, bool) {
	b, err := os.ReadFile(s.lastSyncPath())
	if err != nil {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, string(trimNewline(b)))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// SetLastSync records t as an RFC 3339 stamp.
func (s Store) SetLastSync(t time.Time) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	return os.WriteFile(s.lastSyncPath(), []byte(t.UTC().Format(time.RFC3339)+"\n"), 0o644)
}

func trimNewline(b []byte) []byte {
	for len(b) > 0 && (b[len(b)-1] == '\n' || b[len(b)-1] == '\r') {
		b = b[:len(b)-1]
	}
	return b
}
