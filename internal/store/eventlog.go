package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const eventsDBFileName = "events.sqlite"

// Event is one append-only audit record of a local mutation. The log is
// never replayed; it exists so `roadmap events list` can answer "what
// changed my data".
type Event struct {
	ID       string    `json:"id"`
	TS       time.Time `json:"ts"`
	Actor    string    `json:"actor"`
	Type     string    `json:"type"`
	EntityID string    `json:"entityId"`
	Payload  any       `json:"payload,omitempty"`
}

func (s Store) eventsPath() string {
	return filepath.Join(s.Dir, eventsDBFileName)
}

func (s Store) openEventLog(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.eventsPath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids
	// "database is locked" flakiness when CLI and TUI overlap.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS events (
		event_id TEXT PRIMARY KEY,
		ts_unixms INTEGER NOT NULL,
		actor TEXT NOT NULL,
		type TEXT NOT NULL,
		entity_id TEXT NOT NULL,
		payload_json TEXT NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// AppendEvent records a mutation in the audit log. Best-effort: callers
// typically ignore the error since the log must never block a save.
func (s Store) AppendEvent(actor, typ, entityID string, payload any) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := s.openEventLog(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	pj, err := json.Marshal(payload)
	if err != nil {
		pj = []byte("null")
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO events (event_id, ts_unixms, actor, type, entity_id, payload_json) VALUES (?, ?, ?, ?, ?, ?)`,
		newEventID(), time.Now().UnixMilli(), actor, typ, entityID, string(pj))
	return err
}

// ListEvents returns the most recent events, newest first.
func (s Store) ListEvents(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}
	db, err := s.openEventLog(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		`SELECT event_id, ts_unixms, actor, type, entity_id, payload_json FROM events ORDER BY ts_unixms DESC, event_id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var ev Event
		var ms int64
		var pj string
		if err := rows.Scan(&ev.ID, &ms, &ev.Actor, &ev.Type, &ev.EntityID, &pj); err != nil {
			return nil, err
		}
		ev.TS = time.UnixMilli(ms).UTC()
		if pj != "" && pj != "null" {
			var payload any
			if err := json.Unmarshal([]byte(pj), &payload); err == nil {
				ev.Payload = payload
			}
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

func newEventID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return "ev-" + hex.EncodeToString(b[:])
}
