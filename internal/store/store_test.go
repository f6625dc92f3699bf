package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"roadmap-cli/internal/model"
)

func TestLoadSeedsOnFirstRunOnly(t *testing.T) {
	s := Store{Dir: t.TempDir()}

	db, err := s.Load()
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	if len(db.Weeks) == 0 {
		t.Fatalf("expected seeded weeks on first run")
	}
	if _, err := os.Stat(filepath.Join(s.Dir, dbFileName)); err != nil {
		t.Fatalf("seed was not persisted: %v", err)
	}

	// A user edit must survive reloads; the seed never overwrites it.
	db.Weeks[0].Notes = "my notes"
	db.Weeks[0].Completed = true
	if err := s.Save(db); err != nil {
		t.Fatalf("save: %v", err)
	}

	again, err := s.Load()
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if !again.Weeks[0].Completed || again.Weeks[0].Notes != "my notes" {
		t.Fatalf("user edit lost on reload: %+v", again.Weeks[0])
	}
}

func TestLoadToleratesBareArrayDocument(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	if err := s.Ensure(); err != nil {
		t.Fatal(err)
	}
	raw := `[{"week":1,"concept":"Python","completed":true}]`
	if err := os.WriteFile(filepath.Join(s.Dir, dbFileName), []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	db, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(db.Weeks) != 1 || db.Weeks[0].Week != 1 || !db.Weeks[0].Completed {
		t.Fatalf("unexpected weeks: %+v", db.Weeks)
	}
}

func TestResetReSeeds(t *testing.T) {
	s := Store{Dir: t.TempDir()}

	db, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	db.Weeks = nil
	if err := s.Save(db); err != nil {
		t.Fatal(err)
	}
	if err := s.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	db, err = s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(db.Weeks) == 0 {
		t.Fatalf("expected re-seeded weeks after reset")
	}
}

func TestLastSyncRoundTrip(t *testing.T) {
	s := Store{Dir: t.TempDir()}

	if _, ok := s.LastSync(); ok {
		t.Fatalf("expected no last-sync stamp initially")
	}
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	if err := s.SetLastSync(now); err != nil {
		t.Fatalf("set last sync: %v", err)
	}
	got, ok := s.LastSync()
	if !ok || !got.Equal(now) {
		t.Fatalf("got %v ok=%v want %v", got, ok, now)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")
	weeks := []model.Week{
		{Week: 1, Concept: "Python", Tags: []string{"python"}, Resources: []model.Resource{{Title: "Docs", URL: "https://docs.python.org", Type: model.ResourceDocumentation}}},
		{Week: 2, Concept: "NumPy", Priority: model.PriorityHigh, HoursExpected: 10, HoursCompleted: 2.5},
	}

	if err := Export(path, weeks); err != nil {
		t.Fatalf("export: %v", err)
	}
	got, err := Import(path)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(got) != len(weeks) {
		t.Fatalf("round trip length: got %d want %d", len(got), len(weeks))
	}
	for i := range weeks {
		if got[i].Week != weeks[i].Week || got[i].Concept != weeks[i].Concept {
			t.Fatalf("week %d changed in round trip: %+v vs %+v", i, got[i], weeks[i])
		}
	}
	if got[1].HoursCompleted != 2.5 || got[0].Resources[0].Type != model.ResourceDocumentation {
		t.Fatalf("fields lost in round trip: %+v", got)
	}
}

func TestImportRejectsNonArray(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte(`{"weeks": []}`), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Import(path)
	if _, ok := err.(ErrNotArray); !ok {
		t.Fatalf("expected ErrNotArray, got %v", err)
	}
}

func TestImportRejectsNullAndScalarDocuments(t *testing.T) {
	dir := t.TempDir()

	// "null" decodes into a nil slice without error, so it must be caught
	// before unmarshalling; accepting it would erase every week on import.
	for i, doc := range []string{"null", `"weeks"`, "42", "true", "", "  \n"} {
		path := filepath.Join(dir, fmt.Sprintf("bad-%d.json", i))
		if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := Import(path)
		if _, ok := err.(ErrNotArray); !ok {
			t.Fatalf("doc %q: expected ErrNotArray, got %v", doc, err)
		}
	}
}

func TestConfigDefaultsAndRoundTrip(t *testing.T) {
	t.Setenv("ROADMAP_CONFIG_DIR", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load default config: %v", err)
	}
	if cfg.Sync.SyncInterval != DefaultSyncInterval || cfg.Sync.AutoSync {
		t.Fatalf("unexpected defaults: %+v", cfg.Sync)
	}

	cfg.Sync.GistID = "abc123"
	cfg.Sync.AccessToken = "tok"
	cfg.Sync.AutoSync = true
	cfg.Sync.SyncInterval = 10
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("save config: %v", err)
	}

	again, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if again.Sync.GistID != "abc123" || !again.Sync.AutoSync || again.Sync.SyncInterval != 10 {
		t.Fatalf("config round trip: %+v", again.Sync)
	}
}

func TestEventLogAppendAndList(t *testing.T) {
	s := Store{Dir: t.TempDir()}

	if err := s.AppendEvent("cli", "week.create", "week-1", map[string]any{"week": 1}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.AppendEvent("cli", "week.complete", "week-1", nil); err != nil {
		t.Fatalf("append: %v", err)
	}

	evs, err := s.ListEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(evs) != 2 {
		t.Fatalf("expected 2 events, got %d", len(evs))
	}
	types := map[string]bool{}
	for _, ev := range evs {
		types[ev.Type] = true
		if ev.Actor != "cli" || ev.EntityID != "week-1" || ev.ID == "" {
			t.Fatalf("bad event: %+v", ev)
		}
	}
	if !types["week.create"] || !types["week.complete"] {
		t.Fatalf("missing event types: %v", types)
	}
}
