package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// runCmd executes the root command against an isolated data dir and returns
// parsed JSON output.
func runCmd(t *testing.T, dir string, args ...string) map[string]any {
	t.Helper()

	out := runCmdErr(t, dir, nil, args...)
	return out
}

func runCmdErr(t *testing.T, dir string, wantErr *bool, args ...string) map[string]any {
	t.Helper()

	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--dir", dir}, args...))

	err := cmd.Execute()
	if wantErr == nil {
		if err != nil {
			t.Fatalf("command %v failed: %v (stderr: %s)", args, err, stderr.String())
		}
	} else {
		*wantErr = err != nil
		if err != nil {
			return nil
		}
	}

	var payload map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &payload); err != nil {
		t.Fatalf("command %v wrote non-JSON output: %q", args, stdout.String())
	}
	return payload
}

func dataOf(t *testing.T, payload map[string]any) map[string]any {
	t.Helper()
	data, ok := payload["data"].(map[string]any)
	if !ok {
		t.Fatalf("no data object in %v", payload)
	}
	return data
}

func setupDirs(t *testing.T) string {
	t.Helper()
	t.Setenv("ROADMAP_CONFIG_DIR", t.TempDir())
	return t.TempDir()
}

func TestWeeksAddAssignsNextNumber(t *testing.T) {
	dir := setupDirs(t)

	// The store seeds ten weeks on first use.
	added := dataOf(t, runCmd(t, dir, "weeks", "add", "--concept", "Transformers", "--priority", "high"))
	if added["week"].(float64) != 11 {
		t.Fatalf("expected week 11 after the seeded curriculum, got %v", added["week"])
	}

	shown := dataOf(t, runCmd(t, dir, "weeks", "show", "11"))
	if shown["concept"] != "Transformers" {
		t.Fatalf("unexpected week: %v", shown)
	}
}

func TestWeeksListFiltersAndPaginates(t *testing.T) {
	dir := setupDirs(t)

	payload := runCmd(t, dir, "weeks", "list", "--category", "project", "--status", "todo")
	weeks := payload["data"].([]any)
	if len(weeks) != 2 {
		t.Fatalf("seed has 2 project weeks, got %d", len(weeks))
	}

	// 10 seeded weeks, page size 4 => 3 pages, page 3 holds 2.
	payload = runCmd(t, dir, "weeks", "list", "--page-size", "4", "--page", "3")
	weeks = payload["data"].([]any)
	meta := payload["meta"].(map[string]any)
	if len(weeks) != 2 || meta["pageCount"].(float64) != 3 {
		t.Fatalf("pagination: %d weeks, meta %v", len(weeks), meta)
	}
}

func TestWeeksCompleteAndStats(t *testing.T) {
	dir := setupDirs(t)

	done := dataOf(t, runCmd(t, dir, "weeks", "complete", "1", "--hours", "12"))
	if done["completed"] != true || done["hoursCompleted"].(float64) != 12 {
		t.Fatalf("complete: %v", done)
	}

	st := dataOf(t, runCmd(t, dir, "stats"))
	if st["completed"].(float64) != 1 {
		t.Fatalf("stats after complete: %v", st)
	}
	cur := st["current"].(map[string]any)
	if cur["week"].(float64) != 2 {
		t.Fatalf("current week should advance to 2, got %v", cur)
	}
}

func TestWeeksUpdateUnknownIsError(t *testing.T) {
	dir := setupDirs(t)

	failed := false
	runCmdErr(t, dir, &failed, "weeks", "update", "99", "--notes", "x")
	if !failed {
		t.Fatalf("expected not-found error for unknown week")
	}
}

func TestWeeksDeleteRequiresYes(t *testing.T) {
	dir := setupDirs(t)

	failed := false
	runCmdErr(t, dir, &failed, "weeks", "delete", "1")
	if !failed {
		t.Fatalf("expected refusal without --yes")
	}

	runCmd(t, dir, "weeks", "delete", "1", "--yes")
	failed = false
	runCmdErr(t, dir, &failed, "weeks", "show", "1")
	if !failed {
		t.Fatalf("expected week 1 to be gone")
	}
}

func TestExportImportRoundTripViaCLI(t *testing.T) {
	dir := setupDirs(t)
	backup := filepath.Join(t.TempDir(), "backup.json")

	runCmd(t, dir, "weeks", "complete", "2")
	runCmd(t, dir, "export", "--out", backup)

	// Wreck local state, then restore from the backup.
	runCmd(t, dir, "weeks", "delete", "1", "--yes")
	runCmd(t, dir, "import", "--in", backup)

	st := dataOf(t, runCmd(t, dir, "stats"))
	if st["total"].(float64) != 10 || st["completed"].(float64) != 1 {
		t.Fatalf("restored stats: %v", st)
	}
}

func TestImportRejectsNonArrayWithoutStateChange(t *testing.T) {
	dir := setupDirs(t)
	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := writeFile(bad, `{"not":"an array"}`); err != nil {
		t.Fatal(err)
	}

	before := dataOf(t, runCmd(t, dir, "stats"))

	failed := false
	runCmdErr(t, dir, &failed, "import", "--in", bad)
	if !failed {
		t.Fatalf("expected import rejection")
	}

	after := dataOf(t, runCmd(t, dir, "stats"))
	if before["total"] != after["total"] {
		t.Fatalf("rejected import changed state: %v -> %v", before, after)
	}
}

func TestConfigSetAndShowRedactsToken(t *testing.T) {
	dir := setupDirs(t)

	set := dataOf(t, runCmd(t, dir, "config", "set", "--token", "secret", "--gist-id", "g1", "--auto-sync", "--interval", "10"))
	if set["accessToken"] != "(set)" || set["gistId"] != "g1" {
		t.Fatalf("config set output: %v", set)
	}

	show := dataOf(t, runCmd(t, dir, "config", "show"))
	if show["accessToken"] != "(set)" || show["autoSync"] != true || show["syncInterval"].(float64) != 10 {
		t.Fatalf("config show output: %v", show)
	}
}

func TestEventsRecordMutations(t *testing.T) {
	dir := setupDirs(t)

	runCmd(t, dir, "weeks", "complete", "3")
	payload := runCmd(t, dir, "events", "list", "--limit", "5")
	evs := payload["data"].([]any)
	if len(evs) == 0 {
		t.Fatalf("expected at least one event")
	}
	ev := evs[0].(map[string]any)
	if ev["type"] != "week.complete" || ev["entityId"] != "week-3" {
		t.Fatalf("unexpected newest event: %v", ev)
	}
}

func TestParseStatusFlag(t *testing.T) {
	t.Parallel()

	if v, err := parseStatusFlag("all"); err != nil || v != nil {
		t.Fatalf("all: %v %v", v, err)
	}
	v, err := parseStatusFlag("done")
	if err != nil || v == nil || !*v {
		t.Fatalf("done: %v %v", v, err)
	}
	v, err = parseStatusFlag("todo")
	if err != nil || v == nil || *v {
		t.Fatalf("todo: %v %v", v, err)
	}
	if _, err := parseStatusFlag("bogus"); err == nil {
		t.Fatalf("expected error for bogus status")
	}
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
