package sync

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"roadmap-cli/internal/gist"
	"roadmap-cli/internal/model"
	"roadmap-cli/internal/store"
)

// fakeRemote is a minimal single-gist host. content=="" means the document
// does not exist yet.
type fakeRemote struct {
	mu      sync.Mutex
	content string
	creates int
	patches int
	reads   int
}

func (f *fakeRemote) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/gists":
			var req struct {
				Files map[string]struct {
					Content string `json:"content"`
				} `json:"files"`
			}
			_ = json.NewDecoder(r.Body).Decode(&req)
			f.content = req.Files[gist.FileName].Content
			f.creates++
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]any{"id": "g1"})

		case r.Method == http.MethodPatch && strings.HasPrefix(r.URL.Path, "/gists/"):
			var req struct {
				Files map[string]struct {
					Content string `json:"content"`
				} `json:"files"`
			}
			_ = json.NewDecoder(r.Body).Decode(&req)
			f.content = req.Files[gist.FileName].Content
			f.patches++
			_ = json.NewEncoder(w).Encode(map[string]any{"id": "g1"})

		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/gists/"):
			f.reads++
			if f.content == "" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id":    "g1",
				"files": map[string]any{gist.FileName: map[string]any{"content": f.content}},
			})

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func newTestOrchestrator(t *testing.T, cfg model.SyncConfig) (*Orchestrator, *fakeRemote, store.Store) {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("ROADMAP_CONFIG_DIR", dir)
	st := store.Store{Dir: dir}

	remote := &fakeRemote{}
	srv := httptest.NewServer(remote.handler())
	t.Cleanup(srv.Close)

	client := gist.New(cfg, gist.Options{BaseURL: srv.URL, HTTPClient: srv.Client(), ClientID: "test"})
	o := New(client, st)
	t.Cleanup(o.Close)
	return o, remote, st
}

func TestUploadRecordsLastSyncAndPersistsGistID(t *testing.T) {
	o, remote, st := newTestOrchestrator(t, model.SyncConfig{AccessToken: "tok"})

	res := o.Upload(context.Background(), []model.Week{{Week: 1, Completed: true}})
	if !res.Success {
		t.Fatalf("upload: %+v", res)
	}
	if remote.creates != 1 {
		t.Fatalf("expected document creation, got %d creates", remote.creates)
	}
	if _, ok := st.LastSync(); !ok {
		t.Fatalf("last-sync stamp not recorded")
	}
	cfg, err := store.LoadConfig()
	if err != nil || cfg.Sync.GistID != "g1" {
		t.Fatalf("gist id not persisted: %+v err=%v", cfg, err)
	}
}

func TestReconcileSeedsEmptyRemote(t *testing.T) {
	o, remote, _ := newTestOrchestrator(t, model.SyncConfig{AccessToken: "tok", GistID: "g1"})

	local := []model.Week{{Week: 1, Completed: true}}
	res := o.Reconcile(context.Background(), local)
	if res.Outcome != OutcomeSeededRemote {
		t.Fatalf("expected seeded-remote, got %+v", res)
	}
	if remote.content == "" {
		t.Fatalf("remote not seeded")
	}
}

func TestReconcileRemoteWinsWhenCompletedCountsDiffer(t *testing.T) {
	o, remote, _ := newTestOrchestrator(t, model.SyncConfig{AccessToken: "tok", GistID: "g1"})

	remoteWeeks := []model.Week{{Week: 1, Completed: true}, {Week: 2, Completed: true}}
	b, _ := json.Marshal(gist.Envelope{RoadmapData: remoteWeeks, Version: gist.EnvelopeVersion})
	remote.content = string(b)

	local := []model.Week{{Week: 1, Completed: true}, {Week: 2, Notes: "local-only edit"}}
	res := o.Reconcile(context.Background(), local)
	if res.Outcome != OutcomePulledRemote {
		t.Fatalf("expected pulled-remote, got %+v", res)
	}
	if len(res.Weeks) != 2 || !res.Weeks[1].Completed {
		t.Fatalf("remote weeks not returned: %+v", res.Weeks)
	}
}

func TestReconcileIdempotentWhenInSync(t *testing.T) {
	o, remote, _ := newTestOrchestrator(t, model.SyncConfig{AccessToken: "tok", GistID: "g1"})

	weeks := []model.Week{{Week: 1, Completed: true}, {Week: 2}}
	b, _ := json.Marshal(gist.Envelope{RoadmapData: weeks, Version: gist.EnvelopeVersion})
	remote.content = string(b)

	first := o.Reconcile(context.Background(), weeks)
	if first.Outcome != OutcomeInSync {
		t.Fatalf("first reconcile: %+v", first)
	}
	second := o.Reconcile(context.Background(), weeks)
	if second.Outcome != OutcomeInSync {
		t.Fatalf("second reconcile must also report in sync, got %+v", second)
	}
	if remote.patches != 0 || remote.creates != 0 {
		t.Fatalf("in-sync reconcile must not write: creates=%d patches=%d", remote.creates, remote.patches)
	}
}

func TestConcurrentSyncRejectedWhileBusy(t *testing.T) {
	o, _, _ := newTestOrchestrator(t, model.SyncConfig{AccessToken: "tok", GistID: "g1"})

	// Hold the guard as an in-flight operation would.
	if !o.begin() {
		t.Fatal("begin failed")
	}
	defer o.end()

	if o.Status() != StatusSyncing {
		t.Fatalf("expected syncing status")
	}
	res := o.Upload(context.Background(), []model.Week{{Week: 1}})
	if res.Success || res.Message != "sync already in progress" {
		t.Fatalf("expected busy rejection, got %+v", res)
	}
	rec := o.Reconcile(context.Background(), nil)
	if rec.Outcome != OutcomeFailed {
		t.Fatalf("expected busy reconcile failure, got %+v", rec)
	}
}

func TestAutoSyncUploadsFreshSnapshotEachTick(t *testing.T) {
	o, remote, st := newTestOrchestrator(t, model.SyncConfig{AccessToken: "tok", GistID: "g1"})

	// Persisted snapshot at start.
	if err := st.Save(&store.DB{Version: 1, Weeks: []model.Week{{Week: 1}}}); err != nil {
		t.Fatal(err)
	}

	results := make(chan gist.Result, 16)
	o.StartAutoSync(20*time.Millisecond, func(r gist.Result) { results <- r })

	waitResult := func() gist.Result {
		select {
		case r := <-results:
			return r
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for auto-sync tick")
			return gist.Result{}
		}
	}

	if r := waitResult(); !r.Success {
		t.Fatalf("first tick: %+v", r)
	}

	// Mutate the persisted snapshot; a later tick must pick it up.
	if err := st.Save(&store.DB{Version: 1, Weeks: []model.Week{{Week: 1}, {Week: 2, Concept: "NumPy"}}}); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for {
		remote.mu.Lock()
		synced := strings.Contains(remote.content, "NumPy")
		remote.mu.Unlock()
		if synced {
			break
		}
		select {
		case <-deadline:
			t.Fatal("auto-sync never uploaded the fresh snapshot")
		case <-results:
		case <-time.After(10 * time.Millisecond):
		}
	}

	o.StopAutoSync()
	o.StopAutoSync() // safe when none is running
}

func TestStartAutoSyncIsIdempotent(t *testing.T) {
	o, _, st := newTestOrchestrator(t, model.SyncConfig{AccessToken: "tok", GistID: "g1"})
	if err := st.Save(&store.DB{Version: 1, Weeks: []model.Week{{Week: 1}}}); err != nil {
		t.Fatal(err)
	}

	var mu sync.Mutex
	ticks := 0
	count := func(gist.Result) {
		mu.Lock()
		ticks++
		mu.Unlock()
	}

	// Restarting must replace, not stack, timers.
	o.StartAutoSync(30*time.Millisecond, count)
	o.StartAutoSync(30*time.Millisecond, count)
	o.StartAutoSync(30*time.Millisecond, count)

	time.Sleep(100 * time.Millisecond)
	o.StopAutoSync()

	mu.Lock()
	got := ticks
	mu.Unlock()
	// Three stacked timers over ~100ms at 30ms would exceed 6 ticks.
	if got > 4 {
		t.Fatalf("timers stacked: %d ticks", got)
	}
}
