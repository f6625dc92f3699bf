// Package sync sequences uploads, downloads and reconciliation against the
// remote document, and owns the auto-sync timer.
package sync

import (
	"context"
	"sync"
	"time"

	"roadmap-cli/internal/gist"
	"roadmap-cli/internal/model"
	"roadmap-cli/internal/store"
)

// Status is the coarse sync state observed by the UI. Operations move
// Idle -> Syncing -> Idle; the outcome travels in the Result, not the
// status. There is no partial state: an operation either fully applies or
// fails with local state intact.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusSyncing Status = "syncing"
)

// failBusy rejects a sync attempt while another one is in flight. The
// original web client had no such guard; a timer tick and a manual upload
// could race on the same document.
const failBusy = gist.FailureKind("busy")

// Orchestrator owns the sync lifecycle for one application session.
// Construct with New, tear down with Close; the timer handle and config
// live here rather than in package globals.
type Orchestrator struct {
	client *gist.Client
	store  store.Store

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	busy   bool
	stopCh chan struct{}
}

func New(client *gist.Client, st store.Store) *Orchestrator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Orchestrator{client: client, store: st, ctx: ctx, cancel: cancel}
}

// Status reports whether a sync operation is currently in flight.
func (o *Orchestrator) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.busy {
		return StatusSyncing
	}
	return StatusIdle
}

func (o *Orchestrator) begin() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.busy {
		return false
	}
	o.busy = true
	return true
}

func (o *Orchestrator) end() {
	o.mu.Lock()
	o.busy = false
	o.mu.Unlock()
}

func busyResult() gist.Result {
	return gist.Result{Kind: failBusy, Message: "sync already in progress"}
}

// Upload pushes the given collection to the remote document and records the
// last-sync stamp on success. If the client had to provision a new gist,
// its id is persisted into the sync config.
func (o *Orchestrator) Upload(ctx context.Context, weeks []model.Week) gist.Result {
	if !o.begin() {
		return busyResult()
	}
	defer o.end()
	return o.upload(ctx, weeks)
}

// upload is the guard-free body shared by Upload and Reconcile.
func (o *Orchestrator) upload(ctx context.Context, weeks []model.Week) gist.Result {
	res := o.client.Update(ctx, weeks)
	if res.Success {
		_ = o.store.SetLastSync(time.Now().UTC())
		o.persistGistID()
	}
	return res
}

// Download fetches the remote document. The caller decides whether to
// replace local state with Result.Weeks.
func (o *Orchestrator) Download(ctx context.Context) gist.Result {
	if !o.begin() {
		return busyResult()
	}
	defer o.end()

	res := o.client.Read(ctx)
	if res.Success {
		_ = o.store.SetLastSync(time.Now().UTC())
	}
	return res
}

// ReconcileOutcome says which side won a reconcile.
type ReconcileOutcome string

const (
	// OutcomePulledRemote: remote differed, caller must replace local
	// state wholesale with ReconcileResult.Weeks.
	OutcomePulledRemote ReconcileOutcome = "pulled-remote"
	// OutcomeSeededRemote: remote was empty, local was uploaded as seed.
	OutcomeSeededRemote ReconcileOutcome = "seeded-remote"
	// OutcomeInSync: no difference detected, nothing changed.
	OutcomeInSync ReconcileOutcome = "in-sync"
	OutcomeFailed ReconcileOutcome = "failed"
)

type ReconcileResult struct {
	Outcome ReconcileOutcome `json:"outcome"`
	Message string           `json:"message"`
	// Weeks is set only for OutcomePulledRemote.
	Weeks []model.Week `json:"-"`
}

// Reconcile downloads first and compares a coarse signal: the count of
// completed weeks on each side. If the counts differ, remote wins and
// replaces local wholesale; there is no per-field merge below that
// granularity. If the remote has no document at all, local is uploaded as
// the seed.
//
// This policy is deliberately simple and lossy: edits that do not change
// the completed count (notes, hours) on the side with fewer completions are
// silently discarded when the counts differ. Intended usage is one user
// syncing their own devices sequentially.
func (o *Orchestrator) Reconcile(ctx context.Context, local []model.Week) ReconcileResult {
	if !o.begin() {
		return ReconcileResult{Outcome: OutcomeFailed, Message: "sync already in progress"}
	}
	defer o.end()

	down := o.client.Read(ctx)
	if down.Success {
		remoteDone := countCompleted(down.Weeks)
		localDone := countCompleted(local)
		if remoteDone != localDone {
			_ = o.store.SetLastSync(time.Now().UTC())
			return ReconcileResult{
				Outcome: OutcomePulledRemote,
				Message: "downloaded cloud data",
				Weeks:   down.Weeks,
			}
		}
		_ = o.store.SetLastSync(time.Now().UTC())
		return ReconcileResult{Outcome: OutcomeInSync, Message: "local and cloud data are in sync"}
	}

	if down.Kind == gist.FailNotFound {
		up := o.upload(ctx, local)
		if up.Success {
			return ReconcileResult{Outcome: OutcomeSeededRemote, Message: "uploaded local data to cloud (first time)"}
		}
		return ReconcileResult{Outcome: OutcomeFailed, Message: up.Message}
	}

	return ReconcileResult{Outcome: OutcomeFailed, Message: down.Message}
}

func countCompleted(weeks []model.Week) int {
	n := 0
	for _, w := range weeks {
		if w.Completed {
			n++
		}
	}
	return n
}

// StartAutoSync schedules a repeating upload every interval. Each tick
// re-reads the persisted snapshot (not a captured copy) and uploads it when
// non-empty, reporting through onResult. Starting again first cancels any
// existing timer, so the call is idempotent.
func (o *Orchestrator) StartAutoSync(interval time.Duration, onResult func(gist.Result)) {
	if interval <= 0 {
		interval = time.Duration(store.DefaultSyncInterval) * time.Minute
	}

	o.mu.Lock()
	if o.stopCh != nil {
		close(o.stopCh)
	}
	stopCh := make(chan struct{})
	o.stopCh = stopCh
	o.mu.Unlock()

	go o.autoSyncLoop(interval, stopCh, onResult)
}

func (o *Orchestrator) autoSyncLoop(interval time.Duration, stopCh chan struct{}, onResult func(gist.Result)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-o.ctx.Done():
			return
		case <-stopCh:
			return
		case <-ticker.C:
			db, err := o.store.Load()
			if err != nil || len(db.Weeks) == 0 {
				continue
			}
			// Requests are bound to the orchestrator lifecycle so Close
			// cancels an in-flight tick.
			ctx, cancel := context.WithTimeout(o.ctx, time.Minute)
			res := o.Upload(ctx, db.Weeks)
			cancel()
			if onResult != nil {
				onResult(res)
			}
		}
	}
}

// StopAutoSync cancels the timer. Safe to call when none is running.
func (o *Orchestrator) StopAutoSync() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.stopCh != nil {
		close(o.stopCh)
		o.stopCh = nil
	}
}

// Close stops auto-sync and cancels any in-flight requests.
func (o *Orchestrator) Close() {
	o.StopAutoSync()
	o.cancel()
}

// persistGistID writes a newly provisioned gist id into the saved sync
// config so later sessions reuse the same document.
func (o *Orchestrator) persistGistID() {
	id := o.client.GistID()
	if id == "" {
		return
	}
	cfg, err := store.LoadConfig()
	if err != nil || cfg.Sync.GistID == id {
		return
	}
	cfg.Sync.GistID = id
	_ = store.SaveConfig(cfg)
}
