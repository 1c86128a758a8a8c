// Package state owns the in-memory tracker payload and orchestrates
// persistence around it: synchronous local saves on every mutation, a
// debounced trailing push to the remote store, echo suppression for
// live remote updates, and rolling local snapshots.
package state

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/existflow/droptrack/internal/logger"
	"github.com/existflow/droptrack/internal/merge"
	"github.com/existflow/droptrack/internal/model"
	"github.com/existflow/droptrack/internal/store"
)

// PushDelay is the trailing debounce window for remote pushes, and also
// how long after a push the tracker keeps ignoring remote updates so it
// does not re-apply its own write echoed back by the listener.
const PushDelay = 300 * time.Millisecond

// SnapshotInterval is the minimum gap between automatic rolling
// backups.
const SnapshotInterval = 3 * 24 * time.Hour

// PushFunc uploads the payload to the remote store. A nil PushFunc
// means the tracker is offline and pushes are skipped.
type PushFunc func(model.Payload) error

// Tracker is the single owner of the payload. All mutations go through
// it so that every change hits the local store synchronously and the
// remote store through the debouncer.
type Tracker struct {
	mu    sync.Mutex
	store *store.Store
	clock Clock

	payload model.Payload

	push         PushFunc
	pushDebounce Debouncer
	echoDebounce Debouncer
	suppressEcho bool
}

// New creates a Tracker over the given store. Both debouncers should
// use PushDelay in production; tests inject manual ones.
func New(s *store.Store, clock Clock, pushDebounce, echoDebounce Debouncer) *Tracker {
	return &Tracker{
		store:        s,
		clock:        clock,
		payload:      model.EmptyPayload(),
		pushDebounce: pushDebounce,
		echoDebounce: echoDebounce,
	}
}

// SetPush installs the remote push hook. Pass nil to go offline.
func (t *Tracker) SetPush(push PushFunc) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.push = push
}

// Load reads the stored payload into memory and takes a startup
// snapshot if the rolling backup is due.
func (t *Tracker) Load() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock.Now()
	p, err := t.store.LoadPayload(now)
	if err != nil {
		return fmt.Errorf("load payload: %w", err)
	}
	t.payload = p
	logger.Info("state loaded",
		logger.F("projects", len(p.Projects)),
		logger.F("lastUpdatedAt", p.LastUpdatedAt))

	t.maybeSnapshotLocked("startup", now)
	return nil
}

// Payload returns a copy of the current payload.
func (t *Tracker) Payload() model.Payload {
	t.mu.Lock()
	defer t.mu.Unlock()
	return clonePayload(t.payload)
}

// Projects returns a copy of the current project list.
func (t *Tracker) Projects() []model.Project {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]model.Project{}, t.payload.Projects...)
}

// Options returns the custom option list for a field, cloud and local
// entries alike.
func (t *Tracker) Options(field string) []model.CustomOption {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]model.CustomOption{}, t.payload.CustomOptions[field]...)
}

// AddProject appends a project and persists.
func (t *Tracker) AddProject(p model.Project) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.payload.Projects = append(t.payload.Projects, p)
	return t.persistLocked()
}

// UpdateProject replaces the project with the same id. It returns an
// error when no such project exists.
func (t *Tracker) UpdateProject(p model.Project) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.payload.Projects {
		if t.payload.Projects[i].ID == p.ID {
			t.payload.Projects[i] = p
			return t.persistLocked()
		}
	}
	return fmt.Errorf("project %d not found", p.ID)
}

// DeleteProject removes the project with the given id.
func (t *Tracker) DeleteProject(id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	kept := t.payload.Projects[:0]
	found := false
	for _, p := range t.payload.Projects {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return fmt.Errorf("project %d not found", id)
	}
	t.payload.Projects = kept
	return t.persistLocked()
}

// DeleteAll clears every project but keeps the custom options.
func (t *Tracker) DeleteAll() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.payload.Projects = []model.Project{}
	return t.persistLocked()
}

// ToggleFavorite flips the favorite flag and stamps lastEdited so the
// change wins a later merge.
func (t *Tracker) ToggleFavorite(id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.payload.Projects {
		if t.payload.Projects[i].ID == id {
			t.payload.Projects[i].Favorite = !t.payload.Projects[i].Favorite
			t.payload.Projects[i].LastEdited = t.clock.Now().UnixMilli()
			return t.persistLocked()
		}
	}
	return fmt.Errorf("project %d not found", id)
}

// SetOptions replaces the option list for a field.
func (t *Tracker) SetOptions(field string, options []model.CustomOption) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.payload.CustomOptions[field] = model.DedupeOptions(options)
	return t.persistLocked()
}

// AddOption appends an option to a field unless its value already
// exists there.
func (t *Tracker) AddOption(field string, opt model.CustomOption) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, existing := range t.payload.CustomOptions[field] {
		if existing.Value == opt.Value {
			return fmt.Errorf("option %q already exists for %s", opt.Value, field)
		}
	}
	t.payload.CustomOptions[field] = append(t.payload.CustomOptions[field], opt)
	return t.persistLocked()
}

// EditOption changes the label of an existing option.
func (t *Tracker) EditOption(field, value, newText string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, opt := range t.payload.CustomOptions[field] {
		if opt.Value == value {
			t.payload.CustomOptions[field][i].Text = newText
			return t.persistLocked()
		}
	}
	return fmt.Errorf("option %q not found for %s", value, field)
}

// RemoveOption deletes an option by value.
func (t *Tracker) RemoveOption(field, value string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	opts := t.payload.CustomOptions[field]
	for i, opt := range opts {
		if opt.Value == value {
			t.payload.CustomOptions[field] = append(opts[:i:i], opts[i+1:]...)
			return t.persistLocked()
		}
	}
	return fmt.Errorf("option %q not found for %s", value, field)
}

// Import parses an exported or legacy payload and adopts it: a
// non-empty project list replaces the collection wholesale, and a
// customOptions table replaces the option tables wholesale. Import is
// a restore, not a merge; records absent from the file are gone. It
// returns how many projects the state holds afterwards.
func (t *Tracker) Import(raw []byte) (int, error) {
	res, err := model.ParseImportPayload(raw)
	if err != nil {
		return 0, fmt.Errorf("parse import: %w", err)
	}
	if !res.HasContent {
		return 0, fmt.Errorf("import payload has no content")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock.Now()
	if res.HasOptions {
		t.payload.CustomOptions = res.CustomOptions
		if t.payload.CustomOptions == nil {
			t.payload.CustomOptions = map[string][]model.CustomOption{}
		}
	}
	if len(res.Projects) > 0 {
		t.payload.Projects = model.NormalizeProjects(res.Projects, now.UnixMilli())
	}

	if err := t.persistLocked(); err != nil {
		return 0, err
	}
	return len(t.payload.Projects), nil
}

// Export serializes the current state in the export file shape.
func (t *Tracker) Export() ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := model.ExportPayload{
		Projects:      t.payload.Projects,
		CustomOptions: t.payload.CustomOptions,
		LastUpdatedAt: t.payload.LastUpdatedAt,
		ExportedAt:    t.clock.Now().UnixMilli(),
	}
	return json.MarshalIndent(out, "", "  ")
}

// ApplyRemote applies a live remote payload. It is dropped when a
// recent local push is still echoing back or when the remote state is
// not strictly newer than ours. Returns whether the payload was
// applied.
func (t *Tracker) ApplyRemote(remote model.Payload) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.suppressEcho {
		logger.Debug("remote update ignored, own write echo")
		return false
	}
	if remote.LastUpdatedAt <= t.payload.LastUpdatedAt {
		return false
	}

	now := t.clock.Now()
	remote.Projects = model.Normalize(remote.Projects, now.UnixMilli())
	if remote.CustomOptions == nil {
		remote.CustomOptions = map[string][]model.CustomOption{}
	}
	remote.LastAutoBackupAt = t.payload.LastAutoBackupAt
	remote.SavedAt = now.UnixMilli()
	t.payload = remote

	if err := t.store.SavePayload(t.payload, now); err != nil {
		logger.Warn("local save of remote update failed", logger.F("error", err))
	}
	logger.Info("remote update applied",
		logger.F("projects", len(remote.Projects)),
		logger.F("lastUpdatedAt", remote.LastUpdatedAt))
	return true
}

// Reconcile merges the remote payload with local state in both
// directions, keeps the result, and pushes it back so both sides
// converge. Pass nil when the remote side has no state yet.
func (t *Tracker) Reconcile(remote *model.Payload) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock.Now()
	merged := merge.Payloads(&t.payload, remote, now)
	merged.LastAutoBackupAt = t.payload.LastAutoBackupAt
	t.payload = merged

	logger.Info("reconciled with remote",
		logger.F("projects", len(merged.Projects)))
	return t.persistLocked()
}

// Flush forces any pending remote push to run now. Call on shutdown.
func (t *Tracker) Flush() {
	t.pushDebounce.Flush()
}

// Stop cancels pending pushes without running them.
func (t *Tracker) Stop() {
	t.pushDebounce.Stop()
	t.echoDebounce.Stop()
}

// persistLocked stamps the payload, saves it locally, and schedules the
// debounced remote push. Caller holds the mutex.
func (t *Tracker) persistLocked() error {
	now := t.clock.Now()
	t.payload.LastUpdatedAt = now.UnixMilli()
	t.payload.SavedAt = now.UnixMilli()

	if err := t.store.SavePayload(t.payload, now); err != nil {
		return fmt.Errorf("save payload: %w", err)
	}
	t.maybeSnapshotLocked("save", now)
	t.schedulePushLocked()
	return nil
}

// schedulePushLocked arms the push debouncer with a copy of the current
// payload. Caller holds the mutex.
func (t *Tracker) schedulePushLocked() {
	if t.push == nil {
		return
	}
	snapshot := clonePayload(t.payload)
	push := t.push
	t.pushDebounce.Schedule(func() {
		t.mu.Lock()
		t.suppressEcho = true
		t.mu.Unlock()

		if err := push(snapshot); err != nil {
			logger.Warn("remote push failed", logger.F("error", err))
		} else {
			logger.Debug("remote push ok",
				logger.F("projects", len(snapshot.Projects)))
		}

		// Lift suppression only after the listener has had time to
		// deliver the echo of this write.
		t.echoDebounce.Schedule(func() {
			t.mu.Lock()
			t.suppressEcho = false
			t.mu.Unlock()
		})
	})
}

// maybeSnapshotLocked appends a rolling backup when the last one is
// older than the snapshot interval. Failures are logged, not fatal.
func (t *Tracker) maybeSnapshotLocked(reason string, now time.Time) {
	if len(t.payload.Projects) == 0 {
		return
	}
	if t.payload.LastAutoBackupAt != 0 &&
		now.Sub(time.UnixMilli(t.payload.LastAutoBackupAt)) < SnapshotInterval {
		return
	}

	snap := model.Snapshot{
		ID:        now.UnixMilli(),
		Reason:    reason,
		CreatedAt: now.UnixMilli(),
		Payload:   clonePayload(t.payload),
	}
	if err := t.store.AppendSnapshot(snap, now); err != nil {
		logger.Warn("snapshot failed", logger.F("error", err))
		return
	}
	t.payload.LastAutoBackupAt = now.UnixMilli()
	if err := t.store.SavePayload(t.payload, now); err != nil {
		logger.Warn("save after snapshot failed", logger.F("error", err))
	}
	logger.Info("snapshot taken", logger.F("reason", reason))
}

func clonePayload(p model.Payload) model.Payload {
	out := p
	out.Projects = append([]model.Project{}, p.Projects...)
	out.CustomOptions = make(map[string][]model.CustomOption, len(p.CustomOptions))
	for field, opts := range p.CustomOptions {
		out.CustomOptions[field] = append([]model.CustomOption{}, opts...)
	}
	return out
}
