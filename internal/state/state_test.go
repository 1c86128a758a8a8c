package state

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/existflow/droptrack/internal/model"
	"github.com/existflow/droptrack/internal/store"
)

// manualClock advances only when the test says so.
type manualClock struct {
	now time.Time
}

func (c *manualClock) Now() time.Time { return c.now }

func (c *manualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// manualDebouncer holds the pending function until the test fires it.
type manualDebouncer struct {
	pending   func()
	scheduled int
}

func (d *manualDebouncer) Schedule(fn func()) {
	d.pending = fn
	d.scheduled++
}

func (d *manualDebouncer) Flush() {
	if d.pending != nil {
		fn := d.pending
		d.pending = nil
		fn()
	}
}

func (d *manualDebouncer) Stop() { d.pending = nil }

func newTestTracker(t *testing.T) (*Tracker, *manualClock, *manualDebouncer, *manualDebouncer) {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	clock := &manualClock{now: time.UnixMilli(1_700_000_000_000)}
	pushD := &manualDebouncer{}
	echoD := &manualDebouncer{}
	tr := New(s, clock, pushD, echoD)
	require.NoError(t, tr.Load())
	return tr, clock, pushD, echoD
}

func project(id int64, name string, edited int64) model.Project {
	return model.Project{ID: id, Name: name, Status: model.DefaultStatus, LastEdited: edited}
}

func TestAddThenEditPersists(t *testing.T) {
	tr, clock, _, _ := newTestTracker(t)

	require.NoError(t, tr.AddProject(project(1, "zkSync", clock.Now().UnixMilli())))
	clock.Advance(time.Minute)

	p := tr.Projects()[0]
	p.Name = "zkSync Era"
	p.LastEdited = clock.Now().UnixMilli()
	require.NoError(t, tr.UpdateProject(p))

	got := tr.Projects()
	require.Len(t, got, 1)
	assert.Equal(t, "zkSync Era", got[0].Name)
	assert.Equal(t, clock.Now().UnixMilli(), tr.Payload().LastUpdatedAt)
}

func TestUpdateUnknownProjectFails(t *testing.T) {
	tr, _, _, _ := newTestTracker(t)
	err := tr.UpdateProject(project(42, "ghost", 1))
	assert.Error(t, err)
}

func TestDeleteProject(t *testing.T) {
	tr, clock, _, _ := newTestTracker(t)
	now := clock.Now().UnixMilli()
	require.NoError(t, tr.AddProject(project(1, "keep", now)))
	require.NoError(t, tr.AddProject(project(2, "drop", now)))

	require.NoError(t, tr.DeleteProject(2))
	got := tr.Projects()
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)

	assert.Error(t, tr.DeleteProject(2))
}

func TestDeleteAllKeepsOptions(t *testing.T) {
	tr, clock, _, _ := newTestTracker(t)
	require.NoError(t, tr.AddProject(project(1, "a", clock.Now().UnixMilli())))
	require.NoError(t, tr.AddOption(model.FieldTaskType, model.CustomOption{Value: "bridge", Text: "Bridge"}))

	require.NoError(t, tr.DeleteAll())
	assert.Empty(t, tr.Projects())
	assert.Len(t, tr.Options(model.FieldTaskType), 1)
}

func TestDebounceCoalescesPushes(t *testing.T) {
	tr, clock, pushD, _ := newTestTracker(t)

	var pushes []model.Payload
	tr.SetPush(func(p model.Payload) error {
		pushes = append(pushes, p)
		return nil
	})

	now := clock.Now().UnixMilli()
	require.NoError(t, tr.AddProject(project(1, "a", now)))
	require.NoError(t, tr.AddProject(project(2, "b", now)))
	require.NoError(t, tr.AddProject(project(3, "c", now)))

	// Three mutations re-armed the same debouncer slot; firing it once
	// must push only the latest state.
	assert.Equal(t, 3, pushD.scheduled)
	pushD.Flush()
	require.Len(t, pushes, 1)
	assert.Len(t, pushes[0].Projects, 3)

	pushD.Flush()
	assert.Len(t, pushes, 1)
}

func TestEchoSuppression(t *testing.T) {
	tr, clock, pushD, echoD := newTestTracker(t)
	tr.SetPush(func(model.Payload) error { return nil })

	require.NoError(t, tr.AddProject(project(1, "mine", clock.Now().UnixMilli())))
	pushD.Flush()

	// The echo of our own write comes back with a newer stamp but must
	// be dropped while suppression holds.
	echo := tr.Payload()
	echo.LastUpdatedAt = clock.Now().UnixMilli() + 50
	assert.False(t, tr.ApplyRemote(echo))

	// Once the suppression window lapses, genuinely newer remote state
	// applies again.
	echoD.Flush()
	remote := model.EmptyPayload()
	remote.Projects = []model.Project{project(9, "theirs", clock.Now().UnixMilli()+100)}
	remote.LastUpdatedAt = clock.Now().UnixMilli() + 100
	assert.True(t, tr.ApplyRemote(remote))
	assert.Equal(t, "theirs", tr.Projects()[0].Name)
}

func TestApplyRemoteRequiresStrictlyNewer(t *testing.T) {
	tr, clock, _, _ := newTestTracker(t)
	require.NoError(t, tr.AddProject(project(1, "local", clock.Now().UnixMilli())))

	stale := model.EmptyPayload()
	stale.LastUpdatedAt = tr.Payload().LastUpdatedAt
	assert.False(t, tr.ApplyRemote(stale), "equal stamp must not apply")

	stale.LastUpdatedAt--
	assert.False(t, tr.ApplyRemote(stale), "older stamp must not apply")
	assert.Len(t, tr.Projects(), 1)
}

func TestReconcileMergesBothSides(t *testing.T) {
	tr, clock, _, _ := newTestTracker(t)
	base := clock.Now().UnixMilli()
	require.NoError(t, tr.AddProject(project(1, "local-only", base)))
	require.NoError(t, tr.AddProject(project(2, "local-newer", base+500)))

	remote := model.EmptyPayload()
	remote.Projects = []model.Project{
		project(2, "cloud-older", base),
		project(3, "cloud-only", base),
	}
	remote.LastUpdatedAt = base

	require.NoError(t, tr.Reconcile(&remote))

	byID := map[int64]string{}
	for _, p := range tr.Projects() {
		byID[p.ID] = p.Name
	}
	assert.Equal(t, map[int64]string{
		1: "local-only",
		2: "local-newer",
		3: "cloud-only",
	}, byID)
}

func TestReconcileWithEmptyRemote(t *testing.T) {
	tr, clock, _, _ := newTestTracker(t)
	require.NoError(t, tr.AddProject(project(1, "local", clock.Now().UnixMilli())))

	require.NoError(t, tr.Reconcile(nil))
	assert.Len(t, tr.Projects(), 1)
}

func TestImportReplacesPayload(t *testing.T) {
	tr, clock, _, _ := newTestTracker(t)
	require.NoError(t, tr.AddProject(project(1, "local-only", clock.Now().UnixMilli())))
	require.NoError(t, tr.AddProject(project(2, "local-newer", clock.Now().UnixMilli())))
	require.NoError(t, tr.AddOption(model.FieldStatus, model.CustomOption{Value: "vested", Text: "Vested"}))

	// Import is a restore: the file's projects and options replace the
	// current ones wholesale, even when a shared id is older locally.
	raw := []byte(`{"projects":[{"id":2,"name":"imported-older","lastEdited":1}],"customOptions":{"taskType":[{"value":"nft","text":"NFT"}]}}`)
	count, err := tr.Import(raw)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	projects := tr.Projects()
	require.Len(t, projects, 1)
	assert.Equal(t, int64(2), projects[0].ID)
	assert.Equal(t, "imported-older", projects[0].Name)

	assert.Len(t, tr.Options(model.FieldTaskType), 1)
	assert.Empty(t, tr.Options(model.FieldStatus), "option tables replaced wholesale")

	_, err = tr.Import([]byte(`[]`))
	assert.Error(t, err, "empty payload is not importable")
}

func TestImportOptionsOnlyKeepsProjects(t *testing.T) {
	tr, clock, _, _ := newTestTracker(t)
	require.NoError(t, tr.AddProject(project(1, "kept", clock.Now().UnixMilli())))

	count, err := tr.Import([]byte(`{"customOptions":{"taskType":[{"value":"nft","text":"NFT"}]}}`))
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Len(t, tr.Projects(), 1)
	assert.Len(t, tr.Options(model.FieldTaskType), 1)
}

func TestOptionLifecycle(t *testing.T) {
	tr, _, _, _ := newTestTracker(t)

	opt := model.CustomOption{Value: "galxe", Text: "Galxe"}
	require.NoError(t, tr.AddOption(model.FieldTaskType, opt))
	assert.Error(t, tr.AddOption(model.FieldTaskType, opt), "duplicate value rejected")

	require.NoError(t, tr.EditOption(model.FieldTaskType, "galxe", "Galxe Quests"))
	assert.Equal(t, "Galxe Quests", tr.Options(model.FieldTaskType)[0].Text)

	require.NoError(t, tr.RemoveOption(model.FieldTaskType, "galxe"))
	assert.Empty(t, tr.Options(model.FieldTaskType))
	assert.Error(t, tr.RemoveOption(model.FieldTaskType, "galxe"))
}

func TestToggleFavoriteStampsLastEdited(t *testing.T) {
	tr, clock, _, _ := newTestTracker(t)
	require.NoError(t, tr.AddProject(project(1, "a", clock.Now().UnixMilli())))

	clock.Advance(time.Hour)
	require.NoError(t, tr.ToggleFavorite(1))
	got := tr.Projects()[0]
	assert.True(t, got.Favorite)
	assert.Equal(t, clock.Now().UnixMilli(), got.LastEdited)
}

func TestSnapshotTakenEveryThreeDays(t *testing.T) {
	tr, clock, _, _ := newTestTracker(t)
	require.NoError(t, tr.AddProject(project(1, "a", clock.Now().UnixMilli())))

	first := tr.Payload().LastAutoBackupAt
	assert.NotZero(t, first, "first save with content snapshots")

	// Saves inside the window do not snapshot again.
	clock.Advance(24 * time.Hour)
	require.NoError(t, tr.AddProject(project(2, "b", clock.Now().UnixMilli())))
	assert.Equal(t, first, tr.Payload().LastAutoBackupAt)

	clock.Advance(3 * 24 * time.Hour)
	require.NoError(t, tr.AddProject(project(3, "c", clock.Now().UnixMilli())))
	assert.Greater(t, tr.Payload().LastAutoBackupAt, first)
}

func TestStoredPayloadSurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	clock := &manualClock{now: time.UnixMilli(1_700_000_000_000)}

	s, err := store.Open(path)
	require.NoError(t, err)
	tr := New(s, clock, &manualDebouncer{}, &manualDebouncer{})
	require.NoError(t, tr.Load())
	require.NoError(t, tr.AddProject(project(1, "persisted", clock.Now().UnixMilli())))
	require.NoError(t, s.Close())

	s2, err := store.Open(path)
	require.NoError(t, err)
	defer s2.Close()
	tr2 := New(s2, clock, &manualDebouncer{}, &manualDebouncer{})
	require.NoError(t, tr2.Load())
	require.Len(t, tr2.Projects(), 1)
	assert.Equal(t, "persisted", tr2.Projects()[0].Name)
}

func TestExpiredPayloadDiscardedOnLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	clock := &manualClock{now: time.UnixMilli(1_700_000_000_000)}

	s, err := store.Open(path)
	require.NoError(t, err)
	tr := New(s, clock, &manualDebouncer{}, &manualDebouncer{})
	require.NoError(t, tr.Load())
	require.NoError(t, tr.AddProject(project(1, "old", clock.Now().UnixMilli())))
	require.NoError(t, s.Close())

	clock.Advance(366 * 24 * time.Hour)
	s2, err := store.Open(path)
	require.NoError(t, err)
	defer s2.Close()
	tr2 := New(s2, clock, &manualDebouncer{}, &manualDebouncer{})
	require.NoError(t, tr2.Load())
	assert.Empty(t, tr2.Projects())
}

func TestExportShape(t *testing.T) {
	tr, clock, _, _ := newTestTracker(t)
	require.NoError(t, tr.AddProject(project(1, "a", clock.Now().UnixMilli())))

	raw, err := tr.Export()
	require.NoError(t, err)

	res, err := model.ParseImportPayload(raw)
	require.NoError(t, err)
	assert.True(t, res.HasContent)
	assert.Len(t, res.Projects, 1)
}
