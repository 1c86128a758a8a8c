package store

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/existflow/droptrack/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestGetPutDelete(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put("k", []byte("v1"), 100))
	got, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)

	// Put replaces.
	require.NoError(t, s.Put("k", []byte("v2"), 200))
	got, err = s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)

	require.NoError(t, s.Delete("k"))
	_, err = s.Get("k")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again is fine.
	require.NoError(t, s.Delete("k"))
}

func TestPayloadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	now := time.UnixMilli(1_700_000_000_000)

	saved := model.EmptyPayload()
	saved.Projects = []model.Project{{ID: 1, Name: "Scroll", Status: "reward", LastEdited: 50}}
	saved.CustomOptions["taskType"] = []model.CustomOption{{Value: "bridge", Text: "Bridge"}}
	saved.LastUpdatedAt = 60
	saved.SavedAt = now.UnixMilli()

	require.NoError(t, s.SavePayload(saved, now))

	loaded, err := s.LoadPayload(now)
	require.NoError(t, err)
	require.Len(t, loaded.Projects, 1)
	assert.Equal(t, "Scroll", loaded.Projects[0].Name)
	assert.Equal(t, "reward", loaded.Projects[0].Status)
	assert.Equal(t, int64(60), loaded.LastUpdatedAt)
	assert.Equal(t, "Bridge", loaded.CustomOptions["taskType"][0].Text)
}

func TestLoadPayloadMissingIsEmpty(t *testing.T) {
	s := newTestStore(t)

	p, err := s.LoadPayload(time.Now())
	require.NoError(t, err)
	assert.Empty(t, p.Projects)
	assert.NotNil(t, p.CustomOptions)
}

func TestLoadPayloadCorruptIsEmpty(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Put(KeyPayload, []byte("{{{not json"), 100))

	p, err := s.LoadPayload(time.Now())
	require.NoError(t, err)
	assert.Empty(t, p.Projects)
}

func TestLoadPayloadExpired(t *testing.T) {
	s := newTestStore(t)
	savedAt := time.UnixMilli(1_700_000_000_000)

	p := model.EmptyPayload()
	p.Projects = []model.Project{{ID: 1, Name: "Old"}}
	p.SavedAt = savedAt.UnixMilli()
	require.NoError(t, s.SavePayload(p, savedAt))

	// Within the window it loads.
	loaded, err := s.LoadPayload(savedAt.Add(ExpiryWindow - time.Hour))
	require.NoError(t, err)
	assert.Len(t, loaded.Projects, 1)

	// Past the window it is discarded.
	loaded, err = s.LoadPayload(savedAt.Add(ExpiryWindow + time.Hour))
	require.NoError(t, err)
	assert.Empty(t, loaded.Projects)
}

func TestLoadPayloadNormalizesLegacyShape(t *testing.T) {
	s := newTestStore(t)
	blob := []byte(`{"projects": [{"id": "9", "name": "Legacy", "task": "bridge"}], "lastUpdatedAt": 42}`)
	require.NoError(t, s.Put(KeyPayload, blob, 100))

	loaded, err := s.LoadPayload(time.UnixMilli(1_700_000_000_000))
	require.NoError(t, err)
	require.Len(t, loaded.Projects, 1)
	assert.Equal(t, int64(9), loaded.Projects[0].ID)
	assert.Equal(t, []string{"bridge"}, loaded.Projects[0].TaskType)
	assert.Equal(t, int64(42), loaded.LastUpdatedAt)
}

func TestSnapshotsPrependAndCap(t *testing.T) {
	s := newTestStore(t)
	now := time.UnixMilli(1_700_000_000_000)

	for i := 0; i < MaxSnapshots+5; i++ {
		snap := model.Snapshot{
			ID:        int64(i),
			Reason:    fmt.Sprintf("save-%d", i),
			CreatedAt: int64(i),
			Payload:   model.EmptyPayload(),
		}
		require.NoError(t, s.AppendSnapshot(snap, now))
	}

	snaps, err := s.LoadSnapshots()
	require.NoError(t, err)
	require.Len(t, snaps, MaxSnapshots)
	// Most recent first; the oldest entries fell off.
	assert.Equal(t, int64(MaxSnapshots+4), snaps[0].ID)
	assert.Equal(t, int64(5), snaps[MaxSnapshots-1].ID)
}

func TestLoadSnapshotsMissingOrCorrupt(t *testing.T) {
	s := newTestStore(t)

	snaps, err := s.LoadSnapshots()
	require.NoError(t, err)
	assert.Nil(t, snaps)

	require.NoError(t, s.Put(KeyBackups, []byte("oops"), 100))
	snaps, err = s.LoadSnapshots()
	require.NoError(t, err)
	assert.Nil(t, snaps)
}

func TestReopenPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")
	now := time.UnixMilli(1_700_000_000_000)

	s, err := Open(path)
	require.NoError(t, err)
	p := model.EmptyPayload()
	p.Projects = []model.Project{{ID: 1, Name: "Kept"}}
	p.SavedAt = now.UnixMilli()
	require.NoError(t, s.SavePayload(p, now))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	loaded, err := s.LoadPayload(now)
	require.NoError(t, err)
	require.Len(t, loaded.Projects, 1)
	assert.Equal(t, "Kept", loaded.Projects[0].Name)
}
