package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/existflow/droptrack/internal/model"
)

func named(id int64, name string) model.Project {
	return model.Project{ID: id, Name: name}
}

func TestMatchesSearch(t *testing.T) {
	p := model.Project{Name: "LayerZero", Code: "ZRO", Note: "bridge farm"}

	assert.True(t, Matches(p, FilterState{Search: "layer"}))
	assert.True(t, Matches(p, FilterState{Search: "zro"}))
	assert.True(t, Matches(p, FilterState{Search: "FARM"}))
	assert.True(t, Matches(p, FilterState{Search: "  layer  "}))
	assert.False(t, Matches(p, FilterState{Search: "scroll"}))
}

func TestMatchesTagAndStatusAxes(t *testing.T) {
	p := model.Project{Name: "A", TaskType: []string{"bridge"}, ConnectType: []string{"wallet"}, Status: "reward"}

	assert.True(t, Matches(p, FilterState{TaskType: "bridge", Status: "reward"}))
	assert.False(t, Matches(p, FilterState{TaskType: "swap"}))
	assert.False(t, Matches(p, FilterState{ConnectType: "email"}))
	assert.False(t, Matches(p, FilterState{Status: "potential"}))
	// Every axis must pass.
	assert.False(t, Matches(p, FilterState{TaskType: "bridge", Status: "potential"}))
}

func TestApplySortsNameCaseInsensitive(t *testing.T) {
	shown := Apply([]model.Project{
		named(1, "Bravo"), named(2, "alpha"), named(3, "Charlie"),
	}, FilterState{}, DefaultSort, ModeAll)

	require.Len(t, shown, 3)
	assert.Equal(t, "alpha", shown[0].Name)
	assert.Equal(t, "Bravo", shown[1].Name)
	assert.Equal(t, "Charlie", shown[2].Name)
}

func TestApplyRecentModeIgnoresSortKey(t *testing.T) {
	projects := []model.Project{
		{ID: 1, Name: "alpha", LastEdited: 100},
		{ID: 2, Name: "zulu", LastEdited: 300},
		{ID: 3, Name: "mike", LastEdited: 200},
	}

	shown := Apply(projects, FilterState{}, DefaultSort, ModeRecent)
	assert.Equal(t, []int64{2, 3, 1}, []int64{shown[0].ID, shown[1].ID, shown[2].ID})
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	projects := []model.Project{named(1, "b"), named(2, "a")}
	Apply(projects, FilterState{}, DefaultSort, ModeAll)

	assert.Equal(t, int64(1), projects[0].ID)
}

func TestCompareTagSetJoinedProxy(t *testing.T) {
	a := model.Project{TaskType: []string{"Bridge", "swap"}}
	b := model.Project{TaskType: []string{"bridge", "Swap"}}
	s := SortState{Key: "taskType", Dir: Asc}

	// Joined lower-cased strings are equal, so the records tie.
	assert.Equal(t, 0, Compare(a, b, s))

	c := model.Project{TaskType: []string{"stake"}}
	assert.Equal(t, -1, Compare(a, c, s))
	assert.Equal(t, 1, Compare(a, c, SortState{Key: "taskType", Dir: Desc}))
}

func TestNextSort(t *testing.T) {
	// Same column toggles direction.
	assert.Equal(t, SortState{Key: "name", Dir: Desc}, NextSort(SortState{Key: "name", Dir: Asc}, "name"))
	assert.Equal(t, SortState{Key: "name", Dir: Asc}, NextSort(SortState{Key: "name", Dir: Desc}, "name"))
	// New column resets to its default direction.
	assert.Equal(t, SortState{Key: "status", Dir: Desc}, NextSort(SortState{Key: "name", Dir: Desc}, "status"))
	assert.Equal(t, SortState{Key: "name", Dir: Asc}, NextSort(SortState{Key: "status", Dir: Desc}, "name"))
}

func TestEngineMemoizes(t *testing.T) {
	e := NewEngine()
	projects := []model.Project{named(1, "a"), named(2, "b")}

	first, changed := e.Apply(projects, FilterState{}, DefaultSort, ModeAll)
	assert.True(t, changed)
	require.Len(t, first, 2)

	// Same inputs, same view: reported unchanged.
	_, changed = e.Apply(projects, FilterState{}, DefaultSort, ModeAll)
	assert.False(t, changed)

	// A record edit changes the hash.
	projects[1].Name = "renamed"
	second, changed := e.Apply(projects, FilterState{}, DefaultSort, ModeAll)
	assert.True(t, changed)
	assert.Equal(t, "renamed", second[1].Name)

	// A filter change that alters the visible set is a change too.
	third, changed := e.Apply(projects, FilterState{Search: "renamed"}, DefaultSort, ModeAll)
	assert.True(t, changed)
	assert.Len(t, third, 1)
}

func TestEngineInvalidate(t *testing.T) {
	e := NewEngine()
	projects := []model.Project{named(1, "a")}

	_, changed := e.Apply(projects, FilterState{}, DefaultSort, ModeAll)
	require.True(t, changed)

	e.Invalidate()
	_, changed = e.Apply(projects, FilterState{}, DefaultSort, ModeAll)
	assert.True(t, changed)
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "Never", FormatRelativeTime(0, now))
	assert.Equal(t, "Just now", FormatRelativeTime(now.Add(-30*time.Second).UnixMilli(), now))
	assert.Equal(t, "1 minute ago", FormatRelativeTime(now.Add(-90*time.Second).UnixMilli(), now))
	assert.Equal(t, "5 minutes ago", FormatRelativeTime(now.Add(-5*time.Minute).UnixMilli(), now))
	assert.Equal(t, "2 hours ago", FormatRelativeTime(now.Add(-2*time.Hour).UnixMilli(), now))
	assert.Equal(t, "3 days ago", FormatRelativeTime(now.Add(-72*time.Hour).UnixMilli(), now))
	sameYear := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC).UnixMilli()
	assert.Equal(t, time.UnixMilli(sameYear).Format("Jan 2"), FormatRelativeTime(sameYear, now))

	lastYear := time.Date(2023, 12, 25, 12, 0, 0, 0, time.UTC).UnixMilli()
	assert.Equal(t, time.UnixMilli(lastYear).Format("Jan 2, 2006"), FormatRelativeTime(lastYear, now))
}
