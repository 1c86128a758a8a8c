package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsOptionField(t *testing.T) {
	for _, f := range OptionFields {
		assert.True(t, IsOptionField(f), f)
	}
	assert.False(t, IsOptionField("name"))
}

func TestResolveLabel(t *testing.T) {
	options := map[string][]CustomOption{
		FieldStatus:   {{Value: "reward", Text: "Claim Open"}},
		FieldTaskType: {{Value: "bridge", Text: "Bridge Funds"}},
	}

	// Custom table overrides the built-in status label.
	assert.Equal(t, "Claim Open", ResolveLabel(FieldStatus, "reward", options))
	// Built-in fallback when the table has no entry.
	assert.Equal(t, "Potential", ResolveLabel(FieldStatus, "potential", options))
	assert.Equal(t, "Bridge Funds", ResolveLabel(FieldTaskType, "bridge", options))
	// Unknown keys fall through unchanged.
	assert.Equal(t, "mystery", ResolveLabel(FieldTaskType, "mystery", options))
}

func TestSortOptionsCaseInsensitive(t *testing.T) {
	sorted := SortOptions([]CustomOption{
		{Value: "c", Text: "Charlie"},
		{Value: "a", Text: "alpha"},
		{Value: "b", Text: "Bravo"},
	})

	assert.Equal(t, []string{"alpha", "Bravo", "Charlie"},
		[]string{sorted[0].Text, sorted[1].Text, sorted[2].Text})
}

func TestDedupeOptions(t *testing.T) {
	deduped := DedupeOptions([]CustomOption{
		{Value: "a", Text: "First"},
		{Value: "", Text: "Empty"},
		{Value: "a", Text: "Second"},
		{Value: "b", Text: "Kept"},
	})

	assert.Equal(t, []CustomOption{{Value: "a", Text: "First"}, {Value: "b", Text: "Kept"}}, deduped)
}

func TestCountByField(t *testing.T) {
	counts := CountByField([]Project{
		{TaskType: []string{"bridge", "swap"}, ConnectType: []string{"wallet"}, Status: "reward"},
		{TaskType: []string{"bridge", ""}, Status: "potential"},
	})

	assert.Equal(t, 2, counts.Total)
	assert.Equal(t, 2, counts.Task["bridge"])
	assert.Equal(t, 1, counts.Task["swap"])
	assert.Equal(t, 1, counts.Connect["wallet"])
	assert.Equal(t, 1, counts.Status["reward"])
	assert.NotContains(t, counts.Task, "")
}
