package model

import (
	"sort"
	"strings"
)

// Field keys for the user-manageable option tables.
const (
	FieldTaskType     = "taskType"
	FieldConnectType  = "connectType"
	FieldStatus       = "status"
	FieldRewardType   = "rewardType"
	FieldSideLinkType = "sideLinkType"
)

// OptionFields lists every manageable field key.
var OptionFields = []string{
	FieldTaskType, FieldConnectType, FieldStatus, FieldRewardType, FieldSideLinkType,
}

// IsOptionField reports whether key names a manageable option table.
func IsOptionField(key string) bool {
	for _, f := range OptionFields {
		if f == key {
			return true
		}
	}
	return false
}

// ResolveLabel returns the display label for a stored value key, looking
// it up in the given option table. Status keys fall back to the built-in
// labels; everything else falls back to the raw key.
func ResolveLabel(fieldKey, valueKey string, options map[string][]CustomOption) string {
	for _, opt := range options[fieldKey] {
		if opt.Value == valueKey {
			return opt.Text
		}
	}
	if fieldKey == FieldStatus {
		if cfg, ok := StatusConfig[valueKey]; ok {
			return cfg.Label
		}
	}
	return valueKey
}

// SortOptions returns a copy ordered alphabetically by display text,
// case-insensitively.
func SortOptions(options []CustomOption) []CustomOption {
	sorted := append([]CustomOption{}, options...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Text) < strings.ToLower(sorted[j].Text)
	})
	return sorted
}

// DedupeOptions drops entries with empty or repeated values, keeping the
// first occurrence of each value.
func DedupeOptions(options []CustomOption) []CustomOption {
	seen := make(map[string]bool, len(options))
	out := make([]CustomOption, 0, len(options))
	for _, opt := range options {
		if opt.Value == "" || seen[opt.Value] {
			continue
		}
		seen[opt.Value] = true
		out = append(out, opt)
	}
	return out
}

// FieldCounts aggregates how many projects carry each tag value, per
// filterable field, for the counter dropdowns.
type FieldCounts struct {
	Task    map[string]int
	Connect map[string]int
	Status  map[string]int
	Total   int
}

// CountByField tallies tag usage across the collection.
func CountByField(projects []Project) FieldCounts {
	counts := FieldCounts{
		Task:    map[string]int{},
		Connect: map[string]int{},
		Status:  map[string]int{},
		Total:   len(projects),
	}
	for _, p := range projects {
		for _, t := range p.TaskType {
			if t != "" {
				counts.Task[t]++
			}
		}
		for _, c := range p.ConnectType {
			if c != "" {
				counts.Connect[c]++
			}
		}
		if p.Status != "" {
			counts.Status[p.Status]++
		}
	}
	return counts
}
