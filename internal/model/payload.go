package model

import (
	"encoding/json"
)

// Payload is the full persisted and synced unit: every project, every
// custom option table, and the bookkeeping timestamps.
type Payload struct {
	Projects         []Project                 `json:"projects"`
	CustomOptions    map[string][]CustomOption `json:"customOptions"`
	LastUpdatedAt    int64                     `json:"lastUpdatedAt"`
	LastAutoBackupAt int64                     `json:"lastAutoBackupAt"`
	SavedAt          int64                     `json:"savedAt"`
}

// EmptyPayload returns a payload with no projects, no options, and zero
// timestamps.
func EmptyPayload() Payload {
	return Payload{
		Projects:      []Project{},
		CustomOptions: map[string][]CustomOption{},
	}
}

// ExportPayload is the shape written to an export file.
type ExportPayload struct {
	Projects      []Project                 `json:"projects"`
	CustomOptions map[string][]CustomOption `json:"customOptions"`
	LastUpdatedAt int64                     `json:"lastUpdatedAt"`
	ExportedAt    int64                     `json:"exportedAt"`
}

// Snapshot is one rolling backup entry.
type Snapshot struct {
	ID        int64   `json:"id"`
	Reason    string  `json:"reason"`
	CreatedAt int64   `json:"createdAt"`
	Payload   Payload `json:"payload"`
}

// ImportResult is the parsed content of an import file.
type ImportResult struct {
	HasContent    bool
	Projects      []RawProject
	CustomOptions map[string][]CustomOption
	LastUpdatedAt int64
	HasOptions    bool
	HasUpdatedAt  bool
}

// ParseImportPayload accepts either a bare project array or an object
// with a projects field, optionally carrying customOptions and
// lastUpdatedAt. A payload with options but no projects still counts as
// importable content.
func ParseImportPayload(raw []byte) (ImportResult, error) {
	var res ImportResult

	var bare []RawProject
	if err := json.Unmarshal(raw, &bare); err == nil {
		res.Projects = bare
		res.HasContent = len(bare) > 0
		return res, nil
	}

	var wrapped struct {
		Projects      []RawProject              `json:"projects"`
		CustomOptions map[string][]CustomOption `json:"customOptions"`
		LastUpdatedAt int64                     `json:"lastUpdatedAt"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return res, err
	}

	res.Projects = wrapped.Projects
	if wrapped.CustomOptions != nil {
		res.CustomOptions = wrapped.CustomOptions
		res.HasOptions = true
	}
	if wrapped.LastUpdatedAt != 0 {
		res.LastUpdatedAt = wrapped.LastUpdatedAt
		res.HasUpdatedAt = true
	}
	res.HasContent = res.HasOptions || res.HasUpdatedAt || len(res.Projects) > 0
	return res, nil
}

// DecodeProjects decodes a raw project list from JSON, tolerating any of
// the historical record shapes.
func DecodeProjects(raw []byte) ([]RawProject, error) {
	var list []RawProject
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, err
	}
	return list, nil
}
