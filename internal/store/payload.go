package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/existflow/droptrack/internal/model"
)

// ExpiryWindow is how stale a stored payload may be before startup
// discards it, measured against its savedAt stamp.
const ExpiryWindow = 365 * 24 * time.Hour

// MaxSnapshots caps the rolling backup list.
const MaxSnapshots = 20

// LoadPayload reads and normalizes the stored payload. A missing key,
// unparsable blob, or payload older than the expiry window yields an
// empty payload, never an error the caller has to branch on beyond I/O.
func (s *Store) LoadPayload(now time.Time) (model.Payload, error) {
	raw, err := s.Get(KeyPayload)
	if errors.Is(err, ErrNotFound) {
		return model.EmptyPayload(), nil
	}
	if err != nil {
		return model.EmptyPayload(), err
	}

	var stored struct {
		Projects         []model.RawProject               `json:"projects"`
		CustomOptions    map[string][]model.CustomOption  `json:"customOptions"`
		LastUpdatedAt    int64                            `json:"lastUpdatedAt"`
		LastAutoBackupAt int64                            `json:"lastAutoBackupAt"`
		SavedAt          int64                            `json:"savedAt"`
	}
	if err := json.Unmarshal(raw, &stored); err != nil {
		// Corrupt blob: start fresh rather than failing startup.
		return model.EmptyPayload(), nil
	}

	if stored.SavedAt != 0 && now.Sub(time.UnixMilli(stored.SavedAt)) > ExpiryWindow {
		return model.EmptyPayload(), nil
	}

	p := model.Payload{
		Projects:         model.NormalizeProjects(stored.Projects, now.UnixMilli()),
		CustomOptions:    stored.CustomOptions,
		LastUpdatedAt:    stored.LastUpdatedAt,
		LastAutoBackupAt: stored.LastAutoBackupAt,
		SavedAt:          stored.SavedAt,
	}
	if p.CustomOptions == nil {
		p.CustomOptions = map[string][]model.CustomOption{}
	}
	return p, nil
}

// SavePayload serializes the payload under the payload key.
func (s *Store) SavePayload(p model.Payload, now time.Time) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to serialize payload: %w", err)
	}
	return s.Put(KeyPayload, raw, now.UnixMilli())
}

// LoadSnapshots reads the rolling backup list, most recent first. A
// missing or unparsable list is empty.
func (s *Store) LoadSnapshots() ([]model.Snapshot, error) {
	raw, err := s.Get(KeyBackups)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snaps []model.Snapshot
	if err := json.Unmarshal(raw, &snaps); err != nil {
		return nil, nil
	}
	return snaps, nil
}

// AppendSnapshot prepends a snapshot and trims the list to MaxSnapshots.
func (s *Store) AppendSnapshot(snap model.Snapshot, now time.Time) error {
	snaps, err := s.LoadSnapshots()
	if err != nil {
		return err
	}
	snaps = append([]model.Snapshot{snap}, snaps...)
	if len(snaps) > MaxSnapshots {
		snaps = snaps[:MaxSnapshots]
	}
	raw, err := json.Marshal(snaps)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshots: %w", err)
	}
	return s.Put(KeyBackups, raw, now.UnixMilli())
}
