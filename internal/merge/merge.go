// Package merge reconciles two independently-edited copies of the full
// tracker payload into one. There is no operation log and no central
// coordinator; only final-state snapshots with timestamps, resolved with
// last-write-wins at the record and option level.
package merge

import (
	"time"

	"github.com/existflow/droptrack/internal/model"
)

// Projects merges two normalized project lists keyed by id. Cloud
// records are inserted first; a local record replaces the cloud copy
// when its edit timestamp is greater OR EQUAL, so ties deterministically
// go to the local side. Absence from one side is not a deletion: the
// union of both id sets survives, since there is no tombstone mechanism.
func Projects(local, cloud []model.Project) []model.Project {
	byID := make(map[int64]model.Project)
	var order []int64

	insert := func(list []model.Project) {
		for _, p := range list {
			existing, ok := byID[p.ID]
			if !ok {
				byID[p.ID] = p
				order = append(order, p.ID)
				continue
			}
			if p.LastEdited >= existing.LastEdited {
				byID[p.ID] = p
			}
		}
	}
	insert(cloud)
	insert(local)

	out := make([]model.Project, 0, len(order))
	for _, id := range order {
		out = append(out, byID[id])
	}
	return out
}

// CustomOptions unions the option tables of both sides per field key.
// Entries are de-duplicated by value with first insertion winning, and
// cloud is inserted first, so on a value collision the cloud label is
// kept. This is the opposite tiebreak from the record merge.
func CustomOptions(local, cloud map[string][]model.CustomOption) map[string][]model.CustomOption {
	keys := map[string]bool{}
	var order []string
	for _, side := range []map[string][]model.CustomOption{cloud, local} {
		for k := range side {
			if !keys[k] {
				keys[k] = true
				order = append(order, k)
			}
		}
	}

	merged := make(map[string][]model.CustomOption, len(order))
	for _, k := range order {
		byValue := make(map[string]bool)
		var opts []model.CustomOption
		for _, side := range []map[string][]model.CustomOption{cloud, local} {
			for _, opt := range side[k] {
				if opt.Value == "" || byValue[opt.Value] {
					continue
				}
				byValue[opt.Value] = true
				opts = append(opts, opt)
			}
		}
		merged[k] = opts
	}
	return merged
}

// Payloads reconciles the local and cloud payloads. Both project lists
// are re-normalized in case either source drifted from the canonical
// shape; a nil side is treated as an empty payload. The merged
// timestamps take the max of each side, and savedAt is stamped with now
// because the merge itself is a mutation event. Never fails.
func Payloads(local, cloud *model.Payload, now time.Time) model.Payload {
	if local == nil {
		empty := model.EmptyPayload()
		local = &empty
	}
	if cloud == nil {
		empty := model.EmptyPayload()
		cloud = &empty
	}

	nowMillis := now.UnixMilli()
	return model.Payload{
		Projects: Projects(
			model.Normalize(local.Projects, nowMillis),
			model.Normalize(cloud.Projects, nowMillis),
		),
		CustomOptions:    CustomOptions(local.CustomOptions, cloud.CustomOptions),
		LastUpdatedAt:    maxInt64(local.LastUpdatedAt, cloud.LastUpdatedAt),
		LastAutoBackupAt: maxInt64(local.LastAutoBackupAt, cloud.LastAutoBackupAt),
		SavedAt:          nowMillis,
	}
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
