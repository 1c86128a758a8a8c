package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// RawProject is the tolerant wire shape for ingestion. Stored and imported
// data has drifted across several historical versions of the tracker, so
// every field decodes as loosely as possible and Normalize sorts it out.
type RawProject struct {
	ID           any               `json:"id"`
	Name         any               `json:"name"`
	Code         any               `json:"code"`
	Link         any               `json:"link"`
	SideLinks    json.RawMessage   `json:"sideLinks"`
	ExtraLinks   json.RawMessage   `json:"extraLinks"`
	XLink        any               `json:"xLink"`
	DiscordLink  any               `json:"discordLink"`
	TelegramLink any               `json:"telegramLink"`
	Logo         any               `json:"logo"`
	Favorite     any               `json:"favorite"`
	Task         any               `json:"task"`
	TaskType     any               `json:"taskType"`
	ConnectType  any               `json:"connectType"`
	TaskCost     any               `json:"taskCost"`
	TaskTime     any               `json:"taskTime"`
	Status       any               `json:"status"`
	StatusDate   any               `json:"statusDate"`
	Note         any               `json:"note"`
	RewardType   any               `json:"rewardType"`
	Logos        []json.RawMessage `json:"logos"`
	LastEdited   any               `json:"lastEdited"`
	CreatedAt    any               `json:"createdAt"`
}

// NormalizeProjects coerces a heterogeneous record list into canonical
// Projects. It never fails: malformed fields degrade to their defaults
// and oversized values are truncated. nowMillis supplies the timestamp
// used when a record has no usable id or lastEdited.
func NormalizeProjects(list []RawProject, nowMillis int64) []Project {
	out := make([]Project, 0, len(list))
	for _, p := range list {
		out = append(out, normalizeOne(p, nowMillis))
	}
	return out
}

func normalizeOne(p RawProject, nowMillis int64) Project {
	// Older exports stored the task tags under "task".
	taskSource := p.TaskType
	if isEmptyValue(taskSource) {
		taskSource = p.Task
	}

	name := clampString(toString(p.Name), MaxName)
	status := toString(p.Status)
	if status == "" {
		status = DefaultStatus
	}

	lastEdited := p.LastEdited
	if isEmptyValue(lastEdited) {
		lastEdited = p.CreatedAt
	}

	logos := p.Logos
	if len(logos) > MaxLogos {
		logos = logos[:MaxLogos]
	}
	if logos == nil {
		logos = []json.RawMessage{}
	}

	return Project{
		ID:          toInt64(p.ID, nowMillis),
		Name:        name,
		Code:        clampString(toString(p.Code), MaxCode),
		Link:        clampString(toString(p.Link), MaxLink),
		SideLinks:   normalizeRawSideLinks(p),
		Logo:        toString(p.Logo),
		Initial:     nameInitial(name),
		Favorite:    toBool(p.Favorite),
		TaskType:    clampTags(toStringSlice(taskSource)),
		ConnectType: clampTags(toStringSlice(p.ConnectType)),
		TaskCost:    toNumber(p.TaskCost, 0),
		TaskTime:    toNumber(p.TaskTime, DefaultTaskTime),
		Status:      clampString(status, MaxStatus),
		StatusDate:  clampString(toString(p.StatusDate), MaxStatusDate),
		Note:        clampString(toString(p.Note), MaxNote),
		RewardType:  clampTags(toStringSlice(p.RewardType)),
		Logos:       logos,
		LastEdited:  toInt64(lastEdited, nowMillis),
	}
}

// Normalize re-applies clamps and defaults to records that are already in
// canonical form. Merge runs both sides through this in case either copy
// drifted from the current shape.
func Normalize(list []Project, nowMillis int64) []Project {
	out := make([]Project, 0, len(list))
	for _, p := range list {
		if p.ID == 0 {
			p.ID = nowMillis
		}
		p.Name = clampString(p.Name, MaxName)
		p.Code = clampString(p.Code, MaxCode)
		p.Link = clampString(p.Link, MaxLink)
		p.SideLinks = clampSideLinks(NormalizeSideLinks(sideLinksToRaw(p.SideLinks)))
		p.Initial = nameInitial(p.Name)
		p.TaskType = clampTags(p.TaskType)
		p.ConnectType = clampTags(p.ConnectType)
		p.RewardType = clampTags(p.RewardType)
		if p.TaskCost < 0 {
			p.TaskCost = 0
		}
		if p.TaskTime < 0 {
			p.TaskTime = 0
		}
		if p.Status == "" {
			p.Status = DefaultStatus
		}
		p.Status = clampString(p.Status, MaxStatus)
		p.StatusDate = clampString(p.StatusDate, MaxStatusDate)
		p.Note = clampString(p.Note, MaxNote)
		if len(p.Logos) > MaxLogos {
			p.Logos = p.Logos[:MaxLogos]
		}
		if p.Logos == nil {
			p.Logos = []json.RawMessage{}
		}
		if p.LastEdited == 0 {
			p.LastEdited = nowMillis
		}
		out = append(out, p)
	}
	return out
}

// normalizeRawSideLinks folds the three historical side-link shapes into
// the unified {type, url} sequence: a plain array (strings or objects), a
// legacy "extraLinks" array, or named fields on the record itself.
func normalizeRawSideLinks(p RawProject) []SideLink {
	var raw []any
	if arr, ok := decodeAnyArray(p.SideLinks); ok {
		raw = arr
	} else if arr, ok := decodeAnyArray(p.ExtraLinks); ok {
		raw = arr
	} else {
		named := map[string]any{}
		if len(p.SideLinks) > 0 {
			_ = json.Unmarshal(p.SideLinks, &named)
		}
		for _, entry := range []struct {
			key  string
			flat any
		}{
			{"x", p.XLink},
			{"discord", p.DiscordLink},
			{"telegram", p.TelegramLink},
		} {
			u := toString(named[entry.key])
			if u == "" {
				u = toString(entry.flat)
			}
			if u != "" {
				raw = append(raw, map[string]any{"type": entry.key, "url": u})
			}
		}
	}
	return clampSideLinks(NormalizeSideLinks(raw))
}

func clampSideLinks(links []SideLink) []SideLink {
	for i := range links {
		links[i].Type = clampString(links[i].Type, MaxTagLen)
		links[i].URL = clampString(links[i].URL, MaxLink)
	}
	if len(links) > MaxSideLinks {
		links = links[:MaxSideLinks]
	}
	return links
}

func sideLinksToRaw(links []SideLink) []any {
	raw := make([]any, 0, len(links))
	for _, l := range links {
		raw = append(raw, map[string]any{"type": l.Type, "url": l.URL})
	}
	return raw
}

func decodeAnyArray(raw json.RawMessage) ([]any, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var arr []any
	if err := json.Unmarshal(raw, &arr); err != nil {
		return nil, false
	}
	return arr, true
}

func nameInitial(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 || r == utf8.RuneError {
		return "?"
	}
	return strings.ToUpper(string(r))
}

// clampString truncates to max runes. This is a silent data-loss
// boundary: truncate and continue, never reject.
func clampString(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}

func clampTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	if len(tags) > MaxTags {
		tags = tags[:MaxTags]
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, clampString(t, MaxTagLen))
	}
	return out
}

func isEmptyValue(v any) bool {
	return v == nil || v == ""
}

func toString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}

func toBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return b != "" && b != "false" && b != "0"
	case float64:
		return b != 0
	default:
		return false
	}
}

func toNumber(v any, fallback float64) float64 {
	var n float64
	switch x := v.(type) {
	case float64:
		n = x
	case int:
		n = float64(x)
	case int64:
		n = float64(x)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return fallback
		}
		n = parsed
	default:
		return fallback
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return fallback
	}
	if n < 0 {
		return 0
	}
	return n
}

func toInt64(v any, fallback int64) int64 {
	switch x := v.(type) {
	case float64:
		return int64(x)
	case int:
		return int64(x)
	case int64:
		return x
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return fallback
		}
		return parsed
	default:
		return fallback
	}
}

// ToStringSlice wraps a scalar as a single-element slice, treats nil and
// empty string as empty, and passes arrays through with element coercion.
func toStringSlice(v any) []string {
	switch x := v.(type) {
	case nil:
		return []string{}
	case string:
		if x == "" {
			return []string{}
		}
		return []string{x}
	case []string:
		return append([]string{}, x...)
	case []any:
		out := make([]string, 0, len(x))
		for _, e := range x {
			out = append(out, toString(e))
		}
		return out
	default:
		return []string{}
	}
}
