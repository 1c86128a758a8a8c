package model

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// FormData is the free-form edit shape produced by the TUI form and the
// CLI flags. Numeric fields are strings so that "leave the field blank"
// is distinguishable from zero.
type FormData struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Code        string     `json:"code"`
	Link        string     `json:"link"`
	SideLinks   []SideLink `json:"sideLinks"`
	Note        string     `json:"note"`
	TaskType    []string   `json:"taskType"`
	ConnectType []string   `json:"connectType"`
	TaskCost    string     `json:"taskCost"`
	TaskTime    string     `json:"taskTime"`
	Status      string     `json:"status"`
	StatusDate  string     `json:"statusDate"`
	RewardType  []string   `json:"rewardType"`
}

// NextProjectID returns max(existing ids)+1, or 1 for an empty
// collection. Monotonic within a session only; two offline devices can
// hand out the same id, and the id-keyed merge will conflate them.
func NextProjectID(projects []Project) int64 {
	var max int64
	for _, p := range projects {
		if p.ID > max {
			max = p.ID
		}
	}
	return max + 1
}

// FormDataToProject converts form input into a canonical record. On
// create (existingID zero) favorite starts false and logos empty; on
// edit both are carried from the existing record. The caller re-asserts
// favorite/logos after assignment since the edit form does not carry
// them. lastEdited is always refreshed to now.
func FormDataToProject(data FormData, existingID int64, projects []Project, now time.Time) Project {
	id := existingID
	if id == 0 {
		id = NextProjectID(projects)
	}
	name := clampString(strings.TrimSpace(data.Name), MaxName)

	var existing *Project
	if existingID != 0 {
		existing = FindByID(projects, existingID)
	}
	favorite := false
	logos := []json.RawMessage{}
	if existing != nil {
		favorite = existing.Favorite
		if existing.Logos != nil {
			logos = existing.Logos
		}
	}

	status := strings.TrimSpace(data.Status)
	if status == "" {
		status = DefaultStatus
	}

	return Project{
		ID:          id,
		Name:        name,
		Code:        clampString(strings.ToUpper(strings.TrimSpace(data.Code)), MaxCode),
		Link:        clampString(strings.TrimSpace(data.Link), MaxLink),
		SideLinks:   clampSideLinks(NormalizeSideLinks(sideLinksToRaw(data.SideLinks))),
		Logo:        "",
		Initial:     nameInitial(name),
		Favorite:    favorite,
		TaskType:    clampTags(data.TaskType),
		ConnectType: clampTags(data.ConnectType),
		TaskCost:    parseFormNumber(data.TaskCost, 0),
		TaskTime:    parseFormNumber(data.TaskTime, DefaultTaskTime),
		Status:      clampString(status, MaxStatus),
		StatusDate:  clampString(strings.TrimSpace(data.StatusDate), MaxStatusDate),
		Note:        clampString(strings.TrimSpace(data.Note), MaxNote),
		RewardType:  clampTags(data.RewardType),
		Logos:       logos,
		LastEdited:  now.UnixMilli(),
	}
}

// ProjectToFormData populates an edit form from a record. All slices are
// independent copies so in-progress edits cannot mutate the stored
// record before save.
func ProjectToFormData(p Project) FormData {
	return FormData{
		ID:          p.ID,
		Name:        p.Name,
		Code:        p.Code,
		Link:        p.Link,
		SideLinks:   append([]SideLink{}, p.SideLinks...),
		Note:        p.Note,
		TaskType:    append([]string{}, p.TaskType...),
		ConnectType: append([]string{}, p.ConnectType...),
		TaskCost:    formatFormNumber(p.TaskCost),
		TaskTime:    formatFormNumber(p.TaskTime),
		Status:      p.Status,
		StatusDate:  p.StatusDate,
		RewardType:  append([]string{}, p.RewardType...),
	}
}

func parseFormNumber(s string, fallback float64) float64 {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return fallback
	}
	n, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func formatFormNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
