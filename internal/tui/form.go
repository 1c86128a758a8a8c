package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/existflow/droptrack/internal/model"
)

// Form field order. Tag fields take comma-separated values.
const (
	fieldName = iota
	fieldCode
	fieldLink
	fieldStatus
	fieldStatusDate
	fieldTaskType
	fieldConnectType
	fieldRewardType
	fieldTaskCost
	fieldTaskTime
	fieldNote
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Name",
	"Code",
	"Link",
	"Status",
	"Status date",
	"Task types (comma separated)",
	"Connect types (comma separated)",
	"Reward types (comma separated)",
	"Task cost",
	"Task time",
	"Note",
}

// projectForm is the add/edit modal state. editID is zero when adding.
type projectForm struct {
	editID int64
	inputs [fieldCount]textinput.Model
	focus  int
}

func newProjectForm(data model.FormData) *projectForm {
	f := &projectForm{editID: data.ID}

	values := [fieldCount]string{
		data.Name,
		data.Code,
		data.Link,
		data.Status,
		data.StatusDate,
		strings.Join(data.TaskType, ", "),
		strings.Join(data.ConnectType, ", "),
		strings.Join(data.RewardType, ", "),
		data.TaskCost,
		data.TaskTime,
		data.Note,
	}

	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = fieldLabels[i]
		ti.CharLimit = model.MaxLink
		ti.Width = 48
		ti.SetValue(values[i])
		f.inputs[i] = ti
	}
	f.inputs[fieldName].Focus()
	return f
}

func (f *projectForm) next() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % fieldCount
	f.inputs[f.focus].Focus()
}

func (f *projectForm) prev() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus - 1 + fieldCount) % fieldCount
	f.inputs[f.focus].Focus()
}

func (f *projectForm) toFormData() model.FormData {
	return model.FormData{
		ID:          f.editID,
		Name:        f.inputs[fieldName].Value(),
		Code:        f.inputs[fieldCode].Value(),
		Link:        f.inputs[fieldLink].Value(),
		Status:      f.inputs[fieldStatus].Value(),
		StatusDate:  f.inputs[fieldStatusDate].Value(),
		TaskType:    splitTags(f.inputs[fieldTaskType].Value()),
		ConnectType: splitTags(f.inputs[fieldConnectType].Value()),
		RewardType:  splitTags(f.inputs[fieldRewardType].Value()),
		TaskCost:    f.inputs[fieldTaskCost].Value(),
		TaskTime:    f.inputs[fieldTaskTime].Value(),
		Note:        f.inputs[fieldNote].Value(),
	}
}

func splitTags(s string) []string {
	var tags []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
