package model

import "encoding/json"

// Field size limits. Normalization truncates, it never rejects.
const (
	MaxName       = 80
	MaxCode       = 20
	MaxLink       = 2048
	MaxNote       = 280
	MaxStatusDate = 40
	MaxStatus     = 24
	MaxTagLen     = 32
	MaxTags       = 20
	MaxSideLinks  = 20
	MaxLogos      = 10
)

// Default field values applied when input is missing or unusable.
const (
	DefaultStatus   = "potential"
	DefaultTaskTime = 3
)

// SideLink is a secondary URL attached to a project, tagged with a
// free-form type key ("x", "discord", ...) resolved to a label via
// the custom option tables.
type SideLink struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// Project is one tracked airdrop opportunity.
type Project struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Code        string            `json:"code"`
	Link        string            `json:"link"`
	SideLinks   []SideLink        `json:"sideLinks"`
	Logo        string            `json:"logo"`
	Initial     string            `json:"initial"`
	Favorite    bool              `json:"favorite"`
	TaskType    []string          `json:"taskType"`
	ConnectType []string          `json:"connectType"`
	TaskCost    float64           `json:"taskCost"`
	TaskTime    float64           `json:"taskTime"`
	Status      string            `json:"status"`
	StatusDate  string            `json:"statusDate"`
	Note        string            `json:"note"`
	RewardType  []string          `json:"rewardType"`
	Logos       []json.RawMessage `json:"logos"`
	LastEdited  int64             `json:"lastEdited"`
}

// CustomOption is a (storage key, display label) pair for a
// user-extensible categorical field.
type CustomOption struct {
	Value string `json:"value"`
	Text  string `json:"text"`
}

// StatusInfo carries the built-in presentation defaults for a status key.
type StatusInfo struct {
	Label string
	Class string
}

// StatusConfig holds the fallback labels for the built-in statuses.
// Custom option tables override these at display time.
var StatusConfig = map[string]StatusInfo{
	"reward":    {Label: "Reward Available", Class: "reward"},
	"potential": {Label: "Potential", Class: "potential"},
	"confirmed": {Label: "Confirmed", Class: "confirmed"},
}

// FindByID returns the project with the given id, or nil.
func FindByID(projects []Project, id int64) *Project {
	for i := range projects {
		if projects[i].ID == id {
			return &projects[i]
		}
	}
	return nil
}
