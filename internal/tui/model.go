package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/existflow/droptrack/internal/logger"
	"github.com/existflow/droptrack/internal/model"
	"github.com/existflow/droptrack/internal/state"
	"github.com/existflow/droptrack/internal/view"
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeForm
	ModeConfirmDelete
	ModeHelp
)

// RefreshMsg asks the TUI to reload from the tracker. The sync
// listener sends it after applying a remote payload.
type RefreshMsg struct{}

// sortColumns is the cycle order for the sort key binding.
var sortColumns = []string{"name", "code", "status", "taskType", "connectType", "rewardType"}

// Model is the main TUI model
type Model struct {
	tracker *state.Tracker
	engine  *view.Engine

	visible []model.Project

	// UI state
	width  int
	height int
	mode   Mode
	cursor int

	// View state
	filter   view.FilterState
	sort     view.SortState
	viewMode view.Mode

	// Input
	searchInput textinput.Model
	form        *projectForm

	message string
}

// NewModel creates a new TUI model
func NewModel(tracker *state.Tracker) Model {
	logger.Info("Initializing TUI model")

	si := textinput.New()
	si.Placeholder = "Search name, code, note..."
	si.CharLimit = 120
	si.Width = 40

	m := Model{
		tracker:     tracker,
		engine:      view.NewEngine(),
		mode:        ModeNormal,
		sort:        view.DefaultSort,
		viewMode:    view.ModeAll,
		searchInput: si,
	}

	m.refresh()
	logger.Debug("TUI model initialized", logger.F("projects", len(m.visible)))
	return m
}

// refresh recomputes the visible list. The engine skips the work when
// nothing about the view changed since last time.
func (m *Model) refresh() {
	projects := m.tracker.Projects()
	shown, changed := m.engine.Apply(projects, m.filter, m.sort, m.viewMode)
	if changed {
		m.visible = shown
	}
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) currentProject() *model.Project {
	if m.cursor < len(m.visible) {
		return &m.visible[m.cursor]
	}
	return nil
}
