package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/droptrack/internal/logger"
	"github.com/existflow/droptrack/internal/model"
	"github.com/existflow/droptrack/internal/view"
)

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textinputBlink(m)
}

func textinputBlink(m Model) tea.Cmd {
	if m.mode == ModeSearch {
		return m.searchInput.Focus()
	}
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case RefreshMsg:
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeSearch:
			return m.updateSearch(msg)
		case ModeForm:
			return m.updateForm(msg)
		case ModeConfirmDelete:
			return m.updateConfirmDelete(msg)
		case ModeHelp:
			return m.updateHelp(msg)
		default:
			return m.updateNormal(msg)
		}
	}

	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""

	switch {
	case key.Matches(msg, keys.Quit):
		logger.Info("TUI quit requested")
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}

	case key.Matches(msg, keys.Add):
		m.form = newProjectForm(model.FormData{})
		m.mode = ModeForm
		return m, nil

	case key.Matches(msg, keys.Edit), key.Matches(msg, keys.Enter):
		if p := m.currentProject(); p != nil {
			m.form = newProjectForm(model.ProjectToFormData(*p))
			m.mode = ModeForm
		}

	case key.Matches(msg, keys.Delete):
		if m.currentProject() != nil {
			m.mode = ModeConfirmDelete
		}

	case key.Matches(msg, keys.Favorite):
		if p := m.currentProject(); p != nil {
			if err := m.tracker.ToggleFavorite(p.ID); err != nil {
				m.message = err.Error()
			}
			m.refresh()
		}

	case key.Matches(msg, keys.Search):
		m.mode = ModeSearch
		m.searchInput.SetValue(m.filter.Search)
		return m, m.searchInput.Focus()

	case key.Matches(msg, keys.Sort):
		m.sort = view.NextSort(m.sort, nextSortColumn(m.sort.Key))
		m.viewMode = view.ModeAll
		m.refresh()

	case key.Matches(msg, keys.Reverse):
		if m.sort.Dir == view.Asc {
			m.sort.Dir = view.Desc
		} else {
			m.sort.Dir = view.Asc
		}
		m.refresh()

	case key.Matches(msg, keys.Recent):
		if m.viewMode == view.ModeRecent {
			m.viewMode = view.ModeAll
		} else {
			m.viewMode = view.ModeRecent
		}
		m.refresh()

	case key.Matches(msg, keys.Clear):
		m.filter = view.FilterState{}
		m.sort = view.DefaultSort
		m.viewMode = view.ModeAll
		m.refresh()

	case key.Matches(msg, keys.Refresh):
		m.refresh()

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp
	}

	return m, nil
}

// nextSortColumn returns the column after cur in the cycle order.
func nextSortColumn(cur string) string {
	for i, col := range sortColumns {
		if col == cur {
			return sortColumns[(i+1)%len(sortColumns)]
		}
	}
	return sortColumns[0]
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		m.searchInput.Blur()
		m.filter.Search = ""
		m.refresh()
		return m, nil

	case key.Matches(msg, keys.Enter):
		m.mode = ModeNormal
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.filter.Search = m.searchInput.Value()
	m.cursor = 0
	m.refresh()
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		m.form = nil
		return m, nil

	case msg.Type == tea.KeyTab, msg.Type == tea.KeyDown:
		m.form.next()
		return m, nil

	case msg.Type == tea.KeyShiftTab, msg.Type == tea.KeyUp:
		m.form.prev()
		return m, nil

	case msg.Type == tea.KeyEnter:
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	data := m.form.toFormData()
	if strings.TrimSpace(data.Name) == "" {
		m.message = "Name is required"
		return m, nil
	}
	if v := model.ValidateProjectLinks(data); !v.Valid() {
		m.message = strings.Join(v.Errors, "; ")
		return m, nil
	}

	// HasProjectDuplicate excludes data.ID, so an edit never trips on
	// its own record.
	projects := m.tracker.Projects()
	if model.HasProjectDuplicate(projects, data) {
		m.message = "A project with that name, code or link already exists"
		return m, nil
	}

	p := model.FormDataToProject(data, m.form.editID, projects, time.Now())

	var err error
	if m.form.editID == 0 {
		err = m.tracker.AddProject(p)
	} else {
		err = m.tracker.UpdateProject(p)
	}
	if err != nil {
		m.message = err.Error()
		return m, nil
	}

	m.message = fmt.Sprintf("Saved %q", p.Name)
	m.mode = ModeNormal
	m.form = nil
	m.engine.Invalidate()
	m.refresh()
	return m, nil
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if p := m.currentProject(); p != nil {
			if err := m.tracker.DeleteProject(p.ID); err != nil {
				m.message = err.Error()
			} else {
				m.message = fmt.Sprintf("Deleted %q", p.Name)
			}
		}
		m.mode = ModeNormal
		m.refresh()
	case "n", "N", "esc":
		m.mode = ModeNormal
	}
	return m, nil
}

func (m Model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape), key.Matches(msg, keys.Help), key.Matches(msg, keys.Quit):
		m.mode = ModeNormal
	}
	return m, nil
}
