package tui

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/existflow/droptrack/internal/model"
	"github.com/existflow/droptrack/internal/state"
	"github.com/existflow/droptrack/internal/store"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	tr := state.New(s, state.SystemClock(),
		state.NewDebouncer(state.PushDelay), state.NewDebouncer(state.PushDelay))
	require.NoError(t, tr.Load())
	return NewModel(tr)
}

func TestSubmitFormRejectsRenameOntoExisting(t *testing.T) {
	m := newTestModel(t)
	require.NoError(t, m.tracker.AddProject(model.Project{ID: 1, Name: "Scroll", LastEdited: 1}))
	require.NoError(t, m.tracker.AddProject(model.Project{ID: 2, Name: "Linea", LastEdited: 1}))

	m.mode = ModeForm
	m.form = newProjectForm(model.ProjectToFormData(model.Project{ID: 2, Name: "Linea"}))
	m.form.inputs[fieldName].SetValue("scroll")

	next, _ := m.submitForm()
	got := next.(Model)
	assert.Equal(t, ModeForm, got.mode)
	assert.Contains(t, got.message, "already exists")

	p := model.FindByID(got.tracker.Projects(), 2)
	require.NotNil(t, p)
	assert.Equal(t, "Linea", p.Name)
}

func TestSubmitFormEditKeepsOwnName(t *testing.T) {
	m := newTestModel(t)
	require.NoError(t, m.tracker.AddProject(model.Project{ID: 1, Name: "Scroll", LastEdited: 1}))

	m.mode = ModeForm
	m.form = newProjectForm(model.ProjectToFormData(model.Project{ID: 1, Name: "Scroll"}))
	m.form.inputs[fieldNote].SetValue("weekly tx")

	next, _ := m.submitForm()
	got := next.(Model)
	assert.Equal(t, ModeNormal, got.mode)

	p := model.FindByID(got.tracker.Projects(), 1)
	require.NotNil(t, p)
	assert.Equal(t, "weekly tx", p.Note)
}

func TestSubmitFormRequiresName(t *testing.T) {
	m := newTestModel(t)
	m.mode = ModeForm
	m.form = newProjectForm(model.FormData{})

	next, _ := m.submitForm()
	got := next.(Model)
	assert.Equal(t, ModeForm, got.mode)
	assert.Equal(t, "Name is required", got.message)
	assert.Empty(t, got.tracker.Projects())
}
