package view

import (
	"hash/fnv"
	"strconv"

	"github.com/existflow/droptrack/internal/model"
)

// Engine wraps Apply with a content-equality short-circuit so consumers
// can skip re-rendering a view identical to the previous emission. The
// check is a full-value hash of the visible records, at least as strict
// as value equality for rendering purposes.
type Engine struct {
	lastHash uint64
	lastView []model.Project
	primed   bool
}

// NewEngine returns an empty view engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Apply computes the visible subset and reports whether it differs from
// the previous emission. The returned slice is valid until the next call.
func (e *Engine) Apply(projects []model.Project, f FilterState, s SortState, mode Mode) ([]model.Project, bool) {
	visible := Apply(projects, f, s, mode)
	h := hashView(visible)
	if e.primed && h == e.lastHash {
		return e.lastView, false
	}
	e.lastHash = h
	e.lastView = visible
	e.primed = true
	return visible, true
}

// Invalidate forces the next Apply to report a change.
func (e *Engine) Invalidate() {
	e.primed = false
}

func hashView(projects []model.Project) uint64 {
	h := fnv.New64a()
	sep := []byte{0}
	write := func(s string) {
		h.Write([]byte(s))
		h.Write(sep)
	}
	for _, p := range projects {
		write(strconv.FormatInt(p.ID, 10))
		write(p.Name)
		write(p.Code)
		write(p.Link)
		write(p.Logo)
		write(p.Status)
		write(p.StatusDate)
		write(p.Note)
		write(strconv.FormatBool(p.Favorite))
		write(strconv.FormatFloat(p.TaskCost, 'g', -1, 64))
		write(strconv.FormatFloat(p.TaskTime, 'g', -1, 64))
		write(strconv.FormatInt(p.LastEdited, 10))
		for _, t := range p.TaskType {
			write(t)
		}
		h.Write(sep)
		for _, c := range p.ConnectType {
			write(c)
		}
		h.Write(sep)
		for _, r := range p.RewardType {
			write(r)
		}
		h.Write(sep)
		for _, l := range p.SideLinks {
			write(l.Type)
			write(l.URL)
		}
		h.Write(sep)
		for _, raw := range p.Logos {
			h.Write(raw)
			h.Write(sep)
		}
		h.Write(sep)
	}
	return h.Sum64()
}
