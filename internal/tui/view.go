package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/existflow/droptrack/internal/model"
	"github.com/existflow/droptrack/internal/view"
)

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.mode {
	case ModeForm:
		return m.renderForm()
	case ModeConfirmDelete:
		return m.renderConfirmDelete()
	case ModeHelp:
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTable())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m Model) renderHeader() string {
	title := HeaderStyle.Render(" DropTrack ")

	mode := ""
	if m.viewMode == view.ModeRecent {
		mode = HelpStyle.Render("  recent")
	} else {
		dir := "↑"
		if m.sort.Dir == view.Desc {
			dir = "↓"
		}
		mode = HelpStyle.Render(fmt.Sprintf("  sort: %s %s", m.sort.Key, dir))
	}

	search := ""
	if m.mode == ModeSearch {
		search = "  / " + m.searchInput.View()
	} else if m.filter.Search != "" {
		search = HelpStyle.Render(fmt.Sprintf("  search: %q", m.filter.Search))
	}

	return title + mode + search
}

func (m Model) renderTable() string {
	if len(m.visible) == 0 {
		empty := "No projects yet. Press 'a' to add one."
		if m.filter.Search != "" {
			empty = "No projects match the current search."
		}
		return HelpStyle.Render("  " + empty)
	}

	header := fmt.Sprintf("  %-3s %-32s %-12s %-20s %8s %8s  %s",
		"", "NAME", "STATUS", "TASKS", "COST", "TIME", "EDITED")

	var b strings.Builder
	b.WriteString(TableHeaderStyle.Render(header))
	b.WriteString("\n")

	options := m.tracker.Payload().CustomOptions
	now := time.Now()

	// Leave room for header, table header and status bar.
	rows := m.height - 6
	if rows < 1 {
		rows = 1
	}
	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}

	for i := start; i < len(m.visible) && i < start+rows; i++ {
		p := m.visible[i]

		fav := " "
		if p.Favorite {
			fav = FavoriteStyle.Render("★")
		}

		name := p.Name
		if p.Code != "" {
			name = fmt.Sprintf("%s (%s)", p.Name, p.Code)
		}
		status := model.ResolveLabel(model.FieldStatus, p.Status, options)

		line := fmt.Sprintf("  %s  %-32s %s %-20s %8s %8s  %s",
			fav,
			truncate(name, 32),
			statusStyle(p.Status).Render(fmt.Sprintf("%-12s", truncate(status, 12))),
			truncate(strings.Join(p.TaskType, ","), 20),
			formatNumber(p.TaskCost),
			formatNumber(p.TaskTime),
			view.FormatRelativeTime(p.LastEdited, now),
		)

		if i == m.cursor {
			b.WriteString(RowSelectedStyle.Render(line))
		} else {
			b.WriteString(RowStyle.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderStatusBar() string {
	counts := model.CountByField(m.tracker.Projects())

	left := fmt.Sprintf(" %d shown / %d total", len(m.visible), counts.Total)
	if m.message != "" {
		left += "  |  " + m.message
	}

	help := "a add  e edit  d delete  f fav  / search  o sort  r recent  ? help  q quit"
	return StatusBarStyle.Width(m.width).Render(left) + "\n" + HelpStyle.Render(" "+help)
}

func (m Model) renderForm() string {
	title := "Add project"
	if m.form.editID != 0 {
		title = fmt.Sprintf("Edit project #%d", m.form.editID)
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(" " + title + " "))
	b.WriteString("\n\n")
	for i, input := range m.form.inputs {
		label := fieldLabels[i]
		if i == m.form.focus {
			b.WriteString(lipgloss.NewStyle().Foreground(Primary).Render("> " + label))
		} else {
			b.WriteString(HelpStyle.Render("  " + label))
		}
		b.WriteString("\n  ")
		b.WriteString(input.View())
		b.WriteString("\n")
	}
	if m.message != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(StatusReward).Render("  " + m.message))
	}
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("  tab next field  enter save  esc cancel"))

	return ModalStyle.Render(b.String())
}

func (m Model) renderConfirmDelete() string {
	p := m.currentProject()
	if p == nil {
		return ""
	}
	body := fmt.Sprintf("Delete %q?\n\ny confirm   n cancel", p.Name)
	return ModalStyle.Render(body)
}

func (m Model) renderHelp() string {
	lines := []string{
		"DropTrack keys",
		"",
		"↑/k ↓/j   move",
		"a         add project",
		"e/enter   edit project",
		"d         delete project",
		"f         toggle favorite",
		"/         search",
		"o         cycle sort column",
		"O         reverse sort direction",
		"r         toggle recent mode",
		"c         clear search and sort",
		"R         refresh from disk",
		"q         quit",
		"",
		"esc or ? to close",
	}
	return ModalStyle.Render(strings.Join(lines, "\n"))
}

func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}
