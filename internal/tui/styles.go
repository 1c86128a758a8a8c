package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	// Status colors
	StatusPotential = lipgloss.Color("#6C757D") // Gray
	StatusReward    = lipgloss.Color("#FFE66D") // Yellow
	StatusConfirmed = lipgloss.Color("#95E1A3") // Green

	// UI colors
	Primary   = lipgloss.Color("#4ECDC4")
	Surface   = lipgloss.Color("#16213e")
	Text      = lipgloss.Color("#FFFFFF")
	TextMuted = lipgloss.Color("#888888")
	Border    = lipgloss.Color("#333333")
	Favorite  = lipgloss.Color("#FFB347")
)

// Styles
var (
	// Header
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	// Table
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(TextMuted).
				Padding(0, 1)

	RowStyle = lipgloss.NewStyle().
			Padding(0, 1)

	RowSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(Surface).
				Bold(true)

	FavoriteStyle = lipgloss.NewStyle().Foreground(Favorite)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	// Input modal
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	// Help text
	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)
)

// statusStyle returns the style for a status value
func statusStyle(status string) lipgloss.Style {
	var c lipgloss.Color
	switch status {
	case "reward":
		c = StatusReward
	case "confirmed":
		c = StatusConfirmed
	default:
		c = StatusPotential
	}
	return lipgloss.NewStyle().Foreground(c)
}
