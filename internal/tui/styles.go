package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent  = lipgloss.Color("#C084FC")
	muted   = lipgloss.Color("#6B7280")
	danger  = lipgloss.Color("#F87171")
	success = lipgloss.Color("#34D399")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			MarginBottom(1)

	dropZoneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 2)

	previewStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(success).
			Padding(0, 1)

	resultsStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1)

	alertStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#111827")).
			Background(danger).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().Foreground(danger)
	helpStyle  = lipgloss.NewStyle().Foreground(muted)
	labelStyle = lipgloss.NewStyle().Foreground(muted).Width(11)
)
