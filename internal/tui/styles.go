package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent  = lipgloss.Color("#f97316")
	colorPink    = lipgloss.Color("#ec4899")
	colorMuted   = lipgloss.Color("#6b7280")
	colorError   = lipgloss.Color("#dc2626")
	colorSuccess = lipgloss.Color("#16a34a")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	subtitleStyle = lipgloss.NewStyle().Foreground(colorMuted)
	hintStyle     = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	errorStyle    = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	hitStyle      = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	spinnerStyle  = lipgloss.NewStyle().Foreground(colorPink)
	nameStyle     = lipgloss.NewStyle().Bold(true)
	genreStyle    = lipgloss.NewStyle().Foreground(colorPink)
	cardStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)
)
