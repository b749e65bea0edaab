// Package ui renders the Place Rank terminal client.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#2F6FED")
	colorAccent  = lipgloss.Color("#F2A33C")
	colorMuted   = lipgloss.Color("#6C7086")
	colorError   = lipgloss.Color("#E5484D")
	colorSuccess = lipgloss.Color("#30A46C")
	colorBorder  = lipgloss.Color("#3B3F51")
)

// Styles collects the lipgloss styles shared by all pages.
type Styles struct {
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Nav       lipgloss.Style
	NavActive lipgloss.Style
	Card      lipgloss.Style
	Label     lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Stars     lipgloss.Style
	Help      lipgloss.Style
}

// DefaultStyles returns the client's standard look.
func DefaultStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
		Subtitle:  lipgloss.NewStyle().Foreground(colorMuted).Italic(true),
		Nav:       lipgloss.NewStyle().Padding(0, 1).Foreground(colorMuted),
		NavActive: lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(colorPrimary).Underline(true),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1),
		Label:   lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(colorMuted),
		Error:   lipgloss.NewStyle().Foreground(colorError),
		Success: lipgloss.NewStyle().Foreground(colorSuccess),
		Stars:   lipgloss.NewStyle().Foreground(colorAccent),
		Help:    lipgloss.NewStyle().Foreground(colorMuted).Faint(true),
	}
}
