package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles used by the browser.
type Styles struct {
	Title      lipgloss.Style
	Input      lipgloss.Style
	Suggestion lipgloss.Style
	Selected   lipgloss.Style
	Chip       lipgloss.Style
	Result     lipgloss.Style
	Facets     lipgloss.Style
	Muted      lipgloss.Style
	Error      lipgloss.Style
	Status     lipgloss.Style
}

func DefaultStyles() Styles {
	var (
		primary = lipgloss.Color("#7C3AED")
		accent  = lipgloss.Color("#06B6D4")
		muted   = lipgloss.Color("#6C7086")
		border  = lipgloss.Color("#45475A")
	)
	return Styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(primary),
		Input: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		Suggestion: lipgloss.NewStyle().PaddingLeft(2),
		Selected: lipgloss.NewStyle().
			PaddingLeft(2).
			Bold(true).
			Foreground(lipgloss.Color("#CDD6F4")).
			Background(primary),
		Chip: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1E1E2E")).
			Background(accent).
			Padding(0, 1).
			MarginRight(1),
		Result: lipgloss.NewStyle().Bold(true),
		Facets: lipgloss.NewStyle().Foreground(accent),
		Muted:  lipgloss.NewStyle().Foreground(muted),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")),
		Status: lipgloss.NewStyle().Foreground(muted).MarginTop(1),
	}
}
