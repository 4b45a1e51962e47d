// Package ui holds the terminal presentation layer: color theme and styles,
// TTY detection, and the spinner shown around long-running steps.
package ui

import "github.com/charmbracelet/lipgloss"

// Brand colors, dark-background variants.
const (
	ColorPrimary   = "#7C3AED"
	ColorSecondary = "#22D3EE"
	ColorSuccess   = "#10B981"
	ColorWarning   = "#F59E0B"
	ColorError     = "#EF4444"
	ColorText      = "#E5E7EB"
	ColorMuted     = "#6B7280"
	ColorBorder    = "#4B5563"
)

// Colors is the palette a Theme renders with.
type Colors struct {
	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Muted     string
	Border    string
}

// Theme bundles the palette with the lipgloss styles built from it.
// With NoColor every style renders plain text.
type Theme struct {
	NoColor bool
	Colors  Colors

	Title   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Path    lipgloss.Style
	Card    lipgloss.Style
}

// NewTheme returns the nebulis theme.
func NewTheme(noColor bool) *Theme {
	t := &Theme{
		NoColor: noColor,
		Colors: Colors{
			Primary:   ColorPrimary,
			Secondary: ColorSecondary,
			Success:   ColorSuccess,
			Warning:   ColorWarning,
			Error:     ColorError,
			Muted:     ColorMuted,
			Border:    ColorBorder,
		},
	}

	if noColor {
		plain := lipgloss.NewStyle()
		t.Title, t.Success, t.Warning, t.Error, t.Muted, t.Path = plain, plain, plain, plain, plain, plain
		t.Card = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
		return t
	}

	t.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorPrimary))
	t.Success = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess))
	t.Warning = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning))
	t.Error = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorError))
	t.Muted = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMuted))
	t.Path = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondary))
	t.Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(0, 1)
	return t
}
