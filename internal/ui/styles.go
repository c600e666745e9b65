package ui

import (
	"todobot/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds all application styles, initialized with theme configuration.
type Styles struct {
	ColorPrimary lipgloss.Color
	ColorAccent  lipgloss.Color
	ColorMuted   lipgloss.Color
	ColorError   lipgloss.Color

	TitleStyle  lipgloss.Style
	PromptStyle lipgloss.Style
	UserStyle   lipgloss.Style
	BotStyle    lipgloss.Style
	ErrorStyle  lipgloss.Style
	StatusStyle lipgloss.Style
	InputStyle  lipgloss.Style
}

// NewStyles creates a new Styles instance from a ThemeConfig. Empty theme
// colors fall back to the defaults.
func NewStyles(theme *config.ThemeConfig) *Styles {
	s := &Styles{}

	s.ColorPrimary = colorOrDefault(theme.Primary, "#7C3AED")
	s.ColorAccent = colorOrDefault(theme.Accent, "#10B981")
	s.ColorMuted = colorOrDefault(theme.Muted, "#6B7280")
	s.ColorError = colorOrDefault(theme.Error, "#EF4444")

	s.TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(s.ColorPrimary)
	s.PromptStyle = lipgloss.NewStyle().Bold(true).Foreground(s.ColorAccent)
	s.UserStyle = lipgloss.NewStyle().Foreground(s.ColorAccent)
	s.BotStyle = lipgloss.NewStyle()
	s.ErrorStyle = lipgloss.NewStyle().Foreground(s.ColorError)
	s.StatusStyle = lipgloss.NewStyle().Foreground(s.ColorMuted)
	s.InputStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.ColorMuted).
		Padding(0, 1)

	return s
}

func colorOrDefault(value, fallback string) lipgloss.Color {
	if value == "" {
		return lipgloss.Color(fallback)
	}
	return lipgloss.Color(value)
}
