package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	orange = lipgloss.Color("#FF8700")
	blue   = lipgloss.Color("#5FAFFF")
)

// NewHuhTheme returns the orange/blue theme used by every huh form.
func NewHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = t.Focused.Title.Foreground(orange).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(lipgloss.Color("#888888"))
	t.Focused.FocusedButton = t.Focused.FocusedButton.
		Foreground(lipgloss.Color("#000000")).
		Background(orange).
		Bold(true)
	t.Focused.BlurredButton = t.Focused.BlurredButton.Foreground(blue)

	t.Blurred = t.Focused
	return t
}
