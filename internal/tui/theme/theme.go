package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

type Theme struct {
	background color.Color
	foreground color.Color
	base       lipgloss.Style
}

func New() Theme {
	var t Theme

	t.background = ColorBgDark
	t.foreground = ColorWhite
	t.base = lipgloss.NewStyle().Foreground(t.foreground)

	return t
}

func (t Theme) Base() lipgloss.Style {
	return t.base
}

func (t Theme) Title() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
}

func (t Theme) Muted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorDim)
}

func (t Theme) Background() color.Color {
	return t.background
}

// StageColor returns the color of a sleep stage label.
func StageColor(label string) color.Color {
	switch label {
	case "Awake (during sleep)", "Out-of-bed":
		return ColorAwake
	case "REM sleep":
		return ColorREM
	case "Deep sleep":
		return ColorDeep
	case "Light sleep", "Sleep":
		return ColorLight
	default:
		return ColorDim
	}
}
