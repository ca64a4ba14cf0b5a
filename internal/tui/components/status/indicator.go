package status

import (
	"charm.land/lipgloss/v2"

	"github.com/sleepdoctor/sleepdoc/internal/tui/theme"
)

const statusDot = "●"

// Indicator shows whether the account has granted the fitness permissions.
type Indicator struct {
	Checked bool
	Granted bool
}

func (i Indicator) Render() string {
	if !i.Checked {
		return lipgloss.NewStyle().
			Foreground(theme.ColorBgLight).
			Render(statusDot + " checking...")
	}

	if i.Granted {
		return lipgloss.NewStyle().
			Foreground(theme.ColorGranted).
			Render(statusDot + " google fit connected")
	}

	return lipgloss.NewStyle().
		Foreground(theme.ColorDenied).
		Render(statusDot + " permissions needed")
}
