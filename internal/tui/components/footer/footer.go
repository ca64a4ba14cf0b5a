package footer

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/sleepdoctor/sleepdoc/internal/tui/theme"
	"github.com/sleepdoctor/sleepdoc/internal/version"
)

var (
	keyStyle     = lipgloss.NewStyle().Foreground(theme.ColorWhite).Bold(true)
	hintStyle    = lipgloss.NewStyle().Foreground(theme.ColorDim)
	versionStyle = lipgloss.NewStyle().Foreground(theme.ColorDim)
)

type Binding struct {
	Key  string
	Help string
}

type Footer struct {
	bindings     []Binding
	rightContent string
	width        int
	padding      int
}

func New(width int, rightContent string, bindings ...Binding) Footer {
	return Footer{
		bindings:     bindings,
		rightContent: rightContent,
		width:        width,
		padding:      2,
	}
}

func (f Footer) Render() string {
	leftContent := f.leftContent()
	rightContent := f.rightContent
	if rightContent == "" {
		rightContent = versionStyle.Render(version.Get())
	}

	leftWidth := lipgloss.Width(leftContent)
	rightWidth := lipgloss.Width(rightContent)
	spacerWidth := max(f.width-leftWidth-rightWidth-(f.padding*2), 0)

	return lipgloss.NewStyle().
		PaddingLeft(f.padding).
		PaddingRight(f.padding).
		PaddingBottom(1).
		Render(leftContent + strings.Repeat(" ", spacerWidth) + rightContent)
}

func (f Footer) leftContent() string {
	parts := make([]string, 0, len(f.bindings))
	for _, b := range f.bindings {
		parts = append(parts, keyStyle.Render(b.Key)+" "+hintStyle.Render(b.Help))
	}
	return strings.Join(parts, hintStyle.Render("  •  "))
}
