package tui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/sleepdoctor/sleepdoc/internal/health"
	"github.com/sleepdoctor/sleepdoc/internal/tui/components/footer"
	"github.com/sleepdoctor/sleepdoc/internal/tui/components/hypnogram"
	"github.com/sleepdoctor/sleepdoc/internal/tui/components/status"
	"github.com/sleepdoctor/sleepdoc/internal/tui/theme"
)

const (
	minPlotWidth = 20
	bodyRows     = 5
)

type DashboardState struct {
	Status       status.Indicator
	Loading      bool
	Segments     []health.SleepSegment
	SleepErr     error
	Measurements []health.Measurement
	BodyErr      error
	UpdatedAt    time.Time
}

func (m *Model) DashboardView() string {
	width := max(m.viewportWidth, minPlotWidth+10)

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		m.theme.Title().Render("sleepdoc"),
		"   ",
		m.dashboard.Status.Render(),
	)

	sections := []string{
		header,
		"",
		m.theme.Title().Render("Last night"),
		m.sleepView(width - 10),
		"",
		m.theme.Title().Render("Body"),
		m.bodyView(),
	}

	body := lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(sections, "\n"))

	right := ""
	switch {
	case m.dashboard.Loading:
		right = m.theme.Muted().Render("loading...")
	case !m.dashboard.UpdatedAt.IsZero():
		right = m.theme.Muted().Render("updated " + m.dashboard.UpdatedAt.Format("15:04:05"))
	}
	foot := footer.New(width, right,
		footer.Binding{Key: "r", Help: "refresh"},
		footer.Binding{Key: "q", Help: "quit"},
	).Render()

	if m.viewportHeight == 0 {
		return body + "\n" + foot
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.PlaceVertical(m.viewportHeight-lipgloss.Height(foot), lipgloss.Top, body),
		foot,
	)
}

func (m *Model) sleepView(width int) string {
	if m.dashboard.SleepErr != nil {
		return errorStyle().Render(m.dashboard.SleepErr.Error())
	}
	if m.dashboard.Segments == nil && m.dashboard.Loading {
		return m.theme.Muted().Render("reading sleep segments...")
	}

	night := hypnogram.LastNight(m.dashboard.Segments)
	h := hypnogram.New(night, max(width-7, minPlotWidth))
	return h.Render() + "\n\n" + hypnogram.Summarize(night).Render()
}

func (m *Model) bodyView() string {
	if m.dashboard.BodyErr != nil {
		return errorStyle().Render(m.dashboard.BodyErr.Error())
	}
	if len(m.dashboard.Measurements) == 0 {
		if m.dashboard.Loading {
			return m.theme.Muted().Render("reading body measurements...")
		}
		return m.theme.Muted().Render("no height or weight recorded in the last 30 days")
	}

	latest := latestByType(m.dashboard.Measurements)
	lines := make([]string, 0, len(latest)+bodyRows)
	for _, label := range []string{"height", "weight"} {
		if ms, ok := latest[label]; ok {
			lines = append(lines, fmt.Sprintf("%s %s %s",
				lipgloss.NewStyle().Foreground(theme.ColorBody).Width(7).Render(label),
				lipgloss.NewStyle().Bold(true).Render(ms.Value+unitOf(label)),
				m.theme.Muted().Render(time.Unix(ms.Timestamp, 0).Format("Jan 2 15:04")),
			))
		}
	}

	history := recent(m.dashboard.Measurements, "weight", bodyRows)
	if len(history) > 1 {
		values := make([]string, 0, len(history))
		for _, ms := range history {
			values = append(values, ms.Value)
		}
		lines = append(lines, m.theme.Muted().Render("weight trend  "+strings.Join(values, " → ")))
	}

	return strings.Join(lines, "\n")
}

func errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.ColorDenied)
}

func unitOf(label string) string {
	switch label {
	case "height":
		return " m"
	case "weight":
		return " kg"
	default:
		return ""
	}
}

// latestByType keeps the newest measurement of each type.
func latestByType(ms []health.Measurement) map[string]health.Measurement {
	out := make(map[string]health.Measurement)
	for _, m := range ms {
		if cur, ok := out[m.Type]; !ok || m.Timestamp >= cur.Timestamp {
			out[m.Type] = m
		}
	}
	return out
}

// recent returns up to n measurements of typ, oldest first.
func recent(ms []health.Measurement, typ string, n int) []health.Measurement {
	var out []health.Measurement
	for _, m := range ms {
		if m.Type == typ {
			out = append(out, m)
		}
	}
	slices.SortStableFunc(out, func(a, b health.Measurement) int {
		return cmp.Compare(a.Timestamp, b.Timestamp)
	})
	if len(out) > n {
		out = out[len(out)-n:]
	}
	return out
}
