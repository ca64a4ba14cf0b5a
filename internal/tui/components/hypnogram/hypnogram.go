// Package hypnogram draws a night of sleep stages as a braille step chart.
package hypnogram

import (
	"cmp"
	"fmt"
	"image/color"
	"slices"
	"strings"
	"time"

	drawille "github.com/exrook/drawille-go"

	"charm.land/lipgloss/v2"

	"github.com/sleepdoctor/sleepdoc/internal/health"
	"github.com/sleepdoctor/sleepdoc/internal/tui/theme"
)

// nightGap separates two nights: segments further apart belong to different sleeps.
const nightGap = 3 * time.Hour

type level int

const (
	levelAwake level = iota
	levelREM
	levelLight
	levelDeep
	levelCount
	levelNone level = -1
)

var levelNames = [levelCount]string{"Awake", "REM", "Light", "Deep"}

var levelColors = [levelCount]color.Color{theme.ColorAwake, theme.ColorREM, theme.ColorLight, theme.ColorDeep}

func levelOf(stage string) level {
	switch stage {
	case "Awake (during sleep)", "Out-of-bed":
		return levelAwake
	case "REM sleep":
		return levelREM
	case "Light sleep", "Sleep":
		return levelLight
	case "Deep sleep":
		return levelDeep
	default:
		return levelNone
	}
}

type Hypnogram struct {
	Segments []health.SleepSegment
	// Width is the plot width in terminal cells, excluding the axis labels.
	Width int
	// Location renders the axis times. Defaults to time.Local.
	Location *time.Location
}

func New(segments []health.SleepSegment, width int) Hypnogram {
	return Hypnogram{Segments: segments, Width: width, Location: time.Local}
}

// LastNight returns the most recent run of segments with no gap longer than
// three hours, ordered by start time.
func LastNight(segments []health.SleepSegment) []health.SleepSegment {
	staged := make([]health.SleepSegment, 0, len(segments))
	for _, s := range segments {
		if levelOf(s.Type) != levelNone && s.EndTime > s.StartTime {
			staged = append(staged, s)
		}
	}
	if len(staged) == 0 {
		return nil
	}

	slices.SortStableFunc(staged, func(a, b health.SleepSegment) int {
		return cmp.Compare(a.StartTime, b.StartTime)
	})

	start := len(staged) - 1
	for start > 0 {
		prev, cur := staged[start-1], staged[start]
		if time.Duration(cur.StartTime-prev.EndTime)*time.Millisecond > nightGap {
			break
		}
		start--
	}
	return staged[start:]
}

func (h Hypnogram) Render() string {
	night := LastNight(h.Segments)
	if len(night) == 0 || h.Width < 2 {
		return lipgloss.NewStyle().Foreground(theme.ColorDim).Render("no sleep recorded in the last 30 days")
	}

	loc := h.Location
	if loc == nil {
		loc = time.Local
	}

	start, end := night[0].StartTime, night[0].EndTime
	for _, s := range night {
		end = max(end, s.EndTime)
	}

	cols := h.Width
	dotsWide := cols * dotsPerCol
	scale := float64(dotsWide-1) / float64(end-start)
	xOf := func(ms int64) int { return int(float64(ms-start) * scale) }
	yOf := func(l level) int { return int(l)*dotsPerRow + dotsPerRow/2 }

	canvas := drawille.NewCanvas()
	prev := levelNone
	for _, s := range night {
		l := levelOf(s.Type)
		x0, x1 := xOf(s.StartTime), xOf(s.EndTime)
		if prev != levelNone && prev != l {
			drawVLine(&canvas, x0, yOf(prev), yOf(l))
		}
		drawHLine(&canvas, x0, x1, yOf(l))
		prev = l
	}

	rows := canvasRows(&canvas, cols, int(levelCount))

	labelStyle := lipgloss.NewStyle().Foreground(theme.ColorDim).Width(6)
	lines := make([]string, 0, len(rows)+1)
	for i, row := range rows {
		plot := lipgloss.NewStyle().Foreground(levelColors[i]).Render(row)
		lines = append(lines, labelStyle.Render(levelNames[i])+" "+plot)
	}

	from := time.UnixMilli(start).In(loc).Format("15:04")
	to := time.UnixMilli(end).In(loc).Format("15:04")
	axis := from + strings.Repeat(" ", max(cols-len(from)-len(to), 1)) + to
	lines = append(lines, strings.Repeat(" ", 7)+lipgloss.NewStyle().Foreground(theme.ColorDim).Render(axis))

	return strings.Join(lines, "\n")
}

// Summary is the time spent in each stage over one night.
type Summary struct {
	Asleep time.Duration
	Awake  time.Duration
	REM    time.Duration
	Light  time.Duration
	Deep   time.Duration
}

func Summarize(segments []health.SleepSegment) Summary {
	var s Summary
	for _, seg := range segments {
		d := time.Duration(seg.EndTime-seg.StartTime) * time.Millisecond
		if d <= 0 {
			continue
		}
		switch levelOf(seg.Type) {
		case levelAwake:
			s.Awake += d
		case levelREM:
			s.REM += d
			s.Asleep += d
		case levelLight:
			s.Light += d
			s.Asleep += d
		case levelDeep:
			s.Deep += d
			s.Asleep += d
		case levelNone, levelCount:
		}
	}
	return s
}

func (s Summary) Render() string {
	item := func(label string, d time.Duration, c color.Color) string {
		return lipgloss.NewStyle().Foreground(c).Render(label) + " " + formatDuration(d)
	}
	return strings.Join([]string{
		item("asleep", s.Asleep, theme.ColorWhite),
		item("deep", s.Deep, theme.ColorDeep),
		item("rem", s.REM, theme.ColorREM),
		item("light", s.Light, theme.ColorLight),
		item("awake", s.Awake, theme.ColorAwake),
	}, "   ")
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
}
