package theme

import "charm.land/lipgloss/v2"

var (
	ColorBlack = lipgloss.Color("#000000")
	ColorWhite = lipgloss.Color("#FFFFFF")
	ColorDim   = lipgloss.Color("#666666")
)

var (
	ColorAccent  = lipgloss.Color("#9D8CFF") // highlights, titles
	ColorGranted = lipgloss.Color("#16EC06")
	ColorDenied  = lipgloss.Color("#FF0026")
	ColorBody    = lipgloss.Color("#67AEE6") // height and weight
)

// sleep stage colors, lightest for wake
var (
	ColorAwake = lipgloss.Color("#FFDE00")
	ColorREM   = lipgloss.Color("#00F19F")
	ColorLight = lipgloss.Color("#7BA1BB")
	ColorDeep  = lipgloss.Color("#3D5AFE")
)

var (
	ColorBgDark  = lipgloss.Color("#0E1117")
	ColorBgLight = lipgloss.Color("#262B36")
)
