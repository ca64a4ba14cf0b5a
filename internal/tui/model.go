package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sleepdoctor/sleepdoc/internal/tui/theme"
)

var _ tea.Model = (*Model)(nil)

type page uint

const (
	splashPage page = iota
	dashboardPage
)

type Model struct {
	ready          bool
	page           page
	viewportWidth  int
	viewportHeight int
	theme          theme.Theme
	dashboard      DashboardState
	deps           Deps
}

func New(deps Deps) Model {
	return Model{
		page:  splashPage,
		theme: theme.New(),
		deps:  deps,
	}
}

func (m *Model) Init() tea.Cmd {
	m.dashboard.Loading = true
	return tea.Batch(
		tea.Tick(splashDuration, func(time.Time) tea.Msg {
			return SplashTickMsg{}
		}),
		checkPermissionsCmd(m.deps),
		fetchSleepCmd(m.deps),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewportWidth = msg.Width
		m.viewportHeight = msg.Height
		m.ready = true

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			return m, m.refresh()
		}

	case SplashTickMsg:
		m.page = dashboardPage

	case PermissionStatusMsg:
		m.dashboard.Status.Checked = true
		m.dashboard.Status.Granted = msg.Err == nil && msg.Granted

	// body is read only after sleep resolves; the bridge serves one call at a time
	case SleepDataMsg:
		m.dashboard.Segments = msg.Segments
		m.dashboard.SleepErr = msg.Err
		return m, fetchBodyCmd(m.deps)

	case BodyDataMsg:
		m.dashboard.Measurements = msg.Measurements
		m.dashboard.BodyErr = msg.Err
		m.dashboard.Loading = false
		m.dashboard.UpdatedAt = time.Now()
		return m, checkPermissionsCmd(m.deps)
	}

	return m, nil
}

func (m *Model) refresh() tea.Cmd {
	if m.dashboard.Loading {
		return nil
	}
	m.dashboard.Loading = true
	return fetchSleepCmd(m.deps)
}

func (m *Model) View() tea.View {
	view := tea.NewView("")
	view.AltScreen = true

	if m.page == splashPage {
		view.BackgroundColor = theme.ColorBlack
	} else {
		view.BackgroundColor = m.theme.Background()
	}

	if !m.ready {
		return view
	}

	var content string
	switch m.page {
	case splashPage:
		content = lipgloss.Place(
			m.viewportWidth,
			m.viewportHeight,
			lipgloss.Center,
			lipgloss.Center,
			m.SplashView(),
		)
	case dashboardPage:
		content = m.DashboardView()
	}

	view.SetContent(content)
	return view
}
