package tui

const Logo = `
 ▄▄▄▄▄  ▄▄      ▄▄▄▄▄▄  ▄▄▄▄▄▄  ▄▄▄▄▄   ▄▄▄▄▄    ▄▄▄▄    ▄▄▄▄
 ██▀▀▀  ██      ██▀▀▀▀  ██▀▀▀▀  ██▀▀██  ██▀▀██  ██▀▀██  ██▀▀▀
 ▀███▄  ██      █████   █████   █████▀  ██  ██  ██  ██  ██
    ██  ██      ██      ██      ██      ██  ██  ██  ██  ██
 ▄▄▄██  ██▄▄▄▄  ██▄▄▄▄  ██▄▄▄▄  ██      ██▄▄██  ▀█▄▄█▀  ▀█▄▄▄
 ▀▀▀▀   ▀▀▀▀▀▀  ▀▀▀▀▀▀  ▀▀▀▀▀▀  ▀▀      ▀▀▀▀▀     ▀▀      ▀▀▀▀`

func (m *Model) SplashView() string {
	return m.theme.Title().Render(Logo)
}
