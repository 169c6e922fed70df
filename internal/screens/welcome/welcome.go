// Package welcome is the startup splash. It replaces itself with the home
// screen once the splash has run its course or a key is pressed.
package welcome

import (
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/studytrack/tutor/internal/router"
	"github.com/studytrack/tutor/internal/screen"
	"github.com/studytrack/tutor/internal/ui/components"
	"github.com/studytrack/tutor/internal/ui/theme"
)

const (
	step       = 100 * time.Millisecond
	revealAt   = 500 * time.Millisecond
	splashTime = 2500 * time.Millisecond
)

type stepMsg struct{}

type WelcomeScreen struct {
	next    func() screen.Screen
	spin    spinner.Model
	elapsed time.Duration
	done    bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New builds the splash; next is called once, when the splash ends.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		next: next,
		spin: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Secondary)),
		),
	}
}

// Title is empty so the header shows no screen name under the splash.
func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd {
	return tea.Batch(advance(), w.spin.Tick)
}

func advance() tea.Cmd {
	return tea.Tick(step, func(time.Time) tea.Msg { return stepMsg{} })
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if w.done {
		return w, nil
	}

	switch msg := msg.(type) {
	case stepMsg:
		w.elapsed += step
		if w.elapsed >= splashTime {
			return w, w.finish()
		}
		return w, advance()
	case spinner.TickMsg:
		var cmd tea.Cmd
		w.spin, cmd = w.spin.Update(msg)
		return w, cmd
	case tea.KeyPressMsg:
		return w, w.finish()
	}
	return w, nil
}

func (w *WelcomeScreen) finish() tea.Cmd {
	w.done = true
	home := w.next()
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: home} }
}

func (w *WelcomeScreen) View(width, height int) string {
	lines := []string{
		RenderBanner(width),
		"",
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Intelligent Tutoring System"),
	}
	if w.elapsed >= revealAt {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Primary).Render("AI Edition"))
	}

	bar := components.NewProgressBar("", float64(w.elapsed)/float64(splashTime), false, min(width-8, 40))
	lines = append(lines, "", bar.View(),
		w.spin.View()+lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(" loading your progress"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, lines...))
}
