package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/studytrack/tutor/internal/router"
	"github.com/studytrack/tutor/internal/scores"
	"github.com/studytrack/tutor/internal/screen"
	"github.com/studytrack/tutor/internal/screens/home"
	"github.com/studytrack/tutor/internal/screens/welcome"
	"github.com/studytrack/tutor/internal/ui/layout"
)

// Options configures the interactive application.
type Options struct {
	Deps home.Deps

	// Splash shows the timed welcome screen before home.
	Splash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	log     *zap.Logger
	width   int
	height  int
	average int
	quizzes int
}

// newAppModel creates a new AppModel starting at the welcome or home screen.
func newAppModel(opts Options) AppModel {
	if opts.Deps.Log == nil {
		opts.Deps.Log = zap.NewNop()
	}
	newHome := func() screen.Screen { return home.New(opts.Deps) }

	var initial screen.Screen
	if opts.Splash {
		initial = welcome.New(newHome)
	} else {
		initial = newHome()
	}

	m := AppModel{
		router: router.New(initial),
		log:    opts.Deps.Log,
	}
	if sc, err := opts.Deps.Scores.Load(); err == nil {
		m.setStats(sc)
	} else {
		m.log.Warn("load scores for header", zap.Error(err))
	}
	return m
}

// setStats updates the header figures.
func (m *AppModel) setStats(sc scores.Scores) {
	m.average, m.quizzes = 0, 0
	if len(sc) == 0 {
		return
	}
	total := 0
	for _, rec := range sc {
		total += rec.Score
		m.quizzes += rec.Attempts
	}
	m.average = total / len(sc)
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.ScoresUpdatedMsg:
		m.setStats(msg.Scores)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.InputCapturer); ok && c.CapturingInput() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	header := layout.RenderHeader(m.router.Breadcrumb(), m.average, m.quizzes, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// footerHints prefers the active screen's own hints.
func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
