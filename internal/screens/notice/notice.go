// Package notice is a static screen explaining why a feature cannot be
// opened, such as the study planner when the history database failed to
// open.
package notice

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/studytrack/tutor/internal/screen"
	"github.com/studytrack/tutor/internal/ui/layout"
	"github.com/studytrack/tutor/internal/ui/theme"
)

type Screen struct {
	title   string
	message string
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
)

func New(title, message string) *Screen {
	return &Screen{title: title, message: message}
}

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }

func (s *Screen) View(width, height int) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Accent).
		Padding(1, 3).
		Width(min(width-4, 56)).
		Align(lipgloss.Center).
		Render(theme.Title.Render(s.title+" unavailable") + "\n\n" + theme.Body.Render(s.message))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func (s *Screen) Title() string { return s.title }

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}
