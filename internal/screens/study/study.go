// Package study lets the student pick a subject and manage the study files
// attached to it.
package study

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/studytrack/tutor/internal/opener"
	"github.com/studytrack/tutor/internal/router"
	"github.com/studytrack/tutor/internal/screen"
	"github.com/studytrack/tutor/internal/store"
	"github.com/studytrack/tutor/internal/ui/components"
	"github.com/studytrack/tutor/internal/ui/layout"
	"github.com/studytrack/tutor/internal/ui/theme"
)

// StudyScreen lists subjects; choosing one opens its attachments.
type StudyScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*StudyScreen)(nil)
var _ screen.KeyHintProvider = (*StudyScreen)(nil)

// New creates a StudyScreen over the given subjects.
func New(subjects []string, repo store.AttachmentRepo, open opener.Func, log *zap.Logger) *StudyScreen {
	items := make([]components.MenuItem, 0, len(subjects))
	for _, name := range subjects {
		subject := name
		items = append(items, components.MenuItem{
			Label: subject,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: NewSubject(subject, repo, open, log)}
				}
			},
		})
	}
	return &StudyScreen{menu: components.NewMenu(items)}
}

func (s *StudyScreen) Init() tea.Cmd {
	return nil
}

func (s *StudyScreen) Title() string {
	return "Study"
}

func (s *StudyScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Subject"},
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StudyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *StudyScreen) View(width, height int) string {
	title := lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(
		theme.Title.Render("Study Materials"))
	hint := lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(
		theme.Hint.Render(fmt.Sprintf("Attach %s files to a subject", joinExts())))
	return "\n" + title + "\n" + hint + "\n\n" +
		lipgloss.PlaceHorizontal(width, lipgloss.Center, s.menu.View())
}

func joinExts() string {
	out := ""
	for i, e := range store.AttachmentExtensions {
		if i > 0 {
			out += "/"
		}
		out += e[1:]
	}
	return out
}
